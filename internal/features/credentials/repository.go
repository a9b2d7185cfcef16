package credentials

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CredentialRepository struct {
	db *gorm.DB
}

func (r *CredentialRepository) Create(credential *Credential) error {
	if credential.ID == uuid.Nil {
		credential.ID = uuid.New()
	}

	if credential.CreatedAt.IsZero() {
		credential.CreatedAt = time.Now().UTC()
	}
	credential.UpdatedAt = credential.CreatedAt

	return r.db.Create(credential).Error
}

func (r *CredentialRepository) GetByUserID(userID uuid.UUID) ([]*Credential, error) {
	var keys []*Credential

	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&keys).Error

	return keys, err
}

func (r *CredentialRepository) GetByID(credentialID uuid.UUID) (*Credential, error) {
	var credential Credential

	err := r.db.
		Where("id = ?", credentialID).
		First(&credential).Error

	if err != nil {
		return nil, err
	}

	return &credential, nil
}

func (r *CredentialRepository) GetByKeyHash(keyHash string) (*Credential, error) {
	var credential Credential

	err := r.db.
		Where("key_hash = ?", keyHash).
		First(&credential).Error

	if err != nil {
		return nil, err
	}

	return &credential, nil
}

func (r *CredentialRepository) CountActiveByUserID(userID uuid.UUID) (int64, error) {
	var count int64

	err := r.db.
		Model(&Credential{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&count).Error

	return count, err
}

func (r *CredentialRepository) Update(credential *Credential) error {
	credential.UpdatedAt = time.Now().UTC()

	return r.db.Save(credential).Error
}

func (r *CredentialRepository) UpdateLastUsed(credentialID uuid.UUID, usedAt time.Time) error {
	return r.db.
		Model(&Credential{}).
		Where("id = ?", credentialID).
		Update("last_used_at", usedAt).Error
}

// Delete is scoped to the owner so one account can never delete (or
// learn about) another account's key.
func (r *CredentialRepository) Delete(credentialID, userID uuid.UUID) error {
	result := r.db.
		Where("id = ? AND user_id = ?", credentialID, userID).
		Delete(&Credential{})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
