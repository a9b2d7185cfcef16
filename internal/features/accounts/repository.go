package accounts

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccountRepository struct {
	db *gorm.DB
}

func (r *AccountRepository) CreateProfile(profile *AccountProfile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}

	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}
	profile.UpdatedAt = profile.CreatedAt

	return r.db.Create(profile).Error
}

// GetProfileByUserID returns nil without an error when no profile exists yet.
func (r *AccountRepository) GetProfileByUserID(userID uuid.UUID) (*AccountProfile, error) {
	var profile AccountProfile

	err := r.db.
		Where("user_id = ?", userID).
		First(&profile).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *AccountRepository) UpdateProfile(profile *AccountProfile) error {
	profile.UpdatedAt = time.Now().UTC()

	return r.db.Save(profile).Error
}
