package usage

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UsageRepository struct {
	db *gorm.DB
}

func (r *UsageRepository) Create(entry *UsageEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	return r.db.Create(entry).Error
}

func (r *UsageRepository) CountByKeyHashSince(keyHash string, since time.Time) (int64, error) {
	var count int64

	err := r.db.
		Model(&UsageEntry{}).
		Where("key_hash = ? AND created_at >= ?", keyHash, since).
		Count(&count).Error

	return count, err
}

func (r *UsageRepository) CountByUserID(userID uuid.UUID) (int64, error) {
	var count int64

	err := r.db.
		Model(&UsageEntry{}).
		Where("user_id = ?", userID).
		Count(&count).Error

	return count, err
}

func (r *UsageRepository) GetEntriesByUserSince(userID uuid.UUID, since time.Time) ([]*UsageEntry, error) {
	var entries []*UsageEntry

	err := r.db.
		Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at ASC").
		Find(&entries).Error

	return entries, err
}

// DeleteOlderThan is only called by the retention worker; request
// paths never mutate the ledger.
func (r *UsageRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.
		Where("created_at < ?", cutoff).
		Delete(&UsageEntry{})

	return result.RowsAffected, result.Error
}
