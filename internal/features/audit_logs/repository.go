package audit_logs

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditLogRepository struct {
	db *gorm.DB
}

func (r *AuditLogRepository) Create(auditLog *AuditLog) error {
	if auditLog.ID == uuid.Nil {
		auditLog.ID = uuid.New()
	}

	if auditLog.CreatedAt.IsZero() {
		auditLog.CreatedAt = time.Now().UTC()
	}

	return r.db.Create(auditLog).Error
}

func (r *AuditLogRepository) GetByUser(userID uuid.UUID, limit, offset int) ([]*AuditLog, error) {
	var auditLogs []*AuditLog

	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&auditLogs).Error

	return auditLogs, err
}

func (r *AuditLogRepository) CountByUser(userID uuid.UUID) (int64, error) {
	var count int64

	err := r.db.
		Model(&AuditLog{}).
		Where("user_id = ?", userID).
		Count(&count).Error

	return count, err
}
