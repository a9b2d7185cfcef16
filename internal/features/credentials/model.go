package credentials

import (
	"time"

	"github.com/google/uuid"
)

type Credential struct {
	ID     uuid.UUID `json:"id"     gorm:"column:id;primaryKey"`
	UserID uuid.UUID `json:"userId" gorm:"column:user_id;index"`
	Name   string    `json:"name"   gorm:"column:name"`

	KeyPrefix string `json:"keyPrefix" gorm:"column:key_prefix"`
	KeyHash   string `json:"-"         gorm:"column:key_hash;uniqueIndex"` // Never expose in JSON

	IsActive bool `json:"isActive" gorm:"column:is_active"`

	// QuotaLimit is fixed from the owner's plan at issuance and is not
	// recomputed when the plan later changes.
	QuotaLimit int `json:"quotaLimit" gorm:"column:quota_limit"`
	// QuotaResetAt is informational only. Quota checks always count
	// usage over a rolling trailing-30-day window.
	QuotaResetAt time.Time `json:"quotaResetAt" gorm:"column:quota_reset_at"`

	LastUsedAt *time.Time `json:"lastUsedAt" gorm:"column:last_used_at"`
	CreatedAt  time.Time  `json:"createdAt"  gorm:"column:created_at"`
	UpdatedAt  time.Time  `json:"updatedAt"  gorm:"column:updated_at"`

	Key string `json:"key,omitempty" gorm:"-"` // Temporary field only populated during creation
}

func (Credential) TableName() string {
	return "api_keys"
}
