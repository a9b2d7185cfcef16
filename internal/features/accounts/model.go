package accounts

import (
	"time"

	"github.com/google/uuid"
)

type AccountProfile struct {
	ID     uuid.UUID `json:"id"     gorm:"column:id;primaryKey"`
	UserID uuid.UUID `json:"userId" gorm:"column:user_id;uniqueIndex"`

	PlanTier PlanTier `json:"planTier" gorm:"column:plan_tier"`
	// MonthlyQuota is what quota checks trust. It is seeded from the
	// plan tier but the stored value wins if the two ever drift.
	MonthlyQuota int `json:"monthlyQuota" gorm:"column:monthly_quota"`

	// Credit counters are advisory display fields, not used for gating.
	CreditsRemaining int `json:"creditsRemaining" gorm:"column:credits_remaining"`
	CreditsUsed      int `json:"creditsUsed"      gorm:"column:credits_used"`

	BillingCustomerID *string `json:"-" gorm:"column:billing_customer_id"`

	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at"`
}

func (AccountProfile) TableName() string {
	return "account_profiles"
}
