package users

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `json:"id"        gorm:"column:id;primaryKey"`
	Email          string    `json:"email"     gorm:"column:email;uniqueIndex"`
	HashedPassword string    `json:"-"         gorm:"column:hashed_password"`
	IsActive       bool      `json:"isActive"  gorm:"column:is_active"`
	CreatedAt      time.Time `json:"createdAt" gorm:"column:created_at"`
}

func (User) TableName() string {
	return "users"
}

// SecretKey holds the JWT signing secret. A single row is created at
// bootstrap if the table is empty.
type SecretKey struct {
	Secret string `gorm:"column:secret"`
}

func (SecretKey) TableName() string {
	return "secret_keys"
}
