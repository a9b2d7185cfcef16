package users

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func (r *UserRepository) CreateUser(user *User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	return r.db.Create(user).Error
}

func (r *UserRepository) GetUserByID(userID uuid.UUID) (*User, error) {
	var user User

	err := r.db.
		Where("id = ?", userID).
		First(&user).Error

	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetUserByEmail returns nil without an error when the email is unknown.
func (r *UserRepository) GetUserByEmail(email string) (*User, error) {
	var user User

	err := r.db.
		Where("email = ?", email).
		First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

type SecretKeyRepository struct {
	db *gorm.DB
}

func (r *SecretKeyRepository) GetSecretKey() (string, error) {
	var secretKey SecretKey

	err := r.db.First(&secretKey).Error
	if err != nil {
		return "", err
	}

	return secretKey.Secret, nil
}

// EnsureSecretKey creates a random signing secret on first start.
func (r *SecretKeyRepository) EnsureSecretKey() error {
	var count int64
	if err := r.db.Model(&SecretKey{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	secretBytes := make([]byte, 32)
	if _, err := rand.Read(secretBytes); err != nil {
		return err
	}

	return r.db.Create(&SecretKey{Secret: hex.EncodeToString(secretBytes)}).Error
}
