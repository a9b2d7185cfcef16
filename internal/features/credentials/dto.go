package credentials

import (
	"github.com/google/uuid"
)

type ValidationStatus string

const (
	ValidationStatusInvalidFormat      ValidationStatus = "INVALID_FORMAT"
	ValidationStatusNotFoundOrInactive ValidationStatus = "NOT_FOUND_OR_INACTIVE"
	ValidationStatusValid              ValidationStatus = "VALID"
)

type CreateCredentialRequestDTO struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

type GetCredentialsResponseDTO struct {
	ApiKeys []*Credential `json:"apiKeys"`
}

type UpdateCredentialRequestDTO struct {
	Name     *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	IsActive *bool   `json:"isActive,omitempty"`
}

type ValidationResult struct {
	Status        ValidationStatus `json:"status"`
	CredentialID  uuid.UUID        `json:"credentialId,omitempty"`
	UserID        uuid.UUID        `json:"userId,omitempty"`
	KeyHash       string           `json:"-"`
	QuotaUsed     int64            `json:"quotaUsed,omitempty"`
	QuotaLimit    int              `json:"quotaLimit,omitempty"`
	QuotaExceeded bool             `json:"quotaExceeded,omitempty"`
}

type CachedCredential struct {
	Found      bool      `json:"found"`
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"userId"`
	IsActive   bool      `json:"isActive"`
	QuotaLimit int       `json:"quotaLimit"`
}
