package credentials

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"vibedocs/internal/features/accounts"
	"vibedocs/internal/features/audit_logs"
	"vibedocs/internal/features/usage"
	"vibedocs/internal/features/users"
	"vibedocs/internal/util/apierrors"
	cache_utils "vibedocs/internal/util/cache"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const MaxActiveKeysPerAccount = 10

type CredentialService struct {
	credentialRepository *CredentialRepository
	usageRepository      *usage.UsageRepository
	accountService       *accounts.AccountService
	auditLogService      *audit_logs.AuditLogService
	logger               *slog.Logger

	credentialCacheUtil *cache_utils.CacheUtil[CachedCredential]
	singleflight        singleflight.Group // Prevents thundering herd on DB calls
}

func (s *CredentialService) CreateCredential(
	user *users.User,
	request *CreateCredentialRequestDTO,
) (*Credential, error) {
	activeCount, err := s.credentialRepository.CountActiveByUserID(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count active API keys: %w", err)
	}

	if activeCount >= MaxActiveKeysPerAccount {
		return nil, apierrors.NewValidationError(
			fmt.Sprintf("maximum of %d active API keys reached", MaxActiveKeysPerAccount))
	}

	profile, err := s.accountService.GetOrCreateProfile(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account profile: %w", err)
	}

	generated, err := GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}

	now := time.Now().UTC()
	credential := &Credential{
		ID:           uuid.New(),
		UserID:       user.ID,
		Name:         request.Name,
		KeyPrefix:    generated.DisplayPrefix,
		KeyHash:      generated.Hash,
		IsActive:     true,
		QuotaLimit:   profile.MonthlyQuota,
		QuotaResetAt: now.Add(usage.UsageWindow),
		CreatedAt:    now,
	}

	if err := s.credentialRepository.Create(credential); err != nil {
		return nil, fmt.Errorf("failed to create API key: %w", err)
	}

	// Pre-warm cache with the new key for immediate availability
	s.credentialCacheUtil.Set(generated.Hash, &CachedCredential{
		Found:      true,
		ID:         credential.ID,
		UserID:     credential.UserID,
		IsActive:   true,
		QuotaLimit: credential.QuotaLimit,
	})

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("API key created: %s (%s)", request.Name, generated.DisplayPrefix),
		&user.ID,
	)

	// The plaintext key is returned exactly once and never persisted
	credential.Key = generated.Key

	return credential, nil
}

func (s *CredentialService) ListCredentials(user *users.User) (*GetCredentialsResponseDTO, error) {
	keys, err := s.credentialRepository.GetByUserID(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get API keys: %w", err)
	}

	return &GetCredentialsResponseDTO{ApiKeys: keys}, nil
}

func (s *CredentialService) UpdateCredential(
	user *users.User,
	credentialID uuid.UUID,
	request *UpdateCredentialRequestDTO,
) error {
	credential, err := s.credentialRepository.GetByID(credentialID)
	if err != nil || credential.UserID != user.ID {
		return apierrors.NewNotFoundError("API key not found")
	}

	if request.Name != nil {
		credential.Name = *request.Name
	}

	if request.IsActive != nil {
		if *request.IsActive && !credential.IsActive {
			activeCount, err := s.credentialRepository.CountActiveByUserID(user.ID)
			if err != nil {
				return fmt.Errorf("failed to count active API keys: %w", err)
			}
			if activeCount >= MaxActiveKeysPerAccount {
				return apierrors.NewValidationError(
					fmt.Sprintf("maximum of %d active API keys reached", MaxActiveKeysPerAccount))
			}
		}

		credential.IsActive = *request.IsActive
	}

	if err := s.credentialRepository.Update(credential); err != nil {
		return fmt.Errorf("failed to update API key: %w", err)
	}

	s.credentialCacheUtil.Invalidate(credential.KeyHash)

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("API key updated: %s (%s)", credential.Name, credential.KeyPrefix),
		&user.ID,
	)

	return nil
}

func (s *CredentialService) DeleteCredential(user *users.User, credentialID uuid.UUID) error {
	credential, err := s.credentialRepository.GetByID(credentialID)
	if err != nil || credential.UserID != user.ID {
		return apierrors.NewNotFoundError("API key not found")
	}

	if err := s.credentialRepository.Delete(credentialID, user.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierrors.NewNotFoundError("API key not found")
		}
		return fmt.Errorf("failed to delete API key: %w", err)
	}

	s.credentialCacheUtil.Invalidate(credential.KeyHash)

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("API key deleted: %s (%s)", credential.Name, credential.KeyPrefix),
		&user.ID,
	)

	return nil
}

// Validate resolves a presented key and evaluates its rolling-window
// quota. The usage count always hits the store; only the credential
// row itself is cached. The count-then-compare check is not atomic
// against concurrent requests, so a brief bounded overshoot past the
// limit is possible; this weak consistency is accepted.
func (s *CredentialService) Validate(key string) (*ValidationResult, error) {
	if !HasValidKeyFormat(key) {
		return &ValidationResult{Status: ValidationStatusInvalidFormat}, nil
	}

	keyHash := HashKey(key)

	cached := s.credentialCacheUtil.Get(keyHash)
	if cached == nil {
		loaded, err := s.lookupCredential(keyHash)
		if err != nil {
			return nil, fmt.Errorf("failed to look up API key: %w", err)
		}
		cached = loaded
	}

	if !cached.Found || !cached.IsActive {
		return &ValidationResult{Status: ValidationStatusNotFoundOrInactive}, nil
	}

	now := time.Now().UTC()

	quotaUsed, err := s.usageRepository.CountByKeyHashSince(keyHash, now.Add(-usage.UsageWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to count window usage: %w", err)
	}

	// Touching last-used must never fail the validation itself
	if err := s.credentialRepository.UpdateLastUsed(cached.ID, now); err != nil {
		s.logger.Error("failed to update API key last-used timestamp",
			slog.String("credentialId", cached.ID.String()),
			slog.String("error", err.Error()))
	}

	return &ValidationResult{
		Status:        ValidationStatusValid,
		CredentialID:  cached.ID,
		UserID:        cached.UserID,
		KeyHash:       keyHash,
		QuotaUsed:     quotaUsed,
		QuotaLimit:    cached.QuotaLimit,
		QuotaExceeded: quotaUsed >= int64(cached.QuotaLimit),
	}, nil
}

func (s *CredentialService) lookupCredential(keyHash string) (*CachedCredential, error) {
	result, err, _ := s.singleflight.Do(keyHash, func() (any, error) {
		credential, err := s.credentialRepository.GetByKeyHash(keyHash)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &CachedCredential{Found: false}, nil
		}
		if err != nil {
			return nil, err
		}

		return &CachedCredential{
			Found:      true,
			ID:         credential.ID,
			UserID:     credential.UserID,
			IsActive:   credential.IsActive,
			QuotaLimit: credential.QuotaLimit,
		}, nil
	})

	if err != nil {
		return nil, err
	}

	cached, ok := result.(*CachedCredential)
	if !ok {
		return nil, errors.New("failed to cast credential lookup result")
	}

	// Negative results are cached too, so repeated garbage keys do not
	// hammer the database
	s.credentialCacheUtil.Set(keyHash, cached)

	return cached, nil
}
