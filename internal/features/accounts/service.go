package accounts

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type AccountService struct {
	accountRepository *AccountRepository
	logger            *slog.Logger
}

// GetOrCreateProfile lazily creates a free-tier profile on first read.
func (s *AccountService) GetOrCreateProfile(userID uuid.UUID) (*AccountProfile, error) {
	profile, err := s.accountRepository.GetProfileByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account profile: %w", err)
	}

	if profile != nil {
		return profile, nil
	}

	profile = &AccountProfile{
		ID:           uuid.New(),
		UserID:       userID,
		PlanTier:     PlanTierFree,
		MonthlyQuota: QuotaForPlan(PlanTierFree),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.accountRepository.CreateProfile(profile); err != nil {
		return nil, fmt.Errorf("failed to create account profile: %w", err)
	}

	s.logger.Info("account profile created",
		slog.String("userId", userID.String()),
		slog.String("planTier", string(profile.PlanTier)))

	return profile, nil
}

// ApplyPlanChange moves the profile to a new tier and re-seeds its
// quota from that tier. Keys issued earlier keep the quota limit they
// were created with; only new keys pick this value up.
func (s *AccountService) ApplyPlanChange(userID uuid.UUID, tier PlanTier, billingCustomerID string) error {
	profile, err := s.GetOrCreateProfile(userID)
	if err != nil {
		return err
	}

	profile.PlanTier = tier
	profile.MonthlyQuota = QuotaForPlan(tier)
	if billingCustomerID != "" {
		profile.BillingCustomerID = &billingCustomerID
	}

	if err := s.accountRepository.UpdateProfile(profile); err != nil {
		return fmt.Errorf("failed to update account profile: %w", err)
	}

	s.logger.Info("plan changed",
		slog.String("userId", userID.String()),
		slog.String("planTier", string(tier)),
		slog.Int("monthlyQuota", profile.MonthlyQuota))

	return nil
}

func (s *AccountService) AddCredits(userID uuid.UUID, credits int) error {
	profile, err := s.GetOrCreateProfile(userID)
	if err != nil {
		return err
	}

	profile.CreditsRemaining += credits

	if err := s.accountRepository.UpdateProfile(profile); err != nil {
		return fmt.Errorf("failed to add credits: %w", err)
	}

	return nil
}
