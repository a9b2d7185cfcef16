package accounts

import (
	"testing"

	test_utils "vibedocs/internal/util/testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAccountTest(t *testing.T) {
	db := test_utils.OpenTestDB(t, &AccountProfile{})
	Setup(db)
}

func Test_GetOrCreateProfile_WhenMissing_CreatesFreeTierProfile(t *testing.T) {
	setupAccountTest(t)
	userID := uuid.New()

	profile, err := GetAccountService().GetOrCreateProfile(userID)
	require.NoError(t, err)

	assert.Equal(t, userID, profile.UserID)
	assert.Equal(t, PlanTierFree, profile.PlanTier)
	assert.Equal(t, DefaultMonthlyQuota, profile.MonthlyQuota)
	assert.Equal(t, 0, profile.CreditsRemaining)
}

func Test_GetOrCreateProfile_WhenCalledTwice_ReturnsSameProfile(t *testing.T) {
	setupAccountTest(t)
	userID := uuid.New()

	first, err := GetAccountService().GetOrCreateProfile(userID)
	require.NoError(t, err)

	second, err := GetAccountService().GetOrCreateProfile(userID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
}

func Test_ApplyPlanChange_ReseedsQuotaFromTier(t *testing.T) {
	setupAccountTest(t)
	userID := uuid.New()

	require.NoError(t, GetAccountService().ApplyPlanChange(userID, PlanTierPro, "cus_123"))

	profile, err := GetAccountService().GetOrCreateProfile(userID)
	require.NoError(t, err)

	assert.Equal(t, PlanTierPro, profile.PlanTier)
	assert.Equal(t, 5000, profile.MonthlyQuota)
	require.NotNil(t, profile.BillingCustomerID)
	assert.Equal(t, "cus_123", *profile.BillingCustomerID)
}

func Test_ApplyPlanChange_DowngradeRevertsToFreeQuota(t *testing.T) {
	setupAccountTest(t)
	userID := uuid.New()

	require.NoError(t, GetAccountService().ApplyPlanChange(userID, PlanTierEnterprise, "cus_456"))
	require.NoError(t, GetAccountService().ApplyPlanChange(userID, PlanTierFree, ""))

	profile, err := GetAccountService().GetOrCreateProfile(userID)
	require.NoError(t, err)

	assert.Equal(t, PlanTierFree, profile.PlanTier)
	assert.Equal(t, DefaultMonthlyQuota, profile.MonthlyQuota)
	// The billing customer link survives the downgrade
	require.NotNil(t, profile.BillingCustomerID)
	assert.Equal(t, "cus_456", *profile.BillingCustomerID)
}

func Test_AddCredits_AccumulatesOnProfile(t *testing.T) {
	setupAccountTest(t)
	userID := uuid.New()

	require.NoError(t, GetAccountService().AddCredits(userID, 500))
	require.NoError(t, GetAccountService().AddCredits(userID, 250))

	profile, err := GetAccountService().GetOrCreateProfile(userID)
	require.NoError(t, err)

	assert.Equal(t, 750, profile.CreditsRemaining)
}

func Test_QuotaForPlan_MapsTiersToQuotas(t *testing.T) {
	assert.Equal(t, 100, QuotaForPlan(PlanTierFree))
	assert.Equal(t, 5000, QuotaForPlan(PlanTierPro))
	assert.Equal(t, 50000, QuotaForPlan(PlanTierEnterprise))
	assert.Equal(t, DefaultMonthlyQuota, QuotaForPlan(PlanTier("UNKNOWN")))
}

func Test_IsValidPlanTier_RejectsUnknownTiers(t *testing.T) {
	assert.True(t, IsValidPlanTier(PlanTierFree))
	assert.True(t, IsValidPlanTier(PlanTierPro))
	assert.True(t, IsValidPlanTier(PlanTierEnterprise))
	assert.False(t, IsValidPlanTier(PlanTier("GOLD")))
	assert.False(t, IsValidPlanTier(PlanTier("free")))
}
