package accounts

type PlanTier string

const (
	PlanTierFree       PlanTier = "FREE"
	PlanTierPro        PlanTier = "PRO"
	PlanTierEnterprise PlanTier = "ENTERPRISE"
)

const DefaultMonthlyQuota = 100

// QuotaForPlan returns the monthly quota a plan tier starts with. The
// stored profile quota stays authoritative afterwards and may drift
// from these values.
func QuotaForPlan(tier PlanTier) int {
	switch tier {
	case PlanTierPro:
		return 5000
	case PlanTierEnterprise:
		return 50000
	default:
		return DefaultMonthlyQuota
	}
}

func IsValidPlanTier(tier PlanTier) bool {
	switch tier {
	case PlanTierFree, PlanTierPro, PlanTierEnterprise:
		return true
	}
	return false
}
