package usage

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"vibedocs/internal/features/accounts"

	"github.com/google/uuid"
)

const (
	UsageWindow    = 30 * 24 * time.Hour
	dailyBucketLen = 24 * time.Hour
	dailyBuckets   = 7
	topLibraries   = 5
)

type AnalyticsService struct {
	usageRepository *UsageRepository
	accountService  *accounts.AccountService
	logger          *slog.Logger
}

func (s *AnalyticsService) GetUsageSummary(userID uuid.UUID) (*UsageSummaryResponseDTO, error) {
	now := time.Now().UTC()

	entries, err := s.usageRepository.GetEntriesByUserSince(userID, now.Add(-UsageWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to get window usage: %w", err)
	}

	quota := s.quotaForUser(userID)
	windowCount := int64(len(entries))

	remaining := int64(quota) - windowCount
	if remaining < 0 {
		remaining = 0
	}

	return &UsageSummaryResponseDTO{
		WindowRequests: windowCount,
		QuotaLimit:     quota,
		QuotaRemaining: remaining,
	}, nil
}

// GetAnalytics aggregates the trailing 30-day window of the owner's
// usage ledger into summary statistics.
func (s *AnalyticsService) GetAnalytics(userID uuid.UUID) (*AnalyticsResponseDTO, error) {
	now := time.Now().UTC()

	totalRequests, err := s.usageRepository.CountByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count lifetime usage: %w", err)
	}

	entries, err := s.usageRepository.GetEntriesByUserSince(userID, now.Add(-UsageWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to get window usage: %w", err)
	}

	quota := s.quotaForUser(userID)
	windowCount := int64(len(entries))

	return &AnalyticsResponseDTO{
		TotalRequests:  totalRequests,
		WindowRequests: windowCount,
		SuccessRate:    computeSuccessRate(entries),
		ResponseTimes:  computeResponseTimes(entries),
		TopLibraries:   computeTopLibraries(entries),
		DailyRequests:  computeDailyRequests(entries, now),
		QuotaLimit:     quota,
		QuotaUsed:      windowCount,
		UsageMessage:   usageMessage(windowCount, quota),
	}, nil
}

// quotaForUser falls back to the default quota rather than failing the
// whole aggregation when the profile cannot be loaded.
func (s *AnalyticsService) quotaForUser(userID uuid.UUID) int {
	profile, err := s.accountService.GetOrCreateProfile(userID)
	if err != nil {
		s.logger.Warn("falling back to default quota for analytics",
			slog.String("userId", userID.String()),
			slog.String("error", err.Error()))
		return accounts.DefaultMonthlyQuota
	}

	return profile.MonthlyQuota
}

// computeSuccessRate treats an empty window as 100% successful.
func computeSuccessRate(entries []*UsageEntry) float64 {
	if len(entries) == 0 {
		return 100
	}

	successCount := 0
	for _, entry := range entries {
		if entry.StatusCode >= 200 && entry.StatusCode < 300 {
			successCount++
		}
	}

	return roundToOneDecimal(float64(successCount) / float64(len(entries)) * 100)
}

// computeResponseTimes sorts the non-null window latencies ascending
// and indexes the percentiles at floor(n*0.95) and floor(n*0.99).
func computeResponseTimes(entries []*UsageEntry) ResponseTimeStatsDTO {
	var latencies []int
	for _, entry := range entries {
		if entry.LatencyMs != nil {
			latencies = append(latencies, *entry.LatencyMs)
		}
	}

	if len(latencies) == 0 {
		return ResponseTimeStatsDTO{}
	}

	sort.Ints(latencies)

	sum := 0
	for _, latency := range latencies {
		sum += latency
	}

	return ResponseTimeStatsDTO{
		AvgMs: roundToOneDecimal(float64(sum) / float64(len(latencies))),
		P95Ms: latencies[percentileIndex(len(latencies), 0.95)],
		P99Ms: latencies[percentileIndex(len(latencies), 0.99)],
	}
}

func percentileIndex(n int, percentile float64) int {
	index := int(math.Floor(float64(n) * percentile))
	if index >= n {
		index = n - 1
	}
	if index < 0 {
		index = 0
	}

	return index
}

func computeTopLibraries(entries []*UsageEntry) []LibraryUsageDTO {
	counts := map[string]int{}
	for _, entry := range entries {
		library := entry.RequestMeta.Data().Library
		if library == "" {
			continue
		}
		counts[library]++
	}

	ranked := make([]LibraryUsageDTO, 0, len(counts))
	for library, count := range counts {
		ranked = append(ranked, LibraryUsageDTO{
			Library: library,
			Count:   count,
			Percent: roundToOneDecimal(float64(count) / float64(len(entries)) * 100),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Library < ranked[j].Library
	})

	if len(ranked) > topLibraries {
		ranked = ranked[:topLibraries]
	}

	return ranked
}

// computeDailyRequests buckets the window entries into the trailing 7
// fixed 24-hour days, inclusive of today.
func computeDailyRequests(entries []*UsageEntry, now time.Time) []DailyCountDTO {
	today := now.Truncate(dailyBucketLen)

	countsByDay := map[string]int{}
	for _, entry := range entries {
		day := entry.CreatedAt.UTC().Truncate(dailyBucketLen)
		countsByDay[day.Format("2006-01-02")]++
	}

	daily := make([]DailyCountDTO, 0, dailyBuckets)
	for i := dailyBuckets - 1; i >= 0; i-- {
		day := today.Add(-time.Duration(i) * dailyBucketLen)
		date := day.Format("2006-01-02")

		daily = append(daily, DailyCountDTO{
			Date:  date,
			Count: countsByDay[date],
		})
	}

	return daily
}

func usageMessage(used int64, quota int) string {
	ratio := 1.0
	if quota > 0 {
		ratio = float64(used) / float64(quota)
	}

	switch {
	case ratio < 0.3:
		return "You are well within your usage limits."
	case ratio < 0.7:
		return "Moderate usage. You have plenty of quota remaining."
	case ratio < 0.9:
		return "You are approaching your usage limit. Consider upgrading your plan."
	default:
		return "You are at or near your usage limit. Upgrade your plan to avoid interruptions."
	}
}

func roundToOneDecimal(value float64) float64 {
	return math.Round(value*10) / 10
}
