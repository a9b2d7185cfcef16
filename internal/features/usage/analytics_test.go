package usage

import (
	"testing"
	"time"

	"vibedocs/internal/features/accounts"
	test_utils "vibedocs/internal/util/testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func setupAnalyticsTest(t *testing.T) (*gorm.DB, uuid.UUID) {
	db := test_utils.OpenTestDB(t, &accounts.AccountProfile{}, &UsageEntry{})

	accounts.Setup(db)
	Setup(db)

	return db, uuid.New()
}

func createEntry(t *testing.T, userID uuid.UUID, entry *UsageEntry) {
	entry.ID = uuid.New()
	entry.UserID = userID
	if entry.KeyHash == "" {
		entry.KeyHash = "test-digest"
	}
	if entry.Endpoint == "" {
		entry.Endpoint = "search"
	}
	if entry.StatusCode == 0 {
		entry.StatusCode = 200
	}

	require.NoError(t, GetUsageRepository().Create(entry))
}

func Test_GetAnalytics_WhenWindowIsEmpty_ReturnsFullSuccessAndZeroStats(t *testing.T) {
	_, userID := setupAnalyticsTest(t)

	analytics, err := GetAnalyticsService().GetAnalytics(userID)
	require.NoError(t, err)

	assert.EqualValues(t, 0, analytics.TotalRequests)
	assert.EqualValues(t, 0, analytics.WindowRequests)
	assert.Equal(t, float64(100), analytics.SuccessRate)
	assert.Equal(t, ResponseTimeStatsDTO{}, analytics.ResponseTimes)
	assert.Empty(t, analytics.TopLibraries)
	assert.Len(t, analytics.DailyRequests, 7)
	for _, day := range analytics.DailyRequests {
		assert.Equal(t, 0, day.Count)
	}
}

func Test_GetAnalytics_PercentilesIndexSortedLatencies(t *testing.T) {
	_, userID := setupAnalyticsTest(t)

	// 100 latencies 10..1000 in reverse insertion order; sorting is
	// the aggregator's job
	for i := 100; i >= 1; i-- {
		latency := i * 10
		createEntry(t, userID, &UsageEntry{LatencyMs: &latency})
	}

	analytics, err := GetAnalyticsService().GetAnalytics(userID)
	require.NoError(t, err)

	// floor(100 * 0.95) = index 95, value 960; index 99, value 1000
	assert.Equal(t, 960, analytics.ResponseTimes.P95Ms)
	assert.Equal(t, 1000, analytics.ResponseTimes.P99Ms)
	assert.Equal(t, 505.0, analytics.ResponseTimes.AvgMs)
}

func Test_GetAnalytics_WhenSingleLatency_AllPercentilesClampToIt(t *testing.T) {
	_, userID := setupAnalyticsTest(t)

	latency := 42
	createEntry(t, userID, &UsageEntry{LatencyMs: &latency})

	analytics, err := GetAnalyticsService().GetAnalytics(userID)
	require.NoError(t, err)

	assert.Equal(t, 42, analytics.ResponseTimes.P95Ms)
	assert.Equal(t, 42, analytics.ResponseTimes.P99Ms)
	assert.Equal(t, 42.0, analytics.ResponseTimes.AvgMs)
}

func Test_GetAnalytics_EntriesWithoutLatencyAreSkipped(t *testing.T) {
	_, userID := setupAnalyticsTest(t)

	latency := 100
	createEntry(t, userID, &UsageEntry{LatencyMs: &latency})
	createEntry(t, userID, &UsageEntry{LatencyMs: nil})

	analytics, err := GetAnalyticsService().GetAnalytics(userID)
	require.NoError(t, err)

	assert.EqualValues(t, 2, analytics.WindowRequests)
	assert.Equal(t, 100.0, analytics.ResponseTimes.AvgMs)
}

func Test_GetAnalytics_SuccessRateCountsTwoHundredsOnly(t *testing.T) {
	_, userID := setupAnalyticsTest(t)

	createEntry(t, userID, &UsageEntry{StatusCode: 200})
	createEntry(t, userID, &UsageEntry{StatusCode: 201})
	createEntry(t, userID, &UsageEntry{StatusCode: 404})
	createEntry(t, userID, &UsageEntry{StatusCode: 500})

	analytics, err := GetAnalyticsService().GetAnalytics(userID)
	require.NoError(t, err)

	assert.Equal(t, 50.0, analytics.SuccessRate)
}

func Test_GetAnalytics_TopLibrariesRankedByCountThenName(t *testing.T) {
	_, userID := setupAnalyticsTest(t)

	libraries := map[string]int{
		"react":       5,
		"vue":         3,
		"svelte":      3,
		"nextjs":      2,
		"express":     1,
		"tailwindcss": 1,
		"prisma":      1,
	}
	for library, count := range libraries {
		for i := 0; i < count; i++ {
			createEntry(t, userID, &UsageEntry{
				Endpoint:    "docs",
				RequestMeta: datatypes.NewJSONType(RequestMetadata{Library: library}),
			})
		}
	}

	analytics, err := GetAnalyticsService().GetAnalytics(userID)
	require.NoError(t, err)

	require.Len(t, analytics.TopLibraries, 5)
	assert.Equal(t, "react", analytics.TopLibraries[0].Library)
	assert.Equal(t, 5, analytics.TopLibraries[0].Count)

	// Ties break alphabetically
	assert.Equal(t, "svelte", analytics.TopLibraries[1].Library)
	assert.Equal(t, "vue", analytics.TopLibraries[2].Library)
	assert.Equal(t, "nextjs", analytics.TopLibraries[3].Library)
	assert.Equal(t, "express", analytics.TopLibraries[4].Library)

	// 5 of 16 window entries
	assert.Equal(t, 31.3, analytics.TopLibraries[0].Percent)
}

func Test_GetAnalytics_EntriesWithoutLibraryAreExcludedFromRanking(t *testing.T) {
	_, userID := setupAnalyticsTest(t)

	createEntry(t, userID, &UsageEntry{
		RequestMeta: datatypes.NewJSONType(RequestMetadata{Query: "react"}),
	})
	createEntry(t, userID, &UsageEntry{
		Endpoint:    "docs",
		RequestMeta: datatypes.NewJSONType(RequestMetadata{Library: "react"}),
	})

	analytics, err := GetAnalyticsService().GetAnalytics(userID)
	require.NoError(t, err)

	require.Len(t, analytics.TopLibraries, 1)
	assert.Equal(t, "react", analytics.TopLibraries[0].Library)
	assert.Equal(t, 1, analytics.TopLibraries[0].Count)
}

func Test_GetAnalytics_DailyRequestsCoverTrailingSevenDays(t *testing.T) {
	_, userID := setupAnalyticsTest(t)

	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)

	createEntry(t, userID, &UsageEntry{CreatedAt: today.Add(time.Hour)})
	createEntry(t, userID, &UsageEntry{CreatedAt: today.Add(2 * time.Hour)})
	createEntry(t, userID, &UsageEntry{CreatedAt: today.Add(-3*24*time.Hour + time.Hour)})
	// Inside the 30-day window but older than the 7-day series
	createEntry(t, userID, &UsageEntry{CreatedAt: today.Add(-10 * 24 * time.Hour)})

	analytics, err := GetAnalyticsService().GetAnalytics(userID)
	require.NoError(t, err)

	require.Len(t, analytics.DailyRequests, 7)
	assert.Equal(t, today.Format("2006-01-02"), analytics.DailyRequests[6].Date)
	assert.Equal(t, 2, analytics.DailyRequests[6].Count)
	assert.Equal(t, 1, analytics.DailyRequests[3].Count)
	assert.Equal(t, 0, analytics.DailyRequests[5].Count)
}

func Test_GetAnalytics_WindowExcludesOldEntriesButTotalKeepsThem(t *testing.T) {
	_, userID := setupAnalyticsTest(t)

	now := time.Now().UTC()
	createEntry(t, userID, &UsageEntry{CreatedAt: now.Add(-31 * 24 * time.Hour)})
	createEntry(t, userID, &UsageEntry{CreatedAt: now.Add(-time.Hour)})

	analytics, err := GetAnalyticsService().GetAnalytics(userID)
	require.NoError(t, err)

	assert.EqualValues(t, 2, analytics.TotalRequests)
	assert.EqualValues(t, 1, analytics.WindowRequests)
}

func Test_GetUsageSummary_ComputesRemainingQuota(t *testing.T) {
	db, userID := setupAnalyticsTest(t)

	profile, err := accounts.GetAccountService().GetOrCreateProfile(userID)
	require.NoError(t, err)
	profile.MonthlyQuota = 10
	require.NoError(t, db.Save(profile).Error)

	for i := 0; i < 4; i++ {
		createEntry(t, userID, &UsageEntry{})
	}

	summary, err := GetAnalyticsService().GetUsageSummary(userID)
	require.NoError(t, err)

	assert.EqualValues(t, 4, summary.WindowRequests)
	assert.Equal(t, 10, summary.QuotaLimit)
	assert.EqualValues(t, 6, summary.QuotaRemaining)
}

func Test_GetUsageSummary_RemainingNeverGoesNegative(t *testing.T) {
	db, userID := setupAnalyticsTest(t)

	profile, err := accounts.GetAccountService().GetOrCreateProfile(userID)
	require.NoError(t, err)
	profile.MonthlyQuota = 2
	require.NoError(t, db.Save(profile).Error)

	for i := 0; i < 5; i++ {
		createEntry(t, userID, &UsageEntry{})
	}

	summary, err := GetAnalyticsService().GetUsageSummary(userID)
	require.NoError(t, err)

	assert.EqualValues(t, 0, summary.QuotaRemaining)
}

func Test_UsageMessage_BandsByQuotaRatio(t *testing.T) {
	assert.Contains(t, usageMessage(10, 100), "well within")
	assert.Contains(t, usageMessage(50, 100), "Moderate usage")
	assert.Contains(t, usageMessage(80, 100), "approaching")
	assert.Contains(t, usageMessage(95, 100), "at or near")
	assert.Contains(t, usageMessage(0, 0), "at or near")
}

func Test_PercentileIndex_ClampsToValidRange(t *testing.T) {
	assert.Equal(t, 95, percentileIndex(100, 0.95))
	assert.Equal(t, 99, percentileIndex(100, 0.99))
	assert.Equal(t, 0, percentileIndex(1, 0.95))
	assert.Equal(t, 9, percentileIndex(10, 0.99))
}
