package usage

type UsageSummaryResponseDTO struct {
	WindowRequests int64 `json:"windowRequests"`
	QuotaLimit     int   `json:"quotaLimit"`
	QuotaRemaining int64 `json:"quotaRemaining"`
}

type ResponseTimeStatsDTO struct {
	AvgMs float64 `json:"avgMs"`
	P95Ms int     `json:"p95Ms"`
	P99Ms int     `json:"p99Ms"`
}

type LibraryUsageDTO struct {
	Library string  `json:"library"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

type DailyCountDTO struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type AnalyticsResponseDTO struct {
	TotalRequests  int64 `json:"totalRequests"`
	WindowRequests int64 `json:"windowRequests"`

	SuccessRate   float64              `json:"successRate"`
	ResponseTimes ResponseTimeStatsDTO `json:"responseTimes"`

	TopLibraries  []LibraryUsageDTO `json:"topLibraries"`
	DailyRequests []DailyCountDTO   `json:"dailyRequests"`

	QuotaLimit   int    `json:"quotaLimit"`
	QuotaUsed    int64  `json:"quotaUsed"`
	UsageMessage string `json:"usageMessage"`
}
