package dto

// DashboardOverviewResponse aggregates management dashboard metrics.
type DashboardOverviewResponse struct {
	TotalIdeas           int64            `json:"total_ideas"`
	ByStatus             map[string]int64 `json:"by_status"`
	ByCategory           map[string]int64 `json:"by_category"`
	EvaluationCompletion float64          `json:"evaluation_completion_rate"`
	TopIdeas             []IdeaResponse   `json:"top_ideas"`
	CacheHit             bool             `json:"cache_hit,omitempty"`
}
