package dto

// Row is one wide-form pivot row: the row label plus one count per column.
type Row = map[string]any

// CSPStatistics summarizes one provider's volume.
type CSPStatistics struct {
	TotalTickets   int     `json:"total_tickets"`
	MonthlyAverage float64 `json:"monthly_average"`
}

// EnvironmentSummaryResponse response.
type EnvironmentSummaryResponse struct {
	AWS         []Row         `json:"aws"`
	GCP         []Row         `json:"gcp"`
	AWSStats    CSPStatistics `json:"aws_stats"`
	GCPStats    CSPStatistics `json:"gcp_stats"`
	StackBy     string        `json:"stack_by"`
	StackValues []string      `json:"stack_values"`
}

// AppCodeCountsResponse holds Month × AppCode counts.
type AppCodeCountsResponse struct {
	Data     []Row    `json:"data"`
	AppCodes []string `json:"app_codes"`
}

// ControlCountResponse holds AppCode × ConfigRule counts.
type ControlCountResponse struct {
	Data        []Row    `json:"data"`
	ConfigRules []string `json:"config_rules"`
}

// HeatmapResponse is a dense AppCode × ConfigRule matrix.
type HeatmapResponse struct {
	Data        [][]int  `json:"data"`
	AppCodes    []string `json:"app_codes"`
	ConfigRules []string `json:"config_rules"`
}

// AppCodeTrendsResponse response.
type AppCodeTrendsResponse struct {
	MonthlyTrend   []Row    `json:"monthly_trend"`
	MonthlyHeatmap []Row    `json:"monthly_heatmap"`
	AppCodes       []string `json:"app_codes"`
}

// AppCodeDailyTrendsResponse response.
type AppCodeDailyTrendsResponse struct {
	DailyTrend   []Row    `json:"daily_trend"`
	DailyHeatmap []Row    `json:"daily_heatmap"`
	AppCodes     []string `json:"app_codes"`
}

// ConfigRuleTrendsResponse holds Month × ConfigRule counts with a Total column.
type ConfigRuleTrendsResponse struct {
	TrendData   []Row    `json:"trend_data"`
	ConfigRules []string `json:"config_rules"`
}

// HeartbeatPoint is one day of a ConfigRule heartbeat series. The date is
// reported under "month" for compatibility with existing dashboards.
type HeartbeatPoint struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// HeartbeatStatusResponse holds aligned per-day status counts.
type HeartbeatStatusResponse struct {
	Dates   []string `json:"dates"`
	Success []int    `json:"success"`
	Failed  []int    `json:"failed"`
}

// AgingRecord response.
type AgingRecord struct {
	CSP                 string   `json:"CSP"`
	Environment         string   `json:"Environment"`
	AlertType           string   `json:"AlertType"`
	Priority            string   `json:"Priority"`
	AverageHoursToClose *float64 `json:"average_hours_to_close"`
	ResolvedWithin24h   *float64 `json:"resolved_within_24h"`
	PercentOfTotal      *float64 `json:"percent_of_total"`
	PercentWithin24h    *float64 `json:"percent_within_24h"`
}

// AgingFilterOptionsResponse response.
type AgingFilterOptionsResponse struct {
	CSP         []string `json:"CSP"`
	Environment []string `json:"Environment"`
	AlertType   []string `json:"AlertType"`
	Priority    []string `json:"Priority"`
}
