package domain

// AgingRecord is one pre-aggregated row of the ticket aging summary.
type AgingRecord struct {
	CSP                 string
	Environment         string
	AlertType           string
	Priority            string
	AverageHoursToClose *float64
	ResolvedWithin24h   *float64
	PercentOfTotal      *float64
	PercentWithin24h    *float64
}

// Canonical orderings for the aging summary.
var (
	AgingEnvironmentOrder = []string{"PROD", "Non Prod"}
	AgingPriorityOrder    = []string{"Hightened", "Critical", "High", "Medium", "Low", "Unknown"}
)
