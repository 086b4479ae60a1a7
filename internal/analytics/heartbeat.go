package analytics

import (
	"strings"

	"github.com/socops/ticket-analytics/internal/domain"
)

// Status is the outcome of a heartbeat check.
type Status string

const (
	StatusSuccess Status = "Success"
	StatusFailed  Status = "Failed"
)

// SuccessMarker is the case-sensitive summary token of a passing check.
const SuccessMarker = "Success"

// DeriveStatus classifies a heartbeat ticket from its summary.
func DeriveStatus(t *domain.Ticket) Status {
	if strings.Contains(t.Summary, SuccessMarker) {
		return StatusSuccess
	}
	return StatusFailed
}

// ByStatus groups heartbeat tickets on their derived status.
var ByStatus = Dimension{Name: "Status", Label: func(t *domain.Ticket) string {
	return string(DeriveStatus(t))
}}

// StatusSeries holds success and failure counts aligned with Periods.
type StatusSeries struct {
	Periods Axis
	Success []int
	Failed  []int
}

// StatusByPeriod counts derived statuses per period of r. Both count slices
// have the same length and order as Periods.
func StatusByPeriod(v View, g Granularity, r Range) StatusSeries {
	p := BucketBy(v, g, r, ByStatus, Axis{string(StatusSuccess), string(StatusFailed)})
	s := StatusSeries{
		Periods: p.Rows,
		Success: make([]int, len(p.Rows)),
		Failed:  make([]int, len(p.Rows)),
	}
	for i, period := range p.Rows {
		s.Success[i] = p.Get(period, string(StatusSuccess))
		s.Failed[i] = p.Get(period, string(StatusFailed))
	}
	return s
}
