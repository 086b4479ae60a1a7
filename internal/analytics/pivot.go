package analytics

import (
	"math"

	"github.com/socops/ticket-analytics/internal/domain"
)

// UnknownCategory replaces missing values of a stacking field.
const UnknownCategory = "Unknown"

// Dimension extracts a grouping label from a ticket.
type Dimension struct {
	Name  string
	Label func(*domain.Ticket) string
}

// ByField groups on the raw value of a field.
func ByField(f domain.Field) Dimension {
	return Dimension{Name: string(f), Label: func(t *domain.Ticket) string { return t.Text(f) }}
}

// ByFieldOrUnknown groups on a field, mapping missing values to "Unknown".
func ByFieldOrUnknown(f domain.Field) Dimension {
	return Dimension{Name: string(f), Label: func(t *domain.Ticket) string {
		if v := t.Text(f); v != "" {
			return v
		}
		return UnknownCategory
	}}
}

// ByMonthName groups on the creation month abbreviation (Jan..Dec).
var ByMonthName = Dimension{Name: "Month", Label: func(t *domain.Ticket) string {
	return t.Created.Format("Jan")
}}

// ByPeriod groups on the creation period at the given granularity.
func ByPeriod(name string, g Granularity) Dimension {
	return Dimension{Name: name, Label: func(t *domain.Ticket) string { return g.Label(t.Created) }}
}

// Pivot counts records per (row, col) label pair. The resulting axes are the
// sorted observed labels; reconcile them against canonical or requested axes
// before rendering.
func Pivot(v View, row, col Dimension) *PivotTable {
	p := NewPivotTable()
	for i := 0; i < v.Len(); i++ {
		t := v.At(i)
		p.Add(row.Label(t), col.Label(t), 1)
	}
	p.Rows = DerivedAxis(p.Rows)
	p.Columns = DerivedAxis(p.Columns)
	return p
}

// Series is a one-dimensional count aligned with its axis.
type Series struct {
	Labels Axis
	Counts []int
}

// CountBy counts records per label of dim over axis. A nil axis uses the
// sorted observed labels.
func CountBy(v View, dim Dimension, axis Axis) Series {
	counts := make(map[string]int)
	observed := make([]string, 0)
	for i := 0; i < v.Len(); i++ {
		label := dim.Label(v.At(i))
		if _, ok := counts[label]; !ok {
			observed = append(observed, label)
		}
		counts[label]++
	}
	if axis == nil {
		axis = DerivedAxis(observed)
	}
	s := Series{Labels: append(Axis{}, axis...), Counts: make([]int, len(axis))}
	for i, label := range axis {
		s.Counts[i] = counts[label]
	}
	return s
}

// Totals returns label -> count for the observed labels of dim.
func Totals(v View, dim Dimension) map[string]int {
	out := make(map[string]int)
	for i := 0; i < v.Len(); i++ {
		out[dim.Label(v.At(i))]++
	}
	return out
}

// StackField picks the stacking dimension for the monthly environment
// summary: NarrowEnvironment when an environment filter is active, otherwise
// Environment.
func StackField(environment string) domain.Field {
	if !IsWildcard(environment) {
		return domain.FieldNarrowEnvironment
	}
	return domain.FieldEnvironment
}

// StackedSummary is the CSP × Month × stack-value grouping, flattened to
// one pivot per CSP with months as rows.
type StackedSummary struct {
	StackBy     domain.Field
	StackValues Axis
	ByCSP       map[string]*PivotTable
}

// StackedMonthly groups the view by CSP, month period and stack field. Every
// CSP table carries the full set of stack values observed in the view.
func StackedMonthly(v View, stackBy domain.Field) StackedSummary {
	stack := ByFieldOrUnknown(stackBy)
	month := ByPeriod("Month", GranularityMonth)

	values := make([]string, 0, v.Len())
	raw := make(map[string]*PivotTable)
	for i := 0; i < v.Len(); i++ {
		t := v.At(i)
		label := stack.Label(t)
		values = append(values, label)
		p, ok := raw[t.CSP]
		if !ok {
			p = NewPivotTable()
			raw[t.CSP] = p
		}
		p.Add(month.Label(t), label, 1)
	}

	summary := StackedSummary{
		StackBy:     stackBy,
		StackValues: DerivedAxis(values),
		ByCSP:       make(map[string]*PivotTable, len(raw)),
	}
	for csp, p := range raw {
		summary.ByCSP[csp] = Reconcile(p, DerivedAxis(p.Rows), summary.StackValues)
	}
	return summary
}

// Rows returns the monthly table for a CSP, empty when the CSP has no records.
func (s StackedSummary) Rows(csp string) *PivotTable {
	if p, ok := s.ByCSP[csp]; ok {
		return p
	}
	return Reconcile(NewPivotTable(), Axis{}, s.StackValues)
}

// ReferencePeriod is the "current" year and month used to average a year
// that is still in progress.
type ReferencePeriod struct {
	Year  int
	Month int
}

// Divisor returns the number of months to average over for year: the
// elapsed months for the reference year, otherwise 12.
func (r ReferencePeriod) Divisor(year int) int {
	if year != 0 && year == r.Year && r.Month >= 1 && r.Month <= 12 {
		return r.Month
	}
	return 12
}

// CSPStatistics summarizes a provider's ticket volume.
type CSPStatistics struct {
	TotalTickets   int
	MonthlyAverage float64
}

// Statistics computes the total and monthly average for csp. The average is
// rounded to one decimal.
func Statistics(v View, csp string, year int, ref ReferencePeriod) CSPStatistics {
	total := FilterEquals(v, domain.FieldCSP, csp).Len()
	if total == 0 {
		return CSPStatistics{}
	}
	avg := float64(total) / float64(ref.Divisor(year))
	return CSPStatistics{
		TotalTickets:   total,
		MonthlyAverage: math.Round(avg*10) / 10,
	}
}
