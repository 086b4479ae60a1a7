package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socops/ticket-analytics/internal/domain"
)

func TestReconcileZeroFillsInGivenOrder(t *testing.T) {
	p := NewPivotTable()
	p.Add("AWS", "High", 2)
	p.Add("AWS", "Critical", 1)

	got := Reconcile(p, Axis{"GCP", "AWS"}, PriorityAxis)

	assert.Equal(t, Axis{"GCP", "AWS"}, got.Rows)
	assert.Equal(t, PriorityAxis, got.Columns)
	assert.Equal(t, [][]int{{0, 0, 0, 0}, {0, 0, 2, 0}}, got.Matrix())
	assert.Equal(t, 0, got.Get("AWS", "Critical"), "labels outside the axis are dropped")
}

func TestReconcileNilAxisUsesSortedObserved(t *testing.T) {
	p := NewPivotTable()
	p.Add("b", "y", 1)
	p.Add("a", "x", 1)

	got := Reconcile(p, nil, nil)
	assert.Equal(t, Axis{"a", "b"}, got.Rows)
	assert.Equal(t, Axis{"x", "y"}, got.Columns)
}

func TestPivotAxisCompletenessForSingleAppCode(t *testing.T) {
	v := viewOf(
		newTicket("T-1", withAppCode("ABCD"), withPriority("High")),
		newTicket("T-2", withAppCode("ABCD"), withPriority("High")),
		newTicket("T-3", withAppCode("WXYZ"), withPriority("Low")),
	)
	only := FilterEquals(v, domain.FieldAppCode, "ABCD")

	p := Reconcile(Pivot(only, ByField(domain.FieldAppCode), ByField(domain.FieldPriority)), nil, PriorityAxis)

	records := p.Records("AppCode")
	require.Len(t, records, 1)
	assert.Equal(t, map[string]any{"AppCode": "ABCD", "Low": 0, "Medium": 0, "High": 2, "unknown": 0}, records[0])
}

func TestPivotCallerAxisIncludesAbsentLabels(t *testing.T) {
	v := viewOf(
		newTicket("T-1", withAppCode("ABCD"), withCreated(time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC))),
		newTicket("T-2", withAppCode("ABCD"), withCreated(time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC))),
	)
	p := Reconcile(Pivot(v, ByMonthName, ByField(domain.FieldAppCode)), MonthAxis, Axis{"ZZZZ", "ABCD"})

	assert.Len(t, p.Rows, 12)
	assert.Equal(t, Axis{"ZZZZ", "ABCD"}, p.Columns)
	assert.Equal(t, 1, p.Get("Jan", "ABCD"))
	assert.Equal(t, 0, p.Get("Feb", "ABCD"))
	assert.Equal(t, 1, p.Get("Mar", "ABCD"))
	assert.Equal(t, 0, p.Get("Jan", "ZZZZ"))
}

func TestUnionAxis(t *testing.T) {
	got := UnionAxis(PriorityAxis, Axis{"High", "Critical", "Blocker"})
	assert.Equal(t, Axis{"Low", "Medium", "High", "unknown", "Blocker", "Critical"}, got)
}

func TestCountBy(t *testing.T) {
	v := viewOf(newTicket("T-1", withAppCode("B")), newTicket("T-2", withAppCode("A")), newTicket("T-3", withAppCode("B")))

	derived := CountBy(v, ByField(domain.FieldAppCode), nil)
	assert.Equal(t, Axis{"A", "B"}, derived.Labels)
	assert.Equal(t, []int{1, 2}, derived.Counts)

	fixed := CountBy(v, ByField(domain.FieldAppCode), Axis{"C", "B"})
	assert.Equal(t, []int{0, 2}, fixed.Counts)
}

func TestStackField(t *testing.T) {
	assert.Equal(t, domain.FieldEnvironment, StackField(""))
	assert.Equal(t, domain.FieldEnvironment, StackField("All"))
	assert.Equal(t, domain.FieldNarrowEnvironment, StackField("Non Prod"))
}

func TestStackedMonthly(t *testing.T) {
	jan := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)
	v := viewOf(
		newTicket("T-1", withCSP("AWS"), withEnv("PROD", "Prod"), withCreated(jan)),
		newTicket("T-2", withCSP("AWS"), withEnv("", ""), withCreated(jan)),
		newTicket("T-3", withCSP("AWS"), withEnv("Non Prod", "Uat"), withCreated(feb)),
		newTicket("T-4", withCSP("GCP"), withEnv("PROD", "Prod"), withCreated(feb)),
	)

	s := StackedMonthly(v, domain.FieldEnvironment)
	assert.Equal(t, Axis{"Non Prod", "PROD", "Unknown"}, s.StackValues)

	aws := s.Rows("AWS")
	assert.Equal(t, Axis{"2025-01", "2025-02"}, aws.Rows)
	assert.Equal(t, [][]int{{0, 1, 1}, {1, 0, 0}}, aws.Matrix())

	gcp := s.Rows("GCP")
	assert.Equal(t, Axis{"2025-02"}, gcp.Rows)
	assert.Equal(t, s.StackValues, gcp.Columns, "every CSP carries the full stack axis")

	none := s.Rows("AZURE")
	assert.Empty(t, none.Rows)
	assert.Equal(t, s.StackValues, none.Columns)
}

func TestStatisticsMonthlyAverage(t *testing.T) {
	ref := ReferencePeriod{Year: 2025, Month: 4}

	t.Run("fully elapsed year", func(t *testing.T) {
		tickets := make([]domain.Ticket, 0, 120)
		for i := 0; i < 120; i++ {
			tickets = append(tickets, newTicket(fmt.Sprintf("T-%d", i), withCSP("AWS"), withCreated(time.Date(2024, time.Month(i%12+1), 1, 0, 0, 0, 0, time.UTC))))
		}
		stats := Statistics(viewOf(tickets...), "AWS", 2024, ref)
		assert.Equal(t, 120, stats.TotalTickets)
		assert.Equal(t, 10.0, stats.MonthlyAverage)
	})

	t.Run("current year uses elapsed months", func(t *testing.T) {
		tickets := make([]domain.Ticket, 0, 20)
		for i := 0; i < 20; i++ {
			tickets = append(tickets, newTicket(fmt.Sprintf("T-%d", i), withCSP("AWS")))
		}
		stats := Statistics(viewOf(tickets...), "AWS", 2025, ref)
		assert.Equal(t, 20, stats.TotalTickets)
		assert.Equal(t, 5.0, stats.MonthlyAverage)
	})

	t.Run("rounded to one decimal", func(t *testing.T) {
		tickets := []domain.Ticket{newTicket("T-1"), newTicket("T-2"), newTicket("T-3"), newTicket("T-4", withCSP("GCP"))}
		stats := Statistics(viewOf(tickets...), "AWS", 2024, ref)
		assert.Equal(t, 0.3, stats.MonthlyAverage)
	})

	t.Run("no tickets", func(t *testing.T) {
		stats := Statistics(viewOf(), "GCP", 2025, ref)
		assert.Equal(t, CSPStatistics{}, stats)
	})
}

func TestReferencePeriodDivisor(t *testing.T) {
	ref := ReferencePeriod{Year: 2025, Month: 7}
	assert.Equal(t, 7, ref.Divisor(2025))
	assert.Equal(t, 12, ref.Divisor(2024))
	assert.Equal(t, 12, ref.Divisor(0))
	assert.Equal(t, 12, ReferencePeriod{Year: 2025}.Divisor(2025))
}
