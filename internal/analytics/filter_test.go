package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socops/ticket-analytics/internal/domain"
)

func TestFilterGlobal(t *testing.T) {
	v := viewOf(
		newTicket("T-1", withEnv("PROD", "Prod")),
		newTicket("T-2", withEnv("Non Prod", "Uat")),
		newTicket("T-3", withEnv("Non Prod", "Dev"), withCreated(baseTime.AddDate(-1, 0, 0))),
		newTicket("T-4", withEnv("", "")),
	)

	tests := []struct {
		name   string
		filter GlobalFilter
		want   []string
	}{
		{name: "no constraint", filter: GlobalFilter{}, want: []string{"T-1", "T-2", "T-3", "T-4"}},
		{name: "All is a wildcard", filter: GlobalFilter{Environment: "All", NarrowEnvironment: "All"}, want: []string{"T-1", "T-2", "T-3", "T-4"}},
		{name: "year", filter: GlobalFilter{Year: 2024}, want: []string{"T-3"}},
		{name: "environment exact", filter: GlobalFilter{Environment: "Non Prod"}, want: []string{"T-2", "T-3"}},
		{name: "environment is not substring", filter: GlobalFilter{Environment: "Prod"}, want: []string{}},
		{name: "narrow environment", filter: GlobalFilter{NarrowEnvironment: "Uat"}, want: []string{"T-2"}},
		{name: "conjunction", filter: GlobalFilter{Year: 2025, Environment: "Non Prod"}, want: []string{"T-2"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, keysOf(FilterGlobal(v, tc.filter)))
		})
	}
}

func TestFilterColumns(t *testing.T) {
	v := viewOf(
		newTicket("CSD-10001", withSummary("Root login detected")),
		newTicket("CSD-10002", withSummary("S3 bucket public")),
		newTicket("CSD-20003", withSummary(""), withAppCode("")),
	)

	t.Run("case insensitive substring", func(t *testing.T) {
		got := FilterColumns(v, ColumnFilters{domain.FieldSummary: "LOGIN"})
		assert.Equal(t, []string{"CSD-10001"}, keysOf(got))
	})

	t.Run("missing value never matches", func(t *testing.T) {
		got := FilterColumns(v, ColumnFilters{domain.FieldAppCode: "a"})
		assert.Equal(t, []string{"CSD-10001", "CSD-10002"}, keysOf(got))
	})

	t.Run("conjunctive", func(t *testing.T) {
		got := FilterColumns(v, ColumnFilters{domain.FieldKey: "csd-1", domain.FieldSummary: "bucket"})
		assert.Equal(t, []string{"CSD-10002"}, keysOf(got))
	})

	t.Run("empty needle is ignored", func(t *testing.T) {
		got := FilterColumns(v, ColumnFilters{domain.FieldSummary: ""})
		assert.Equal(t, 3, got.Len())
	})

	t.Run("idempotent", func(t *testing.T) {
		cols := ColumnFilters{domain.FieldKey: "000"}
		once := FilterColumns(v, cols)
		twice := FilterColumns(once, cols)
		assert.Equal(t, keysOf(once), keysOf(twice))
	})
}

func TestFilterAppliesGlobalBeforeColumns(t *testing.T) {
	v := viewOf(
		newTicket("T-1", withEnv("PROD", "Prod"), withCreated(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))),
		newTicket("T-2", withEnv("PROD", "Prod")),
		newTicket("T-3", withEnv("Non Prod", "Uat")),
	)
	got := Filter(v, Criteria{
		Global:  GlobalFilter{Year: 2025},
		Columns: ColumnFilters{domain.FieldEnvironment: "prod"},
	})
	assert.Equal(t, []string{"T-2", "T-3"}, keysOf(got))
}

func TestParseColumnFilters(t *testing.T) {
	t.Run("known fields", func(t *testing.T) {
		cols, err := ParseColumnFilters(map[string]string{"Key": "CSD", "Account": "", "ConfigRule": "aws"})
		require.NoError(t, err)
		assert.Equal(t, ColumnFilters{domain.FieldKey: "CSD", domain.FieldConfigRule: "aws"}, cols)
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		_, err := ParseColumnFilters(map[string]string{"Owner": "bob"})
		require.ErrorIs(t, err, ErrUnknownField)
	})

	t.Run("timestamp not searchable", func(t *testing.T) {
		_, err := ParseColumnFilters(map[string]string{"tCreated": "2025"})
		require.ErrorIs(t, err, ErrUnknownField)
	})
}

func TestAllOnNilDataset(t *testing.T) {
	v := All(nil)
	assert.Equal(t, 0, v.Len())
	assert.Empty(t, v.Tickets())
}
