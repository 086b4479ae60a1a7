package dataset

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ticketCSV = `CSP,Environment,NarrowEnvironment,AlertType,Priority,Key,AppCode,ConfigRule,Summary,Account,tCreated,tResolved,TimeToResolve
AWS,PROD,Prod,Alert,High,CSD-10000,ABCD,AWS-101,"disk, full",123456789012,2025-03-01T10:00:00+02:00,2025-03-01T12:30:00+02:00,2:30:00
GCP,Non Prod,Uat,System,,CSD-10001,EFGH,Unknown,cpu,Unknown,2025-03-02T00:00:00,,
AWS,PROD,Prod,Alert,Low,CSD-10002,ABCD,AWS-101,bad,1,not-a-date,,
AWS,PROD,Prod,Alert,Low,CSD-10003,ABCD,AWS-101,resolved early,1,2025-03-05 08:00:00,2025-03-04 08:00:00,
`

func TestParseTickets(t *testing.T) {
	tickets, stats, err := ParseTickets(strings.NewReader(ticketCSV))
	require.NoError(t, err)
	assert.Equal(t, ParseStats{Rows: 3, Skipped: 1}, stats)
	require.Len(t, tickets, 3)

	first := tickets[0]
	assert.Equal(t, "CSD-10000", first.Key)
	assert.Equal(t, "disk, full", first.Summary)
	assert.Equal(t, time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC), first.Created)
	require.NotNil(t, first.Resolved)
	assert.Equal(t, time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC), *first.Resolved)

	second := tickets[1]
	assert.Equal(t, "", second.Priority)
	assert.Nil(t, second.Resolved)
	assert.Equal(t, time.UTC, second.Created.Location())

	assert.Nil(t, tickets[2].Resolved, "resolution before creation is dropped")
}

func TestParseTicketsHeaderHandling(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		tickets, _, err := ParseTickets(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, tickets)
	})

	t.Run("missing tCreated column", func(t *testing.T) {
		_, _, err := ParseTickets(strings.NewReader("Key,Summary\nCSD-1,x\n"))
		require.ErrorIs(t, err, errMissingColumn)
	})

	t.Run("byte order mark and column order", func(t *testing.T) {
		in := "\ufefftCreated,Key\n2025-01-01T00:00:00.000000+0000,HB-AWS-1\n"
		tickets, _, err := ParseTickets(strings.NewReader(in))
		require.NoError(t, err)
		require.Len(t, tickets, 1)
		assert.Equal(t, "HB-AWS-1", tickets[0].Key)
	})
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2024, 6, 1, 2, 0, 0, 0, time.UTC)
	for _, raw := range []string{
		"2024-06-01T02:00:00Z",
		"2024-06-01T02:00:00.000000+0000",
		"2024-06-01T04:00:00+02:00",
		"2024-06-01T02:00:00",
		"2024-06-01 02:00:00",
	} {
		got, err := ParseTimestamp(raw)
		require.NoError(t, err, raw)
		assert.True(t, want.Equal(got), raw)
	}
	_, err := ParseTimestamp("yesterday")
	assert.Error(t, err)
}

func TestParseAging(t *testing.T) {
	in := `CSP,Environment,AlertType,Priority,average_hours_to_close,resolved_within_24h,percent_of_total,percent_within_24h
AWS,PROD,Alert,High,12.5,40,10.2,80
GCP,Non Prod,System,Low,,nan,3,
`
	records, stats, err := ParseAging(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Rows)
	require.Len(t, records, 2)
	require.NotNil(t, records[0].AverageHoursToClose)
	assert.Equal(t, 12.5, *records[0].AverageHoursToClose)
	assert.Nil(t, records[1].AverageHoursToClose)
	assert.Nil(t, records[1].ResolvedWithin24h)
	assert.Nil(t, records[1].PercentWithin24h)
	assert.Equal(t, 3.0, *records[1].PercentOfTotal)
}
