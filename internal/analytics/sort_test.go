package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortByKeyIsNumeric(t *testing.T) {
	v := viewOf(newTicket("T-3"), newTicket("T-10"), newTicket("T-2"))

	asc, err := Sort(v, "Key", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"T-2", "T-3", "T-10"}, keysOf(asc))

	desc, err := Sort(v, "Key", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"T-10", "T-3", "T-2"}, keysOf(desc))

	assert.Equal(t, []string{"T-3", "T-10", "T-2"}, keysOf(v), "input view must not be reordered")
}

func TestSortByKeyMalformed(t *testing.T) {
	v := viewOf(newTicket("T-1"), newTicket("NOPE"))
	_, err := Sort(v, "Key", true)
	require.ErrorIs(t, err, ErrMalformedKey)
}

func TestKeyNumber(t *testing.T) {
	n, err := KeyNumber("HB-AWS-1234")
	require.NoError(t, err)
	assert.Equal(t, int64(1234), n)

	n, err = KeyNumber("CSD-10007x99")
	require.NoError(t, err)
	assert.Equal(t, int64(10007), n)
}

func TestSortUnknownFieldLeavesOrder(t *testing.T) {
	v := viewOf(newTicket("T-3"), newTicket("T-1"))
	got, err := Sort(v, "Assignee", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"T-3", "T-1"}, keysOf(got))
}

func TestSortStringIsStableWithMissingLast(t *testing.T) {
	v := viewOf(
		newTicket("T-1", withPriority("Medium")),
		newTicket("T-2", withPriority("")),
		newTicket("T-3", withPriority("High")),
		newTicket("T-4", withPriority("Medium")),
	)

	asc, err := Sort(v, "Priority", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"T-3", "T-1", "T-4", "T-2"}, keysOf(asc))

	desc, err := Sort(v, "Priority", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"T-1", "T-4", "T-3", "T-2"}, keysOf(desc))
}

func TestSortByTime(t *testing.T) {
	v := viewOf(
		newTicket("T-1", withCreated(baseTime.Add(2*time.Hour))),
		newTicket("T-2", withCreated(baseTime), withResolved(baseTime.Add(time.Hour))),
		newTicket("T-3", withCreated(baseTime.Add(time.Hour)), withResolved(baseTime.Add(3*time.Hour))),
	)

	created, err := Sort(v, "tCreated", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"T-2", "T-3", "T-1"}, keysOf(created))

	resolved, err := Sort(v, "tResolved", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"T-3", "T-2", "T-1"}, keysOf(resolved))
}
