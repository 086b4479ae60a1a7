package analytics

import (
	"fmt"
	"strings"
	"time"

	"github.com/socops/ticket-analytics/internal/domain"
)

// Granularity is the width of a time bucket.
type Granularity int

const (
	GranularityMonth Granularity = iota
	GranularityDay
	// GranularityTwoHour is used for synthetic heartbeat cadences.
	GranularityTwoHour
)

// DefaultWindowDays is the look-back of the default heartbeat window.
const DefaultWindowDays = 7

// MaxRangeDays bounds the span of a caller-supplied range.
const MaxRangeDays = 5 * 366

// Truncate returns the start of the bucket containing t.
func (g Granularity) Truncate(t time.Time) time.Time {
	switch g {
	case GranularityMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	case GranularityTwoHour:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour()-t.Hour()%2, 0, 0, 0, t.Location())
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
}

// Next returns the start of the bucket following the one starting at start.
func (g Granularity) Next(start time.Time) time.Time {
	switch g {
	case GranularityMonth:
		return start.AddDate(0, 1, 0)
	case GranularityTwoHour:
		return start.Add(2 * time.Hour)
	default:
		return start.AddDate(0, 0, 1)
	}
}

// Label formats the bucket containing t.
func (g Granularity) Label(t time.Time) string {
	switch g {
	case GranularityMonth:
		return t.Format("2006-01")
	case GranularityTwoHour:
		return g.Truncate(t).Format("2006-01-02T15:04")
	default:
		return t.Format("2006-01-02")
	}
}

// Range is an inclusive time span. Membership is decided at bucket
// granularity: a record belongs when its bucket lies between the buckets of
// Start and End.
type Range struct {
	Start time.Time
	End   time.Time
}

// Inverted reports whether End precedes Start.
func (r Range) Inverted() bool {
	return r.End.Before(r.Start)
}

// DefaultWindow returns the trailing window of DefaultWindowDays days ending
// on the day of now. It spans DefaultWindowDays+1 day buckets.
func DefaultWindow(now time.Time) Range {
	now = now.UTC()
	today := GranularityDay.Truncate(now)
	return Range{Start: today.AddDate(0, 0, -DefaultWindowDays), End: now}
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime parses the date formats accepted on the query string. Values
// without an offset are read as UTC.
func ParseTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: cannot parse %q", ErrInvalidRange, raw)
}

// ParseRange parses an optional start/end pair. ok is false when both are
// empty; supplying only one bound or spanning more than MaxRangeDays is an
// error. An inverted pair parses and yields no buckets.
func ParseRange(start, end string) (r Range, ok bool, err error) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" && end == "" {
		return Range{}, false, nil
	}
	if start == "" || end == "" {
		return Range{}, false, fmt.Errorf("%w: start_date and end_date must be given together", ErrInvalidRange)
	}
	s, err := ParseTime(start)
	if err != nil {
		return Range{}, false, err
	}
	e, err := ParseTime(end)
	if err != nil {
		return Range{}, false, err
	}
	if e.Sub(s) > MaxRangeDays*24*time.Hour {
		return Range{}, false, fmt.Errorf("%w: range exceeds %d days", ErrInvalidRange, MaxRangeDays)
	}
	return Range{Start: s, End: e}, true, nil
}

// PeriodStarts lists the start of every bucket in r, ascending. An inverted
// range yields no buckets.
func PeriodStarts(g Granularity, r Range) []time.Time {
	if r.Inverted() {
		return []time.Time{}
	}
	last := g.Truncate(r.End)
	out := make([]time.Time, 0)
	for t := g.Truncate(r.Start); !t.After(last); t = g.Next(t) {
		out = append(out, t)
	}
	return out
}

// Periods lists the label of every bucket in r, ascending.
func Periods(g Granularity, r Range) Axis {
	starts := PeriodStarts(g, r)
	out := make(Axis, len(starts))
	for i, t := range starts {
		out[i] = g.Label(t)
	}
	return out
}

// InRange keeps records whose creation bucket falls within r.
func InRange(v View, g Granularity, r Range) View {
	if r.Inverted() {
		return v.Slice(0, 0)
	}
	first, last := g.Truncate(r.Start), g.Truncate(r.End)
	return v.Where(func(t *domain.Ticket) bool {
		b := g.Truncate(t.Created)
		return !b.Before(first) && !b.After(last)
	})
}

// Bucket counts records per period of r, zero-filling empty periods.
func Bucket(v View, g Granularity, r Range) Series {
	return CountBy(InRange(v, g, r), ByPeriod("Period", g), Periods(g, r))
}

// BucketBy counts records per (period, col) over the contiguous periods of r.
// A nil cols axis uses the sorted observed labels.
func BucketBy(v View, g Granularity, r Range, col Dimension, cols Axis) *PivotTable {
	return Reconcile(Pivot(InRange(v, g, r), ByPeriod("Period", g), col), Periods(g, r), cols)
}

// ObservedRange returns the span between the earliest and latest creation
// time in the view. ok is false for an empty view.
func ObservedRange(v View) (r Range, ok bool) {
	for i := 0; i < v.Len(); i++ {
		created := v.At(i).Created
		if !ok {
			r = Range{Start: created, End: created}
			ok = true
			continue
		}
		if created.Before(r.Start) {
			r.Start = created
		}
		if created.After(r.End) {
			r.End = created
		}
	}
	return r, ok
}
