package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/socops/ticket-analytics/internal/domain"
)

// ParseStats reports what a parse kept and dropped.
type ParseStats struct {
	Rows    int
	Skipped int
}

// timeLayouts covers ISO-8601 with and without offsets or fractions, as
// written by the fixture generators and common exports.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp reads a timestamp cell. Values without an offset are UTC.
func ParseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}

var errMissingColumn = errors.New("missing required column")

type header map[string]int

func readHeader(r *csv.Reader) (header, error) {
	names, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return header{}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	h := make(header, len(names))
	for i, name := range names {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		h[name] = i
	}
	return h, nil
}

func (h header) get(row []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (h header) require(names ...string) error {
	for _, name := range names {
		if _, ok := h[name]; !ok {
			return fmt.Errorf("%w %q", errMissingColumn, name)
		}
	}
	return nil
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	return cr
}

// ParseTickets reads ticket rows keyed by column name. Rows whose tCreated
// cannot be parsed are skipped. An unparsable tResolved, or one before
// tCreated, is treated as absent.
func ParseTickets(r io.Reader) ([]domain.Ticket, ParseStats, error) {
	cr := newReader(r)
	h, err := readHeader(cr)
	if err != nil {
		return nil, ParseStats{}, err
	}
	if len(h) == 0 {
		return []domain.Ticket{}, ParseStats{}, nil
	}
	if err := h.require(string(domain.FieldKey), string(domain.FieldCreated)); err != nil {
		return nil, ParseStats{}, err
	}

	var stats ParseStats
	out := make([]domain.Ticket, 0)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("read row %d: %w", stats.Rows+stats.Skipped+2, err)
		}

		created, err := ParseTimestamp(h.get(row, string(domain.FieldCreated)))
		if err != nil {
			stats.Skipped++
			continue
		}
		t := domain.Ticket{
			CSP:               h.get(row, string(domain.FieldCSP)),
			Environment:       h.get(row, string(domain.FieldEnvironment)),
			NarrowEnvironment: h.get(row, string(domain.FieldNarrowEnvironment)),
			AlertType:         h.get(row, string(domain.FieldAlertType)),
			Priority:          h.get(row, string(domain.FieldPriority)),
			Key:               h.get(row, string(domain.FieldKey)),
			AppCode:           h.get(row, string(domain.FieldAppCode)),
			ConfigRule:        h.get(row, string(domain.FieldConfigRule)),
			Summary:           h.get(row, string(domain.FieldSummary)),
			Account:           h.get(row, string(domain.FieldAccount)),
			Created:           created,
		}
		if raw := h.get(row, string(domain.FieldResolved)); raw != "" {
			if resolved, err := ParseTimestamp(raw); err == nil && !resolved.Before(created) {
				t.Resolved = &resolved
			}
		}
		out = append(out, t)
		stats.Rows++
	}
	return out, stats, nil
}

// Aging summary column names.
const (
	colAverageHoursToClose = "average_hours_to_close"
	colResolvedWithin24h   = "resolved_within_24h"
	colPercentOfTotal      = "percent_of_total"
	colPercentWithin24h    = "percent_within_24h"
)

// ParseAging reads the pre-aggregated aging summary. Blank or non-numeric
// measures are left nil.
func ParseAging(r io.Reader) ([]domain.AgingRecord, ParseStats, error) {
	cr := newReader(r)
	h, err := readHeader(cr)
	if err != nil {
		return nil, ParseStats{}, err
	}
	if len(h) == 0 {
		return []domain.AgingRecord{}, ParseStats{}, nil
	}
	if err := h.require("CSP", "Environment", "AlertType", "Priority"); err != nil {
		return nil, ParseStats{}, err
	}

	var stats ParseStats
	out := make([]domain.AgingRecord, 0)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("read row %d: %w", stats.Rows+2, err)
		}
		out = append(out, domain.AgingRecord{
			CSP:                 h.get(row, "CSP"),
			Environment:         h.get(row, "Environment"),
			AlertType:           h.get(row, "AlertType"),
			Priority:            h.get(row, "Priority"),
			AverageHoursToClose: parseMeasure(h.get(row, colAverageHoursToClose)),
			ResolvedWithin24h:   parseMeasure(h.get(row, colResolvedWithin24h)),
			PercentOfTotal:      parseMeasure(h.get(row, colPercentOfTotal)),
			PercentWithin24h:    parseMeasure(h.get(row, colPercentWithin24h)),
		})
		stats.Rows++
	}
	return out, stats, nil
}

func parseMeasure(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) {
		return nil
	}
	return &v
}
