package analytics

import (
	"encoding/csv"
	"io"
	"time"

	"github.com/socops/ticket-analytics/internal/domain"
)

// Export response hints.
const (
	ExportContentType = "text/csv"
	ExportDisposition = "attachment; filename=tickets.csv"
)

// ProjectColumns returns the requested columns that exist, in requested
// order. Unknown names are dropped. When nothing remains every column is
// returned.
func ProjectColumns(requested []string) []domain.Field {
	out := make([]domain.Field, 0, len(requested))
	seen := make(map[domain.Field]struct{}, len(requested))
	for _, name := range requested {
		f, ok := domain.ParseField(name)
		if !ok {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	if len(out) == 0 {
		return append([]domain.Field{}, domain.AllFields...)
	}
	return out
}

// FormatValue renders one cell. Timestamps use ISO-8601 and missing values
// render as the empty string.
func FormatValue(t *domain.Ticket, f domain.Field) string {
	if f.IsTemporal() {
		ts := t.Time(f)
		if ts == nil {
			return ""
		}
		return ts.Format(time.RFC3339)
	}
	return t.Text(f)
}

// ExportCSV writes the view as CSV with a header row.
func ExportCSV(w io.Writer, v View, columns []domain.Field) error {
	if len(columns) == 0 {
		columns = domain.AllFields
	}
	cw := csv.NewWriter(w)
	header := make([]string, len(columns))
	for i, f := range columns {
		header[i] = string(f)
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	row := make([]string, len(columns))
	for i := 0; i < v.Len(); i++ {
		t := v.At(i)
		for j, f := range columns {
			row[j] = FormatValue(t, f)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
