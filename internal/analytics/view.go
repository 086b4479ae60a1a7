// Package analytics implements the in-memory query and aggregation engine
// over the ticket dataset: filtering, sorting, pagination, pivoting with
// axis reconciliation, time bucketing, heartbeat status and export.
//
// Every operation is a pure function over a View. Views index into an
// immutable domain.Dataset and never modify it.
package analytics

import (
	"errors"

	"github.com/socops/ticket-analytics/internal/domain"
)

var (
	ErrInvalidPageSize = errors.New("page size must be positive")
	ErrInvalidPage     = errors.New("page must be positive")
	ErrMalformedKey    = errors.New("ticket key has no numeric component")
	ErrInvalidRange    = errors.New("invalid date range")
	ErrUnknownField    = errors.New("unknown field")
)

// View is a filtered and ordered window onto a Dataset.
type View struct {
	ds  *domain.Dataset
	idx []int
}

// All returns a view over every record of ds. A nil dataset yields an empty view.
func All(ds *domain.Dataset) View {
	if ds == nil {
		ds = domain.EmptyDataset()
	}
	idx := make([]int, ds.Len())
	for i := range idx {
		idx[i] = i
	}
	return View{ds: ds, idx: idx}
}

// Len returns the number of records in the view.
func (v View) Len() int {
	return len(v.idx)
}

// At returns the i-th record of the view.
func (v View) At(i int) *domain.Ticket {
	return v.ds.At(v.idx[i])
}

// Where returns the records matching pred, preserving order.
func (v View) Where(pred func(*domain.Ticket) bool) View {
	out := make([]int, 0, len(v.idx))
	for _, i := range v.idx {
		if pred(v.ds.At(i)) {
			out = append(out, i)
		}
	}
	return View{ds: v.ds, idx: out}
}

// Slice returns records [from, to) of the view, clamped to its bounds.
func (v View) Slice(from, to int) View {
	if from < 0 {
		from = 0
	}
	if to > len(v.idx) {
		to = len(v.idx)
	}
	if from >= to {
		return View{ds: v.ds, idx: []int{}}
	}
	return View{ds: v.ds, idx: v.idx[from:to]}
}

// Tickets copies the viewed records out.
func (v View) Tickets() []domain.Ticket {
	out := make([]domain.Ticket, 0, len(v.idx))
	for _, i := range v.idx {
		out = append(out, *v.ds.At(i))
	}
	return out
}

// Distinct returns the sorted set of non-empty values of field in the view.
func (v View) Distinct(field domain.Field) Axis {
	values := make([]string, 0, len(v.idx))
	for _, i := range v.idx {
		values = append(values, v.ds.At(i).Text(field))
	}
	return DerivedAxis(values)
}
