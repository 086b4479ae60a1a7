package analytics

import (
	"fmt"
	"strings"

	"github.com/socops/ticket-analytics/internal/domain"
)

// Wildcard disables a global filter.
const Wildcard = "All"

// GlobalFilter holds the dashboard-wide exact-or-wildcard predicates.
// Zero Year and empty or "All" environments leave the field unconstrained.
type GlobalFilter struct {
	Year              int
	Environment       string
	NarrowEnvironment string
}

// ColumnFilters maps a searchable field to a case-insensitive substring.
type ColumnFilters map[domain.Field]string

// Criteria combines global and per-column predicates.
type Criteria struct {
	Global  GlobalFilter
	Columns ColumnFilters
}

// IsWildcard reports whether an exact-match value leaves the field unconstrained.
func IsWildcard(value string) bool {
	return value == "" || value == Wildcard
}

// ParseColumnFilters validates raw column names against the field enumeration.
// Empty values are dropped.
func ParseColumnFilters(raw map[string]string) (ColumnFilters, error) {
	out := make(ColumnFilters, len(raw))
	for name, value := range raw {
		field, ok := domain.ParseField(name)
		if !ok || !field.IsSearchable() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
		if value == "" {
			continue
		}
		out[field] = value
	}
	return out, nil
}

// Filter applies the global predicates followed by the column predicates.
func Filter(v View, c Criteria) View {
	return FilterColumns(FilterGlobal(v, c.Global), c.Columns)
}

// FilterGlobal applies year and environment predicates.
func FilterGlobal(v View, g GlobalFilter) View {
	if g.Year == 0 && IsWildcard(g.Environment) && IsWildcard(g.NarrowEnvironment) {
		return v
	}
	return v.Where(func(t *domain.Ticket) bool {
		if g.Year != 0 && t.Created.Year() != g.Year {
			return false
		}
		if !IsWildcard(g.Environment) && t.Environment != g.Environment {
			return false
		}
		if !IsWildcard(g.NarrowEnvironment) && t.NarrowEnvironment != g.NarrowEnvironment {
			return false
		}
		return true
	})
}

// FilterColumns applies case-insensitive substring predicates conjunctively.
func FilterColumns(v View, cols ColumnFilters) View {
	needles := make(map[domain.Field]string, len(cols))
	for f, q := range cols {
		if q == "" {
			continue
		}
		needles[f] = strings.ToLower(q)
	}
	if len(needles) == 0 {
		return v
	}
	return v.Where(func(t *domain.Ticket) bool {
		for f, needle := range needles {
			value := t.Text(f)
			if value == "" || !strings.Contains(strings.ToLower(value), needle) {
				return false
			}
		}
		return true
	})
}

// FilterEquals keeps records whose field equals value exactly.
func FilterEquals(v View, field domain.Field, value string) View {
	return v.Where(func(t *domain.Ticket) bool {
		return t.Text(field) == value
	})
}

// FilterIn keeps records whose field is one of values.
func FilterIn(v View, field domain.Field, values []string) View {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		set[value] = struct{}{}
	}
	return v.Where(func(t *domain.Ticket) bool {
		_, ok := set[t.Text(field)]
		return ok
	})
}
