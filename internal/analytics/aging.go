package analytics

import (
	"sort"

	"github.com/socops/ticket-analytics/internal/domain"
)

// AgingFilter holds exact-or-wildcard predicates over the aging summary.
type AgingFilter struct {
	CSP         string
	Environment string
	AlertType   string
	Priority    string
}

// FilterAging returns the matching aging rows in input order.
func FilterAging(records []domain.AgingRecord, f AgingFilter) []domain.AgingRecord {
	out := make([]domain.AgingRecord, 0, len(records))
	for _, r := range records {
		if !IsWildcard(f.CSP) && r.CSP != f.CSP {
			continue
		}
		if !IsWildcard(f.Environment) && r.Environment != f.Environment {
			continue
		}
		if !IsWildcard(f.AlertType) && r.AlertType != f.AlertType {
			continue
		}
		if !IsWildcard(f.Priority) && r.Priority != f.Priority {
			continue
		}
		out = append(out, r)
	}
	return out
}

// SortAging orders rows by CSP, canonical environment, canonical priority and
// alert type. Values outside a canonical order sort after it.
func SortAging(records []domain.AgingRecord) []domain.AgingRecord {
	out := append([]domain.AgingRecord{}, records...)
	envRank := rank(domain.AgingEnvironmentOrder)
	prioRank := rank(domain.AgingPriorityOrder)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.CSP != b.CSP {
			return a.CSP < b.CSP
		}
		if ea, eb := envRank(a.Environment), envRank(b.Environment); ea != eb {
			return ea < eb
		}
		if pa, pb := prioRank(a.Priority), prioRank(b.Priority); pa != pb {
			return pa < pb
		}
		return a.AlertType < b.AlertType
	})
	return out
}

func rank(order []string) func(string) int {
	positions := make(map[string]int, len(order))
	for i, v := range order {
		positions[v] = i
	}
	return func(v string) int {
		if p, ok := positions[v]; ok {
			return p
		}
		return len(order)
	}
}

// AgingOptions returns the sorted distinct values of each aging filter column.
func AgingOptions(records []domain.AgingRecord) map[string]Axis {
	cols := map[string][]string{"CSP": nil, "Environment": nil, "AlertType": nil, "Priority": nil}
	for _, r := range records {
		cols["CSP"] = append(cols["CSP"], r.CSP)
		cols["Environment"] = append(cols["Environment"], r.Environment)
		cols["AlertType"] = append(cols["AlertType"], r.AlertType)
		cols["Priority"] = append(cols["Priority"], r.Priority)
	}
	out := make(map[string]Axis, len(cols))
	for name, values := range cols {
		out[name] = DerivedAxis(values)
	}
	return out
}
