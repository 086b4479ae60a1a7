package service

import (
	"context"

	"github.com/socops/ticket-analytics/internal/analytics"
	"github.com/socops/ticket-analytics/internal/api/dto"
)

// AgingFilterOptions lists the distinct values of each aging column.
func (s *AnalyticsService) AgingFilterOptions(ctx context.Context) dto.AgingFilterOptionsResponse {
	opts := analytics.AgingOptions(s.snapshot.Aging)
	return dto.AgingFilterOptionsResponse{
		CSP:         labels(opts["CSP"]),
		Environment: labels(opts["Environment"]),
		AlertType:   labels(opts["AlertType"]),
		Priority:    labels(opts["Priority"]),
	}
}

// AgingSummary returns the matching aging rows in canonical order.
func (s *AnalyticsService) AgingSummary(ctx context.Context, filter analytics.AgingFilter) []dto.AgingRecord {
	records := analytics.SortAging(analytics.FilterAging(s.snapshot.Aging, filter))
	out := make([]dto.AgingRecord, 0, len(records))
	for _, r := range records {
		out = append(out, dto.AgingRecord{
			CSP:                 r.CSP,
			Environment:         r.Environment,
			AlertType:           r.AlertType,
			Priority:            r.Priority,
			AverageHoursToClose: r.AverageHoursToClose,
			ResolvedWithin24h:   r.ResolvedWithin24h,
			PercentOfTotal:      r.PercentOfTotal,
			PercentWithin24h:    r.PercentWithin24h,
		})
	}
	return out
}
