package service

import (
	"bytes"
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/socops/ticket-analytics/internal/analytics"
	"github.com/socops/ticket-analytics/internal/api/dto"
	"github.com/socops/ticket-analytics/internal/domain"
	apperrors "github.com/socops/ticket-analytics/pkg/util"
)

// TicketListInput describes a listing request.
type TicketListInput struct {
	Page      int
	Size      int
	SortBy    string
	SortOrder string
	Global    analytics.GlobalFilter
	// Columns maps a column name to a substring filter.
	Columns map[string]string
}

// ListTickets filters, sorts and paginates the main dataset.
func (s *AnalyticsService) ListTickets(ctx context.Context, in TicketListInput) (dto.TicketPageResponse, error) {
	if in.Size <= 0 {
		return dto.TicketPageResponse{}, mapError(analytics.ErrInvalidPageSize)
	}
	if in.Page <= 0 {
		return dto.TicketPageResponse{}, mapError(analytics.ErrInvalidPage)
	}
	cols, err := analytics.ParseColumnFilters(in.Columns)
	if err != nil {
		return dto.TicketPageResponse{}, mapError(err)
	}
	ascending, err := parseSortOrder(in.SortOrder)
	if err != nil {
		return dto.TicketPageResponse{}, err
	}

	view := analytics.Filter(s.tickets(), analytics.Criteria{Global: in.Global, Columns: cols})
	view, err = analytics.Sort(view, in.SortBy, ascending)
	if err != nil {
		return dto.TicketPageResponse{}, mapError(err)
	}
	page, err := analytics.Paginate(view, in.Page, in.Size)
	if err != nil {
		return dto.TicketPageResponse{}, mapError(err)
	}

	items := make([]dto.TicketRecord, 0, page.Items.Len())
	for i := 0; i < page.Items.Len(); i++ {
		items = append(items, ticketRecord(page.Items.At(i)))
	}
	return dto.TicketPageResponse{
		Tickets:    items,
		TotalCount: page.TotalCount,
		TotalPages: page.TotalPages,
		Page:       page.Number,
		Size:       page.Size,
	}, nil
}

// TicketFilterOptions lists the distinct values of the filterable columns.
func (s *AnalyticsService) TicketFilterOptions(ctx context.Context) (dto.TicketFilterOptionsResponse, error) {
	return remember(ctx, s, "tickets-filter-options", url.Values{}, func() (dto.TicketFilterOptionsResponse, error) {
		v := s.tickets()
		return dto.TicketFilterOptionsResponse{
			Priority:          labels(v.Distinct(domain.FieldPriority)),
			CSP:               labels(v.Distinct(domain.FieldCSP)),
			AppCode:           labels(v.Distinct(domain.FieldAppCode)),
			Environment:       labels(v.Distinct(domain.FieldEnvironment)),
			NarrowEnvironment: labels(v.Distinct(domain.FieldNarrowEnvironment)),
		}, nil
	})
}

// ExportInput describes a CSV download.
type ExportInput struct {
	SortField string
	SortOrder string
	// Filters is a comma-separated list of column:substring pairs.
	Filters string
	Global  analytics.GlobalFilter
	// VisibleColumns is a comma-separated column projection.
	VisibleColumns string
}

// ExportTickets renders the filtered and sorted tickets as CSV.
func (s *AnalyticsService) ExportTickets(ctx context.Context, in ExportInput) ([]byte, error) {
	cols, err := analytics.ParseColumnFilters(parseFilterPairs(in.Filters))
	if err != nil {
		return nil, mapError(err)
	}
	ascending, err := parseSortOrder(in.SortOrder)
	if err != nil {
		return nil, err
	}

	view := analytics.Filter(s.tickets(), analytics.Criteria{Global: in.Global, Columns: cols})
	view, err = analytics.Sort(view, in.SortField, ascending)
	if err != nil {
		return nil, mapError(err)
	}

	var buf bytes.Buffer
	if err := analytics.ExportCSV(&buf, view, analytics.ProjectColumns(SplitList(in.VisibleColumns))); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return buf.Bytes(), nil
}

// parseFilterPairs reads "col:val,col:val". Pairs without a colon are
// ignored; a later pair for the same column wins.
func parseFilterPairs(raw string) map[string]string {
	out := map[string]string{}
	for _, part := range strings.Split(raw, ",") {
		col, val, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		col = strings.TrimSpace(col)
		if col == "" {
			continue
		}
		out[col] = strings.TrimSpace(val)
	}
	return out
}

func ticketRecord(t *domain.Ticket) dto.TicketRecord {
	rec := dto.TicketRecord{
		CSP:               t.CSP,
		Environment:       t.Environment,
		NarrowEnvironment: t.NarrowEnvironment,
		AlertType:         t.AlertType,
		Priority:          t.Priority,
		Key:               t.Key,
		AppCode:           t.AppCode,
		ConfigRule:        t.ConfigRule,
		Summary:           t.Summary,
		Account:           t.Account,
		Created:           t.Created.Format(time.RFC3339),
	}
	if t.Resolved != nil {
		resolved := t.Resolved.Format(time.RFC3339)
		rec.Resolved = &resolved
	}
	return rec
}
