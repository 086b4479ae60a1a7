package service

import (
	"context"
	"net/url"
	"strconv"

	"github.com/socops/ticket-analytics/internal/analytics"
	"github.com/socops/ticket-analytics/internal/api/dto"
	"github.com/socops/ticket-analytics/internal/domain"
	apperrors "github.com/socops/ticket-analytics/pkg/util"
)

// Row labels used in wide-form report rows.
const (
	rowMonth   = "Month"
	rowDay     = "Day"
	rowAppCode = "AppCode"
	colCount   = "count"
	colTotal   = "Total"
)

// ReportScope selects the tickets of one provider in one year.
type ReportScope struct {
	Year              int
	CSP               string
	Environment       string
	NarrowEnvironment string
}

func (r ReportScope) global() analytics.GlobalFilter {
	return analytics.GlobalFilter{Year: r.Year, Environment: r.Environment, NarrowEnvironment: r.NarrowEnvironment}
}

func (r ReportScope) query(csp domain.CSP) url.Values {
	return url.Values{
		"year":               {strconv.Itoa(r.Year)},
		"csp":                {string(csp)},
		"environment":        {r.Environment},
		"narrow_environment": {r.NarrowEnvironment},
	}
}

// scoped validates the scope and returns the matching tickets.
func (s *AnalyticsService) scoped(scope ReportScope) (analytics.View, domain.CSP, error) {
	if scope.Year <= 0 {
		return analytics.View{}, "", apperrors.NewValidationError("year is required", nil)
	}
	csp, err := parseCSP(scope.CSP)
	if err != nil {
		return analytics.View{}, "", err
	}
	v := analytics.FilterGlobal(s.tickets(), scope.global())
	return analytics.FilterEquals(v, domain.FieldCSP, string(csp)), csp, nil
}

// CSPVsPriority counts tickets per provider and priority. Every canonical
// priority is present for each provider.
func (s *AnalyticsService) CSPVsPriority(ctx context.Context) (map[string]map[string]int, error) {
	return remember(ctx, s, "csp-vs-priority", url.Values{}, func() (map[string]map[string]int, error) {
		p := analytics.Pivot(s.tickets(), analytics.ByField(domain.FieldCSP), analytics.ByField(domain.FieldPriority))
		return analytics.Reconcile(p, nil, analytics.UnionAxis(analytics.PriorityAxis, p.Columns)).Index(), nil
	})
}

// AppCodeVsPriority counts tickets per AppCode over the canonical priorities.
func (s *AnalyticsService) AppCodeVsPriority(ctx context.Context) ([]dto.Row, error) {
	return remember(ctx, s, "appcode-vs-priority", url.Values{}, func() ([]dto.Row, error) {
		p := analytics.Pivot(s.tickets(), analytics.ByField(domain.FieldAppCode), analytics.ByField(domain.FieldPriority))
		return rowsOf(analytics.Reconcile(p, nil, analytics.PriorityAxis).Records(rowAppCode)), nil
	})
}

// EnvironmentSummaryInput describes the stacked monthly summary request.
type EnvironmentSummaryInput struct {
	Year              int
	Environment       string
	NarrowEnvironment string
}

// EnvironmentSummary stacks monthly counts per provider by environment, and
// reports per-provider totals and monthly averages.
func (s *AnalyticsService) EnvironmentSummary(ctx context.Context, in EnvironmentSummaryInput) (dto.EnvironmentSummaryResponse, error) {
	query := url.Values{
		"year":               {strconv.Itoa(in.Year)},
		"environment":        {in.Environment},
		"narrow_environment": {in.NarrowEnvironment},
	}
	return remember(ctx, s, "environment-summary", query, func() (dto.EnvironmentSummaryResponse, error) {
		v := analytics.FilterGlobal(s.tickets(), analytics.GlobalFilter{
			Year:              in.Year,
			Environment:       in.Environment,
			NarrowEnvironment: in.NarrowEnvironment,
		})
		summary := analytics.StackedMonthly(v, analytics.StackField(in.Environment))
		return dto.EnvironmentSummaryResponse{
			AWS:         rowsOf(summary.Rows(string(domain.CSPAWS)).Records(rowMonth)),
			GCP:         rowsOf(summary.Rows(string(domain.CSPGCP)).Records(rowMonth)),
			AWSStats:    statistics(v, domain.CSPAWS, in.Year, s.ref),
			GCPStats:    statistics(v, domain.CSPGCP, in.Year, s.ref),
			StackBy:     string(summary.StackBy),
			StackValues: labels(summary.StackValues),
		}, nil
	})
}

func statistics(v analytics.View, csp domain.CSP, year int, ref analytics.ReferencePeriod) dto.CSPStatistics {
	st := analytics.Statistics(v, string(csp), year, ref)
	return dto.CSPStatistics{TotalTickets: st.TotalTickets, MonthlyAverage: st.MonthlyAverage}
}

// TicketCountByAppCode counts a provider's tickets per month (Jan–Dec) and AppCode.
func (s *AnalyticsService) TicketCountByAppCode(ctx context.Context, scope ReportScope) (dto.AppCodeCountsResponse, error) {
	v, csp, err := s.scoped(scope)
	if err != nil {
		return dto.AppCodeCountsResponse{}, err
	}
	return remember(ctx, s, "ticket-count-by-appcode", scope.query(csp), func() (dto.AppCodeCountsResponse, error) {
		p := analytics.Reconcile(analytics.Pivot(v, analytics.ByMonthName, analytics.ByField(domain.FieldAppCode)), analytics.MonthAxis, nil)
		return dto.AppCodeCountsResponse{
			Data:     rowsOf(p.Records(rowMonth)),
			AppCodes: labels(p.Columns),
		}, nil
	})
}

// TotalTicketCountByAppCode counts a provider's tickets per AppCode.
func (s *AnalyticsService) TotalTicketCountByAppCode(ctx context.Context, scope ReportScope) (map[string]int, error) {
	v, csp, err := s.scoped(scope)
	if err != nil {
		return nil, err
	}
	return remember(ctx, s, "total-ticket-count-by-appcode", scope.query(csp), func() (map[string]int, error) {
		totals := analytics.Totals(v, analytics.ByField(domain.FieldAppCode))
		delete(totals, "")
		return totals, nil
	})
}

// ControlCountByAppCode counts a provider's tickets per AppCode and ConfigRule.
func (s *AnalyticsService) ControlCountByAppCode(ctx context.Context, scope ReportScope) (dto.ControlCountResponse, error) {
	v, csp, err := s.scoped(scope)
	if err != nil {
		return dto.ControlCountResponse{}, err
	}
	return remember(ctx, s, "control-count-by-appcode", scope.query(csp), func() (dto.ControlCountResponse, error) {
		p := analytics.Reconcile(analytics.Pivot(v, analytics.ByField(domain.FieldAppCode), analytics.ByField(domain.FieldConfigRule)), nil, nil)
		return dto.ControlCountResponse{
			Data:        rowsOf(p.Records(rowAppCode)),
			ConfigRules: labels(p.Columns),
		}, nil
	})
}

// Heatmap renders AppCode × ConfigRule counts as a dense matrix.
func (s *AnalyticsService) Heatmap(ctx context.Context, scope ReportScope) (dto.HeatmapResponse, error) {
	v, csp, err := s.scoped(scope)
	if err != nil {
		return dto.HeatmapResponse{}, err
	}
	return remember(ctx, s, "heatmap", scope.query(csp), func() (dto.HeatmapResponse, error) {
		p := analytics.Reconcile(analytics.Pivot(v, analytics.ByField(domain.FieldAppCode), analytics.ByField(domain.FieldConfigRule)), nil, nil)
		return dto.HeatmapResponse{
			Data:        p.Matrix(),
			AppCodes:    labels(p.Rows),
			ConfigRules: labels(p.Columns),
		}, nil
	})
}

// AppCodeTrendsInput selects AppCodes within a report scope. The AppCode
// order is kept in the response.
type AppCodeTrendsInput struct {
	Scope    ReportScope
	AppCodes []string
}

func (in AppCodeTrendsInput) validate() error {
	if len(in.AppCodes) == 0 {
		return apperrors.NewValidationError("app_codes is required", nil)
	}
	return nil
}

// AppCodeTrends buckets the selected AppCodes by month over the whole year.
func (s *AnalyticsService) AppCodeTrends(ctx context.Context, in AppCodeTrendsInput) (dto.AppCodeTrendsResponse, error) {
	if err := in.validate(); err != nil {
		return dto.AppCodeTrendsResponse{}, err
	}
	v, csp, err := s.scoped(in.Scope)
	if err != nil {
		return dto.AppCodeTrendsResponse{}, err
	}
	query := in.Scope.query(csp)
	query["app_codes"] = in.AppCodes
	return remember(ctx, s, "appcode-trends", query, func() (dto.AppCodeTrendsResponse, error) {
		selected := analytics.FilterIn(v, domain.FieldAppCode, in.AppCodes)
		r := yearRange(in.Scope.Year)
		return dto.AppCodeTrendsResponse{
			MonthlyTrend:   seriesRows(analytics.Bucket(selected, analytics.GranularityMonth, r), rowMonth),
			MonthlyHeatmap: rowsOf(analytics.BucketBy(selected, analytics.GranularityMonth, r, analytics.ByField(domain.FieldAppCode), in.AppCodes).Records(rowMonth)),
			AppCodes:       in.AppCodes,
		}, nil
	})
}

// AppCodeDailyTrendsInput selects AppCodes within one month.
type AppCodeDailyTrendsInput struct {
	Year     int
	Month    int
	CSP      string
	AppCodes []string
}

// AppCodeDailyTrends buckets the selected AppCodes by day over one month.
func (s *AnalyticsService) AppCodeDailyTrends(ctx context.Context, in AppCodeDailyTrendsInput) (dto.AppCodeDailyTrendsResponse, error) {
	if in.Month < 1 || in.Month > 12 {
		return dto.AppCodeDailyTrendsResponse{}, apperrors.NewValidationError("month must be between 1 and 12", map[string]any{"month": in.Month})
	}
	if len(in.AppCodes) == 0 {
		return dto.AppCodeDailyTrendsResponse{}, apperrors.NewValidationError("app_codes is required", nil)
	}
	scope := ReportScope{Year: in.Year, CSP: in.CSP}
	v, csp, err := s.scoped(scope)
	if err != nil {
		return dto.AppCodeDailyTrendsResponse{}, err
	}
	query := scope.query(csp)
	query["month"] = []string{strconv.Itoa(in.Month)}
	query["app_codes"] = in.AppCodes
	return remember(ctx, s, "appcode-trends-daily", query, func() (dto.AppCodeDailyTrendsResponse, error) {
		selected := analytics.FilterIn(v, domain.FieldAppCode, in.AppCodes)
		r := monthRange(in.Year, in.Month)
		return dto.AppCodeDailyTrendsResponse{
			DailyTrend:   seriesRows(analytics.Bucket(selected, analytics.GranularityDay, r), rowDay),
			DailyHeatmap: rowsOf(analytics.BucketBy(selected, analytics.GranularityDay, r, analytics.ByField(domain.FieldAppCode), in.AppCodes).Records(rowDay)),
			AppCodes:     in.AppCodes,
		}, nil
	})
}

// ConfigRuleTrends buckets the ConfigRules of the selected AppCodes by month,
// with a per-month Total. Tickets without a ConfigRule are left out.
func (s *AnalyticsService) ConfigRuleTrends(ctx context.Context, in AppCodeTrendsInput) (dto.ConfigRuleTrendsResponse, error) {
	if err := in.validate(); err != nil {
		return dto.ConfigRuleTrendsResponse{}, err
	}
	v, csp, err := s.scoped(in.Scope)
	if err != nil {
		return dto.ConfigRuleTrendsResponse{}, err
	}
	query := in.Scope.query(csp)
	query["app_codes"] = in.AppCodes
	return remember(ctx, s, "appcode-configrule-trends", query, func() (dto.ConfigRuleTrendsResponse, error) {
		selected := analytics.FilterIn(v, domain.FieldAppCode, in.AppCodes).Where(func(t *domain.Ticket) bool {
			return t.ConfigRule != ""
		})
		p := analytics.BucketBy(selected, analytics.GranularityMonth, yearRange(in.Scope.Year), analytics.ByField(domain.FieldConfigRule), nil)
		rows := p.Records(rowMonth)
		for i, month := range p.Rows {
			rows[i][colTotal] = p.RowTotal(month)
		}
		return dto.ConfigRuleTrendsResponse{
			TrendData:   rowsOf(rows),
			ConfigRules: labels(p.Columns),
		}, nil
	})
}

func seriesRows(s analytics.Series, labelKey string) []dto.Row {
	out := make([]dto.Row, 0, len(s.Labels))
	for i, label := range s.Labels {
		out = append(out, dto.Row{labelKey: label, colCount: s.Counts[i]})
	}
	return out
}
