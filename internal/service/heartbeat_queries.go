package service

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/socops/ticket-analytics/internal/analytics"
	"github.com/socops/ticket-analytics/internal/api/dto"
	"github.com/socops/ticket-analytics/internal/domain"
)

// HeartbeatInput selects heartbeat tickets of one provider. StartDate and
// EndDate must be given together; without them the trailing default window
// ending now is used.
type HeartbeatInput struct {
	CSP               string
	Year              int
	Environment       string
	NarrowEnvironment string
	StartDate         string
	EndDate           string
}

func (in HeartbeatInput) query(csp domain.CSP, r analytics.Range) url.Values {
	return url.Values{
		"csp":                {string(csp)},
		"year":               {strconv.Itoa(in.Year)},
		"environment":        {in.Environment},
		"narrow_environment": {in.NarrowEnvironment},
		"start":              {r.Start.Format(time.RFC3339)},
		"end":                {r.End.Format(time.RFC3339)},
	}
}

// ConfigRuleHeartbeat counts heartbeat tickets per ConfigRule and day over the
// requested or default window. Every rule carries one point per day.
func (s *AnalyticsService) ConfigRuleHeartbeat(ctx context.Context, in HeartbeatInput) (map[string][]dto.HeartbeatPoint, error) {
	csp, err := parseCSP(in.CSP)
	if err != nil {
		return nil, err
	}
	r, explicit, err := analytics.ParseRange(in.StartDate, in.EndDate)
	if err != nil {
		return nil, mapError(err)
	}

	compute := func() (map[string][]dto.HeartbeatPoint, error) {
		v := analytics.FilterGlobal(analytics.All(s.snapshot.Heartbeat(csp)), analytics.GlobalFilter{
			Environment:       in.Environment,
			NarrowEnvironment: in.NarrowEnvironment,
		})
		p := analytics.BucketBy(v, analytics.GranularityDay, r, analytics.ByField(domain.FieldConfigRule), nil)
		out := make(map[string][]dto.HeartbeatPoint, len(p.Columns))
		for _, rule := range p.Columns {
			points := make([]dto.HeartbeatPoint, 0, len(p.Rows))
			for _, day := range p.Rows {
				points = append(points, dto.HeartbeatPoint{Month: day, Count: p.Get(day, rule)})
			}
			out[rule] = points
		}
		return out, nil
	}

	if !explicit {
		r = analytics.DefaultWindow(s.now())
		return compute()
	}
	return remember(ctx, s, "configrule-heartbeat", in.query(csp, r), compute)
}

// HeartbeatStatus reports per-day success and failure counts. With a date
// range the axis spans the range; with only a year it spans the observed
// days of that year; otherwise it is the default window ending now.
func (s *AnalyticsService) HeartbeatStatus(ctx context.Context, in HeartbeatInput) (dto.HeartbeatStatusResponse, error) {
	csp, err := parseCSP(in.CSP)
	if err != nil {
		return dto.HeartbeatStatusResponse{}, err
	}
	r, explicit, err := analytics.ParseRange(in.StartDate, in.EndDate)
	if err != nil {
		return dto.HeartbeatStatusResponse{}, mapError(err)
	}

	v := analytics.FilterGlobal(analytics.All(s.snapshot.Heartbeat(csp)), analytics.GlobalFilter{
		Year:              in.Year,
		Environment:       in.Environment,
		NarrowEnvironment: in.NarrowEnvironment,
	})
	switch {
	case explicit:
	case in.Year != 0:
		observed, ok := analytics.ObservedRange(v)
		if !ok {
			return statusResponse(analytics.StatusSeries{}), nil
		}
		r = observed
	default:
		return statusResponse(analytics.StatusByPeriod(v, analytics.GranularityDay, analytics.DefaultWindow(s.now()))), nil
	}

	return remember(ctx, s, "heartbeat-status", in.query(csp, r), func() (dto.HeartbeatStatusResponse, error) {
		return statusResponse(analytics.StatusByPeriod(v, analytics.GranularityDay, r)), nil
	})
}

func statusResponse(s analytics.StatusSeries) dto.HeartbeatStatusResponse {
	out := dto.HeartbeatStatusResponse{
		Dates:   labels(s.Periods),
		Success: s.Success,
		Failed:  s.Failed,
	}
	if out.Success == nil {
		out.Success = []int{}
	}
	if out.Failed == nil {
		out.Failed = []int{}
	}
	return out
}
