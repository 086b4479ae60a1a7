package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/socops/ticket-analytics/internal/analytics"
	"github.com/socops/ticket-analytics/internal/cache"
	"github.com/socops/ticket-analytics/internal/dataset"
	"github.com/socops/ticket-analytics/internal/domain"
	"github.com/socops/ticket-analytics/internal/observability"
	apperrors "github.com/socops/ticket-analytics/pkg/util"
)

// AnalyticsService answers dashboard queries over a loaded snapshot.
type AnalyticsService struct {
	snapshot *dataset.Snapshot
	cache    cache.ResponseCache
	metrics  *observability.Metrics
	logger   *zap.Logger
	ref      analytics.ReferencePeriod
	now      func() time.Time
}

// AnalyticsDependencies bundles collaborators for the analytics service.
type AnalyticsDependencies struct {
	Snapshot  *dataset.Snapshot
	Cache     cache.ResponseCache
	Metrics   *observability.Metrics
	Logger    *zap.Logger
	Reference analytics.ReferencePeriod
	// Clock anchors the default heartbeat window. Defaults to time.Now.
	Clock func() time.Time
}

// NewAnalyticsService constructs the service. Missing collaborators are
// replaced by empty or no-op ones.
func NewAnalyticsService(deps AnalyticsDependencies) *AnalyticsService {
	s := &AnalyticsService{
		snapshot: deps.Snapshot,
		cache:    deps.Cache,
		metrics:  deps.Metrics,
		logger:   deps.Logger,
		ref:      deps.Reference,
		now:      deps.Clock,
	}
	if s.snapshot == nil {
		s.snapshot = dataset.EmptySnapshot()
	}
	if s.cache == nil {
		s.cache = cache.Nop{}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Snapshot returns the dataset bundle the service reads.
func (s *AnalyticsService) Snapshot() *dataset.Snapshot {
	return s.snapshot
}

func (s *AnalyticsService) tickets() analytics.View {
	return analytics.All(s.snapshot.Tickets)
}

// remember serves a response from the cache or computes and stores it.
// Cache failures are logged and never fail the request.
func remember[T any](ctx context.Context, s *AnalyticsService, operation string, query url.Values, compute func() (T, error)) (T, error) {
	key := cache.Key(s.snapshot.Version, operation, query.Encode())
	var cached T
	hit, err := s.cache.Get(ctx, key, &cached)
	switch {
	case err != nil:
		s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	case hit:
		s.metrics.RecordCache(true)
		return cached, nil
	}
	s.metrics.RecordCache(false)

	value, err := compute()
	if err != nil {
		return value, err
	}
	if err := s.cache.Set(ctx, key, value); err != nil {
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return value, nil
}

// mapError converts engine failures into the DomainError taxonomy.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	switch {
	case errors.Is(err, analytics.ErrMalformedKey):
		return apperrors.NewDataIntegrityError(err)
	case errors.Is(err, analytics.ErrInvalidPageSize),
		errors.Is(err, analytics.ErrInvalidPage),
		errors.Is(err, analytics.ErrInvalidRange),
		errors.Is(err, analytics.ErrUnknownField):
		return apperrors.NewValidationError(err.Error(), nil)
	}
	return apperrors.NewInternalError(err)
}

func parseCSP(raw string) (domain.CSP, error) {
	if strings.TrimSpace(raw) == "" {
		return "", apperrors.NewValidationError("csp is required", map[string]any{"allowed": domain.KnownCSPs})
	}
	csp, err := domain.ParseCSP(raw)
	if err != nil {
		return "", apperrors.NewValidationError("invalid CSP specified", map[string]any{
			"csp":     raw,
			"allowed": domain.KnownCSPs,
		})
	}
	return csp, nil
}

// parseSortOrder accepts "asc" and "desc"; empty means ascending.
func parseSortOrder(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "asc":
		return true, nil
	case "desc":
		return false, nil
	}
	return false, apperrors.NewValidationError("sort order must be asc or desc", map[string]any{"sort_order": raw})
}

// SplitList splits a comma-separated parameter, trimming blanks and dropping
// duplicates while keeping first-seen order.
func SplitList(raw string) []string {
	out := []string{}
	seen := map[string]struct{}{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, ok := seen[part]; ok {
			continue
		}
		seen[part] = struct{}{}
		out = append(out, part)
	}
	return out
}

func yearRange(year int) analytics.Range {
	return analytics.Range{
		Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}

func monthRange(year, month int) analytics.Range {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return analytics.Range{Start: start, End: start.AddDate(0, 1, -1)}
}

func rowsOf(records []map[string]any) []map[string]any {
	if records == nil {
		return []map[string]any{}
	}
	return records
}

func labels(a analytics.Axis) []string {
	if a == nil {
		return []string{}
	}
	return []string(a)
}
