package dataset

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/socops/ticket-analytics/internal/domain"
	"github.com/socops/ticket-analytics/internal/events"
)

// Dataset names used in logs, events and health output.
const (
	NameTickets      = "tickets"
	NameHeartbeatAWS = "heartbeat_aws"
	NameHeartbeatGCP = "heartbeat_gcp"
	NameAging        = "aging"
)

// Snapshot bundles every dataset the service queries. It is built once by
// Loader.Load and never modified afterwards.
type Snapshot struct {
	Tickets    *domain.Dataset
	Heartbeats map[domain.CSP]*domain.Dataset
	Aging      []domain.AgingRecord
	Version    string
	LoadedAt   time.Time
	Degraded   []string
}

// EmptySnapshot returns a snapshot whose datasets are all empty.
func EmptySnapshot() *Snapshot {
	hb := make(map[domain.CSP]*domain.Dataset, len(domain.KnownCSPs))
	for _, csp := range domain.KnownCSPs {
		hb[csp] = domain.EmptyDataset()
	}
	return &Snapshot{
		Tickets:    domain.EmptyDataset(),
		Heartbeats: hb,
		Aging:      []domain.AgingRecord{},
		Version:    uuid.NewString(),
		LoadedAt:   time.Now().UTC(),
	}
}

// Heartbeat returns the heartbeat dataset of csp, empty when none was loaded.
func (s *Snapshot) Heartbeat(csp domain.CSP) *domain.Dataset {
	if ds, ok := s.Heartbeats[csp]; ok && ds != nil {
		return ds
	}
	return domain.EmptyDataset()
}

// Counts reports the record count of each dataset.
func (s *Snapshot) Counts() map[string]int {
	return map[string]int{
		NameTickets:      s.Tickets.Len(),
		NameHeartbeatAWS: s.Heartbeat(domain.CSPAWS).Len(),
		NameHeartbeatGCP: s.Heartbeat(domain.CSPGCP).Len(),
		NameAging:        len(s.Aging),
	}
}

// Loader builds a Snapshot from a Source.
type Loader struct {
	source     Source
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewLoader creates a loader. dispatcher may be nil.
func NewLoader(source Source, dispatcher events.Dispatcher, logger *zap.Logger) *Loader {
	return &Loader{source: source, dispatcher: dispatcher, logger: logger}
}

// Load reads every dataset concurrently. A dataset whose source fails is
// replaced by an empty one and reported as degraded; only context
// cancellation fails the load.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	started := time.Now()
	snap := EmptySnapshot()

	var (
		mu       sync.Mutex
		degraded = map[string]string{}
	)
	degrade := func(name string, err error) {
		l.logger.Warn("dataset unavailable; using empty dataset",
			zap.String("dataset", name), zap.String("source", l.source.Name()), zap.Error(err))
		mu.Lock()
		degraded[name] = err.Error()
		mu.Unlock()
	}

	var g errgroup.Group
	g.Go(func() error {
		tickets, err := l.source.Tickets(ctx)
		if err != nil {
			degrade(NameTickets, err)
			return nil
		}
		snap.Tickets = domain.NewDataset(normalizeTickets(tickets))
		return nil
	})
	heartbeats := make([]*domain.Dataset, len(domain.KnownCSPs))
	for i, csp := range domain.KnownCSPs {
		g.Go(func() error {
			tickets, err := l.source.Heartbeats(ctx, csp)
			if err != nil {
				degrade(heartbeatName(csp), err)
				return nil
			}
			heartbeats[i] = domain.NewDataset(normalizeHeartbeats(csp, tickets))
			return nil
		})
	}
	g.Go(func() error {
		records, err := l.source.Aging(ctx)
		if err != nil {
			degrade(NameAging, err)
			return nil
		}
		snap.Aging = records
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for i, csp := range domain.KnownCSPs {
		if heartbeats[i] != nil {
			snap.Heartbeats[csp] = heartbeats[i]
		}
	}
	snap.LoadedAt = time.Now().UTC()

	for _, name := range []string{NameTickets, NameHeartbeatAWS, NameHeartbeatGCP, NameAging} {
		reason, ok := degraded[name]
		if !ok {
			continue
		}
		snap.Degraded = append(snap.Degraded, name)
		l.publish(ctx, events.NewEvent(events.EventDatasetDegraded, snap.Version,
			events.DatasetDegradedPayload{Dataset: name, Reason: reason}))
	}

	counts := snap.Counts()
	l.logger.Info("datasets loaded",
		zap.String("source", l.source.Name()),
		zap.String("version", snap.Version),
		zap.Any("counts", counts),
		zap.Duration("elapsed", time.Since(started)))
	l.publish(ctx, events.NewEvent(events.EventDatasetLoaded, snap.Version, events.DatasetLoadedPayload{
		Source:     l.source.Name(),
		Counts:     counts,
		DurationMs: time.Since(started).Milliseconds(),
	}))

	return snap, nil
}

func (l *Loader) publish(ctx context.Context, event events.Event) {
	if l.dispatcher == nil {
		return
	}
	if err := l.dispatcher.Publish(ctx, event); err != nil {
		l.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

func heartbeatName(csp domain.CSP) string {
	if csp == domain.CSPGCP {
		return NameHeartbeatGCP
	}
	return NameHeartbeatAWS
}

// normalizeTickets fills a missing Priority with "unknown" and stores
// timestamps in UTC.
func normalizeTickets(tickets []domain.Ticket) []domain.Ticket {
	for i := range tickets {
		t := &tickets[i]
		if t.Priority == "" {
			t.Priority = domain.PriorityUnknown
		}
		normalizeTimes(t)
	}
	return tickets
}

func normalizeHeartbeats(csp domain.CSP, tickets []domain.Ticket) []domain.Ticket {
	for i := range tickets {
		t := &tickets[i]
		if t.CSP == "" {
			t.CSP = string(csp)
		}
		if t.AlertType == "" {
			t.AlertType = domain.AlertTypeHeartbeat
		}
		normalizeTimes(t)
	}
	return tickets
}

func normalizeTimes(t *domain.Ticket) {
	t.Created = t.Created.UTC()
	if t.Resolved == nil {
		return
	}
	resolved := t.Resolved.UTC()
	if resolved.Before(t.Created) {
		t.Resolved = nil
		return
	}
	t.Resolved = &resolved
}
