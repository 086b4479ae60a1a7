package dataset

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/socops/ticket-analytics/internal/config"
	"github.com/socops/ticket-analytics/internal/domain"
	"github.com/socops/ticket-analytics/internal/repository"
)

// ErrNoSources is returned when a dataset has no configured files.
var ErrNoSources = errors.New("no sources configured")

// Source produces the raw records of each dataset.
type Source interface {
	Name() string
	Tickets(ctx context.Context) ([]domain.Ticket, error)
	Heartbeats(ctx context.Context, csp domain.CSP) ([]domain.Ticket, error)
	Aging(ctx context.Context) ([]domain.AgingRecord, error)
}

// CSVSource reads datasets from the files listed in a manifest. Files of one
// dataset are read in parallel and concatenated in manifest order.
type CSVSource struct {
	manifest config.Manifest
	logger   *zap.Logger
}

// NewCSVSource creates a file-backed source.
func NewCSVSource(manifest config.Manifest, logger *zap.Logger) *CSVSource {
	return &CSVSource{manifest: manifest, logger: logger}
}

func (s *CSVSource) Name() string { return "csv" }

func (s *CSVSource) Tickets(ctx context.Context) ([]domain.Ticket, error) {
	return s.readTickets(ctx, s.manifest.Tickets)
}

func (s *CSVSource) Heartbeats(ctx context.Context, csp domain.CSP) ([]domain.Ticket, error) {
	switch csp {
	case domain.CSPAWS:
		return s.readTickets(ctx, s.manifest.AWSHeartbeats)
	case domain.CSPGCP:
		return s.readTickets(ctx, s.manifest.GCPHeartbeats)
	}
	return nil, fmt.Errorf("no heartbeat source for %s", csp)
}

func (s *CSVSource) Aging(ctx context.Context) ([]domain.AgingRecord, error) {
	paths := s.manifest.Aging
	if len(paths) == 0 {
		return nil, ErrNoSources
	}
	parts := make([][]domain.AgingRecord, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rc, err := Open(path)
			if err != nil {
				return err
			}
			defer rc.Close()
			records, stats, err := ParseAging(rc)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			s.logger.Info("aging source read", zap.String("path", path), zap.Int("rows", stats.Rows))
			parts[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out := make([]domain.AgingRecord, 0)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out, nil
}

func (s *CSVSource) readTickets(ctx context.Context, paths []string) ([]domain.Ticket, error) {
	if len(paths) == 0 {
		return nil, ErrNoSources
	}
	parts := make([][]domain.Ticket, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rc, err := Open(path)
			if err != nil {
				return err
			}
			defer rc.Close()
			tickets, stats, err := ParseTickets(rc)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if stats.Skipped > 0 {
				s.logger.Warn("skipped rows without a valid tCreated",
					zap.String("path", path), zap.Int("skipped", stats.Skipped))
			}
			s.logger.Info("ticket source read", zap.String("path", path), zap.Int("rows", stats.Rows))
			parts[i] = tickets
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	total := 0
	for _, p := range parts {
		total += len(p)
	}
	out := make([]domain.Ticket, 0, total)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out, nil
}

// PostgresSource reads datasets from the tables created by the migrations.
type PostgresSource struct {
	tickets repository.TicketRepository
	aging   repository.AgingRepository
}

// NewPostgresSource creates a database-backed source.
func NewPostgresSource(tickets repository.TicketRepository, aging repository.AgingRepository) *PostgresSource {
	return &PostgresSource{tickets: tickets, aging: aging}
}

func (s *PostgresSource) Name() string { return "postgres" }

func (s *PostgresSource) Tickets(ctx context.Context) ([]domain.Ticket, error) {
	return s.tickets.ListTickets(ctx, repository.TicketFilter{})
}

func (s *PostgresSource) Heartbeats(ctx context.Context, csp domain.CSP) ([]domain.Ticket, error) {
	return s.tickets.ListHeartbeats(ctx, csp)
}

func (s *PostgresSource) Aging(ctx context.Context) ([]domain.AgingRecord, error) {
	return s.aging.ListAging(ctx)
}
