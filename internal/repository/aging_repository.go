package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/socops/ticket-analytics/internal/domain"
)

// AgingRepository reads the pre-aggregated aging summary.
type AgingRepository interface {
	ListAging(ctx context.Context) ([]domain.AgingRecord, error)
}

type agingRepository struct {
	pool *pgxpool.Pool
}

func NewAgingRepository(pool *pgxpool.Pool) AgingRepository {
	return &agingRepository{pool: pool}
}

func (r *agingRepository) ListAging(ctx context.Context) ([]domain.AgingRecord, error) {
	const query = `
        SELECT csp, environment, alert_type, priority,
               average_hours_to_close, resolved_within_24h, percent_of_total, percent_within_24h
        FROM ticket_aging_summary ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.AgingRecord, error) {
		var rec domain.AgingRecord
		err := row.Scan(
			&rec.CSP,
			&rec.Environment,
			&rec.AlertType,
			&rec.Priority,
			&rec.AverageHoursToClose,
			&rec.ResolvedWithin24h,
			&rec.PercentOfTotal,
			&rec.PercentWithin24h,
		)
		return rec, err
	})
}
