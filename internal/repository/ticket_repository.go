package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/socops/ticket-analytics/internal/domain"
)

// Table names backing the Postgres dataset source.
const (
	TicketsTable   = "tickets"
	HeartbeatTable = "heartbeat_tickets"
)

// TicketFilter narrows a bulk read. Zero values leave a field unconstrained.
type TicketFilter struct {
	CSP   domain.CSP
	Limit int
}

// TicketRepository reads ticket snapshots from Postgres.
type TicketRepository interface {
	ListTickets(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	ListHeartbeats(ctx context.Context, csp domain.CSP) ([]domain.Ticket, error)
	CopyTickets(ctx context.Context, table string, tickets []domain.Ticket) (int64, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `csp, environment, narrow_environment, alert_type, priority, ticket_key,
               app_code, config_rule, summary, account, created_at, resolved_at`

const heartbeatColumns = `csp, environment, '' AS narrow_environment, alert_type, priority, ticket_key,
               app_code, config_rule, summary, account, created_at, resolved_at`

func (r *ticketRepository) ListTickets(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CSP != "" {
		args = append(args, string(filter.CSP))
		clauses = append(clauses, fmt.Sprintf("csp=$%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s ORDER BY id`, ticketColumns, TicketsTable, strings.Join(clauses, " AND "))
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) ListHeartbeats(ctx context.Context, csp domain.CSP) ([]domain.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE csp=$1 ORDER BY id`, heartbeatColumns, HeartbeatTable)
	rows, err := r.pool.Query(ctx, query, string(csp))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

// CopyTickets bulk-inserts tickets into table with the COPY protocol.
func (r *ticketRepository) CopyTickets(ctx context.Context, table string, tickets []domain.Ticket) (int64, error) {
	columns := []string{"csp", "environment", "alert_type", "priority", "ticket_key",
		"app_code", "config_rule", "summary", "account", "created_at", "resolved_at"}
	if table == TicketsTable {
		columns = append(columns, "narrow_environment")
	} else if table != HeartbeatTable {
		return 0, fmt.Errorf("unknown ticket table %q", table)
	}

	return r.pool.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromSlice(len(tickets), func(i int) ([]any, error) {
		t := tickets[i]
		row := []any{t.CSP, t.Environment, t.AlertType, t.Priority, t.Key,
			t.AppCode, t.ConfigRule, t.Summary, t.Account, t.Created, t.Resolved}
		if table == TicketsTable {
			row = append(row, t.NarrowEnvironment)
		}
		return row, nil
	}))
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	result := []domain.Ticket{}
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.CSP,
			&ticket.Environment,
			&ticket.NarrowEnvironment,
			&ticket.AlertType,
			&ticket.Priority,
			&ticket.Key,
			&ticket.AppCode,
			&ticket.ConfigRule,
			&ticket.Summary,
			&ticket.Account,
			&ticket.Created,
			&ticket.Resolved,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
