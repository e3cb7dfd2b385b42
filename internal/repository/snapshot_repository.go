package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/domain"
	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/engine"
)

// SnapshotRepository persists full engine snapshots. A snapshot replaces
// the previous one wholesale: the engine is the source of truth and the
// database is a restore point.
type SnapshotRepository interface {
	Save(ctx context.Context, snap engine.Snapshot) error
	Load(ctx context.Context) (engine.Snapshot, error)
}

type snapshotRepository struct {
	pool *pgxpool.Pool
}

// NewSnapshotRepository instantiates repository.
func NewSnapshotRepository(pool *pgxpool.Pool) SnapshotRepository {
	return &snapshotRepository{pool: pool}
}

func (r *snapshotRepository) Save(ctx context.Context, snap engine.Snapshot) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `TRUNCATE engine_state, tickets, ticket_dependencies, history_events`); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `INSERT INTO engine_state (id, next_ticket_id) VALUES (1, $1)`, snap.NextID); err != nil {
		return err
	}

	const insertTicket = `
        INSERT INTO tickets (id, title, description, priority, status, assignee, created_at, resolved_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	const insertDependency = `
        INSERT INTO ticket_dependencies (ticket_id, prerequisite_id) VALUES ($1,$2)`
	for _, ticket := range snap.Tickets {
		if _, err := tx.Exec(ctx, insertTicket,
			ticket.ID,
			ticket.Title,
			ticket.Description,
			ticket.Priority,
			ticket.Status,
			ticket.Assignee,
			ticket.CreatedAt,
			ticket.ResolvedAt,
		); err != nil {
			return err
		}
		for _, dep := range ticket.Dependencies {
			if _, err := tx.Exec(ctx, insertDependency, ticket.ID, dep); err != nil {
				return err
			}
		}
	}

	const insertEvent = `
        INSERT INTO history_events (seq, event_id, event_type, ticket_id, old_value, new_value, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`
	for i, event := range snap.Events {
		if _, err := tx.Exec(ctx, insertEvent,
			i,
			event.ID,
			string(event.Type),
			event.TicketID,
			event.OldValue,
			event.NewValue,
			event.CreatedAt,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *snapshotRepository) Load(ctx context.Context) (engine.Snapshot, error) {
	var snap engine.Snapshot

	err := r.pool.QueryRow(ctx, `SELECT next_ticket_id FROM engine_state WHERE id = 1`).Scan(&snap.NextID)
	if errors.Is(err, pgx.ErrNoRows) {
		return engine.Snapshot{NextID: 1}, nil
	}
	if err != nil {
		return engine.Snapshot{}, err
	}

	tickets, err := r.loadTickets(ctx)
	if err != nil {
		return engine.Snapshot{}, err
	}
	snap.Tickets = tickets

	events, err := r.loadEvents(ctx)
	if err != nil {
		return engine.Snapshot{}, err
	}
	snap.Events = events
	return snap, nil
}

func (r *snapshotRepository) loadTickets(ctx context.Context) ([]domain.Ticket, error) {
	const query = `
        SELECT id, title, description, priority, status, assignee, created_at, resolved_at
        FROM tickets ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []domain.Ticket
	index := make(map[int64]int)
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.Title,
			&ticket.Description,
			&ticket.Priority,
			&ticket.Status,
			&ticket.Assignee,
			&ticket.CreatedAt,
			&ticket.ResolvedAt,
		); err != nil {
			return nil, err
		}
		index[ticket.ID] = len(tickets)
		tickets = append(tickets, ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	depRows, err := r.pool.Query(ctx, `SELECT ticket_id, prerequisite_id FROM ticket_dependencies ORDER BY ticket_id, prerequisite_id`)
	if err != nil {
		return nil, err
	}
	defer depRows.Close()
	for depRows.Next() {
		var ticketID, prereq int64
		if err := depRows.Scan(&ticketID, &prereq); err != nil {
			return nil, err
		}
		if i, ok := index[ticketID]; ok {
			tickets[i].Dependencies = append(tickets[i].Dependencies, prereq)
		}
	}
	return tickets, depRows.Err()
}

func (r *snapshotRepository) loadEvents(ctx context.Context) ([]domain.HistoryEvent, error) {
	const query = `
        SELECT event_id, event_type, ticket_id, old_value, new_value, created_at
        FROM history_events ORDER BY seq`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.HistoryEvent
	for rows.Next() {
		var event domain.HistoryEvent
		var eventType string
		if err := rows.Scan(
			&event.ID,
			&eventType,
			&event.TicketID,
			&event.OldValue,
			&event.NewValue,
			&event.CreatedAt,
		); err != nil {
			return nil, err
		}
		event.Type = domain.HistoryEventType(eventType)
		result = append(result, event)
	}
	return result, rows.Err()
}
