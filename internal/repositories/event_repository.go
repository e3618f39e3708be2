package repositories

import (
	"context"
	"time"

	"kds-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventRepository struct {
	DB *pgxpool.Pool
}

func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{DB: db}
}

// Create appends one audit event. Events are never updated or deleted.
func (r *EventRepository) Create(ctx context.Context, e *models.Event) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO events(ticket_id, line_id, event_type, actor_id, monitor_id, payload)
		 VALUES($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		e.TicketID, e.LineID, e.Type, e.ActorID, e.MonitorID, e.Payload,
	).Scan(&e.ID, &e.CreatedAt)
}

func (r *EventRepository) ListByTicket(ctx context.Context, ticketID uuid.UUID) ([]*models.Event, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, ticket_id, line_id, event_type, actor_id, monitor_id, payload, created_at
		 FROM events WHERE ticket_id=$1 ORDER BY created_at DESC`, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

// ListBetween returns events in [from, to), oldest first. The daily report
// and the archive exporter both read through here.
func (r *EventRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*models.Event, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, ticket_id, line_id, event_type, actor_id, monitor_id, payload, created_at
		 FROM events WHERE created_at >= $1 AND created_at < $2 ORDER BY created_at ASC`,
		from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

func scanEvents(rows pgx.Rows) ([]*models.Event, error) {
	var events []*models.Event
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.TicketID, &e.LineID, &e.Type, &e.ActorID,
			&e.MonitorID, &e.Payload, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, &e)
	}
	return events, rows.Err()
}
