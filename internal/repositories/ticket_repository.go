package repositories

import (
	"context"

	"kds-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TicketRepository struct {
	DB *pgxpool.Pool
}

func NewTicketRepository(db *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{DB: db}
}

// CreateWithLines records a ticket, its lines and their modifiers in one
// transaction. This is the order-intake seam: either the whole ticket lands
// or none of it does.
func (r *TicketRepository) CreateWithLines(ctx context.Context, ticket *models.Ticket, lines []*models.TicketLine) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO tickets(id, label, server_id, covers)
		 VALUES($1, $2, $3, $4)
		 RETURNING opened_at`,
		ticket.ID, ticket.Label, ticket.ServerID, ticket.Covers,
	).Scan(&ticket.OpenedAt)
	if err != nil {
		return err
	}

	if err := insertLines(ctx, tx, lines); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// AppendLines adds late items to an existing ticket in one transaction.
func (r *TicketRepository) AppendLines(ctx context.Context, ticketID uuid.UUID, lines []*models.TicketLine) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM tickets WHERE id=$1)`, ticketID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return models.ErrNotFound
	}

	if err := insertLines(ctx, tx, lines); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func insertLines(ctx context.Context, tx pgx.Tx, lines []*models.TicketLine) error {
	for _, line := range lines {
		err := tx.QueryRow(ctx,
			`INSERT INTO ticket_lines(id, ticket_id, product_id, item_name, quantity,
			     unit_price, notes, prep_status, destination, course, target_prep_time, is_rush)
			 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			 RETURNING sent_at`,
			line.ID, line.TicketID, line.ProductID, line.ItemName, line.Quantity,
			line.UnitPrice, line.Notes, line.PrepStatus, line.Destination,
			line.Course, line.TargetPrepTime, line.IsRush,
		).Scan(&line.SentAt)
		if err != nil {
			return err
		}
		for _, mod := range line.Modifiers {
			_, err := tx.Exec(ctx,
				`INSERT INTO modifiers(id, line_id, name, option_name, price_delta, mod_type)
				 VALUES($1, $2, $3, $4, $5, $6)`,
				mod.ID, mod.LineID, mod.Name, mod.OptionName, mod.PriceDelta, mod.Type,
			)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// GetSummaries resolves ticket summaries for a set of ids in one query.
func (r *TicketRepository) GetSummaries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.TicketSummary, error) {
	summaries := make(map[uuid.UUID]*models.TicketSummary, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}

	rows, err := r.DB.Query(ctx,
		`SELECT id, label, covers, opened_at FROM tickets WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var s models.TicketSummary
		if err := rows.Scan(&s.ID, &s.Label, &s.Covers, &s.OpenedAt); err != nil {
			return nil, err
		}
		summaries[s.ID] = &s
	}
	return summaries, rows.Err()
}
