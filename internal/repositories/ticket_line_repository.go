package repositories

import (
	"context"
	"errors"
	"time"

	"kds-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TicketLineRepository struct {
	DB *pgxpool.Pool
}

func NewTicketLineRepository(db *pgxpool.Pool) *TicketLineRepository {
	return &TicketLineRepository{DB: db}
}

const lineColumns = `id, ticket_id, product_id, item_name, quantity, unit_price,
	notes, prep_status, destination, course, target_prep_time, is_rush,
	sent_at, prep_started_at, ready_at`

// ListForMonitor returns the lines eligible for a monitor: destination and
// status in the monitor's filter, course in the filter when one is set.
// Oldest sent first; that ordering is cook priority, not cosmetics.
func (r *TicketLineRepository) ListForMonitor(ctx context.Context, destinations []models.Destination, courses []int, statuses []models.PrepStatus) ([]*models.TicketLine, error) {
	query := `SELECT ` + lineColumns + ` FROM ticket_lines
		 WHERE destination = ANY($1) AND prep_status = ANY($2)`
	args := []interface{}{destinationStrings(destinations), statusStrings(statuses)}
	if len(courses) > 0 {
		query += ` AND course = ANY($3)`
		args = append(args, courses)
	}
	query += ` ORDER BY sent_at ASC`

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLines(rows)
}

// ListServedSince returns served lines whose ready_at falls after the
// cutoff, newest first. This feeds the recall/history strip.
func (r *TicketLineRepository) ListServedSince(ctx context.Context, destinations []models.Destination, cutoff time.Time) ([]*models.TicketLine, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+lineColumns+` FROM ticket_lines
		 WHERE prep_status=$1 AND destination = ANY($2) AND ready_at >= $3
		 ORDER BY ready_at DESC`,
		models.StatusServed, destinationStrings(destinations), cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLines(rows)
}

func (r *TicketLineRepository) Get(ctx context.Context, id uuid.UUID) (*models.TicketLine, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+lineColumns+` FROM ticket_lines WHERE id=$1`, id)
	line, err := scanLine(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	return line, err
}

// GetMany returns the lines for a set of ids in one query.
func (r *TicketLineRepository) GetMany(ctx context.Context, ids []uuid.UUID) ([]*models.TicketLine, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.DB.Query(ctx,
		`SELECT `+lineColumns+` FROM ticket_lines WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLines(rows)
}

// ListByTicket returns every line of one ticket regardless of status.
// The lifecycle service uses it to detect order completion.
func (r *TicketLineRepository) ListByTicket(ctx context.Context, ticketID uuid.UUID) ([]*models.TicketLine, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+lineColumns+` FROM ticket_lines WHERE ticket_id=$1 ORDER BY sent_at ASC`, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLines(rows)
}

// Transition advances one line from the expected status, stamping the
// lifecycle timestamps in the same write. Returns false when the guard did
// not match, i.e. another display moved the line first.
func (r *TicketLineRepository) Transition(ctx context.Context, id uuid.UUID, from, to models.PrepStatus, stampStart, stampReady bool, now time.Time) (bool, error) {
	query, args := transitionSQL(id, from, to, stampStart, stampReady, now, false)
	tag, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// TransitionBatch advances a set of lines as one atomic write. All lines
// must sit in the expected status; otherwise nothing moves and the caller
// re-reads to report which line blocked the batch.
func (r *TicketLineRepository) TransitionBatch(ctx context.Context, ids []uuid.UUID, from, to models.PrepStatus, stampStart, stampReady bool, now time.Time) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}

	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	query, args := transitionSQL(ids, from, to, stampStart, stampReady, now, true)
	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() != int64(len(ids)) {
		// Partial course transitions are worse than rejected ones.
		return false, tx.Rollback(ctx)
	}
	return true, tx.Commit(ctx)
}

func transitionSQL(idArg interface{}, from, to models.PrepStatus, stampStart, stampReady bool, now time.Time, batch bool) (string, []interface{}) {
	query := `UPDATE ticket_lines SET prep_status=$3`
	args := []interface{}{idArg, from, to}
	if stampStart {
		query += `, prep_started_at=$4`
		args = append(args, now)
	} else if stampReady {
		query += `, ready_at=$4`
		args = append(args, now)
	}
	if batch {
		return query + ` WHERE id = ANY($1) AND prep_status=$2`, args
	}
	return query + ` WHERE id=$1 AND prep_status=$2`, args
}

func scanLines(rows pgx.Rows) ([]*models.TicketLine, error) {
	var lines []*models.TicketLine
	for rows.Next() {
		line, err := scanLine(rows)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func scanLine(row pgx.Row) (*models.TicketLine, error) {
	var line models.TicketLine
	err := row.Scan(&line.ID, &line.TicketID, &line.ProductID, &line.ItemName,
		&line.Quantity, &line.UnitPrice, &line.Notes, &line.PrepStatus,
		&line.Destination, &line.Course, &line.TargetPrepTime, &line.IsRush,
		&line.SentAt, &line.PrepStartedAt, &line.ReadyAt)
	if err != nil {
		return nil, err
	}
	return &line, nil
}
