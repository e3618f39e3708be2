package repositories

import (
	"context"
	"time"

	"kds-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CourseFlagRepository struct {
	DB *pgxpool.Pool
}

func NewCourseFlagRepository(db *pgxpool.Pool) *CourseFlagRepository {
	return &CourseFlagRepository{DB: db}
}

// Set upserts the march flag for a (ticket, course) pair. Keyed writes keep
// the at-most-one-row-per-pair invariant under concurrent togglers.
func (r *CourseFlagRepository) Set(ctx context.Context, ticketID uuid.UUID, course int, marched bool, actorID int, now time.Time) (*models.CourseFlag, error) {
	var f models.CourseFlag
	err := r.DB.QueryRow(ctx,
		`INSERT INTO course_flags(ticket_id, course, marched, marched_at, marched_by)
		 VALUES($1, $2, $3, $4, $5)
		 ON CONFLICT (ticket_id, course)
		 DO UPDATE SET marched=EXCLUDED.marched, marched_at=EXCLUDED.marched_at, marched_by=EXCLUDED.marched_by
		 RETURNING ticket_id, course, marched, marched_at, marched_by`,
		ticketID, course, marched, now, actorID,
	).Scan(&f.TicketID, &f.Course, &f.Marched, &f.MarchedAt, &f.MarchedBy)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// ListByTickets resolves march flags for exactly the given ticket ids.
func (r *CourseFlagRepository) ListByTickets(ctx context.Context, ticketIDs []uuid.UUID) ([]*models.CourseFlag, error) {
	if len(ticketIDs) == 0 {
		return nil, nil
	}

	rows, err := r.DB.Query(ctx,
		`SELECT ticket_id, course, marched, marched_at, marched_by
		 FROM course_flags WHERE ticket_id = ANY($1)`, ticketIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var flags []*models.CourseFlag
	for rows.Next() {
		var f models.CourseFlag
		if err := rows.Scan(&f.TicketID, &f.Course, &f.Marched, &f.MarchedAt, &f.MarchedBy); err != nil {
			return nil, err
		}
		flags = append(flags, &f)
	}
	return flags, rows.Err()
}
