package services

import (
	"context"
	"time"

	"kds-backend/internal/models"

	"github.com/google/uuid"
)

// Storage interfaces consumed by the services. The pgx repositories satisfy
// them; tests substitute in-memory fakes.

type LineStore interface {
	ListForMonitor(ctx context.Context, destinations []models.Destination, courses []int, statuses []models.PrepStatus) ([]*models.TicketLine, error)
	ListServedSince(ctx context.Context, destinations []models.Destination, cutoff time.Time) ([]*models.TicketLine, error)
	Get(ctx context.Context, id uuid.UUID) (*models.TicketLine, error)
	GetMany(ctx context.Context, ids []uuid.UUID) ([]*models.TicketLine, error)
	ListByTicket(ctx context.Context, ticketID uuid.UUID) ([]*models.TicketLine, error)
	Transition(ctx context.Context, id uuid.UUID, from, to models.PrepStatus, stampStart, stampReady bool, now time.Time) (bool, error)
	TransitionBatch(ctx context.Context, ids []uuid.UUID, from, to models.PrepStatus, stampStart, stampReady bool, now time.Time) (bool, error)
}

type TicketStore interface {
	CreateWithLines(ctx context.Context, ticket *models.Ticket, lines []*models.TicketLine) error
	AppendLines(ctx context.Context, ticketID uuid.UUID, lines []*models.TicketLine) error
	GetSummaries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.TicketSummary, error)
}

type ModifierStore interface {
	ListByLines(ctx context.Context, lineIDs []uuid.UUID) (map[uuid.UUID][]*models.Modifier, error)
}

type FlagStore interface {
	Set(ctx context.Context, ticketID uuid.UUID, course int, marched bool, actorID int, now time.Time) (*models.CourseFlag, error)
	ListByTickets(ctx context.Context, ticketIDs []uuid.UUID) ([]*models.CourseFlag, error)
}

type EventStore interface {
	Create(ctx context.Context, e *models.Event) error
	ListByTicket(ctx context.Context, ticketID uuid.UUID) ([]*models.Event, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*models.Event, error)
}

type MonitorStore interface {
	Create(ctx context.Context, m *models.Monitor) error
	Get(ctx context.Context, id int) (*models.Monitor, error)
	ListActive(ctx context.Context, locationID int) ([]*models.Monitor, error)
	Update(ctx context.Context, m *models.Monitor) error
	Delete(ctx context.Context, id int) error
}

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	Get(ctx context.Context, id int) (*models.User, error)
	GetByCode(ctx context.Context, code string) (*models.User, error)
}

// Notifier pushes "board changed" hints to connected displays. The realtime
// hub implements it; a nil Notifier disables pushes.
type Notifier interface {
	BoardChanged(destination models.Destination)
}

// ChitPrinter dispatches chits to the physical printer bridge. Print
// failures are logged and counted, never surfaced to the acting cook.
type ChitPrinter interface {
	PrintLineChit(ctx context.Context, line *models.TicketLine) error
	PrintTicketChit(ctx context.Context, ticketID uuid.UUID, lines []*models.TicketLine) error
}
