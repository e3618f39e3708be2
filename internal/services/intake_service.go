package services

import (
	"context"
	"log"

	"kds-backend/internal/metrics"
	"kds-backend/internal/models"
	"kds-backend/internal/timeutil"

	"github.com/google/uuid"
)

// IntakeService is the seam to order entry: it accepts sent tickets and
// late-added lines, normalizes them, and lands them as pending work.
type IntakeService struct {
	Tickets TicketStore
	Events  EventStore
	Notify  Notifier
}

func NewIntakeService(tickets TicketStore, events EventStore, notify Notifier) *IntakeService {
	return &IntakeService{Tickets: tickets, Events: events, Notify: notify}
}

// Ingest creates a ticket and its lines in one transaction. Upstream may
// supply ids (so POS and displays agree on identity) or leave them zero and
// let this side mint them.
func (s *IntakeService) Ingest(ctx context.Context, req *models.IntakeTicketRequest) (*models.Ticket, []*models.TicketLine, error) {
	if len(req.Lines) == 0 {
		return nil, nil, &models.ValidationError{Field: "lines", Reason: "must not be empty"}
	}

	ticket := &models.Ticket{
		ID:     req.ID,
		Label:  req.Label,
		Covers: req.Covers,
	}
	if ticket.ID == uuid.Nil {
		ticket.ID = uuid.New()
	}

	lines, err := buildLines(ticket.ID, req.Lines)
	if err != nil {
		return nil, nil, err
	}

	if err := s.Tickets.CreateWithLines(ctx, ticket, lines); err != nil {
		return nil, nil, err
	}

	s.recordEvent(ctx, &models.Event{TicketID: ticket.ID, Type: models.EventSent, Payload: ticket.Label})
	notifyBoards(s.Notify, lines)
	log.Printf("[Intake] Ticket %s (%s) sent with %d lines", ticket.ID, ticket.Label, len(lines))
	return ticket, lines, nil
}

// AddItems appends lines to an existing ticket, the fire-more-food path.
func (s *IntakeService) AddItems(ctx context.Context, ticketID uuid.UUID, reqs []models.IntakeLineRequest) ([]*models.TicketLine, error) {
	if len(reqs) == 0 {
		return nil, &models.ValidationError{Field: "lines", Reason: "must not be empty"}
	}

	lines, err := buildLines(ticketID, reqs)
	if err != nil {
		return nil, err
	}

	if err := s.Tickets.AppendLines(ctx, ticketID, lines); err != nil {
		return nil, err
	}

	s.recordEvent(ctx, &models.Event{TicketID: ticketID, Type: models.EventAddItems})
	notifyBoards(s.Notify, lines)
	return lines, nil
}

func buildLines(ticketID uuid.UUID, reqs []models.IntakeLineRequest) ([]*models.TicketLine, error) {
	now := timeutil.Now()
	lines := make([]*models.TicketLine, 0, len(reqs))
	for _, r := range reqs {
		if r.ItemName == "" {
			return nil, &models.ValidationError{Field: "item_name", Reason: "must not be empty"}
		}
		if r.Destination != "" && !models.ValidDestination(r.Destination) {
			return nil, &models.ValidationError{Field: "destination", Reason: "unknown station " + string(r.Destination)}
		}

		line := &models.TicketLine{
			ID:             r.ID,
			TicketID:       ticketID,
			ProductID:      r.ProductID,
			ItemName:       r.ItemName,
			Quantity:       r.Quantity,
			UnitPrice:      r.UnitPrice,
			Notes:          r.Notes,
			PrepStatus:     models.StatusPending,
			Destination:    r.Destination,
			Course:         r.Course,
			TargetPrepTime: r.TargetPrepTime,
			IsRush:         r.IsRush,
			SentAt:         now,
		}
		if line.ID == uuid.Nil {
			line.ID = uuid.New()
		}
		line.Normalize()

		for _, m := range r.Modifiers {
			line.Modifiers = append(line.Modifiers, &models.Modifier{
				ID:         uuid.New(),
				LineID:     line.ID,
				Name:       m.Name,
				OptionName: m.OptionName,
				PriceDelta: m.PriceDelta,
				Type:       models.InferModifierType(m.Name),
			})
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (s *IntakeService) recordEvent(ctx context.Context, e *models.Event) {
	if err := s.Events.Create(ctx, e); err != nil {
		log.Printf("[Intake] Event write failed (ticket %s, type %s): %v", e.TicketID, e.Type, err)
		metrics.EventWriteFailures.Inc()
	}
}
