package services

import (
	"context"
	"log"
	"time"

	"kds-backend/internal/metrics"
	"kds-backend/internal/models"
	"kds-backend/internal/timeutil"

	"github.com/google/uuid"
)

// HistoryService serves the recall strip: recently served lines inside a
// monitor's trailing window, and the recall action that re-prints a chit
// for a line a runner lost track of.
type HistoryService struct {
	Lines     LineStore
	Modifiers ModifierStore
	Events    EventStore
	Monitors  *MonitorService
	Printer   ChitPrinter
}

func NewHistoryService(lines LineStore, modifiers ModifierStore, events EventStore, monitors *MonitorService, printer ChitPrinter) *HistoryService {
	return &HistoryService{Lines: lines, Modifiers: modifiers, Events: events, Monitors: monitors, Printer: printer}
}

// ClosedLines returns served lines whose ready stamp falls within the
// monitor's trailing window, most recent first. Best effort: any failure
// degrades to an empty list so the live queue is never blocked on history.
func (s *HistoryService) ClosedLines(ctx context.Context, monitorID int) ([]*models.TicketLine, error) {
	monitor, err := s.Monitors.Get(ctx, monitorID)
	if err != nil {
		return nil, err
	}
	if monitor.HistoryWindowMinutes <= 0 {
		return []*models.TicketLine{}, nil
	}

	cutoff := timeutil.Now().Add(-time.Duration(monitor.HistoryWindowMinutes) * time.Minute)
	lines, err := s.Lines.ListServedSince(ctx, monitor.Destinations, cutoff)
	if err != nil {
		log.Printf("[History] Query failed for monitor %d: %v", monitorID, err)
		return []*models.TicketLine{}, nil
	}
	// Recall chits carry the modifiers; a strip without them misleads the
	// runner re-firing a line.
	if err := attachModifiers(ctx, s.Modifiers, lines); err != nil {
		log.Printf("[History] Modifier lookup failed for monitor %d: %v", monitorID, err)
		return []*models.TicketLine{}, nil
	}
	return lines, nil
}

// Recall re-dispatches the chit for a served line and records the recall in
// the audit log. The line's status is untouched; recall is a paper action,
// not a state change.
func (s *HistoryService) Recall(ctx context.Context, lineID uuid.UUID, actorID, monitorID int) (*models.TicketLine, error) {
	line, err := s.Lines.Get(ctx, lineID)
	if err != nil {
		return nil, err
	}

	if s.Printer != nil {
		if err := s.Printer.PrintLineChit(ctx, line); err != nil {
			log.Printf("[History] Recall chit for %s failed: %v", lineID, err)
			metrics.PrintDispatches.WithLabelValues("error").Inc()
		} else {
			metrics.PrintDispatches.WithLabelValues("ok").Inc()
		}
	}

	event := &models.Event{
		TicketID: line.TicketID,
		LineID:   &line.ID,
		Type:     models.EventRecall,
		ActorID:  actorID,
	}
	if monitorID != 0 {
		event.MonitorID = &monitorID
	}
	if err := s.Events.Create(ctx, event); err != nil {
		log.Printf("[History] Recall event for %s failed: %v", lineID, err)
		metrics.EventWriteFailures.Inc()
	}
	return line, nil
}
