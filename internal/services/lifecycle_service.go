package services

import (
	"context"
	"log"

	"kds-backend/internal/metrics"
	"kds-backend/internal/models"
	"kds-backend/internal/timeutil"

	"github.com/google/uuid"
)

// LifecycleService moves lines through pending -> preparing -> ready ->
// served and toggles course march flags. Every successful move appends an
// audit event; event failures are logged and counted but never undo the
// move.
type LifecycleService struct {
	Lines    LineStore
	Flags    FlagStore
	Events   EventStore
	Monitors MonitorStore
	Printer  ChitPrinter
	Notify   Notifier
}

func NewLifecycleService(lines LineStore, flags FlagStore, events EventStore, monitors MonitorStore, printer ChitPrinter, notify Notifier) *LifecycleService {
	return &LifecycleService{
		Lines:    lines,
		Flags:    flags,
		Events:   events,
		Monitors: monitors,
		Printer:  printer,
		Notify:   notify,
	}
}

// Apply performs one lifecycle action on one line. Repeating an action the
// line has already absorbed is a no-op success; moving backwards or
// skipping a stage is rejected without touching the store.
func (s *LifecycleService) Apply(ctx context.Context, lineID uuid.UUID, action LineAction, actorID, monitorID int) (*models.TicketLine, error) {
	monitor, err := s.resolveMonitor(ctx, monitorID)
	if err != nil {
		return nil, err
	}

	line, err := s.Lines.Get(ctx, lineID)
	if err != nil {
		return nil, err
	}

	plan, err := planTransition(line.PrepStatus, action, autoServe(monitor, action))
	if err != nil {
		metrics.TransitionsRejected.WithLabelValues(string(action)).Inc()
		return nil, err
	}
	if plan.NoOp {
		return line, nil
	}

	now := timeutil.Now()
	moved, err := s.Lines.Transition(ctx, line.ID, plan.From, plan.To, plan.StampStart, plan.StampReady, now)
	if err != nil {
		return nil, err
	}
	if !moved {
		// Lost a race: someone moved the line between our read and the
		// guarded update. Re-read and judge the action against fresh state.
		fresh, err := s.Lines.Get(ctx, lineID)
		if err != nil {
			return nil, err
		}
		replan, err := planTransition(fresh.PrepStatus, action, autoServe(monitor, action))
		if err != nil {
			metrics.TransitionsRejected.WithLabelValues(string(action)).Inc()
			return nil, err
		}
		if replan.NoOp {
			return fresh, nil
		}
		return nil, models.ErrConflict
	}

	line.PrepStatus = plan.To
	if plan.StampStart {
		line.PrepStartedAt = &now
	}
	if plan.StampReady {
		line.ReadyAt = &now
	}

	s.recordEvent(ctx, &models.Event{
		TicketID:  line.TicketID,
		LineID:    &line.ID,
		Type:      actionEventType(action),
		ActorID:   actorID,
		MonitorID: optionalMonitorID(monitorID),
	})
	metrics.TransitionsTotal.WithLabelValues(string(action)).Inc()

	s.afterTransition(ctx, monitor, action, []*models.TicketLine{line}, actorID, monitorID)
	notifyBoards(s.Notify, []*models.TicketLine{line})
	return line, nil
}

// ApplyBatch performs one action on several lines atomically: either every
// line that still needs the move gets it, or none do. Lines the action has
// already reached count as no-ops and do not block the rest.
func (s *LifecycleService) ApplyBatch(ctx context.Context, lineIDs []uuid.UUID, action LineAction, actorID, monitorID int) ([]*models.TicketLine, error) {
	if len(lineIDs) == 0 {
		return nil, &models.ValidationError{Field: "line_ids", Reason: "must not be empty"}
	}
	// Multi-select UIs can submit the same line twice; GetMany and the
	// batch update both count distinct rows, so dedupe before comparing.
	lineIDs = distinctLineIDs(lineIDs)

	monitor, err := s.resolveMonitor(ctx, monitorID)
	if err != nil {
		return nil, err
	}

	lines, err := s.Lines.GetMany(ctx, lineIDs)
	if err != nil {
		return nil, err
	}
	if len(lines) != len(lineIDs) {
		return nil, models.ErrNotFound
	}

	// Plan every line before writing anything. One invalid line rejects the
	// whole batch so a multi-select never half-applies.
	var movers []*models.TicketLine
	var plan transitionPlan
	for _, line := range lines {
		p, err := planTransition(line.PrepStatus, action, autoServe(monitor, action))
		if err != nil {
			metrics.TransitionsRejected.WithLabelValues(string(action)).Inc()
			return nil, err
		}
		if p.NoOp {
			continue
		}
		movers = append(movers, line)
		plan = p
	}
	if len(movers) == 0 {
		return lines, nil
	}

	moverIDs := make([]uuid.UUID, len(movers))
	for i, line := range movers {
		moverIDs[i] = line.ID
	}

	now := timeutil.Now()
	moved, err := s.Lines.TransitionBatch(ctx, moverIDs, plan.From, plan.To, plan.StampStart, plan.StampReady, now)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, models.ErrConflict
	}

	for _, line := range movers {
		line.PrepStatus = plan.To
		if plan.StampStart {
			line.PrepStartedAt = &now
		}
		if plan.StampReady {
			line.ReadyAt = &now
		}
		s.recordEvent(ctx, &models.Event{
			TicketID:  line.TicketID,
			LineID:    &line.ID,
			Type:      actionEventType(action),
			ActorID:   actorID,
			MonitorID: optionalMonitorID(monitorID),
		})
		metrics.TransitionsTotal.WithLabelValues(string(action)).Inc()
	}

	s.afterTransition(ctx, monitor, action, movers, actorID, monitorID)
	notifyBoards(s.Notify, movers)
	return lines, nil
}

// March sets or clears the march flag on a (ticket, course) pair. The flag
// is an upsert keyed on the pair, so marching twice is idempotent.
func (s *LifecycleService) March(ctx context.Context, ticketID uuid.UUID, course int, marched bool, actorID, monitorID int) (*models.CourseFlag, error) {
	if course < 1 {
		return nil, &models.ValidationError{Field: "course", Reason: "course numbers start at 1"}
	}

	flag, err := s.Flags.Set(ctx, ticketID, course, marched, actorID, timeutil.Now())
	if err != nil {
		return nil, err
	}

	eventType := models.EventMarch
	if !marched {
		eventType = models.EventUnmarch
	}
	s.recordEvent(ctx, &models.Event{
		TicketID:  ticketID,
		Type:      eventType,
		ActorID:   actorID,
		MonitorID: optionalMonitorID(monitorID),
	})

	// Marched state changes styling on every monitor watching the ticket's
	// stations. Cheapest correct move is to refresh the lines' destinations.
	if lines, err := s.Lines.ListByTicket(ctx, ticketID); err == nil {
		notifyBoards(s.Notify, lines)
	}
	return flag, nil
}

// afterTransition runs the monitor's print policy. Line chits go out on
// finish; ticket chits go out when a serve leaves the whole ticket served.
func (s *LifecycleService) afterTransition(ctx context.Context, monitor *models.Monitor, action LineAction, moved []*models.TicketLine, actorID, monitorID int) {
	if monitor == nil || s.Printer == nil {
		return
	}

	if monitor.PrintOnLineComplete && action == ActionFinish {
		for _, line := range moved {
			s.printLine(ctx, line, actorID, monitorID)
		}
	}

	if !monitor.PrintOnOrderComplete {
		return
	}
	served := action == ActionServe || (action == ActionFinish && monitor.AutoServeOnFinish)
	if !served {
		return
	}
	for _, ticketID := range distinctTickets(moved) {
		lines, err := s.Lines.ListByTicket(ctx, ticketID)
		if err != nil {
			log.Printf("[Lifecycle] Order-complete check failed for ticket %s: %v", ticketID, err)
			continue
		}
		if !allServed(lines) {
			continue
		}
		if err := s.Printer.PrintTicketChit(ctx, ticketID, lines); err != nil {
			log.Printf("[Lifecycle] Ticket chit for %s failed: %v", ticketID, err)
			metrics.PrintDispatches.WithLabelValues("error").Inc()
			continue
		}
		metrics.PrintDispatches.WithLabelValues("ok").Inc()
		s.recordEvent(ctx, &models.Event{
			TicketID:  ticketID,
			Type:      models.EventPrint,
			ActorID:   actorID,
			MonitorID: optionalMonitorID(monitorID),
			Payload:   "order-complete",
		})
	}
}

func (s *LifecycleService) printLine(ctx context.Context, line *models.TicketLine, actorID, monitorID int) {
	if err := s.Printer.PrintLineChit(ctx, line); err != nil {
		log.Printf("[Lifecycle] Line chit for %s failed: %v", line.ID, err)
		metrics.PrintDispatches.WithLabelValues("error").Inc()
		return
	}
	metrics.PrintDispatches.WithLabelValues("ok").Inc()
	s.recordEvent(ctx, &models.Event{
		TicketID:  line.TicketID,
		LineID:    &line.ID,
		Type:      models.EventPrint,
		ActorID:   actorID,
		MonitorID: optionalMonitorID(monitorID),
		Payload:   "line-complete",
	})
}

// recordEvent appends to the audit log. The transition already committed;
// a failed append must not fail the request, so it only logs and counts.
func (s *LifecycleService) recordEvent(ctx context.Context, e *models.Event) {
	if err := s.Events.Create(ctx, e); err != nil {
		log.Printf("[Lifecycle] Event write failed (ticket %s, type %s): %v", e.TicketID, e.Type, err)
		metrics.EventWriteFailures.Inc()
	}
}

func (s *LifecycleService) resolveMonitor(ctx context.Context, monitorID int) (*models.Monitor, error) {
	if monitorID == 0 {
		return nil, nil
	}
	return s.Monitors.Get(ctx, monitorID)
}

// notifyBoards pushes one change hint per distinct destination.
func notifyBoards(n Notifier, lines []*models.TicketLine) {
	if n == nil {
		return
	}
	seen := make(map[models.Destination]bool)
	for _, line := range lines {
		if !seen[line.Destination] {
			seen[line.Destination] = true
			n.BoardChanged(line.Destination)
		}
	}
}

func autoServe(monitor *models.Monitor, action LineAction) bool {
	return monitor != nil && monitor.AutoServeOnFinish && action == ActionFinish
}

func actionEventType(action LineAction) models.EventType {
	switch action {
	case ActionStart:
		return models.EventStart
	case ActionFinish:
		return models.EventFinish
	default:
		return models.EventServe
	}
}

func optionalMonitorID(monitorID int) *int {
	if monitorID == 0 {
		return nil
	}
	return &monitorID
}

func distinctLineIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	var out []uuid.UUID
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func distinctTickets(lines []*models.TicketLine) []uuid.UUID {
	seen := make(map[uuid.UUID]bool)
	var out []uuid.UUID
	for _, line := range lines {
		if !seen[line.TicketID] {
			seen[line.TicketID] = true
			out = append(out, line.TicketID)
		}
	}
	return out
}

func allServed(lines []*models.TicketLine) bool {
	for _, line := range lines {
		if line.PrepStatus != models.StatusServed {
			return false
		}
	}
	return len(lines) > 0
}
