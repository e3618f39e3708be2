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

// BoardService builds what a display renders: the work query, the grouped
// and styled queue, and the served-history strip.
type BoardService struct {
	Lines     LineStore
	Tickets   TicketStore
	Modifiers ModifierStore
	Flags     FlagStore
	Monitors  *MonitorService
}

func NewBoardService(lines LineStore, tickets TicketStore, modifiers ModifierStore, flags FlagStore, monitors *MonitorService) *BoardService {
	return &BoardService{
		Lines:     lines,
		Tickets:   tickets,
		Modifiers: modifiers,
		Flags:     flags,
		Monitors:  monitors,
	}
}

// Fetch runs the work query for one monitor: every line whose destination,
// course and status the monitor watches, oldest sent first, with ticket
// summaries, modifiers and march flags resolved in batched lookups. All or
// nothing: a failed lookup fails the whole query, because a board missing
// table labels or march state is worse than no board at all.
func (s *BoardService) Fetch(ctx context.Context, monitor *models.Monitor) (*models.WorkQueryResult, error) {
	lines, err := s.Lines.ListForMonitor(ctx, monitor.Destinations, monitor.Courses, monitor.VisibleStatuses())
	if err != nil {
		return nil, &models.StoreUnavailableError{Op: "work query", Err: err}
	}

	result := &models.WorkQueryResult{
		Lines:      lines,
		Tickets:    map[uuid.UUID]*models.TicketSummary{},
		MarchFlags: map[string]bool{},
	}
	if len(lines) == 0 {
		return result, nil
	}

	if err := attachModifiers(ctx, s.Modifiers, lines); err != nil {
		return nil, &models.StoreUnavailableError{Op: "modifier lookup", Err: err}
	}

	ticketIDs := distinctTickets(lines)
	summaries, err := s.Tickets.GetSummaries(ctx, ticketIDs)
	if err != nil {
		return nil, &models.StoreUnavailableError{Op: "ticket summary lookup", Err: err}
	}
	result.Tickets = summaries

	flags, err := s.Flags.ListByTickets(ctx, ticketIDs)
	if err != nil {
		return nil, &models.StoreUnavailableError{Op: "march flag lookup", Err: err}
	}
	for _, f := range flags {
		result.MarchFlags[models.CourseKey(f.TicketID, f.Course)] = f.Marched
	}
	return result, nil
}

// Snapshot assembles the complete display payload for a monitor: grouped
// and styled orders (or product aggregates for board-style displays) plus
// the trailing served history.
func (s *BoardService) Snapshot(ctx context.Context, monitorID int) (*models.BoardSnapshot, error) {
	monitor, err := s.Monitors.Get(ctx, monitorID)
	if err != nil {
		return nil, err
	}
	metrics.BoardFetches.WithLabelValues(string(monitor.Type)).Inc()

	work, err := s.Fetch(ctx, monitor)
	if err != nil {
		return nil, err
	}

	snapshot := &models.BoardSnapshot{Monitor: monitor}
	if monitor.Type == models.DisplayFastFood {
		snapshot.Aggregates = GroupByProduct(work.Lines)
	} else {
		snapshot.Orders = GroupByTicketAndCourse(work.Lines, work.Tickets, work.MarchFlags, monitor)
		ApplyStyles(snapshot.Orders, monitor.StyleRules, timeutil.Now())
	}

	if monitor.HistoryWindowMinutes > 0 {
		snapshot.History = s.history(ctx, monitor)
	}
	return snapshot, nil
}

// history returns served lines whose ready stamp falls inside the trailing
// window, newest first. Failures degrade to an empty strip because history
// is a convenience, not work.
func (s *BoardService) history(ctx context.Context, monitor *models.Monitor) []*models.TicketLine {
	cutoff := timeutil.Now().Add(-time.Duration(monitor.HistoryWindowMinutes) * time.Minute)
	lines, err := s.Lines.ListServedSince(ctx, monitor.Destinations, cutoff)
	if err != nil {
		log.Printf("[Board] History query failed for monitor %d: %v", monitor.ID, err)
		return nil
	}
	if err := attachModifiers(ctx, s.Modifiers, lines); err != nil {
		log.Printf("[Board] History modifier lookup failed for monitor %d: %v", monitor.ID, err)
		return nil
	}
	return lines
}

// attachModifiers resolves modifiers for a batch of lines in one lookup.
// A line is never shown without its modifiers, so callers either fail or
// drop the whole batch on error.
func attachModifiers(ctx context.Context, store ModifierStore, lines []*models.TicketLine) error {
	if len(lines) == 0 {
		return nil
	}
	lineIDs := make([]uuid.UUID, len(lines))
	for i, line := range lines {
		lineIDs[i] = line.ID
	}
	mods, err := store.ListByLines(ctx, lineIDs)
	if err != nil {
		return err
	}
	for _, line := range lines {
		line.Modifiers = mods[line.ID]
	}
	return nil
}
