package services

import (
	"context"
	"errors"
	"testing"

	"kds-backend/internal/models"

	"github.com/google/uuid"
)

type fakeTicketStore struct {
	tickets       map[uuid.UUID]*models.Ticket
	lines         map[uuid.UUID][]*models.TicketLine
	failSummaries bool
}

func newFakeTicketStore() *fakeTicketStore {
	return &fakeTicketStore{
		tickets: make(map[uuid.UUID]*models.Ticket),
		lines:   make(map[uuid.UUID][]*models.TicketLine),
	}
}

func (s *fakeTicketStore) CreateWithLines(ctx context.Context, ticket *models.Ticket, lines []*models.TicketLine) error {
	s.tickets[ticket.ID] = ticket
	s.lines[ticket.ID] = lines
	return nil
}

func (s *fakeTicketStore) AppendLines(ctx context.Context, ticketID uuid.UUID, lines []*models.TicketLine) error {
	if _, ok := s.tickets[ticketID]; !ok {
		return models.ErrNotFound
	}
	s.lines[ticketID] = append(s.lines[ticketID], lines...)
	return nil
}

func (s *fakeTicketStore) GetSummaries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.TicketSummary, error) {
	if s.failSummaries {
		return nil, errors.New("ticket store down")
	}
	out := make(map[uuid.UUID]*models.TicketSummary)
	for _, id := range ids {
		if t, ok := s.tickets[id]; ok {
			out[id] = &models.TicketSummary{ID: t.ID, Label: t.Label, Covers: t.Covers, OpenedAt: t.OpenedAt}
		}
	}
	return out, nil
}

type fakeModifierStore struct {
	mods map[uuid.UUID][]*models.Modifier
	fail bool
}

func (s *fakeModifierStore) ListByLines(ctx context.Context, lineIDs []uuid.UUID) (map[uuid.UUID][]*models.Modifier, error) {
	if s.fail {
		return nil, errors.New("modifier store down")
	}
	out := make(map[uuid.UUID][]*models.Modifier)
	for _, id := range lineIDs {
		if m, ok := s.mods[id]; ok {
			out[id] = m
		}
	}
	return out, nil
}

func boardFixture(t *testing.T, monitor *models.Monitor) (*BoardService, *fakeLineStore, *fakeTicketStore) {
	t.Helper()
	lines := newFakeLineStore()
	tickets := newFakeTicketStore()
	monitors := NewMonitorService(newFakeMonitorStore(monitor))
	svc := NewBoardService(lines, tickets, &fakeModifierStore{mods: map[uuid.UUID][]*models.Modifier{}}, newFakeFlagStore(), monitors)
	return svc, lines, tickets
}

func TestSnapshot_FullService(t *testing.T) {
	ctx := context.Background()
	monitor := &models.Monitor{
		ID:                1,
		Type:              models.DisplayFullService,
		Destinations:      []models.Destination{models.DestKitchen},
		PrimaryStatuses:   []models.PrepStatus{models.StatusPending, models.StatusPreparing},
		SecondaryStatuses: []models.PrepStatus{models.StatusReady},
		IsActive:          true,
	}
	svc, lines, tickets := boardFixture(t, monitor)

	ticket := &models.Ticket{ID: uuid.New(), Label: "T12"}
	l := pendingLine(ticket.ID)
	tickets.CreateWithLines(ctx, ticket, []*models.TicketLine{l})
	lines.lines[l.ID] = l

	snapshot, err := svc.Snapshot(ctx, 1)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snapshot.Orders) != 1 {
		t.Fatalf("expected 1 order group, got %d", len(snapshot.Orders))
	}
	if snapshot.Orders[0].Ticket.Label != "T12" {
		t.Fatalf("ticket summary missing: %+v", snapshot.Orders[0].Ticket)
	}
	if snapshot.Aggregates != nil {
		t.Fatal("full-service snapshot should not aggregate by product")
	}
}

func TestSnapshot_FastFoodAggregates(t *testing.T) {
	ctx := context.Background()
	monitor := &models.Monitor{
		ID:                1,
		Type:              models.DisplayFastFood,
		Destinations:      []models.Destination{models.DestKitchen},
		PrimaryStatuses:   []models.PrepStatus{models.StatusPending},
		SecondaryStatuses: []models.PrepStatus{models.StatusReady},
		IsActive:          true,
	}
	svc, lines, _ := boardFixture(t, monitor)

	a := pendingLine(uuid.New())
	b := pendingLine(uuid.New())
	lines.lines[a.ID] = a
	lines.lines[b.ID] = b

	snapshot, err := svc.Snapshot(ctx, 1)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snapshot.Orders != nil {
		t.Fatal("fast-food snapshot should not group by ticket")
	}
	if len(snapshot.Aggregates) != 1 || snapshot.Aggregates[0].Pending != 2 {
		t.Fatalf("expected one aggregate with pending 2, got %+v", snapshot.Aggregates)
	}
}

func TestFetch_LookupFailureFailsWholeQuery(t *testing.T) {
	ctx := context.Background()
	monitor := &models.Monitor{
		ID:                1,
		Destinations:      []models.Destination{models.DestKitchen},
		PrimaryStatuses:   []models.PrepStatus{models.StatusPending},
		SecondaryStatuses: []models.PrepStatus{models.StatusReady},
		IsActive:          true,
	}

	build := func(tickets *fakeTicketStore, mods *fakeModifierStore, flags *fakeFlagStore) (*BoardService, *models.Ticket) {
		lines := newFakeLineStore()
		monitors := NewMonitorService(newFakeMonitorStore(monitor))
		svc := NewBoardService(lines, tickets, mods, flags, monitors)
		ticket := &models.Ticket{ID: uuid.New(), Label: "T3"}
		l := pendingLine(ticket.ID)
		tickets.tickets[ticket.ID] = ticket
		lines.lines[l.ID] = l
		return svc, ticket
	}

	cases := []struct {
		name    string
		tickets *fakeTicketStore
		mods    *fakeModifierStore
		flags   *fakeFlagStore
	}{
		{"ticket summaries down", &fakeTicketStore{tickets: map[uuid.UUID]*models.Ticket{}, failSummaries: true}, &fakeModifierStore{}, newFakeFlagStore()},
		{"modifiers down", newFakeTicketStore(), &fakeModifierStore{fail: true}, newFakeFlagStore()},
		{"march flags down", newFakeTicketStore(), &fakeModifierStore{}, &fakeFlagStore{fail: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := build(tc.tickets, tc.mods, tc.flags)
			result, err := svc.Fetch(ctx, monitor)
			var unavailable *models.StoreUnavailableError
			if !errors.As(err, &unavailable) {
				t.Fatalf("expected StoreUnavailableError, got %v", err)
			}
			// No partial board: lines must never come back without their
			// ticket summaries, modifiers and march state.
			if result != nil {
				t.Fatalf("failed lookup must not return a partial result: %+v", result)
			}
		})
	}
}

func TestSnapshot_UnknownMonitor(t *testing.T) {
	svc, _, _ := boardFixture(t, &models.Monitor{ID: 1, IsActive: true})
	if _, err := svc.Snapshot(context.Background(), 99); err == nil {
		t.Fatal("expected error for unknown monitor")
	}
}
