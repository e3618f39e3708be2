package services

import (
	"context"
	"testing"
	"time"

	"kds-backend/internal/models"

	"github.com/google/uuid"
)

func servedLine(readyAgo time.Duration) *models.TicketLine {
	ready := time.Now().Add(-readyAgo)
	return &models.TicketLine{
		ID:          uuid.New(),
		TicketID:    uuid.New(),
		ItemName:    "soup",
		Quantity:    1,
		PrepStatus:  models.StatusServed,
		Destination: models.DestKitchen,
		Course:      1,
		ReadyAt:     &ready,
	}
}

func historyMonitor(windowMinutes int) *models.Monitor {
	return &models.Monitor{
		ID:                   1,
		Destinations:         []models.Destination{models.DestKitchen},
		PrimaryStatuses:      []models.PrepStatus{models.StatusPending},
		SecondaryStatuses:    []models.PrepStatus{models.StatusReady},
		HistoryWindowMinutes: windowMinutes,
		IsActive:             true,
	}
}

func TestClosedLines_TrailingWindow(t *testing.T) {
	ctx := context.Background()
	old := servedLine(40 * time.Minute)

	// Window 30: the 40-minute-old line is outside.
	lines := newFakeLineStore(old)
	monitors := NewMonitorService(newFakeMonitorStore(historyMonitor(30)))
	svc := NewHistoryService(lines, &fakeModifierStore{}, &fakeEventStore{}, monitors, nil)

	got, err := svc.ClosedLines(ctx, 1)
	if err != nil {
		t.Fatalf("ClosedLines: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("window 30: expected empty, got %d lines", len(got))
	}

	// Window 60: the same line appears.
	monitors = NewMonitorService(newFakeMonitorStore(historyMonitor(60)))
	svc = NewHistoryService(lines, &fakeModifierStore{}, &fakeEventStore{}, monitors, nil)

	got, err = svc.ClosedLines(ctx, 1)
	if err != nil {
		t.Fatalf("ClosedLines: %v", err)
	}
	if len(got) != 1 || got[0].ID != old.ID {
		t.Fatalf("window 60: expected the served line, got %+v", got)
	}
}

func TestClosedLines_ZeroWindow(t *testing.T) {
	ctx := context.Background()
	lines := newFakeLineStore(servedLine(time.Minute))
	monitors := NewMonitorService(newFakeMonitorStore(historyMonitor(0)))
	svc := NewHistoryService(lines, &fakeModifierStore{}, &fakeEventStore{}, monitors, nil)

	got, err := svc.ClosedLines(ctx, 1)
	if err != nil {
		t.Fatalf("ClosedLines: %v", err)
	}
	if len(got) != 0 {
		t.Fatal("zero window disables history")
	}
}

func TestClosedLines_CarriesModifiers(t *testing.T) {
	ctx := context.Background()
	l := servedLine(5 * time.Minute)
	lines := newFakeLineStore(l)
	mods := &fakeModifierStore{mods: map[uuid.UUID][]*models.Modifier{
		l.ID: {{ID: uuid.New(), LineID: l.ID, Name: "No onion", Type: models.ModifierRemove}},
	}}
	monitors := NewMonitorService(newFakeMonitorStore(historyMonitor(30)))
	svc := NewHistoryService(lines, mods, &fakeEventStore{}, monitors, nil)

	got, err := svc.ClosedLines(ctx, 1)
	if err != nil {
		t.Fatalf("ClosedLines: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 line, got %d", len(got))
	}
	if len(got[0].Modifiers) != 1 || got[0].Modifiers[0].Name != "No onion" {
		t.Fatalf("recall strip missing modifiers: %+v", got[0].Modifiers)
	}

	// A failed modifier lookup degrades the whole strip, never a bare line.
	svc = NewHistoryService(lines, &fakeModifierStore{fail: true}, &fakeEventStore{}, monitors, nil)
	got, err = svc.ClosedLines(ctx, 1)
	if err != nil {
		t.Fatalf("ClosedLines after modifier failure: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty strip on modifier failure, got %d lines", len(got))
	}
}

func TestRecall_RecordsEvent(t *testing.T) {
	ctx := context.Background()
	l := servedLine(5 * time.Minute)
	lines := newFakeLineStore(l)
	events := &fakeEventStore{}
	monitors := NewMonitorService(newFakeMonitorStore(historyMonitor(30)))
	svc := NewHistoryService(lines, &fakeModifierStore{}, events, monitors, nil)

	got, err := svc.Recall(ctx, l.ID, 7, 1)
	if err != nil {
		t.Fatalf("Recall: %v", err)
	}
	if got.PrepStatus != models.StatusServed {
		t.Fatal("recall must not change the line's status")
	}
	if len(events.events) != 1 || events.events[0].Type != models.EventRecall {
		t.Fatalf("expected one recall event, got %+v", events.events)
	}
	if events.events[0].LineID == nil || *events.events[0].LineID != l.ID {
		t.Fatal("recall event should reference the line")
	}
}
