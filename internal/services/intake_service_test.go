package services

import (
	"context"
	"testing"

	"kds-backend/internal/models"

	"github.com/google/uuid"
)

func TestIngest_NormalizesAndRecordsSent(t *testing.T) {
	ctx := context.Background()
	tickets := newFakeTicketStore()
	events := &fakeEventStore{}
	svc := NewIntakeService(tickets, events, nil)

	ticket, lines, err := svc.Ingest(ctx, &models.IntakeTicketRequest{
		Label: "T4",
		Lines: []models.IntakeLineRequest{
			{ItemName: "martini", Destination: models.DestBar, Course: 2, Quantity: 2},
			{ItemName: "soup"}, // course and destination left to defaults
		},
	})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if ticket.ID == uuid.Nil {
		t.Fatal("ticket id not minted")
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Destination != models.DestBar || lines[0].Course != 2 {
		t.Fatalf("explicit routing clobbered: %+v", lines[0])
	}
	if lines[1].Destination != models.DestKitchen || lines[1].Course != 1 || lines[1].Quantity != 1 {
		t.Fatalf("defaults not applied: %+v", lines[1])
	}
	for _, l := range lines {
		if l.PrepStatus != models.StatusPending {
			t.Fatalf("line should land pending, got %s", l.PrepStatus)
		}
		if l.SentAt.IsZero() {
			t.Fatal("sent_at not stamped")
		}
	}
	if len(events.events) != 1 || events.events[0].Type != models.EventSent {
		t.Fatalf("expected one sent event, got %+v", events.events)
	}
}

func TestIngest_ModifierTypesInferred(t *testing.T) {
	ctx := context.Background()
	svc := NewIntakeService(newFakeTicketStore(), &fakeEventStore{}, nil)

	_, lines, err := svc.Ingest(ctx, &models.IntakeTicketRequest{
		Label: "T1",
		Lines: []models.IntakeLineRequest{{
			ItemName: "burger",
			Modifiers: []models.IntakeModifierRequest{
				{Name: "No onion"},
				{Name: "Sub fries"},
				{Name: "Extra cheese", PriceDelta: 1.5},
			},
		}},
	})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	mods := lines[0].Modifiers
	if len(mods) != 3 {
		t.Fatalf("expected 3 modifiers, got %d", len(mods))
	}
	if mods[0].Type != models.ModifierRemove || mods[1].Type != models.ModifierSubstitute || mods[2].Type != models.ModifierAdd {
		t.Fatalf("modifier types wrong: %s %s %s", mods[0].Type, mods[1].Type, mods[2].Type)
	}
}

func TestIngest_Rejections(t *testing.T) {
	ctx := context.Background()
	svc := NewIntakeService(newFakeTicketStore(), &fakeEventStore{}, nil)

	if _, _, err := svc.Ingest(ctx, &models.IntakeTicketRequest{Label: "T1"}); err == nil {
		t.Fatal("empty ticket accepted")
	}
	_, _, err := svc.Ingest(ctx, &models.IntakeTicketRequest{
		Label: "T1",
		Lines: []models.IntakeLineRequest{{ItemName: "soup", Destination: "patio"}},
	})
	if err == nil {
		t.Fatal("unknown station accepted")
	}
}

func TestAddItems(t *testing.T) {
	ctx := context.Background()
	tickets := newFakeTicketStore()
	events := &fakeEventStore{}
	svc := NewIntakeService(tickets, events, nil)

	ticket, _, err := svc.Ingest(ctx, &models.IntakeTicketRequest{
		Label: "T9",
		Lines: []models.IntakeLineRequest{{ItemName: "soup"}},
	})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	added, err := svc.AddItems(ctx, ticket.ID, []models.IntakeLineRequest{{ItemName: "dessert", Course: 3}})
	if err != nil {
		t.Fatalf("AddItems: %v", err)
	}
	if len(added) != 1 || added[0].Course != 3 {
		t.Fatalf("unexpected added lines: %+v", added)
	}
	if len(tickets.lines[ticket.ID]) != 2 {
		t.Fatalf("expected 2 lines on ticket, got %d", len(tickets.lines[ticket.ID]))
	}
	if events.events[len(events.events)-1].Type != models.EventAddItems {
		t.Fatal("add_items event missing")
	}

	if _, err := svc.AddItems(ctx, uuid.New(), []models.IntakeLineRequest{{ItemName: "x"}}); err == nil {
		t.Fatal("unknown ticket accepted")
	}
}
