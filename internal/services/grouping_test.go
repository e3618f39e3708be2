package services

import (
	"testing"
	"time"

	"kds-backend/internal/models"

	"github.com/google/uuid"
)

func line(ticketID uuid.UUID, course int, item string, status models.PrepStatus, qty int) *models.TicketLine {
	return &models.TicketLine{
		ID:         uuid.New(),
		TicketID:   ticketID,
		ItemName:   item,
		Quantity:   qty,
		Course:     course,
		PrepStatus: status,
	}
}

func TestGroupByTicketAndCourse_OldestTicketFirst(t *testing.T) {
	t1 := uuid.New()
	t2 := uuid.New()
	opened := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	tickets := map[uuid.UUID]*models.TicketSummary{
		t1: {ID: t1, Label: "T1", OpenedAt: opened},
		t2: {ID: t2, Label: "T2", OpenedAt: opened.Add(5 * time.Minute)},
	}
	monitor := &models.Monitor{SecondaryStatuses: []models.PrepStatus{models.StatusReady}}

	// T2's lines deliberately come first in the input.
	lines := []*models.TicketLine{
		line(t2, 1, "burger", models.StatusPending, 1),
		line(t1, 2, "steak", models.StatusPending, 1),
		line(t1, 1, "soup", models.StatusPending, 1),
	}

	groups := GroupByTicketAndCourse(lines, tickets, nil, monitor)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Ticket.ID != t1 {
		t.Fatalf("expected oldest ticket first, got %s", groups[0].Ticket.Label)
	}
	if groups[1].Ticket.ID != t2 {
		t.Fatalf("expected newest ticket last, got %s", groups[1].Ticket.Label)
	}

	// Courses ascending within a ticket regardless of input order.
	courses := groups[0].Courses
	if len(courses) != 2 || courses[0].Course != 1 || courses[1].Course != 2 {
		t.Fatalf("expected courses [1 2], got %+v", courses)
	}
}

func TestGroupByTicketAndCourse_MarchAndReadiness(t *testing.T) {
	t1 := uuid.New()
	tickets := map[uuid.UUID]*models.TicketSummary{t1: {ID: t1, Label: "T1"}}
	monitor := &models.Monitor{SecondaryStatuses: []models.PrepStatus{models.StatusReady, models.StatusServed}}

	lines := []*models.TicketLine{
		line(t1, 1, "soup", models.StatusReady, 1),
		line(t1, 1, "salad", models.StatusServed, 1),
		line(t1, 2, "steak", models.StatusPreparing, 1),
	}
	flags := map[string]bool{models.CourseKey(t1, 2): true}

	groups := GroupByTicketAndCourse(lines, tickets, flags, monitor)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}

	first := groups[0].Courses[0]
	if !first.AllItemsReady {
		t.Fatal("course 1 should report all items ready")
	}
	if first.Marched {
		t.Fatal("course 1 should not be marched")
	}

	second := groups[0].Courses[1]
	if second.AllItemsReady {
		t.Fatal("course 2 should not report all items ready")
	}
	if !second.Marched {
		t.Fatal("course 2 should be marched")
	}
}

func TestGroupByTicketAndCourse_MissingSummary(t *testing.T) {
	t1 := uuid.New()
	monitor := &models.Monitor{SecondaryStatuses: []models.PrepStatus{models.StatusReady}}

	groups := GroupByTicketAndCourse([]*models.TicketLine{line(t1, 1, "soup", models.StatusPending, 1)}, map[uuid.UUID]*models.TicketSummary{}, nil, monitor)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if groups[0].Ticket.ID != t1 {
		t.Fatal("group should carry the ticket id even without a summary")
	}
}

func TestGroupByProduct(t *testing.T) {
	t1 := uuid.New()
	lines := []*models.TicketLine{
		line(t1, 1, "fries", models.StatusPending, 2),
		line(t1, 1, "fries", models.StatusPreparing, 3),
		line(t1, 1, "burger", models.StatusReady, 1),
		line(t1, 1, "burger", models.StatusServed, 4), // served lines do not count
		line(t1, 1, "shake", models.StatusPending, 5),
	}

	aggs := GroupByProduct(lines)
	if len(aggs) != 3 {
		t.Fatalf("expected 3 aggregates, got %d", len(aggs))
	}

	// Sorted by total quantity descending.
	if aggs[0].ItemName != "fries" || aggs[0].Total != 5 {
		t.Fatalf("expected fries total 5 first, got %s total %d", aggs[0].ItemName, aggs[0].Total)
	}
	if aggs[0].Pending != 2 || aggs[0].Preparing != 3 || aggs[0].Ready != 0 {
		t.Fatalf("fries buckets wrong: %+v", aggs[0])
	}
	if aggs[1].ItemName != "shake" {
		t.Fatalf("expected shake second, got %s", aggs[1].ItemName)
	}
	if aggs[2].ItemName != "burger" || aggs[2].Total != 1 {
		t.Fatalf("expected burger total 1 last, got %s total %d", aggs[2].ItemName, aggs[2].Total)
	}
}
