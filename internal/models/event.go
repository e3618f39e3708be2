package models

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies what happened to a ticket or line.
type EventType string

const (
	EventSent     EventType = "sent"
	EventStart    EventType = "start"
	EventFinish   EventType = "finish"
	EventServe    EventType = "serve"
	EventMarch    EventType = "march"
	EventUnmarch  EventType = "unmarch"
	EventAddItems EventType = "add_items"
	EventPrint    EventType = "print"
	EventRecall   EventType = "recall"
)

// Event is one append-only audit record. Never mutated or deleted here;
// reporting reads it, the nightly archive exports it.
type Event struct {
	ID        int        `json:"id"`
	TicketID  uuid.UUID  `json:"ticket_id"`
	LineID    *uuid.UUID `json:"line_id,omitempty"`
	Type      EventType  `json:"type"`
	ActorID   int        `json:"actor_id"`
	MonitorID *int       `json:"monitor_id,omitempty"`
	Payload   string     `json:"payload,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
