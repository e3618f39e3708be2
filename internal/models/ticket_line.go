package models

import (
	"time"

	"github.com/google/uuid"
)

// PrepStatus is the preparation lifecycle of a ticket line.
// Lines only move forward: pending -> preparing -> ready -> served.
type PrepStatus string

const (
	StatusPending   PrepStatus = "pending"
	StatusPreparing PrepStatus = "preparing"
	StatusReady     PrepStatus = "ready"
	StatusServed    PrepStatus = "served"
)

// AllStatuses is the canonical status set, in lifecycle order.
var AllStatuses = []PrepStatus{StatusPending, StatusPreparing, StatusReady, StatusServed}

// ValidStatus reports whether s is one of the four canonical statuses.
func ValidStatus(s PrepStatus) bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Destination is the preparation station a line is routed to.
type Destination string

const (
	DestKitchen Destination = "kitchen"
	DestBar     Destination = "bar"
	DestPrep    Destination = "prep"
)

// ValidDestination reports whether d is a known station.
func ValidDestination(d Destination) bool {
	return d == DestKitchen || d == DestBar || d == DestPrep
}

// TicketLine is one orderable unit routed to a station. Created by order
// intake, mutated only through lifecycle transitions, never deleted.
type TicketLine struct {
	ID             uuid.UUID   `json:"id"`
	TicketID       uuid.UUID   `json:"ticket_id"`
	ProductID      uuid.UUID   `json:"product_id"`
	ItemName       string      `json:"item_name"`
	Quantity       int         `json:"quantity"`
	UnitPrice      float64     `json:"unit_price"`
	Notes          string      `json:"notes,omitempty"`
	PrepStatus     PrepStatus  `json:"prep_status"`
	Destination    Destination `json:"destination"`
	Course         int         `json:"course"`
	TargetPrepTime *int        `json:"target_prep_time,omitempty"` // minutes
	IsRush         bool        `json:"is_rush"`
	SentAt         time.Time   `json:"sent_at"`
	PrepStartedAt  *time.Time  `json:"prep_started_at,omitempty"`
	ReadyAt        *time.Time  `json:"ready_at,omitempty"`

	// Loaded alongside the line on every fetch, never separately.
	Modifiers []*Modifier `json:"modifiers,omitempty"`
}

// Normalize applies the uniform defaults for fields upstream systems are
// inconsistent about: course 1 and the kitchen station. Applied once at
// intake so every reader sees the same values.
func (l *TicketLine) Normalize() {
	if l.Course < 1 {
		l.Course = 1
	}
	if l.Destination == "" {
		l.Destination = DestKitchen
	}
	if l.Quantity < 1 {
		l.Quantity = 1
	}
}

// ElapsedMinutes returns the fractional minutes since preparation started,
// or false if preparation has not started.
func (l *TicketLine) ElapsedMinutes(now time.Time) (float64, bool) {
	if l.PrepStartedAt == nil {
		return 0, false
	}
	return now.Sub(*l.PrepStartedAt).Minutes(), true
}

// StatusIn reports whether the line's status is in the given bucket.
func (l *TicketLine) StatusIn(bucket []PrepStatus) bool {
	for _, s := range bucket {
		if l.PrepStatus == s {
			return true
		}
	}
	return false
}

// LineActionRequest represents the request body for a single-line
// start/finish/serve action.
type LineActionRequest struct {
	MonitorID int `json:"monitor_id"`
}

// BatchActionRequest represents the request body for a batch
// start/finish/serve action. The batch is all-or-nothing.
type BatchActionRequest struct {
	LineIDs   []uuid.UUID `json:"line_ids"`
	MonitorID int         `json:"monitor_id"`
}
