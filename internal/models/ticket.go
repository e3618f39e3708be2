package models

import (
	"time"

	"github.com/google/uuid"
)

// Ticket is the customer order container. It is created by order intake and
// closed by upstream order management; this service only reads it.
type Ticket struct {
	ID       uuid.UUID `json:"id"`
	Label    string    `json:"label"` // table number or channel ("T12", "takeout")
	ServerID *int      `json:"server_id,omitempty"`
	Covers   int       `json:"covers"`
	OpenedAt time.Time `json:"opened_at"`
}

// TicketSummary is the denormalized slice of a ticket that rides along with
// every work-queue fetch.
type TicketSummary struct {
	ID       uuid.UUID `json:"id"`
	Label    string    `json:"label"`
	Covers   int       `json:"covers"`
	OpenedAt time.Time `json:"opened_at"`
}

// IntakeTicketRequest is the payload order intake posts when an order is
// sent to preparation.
type IntakeTicketRequest struct {
	ID     uuid.UUID           `json:"id"`
	Label  string              `json:"label"`
	Covers int                 `json:"covers"`
	Lines  []IntakeLineRequest `json:"lines"`
}

// IntakeLineRequest is one line within an intake payload.
type IntakeLineRequest struct {
	ID             uuid.UUID               `json:"id"`
	ProductID      uuid.UUID               `json:"product_id"`
	ItemName       string                  `json:"item_name"`
	Quantity       int                     `json:"quantity"`
	UnitPrice      float64                 `json:"unit_price"`
	Notes          string                  `json:"notes"`
	Destination    Destination             `json:"destination"`
	Course         int                     `json:"course"`
	TargetPrepTime *int                    `json:"target_prep_time,omitempty"`
	IsRush         bool                    `json:"is_rush"`
	Modifiers      []IntakeModifierRequest `json:"modifiers"`
}

// IntakeModifierRequest is a modifier within an intake payload.
type IntakeModifierRequest struct {
	Name       string  `json:"name"`
	OptionName string  `json:"option_name"`
	PriceDelta float64 `json:"price_delta"`
}
