package models

import (
	"github.com/google/uuid"
)

// WorkQueryResult is one fetch cycle's snapshot for a monitor: the eligible
// lines oldest-sent first, their ticket summaries, and the march flags for
// exactly the tickets present.
type WorkQueryResult struct {
	Lines      []*TicketLine                `json:"lines"`
	Tickets    map[uuid.UUID]*TicketSummary `json:"tickets"`
	MarchFlags map[string]bool              `json:"march_flags"` // keyed by CourseKey
}

// StyledLine is a line annotated with its computed presentation state.
type StyledLine struct {
	*TicketLine
	Style ComputedStyle `json:"style"`
}

// CourseGroup is one (ticket, course) work unit. AllItemsReady means every
// line sits in the monitor's secondary bucket.
type CourseGroup struct {
	Course        int           `json:"course"`
	Marched       bool          `json:"marched"`
	AllItemsReady bool          `json:"all_items_ready"`
	Lines         []*StyledLine `json:"lines"`
}

// OrderGroup is one ticket's work, courses ascending. Tickets are ordered
// oldest opened first; that ordering is the cook-priority contract.
type OrderGroup struct {
	Ticket  *TicketSummary `json:"ticket"`
	Courses []*CourseGroup `json:"courses"`
}

// ProductAggregate collapses lines by item name for board-style displays
// where only outstanding counts matter.
type ProductAggregate struct {
	ItemName  string `json:"item_name"`
	Pending   int    `json:"pending"`
	Preparing int    `json:"preparing"`
	Ready     int    `json:"ready"`
	Total     int    `json:"total"`
}

// BoardSnapshot is the full response for one display refresh.
type BoardSnapshot struct {
	Monitor    *Monitor            `json:"monitor"`
	Orders     []*OrderGroup       `json:"orders,omitempty"`
	Aggregates []*ProductAggregate `json:"aggregates,omitempty"`
	History    []*TicketLine       `json:"history,omitempty"`
}
