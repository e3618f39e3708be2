package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CourseFlag marks a (ticket, course) pair as marched: the expeditor has
// released that course to be finished and served together. At most one row
// exists per pair; toggles upsert in place.
type CourseFlag struct {
	TicketID  uuid.UUID `json:"ticket_id"`
	Course    int       `json:"course"`
	Marched   bool      `json:"marched"`
	MarchedAt time.Time `json:"marched_at"`
	MarchedBy int       `json:"marched_by"`
}

// CourseKey is the map key used for march-flag lookups in work-query
// results: "<ticket uuid>:<course>".
func CourseKey(ticketID uuid.UUID, course int) string {
	return fmt.Sprintf("%s:%d", ticketID, course)
}

// MarchRequest toggles a course flag.
type MarchRequest struct {
	TicketID  uuid.UUID `json:"ticket_id"`
	Course    int       `json:"course"`
	MonitorID int       `json:"monitor_id"`
}
