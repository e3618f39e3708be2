package models

import "time"

// DisplayType selects how a monitor presents its queue. All types share the
// same fetch/grouping/styling pipeline and branch on config fields only.
type DisplayType string

const (
	DisplayFastFood       DisplayType = "fast-food"
	DisplayFullService    DisplayType = "full-service"
	DisplayExpeditor      DisplayType = "expeditor"
	DisplayCustomerFacing DisplayType = "customer-facing"
)

// LayoutMode is the visual arrangement of the queue.
type LayoutMode string

const (
	LayoutGrid LayoutMode = "grid"
	LayoutList LayoutMode = "list"
)

// NewestSide is where freshly sent items appear.
type NewestSide string

const (
	NewestLeft  NewestSide = "left"
	NewestRight NewestSide = "right"
)

// Monitor is one physical kitchen display's configuration. Edited by the
// configuration UI; read-only input to everything else here.
type Monitor struct {
	ID         int         `json:"id"`
	LocationID int         `json:"location_id"`
	Name       string      `json:"name"`
	Type       DisplayType `json:"type"`

	Destinations []Destination `json:"destinations"`
	Courses      []int         `json:"courses,omitempty"` // nil = all courses

	// PrimaryStatuses populate the active/working bucket, SecondaryStatuses
	// the completed/holding bucket. The buckets must be disjoint.
	PrimaryStatuses   []PrepStatus `json:"primary_statuses"`
	SecondaryStatuses []PrepStatus `json:"secondary_statuses"`

	Layout      LayoutMode `json:"layout"`
	VisibleRows int        `json:"visible_rows"`
	NewestSide  NewestSide `json:"newest_side"`

	AutoServeOnFinish    bool `json:"auto_serve_on_finish"`
	HistoryWindowMinutes int  `json:"history_window_minutes"`

	ShowStartButton  bool `json:"show_start_button"`
	ShowFinishButton bool `json:"show_finish_button"`
	ShowServeButton  bool `json:"show_serve_button"`
	ShowMarchButton  bool `json:"show_march_button"`

	PrintOnLineComplete  bool `json:"print_on_line_complete"`
	PrintOnOrderComplete bool `json:"print_on_order_complete"`

	StyleRules []StyleRule `json:"style_rules"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VisibleStatuses is the union of both buckets; it drives the work query
// filter.
func (m *Monitor) VisibleStatuses() []PrepStatus {
	out := make([]PrepStatus, 0, len(m.PrimaryStatuses)+len(m.SecondaryStatuses))
	out = append(out, m.PrimaryStatuses...)
	out = append(out, m.SecondaryStatuses...)
	return out
}

// WatchesDestination reports whether the monitor shows the given station.
func (m *Monitor) WatchesDestination(d Destination) bool {
	for _, v := range m.Destinations {
		if v == d {
			return true
		}
	}
	return false
}

// WatchesCourse reports whether the monitor shows the given course.
// A nil course filter means all courses.
func (m *Monitor) WatchesCourse(course int) bool {
	if len(m.Courses) == 0 {
		return true
	}
	for _, c := range m.Courses {
		if c == course {
			return true
		}
	}
	return false
}

// Validate enforces the configuration invariants: at least one destination,
// both status buckets subsets of the canonical statuses, and bucket
// disjointness. Create and update both reject violations.
func (m *Monitor) Validate() error {
	if m.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if len(m.Destinations) == 0 {
		return &ValidationError{Field: "destinations", Reason: "at least one station required"}
	}
	for _, d := range m.Destinations {
		if !ValidDestination(d) {
			return &ValidationError{Field: "destinations", Reason: "unknown station " + string(d)}
		}
	}
	for _, c := range m.Courses {
		if c < 1 {
			return &ValidationError{Field: "courses", Reason: "course numbers start at 1"}
		}
	}
	for _, s := range m.PrimaryStatuses {
		if !ValidStatus(s) {
			return &ValidationError{Field: "primary_statuses", Reason: "unknown status " + string(s)}
		}
	}
	for _, s := range m.SecondaryStatuses {
		if !ValidStatus(s) {
			return &ValidationError{Field: "secondary_statuses", Reason: "unknown status " + string(s)}
		}
	}
	for _, p := range m.PrimaryStatuses {
		for _, s := range m.SecondaryStatuses {
			if p == s {
				return &ValidationError{Field: "secondary_statuses", Reason: "status " + string(s) + " appears in both buckets"}
			}
		}
	}
	if m.HistoryWindowMinutes < 0 {
		return &ValidationError{Field: "history_window_minutes", Reason: "must not be negative"}
	}
	if m.VisibleRows < 0 {
		return &ValidationError{Field: "visible_rows", Reason: "must not be negative"}
	}
	for i := range m.StyleRules {
		if err := m.StyleRules[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// MonitorRequest represents the request body for creating or updating a
// monitor. Everything not listed falls back to the model's zero value.
type MonitorRequest struct {
	LocationID int         `json:"location_id"`
	Name       string      `json:"name"`
	Type       DisplayType `json:"type"`

	Destinations []Destination `json:"destinations"`
	Courses      []int         `json:"courses,omitempty"`

	PrimaryStatuses   []PrepStatus `json:"primary_statuses"`
	SecondaryStatuses []PrepStatus `json:"secondary_statuses"`

	Layout      LayoutMode `json:"layout"`
	VisibleRows int        `json:"visible_rows"`
	NewestSide  NewestSide `json:"newest_side"`

	AutoServeOnFinish    bool `json:"auto_serve_on_finish"`
	HistoryWindowMinutes int  `json:"history_window_minutes"`

	ShowStartButton  bool `json:"show_start_button"`
	ShowFinishButton bool `json:"show_finish_button"`
	ShowServeButton  bool `json:"show_serve_button"`
	ShowMarchButton  bool `json:"show_march_button"`

	PrintOnLineComplete  bool `json:"print_on_line_complete"`
	PrintOnOrderComplete bool `json:"print_on_order_complete"`

	StyleRules []StyleRule `json:"style_rules"`

	IsActive bool `json:"is_active"`
}

// ToMonitor builds a Monitor from the request. The caller validates.
func (r *MonitorRequest) ToMonitor() *Monitor {
	return &Monitor{
		LocationID:           r.LocationID,
		Name:                 r.Name,
		Type:                 r.Type,
		Destinations:         r.Destinations,
		Courses:              r.Courses,
		PrimaryStatuses:      r.PrimaryStatuses,
		SecondaryStatuses:    r.SecondaryStatuses,
		Layout:               r.Layout,
		VisibleRows:          r.VisibleRows,
		NewestSide:           r.NewestSide,
		AutoServeOnFinish:    r.AutoServeOnFinish,
		HistoryWindowMinutes: r.HistoryWindowMinutes,
		ShowStartButton:      r.ShowStartButton,
		ShowFinishButton:     r.ShowFinishButton,
		ShowServeButton:      r.ShowServeButton,
		ShowMarchButton:      r.ShowMarchButton,
		PrintOnLineComplete:  r.PrintOnLineComplete,
		PrintOnOrderComplete: r.PrintOnOrderComplete,
		StyleRules:           r.StyleRules,
		IsActive:             r.IsActive,
	}
}
