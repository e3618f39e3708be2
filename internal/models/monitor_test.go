package models

import "testing"

func validMonitor() *Monitor {
	return &Monitor{
		Name:              "Hot line",
		Destinations:      []Destination{DestKitchen},
		PrimaryStatuses:   []PrepStatus{StatusPending, StatusPreparing},
		SecondaryStatuses: []PrepStatus{StatusReady, StatusServed},
	}
}

func TestMonitorValidate(t *testing.T) {
	if err := validMonitor().Validate(); err != nil {
		t.Fatalf("valid monitor rejected: %v", err)
	}

	m := validMonitor()
	m.Name = ""
	if err := m.Validate(); err == nil {
		t.Fatal("empty name accepted")
	}

	m = validMonitor()
	m.Destinations = nil
	if err := m.Validate(); err == nil {
		t.Fatal("monitor without stations accepted")
	}

	m = validMonitor()
	m.Destinations = []Destination{"drive-thru"}
	if err := m.Validate(); err == nil {
		t.Fatal("unknown station accepted")
	}

	m = validMonitor()
	m.PrimaryStatuses = []PrepStatus{"done"}
	if err := m.Validate(); err == nil {
		t.Fatal("unknown status accepted")
	}

	// The two buckets must never share a status.
	m = validMonitor()
	m.SecondaryStatuses = []PrepStatus{StatusPreparing, StatusReady}
	if err := m.Validate(); err == nil {
		t.Fatal("overlapping buckets accepted")
	}

	m = validMonitor()
	m.Courses = []int{0}
	if err := m.Validate(); err == nil {
		t.Fatal("course 0 accepted")
	}

	m = validMonitor()
	m.HistoryWindowMinutes = -1
	if err := m.Validate(); err == nil {
		t.Fatal("negative history window accepted")
	}

	threshold := 0
	m = validMonitor()
	m.StyleRules = []StyleRule{{Trigger: TriggerIdleMinutes, Threshold: &threshold}}
	if err := m.Validate(); err == nil {
		t.Fatal("timed rule without positive threshold accepted")
	}
}

func TestMonitorVisibleStatuses(t *testing.T) {
	m := validMonitor()
	got := m.VisibleStatuses()
	if len(got) != 4 {
		t.Fatalf("expected union of both buckets, got %v", got)
	}
}

func TestMonitorWatchesCourse(t *testing.T) {
	m := validMonitor()
	if !m.WatchesCourse(3) {
		t.Fatal("nil course filter should watch every course")
	}
	m.Courses = []int{1, 2}
	if m.WatchesCourse(3) {
		t.Fatal("course 3 outside filter")
	}
	if !m.WatchesCourse(2) {
		t.Fatal("course 2 inside filter")
	}
}
