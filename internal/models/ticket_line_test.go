package models

import (
	"testing"
	"time"
)

func TestTicketLineNormalize(t *testing.T) {
	l := &TicketLine{Course: 0, Destination: "", Quantity: 0}
	l.Normalize()
	if l.Course != 1 {
		t.Fatalf("Course = %d, want 1", l.Course)
	}
	if l.Destination != DestKitchen {
		t.Fatalf("Destination = %s, want kitchen", l.Destination)
	}
	if l.Quantity != 1 {
		t.Fatalf("Quantity = %d, want 1", l.Quantity)
	}

	// Explicit values survive.
	l = &TicketLine{Course: 3, Destination: DestBar, Quantity: 2}
	l.Normalize()
	if l.Course != 3 || l.Destination != DestBar || l.Quantity != 2 {
		t.Fatalf("normalize clobbered explicit values: %+v", l)
	}
}

func TestTicketLineElapsedMinutes(t *testing.T) {
	now := time.Now()
	l := &TicketLine{}
	if _, ok := l.ElapsedMinutes(now); ok {
		t.Fatal("unstarted line reported elapsed time")
	}

	started := now.Add(-10 * time.Minute)
	l.PrepStartedAt = &started
	elapsed, ok := l.ElapsedMinutes(now)
	if !ok {
		t.Fatal("started line reported no elapsed time")
	}
	if elapsed < 9.99 || elapsed > 10.01 {
		t.Fatalf("elapsed = %f, want ~10", elapsed)
	}
}

func TestComputedStyleMerge(t *testing.T) {
	var style ComputedStyle
	style.Merge(StyleRule{Background: "#111", Actions: []StyleAction{ActionBlink}})
	style.Merge(StyleRule{Background: "#222", Actions: []StyleAction{ActionStrike}})

	if style.Background != "#222" {
		t.Fatalf("Background = %s, later rule should overwrite", style.Background)
	}
	if !style.ShouldBlink || !style.ShouldStrike {
		t.Fatal("boolean effects must accumulate, never unset")
	}
}
