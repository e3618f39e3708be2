package services

import (
	"testing"
	"time"

	"kds-backend/internal/models"
)

func intPtr(n int) *int { return &n }

func startedLine(minutesAgo int, target *int) *models.TicketLine {
	started := time.Now().Add(-time.Duration(minutesAgo) * time.Minute)
	return &models.TicketLine{
		PrepStartedAt:  &started,
		TargetPrepTime: target,
	}
}

func TestEvaluateStyle_Overdue(t *testing.T) {
	rules := []models.StyleRule{
		{Trigger: models.TriggerOverdue, Actions: []models.StyleAction{models.ActionBlink}},
	}
	now := time.Now()

	// 12 minutes elapsed against a 10-minute target: overdue.
	style := EvaluateStyle(startedLine(12, intPtr(10)), rules, false, now)
	if !style.ShouldBlink {
		t.Fatal("12 min elapsed, target 10: expected blink")
	}

	// Same line against a 15-minute target: not overdue.
	style = EvaluateStyle(startedLine(12, intPtr(15)), rules, false, now)
	if style.ShouldBlink {
		t.Fatal("12 min elapsed, target 15: expected no blink")
	}

	// Preparation not started: never overdue.
	style = EvaluateStyle(&models.TicketLine{TargetPrepTime: intPtr(1)}, rules, false, now)
	if !style.IsZero() {
		t.Fatal("unstarted line should have no style")
	}
}

func TestEvaluateStyle_Prewarn(t *testing.T) {
	rules := []models.StyleRule{
		{Trigger: models.TriggerPrewarnMinutes, Threshold: intPtr(3), Background: "#ffcc00"},
	}
	now := time.Now()

	// 8 of 10 minutes gone, 2 remaining, within the 3-minute prewarn.
	style := EvaluateStyle(startedLine(8, intPtr(10)), rules, false, now)
	if style.Background != "#ffcc00" {
		t.Fatalf("expected prewarn background, got %q", style.Background)
	}

	// 5 of 10 minutes gone, 5 remaining, outside the window.
	style = EvaluateStyle(startedLine(5, intPtr(10)), rules, false, now)
	if !style.IsZero() {
		t.Fatal("5 min remaining should not prewarn")
	}

	// Already past the target: prewarn no longer applies (overdue takes over).
	style = EvaluateStyle(startedLine(12, intPtr(10)), rules, false, now)
	if !style.IsZero() {
		t.Fatal("overdue line should not prewarn")
	}
}

func TestEvaluateStyle_RushAndMarched(t *testing.T) {
	rules := []models.StyleRule{
		{Trigger: models.TriggerRush, Background: "#ff0000"},
		{Trigger: models.TriggerMarched, Border: "#00ff00", Actions: []models.StyleAction{models.ActionUnderline}},
	}
	now := time.Now()

	style := EvaluateStyle(&models.TicketLine{IsRush: true}, rules, true, now)
	if style.Background != "#ff0000" || style.Border != "#00ff00" || !style.ShouldUnderline {
		t.Fatalf("expected both rules applied, got %+v", style)
	}

	style = EvaluateStyle(&models.TicketLine{}, rules, false, now)
	if !style.IsZero() {
		t.Fatal("neither trigger holds, expected zero style")
	}
}

func TestEvaluateStyle_AdditiveMerge(t *testing.T) {
	// A later triggered rule overwrites colors but a later non-triggering
	// rule never cancels anything.
	rules := []models.StyleRule{
		{Trigger: models.TriggerRush, Background: "#111111", Actions: []models.StyleAction{models.ActionBlink}},
		{Trigger: models.TriggerMarched, Background: "#222222"},
		{Trigger: models.TriggerIdleMinutes, Threshold: intPtr(60), Background: "#333333", Actions: []models.StyleAction{models.ActionStrike}},
	}
	now := time.Now()

	style := EvaluateStyle(&models.TicketLine{IsRush: true}, rules, true, now)
	if style.Background != "#222222" {
		t.Fatalf("later rule should overwrite background, got %q", style.Background)
	}
	if !style.ShouldBlink {
		t.Fatal("non-triggering idle rule must not cancel blink")
	}
	if style.ShouldStrike {
		t.Fatal("idle rule did not trigger, strike must stay off")
	}
}

func TestEvaluateStyle_IdleMinutes(t *testing.T) {
	rules := []models.StyleRule{
		{Trigger: models.TriggerIdleMinutes, Threshold: intPtr(10), Accent: "#orange"},
	}
	now := time.Now()

	if style := EvaluateStyle(startedLine(11, nil), rules, false, now); style.Accent == "" {
		t.Fatal("11 min elapsed over a 10 min threshold should trigger")
	}
	if style := EvaluateStyle(startedLine(9, nil), rules, false, now); !style.IsZero() {
		t.Fatal("9 min elapsed should not trigger")
	}
}
