package services

import (
	"time"

	"kds-backend/internal/models"
)

// EvaluateStyle walks a monitor's rule list in order and accumulates the
// presentation state for one line. Pure given now: safe to re-run on every
// display refresh tick. Rules only add effects; a later rule that does not
// trigger never cancels an earlier one.
func EvaluateStyle(line *models.TicketLine, rules []models.StyleRule, marched bool, now time.Time) models.ComputedStyle {
	var style models.ComputedStyle
	elapsed, started := line.ElapsedMinutes(now)

	for _, rule := range rules {
		if styleRuleTriggered(rule, line, marched, elapsed, started) {
			style.Merge(rule)
		}
	}
	return style
}

func styleRuleTriggered(rule models.StyleRule, line *models.TicketLine, marched bool, elapsed float64, started bool) bool {
	switch rule.Trigger {
	case models.TriggerRush:
		return line.IsRush
	case models.TriggerMarched:
		return marched
	case models.TriggerIdleMinutes:
		return started && rule.Threshold != nil && elapsed > float64(*rule.Threshold)
	case models.TriggerOverdue:
		return started && line.TargetPrepTime != nil && elapsed > float64(*line.TargetPrepTime)
	case models.TriggerPrewarnMinutes:
		if !started || line.TargetPrepTime == nil || rule.Threshold == nil {
			return false
		}
		remaining := float64(*line.TargetPrepTime) - elapsed
		return remaining > 0 && remaining <= float64(*rule.Threshold)
	}
	return false
}

// ApplyStyles annotates every line in a grouped queue. Called once per
// snapshot after grouping, so marched context is already attached to the
// course groups.
func ApplyStyles(groups []*models.OrderGroup, rules []models.StyleRule, now time.Time) {
	for _, group := range groups {
		for _, course := range group.Courses {
			for _, line := range course.Lines {
				line.Style = EvaluateStyle(line.TicketLine, rules, course.Marched, now)
			}
		}
	}
}
