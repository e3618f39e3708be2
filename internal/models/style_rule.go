package models

// StyleTrigger is the condition kind of one style rule.
type StyleTrigger string

const (
	TriggerRush           StyleTrigger = "rush"
	TriggerMarched        StyleTrigger = "marched"
	TriggerIdleMinutes    StyleTrigger = "idle-minutes"
	TriggerOverdue        StyleTrigger = "overdue"
	TriggerPrewarnMinutes StyleTrigger = "prewarn-minutes"
)

// StyleAction is one presentation effect a triggered rule applies.
type StyleAction string

const (
	ActionBlink     StyleAction = "blink"
	ActionUnderline StyleAction = "underline"
	ActionStrike    StyleAction = "strike"
)

// StyleRule is one entry in a monitor's ordered rule list. Rules are
// evaluated in list order and only ever add effects; a later rule that does
// not trigger leaves earlier effects alone.
type StyleRule struct {
	Trigger   StyleTrigger `json:"trigger"`
	Threshold *int         `json:"threshold,omitempty"` // minutes, for the timed triggers

	Background string        `json:"background,omitempty"`
	Border     string        `json:"border,omitempty"`
	Accent     string        `json:"accent,omitempty"`
	Actions    []StyleAction `json:"actions,omitempty"`
}

// Validate checks the rule is well formed: known trigger, and a threshold
// where the trigger needs one.
func (r *StyleRule) Validate() error {
	switch r.Trigger {
	case TriggerRush, TriggerMarched, TriggerOverdue:
	case TriggerIdleMinutes, TriggerPrewarnMinutes:
		if r.Threshold == nil || *r.Threshold <= 0 {
			return &ValidationError{Field: "style_rules", Reason: string(r.Trigger) + " requires a positive threshold"}
		}
	default:
		return &ValidationError{Field: "style_rules", Reason: "unknown trigger " + string(r.Trigger)}
	}
	return nil
}

// ComputedStyle is the accumulated presentation state for one line.
// Merging is additive: color attributes overwrite, boolean effects OR.
type ComputedStyle struct {
	Background      string `json:"background,omitempty"`
	Border          string `json:"border,omitempty"`
	Accent          string `json:"accent,omitempty"`
	ShouldBlink     bool   `json:"should_blink"`
	ShouldUnderline bool   `json:"should_underline"`
	ShouldStrike    bool   `json:"should_strike"`
}

// Merge folds a triggered rule's effects into the accumulated style.
func (c *ComputedStyle) Merge(r StyleRule) {
	if r.Background != "" {
		c.Background = r.Background
	}
	if r.Border != "" {
		c.Border = r.Border
	}
	if r.Accent != "" {
		c.Accent = r.Accent
	}
	for _, a := range r.Actions {
		switch a {
		case ActionBlink:
			c.ShouldBlink = true
		case ActionUnderline:
			c.ShouldUnderline = true
		case ActionStrike:
			c.ShouldStrike = true
		}
	}
}

// IsZero reports whether no effect has been applied.
func (c *ComputedStyle) IsZero() bool {
	return *c == ComputedStyle{}
}
