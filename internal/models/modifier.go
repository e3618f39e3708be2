package models

import (
	"strings"

	"github.com/google/uuid"
)

// ModifierType classifies a modifier for display (strike "no onion",
// highlight substitutions).
type ModifierType string

const (
	ModifierAdd        ModifierType = "add"
	ModifierRemove     ModifierType = "remove"
	ModifierSubstitute ModifierType = "substitute"
)

// Modifier is an add/remove/substitute annotation on a ticket line.
// Immutable once created.
type Modifier struct {
	ID         uuid.UUID    `json:"id"`
	LineID     uuid.UUID    `json:"line_id"`
	Name       string       `json:"name"`
	OptionName string       `json:"option_name"`
	PriceDelta float64      `json:"price_delta"`
	Type       ModifierType `json:"type"`
}

// InferModifierType derives the modifier type from name tokens. Menus are
// free to name modifiers anything, so this stays a heuristic: "No Onion"
// and "Remove cheese" read as removals, "Sub fries"/"Swap to salad" as
// substitutions, everything else as an addition.
func InferModifierType(name string) ModifierType {
	lower := strings.ToLower(strings.TrimSpace(name))
	for _, tok := range []string{"no ", "remove ", "without ", "hold "} {
		if strings.HasPrefix(lower, tok) {
			return ModifierRemove
		}
	}
	for _, tok := range []string{"sub ", "swap ", "substitute ", "instead"} {
		if strings.HasPrefix(lower, tok) || strings.Contains(lower, " instead") {
			return ModifierSubstitute
		}
	}
	return ModifierAdd
}
