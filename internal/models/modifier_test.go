package models

import "testing"

func TestInferModifierType(t *testing.T) {
	cases := []struct {
		name string
		want ModifierType
	}{
		{"No Onion", ModifierRemove},
		{"remove cheese", ModifierRemove},
		{"Without pickles", ModifierRemove},
		{"Hold the mayo", ModifierRemove},
		{"Sub fries", ModifierSubstitute},
		{"Swap to salad", ModifierSubstitute},
		{"Substitute rice", ModifierSubstitute},
		{"salad instead", ModifierSubstitute},
		{"Extra cheese", ModifierAdd},
		{"Notes", ModifierAdd},
		{"Nori", ModifierAdd}, // prefix match is on whole tokens
	}
	for _, tc := range cases {
		if got := InferModifierType(tc.name); got != tc.want {
			t.Fatalf("InferModifierType(%q) = %s, want %s", tc.name, got, tc.want)
		}
	}
}
