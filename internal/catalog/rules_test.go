package catalog

import (
	"errors"
	"testing"
)

func TestDefaultRulesValid(t *testing.T) {
	if err := DefaultRules().Validate(); err != nil {
		t.Fatalf("default rules rejected: %v", err)
	}
}

func TestRulesValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Rules)
	}{
		{"empty presence token", func(r *Rules) { r.PresenceToken = " " }},
		{"empty separator", func(r *Rules) { r.Separator = "" }},
		{"negative column", func(r *Rules) { r.Layout.PriceColumn = -1 }},
		{"shared column", func(r *Rules) { r.Layout.Presence4560Column = r.Layout.Presence20Column }},
		{"column past threshold", func(r *Rules) { r.Layout.MinDataCells = 3 }},
		{"empty noise", func(r *Rules) { r.NoiseSubstrings = append(r.NoiseSubstrings, "") }},
		{"empty substitution", func(r *Rules) { r.Substitutions = []Substitution{{From: "", To: "x"}} }},
		{"empty taxonomy", func(r *Rules) { r.Taxonomy = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := DefaultRules()
			tt.mutate(&r)
			if err := r.Validate(); !errors.Is(err, ErrConfiguration) {
				t.Errorf("err = %v, want ErrConfiguration", err)
			}
		})
	}
}
