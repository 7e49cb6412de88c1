package catalog

import (
	"encoding/json"
	"testing"
)

func TestCombine(t *testing.T) {
	tests := []struct {
		resale, preorder bool
		want             Availability
	}{
		{true, true, AvailabilityBoth},
		{true, false, AvailabilityResaleOnly},
		{false, true, AvailabilityPreorderOnly},
		{false, false, AvailabilityNone},
	}

	for _, tt := range tests {
		if got := Combine(tt.resale, tt.preorder); got != tt.want {
			t.Errorf("Combine(%v, %v) = %s, want %s", tt.resale, tt.preorder, got, tt.want)
		}
	}
}

func TestOnChannel(t *testing.T) {
	if got := OnChannel(ChannelResale, true); got != AvailabilityResaleOnly {
		t.Errorf("resale present: got %s", got)
	}
	if got := OnChannel(ChannelPreorder, true); got != AvailabilityPreorderOnly {
		t.Errorf("preorder present: got %s", got)
	}
	if got := OnChannel(ChannelResale, false); got != AvailabilityNone {
		t.Errorf("resale absent: got %s", got)
	}
	if got := OnChannel(ChannelPreorder, false); got != AvailabilityNone {
		t.Errorf("preorder absent: got %s", got)
	}
}

func TestLegacyConversion(t *testing.T) {
	for _, a := range []Availability{AvailabilityNone, AvailabilityPreorderOnly, AvailabilityResaleOnly, AvailabilityBoth} {
		back, err := AvailabilityFromLegacy(a.Legacy())
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", a, err)
		}
		if back != a {
			t.Errorf("%s: round trip gave %s", a, back)
		}
	}

	if AvailabilityNone.Legacy() != nil {
		t.Error("NONE should be stored as NULL")
	}
	if v := AvailabilityResaleOnly.Legacy(); v == nil || *v != -1 {
		t.Errorf("RESALE_ONLY should be stored as -1, got %v", v)
	}

	bad := 7
	if _, err := AvailabilityFromLegacy(&bad); err == nil {
		t.Error("expected error for unknown legacy value")
	}
}

func TestAvailabilityJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		A Availability `json:"a"`
	}{AvailabilityPreorderOnly})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"a":"PREORDER_ONLY"}` {
		t.Errorf("unexpected json %s", b)
	}
}

func TestSearchContextIncludes(t *testing.T) {
	tests := []struct {
		ctx  SearchContext
		a    Availability
		want bool
	}{
		{OnHand, AvailabilityBoth, true},
		{OnHand, AvailabilityResaleOnly, true},
		{OnHand, AvailabilityPreorderOnly, false},
		{OnHand, AvailabilityNone, false},
		{ToOrder, AvailabilityBoth, true},
		{ToOrder, AvailabilityPreorderOnly, true},
		{ToOrder, AvailabilityResaleOnly, false},
		{ToOrder, AvailabilityNone, false},
	}

	for _, tt := range tests {
		if got := tt.ctx.Includes(tt.a); got != tt.want {
			t.Errorf("%s.Includes(%s) = %v, want %v", tt.ctx, tt.a, got, tt.want)
		}
	}
}

func TestSearchContextAdmits(t *testing.T) {
	both := Product{Availability20mg: AvailabilityBoth}
	dead := Product{}
	mixed := Product{Availability20mg: AvailabilityPreorderOnly, Availability4560mg: AvailabilityResaleOnly}

	for _, ctx := range []SearchContext{OnHand, ToOrder} {
		if !ctx.Admits(both) {
			t.Errorf("%s should admit a product with BOTH", ctx)
		}
		if ctx.Admits(dead) {
			t.Errorf("%s should not admit a dead product", ctx)
		}
		if !ctx.Admits(mixed) {
			t.Errorf("%s should admit a product visible through one denomination", ctx)
		}
	}
	if !dead.Dead() {
		t.Error("product with NONE everywhere should be dead")
	}
}

func TestParseSearchContext(t *testing.T) {
	if c, err := ParseSearchContext(" ON_HAND "); err != nil || c != OnHand {
		t.Errorf("got %q, %v", c, err)
	}
	if c, err := ParseSearchContext("to_order"); err != nil || c != ToOrder {
		t.Errorf("got %q, %v", c, err)
	}
	if _, err := ParseSearchContext("everywhere"); err == nil {
		t.Error("expected error for unknown context")
	}
}
