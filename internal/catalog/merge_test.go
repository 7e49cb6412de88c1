package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
)

func obs(name, brand string, ch Channel, p20, p4560 bool, price string) RawObservation {
	return RawObservation{
		DisplayName:    name,
		BrandKey:       BrandKey(brand),
		BrandName:      brand,
		Channel:        ch,
		Presence20mg:   p20,
		Presence4560mg: p4560,
		Price:          decimal.RequireFromString(price),
	}
}

func registryWith(names ...string) *BrandRegistry {
	r := NewBrandRegistry()
	for _, n := range names {
		r.Resolve(n)
	}
	return r
}

func TestDeduplicate(t *testing.T) {
	a := obs("Mango", "BrandX", ChannelResale, true, false, "12.5")
	b := obs("Mango", "BrandX", ChannelResale, true, false, "12.50")
	c := obs("Kiwi", "BrandX", ChannelResale, true, false, "10")

	got := Deduplicate([]RawObservation{a, c, a, b})
	// 12.5 and 12.50 are the same price.
	if len(got) != 2 {
		t.Fatalf("expected 2 observations, got %d", len(got))
	}
	if got[0].DisplayName != "Mango" || got[1].DisplayName != "Kiwi" {
		t.Errorf("order not preserved: %v", got)
	}

	again := Deduplicate(got)
	if len(again) != len(got) {
		t.Errorf("dedupe is not idempotent: %d then %d", len(got), len(again))
	}
}

func TestMergePairBecomesBoth(t *testing.T) {
	in := []RawObservation{
		obs("Mango", "BrandX", ChannelPreorder, true, false, "15"),
		obs("Mango", "BrandX", ChannelResale, true, true, "12.5"),
	}
	in[0].LineUp = "Line1"

	res := Merge(in, registryWith("BrandX"))
	if len(res.Products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(res.Products))
	}
	p := res.Products[0]
	if p.Availability20mg != AvailabilityBoth {
		t.Errorf("20mg = %s, want BOTH", p.Availability20mg)
	}
	if p.Availability4560mg != AvailabilityResaleOnly {
		t.Errorf("45/60mg = %s, want RESALE_ONLY", p.Availability4560mg)
	}
	if !p.Price.Equal(decimal.RequireFromString("15")) {
		t.Errorf("merged price should come from the preorder observation, got %s", p.Price)
	}
	if p.LineUp != "Line1" {
		t.Errorf("line-up = %q", p.LineUp)
	}
	if res.Merged != 1 || len(res.Anomalies) != 0 {
		t.Errorf("merged=%d anomalies=%d", res.Merged, len(res.Anomalies))
	}
}

func TestMergeSingleChannel(t *testing.T) {
	res := Merge([]RawObservation{
		obs("Mango", "BrandX", ChannelResale, true, false, "12.5"),
		obs("Kiwi", "BrandX", ChannelPreorder, false, true, "9"),
	}, registryWith("BrandX"))

	if len(res.Products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(res.Products))
	}
	mango, kiwi := res.Products[0], res.Products[1]
	if mango.Availability20mg != AvailabilityResaleOnly || mango.Availability4560mg != AvailabilityNone {
		t.Errorf("mango = %s/%s", mango.Availability20mg, mango.Availability4560mg)
	}
	if kiwi.Availability20mg != AvailabilityNone || kiwi.Availability4560mg != AvailabilityPreorderOnly {
		t.Errorf("kiwi = %s/%s", kiwi.Availability20mg, kiwi.Availability4560mg)
	}
}

func TestMergeAnomalyKeepsMembers(t *testing.T) {
	in := []RawObservation{
		obs("Mango", "BrandX", ChannelPreorder, true, false, "15"),
		obs("Mango", "BrandX", ChannelPreorder, false, true, "16"),
		obs("Mango", "BrandX", ChannelResale, true, false, "12"),
	}

	res := Merge(in, registryWith("BrandX"))
	if len(res.Anomalies) != 1 {
		t.Fatalf("expected one anomaly, got %d", len(res.Anomalies))
	}
	a := res.Anomalies[0]
	if a.Preorders != 2 || a.Resales != 1 || a.Size() != 3 {
		t.Errorf("anomaly = %+v", a)
	}
	if len(res.Products) != 3 {
		t.Errorf("anomalous members should pass through, got %d products", len(res.Products))
	}
	if res.Merged != 0 {
		t.Errorf("merged = %d", res.Merged)
	}
}

func TestMergeIDOrder(t *testing.T) {
	in := []RawObservation{
		obs("Solo", "BrandX", ChannelResale, true, false, "1"),
		obs("Pair", "BrandX", ChannelPreorder, true, false, "2"),
		obs("Other", "BrandY", ChannelPreorder, true, false, "3"),
		obs("Pair", "BrandX", ChannelResale, true, false, "2"),
	}

	res := Merge(in, registryWith("BrandX", "BrandY"))
	want := []string{"Pair", "Solo", "Other"}
	if len(res.Products) != len(want) {
		t.Fatalf("got %d products", len(res.Products))
	}
	for i, p := range res.Products {
		if p.Name != want[i] || p.ID != i+1 {
			t.Errorf("product %d = %d/%q, want %d/%q", i, p.ID, p.Name, i+1, want[i])
		}
	}
	if res.Products[2].BrandID != 2 {
		t.Errorf("brand id = %d", res.Products[2].BrandID)
	}
}

func TestMergeSameNameDifferentBrand(t *testing.T) {
	res := Merge([]RawObservation{
		obs("Mango", "BrandX", ChannelPreorder, true, false, "1"),
		obs("Mango", "BrandY", ChannelResale, true, false, "1"),
	}, registryWith("BrandX", "BrandY"))

	if res.Merged != 0 || len(res.Products) != 2 {
		t.Errorf("different brands must not merge: merged=%d products=%d", res.Merged, len(res.Products))
	}
}

func TestMergeUnknownBrand(t *testing.T) {
	res := Merge([]RawObservation{
		obs("Mango", "Ghost", ChannelResale, true, false, "1"),
	}, registryWith("BrandX"))

	if len(res.Products) != 0 || len(res.Unresolved) != 1 {
		t.Errorf("products=%d unresolved=%d", len(res.Products), len(res.Unresolved))
	}
}

func TestMergeTablePerDenomination(t *testing.T) {
	tests := []struct {
		resale, preorder bool
		want             Availability
	}{
		{true, true, AvailabilityBoth},
		{true, false, AvailabilityResaleOnly},
		{false, true, AvailabilityPreorderOnly},
		{false, false, AvailabilityNone},
	}

	for _, denom := range []string{"20mg", "45/50/60mg"} {
		for _, tt := range tests {
			pre := obs("Mango", "BrandX", ChannelPreorder, false, false, "15")
			res := obs("Mango", "BrandX", ChannelResale, false, false, "12")
			if denom == "20mg" {
				pre.Presence20mg, res.Presence20mg = tt.preorder, tt.resale
			} else {
				pre.Presence4560mg, res.Presence4560mg = tt.preorder, tt.resale
			}

			out := Merge([]RawObservation{pre, res}, registryWith("BrandX"))
			if len(out.Products) != 1 {
				t.Fatalf("%s resale=%v preorder=%v: expected 1 product, got %d", denom, tt.resale, tt.preorder, len(out.Products))
			}
			p := out.Products[0]
			got, other := p.Availability20mg, p.Availability4560mg
			if denom != "20mg" {
				got, other = other, got
			}
			if got != tt.want {
				t.Errorf("%s resale=%v preorder=%v: got %s, want %s", denom, tt.resale, tt.preorder, got, tt.want)
			}
			if other != AvailabilityNone {
				t.Errorf("%s resale=%v preorder=%v: other denomination = %s, want NONE", denom, tt.resale, tt.preorder, other)
			}
		}
	}
}
