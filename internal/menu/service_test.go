package menu

import (
	"context"
	"net/http"
	"testing"

	"github.com/freitasmatheusrn/liquid-catalog/internal/catalog"
	"github.com/shopspring/decimal"
)

func testService() Service {
	gen := catalog.NewGeneration()
	gen.Brands = []catalog.Brand{{ID: 1, Name: "BrandX"}, {ID: 2, Name: "BrandY"}, {ID: 3, Name: "Gone"}}
	gen.Tags = []catalog.Tag{{ID: 1, Name: "Ice"}, {ID: 2, Name: "Fruit"}, {ID: 3, Name: "Dessert"}}
	gen.Products = []catalog.Product{
		{ID: 1, Name: "Mango Ice", BrandID: 1, Availability20mg: catalog.AvailabilityResaleOnly},
		{ID: 2, Name: "Grape", BrandID: 2, Availability4560mg: catalog.AvailabilityPreorderOnly},
		{ID: 3, Name: "Cake", BrandID: 3},
	}
	gen.Links = []catalog.ProductTagLink{
		{ProductID: 1, TagID: 1},
		{ProductID: 1, TagID: 2},
		{ProductID: 2, TagID: 2},
		{ProductID: 3, TagID: 3},
	}
	gen.CoilBrands = []catalog.CoilBrand{{ID: 1, Name: "Vaporesso"}, {ID: 2, Name: "Unused"}, {ID: 3, Name: "Smok"}}
	gen.Resistances = []catalog.Resistance{{ID: 1, Value: "0.6"}, {ID: 2, Value: "0.8"}}
	gen.Coils = []catalog.Coil{
		{ID: 1, BrandID: 3, ResistanceID: 1, Price: decimal.RequireFromString("5")},
		{ID: 2, BrandID: 1, ResistanceID: 1, Price: decimal.RequireFromString("6.5")},
		{ID: 3, BrandID: 1, ResistanceID: 2, Price: decimal.RequireFromString("7")},
	}

	current := catalog.NewCurrent()
	current.Swap(gen)
	return NewService(current)
}

func TestListBrands(t *testing.T) {
	s := testService()

	onHand, apiErr := s.ListBrands(context.Background(), "on_hand")
	if apiErr != nil {
		t.Fatal(apiErr)
	}
	if len(onHand) != 1 || onHand[0].Name != "BrandX" {
		t.Errorf("on_hand brands = %v", onHand)
	}

	toOrder, _ := s.ListBrands(context.Background(), "to_order")
	if len(toOrder) != 1 || toOrder[0].Name != "BrandY" {
		t.Errorf("to_order brands = %v", toOrder)
	}

	all, _ := s.ListAllBrands(context.Background())
	if len(all) != 3 {
		t.Errorf("expected every brand, got %v", all)
	}
}

func TestListTags(t *testing.T) {
	s := testService()

	onHand, apiErr := s.ListTags(context.Background(), "on_hand")
	if apiErr != nil {
		t.Fatal(apiErr)
	}
	if len(onHand) != 2 || onHand[0].Name != "Ice" || onHand[1].Name != "Fruit" {
		t.Errorf("on_hand tags = %v", onHand)
	}

	toOrder, _ := s.ListTags(context.Background(), "to_order")
	if len(toOrder) != 1 || toOrder[0].Name != "Fruit" {
		t.Errorf("to_order tags = %v", toOrder)
	}

	all, _ := s.ListAllTags(context.Background())
	if len(all) != 3 {
		t.Errorf("expected every tag, got %v", all)
	}
}

func TestListBrands_InvalidContext(t *testing.T) {
	s := testService()
	if _, apiErr := s.ListBrands(context.Background(), "nowhere"); apiErr == nil || apiErr.Code != http.StatusBadRequest {
		t.Errorf("brands: got %v", apiErr)
	}
	if _, apiErr := s.ListTags(context.Background(), ""); apiErr == nil || apiErr.Code != http.StatusBadRequest {
		t.Errorf("tags: got %v", apiErr)
	}
}

func TestListCoils(t *testing.T) {
	s := testService()

	groups, apiErr := s.ListCoils(context.Background())
	if apiErr != nil {
		t.Fatal(apiErr)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 brand groups, got %v", groups)
	}
	if groups[0].Name != "Vaporesso" || len(groups[0].Coils) != 2 {
		t.Errorf("first group = %+v", groups[0])
	}
	if groups[0].Coils[1].Resistance != "0.8" {
		t.Errorf("resistance = %q", groups[0].Coils[1].Resistance)
	}
	if groups[1].Name != "Smok" || !groups[1].Coils[0].Price.Equal(decimal.RequireFromString("5")) {
		t.Errorf("second group = %+v", groups[1])
	}
}

func TestMenu_EmptyCatalog(t *testing.T) {
	s := NewService(catalog.NewCurrent())
	brands, apiErr := s.ListBrands(context.Background(), "on_hand")
	if apiErr != nil || len(brands) != 0 {
		t.Errorf("brands = %v, %v", brands, apiErr)
	}
	coils, _ := s.ListCoils(context.Background())
	if len(coils) != 0 {
		t.Errorf("coils = %v", coils)
	}
}
