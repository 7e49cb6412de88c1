package products

import (
	"context"
	"net/http"
	"testing"

	"github.com/freitasmatheusrn/liquid-catalog/internal/catalog"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func testCurrent() *catalog.Current {
	gen := catalog.NewGeneration()
	gen.Brands = []catalog.Brand{{ID: 1, Name: "BrandX"}, {ID: 2, Name: "BrandY"}}
	gen.Tags = []catalog.Tag{{ID: 1, Name: "Ice"}, {ID: 2, Name: "Fruit"}}
	gen.Products = []catalog.Product{
		{ID: 1, Name: "Mango Ice", BrandID: 1, LineUp: "Line1", Availability20mg: catalog.AvailabilityBoth, Price: decimal.RequireFromString("12.50")},
		{ID: 2, Name: "Grape", BrandID: 1, Availability20mg: catalog.AvailabilityPreorderOnly, Price: decimal.RequireFromString("10")},
		{ID: 3, Name: "Watermelon", BrandID: 2, Availability4560mg: catalog.AvailabilityResaleOnly, Price: decimal.RequireFromString("11")},
		{ID: 4, Name: "Dead Stock", BrandID: 2, Price: decimal.RequireFromString("9")},
		{ID: 5, Name: "Mango Peach", BrandID: 2, Availability20mg: catalog.AvailabilityResaleOnly, Price: decimal.RequireFromString("13")},
	}
	gen.Links = []catalog.ProductTagLink{{ProductID: 1, TagID: 1}, {ProductID: 1, TagID: 2}, {ProductID: 5, TagID: 2}}

	current := catalog.NewCurrent()
	current.Swap(gen)
	return current
}

func ids(out *PaginatedProductsOutput) []int {
	var got []int
	for _, p := range out.Products {
		got = append(got, p.ID)
	}
	return got
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestListProducts_Filters(t *testing.T) {
	s := NewService(testCurrent(), zap.NewNop())

	tests := []struct {
		name  string
		input ListProductsInput
		want  []int
	}{
		{"on hand", ListProductsInput{SearchIn: "on_hand"}, []int{1, 3, 5}},
		{"to order", ListProductsInput{SearchIn: "to_order"}, []int{1, 2}},
		{"brand", ListProductsInput{SearchIn: "on_hand", BrandID: 2}, []int{3, 5}},
		{"tag", ListProductsInput{SearchIn: "on_hand", TagID: 2}, []int{1, 5}},
		{"flavor prefix", ListProductsInput{SearchIn: "on_hand", Flavor: "MANGOES"}, []int{1, 5}},
		{"flavor other case", ListProductsInput{SearchIn: "to_order", Flavor: "grape"}, []int{2}},
		{"flavor no match", ListProductsInput{SearchIn: "on_hand", Flavor: "kiwi"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, apiErr := s.ListProducts(context.Background(), tt.input)
			if apiErr != nil {
				t.Fatalf("unexpected error: %v", apiErr)
			}
			if got := ids(out); !equalInts(got, tt.want) {
				t.Errorf("ids = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestListProducts_DeadProductsNeverListed(t *testing.T) {
	s := NewService(testCurrent(), zap.NewNop())
	for _, ctx := range []string{"on_hand", "to_order"} {
		out, apiErr := s.ListProducts(context.Background(), ListProductsInput{SearchIn: ctx, PageSize: 100})
		if apiErr != nil {
			t.Fatal(apiErr)
		}
		for _, id := range ids(out) {
			if id == 4 {
				t.Errorf("%s listed a product with no availability", ctx)
			}
		}
	}
}

func TestListProducts_Pagination(t *testing.T) {
	s := NewService(testCurrent(), zap.NewNop())

	out, apiErr := s.ListProducts(context.Background(), ListProductsInput{SearchIn: "on_hand", Page: 9, PageSize: 2})
	if apiErr != nil {
		t.Fatal(apiErr)
	}
	if out.Page != 2 || out.TotalPages != 2 || out.Total != 3 {
		t.Errorf("page %d of %d (total %d)", out.Page, out.TotalPages, out.Total)
	}
	if out.NextPage != 1 || out.PrevPage != 1 {
		t.Errorf("prev/next = %d/%d", out.PrevPage, out.NextPage)
	}
	if !equalInts(ids(out), []int{5}) {
		t.Errorf("ids = %v", ids(out))
	}

	out, _ = s.ListProducts(context.Background(), ListProductsInput{SearchIn: "on_hand"})
	if out.PageSize != defaultPageSize {
		t.Errorf("page size = %d, want default %d", out.PageSize, defaultPageSize)
	}
	out, _ = s.ListProducts(context.Background(), ListProductsInput{SearchIn: "on_hand", PageSize: 1000})
	if out.PageSize != maxPageSize {
		t.Errorf("page size = %d, want cap %d", out.PageSize, maxPageSize)
	}
}

func TestListProducts_Output(t *testing.T) {
	s := NewService(testCurrent(), zap.NewNop())
	out, _ := s.ListProducts(context.Background(), ListProductsInput{SearchIn: "on_hand", PageSize: 1})

	p := out.Products[0]
	if p.BrandName != "BrandX" || p.LineUp != "Line1" {
		t.Errorf("brand/line = %q/%q", p.BrandName, p.LineUp)
	}
	if len(p.Tags) != 2 || p.Tags[0] != "Ice" || p.Tags[1] != "Fruit" {
		t.Errorf("tags = %v", p.Tags)
	}
	if !p.Price.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("price = %s", p.Price)
	}
}

func TestListProducts_Errors(t *testing.T) {
	s := NewService(testCurrent(), zap.NewNop())

	tests := []struct {
		name  string
		input ListProductsInput
		code  int
	}{
		{"missing context", ListProductsInput{}, http.StatusBadRequest},
		{"unknown context", ListProductsInput{SearchIn: "everywhere"}, http.StatusBadRequest},
		{"unknown brand", ListProductsInput{SearchIn: "on_hand", BrandID: 42}, http.StatusNotFound},
		{"unknown tag", ListProductsInput{SearchIn: "on_hand", TagID: 42}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, apiErr := s.ListProducts(context.Background(), tt.input)
			if apiErr == nil || apiErr.Code != tt.code {
				t.Errorf("got %v, want code %d", apiErr, tt.code)
			}
		})
	}
}

func TestListProducts_EmptyCatalog(t *testing.T) {
	s := NewService(catalog.NewCurrent(), zap.NewNop())
	out, apiErr := s.ListProducts(context.Background(), ListProductsInput{SearchIn: "to_order"})
	if apiErr != nil {
		t.Fatal(apiErr)
	}
	if out.Total != 0 || out.Page != 1 || out.PrevPage != 1 || out.NextPage != 1 || len(out.Products) != 0 {
		t.Errorf("unexpected output %+v", out)
	}
}
