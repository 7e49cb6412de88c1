package menu

import (
	"context"

	"github.com/freitasmatheusrn/liquid-catalog/internal/catalog"
	"github.com/freitasmatheusrn/liquid-catalog/pkg/rest"
)

// Service builds the navigation lists a client shows before a product query:
// the brands and tags worth offering in a context, and the coil price list.
type Service interface {
	ListBrands(ctx context.Context, searchIn string) ([]BrandOutput, *rest.ApiErr)
	ListTags(ctx context.Context, searchIn string) ([]TagOutput, *rest.ApiErr)
	ListAllBrands(ctx context.Context) ([]BrandOutput, *rest.ApiErr)
	ListAllTags(ctx context.Context) ([]TagOutput, *rest.ApiErr)
	ListCoils(ctx context.Context) ([]CoilBrandOutput, *rest.ApiErr)
}

type svc struct {
	current *catalog.Current
}

func NewService(current *catalog.Current) Service {
	return &svc{current: current}
}

// ListBrands returns the brands with at least one product visible in the
// context, in id order.
func (s *svc) ListBrands(ctx context.Context, searchIn string) ([]BrandOutput, *rest.ApiErr) {
	sc, apiErr := parseSearchIn(searchIn)
	if apiErr != nil {
		return nil, apiErr
	}
	snap := s.current.Load()

	seen := make(map[int]bool)
	for _, p := range snap.Generation.Products {
		if sc.Admits(p) {
			seen[p.BrandID] = true
		}
	}

	result := make([]BrandOutput, 0, len(seen))
	for _, b := range snap.Generation.Brands {
		if seen[b.ID] {
			result = append(result, BrandOutput(b))
		}
	}
	return result, nil
}

// ListTags returns the tags linked to at least one product visible in the
// context, in taxonomy order.
func (s *svc) ListTags(ctx context.Context, searchIn string) ([]TagOutput, *rest.ApiErr) {
	sc, apiErr := parseSearchIn(searchIn)
	if apiErr != nil {
		return nil, apiErr
	}
	snap := s.current.Load()

	seen := make(map[int]bool)
	for _, p := range snap.Generation.Products {
		if !sc.Admits(p) {
			continue
		}
		for _, t := range snap.ProductTags(p.ID) {
			seen[t.ID] = true
		}
	}

	result := make([]TagOutput, 0, len(seen))
	for _, t := range snap.Generation.Tags {
		if seen[t.ID] {
			result = append(result, TagOutput(t))
		}
	}
	return result, nil
}

func (s *svc) ListAllBrands(ctx context.Context) ([]BrandOutput, *rest.ApiErr) {
	brands := s.current.Load().Generation.Brands
	result := make([]BrandOutput, 0, len(brands))
	for _, b := range brands {
		result = append(result, BrandOutput(b))
	}
	return result, nil
}

func (s *svc) ListAllTags(ctx context.Context) ([]TagOutput, *rest.ApiErr) {
	tags := s.current.Load().Generation.Tags
	result := make([]TagOutput, 0, len(tags))
	for _, t := range tags {
		result = append(result, TagOutput(t))
	}
	return result, nil
}

// ListCoils groups the coil list by brand. Brands without coils are omitted.
func (s *svc) ListCoils(ctx context.Context) ([]CoilBrandOutput, *rest.ApiErr) {
	snap := s.current.Load()

	byBrand := make(map[int][]CoilOutput)
	for _, c := range snap.Generation.Coils {
		out := CoilOutput{ID: c.ID, Price: c.Price}
		if r, ok := snap.Resistance(c.ResistanceID); ok {
			out.Resistance = r.Value
		}
		byBrand[c.BrandID] = append(byBrand[c.BrandID], out)
	}

	result := make([]CoilBrandOutput, 0, len(byBrand))
	for _, b := range snap.Generation.CoilBrands {
		coils, ok := byBrand[b.ID]
		if !ok {
			continue
		}
		result = append(result, CoilBrandOutput{ID: b.ID, Name: b.Name, Coils: coils})
	}
	return result, nil
}

func parseSearchIn(s string) (catalog.SearchContext, *rest.ApiErr) {
	sc, err := catalog.ParseSearchContext(s)
	if err != nil {
		return "", rest.NewBadRequestValidationError("parametros invalidos", []rest.Causes{
			{Field: "search_in", Message: "use on_hand ou to_order"},
		})
	}
	return sc, nil
}
