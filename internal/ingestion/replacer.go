package ingestion

import (
	"context"
	"fmt"

	"github.com/freitasmatheusrn/liquid-catalog/internal/catalog"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReplaceFailure means the new generation could not be persisted. The
// previously served generation stays in place.
type ReplaceFailure struct {
	GenerationID uuid.UUID
	Err          error
}

func (e *ReplaceFailure) Error() string {
	return fmt.Sprintf("replace catalog with generation %s: %v", e.GenerationID, e.Err)
}

func (e *ReplaceFailure) Unwrap() error { return e.Err }

// Replacer publishes generations: it persists them through the sink and then
// swaps the in-memory snapshot.
type Replacer struct {
	sink    CatalogSink
	current *catalog.Current
	logger  *zap.Logger
}

func NewReplacer(sink CatalogSink, current *catalog.Current, logger *zap.Logger) *Replacer {
	return &Replacer{sink: sink, current: current, logger: logger}
}

// Replace sanitizes gen in place, persists it and swaps it in. It returns how
// many entities were dropped by sanitization.
func (r *Replacer) Replace(ctx context.Context, gen *catalog.Generation) (int, error) {
	dropped := Sanitize(gen)
	for _, d := range dropped {
		r.logger.Warn("entity dropped before persisting", zap.String("reason", d))
	}

	// A nil error means the sink committed; memory must follow it.
	if err := r.sink.ReplaceCatalog(ctx, gen); err != nil {
		return len(dropped), &ReplaceFailure{GenerationID: gen.ID, Err: err}
	}

	r.current.Swap(gen)
	r.logger.Info("catalog generation published",
		zap.String("generation", gen.ID.String()),
		zap.Int("products", len(gen.Products)),
		zap.Int("brands", len(gen.Brands)),
		zap.Int("links", len(gen.Links)),
	)
	return len(dropped), nil
}

// Sanitize removes entities that would break referential integrity and
// returns a description of each removal.
func Sanitize(gen *catalog.Generation) []string {
	var dropped []string

	brands := make(map[int]struct{}, len(gen.Brands))
	for _, b := range gen.Brands {
		brands[b.ID] = struct{}{}
	}
	tags := make(map[int]struct{}, len(gen.Tags))
	for _, t := range gen.Tags {
		tags[t.ID] = struct{}{}
	}

	products := gen.Products[:0]
	kept := make(map[int]struct{}, len(gen.Products))
	for _, p := range gen.Products {
		var reason string
		switch {
		case p.Name == "":
			reason = "empty name"
		case p.Price.IsNegative():
			reason = "negative price"
		default:
			if _, ok := brands[p.BrandID]; !ok {
				reason = fmt.Sprintf("unknown brand %d", p.BrandID)
			}
		}
		if reason != "" {
			dropped = append(dropped, fmt.Sprintf("product %d %q: %s", p.ID, p.Name, reason))
			continue
		}
		kept[p.ID] = struct{}{}
		products = append(products, p)
	}
	gen.Products = products

	links := gen.Links[:0]
	for _, l := range gen.Links {
		_, okP := kept[l.ProductID]
		_, okT := tags[l.TagID]
		if !okP || !okT {
			dropped = append(dropped, fmt.Sprintf("link %d->%d: dangling", l.ProductID, l.TagID))
			continue
		}
		links = append(links, l)
	}
	gen.Links = links

	coilBrands := make(map[int]struct{}, len(gen.CoilBrands))
	for _, b := range gen.CoilBrands {
		coilBrands[b.ID] = struct{}{}
	}
	resistances := make(map[int]struct{}, len(gen.Resistances))
	for _, r := range gen.Resistances {
		resistances[r.ID] = struct{}{}
	}
	coils := gen.Coils[:0]
	for _, c := range gen.Coils {
		_, okB := coilBrands[c.BrandID]
		_, okR := resistances[c.ResistanceID]
		if !okB || !okR || c.Price.IsNegative() {
			dropped = append(dropped, fmt.Sprintf("coil %d: unknown brand/resistance or negative price", c.ID))
			continue
		}
		coils = append(coils, c)
	}
	gen.Coils = coils

	return dropped
}
