package products

import (
	"context"
	"strings"

	"github.com/freitasmatheusrn/liquid-catalog/internal/catalog"
	"github.com/freitasmatheusrn/liquid-catalog/pkg/rest"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 5
	maxPageSize     = 100
	flavorPrefixLen = 4
)

type Service interface {
	ListProducts(ctx context.Context, input ListProductsInput) (*PaginatedProductsOutput, *rest.ApiErr)
}

type svc struct {
	current *catalog.Current
	logger  *zap.Logger
}

func NewService(current *catalog.Current, logger *zap.Logger) *svc {
	return &svc{current: current, logger: logger}
}

// ListProducts returns the products visible in the requested context,
// narrowed by the optional brand, tag and flavor filters, one page at a time.
func (s *svc) ListProducts(ctx context.Context, input ListProductsInput) (*PaginatedProductsOutput, *rest.ApiErr) {
	searchIn, err := catalog.ParseSearchContext(input.SearchIn)
	if err != nil {
		return nil, rest.NewBadRequestValidationError("parametros invalidos", []rest.Causes{
			{Field: "search_in", Message: "use on_hand ou to_order"},
		})
	}
	if input.PageSize <= 0 {
		input.PageSize = defaultPageSize
	}
	if input.PageSize > maxPageSize {
		input.PageSize = maxPageSize
	}

	snap := s.current.Load()
	if input.BrandID != 0 {
		if _, ok := snap.Brand(input.BrandID); !ok {
			return nil, rest.NewNotFoundError("marca nao encontrada")
		}
	}
	if input.TagID != 0 {
		if _, ok := snap.Tag(input.TagID); !ok {
			return nil, rest.NewNotFoundError("tag nao encontrada")
		}
	}
	flavor := flavorNeedle(input.Flavor)

	var matched []catalog.Product
	for _, p := range snap.Generation.Products {
		if !searchIn.Admits(p) {
			continue
		}
		if input.BrandID != 0 && p.BrandID != input.BrandID {
			continue
		}
		if input.TagID != 0 && !snap.HasTag(p.ID, input.TagID) {
			continue
		}
		if flavor != "" && !strings.Contains(strings.ToLower(p.Name), flavor) {
			continue
		}
		matched = append(matched, p)
	}

	page := Paginate(len(matched), input.Page, input.PageSize)
	start, end := page.Bounds(len(matched))

	out := &PaginatedProductsOutput{
		Products:   make([]ProductOutput, 0, end-start),
		Total:      len(matched),
		Page:       page.Number,
		PageSize:   page.Limit,
		TotalPages: page.TotalPages,
		PrevPage:   page.Prev,
		NextPage:   page.Next,
	}
	for _, p := range matched[start:end] {
		out.Products = append(out.Products, toProductOutput(snap, p))
	}

	s.logger.Debug("products listed",
		zap.String("search_in", string(searchIn)),
		zap.Int("total", out.Total),
		zap.Int("page", out.Page),
	)
	return out, nil
}

// flavorNeedle keeps the first runes of the query, lower-cased. Matching on a
// short prefix tolerates different word endings.
func flavorNeedle(q string) string {
	r := []rune(strings.ToLower(strings.TrimSpace(q)))
	if len(r) > flavorPrefixLen {
		r = r[:flavorPrefixLen]
	}
	return string(r)
}

func toProductOutput(snap *catalog.Snapshot, p catalog.Product) ProductOutput {
	out := ProductOutput{
		ID:                 p.ID,
		Name:               p.Name,
		BrandID:            p.BrandID,
		LineUp:             p.LineUp,
		Availability20mg:   p.Availability20mg,
		Availability4560mg: p.Availability4560mg,
		Price:              p.Price,
	}
	if b, ok := snap.Brand(p.BrandID); ok {
		out.BrandName = b.Name
	}
	for _, t := range snap.ProductTags(p.ID) {
		out.Tags = append(out.Tags, t.Name)
	}
	return out
}
