package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Sheet is one worksheet of the source export.
type Sheet struct {
	Name    string
	Channel Channel
	Rows    [][]string
}

// Report counts what happened to the input during one normalization.
type Report struct {
	Rows        int `json:"rows"`
	Headers     int `json:"headers"`
	Observed    int `json:"observed"`
	SkippedRows int `json:"skipped_rows"`
	Duplicates  int `json:"duplicates"`
	Merged      int `json:"merged"`
	Anomalies   int `json:"anomalies"`
	Unresolved  int `json:"unresolved"`
	Products    int `json:"products"`
	Links       int `json:"links"`
	Coils       int `json:"coils"`
}

// Normalizer runs the full row stream → catalog generation pipeline.
type Normalizer struct {
	rules   Rules
	rows    *RowClassifier
	records *RecordBuilder
	tags    *TagClassifier
	logger  *zap.Logger
}

func NewNormalizer(rules Rules, logger *zap.Logger) (*Normalizer, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	tags, err := NewTagClassifier(rules.Taxonomy)
	if err != nil {
		return nil, err
	}
	return &Normalizer{
		rules:   rules,
		rows:    NewRowClassifier(rules),
		records: NewRecordBuilder(rules),
		tags:    tags,
		logger:  logger,
	}, nil
}

// Normalize builds a new generation from the product sheets and the optional
// coil sheet rows. Bad rows and odd merge groups are logged and skipped; only
// context cancellation makes it fail.
func (n *Normalizer) Normalize(ctx context.Context, sheets []Sheet, coilRows [][]string) (*Generation, Report, error) {
	var report Report
	registry := NewBrandRegistry()

	obs := n.extract(sheets, registry, &report)
	report.Observed = len(obs)

	unique := Deduplicate(obs)
	report.Duplicates = len(obs) - len(unique)

	merged := Merge(unique, registry)
	for _, a := range merged.Anomalies {
		n.logger.Warn("grouping anomaly, keeping observations unmerged",
			zap.String("name", a.Name),
			zap.String("brand", a.BrandKey),
			zap.Int("preorder", a.Preorders),
			zap.Int("resale", a.Resales),
		)
	}
	for _, o := range merged.Unresolved {
		n.logger.Warn("observation without a known brand dropped",
			zap.String("name", o.DisplayName),
			zap.String("brand", o.BrandName),
		)
	}
	report.Merged = merged.Merged
	report.Anomalies = len(merged.Anomalies)
	report.Unresolved = len(merged.Unresolved)

	links, err := n.tags.Link(ctx, merged.Products)
	if err != nil {
		return nil, report, fmt.Errorf("classify tags: %w", err)
	}

	gen := NewGeneration()
	gen.Brands = registry.Brands()
	gen.Tags = n.tags.Tags()
	gen.Products = merged.Products
	gen.Links = links

	if len(coilRows) > 0 {
		coils := ParseCoils(coilRows, n.rules.ResistanceSuffix)
		for _, err := range coils.Skipped {
			n.logger.Warn("coil row skipped", zap.Error(err))
		}
		gen.CoilBrands = coils.Brands
		gen.Resistances = coils.Resistances
		gen.Coils = coils.Coils
	}

	report.Products = len(gen.Products)
	report.Links = len(gen.Links)
	report.Coils = len(gen.Coils)
	return gen, report, nil
}

func (n *Normalizer) extract(sheets []Sheet, registry *BrandRegistry, report *Report) []RawObservation {
	var obs []RawObservation

	for _, sh := range sheets {
		state := StartSheet()
		for i, cells := range sh.Rows {
			report.Rows++
			row := n.rows.Classify(cells)

			switch row.Kind {
			case RowReset:
				state = state.Reset()

			case RowHeader:
				if row.Header == "" {
					state = state.Reset()
					continue
				}
				report.Headers++
				state = state.WithHeader(row.Header, n.rows.IsStopWord(row.Header))
				if state.Active() {
					registry.Resolve(state.Brand)
				}

			case RowData:
				if !state.Active() {
					report.SkippedRows++
					n.logger.Debug("data row outside a product block",
						zap.String("sheet", sh.Name),
						zap.Int("row", i+1),
						zap.String("header", state.Pending),
					)
					continue
				}
				o, err := n.records.Build(state, sh.Channel, row.Cells)
				if err != nil {
					report.SkippedRows++
					shapeErr := &RowShapeError{Sheet: sh.Name, Row: i + 1, Reason: "unusable data row", Err: err}
					n.logger.Warn("row skipped", zap.Error(shapeErr))
					continue
				}
				obs = append(obs, o)
			}
		}
	}
	return obs
}
