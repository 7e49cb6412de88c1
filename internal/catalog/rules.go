package catalog

import "strings"

// Layout holds the column positions of a data row.
type Layout struct {
	NameColumn         int
	Presence20Column   int
	Presence4560Column int
	PriceColumn        int
	// MinDataCells is the populated-cell count from which a row is data.
	MinDataCells int
}

type Substitution struct {
	From string
	To   string
}

// TaxonomyEntry maps a tag to its keywords. Entry order is significant: it
// fixes tag ids and the order of tags on a product.
type TaxonomyEntry struct {
	Name     string
	Keywords []string
}

// Rules is the static configuration of one ingestion run.
type Rules struct {
	StopWords        []string
	LocationMarkers  []string
	NoiseSubstrings  []string
	Substitutions    []Substitution
	PresenceToken    string
	Separator        string
	ResistanceSuffix string
	Layout           Layout
	Taxonomy         []TaxonomyEntry
}

func DefaultLayout() Layout {
	return Layout{
		NameColumn:         0,
		Presence20Column:   1,
		Presence4560Column: 2,
		PriceColumn:        3,
		MinDataCells:       4,
	}
}

func DefaultRules() Rules {
	return Rules{
		StopWords:       []string{"Испарители"},
		LocationMarkers: []string{"НА РАБОТЕ - ПЛОЩАДЬ ЛЕНИНА", "ДОМА - КОЛОДИЩИ"},
		NoiseSubstrings: []string{" NEW!", " (Заводской никотин, БЕЗ бустера)"},
		Substitutions: []Substitution{
			{From: "Rick And Morty", To: "РИК И МОРТИ"},
		},
		PresenceToken:    "Есть",
		Separator:        "—",
		ResistanceSuffix: " ОМ",
		Layout:           DefaultLayout(),
		Taxonomy:         DefaultTaxonomy(),
	}
}

func (r Rules) Validate() error {
	if strings.TrimSpace(r.PresenceToken) == "" {
		return configErr("presence token is empty")
	}
	if r.Separator == "" {
		return configErr("field separator is empty")
	}
	if err := r.Layout.validate(); err != nil {
		return err
	}
	for _, n := range r.NoiseSubstrings {
		if n == "" {
			return configErr("empty noise substring")
		}
	}
	for _, s := range r.Substitutions {
		if s.From == "" {
			return configErr("substitution with empty source")
		}
	}
	return validateTaxonomy(r.Taxonomy)
}

func (l Layout) validate() error {
	cols := map[string]int{
		"name":          l.NameColumn,
		"presence_20":   l.Presence20Column,
		"presence_4560": l.Presence4560Column,
		"price":         l.PriceColumn,
	}
	seen := make(map[int]string, len(cols))
	for name, col := range cols {
		if col < 0 {
			return configErr("column %s is negative", name)
		}
		if other, ok := seen[col]; ok {
			return configErr("columns %s and %s share index %d", name, other, col)
		}
		seen[col] = name
		if col >= l.MinDataCells {
			return configErr("column %s (%d) is beyond the data row threshold %d", name, col, l.MinDataCells)
		}
	}
	return nil
}

func validateTaxonomy(entries []TaxonomyEntry) error {
	if len(entries) == 0 {
		return configErr("taxonomy is empty")
	}
	names := make(map[string]struct{}, len(entries))
	for i, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return configErr("taxonomy entry %d has no name", i)
		}
		if _, dup := names[name]; dup {
			return configErr("duplicate tag %q", name)
		}
		names[name] = struct{}{}
		if len(e.Keywords) == 0 {
			return configErr("tag %q has no keywords", name)
		}
		for _, kw := range e.Keywords {
			if strings.TrimSpace(kw) == "" {
				return configErr("tag %q has an empty keyword", name)
			}
		}
	}
	return nil
}
