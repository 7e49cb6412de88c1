package configs

import (
	"fmt"

	"github.com/freitasmatheusrn/liquid-catalog/internal/catalog"
	"github.com/spf13/viper"
)

type substitutionFile struct {
	From string `mapstructure:"from"`
	To   string `mapstructure:"to"`
}

type layoutFile struct {
	NameColumn         int `mapstructure:"name_column"`
	Presence20Column   int `mapstructure:"presence_20_column"`
	Presence4560Column int `mapstructure:"presence_4560_column"`
	PriceColumn        int `mapstructure:"price_column"`
	MinDataCells       int `mapstructure:"min_data_cells"`
}

type taxonomyFile struct {
	Name     string   `mapstructure:"name"`
	Keywords []string `mapstructure:"keywords"`
}

type rulesFile struct {
	StopWords        []string           `mapstructure:"stop_words"`
	LocationMarkers  []string           `mapstructure:"location_markers"`
	NoiseSubstrings  []string           `mapstructure:"noise_substrings"`
	Substitutions    []substitutionFile `mapstructure:"substitutions"`
	PresenceToken    string             `mapstructure:"presence_token"`
	Separator        string             `mapstructure:"separator"`
	ResistanceSuffix string             `mapstructure:"resistance_suffix"`
	Layout           layoutFile         `mapstructure:"layout"`
	Taxonomy         []taxonomyFile     `mapstructure:"taxonomy"`
}

// LoadCatalogRules reads the normalization rules from a YAML file. Keys left
// out of the file keep their default value. An empty path yields the
// defaults. The result is validated; failures wrap catalog.ErrConfiguration.
func LoadCatalogRules(path string) (catalog.Rules, error) {
	rules := catalog.DefaultRules()
	if path == "" {
		return rules, rules.Validate()
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return catalog.Rules{}, fmt.Errorf("read catalog rules %s: %w", path, err)
	}

	var f rulesFile
	if err := v.Unmarshal(&f); err != nil {
		return catalog.Rules{}, fmt.Errorf("decode catalog rules %s: %w", path, err)
	}

	if v.IsSet("stop_words") {
		rules.StopWords = f.StopWords
	}
	if v.IsSet("location_markers") {
		rules.LocationMarkers = f.LocationMarkers
	}
	if v.IsSet("noise_substrings") {
		rules.NoiseSubstrings = f.NoiseSubstrings
	}
	if v.IsSet("substitutions") {
		rules.Substitutions = make([]catalog.Substitution, 0, len(f.Substitutions))
		for _, s := range f.Substitutions {
			rules.Substitutions = append(rules.Substitutions, catalog.Substitution{From: s.From, To: s.To})
		}
	}
	if v.IsSet("presence_token") {
		rules.PresenceToken = f.PresenceToken
	}
	if v.IsSet("separator") {
		rules.Separator = f.Separator
	}
	if v.IsSet("resistance_suffix") {
		rules.ResistanceSuffix = f.ResistanceSuffix
	}
	if v.IsSet("layout.name_column") {
		rules.Layout.NameColumn = f.Layout.NameColumn
	}
	if v.IsSet("layout.presence_20_column") {
		rules.Layout.Presence20Column = f.Layout.Presence20Column
	}
	if v.IsSet("layout.presence_4560_column") {
		rules.Layout.Presence4560Column = f.Layout.Presence4560Column
	}
	if v.IsSet("layout.price_column") {
		rules.Layout.PriceColumn = f.Layout.PriceColumn
	}
	if v.IsSet("layout.min_data_cells") {
		rules.Layout.MinDataCells = f.Layout.MinDataCells
	}
	if v.IsSet("taxonomy") {
		rules.Taxonomy = make([]catalog.TaxonomyEntry, 0, len(f.Taxonomy))
		for _, t := range f.Taxonomy {
			rules.Taxonomy = append(rules.Taxonomy, catalog.TaxonomyEntry{Name: t.Name, Keywords: t.Keywords})
		}
	}

	if err := rules.Validate(); err != nil {
		return catalog.Rules{}, fmt.Errorf("catalog rules %s: %w", path, err)
	}
	return rules, nil
}
