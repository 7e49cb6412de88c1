package catalog

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	errEmptyName     = errors.New("empty product name")
	errMissingPrice  = errors.New("missing price cell")
	errNegativePrice = errors.New("negative price")
)

// RecordBuilder turns data rows into raw observations.
type RecordBuilder struct {
	layout    Layout
	presence  string
	separator string
}

func NewRecordBuilder(rules Rules) *RecordBuilder {
	return &RecordBuilder{
		layout:    rules.Layout,
		presence:  rules.PresenceToken,
		separator: rules.Separator,
	}
}

// Build reads one data row attached to the given extraction state.
func (b *RecordBuilder) Build(state ExtractorState, ch Channel, cells []string) (RawObservation, error) {
	name := DisplayName(cell(cells, b.layout.NameColumn), b.separator)
	if name == "" {
		return RawObservation{}, errEmptyName
	}

	raw := cell(cells, b.layout.PriceColumn)
	if strings.TrimSpace(raw) == "" {
		return RawObservation{}, errMissingPrice
	}
	price, err := ParsePrice(raw)
	if err != nil {
		return RawObservation{}, err
	}

	return RawObservation{
		DisplayName:    name,
		BrandKey:       BrandKey(state.Brand),
		BrandName:      state.Brand,
		LineUp:         state.LineUp,
		Channel:        ch,
		Presence20mg:   cell(cells, b.layout.Presence20Column) == b.presence,
		Presence4560mg: cell(cells, b.layout.Presence4560Column) == b.presence,
		Price:          price,
	}, nil
}

// DisplayName returns the trimmed text after the last separator.
func DisplayName(s, separator string) string {
	if i := strings.LastIndex(s, separator); i >= 0 {
		s = s[i+len(separator):]
	}
	return strings.TrimSpace(s)
}

// ParsePrice accepts a decimal comma and ignores grouping spaces.
func ParsePrice(s string) (decimal.Decimal, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\u202f':
			return -1
		case ',':
			return '.'
		}
		return r
	}, s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, errNegativePrice
	}
	return d, nil
}

func cell(cells []string, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return cells[i]
}
