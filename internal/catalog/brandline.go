package catalog

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// ExtractorState is the brand/line extraction state threaded through the row
// stream. Methods never mutate the receiver; they return the next state.
type ExtractorState struct {
	Pending  string
	Brand    string
	LineUp   string
	Skipping bool

	known    []string
	knownKey map[string]struct{}
}

// Reset drops the pending header. Known headers are kept.
func (s ExtractorState) Reset() ExtractorState {
	return ExtractorState{known: s.known, knownKey: s.knownKey}
}

// StartSheet returns the state for the first row of a new sheet: no pending
// header and no known headers. Prefixes never carry over between sheets.
func StartSheet() ExtractorState {
	return ExtractorState{}
}

// WithHeader makes header the pending one. The brand and line are resolved
// against the headers seen before it, then header joins the known set.
func (s ExtractorState) WithHeader(header string, stop bool) ExtractorState {
	next := ExtractorState{
		Pending:  header,
		Skipping: stop,
		known:    s.known,
		knownKey: s.knownKey,
	}
	if !stop {
		next.Brand, next.LineUp = SplitBrandLine(header, s.known)
	}
	if _, seen := s.knownKey[header]; !seen {
		next.known = append(slices.Clip(s.known), header)
		next.knownKey = make(map[string]struct{}, len(s.knownKey)+1)
		for k := range s.knownKey {
			next.knownKey[k] = struct{}{}
		}
		next.knownKey[header] = struct{}{}
	}
	return next
}

// Active reports whether data rows should be attached to the pending header.
func (s ExtractorState) Active() bool {
	return s.Pending != "" && !s.Skipping
}

func (s ExtractorState) Known() []string {
	return slices.Clone(s.known)
}

// SplitBrandLine finds the longest known header that prefixes header
// (case-insensitively) followed by a space. That header is the brand and the
// rest is the line-up. Without such a prefix the whole header is the brand.
// Equal lengths resolve to the header seen first.
func SplitBrandLine(header string, known []string) (brand, lineUp string) {
	best := -1
	bestLen, bestEnd := 0, 0
	for i, candidate := range known {
		if candidate == "" || strings.EqualFold(candidate, header) {
			continue
		}
		end, ok := foldPrefix(header, candidate)
		if !ok || end >= len(header) || header[end] != ' ' {
			continue
		}
		if l := utf8.RuneCountInString(candidate); l > bestLen {
			best, bestLen, bestEnd = i, l, end
		}
	}
	if best < 0 {
		return header, ""
	}
	return known[best], strings.TrimSpace(header[bestEnd:])
}

// foldPrefix matches prefix against the start of s rune by rune under case
// folding and returns the byte offset in s where the match ends. Folded runes
// may differ in encoded length (K and the Kelvin sign), so offsets in s and
// prefix are tracked separately.
func foldPrefix(s, prefix string) (int, bool) {
	end := 0
	for _, want := range prefix {
		if end >= len(s) {
			return 0, false
		}
		got, size := utf8.DecodeRuneInString(s[end:])
		if got != want && !strings.EqualFold(string(got), string(want)) {
			return 0, false
		}
		end += size
	}
	return end, true
}

// BrandRegistry assigns sequential brand ids on first sight. Brand identity
// is case-insensitive and the first spelling seen is kept.
type BrandRegistry struct {
	brands []Brand
	byKey  map[string]int
}

func NewBrandRegistry() *BrandRegistry {
	return &BrandRegistry{byKey: make(map[string]int)}
}

func BrandKey(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

func (r *BrandRegistry) Resolve(name string) Brand {
	key := BrandKey(name)
	if idx, ok := r.byKey[key]; ok {
		return r.brands[idx]
	}
	b := Brand{ID: len(r.brands) + 1, Name: strings.TrimSpace(name)}
	r.byKey[key] = len(r.brands)
	r.brands = append(r.brands, b)
	return b
}

func (r *BrandRegistry) Lookup(key string) (Brand, bool) {
	idx, ok := r.byKey[key]
	if !ok {
		return Brand{}, false
	}
	return r.brands[idx], true
}

func (r *BrandRegistry) Brands() []Brand {
	return slices.Clone(r.brands)
}
