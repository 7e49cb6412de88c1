package catalog

import (
	"regexp"
	"strings"
)

type RowKind uint8

const (
	// RowReset is a blank row or a location marker; it clears the pending header.
	RowReset RowKind = iota
	RowHeader
	RowData
)

func (k RowKind) String() string {
	switch k {
	case RowReset:
		return "reset"
	case RowHeader:
		return "header"
	case RowData:
		return "data"
	}
	return "unknown"
}

type ClassifiedRow struct {
	Kind  RowKind
	Cells []string
	// Header is the cleaned first cell of a header row.
	Header string
}

var volumeToken = regexp.MustCompile(`\d{2,}ML\b`)

type RowClassifier struct {
	rules     Rules
	stopWords map[string]struct{}
	markers   map[string]struct{}
}

func NewRowClassifier(rules Rules) *RowClassifier {
	c := &RowClassifier{
		rules:     rules,
		stopWords: make(map[string]struct{}, len(rules.StopWords)),
		markers:   make(map[string]struct{}, len(rules.LocationMarkers)),
	}
	for _, w := range rules.StopWords {
		c.stopWords[strings.TrimSpace(w)] = struct{}{}
	}
	for _, m := range rules.LocationMarkers {
		c.markers[strings.TrimSpace(m)] = struct{}{}
	}
	return c
}

func (c *RowClassifier) Classify(cells []string) ClassifiedRow {
	cells = trimTrailingBlanks(cells)
	if len(cells) == 0 {
		return ClassifiedRow{Kind: RowReset}
	}
	if _, ok := c.markers[strings.TrimSpace(cells[0])]; ok {
		return ClassifiedRow{Kind: RowReset, Cells: cells}
	}
	if len(cells) < c.rules.Layout.MinDataCells {
		return ClassifiedRow{Kind: RowHeader, Cells: cells, Header: c.CleanHeader(cells[0])}
	}
	return ClassifiedRow{Kind: RowData, Cells: cells}
}

// CleanHeader strips vendor annotations and volume tokens from a header cell
// and applies the display-name substitutions.
func (c *RowClassifier) CleanHeader(raw string) string {
	s := raw
	for _, noise := range c.rules.NoiseSubstrings {
		s = strings.ReplaceAll(s, noise, "")
	}
	for _, sub := range c.rules.Substitutions {
		s = strings.ReplaceAll(s, sub.From, sub.To)
	}
	s = volumeToken.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

func (c *RowClassifier) IsStopWord(header string) bool {
	_, ok := c.stopWords[header]
	return ok
}

func trimTrailingBlanks(cells []string) []string {
	n := len(cells)
	for n > 0 && strings.TrimSpace(cells[n-1]) == "" {
		n--
	}
	return cells[:n]
}
