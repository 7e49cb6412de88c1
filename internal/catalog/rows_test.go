package catalog

import "testing"

func TestClassify(t *testing.T) {
	c := NewRowClassifier(DefaultRules())

	tests := []struct {
		name       string
		cells      []string
		wantKind   RowKind
		wantHeader string
	}{
		{"empty row", nil, RowReset, ""},
		{"blank cells", []string{"", " ", ""}, RowReset, ""},
		{"location marker", []string{"ДОМА - КОЛОДИЩИ"}, RowReset, ""},
		{"single cell header", []string{"BrandX"}, RowHeader, "BrandX"},
		{"header with trailing blanks", []string{"BrandX Line1", "", "", "", ""}, RowHeader, "BrandX Line1"},
		{"three cells is still a header", []string{"BrandX", "x", "y"}, RowHeader, "BrandX"},
		{"data row", []string{"BrandX — Mango", "Есть", "", "12,5"}, RowData, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := c.Classify(tt.cells)
			if row.Kind != tt.wantKind {
				t.Fatalf("kind = %s, want %s", row.Kind, tt.wantKind)
			}
			if row.Header != tt.wantHeader {
				t.Errorf("header = %q, want %q", row.Header, tt.wantHeader)
			}
		})
	}
}

func TestCleanHeader(t *testing.T) {
	c := NewRowClassifier(DefaultRules())

	tests := []struct {
		raw, want string
	}{
		{"HUSKY 30ML", "HUSKY"},
		{"HUSKY  Salt 100ML Ice", "HUSKY Salt Ice"},
		{"Brand NEW!", "Brand"},
		{"Brand (Заводской никотин, БЕЗ бустера)", "Brand"},
		{"Rick And Morty Salt", "РИК И МОРТИ Salt"},
		{"Brand 5ML", "Brand 5ML"},
		{"  Spaced   Out  ", "Spaced Out"},
	}

	for _, tt := range tests {
		if got := c.CleanHeader(tt.raw); got != tt.want {
			t.Errorf("CleanHeader(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestIsStopWord(t *testing.T) {
	c := NewRowClassifier(DefaultRules())
	if !c.IsStopWord("Испарители") {
		t.Error("expected stop word")
	}
	if c.IsStopWord("Испарители Plus") {
		t.Error("stop words match whole headers only")
	}
}
