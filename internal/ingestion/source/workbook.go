package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook reads sheets from an .xlsx export of the price list.
type Workbook struct {
	open func() (*excelize.File, error)
}

// NewWorkbook reads the workbook at path on every fetch, so a file replaced
// between runs is picked up.
func NewWorkbook(path string) *Workbook {
	return &Workbook{open: func() (*excelize.File, error) {
		return excelize.OpenFile(path)
	}}
}

// NewWorkbookFromReader buffers r and serves every fetch from that copy.
func NewWorkbookFromReader(r io.Reader) (*Workbook, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read workbook: %w", err)
	}
	return &Workbook{open: func() (*excelize.File, error) {
		return excelize.OpenReader(bytes.NewReader(data))
	}}, nil
}

// FetchSheet returns the cell text of name restricted to cellRange (for
// example "A1:D500"). An empty range returns the whole sheet.
func (w *Workbook) FetchSheet(ctx context.Context, name, cellRange string) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := w.open()
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(name); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found", name)
	}

	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read rows of %q: %w", name, err)
	}
	if cellRange == "" {
		return rows, nil
	}

	r, err := ParseRange(cellRange)
	if err != nil {
		return nil, err
	}
	return r.Slice(rows), nil
}

// Range is a rectangular, 1-based, inclusive cell range.
type Range struct {
	FirstCol, FirstRow int
	LastCol, LastRow   int
}

func ParseRange(s string) (Range, error) {
	from, to, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return Range{}, fmt.Errorf("invalid cell range %q", s)
	}
	c1, r1, err := excelize.CellNameToCoordinates(strings.TrimSpace(from))
	if err != nil {
		return Range{}, fmt.Errorf("invalid cell range %q: %w", s, err)
	}
	c2, r2, err := excelize.CellNameToCoordinates(strings.TrimSpace(to))
	if err != nil {
		return Range{}, fmt.Errorf("invalid cell range %q: %w", s, err)
	}
	if c2 < c1 {
		c1, c2 = c2, c1
	}
	if r2 < r1 {
		r1, r2 = r2, r1
	}
	return Range{FirstCol: c1, FirstRow: r1, LastCol: c2, LastRow: r2}, nil
}

// Slice cuts rows down to the range. Rows inside the range that the sheet
// does not have come back empty so row numbers stay aligned.
func (r Range) Slice(rows [][]string) [][]string {
	out := make([][]string, 0, max(0, min(len(rows), r.LastRow)-r.FirstRow+1))
	for i := r.FirstRow - 1; i < r.LastRow && i < len(rows); i++ {
		row := rows[i]
		if r.FirstCol-1 >= len(row) {
			out = append(out, nil)
			continue
		}
		end := min(r.LastCol, len(row))
		out = append(out, row[r.FirstCol-1:end])
	}
	return out
}
