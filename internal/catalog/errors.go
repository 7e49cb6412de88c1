package catalog

import (
	"errors"
	"fmt"
)

// ErrConfiguration is wrapped by every rules validation failure. A run that
// hits it stops before touching the catalog.
var ErrConfiguration = errors.New("invalid catalog configuration")

// RowShapeError describes a data row that could not be turned into an
// observation. Such rows are skipped.
type RowShapeError struct {
	Sheet  string
	Row    int
	Reason string
	Err    error
}

func (e *RowShapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("sheet %q row %d: %s: %v", e.Sheet, e.Row, e.Reason, e.Err)
	}
	return fmt.Sprintf("sheet %q row %d: %s", e.Sheet, e.Row, e.Reason)
}

func (e *RowShapeError) Unwrap() error { return e.Err }

// GroupingAnomaly is a merge group whose shape does not allow a pairing.
type GroupingAnomaly struct {
	Name      string
	BrandKey  string
	Preorders int
	Resales   int
}

func (a GroupingAnomaly) Size() int { return a.Preorders + a.Resales }

func (a GroupingAnomaly) String() string {
	return fmt.Sprintf("%s/%s: %d preorder, %d resale", a.BrandKey, a.Name, a.Preorders, a.Resales)
}

func configErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}
