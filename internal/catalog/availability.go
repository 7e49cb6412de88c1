package catalog

import (
	"fmt"
	"strings"
)

// Availability is the per-denomination presence code of a product across
// both sales channels.
type Availability uint8

const (
	AvailabilityNone Availability = iota
	AvailabilityPreorderOnly
	AvailabilityResaleOnly
	AvailabilityBoth
)

var availabilityNames = [...]string{
	AvailabilityNone:         "NONE",
	AvailabilityPreorderOnly: "PREORDER_ONLY",
	AvailabilityResaleOnly:   "RESALE_ONLY",
	AvailabilityBoth:         "BOTH",
}

// Combine folds the resale and pre-order presence flags of one denomination
// into a single code.
func Combine(resale, preorder bool) Availability {
	switch {
	case resale && preorder:
		return AvailabilityBoth
	case resale:
		return AvailabilityResaleOnly
	case preorder:
		return AvailabilityPreorderOnly
	default:
		return AvailabilityNone
	}
}

// OnChannel returns the code of a single-channel observation.
func OnChannel(ch Channel, present bool) Availability {
	if ch == ChannelResale {
		return Combine(present, false)
	}
	return Combine(false, present)
}

func (a Availability) Valid() bool {
	return int(a) < len(availabilityNames)
}

func (a Availability) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Availability(%d)", uint8(a))
	}
	return availabilityNames[a]
}

func (a Availability) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("invalid availability %d", uint8(a))
	}
	return []byte(a.String()), nil
}

func (a *Availability) UnmarshalText(b []byte) error {
	parsed, err := ParseAvailability(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func ParseAvailability(s string) (Availability, error) {
	for i, name := range availabilityNames {
		if strings.EqualFold(s, name) {
			return Availability(i), nil
		}
	}
	return AvailabilityNone, fmt.Errorf("unknown availability %q", s)
}

// Legacy returns the nullable integer used by the original storage schema:
// nil for NONE, 0 for pre-order only, -1 for resale only and 1 for both.
func (a Availability) Legacy() *int {
	var v int
	switch a {
	case AvailabilityPreorderOnly:
		v = 0
	case AvailabilityResaleOnly:
		v = -1
	case AvailabilityBoth:
		v = 1
	default:
		return nil
	}
	return &v
}

func AvailabilityFromLegacy(v *int) (Availability, error) {
	if v == nil {
		return AvailabilityNone, nil
	}
	switch *v {
	case 0:
		return AvailabilityPreorderOnly, nil
	case -1:
		return AvailabilityResaleOnly, nil
	case 1:
		return AvailabilityBoth, nil
	}
	return AvailabilityNone, fmt.Errorf("unknown legacy availability %d", *v)
}

// SearchContext selects which channel a query is interested in.
type SearchContext string

const (
	OnHand  SearchContext = "on_hand"
	ToOrder SearchContext = "to_order"
)

func ParseSearchContext(s string) (SearchContext, error) {
	switch SearchContext(strings.ToLower(strings.TrimSpace(s))) {
	case OnHand:
		return OnHand, nil
	case ToOrder:
		return ToOrder, nil
	}
	return "", fmt.Errorf("unknown search context %q", s)
}

// Includes reports whether a denomination code is visible in the context.
// NONE is never visible.
func (c SearchContext) Includes(a Availability) bool {
	switch c {
	case OnHand:
		return a == AvailabilityBoth || a == AvailabilityResaleOnly
	case ToOrder:
		return a == AvailabilityBoth || a == AvailabilityPreorderOnly
	}
	return false
}

// Admits reports whether at least one denomination of p is visible.
func (c SearchContext) Admits(p Product) bool {
	return c.Includes(p.Availability20mg) || c.Includes(p.Availability4560mg)
}
