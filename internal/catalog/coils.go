package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var errCoilShape = errors.New("expected \"<brand> - <resistance>\" and a price")

type CoilCatalog struct {
	Brands      []CoilBrand
	Resistances []Resistance
	Coils       []Coil
	Skipped     []error
}

// ParseCoils reads the coil sheet: column A holds "<brand> - <resistance>",
// column B the price. Rows of any other width are ignored.
func ParseCoils(rows [][]string, resistanceSuffix string) CoilCatalog {
	var out CoilCatalog
	brandIDs := make(map[string]int)
	resistanceIDs := make(map[string]int)

	for i, row := range rows {
		row = trimTrailingBlanks(row)
		if len(row) != 2 {
			continue
		}
		brand, resistance, ok := splitCoilName(row[0], resistanceSuffix)
		if !ok {
			out.Skipped = append(out.Skipped, fmt.Errorf("coil row %d: %w", i+1, errCoilShape))
			continue
		}
		price, err := ParsePrice(row[1])
		if err != nil {
			out.Skipped = append(out.Skipped, fmt.Errorf("coil row %d: price %q: %w", i+1, row[1], err))
			continue
		}

		bID, ok := brandIDs[brand]
		if !ok {
			bID = len(out.Brands) + 1
			brandIDs[brand] = bID
			out.Brands = append(out.Brands, CoilBrand{ID: bID, Name: brand})
		}
		rID, ok := resistanceIDs[resistance]
		if !ok {
			rID = len(out.Resistances) + 1
			resistanceIDs[resistance] = rID
			out.Resistances = append(out.Resistances, Resistance{ID: rID, Value: resistance})
		}
		out.Coils = append(out.Coils, Coil{
			ID:           len(out.Coils) + 1,
			BrandID:      bID,
			ResistanceID: rID,
			Price:        price,
		})
	}
	return out
}

func splitCoilName(s, suffix string) (brand, resistance string, ok bool) {
	brand, resistance, found := strings.Cut(s, "-")
	if !found {
		return "", "", false
	}
	brand = strings.TrimSpace(brand)
	resistance = strings.TrimSpace(resistance)
	if suffix != "" {
		resistance = strings.TrimSpace(strings.ReplaceAll(resistance, strings.TrimSpace(suffix), ""))
	}
	return brand, resistance, brand != "" && resistance != ""
}
