package menu

import (
	"github.com/shopspring/decimal"
)

// Output DTOs

type BrandOutput struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type TagOutput struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type CoilOutput struct {
	ID         int             `json:"id"`
	Resistance string          `json:"resistance"`
	Price      decimal.Decimal `json:"price"`
}

type CoilBrandOutput struct {
	ID    int          `json:"id"`
	Name  string       `json:"name"`
	Coils []CoilOutput `json:"coils"`
}
