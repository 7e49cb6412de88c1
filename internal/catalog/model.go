package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Channel is the sales mode of one observation.
type Channel uint8

const (
	ChannelPreorder Channel = iota + 1
	ChannelResale
)

func (c Channel) String() string {
	switch c {
	case ChannelPreorder:
		return "preorder"
	case ChannelResale:
		return "resale"
	}
	return "unknown"
}

// RawObservation is one product mention in one channel, as read from a
// single data row.
type RawObservation struct {
	DisplayName    string
	BrandKey       string
	BrandName      string
	LineUp         string
	Channel        Channel
	Presence20mg   bool
	Presence4560mg bool
	Price          decimal.Decimal
}

type Brand struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Tag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID                 int
	Name               string
	BrandID            int
	LineUp             string
	Availability20mg   Availability
	Availability4560mg Availability
	Price              decimal.Decimal
}

// Dead reports whether the product is not available in any denomination.
func (p Product) Dead() bool {
	return p.Availability20mg == AvailabilityNone && p.Availability4560mg == AvailabilityNone
}

type ProductTagLink struct {
	ProductID int
	TagID     int
}

type CoilBrand struct {
	ID   int
	Name string
}

type Resistance struct {
	ID    int
	Value string
}

type Coil struct {
	ID           int
	BrandID      int
	ResistanceID int
	Price        decimal.Decimal
}

// Generation is one complete, self-contained catalog. Each ingestion run
// builds a new generation and replaces the previous one wholesale.
type Generation struct {
	ID          uuid.UUID
	CreatedAt   time.Time
	Brands      []Brand
	Tags        []Tag
	Products    []Product
	Links       []ProductTagLink
	CoilBrands  []CoilBrand
	Resistances []Resistance
	Coils       []Coil
}

func NewGeneration() *Generation {
	return &Generation{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
	}
}
