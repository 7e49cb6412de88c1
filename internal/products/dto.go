package products

import (
	"github.com/freitasmatheusrn/liquid-catalog/internal/catalog"
	"github.com/shopspring/decimal"
)

// Input DTOs

type ListProductsInput struct {
	SearchIn string `query:"search_in"`
	Page     int    `query:"page"`
	PageSize int    `query:"page_size"`
	BrandID  int    `query:"brand_id"`
	TagID    int    `query:"tag_id"`
	Flavor   string `query:"flavor"`
}

// Output DTOs

type ProductOutput struct {
	ID                 int                  `json:"id"`
	Name               string               `json:"name"`
	BrandID            int                  `json:"brand_id"`
	BrandName          string               `json:"brand_name"`
	LineUp             string               `json:"line_up,omitempty"`
	Availability20mg   catalog.Availability `json:"availability_20mg"`
	Availability4560mg catalog.Availability `json:"availability_45_50_60mg"`
	Price              decimal.Decimal      `json:"price"`
	Tags               []string             `json:"tags,omitempty"`
}

type PaginatedProductsOutput struct {
	Products   []ProductOutput `json:"products"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
	PrevPage   int             `json:"prev_page"`
	NextPage   int             `json:"next_page"`
}
