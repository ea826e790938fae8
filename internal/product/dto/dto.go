package dto

import "github.com/fekuna/metalmarket-service/internal/model"

type ProductFilters struct {
	CategoryID string
	Search     string
	SellerID   string // seller's own listing, every status
	Status     string // admin queue, ignored when SellerID is set
	Sort       string // price_asc, price_desc, newest
	Page       int
	PageSize   int
}

// SnapshotFilter narrows what the repository loads before the catalog resolver runs.
type SnapshotFilter struct {
	SellerID string
	Status   model.ProductStatus
}

type Suggestion struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type SellerStats struct {
	TotalProducts int                         `json:"total_products"`
	TotalViews    int64                       `json:"total_views"`
	ByStatus      map[model.ProductStatus]int `json:"by_status"`
	TopProduct    *model.Product              `json:"top_product"`
}
