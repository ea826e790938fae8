package dto

import "github.com/fekuna/metalmarket-service/internal/model"

type SellerFilters struct {
	Search   string // name, company, email or INN
	Status   model.VerificationStatus
	Page     int
	PageSize int
}

type UpdateSellerStatusInput struct {
	ID        string
	Status    model.VerificationStatus
	IsBlocked *bool // nil keeps the current flag unless Status is BLOCKED
}

// AdminStats backs the admin dashboard counters.
type AdminStats struct {
	SellersCount            int `json:"sellers_count"`
	ProductsCount           int `json:"products_count"`
	ProductsOnModeration    int `json:"products_on_moderation"`
	CompaniesOnVerification int `json:"companies_on_verification"`
}
