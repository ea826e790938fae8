package dto

import "github.com/shopspring/decimal"

type CreateProductInput struct {
	SellerID       string
	CategoryID     string
	Name           string
	Description    string
	Price          decimal.Decimal
	Stock          decimal.Decimal
	ImageURL       string
	Specifications map[string]string
	Tags           []string
	Region         string
}

type UpdateProductInput struct {
	ID             string
	SellerID       string // must own the product
	CategoryID     string
	Name           string
	Description    string
	Price          decimal.Decimal
	Stock          decimal.Decimal
	ImageURL       string
	Specifications map[string]string
	Tags           []string
	Region         string
}
