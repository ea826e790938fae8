package dto

import (
	"github.com/fekuna/metalmarket-service/internal/model"
	"github.com/shopspring/decimal"
)

type LeadFilters struct {
	SellerID string
	Status   model.LeadStatus // empty means every status
}

type CreateLeadInput struct {
	ProductID  string
	BuyerName  string
	BuyerPhone string
	Amount     decimal.Decimal
}

type UpdateLeadStatusInput struct {
	ID       string
	SellerID string // must own the lead
	Status   model.LeadStatus
}
