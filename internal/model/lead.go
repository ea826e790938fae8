package model

import "github.com/shopspring/decimal"

type LeadStatus string

const (
	LeadStatusNew        LeadStatus = "NEW"
	LeadStatusInProgress LeadStatus = "IN_PROGRESS"
	LeadStatusDone       LeadStatus = "DONE"
	LeadStatusRejected   LeadStatus = "REJECTED"
)

func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusInProgress, LeadStatusDone, LeadStatusRejected:
		return true
	}
	return false
}

// Lead is a buyer inquiry against one seller's product.
type Lead struct {
	BaseModel
	ProductID   string          `db:"product_id" json:"product_id"`
	ProductName string          `db:"product_name" json:"product_name"`
	SellerID    string          `db:"seller_id" json:"seller_id"`
	BuyerName   string          `db:"buyer_name" json:"buyer_name"`
	BuyerPhone  string          `db:"buyer_phone" json:"buyer_phone"`
	Amount      decimal.Decimal `db:"amount" json:"amount"` // tons requested
	TotalPrice  decimal.Decimal `db:"total_price" json:"total_price"`
	Status      LeadStatus      `db:"status" json:"status"`
}
