package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type ProductStatus string

const (
	ProductStatusActive     ProductStatus = "ACTIVE"
	ProductStatusDraft      ProductStatus = "DRAFT"
	ProductStatusModeration ProductStatus = "MODERATION"
	ProductStatusRejected   ProductStatus = "REJECTED"
	ProductStatusArchived   ProductStatus = "ARCHIVED"
)

func (s ProductStatus) Valid() bool {
	switch s {
	case ProductStatusActive, ProductStatusDraft, ProductStatusModeration, ProductStatusRejected, ProductStatusArchived:
		return true
	}
	return false
}

type Product struct {
	BaseModel
	SellerID       string          `db:"seller_id" json:"seller_id"`
	CategoryID     string          `db:"category_id" json:"category_id"`
	Name           string          `db:"name" json:"name"`
	Description    string          `db:"description" json:"description"`
	Price          decimal.Decimal `db:"price" json:"price"` // per ton
	Stock          decimal.Decimal `db:"stock" json:"stock"` // tons
	ImageURL       *string         `db:"image_url" json:"image_url"`
	Specifications Specifications  `db:"specifications" json:"specifications"`
	Tags           pq.StringArray  `db:"tags" json:"tags"`
	Views          int64           `db:"views" json:"views"`
	Status         ProductStatus   `db:"status" json:"status"`
	Region         string          `db:"region" json:"region"`
}

// Specifications maps attribute name (diameter, grade, GOST, length) to its value. Stored as jsonb.
type Specifications map[string]string

func (s Specifications) Value() (driver.Value, error) {
	if s == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s)
}

func (s *Specifications) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*s = Specifications{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("specifications: unsupported source type")
	}
	out := Specifications{}
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*s = out
	return nil
}
