package model

type VerificationStatus string

const (
	VerificationNew      VerificationStatus = "NEW"
	VerificationPending  VerificationStatus = "PENDING"
	VerificationVerified VerificationStatus = "VERIFIED"
	VerificationRejected VerificationStatus = "REJECTED"
	VerificationBlocked  VerificationStatus = "BLOCKED"
)

func (s VerificationStatus) Valid() bool {
	switch s {
	case VerificationNew, VerificationPending, VerificationVerified, VerificationRejected, VerificationBlocked:
		return true
	}
	return false
}

type Seller struct {
	BaseModel
	Email              string             `db:"email" json:"email"`
	Name               string             `db:"name" json:"name"`
	CompanyName        string             `db:"company_name" json:"company_name"`
	INN                *string            `db:"inn" json:"inn"`
	Phone              *string            `db:"phone" json:"phone"`
	Website            *string            `db:"website" json:"website"`
	Region             string             `db:"region" json:"region"`
	Rating             float64            `db:"rating" json:"rating"`
	VerificationStatus VerificationStatus `db:"verification_status" json:"verification_status"`
	IsBlocked          bool               `db:"is_blocked" json:"is_blocked"`
}
