package entities

import "time"

// Client is a renting company persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id
//
// The VAT rate is carried per client (French companies default to the 20%
// standard rate); order and invoice totals are always derived from it at
// computation time.
type Client struct {
	ID          string    `json:"id"`
	CompanyName string    `json:"company_name"`
	ContactName string    `json:"contact_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	PostalCode  string    `json:"postal_code"`
	Country     string    `json:"country"`
	VATRate     float64   `json:"vat_rate"`
	VATNumber   string    `json:"vat_number,omitempty"`
	SIREN       string    `json:"siren,omitempty"`
	RCSNumber   string    `json:"rcs_number,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}
