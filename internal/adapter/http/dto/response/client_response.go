package response

import (
	"time"

	"autopro_rental/internal/domain/entities"
)

type ClientResponse struct {
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

func FromClient(c entities.Client) ClientResponse {
	return ClientResponse{
		ID:          c.ID,
		CompanyName: c.CompanyName,
		ContactName: c.ContactName,
		Email:       c.Email,
		Phone:       c.Phone,
		Address:     c.Address,
		City:        c.City,
		PostalCode:  c.PostalCode,
		Country:     c.Country,
		VATRate:     c.VATRate,
		VATNumber:   c.VATNumber,
		SIREN:       c.SIREN,
		RCSNumber:   c.RCSNumber,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
	}
}

func FromClients(clients []entities.Client) []ClientResponse {
	out := make([]ClientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, FromClient(c))
	}
	return out
}
