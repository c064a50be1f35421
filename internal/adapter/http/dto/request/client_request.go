package request

import (
	"strings"

	"autopro_rental/internal/domain/entities"
	"autopro_rental/internal/usecase"
)

// ClientRequest is the payload for client create and update routes. On
// update, zero-valued optional fields are overwritten: the back office always
// submits the full form.
type ClientRequest struct {
	CompanyName string  `json:"company_name" binding:"required"`
	ContactName string  `json:"contact_name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	PostalCode  string  `json:"postal_code"`
	Country     string  `json:"country"`
	VATRate     float64 `json:"vat_rate"`
	VATNumber   string  `json:"vat_number"`
	SIREN       string  `json:"siren"`
	RCSNumber   string  `json:"rcs_number"`
}

func (r ClientRequest) ToCommand() usecase.CreateClientCommand {
	return usecase.CreateClientCommand{
		CompanyName: strings.TrimSpace(r.CompanyName),
		ContactName: strings.TrimSpace(r.ContactName),
		Email:       strings.TrimSpace(r.Email),
		Phone:       strings.TrimSpace(r.Phone),
		Address:     r.Address,
		City:        r.City,
		PostalCode:  r.PostalCode,
		Country:     r.Country,
		VATRate:     r.VATRate,
		VATNumber:   strings.TrimSpace(r.VATNumber),
		SIREN:       strings.TrimSpace(r.SIREN),
		RCSNumber:   strings.TrimSpace(r.RCSNumber),
	}
}

// ApplyTo overlays the request onto an existing client, preserving identity
// and lifecycle fields.
func (r ClientRequest) ApplyTo(c entities.Client) entities.Client {
	c.CompanyName = strings.TrimSpace(r.CompanyName)
	c.ContactName = strings.TrimSpace(r.ContactName)
	c.Email = strings.TrimSpace(r.Email)
	c.Phone = strings.TrimSpace(r.Phone)
	c.Address = r.Address
	c.City = r.City
	c.PostalCode = r.PostalCode
	if r.Country != "" {
		c.Country = r.Country
	}
	if r.VATRate > 0 {
		c.VATRate = r.VATRate
	}
	c.VATNumber = strings.TrimSpace(r.VATNumber)
	c.SIREN = strings.TrimSpace(r.SIREN)
	c.RCSNumber = strings.TrimSpace(r.RCSNumber)
	return c
}
