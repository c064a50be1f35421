package entities

// CompanyInfo is the business-registry (INSEE Sirene) view of a company,
// used to prefill client records from a SIREN/SIRET lookup.
type CompanyInfo struct {
	SIREN        string `json:"siren"`
	SIRET        string `json:"siret,omitempty"`
	CompanyName  string `json:"company_name"`
	LegalForm    string `json:"legal_form,omitempty"`
	Address      string `json:"address,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`
	City         string `json:"city,omitempty"`
	ActivityCode string `json:"activity_code,omitempty"`
	VATNumber    string `json:"vat_number,omitempty"`
	IsActive     bool   `json:"is_active"`
}
