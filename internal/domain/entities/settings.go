package entities

// AccountingAccounts holds the settings-overridable PCG account codes.
// The 5.5% super-reduced VAT account is fixed by the chart and has no
// override on purpose.
type AccountingAccounts struct {
	Sales       string `json:"sales"`
	VATStandard string `json:"vat_standard"`
	VATReduced  string `json:"vat_reduced"`
}

// Settings is the single back-office configuration document.
//
// Storage model (DynamoDB):
//   - PK: id (fixed "default")
type Settings struct {
	ID              string             `json:"id"`
	CompanyName     string             `json:"company_name"`
	CompanyAddress  string             `json:"company_address"`
	CompanyPhone    string             `json:"company_phone"`
	CompanyEmail    string             `json:"company_email"`
	VATRates        map[string]float64 `json:"vat_rates"`
	PaymentDelays   map[string]int     `json:"payment_delays"`
	ReminderPeriods []int              `json:"reminder_periods"`
	Accounts        AccountingAccounts `json:"accounting_accounts"`
	MailgunAPIKey   string             `json:"mailgun_api_key,omitempty"`
	MailgunDomain   string             `json:"mailgun_domain,omitempty"`
}

// DefaultInvoiceDueDelayDays applies when no payment delay is configured.
const DefaultInvoiceDueDelayDays = 30

// DefaultSettings returns the configuration created on first access.
func DefaultSettings() Settings {
	return Settings{
		ID:             "default",
		CompanyName:    "AutoPro Rental",
		VATRates:       map[string]float64{"standard": 20.0, "reduced": 10.0, "super_reduced": 5.5},
		PaymentDelays:  map[string]int{"days": 30, "weeks": 7, "months": 30, "years": 365},
		ReminderPeriods: []int{7, 15, 30},
		Accounts: AccountingAccounts{
			Sales:       "706000",
			VATStandard: "445571",
			VATReduced:  "445572",
		},
	}
}

// InvoiceDueDelayDays returns the configured due-date delay for new invoices.
func (s Settings) InvoiceDueDelayDays() int {
	if d, ok := s.PaymentDelays["days"]; ok && d > 0 {
		return d
	}
	return DefaultInvoiceDueDelayDays
}
