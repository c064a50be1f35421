package request

import "autopro_rental/internal/domain/entities"

type AccountingAccountsRequest struct {
	Sales       string `json:"sales"`
	VATStandard string `json:"vat_standard"`
	VATReduced  string `json:"vat_reduced"`
}

// SettingsRequest replaces the whole configuration document; omitted maps are
// refilled with defaults by the use case.
type SettingsRequest struct {
	CompanyName     string                    `json:"company_name"`
	CompanyAddress  string                    `json:"company_address"`
	CompanyPhone    string                    `json:"company_phone"`
	CompanyEmail    string                    `json:"company_email"`
	VATRates        map[string]float64        `json:"vat_rates"`
	PaymentDelays   map[string]int            `json:"payment_delays"`
	ReminderPeriods []int                     `json:"reminder_periods"`
	Accounts        AccountingAccountsRequest `json:"accounting_accounts"`
	MailgunAPIKey   string                    `json:"mailgun_api_key"`
	MailgunDomain   string                    `json:"mailgun_domain"`
}

func (r SettingsRequest) ToEntity() entities.Settings {
	return entities.Settings{
		CompanyName:     r.CompanyName,
		CompanyAddress:  r.CompanyAddress,
		CompanyPhone:    r.CompanyPhone,
		CompanyEmail:    r.CompanyEmail,
		VATRates:        r.VATRates,
		PaymentDelays:   r.PaymentDelays,
		ReminderPeriods: r.ReminderPeriods,
		Accounts: entities.AccountingAccounts{
			Sales:       r.Accounts.Sales,
			VATStandard: r.Accounts.VATStandard,
			VATReduced:  r.Accounts.VATReduced,
		},
		MailgunAPIKey: r.MailgunAPIKey,
		MailgunDomain: r.MailgunDomain,
	}
}
