package request

import (
	"strings"
	"time"

	"autopro_rental/internal/domain/entities"
	"autopro_rental/internal/usecase"
)

// VehicleRequest is the payload for vehicle create and update routes. Dates
// are RFC3339 strings in the JSON body.
type VehicleRequest struct {
	Type                   string    `json:"type"`
	Brand                  string    `json:"brand" binding:"required"`
	Model                  string    `json:"model" binding:"required"`
	LicensePlate           string    `json:"license_plate" binding:"required"`
	FirstRegistration      time.Time `json:"first_registration"`
	TechnicalControlExpiry time.Time `json:"technical_control_expiry"`
	InsuranceCompany       string    `json:"insurance_company"`
	InsuranceContract      string    `json:"insurance_contract"`
	InsuranceAmount        float64   `json:"insurance_amount"`
	InsuranceExpiry        time.Time `json:"insurance_expiry"`
	DailyRate              float64   `json:"daily_rate" binding:"required"`
	AccountingAccount      string    `json:"accounting_account"`
	IsAvailable            *bool     `json:"is_available"`
}

func (r VehicleRequest) ToCommand() usecase.CreateVehicleCommand {
	return usecase.CreateVehicleCommand{
		Type:                   entities.VehicleType(r.Type),
		Brand:                  strings.TrimSpace(r.Brand),
		Model:                  strings.TrimSpace(r.Model),
		LicensePlate:           strings.TrimSpace(r.LicensePlate),
		FirstRegistration:      r.FirstRegistration,
		TechnicalControlExpiry: r.TechnicalControlExpiry,
		InsuranceCompany:       r.InsuranceCompany,
		InsuranceContract:      r.InsuranceContract,
		InsuranceAmount:        r.InsuranceAmount,
		InsuranceExpiry:        r.InsuranceExpiry,
		DailyRate:              r.DailyRate,
		AccountingAccount:      strings.TrimSpace(r.AccountingAccount),
	}
}

// ApplyTo overlays the request onto an existing vehicle, preserving identity
// and creation metadata.
func (r VehicleRequest) ApplyTo(v entities.Vehicle) entities.Vehicle {
	if r.Type != "" {
		v.Type = entities.VehicleType(r.Type)
	}
	v.Brand = strings.TrimSpace(r.Brand)
	v.Model = strings.TrimSpace(r.Model)
	v.LicensePlate = strings.ToUpper(strings.TrimSpace(r.LicensePlate))
	v.FirstRegistration = r.FirstRegistration
	v.TechnicalControlExpiry = r.TechnicalControlExpiry
	v.InsuranceCompany = r.InsuranceCompany
	v.InsuranceContract = r.InsuranceContract
	v.InsuranceAmount = r.InsuranceAmount
	v.InsuranceExpiry = r.InsuranceExpiry
	if r.DailyRate > 0 {
		v.DailyRate = r.DailyRate
	}
	if r.AccountingAccount != "" {
		v.AccountingAccount = strings.TrimSpace(r.AccountingAccount)
	}
	if r.IsAvailable != nil {
		v.IsAvailable = *r.IsAvailable
	}
	return v
}
