package response

import (
	"time"

	"autopro_rental/internal/domain/entities"
)

type VehicleResponse struct {
	ID                     string    `json:"id"`
	Type                   string    `json:"type"`
	Brand                  string    `json:"brand"`
	Model                  string    `json:"model"`
	LicensePlate           string    `json:"license_plate"`
	FirstRegistration      time.Time `json:"first_registration"`
	TechnicalControlExpiry time.Time `json:"technical_control_expiry"`
	InsuranceCompany       string    `json:"insurance_company,omitempty"`
	InsuranceContract      string    `json:"insurance_contract,omitempty"`
	InsuranceAmount        float64   `json:"insurance_amount,omitempty"`
	InsuranceExpiry        time.Time `json:"insurance_expiry"`
	DailyRate              float64   `json:"daily_rate"`
	AccountingAccount      string    `json:"accounting_account"`
	IsAvailable            bool      `json:"is_available"`
	CreatedAt              time.Time `json:"created_at"`
}

func FromVehicle(v entities.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:                     v.ID,
		Type:                   string(v.Type),
		Brand:                  v.Brand,
		Model:                  v.Model,
		LicensePlate:           v.LicensePlate,
		FirstRegistration:      v.FirstRegistration,
		TechnicalControlExpiry: v.TechnicalControlExpiry,
		InsuranceCompany:       v.InsuranceCompany,
		InsuranceContract:      v.InsuranceContract,
		InsuranceAmount:        v.InsuranceAmount,
		InsuranceExpiry:        v.InsuranceExpiry,
		DailyRate:              v.DailyRate,
		AccountingAccount:      v.AccountingAccount,
		IsAvailable:            v.IsAvailable,
		CreatedAt:              v.CreatedAt,
	}
}

func FromVehicles(vehicles []entities.Vehicle) []VehicleResponse {
	out := make([]VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, FromVehicle(v))
	}
	return out
}
