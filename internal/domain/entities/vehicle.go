package entities

import "time"

type VehicleType string

const (
	VehicleTypeCar        VehicleType = "car"
	VehicleTypeVan        VehicleType = "van"
	VehicleTypeTruck      VehicleType = "truck"
	VehicleTypeMotorcycle VehicleType = "motorcycle"
	VehicleTypeOther      VehicleType = "other"
)

// Vehicle is a rentable vehicle persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id
//
// DailyRate is the current list price. Orders snapshot it into their items at
// creation time, so later rate changes never reprice a running rental.
// AccountingAccount is the PCG sales account credited when the vehicle is
// invoiced (706000 unless overridden per vehicle).
type Vehicle struct {
	ID                     string      `json:"id"`
	Type                   VehicleType `json:"type"`
	Brand                  string      `json:"brand"`
	Model                  string      `json:"model"`
	LicensePlate           string      `json:"license_plate"`
	FirstRegistration      time.Time   `json:"first_registration"`
	TechnicalControlExpiry time.Time   `json:"technical_control_expiry"`
	InsuranceCompany       string      `json:"insurance_company"`
	InsuranceContract      string      `json:"insurance_contract"`
	InsuranceAmount        float64     `json:"insurance_amount"`
	InsuranceExpiry        time.Time   `json:"insurance_expiry"`
	DailyRate              float64     `json:"daily_rate"`
	AccountingAccount      string      `json:"accounting_account"`
	IsAvailable            bool        `json:"is_available"`
	CreatedAt              time.Time   `json:"created_at"`
}
