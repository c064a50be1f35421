package entities

import "time"

// RentalPeriod is the unit of a renewable rental window.
type RentalPeriod string

const (
	RentalPeriodDays   RentalPeriod = "days"
	RentalPeriodWeeks  RentalPeriod = "weeks"
	RentalPeriodMonths RentalPeriod = "months"
	RentalPeriodYears  RentalPeriod = "years"
)

// OrderItem is one rented vehicle line inside an order.
//
// DailyRate is a snapshot of the vehicle rate at order creation. TotalDays and
// ItemTotalHT are derived fields: they are recomputed from the other fields on
// every order create/update and never set independently.
type OrderItem struct {
	VehicleID      string       `json:"vehicle_id"`
	Quantity       int          `json:"quantity"`
	DailyRate      float64      `json:"daily_rate"`
	StartDate      time.Time    `json:"start_date"`
	EndDate        time.Time    `json:"end_date"`
	TotalDays      int          `json:"total_days"`
	ItemTotalHT    float64      `json:"item_total_ht"`
	IsRenewable    bool         `json:"is_renewable"`
	RentalPeriod   RentalPeriod `json:"rental_period,omitempty"`
	RentalDuration int          `json:"rental_duration,omitempty"`
}

// OrderTotals groups the monetary aggregates derived from items, the client
// VAT rate and the deposit. They are recomputed wholesale, never patched.
type OrderTotals struct {
	TotalHT       float64 `json:"total_ht"`
	TotalVAT      float64 `json:"total_vat"`
	TotalTTC      float64 `json:"total_ttc"`
	DepositAmount float64 `json:"deposit_amount"`
	DepositVAT    float64 `json:"deposit_vat"`
	GrandTotal    float64 `json:"grand_total"`
}

type OrderStatus string

const (
	OrderStatusActive    OrderStatus = "active"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is a rental order persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id
//
// Every order is referenced by exactly one initial invoice; renewable items
// spawn follow-on orders (one item each, no deposit) once the latest invoice
// for the order is fully paid.
type Order struct {
	ID          string      `json:"id"`
	ClientID    string      `json:"client_id"`
	OrderNumber string      `json:"order_number"`
	Items       []OrderItem `json:"items"`
	OrderTotals
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	CreatedBy string      `json:"created_by,omitempty"`
}
