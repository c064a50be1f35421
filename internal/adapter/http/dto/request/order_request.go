package request

import (
	"time"

	"autopro_rental/internal/domain/entities"
	"autopro_rental/internal/usecase"
)

type OrderItemRequest struct {
	VehicleID      string    `json:"vehicle_id" binding:"required"`
	Quantity       int       `json:"quantity"`
	DailyRate      float64   `json:"daily_rate"`
	StartDate      time.Time `json:"start_date" binding:"required"`
	EndDate        time.Time `json:"end_date" binding:"required"`
	IsRenewable    bool      `json:"is_renewable"`
	RentalPeriod   string    `json:"rental_period"`
	RentalDuration int       `json:"rental_duration"`
}

// OrderCreateRequest is the payload for the order creation route. A zero
// daily_rate on an item means "use the vehicle's current list rate".
type OrderCreateRequest struct {
	ClientID      string             `json:"client_id" binding:"required"`
	DepositAmount float64            `json:"deposit_amount"`
	Items         []OrderItemRequest `json:"items" binding:"required"`
}

func (r OrderCreateRequest) ToCommand(createdBy string) usecase.CreateOrderCommand {
	items := make([]entities.OrderItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, entities.OrderItem{
			VehicleID:      it.VehicleID,
			Quantity:       it.Quantity,
			DailyRate:      it.DailyRate,
			StartDate:      it.StartDate,
			EndDate:        it.EndDate,
			IsRenewable:    it.IsRenewable,
			RentalPeriod:   entities.RentalPeriod(it.RentalPeriod),
			RentalDuration: it.RentalDuration,
		})
	}
	return usecase.CreateOrderCommand{
		ClientID:      r.ClientID,
		DepositAmount: r.DepositAmount,
		Items:         items,
		CreatedBy:     createdBy,
	}
}
