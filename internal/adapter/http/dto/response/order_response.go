package response

import (
	"time"

	"autopro_rental/internal/domain/entities"
	"autopro_rental/internal/usecase"
)

type OrderItemResponse struct {
	VehicleID      string    `json:"vehicle_id"`
	Quantity       int       `json:"quantity"`
	DailyRate      float64   `json:"daily_rate"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	TotalDays      int       `json:"total_days"`
	ItemTotalHT    float64   `json:"item_total_ht"`
	IsRenewable    bool      `json:"is_renewable"`
	RentalPeriod   string    `json:"rental_period,omitempty"`
	RentalDuration int       `json:"rental_duration,omitempty"`
}

type OrderResponse struct {
	ID            string              `json:"id"`
	OrderNumber   string              `json:"order_number"`
	ClientID      string              `json:"client_id"`
	Items         []OrderItemResponse `json:"items"`
	TotalHT       float64             `json:"total_ht"`
	TotalVAT      float64             `json:"total_vat"`
	TotalTTC      float64             `json:"total_ttc"`
	DepositAmount float64             `json:"deposit_amount"`
	DepositVAT    float64             `json:"deposit_vat"`
	GrandTotal    float64             `json:"grand_total"`
	Status        string              `json:"status"`
	CreatedAt     time.Time           `json:"created_at"`
	CreatedBy     string              `json:"created_by,omitempty"`
}

// OrderCreateResponse bundles the order with its generated invoice and the
// outcome of the best-effort ledger write.
type OrderCreateResponse struct {
	Order              OrderResponse   `json:"order"`
	Invoice            InvoiceResponse `json:"invoice"`
	AccountingRecorded bool            `json:"accounting_recorded"`
}

func fromOrderItems(items []entities.OrderItem) []OrderItemResponse {
	out := make([]OrderItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, OrderItemResponse{
			VehicleID:      it.VehicleID,
			Quantity:       it.Quantity,
			DailyRate:      it.DailyRate,
			StartDate:      it.StartDate,
			EndDate:        it.EndDate,
			TotalDays:      it.TotalDays,
			ItemTotalHT:    it.ItemTotalHT,
			IsRenewable:    it.IsRenewable,
			RentalPeriod:   string(it.RentalPeriod),
			RentalDuration: it.RentalDuration,
		})
	}
	return out
}

func FromOrder(o entities.Order) OrderResponse {
	return OrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		ClientID:      o.ClientID,
		Items:         fromOrderItems(o.Items),
		TotalHT:       o.TotalHT,
		TotalVAT:      o.TotalVAT,
		TotalTTC:      o.TotalTTC,
		DepositAmount: o.DepositAmount,
		DepositVAT:    o.DepositVAT,
		GrandTotal:    o.GrandTotal,
		Status:        string(o.Status),
		CreatedAt:     o.CreatedAt,
		CreatedBy:     o.CreatedBy,
	}
}

func FromOrders(orders []entities.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromOrder(o))
	}
	return out
}

func FromOrderCreation(o entities.Order, inv entities.Invoice, ledger usecase.LedgerOutcome) OrderCreateResponse {
	return OrderCreateResponse{
		Order:              FromOrder(o),
		Invoice:            FromInvoice(inv),
		AccountingRecorded: ledger.Recorded(),
	}
}
