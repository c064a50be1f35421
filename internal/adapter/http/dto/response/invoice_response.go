package response

import (
	"time"

	"autopro_rental/internal/domain/entities"
)

type InvoiceResponse struct {
	ID              string              `json:"id"`
	InvoiceNumber   string              `json:"invoice_number"`
	OrderID         string              `json:"order_id"`
	ClientID        string              `json:"client_id"`
	InvoiceDate     time.Time           `json:"invoice_date"`
	DueDate         time.Time           `json:"due_date"`
	Items           []OrderItemResponse `json:"items"`
	TotalHT         float64             `json:"total_ht"`
	TotalVAT        float64             `json:"total_vat"`
	TotalTTC        float64             `json:"total_ttc"`
	DepositAmount   float64             `json:"deposit_amount"`
	DepositVAT      float64             `json:"deposit_vat"`
	GrandTotal      float64             `json:"grand_total"`
	Status          string              `json:"status"`
	AmountPaid      float64             `json:"amount_paid"`
	RemainingAmount float64             `json:"remaining_amount"`
	PaymentDate     *time.Time          `json:"payment_date,omitempty"`
	HasPDF          bool                `json:"has_pdf"`
	CreatedAt       time.Time           `json:"created_at"`
}

func FromInvoice(inv entities.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:              inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		OrderID:         inv.OrderID,
		ClientID:        inv.ClientID,
		InvoiceDate:     inv.InvoiceDate,
		DueDate:         inv.DueDate,
		Items:           fromOrderItems(inv.Items),
		TotalHT:         inv.TotalHT,
		TotalVAT:        inv.TotalVAT,
		TotalTTC:        inv.TotalTTC,
		DepositAmount:   inv.DepositAmount,
		DepositVAT:      inv.DepositVAT,
		GrandTotal:      inv.GrandTotal,
		Status:          string(inv.Status),
		AmountPaid:      inv.AmountPaid,
		RemainingAmount: inv.RemainingAmount,
		PaymentDate:     inv.PaymentDate,
		HasPDF:          inv.PDFData != "",
		CreatedAt:       inv.CreatedAt,
	}
}

func FromInvoices(invoices []entities.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, FromInvoice(inv))
	}
	return out
}

// InvoiceSettlementResponse is returned by routes that settle an invoice in
// one step and report whether ledger entries were recorded alongside.
type InvoiceSettlementResponse struct {
	Invoice            InvoiceResponse `json:"invoice"`
	AccountingRecorded bool            `json:"accounting_recorded"`
}
