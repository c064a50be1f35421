package entities

import "time"

// InvoiceStatus is the invoice state machine.
//
// draft -> sent -> {paid | partially_paid | overdue} -> cancelled.
// Terminal states: paid, cancelled. Payment ledger mutations drive the
// paid/partially_paid transitions; the overdue sweep drives overdue.
type InvoiceStatus string

const (
	InvoiceStatusDraft         InvoiceStatus = "draft"
	InvoiceStatusSent          InvoiceStatus = "sent"
	InvoiceStatusPaid          InvoiceStatus = "paid"
	InvoiceStatusPartiallyPaid InvoiceStatus = "partially_paid"
	InvoiceStatusOverdue       InvoiceStatus = "overdue"
	InvoiceStatusCancelled     InvoiceStatus = "cancelled"
)

// Invoice is the billing document synthesized from an order.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (order_id-index): order_id
//
// Items and totals are snapshots of the order at invoice-creation time.
// AmountPaid and RemainingAmount only change through the payment ledger and
// always satisfy AmountPaid + RemainingAmount == GrandTotal (±0.01).
// Version backs the optimistic conditional write used to serialize concurrent
// payment mutations.
type Invoice struct {
	ID            string      `json:"id"`
	InvoiceNumber string      `json:"invoice_number"`
	OrderID       string      `json:"order_id"`
	ClientID      string      `json:"client_id"`
	InvoiceDate   time.Time   `json:"invoice_date"`
	DueDate       time.Time   `json:"due_date"`
	Items         []OrderItem `json:"items"`
	OrderTotals
	Status          InvoiceStatus `json:"status"`
	AmountPaid      float64       `json:"amount_paid"`
	RemainingAmount float64       `json:"remaining_amount"`
	PaymentDate     *time.Time    `json:"payment_date,omitempty"`
	PDFData         string        `json:"pdf_data,omitempty"`
	Version         int64         `json:"version"`
	CreatedAt       time.Time     `json:"created_at"`
}

// InvoiceItemDetail pairs an invoice item with the vehicle identity needed by
// the PDF renderer and email templates.
type InvoiceItemDetail struct {
	Item         OrderItem
	VehicleBrand string
	VehicleModel string
	LicensePlate string
}
