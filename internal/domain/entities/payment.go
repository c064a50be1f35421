package entities

import "time"

type PaymentMethod string

const (
	PaymentMethodBank  PaymentMethod = "bank"
	PaymentMethodCash  PaymentMethod = "cash"
	PaymentMethodCheck PaymentMethod = "check"
	PaymentMethodCard  PaymentMethod = "card"
)

// ValidPaymentMethod reports whether m is one of the accepted methods.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodBank, PaymentMethodCash, PaymentMethodCheck, PaymentMethodCard:
		return true
	}
	return false
}

// Payment is one settlement row against an invoice.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (invoice_id-index): invoice_id
//
// Payments are immutable once created; the only allowed mutation is deletion,
// which reverses the payment's effect on the owning invoice aggregates.
type Payment struct {
	ID            string        `json:"id"`
	InvoiceID     string        `json:"invoice_id"`
	Amount        float64       `json:"amount"`
	PaymentDate   time.Time     `json:"payment_date"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Reference     string        `json:"reference,omitempty"`
	Notes         string        `json:"notes,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}
