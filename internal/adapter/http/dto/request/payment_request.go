package request

import (
	"strings"
	"time"

	"autopro_rental/internal/domain/entities"
	"autopro_rental/internal/usecase"
)

// PaymentCreateRequest is the payload for registering a settlement against an
// invoice. An omitted payment_date means "today".
type PaymentCreateRequest struct {
	Amount        float64   `json:"amount" binding:"required"`
	PaymentDate   time.Time `json:"payment_date"`
	PaymentMethod string    `json:"payment_method" binding:"required"`
	Reference     string    `json:"reference"`
	Notes         string    `json:"notes"`
}

func (r PaymentCreateRequest) ToCommand() usecase.AddPaymentCommand {
	date := r.PaymentDate
	if date.IsZero() {
		date = time.Now().UTC()
	}
	return usecase.AddPaymentCommand{
		Amount:        r.Amount,
		PaymentDate:   date,
		PaymentMethod: entities.PaymentMethod(strings.TrimSpace(r.PaymentMethod)),
		Reference:     strings.TrimSpace(r.Reference),
		Notes:         r.Notes,
	}
}

// MarkPaidRequest selects the treasury method used when settling the full
// remaining balance in one step. The method defaults to a bank transfer.
type MarkPaidRequest struct {
	PaymentMethod string `json:"payment_method"`
}

func (r MarkPaidRequest) ResolveMethod() entities.PaymentMethod {
	if m := strings.TrimSpace(r.PaymentMethod); m != "" {
		return entities.PaymentMethod(m)
	}
	return entities.PaymentMethodBank
}
