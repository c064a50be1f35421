package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"autopro_rental/internal/domain/entities"
	"autopro_rental/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrInvalidInvoiceID     = errors.New("invalid invoice id")
	ErrInvalidPaymentID     = errors.New("invalid payment id")
	ErrInvoiceNotFound      = errors.New("invoice not found")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrInvalidPaymentAmount = errors.New("payment amount must be positive")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// OverpaymentError rejects a payment that would push the invoice past its
// grand total. It carries the remaining balance so callers can report how
// much is actually acceptable.
type OverpaymentError struct {
	Remaining float64
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("payment exceeds remaining balance of %.2f", e.Remaining)
}

// paidTolerance absorbs float residue when deciding whether an invoice is
// fully settled.
const paidTolerance = 0.01

type AddPaymentCommand struct {
	Amount        float64
	PaymentDate   time.Time
	PaymentMethod entities.PaymentMethod
	Reference     string
	Notes         string
}

// IPaymentUseCase is the itemized payment ledger: the only path allowed to
// mutate an invoice's AmountPaid/RemainingAmount aggregates.

type IPaymentUseCase interface {
	AddPayment(ctx context.Context, invoiceID string, cmd AddPaymentCommand) (entities.Payment, error)
	DeletePayment(ctx context.Context, paymentID string) (entities.Invoice, error)
	ListPayments(ctx context.Context, invoiceID string) ([]entities.Payment, error)
}

type PaymentUseCase struct {
	payments interfaces.IPaymentRepository
	invoices interfaces.IInvoiceRepository
	locks    *invoiceLocks
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(payments interfaces.IPaymentRepository, invoices interfaces.IInvoiceRepository) *PaymentUseCase {
	return &PaymentUseCase{payments: payments, invoices: invoices, locks: newInvoiceLocks()}
}

// AddPayment records a settlement against an invoice. Overpayment is rejected
// strictly, with no tolerance: cumulative payments may never exceed the grand
// total. On success the invoice aggregates and status are recomputed and the
// payment date stamped.
func (u *PaymentUseCase) AddPayment(ctx context.Context, invoiceID string, cmd AddPaymentCommand) (entities.Payment, error) {
	invoiceID = strings.TrimSpace(invoiceID)
	if invoiceID == "" {
		return entities.Payment{}, ErrInvalidInvoiceID
	}
	if cmd.Amount <= 0 {
		return entities.Payment{}, ErrInvalidPaymentAmount
	}
	if !entities.ValidPaymentMethod(cmd.PaymentMethod) {
		return entities.Payment{}, ErrInvalidPaymentMethod
	}

	lock := u.locks.get(invoiceID)
	lock.Lock()
	defer lock.Unlock()

	inv, err := u.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return entities.Payment{}, err
	}
	if inv.ID == "" {
		return entities.Payment{}, ErrInvoiceNotFound
	}

	if inv.AmountPaid+cmd.Amount > inv.GrandTotal {
		log.Printf("[payment][usecase] overpayment rejected invoice_id=%s amount=%.2f remaining=%.2f", invoiceID, cmd.Amount, inv.RemainingAmount)
		return entities.Payment{}, &OverpaymentError{Remaining: inv.RemainingAmount}
	}

	paymentDate := cmd.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = time.Now().UTC()
	}

	p := entities.Payment{
		ID:            uuid.NewString(),
		InvoiceID:     inv.ID,
		Amount:        cmd.Amount,
		PaymentDate:   paymentDate,
		PaymentMethod: cmd.PaymentMethod,
		Reference:     cmd.Reference,
		Notes:         cmd.Notes,
		CreatedAt:     time.Now().UTC(),
	}
	if _, err := u.payments.Create(ctx, p); err != nil {
		return entities.Payment{}, err
	}

	applyPaymentAggregates(&inv, inv.AmountPaid+cmd.Amount)
	inv.PaymentDate = &paymentDate

	if _, err := u.invoices.Update(ctx, inv); err != nil {
		// Roll the orphaned payment row back so the ledger stays consistent
		// with the invoice aggregates.
		if delErr := u.payments.Delete(ctx, p.ID); delErr != nil {
			log.Printf("[payment][usecase] rollback failed invoice_id=%s payment_id=%s err=%v", invoiceID, p.ID, delErr)
		}
		return entities.Payment{}, err
	}

	log.Printf("[payment][usecase] payment added invoice_id=%s payment_id=%s amount=%.2f status=%s", invoiceID, p.ID, p.Amount, inv.Status)
	return p, nil
}

// DeletePayment removes a settlement and reverses its effect on the owning
// invoice. Previously generated accounting entries are left untouched; entry
// reversal is out of the ledger's scope.
func (u *PaymentUseCase) DeletePayment(ctx context.Context, paymentID string) (entities.Invoice, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return entities.Invoice{}, ErrInvalidPaymentID
	}

	p, err := u.payments.GetByID(ctx, paymentID)
	if err != nil {
		return entities.Invoice{}, err
	}
	if p.ID == "" {
		return entities.Invoice{}, ErrPaymentNotFound
	}

	lock := u.locks.get(p.InvoiceID)
	lock.Lock()
	defer lock.Unlock()

	inv, err := u.invoices.GetByID(ctx, p.InvoiceID)
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.ID == "" {
		return entities.Invoice{}, ErrInvoiceNotFound
	}

	if err := u.payments.Delete(ctx, p.ID); err != nil {
		return entities.Invoice{}, err
	}

	// Floored at zero defensively; a consistent ledger never goes negative.
	newPaid := inv.AmountPaid - p.Amount
	if newPaid < 0 {
		newPaid = 0
	}
	applyPaymentAggregates(&inv, newPaid)

	updated, err := u.invoices.Update(ctx, inv)
	if err != nil {
		return entities.Invoice{}, err
	}

	log.Printf("[payment][usecase] payment deleted invoice_id=%s payment_id=%s amount=%.2f status=%s", inv.ID, p.ID, p.Amount, updated.Status)
	return updated, nil
}

// ListPayments returns the invoice's payments in chronological order.
func (u *PaymentUseCase) ListPayments(ctx context.Context, invoiceID string) ([]entities.Payment, error) {
	invoiceID = strings.TrimSpace(invoiceID)
	if invoiceID == "" {
		return nil, ErrInvalidInvoiceID
	}

	payments, err := u.payments.ListByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	sort.Slice(payments, func(i, j int) bool {
		return payments[i].PaymentDate.Before(payments[j].PaymentDate)
	})
	return payments, nil
}

// applyPaymentAggregates recomputes RemainingAmount and the status machine
// from a new cumulative paid amount. Fully settled flips to paid; any
// positive partial amount flips to partially_paid; dropping back to zero
// reverts to sent when the invoice was already issued (PDF attached), draft
// otherwise, and clears the payment date.
func applyPaymentAggregates(inv *entities.Invoice, amountPaid float64) {
	inv.AmountPaid = amountPaid
	inv.RemainingAmount = inv.GrandTotal - amountPaid

	switch {
	case inv.RemainingAmount < paidTolerance:
		inv.Status = entities.InvoiceStatusPaid
	case amountPaid > 0:
		inv.Status = entities.InvoiceStatusPartiallyPaid
	default:
		if inv.PDFData != "" {
			inv.Status = entities.InvoiceStatusSent
		} else {
			inv.Status = entities.InvoiceStatusDraft
		}
		inv.PaymentDate = nil
	}
}
