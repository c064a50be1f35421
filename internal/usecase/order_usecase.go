package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"autopro_rental/internal/domain/accounting"
	"autopro_rental/internal/domain/entities"
	"autopro_rental/internal/domain/pricing"
	"autopro_rental/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrInvalidClientID  = errors.New("invalid client id")
	ErrInvalidOrderID   = errors.New("invalid order id")
	ErrClientNotFound   = errors.New("client not found")
	ErrVehicleNotFound  = errors.New("vehicle not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrEmptyOrder       = errors.New("order must contain at least one item")
	ErrInvalidOrderItem = errors.New("order item quantity and daily rate must be positive")
	ErrInvalidDeposit   = errors.New("deposit amount cannot be negative")
)

// LedgerOutcome reports the best-effort accounting side of an invoice or
// payment operation. A failed ledger write never fails the main operation;
// the error is carried here for the caller to surface.
type LedgerOutcome struct {
	Entries []entities.AccountingEntry
	Err     error
}

// Recorded reports whether the entries were actually persisted.
func (o LedgerOutcome) Recorded() bool {
	return o.Err == nil && len(o.Entries) > 0
}

type CreateOrderCommand struct {
	ClientID      string
	DepositAmount float64
	Items         []entities.OrderItem
	CreatedBy     string
}

// RenewalReport summarizes one renewal sweep.
type RenewalReport struct {
	Scanned int `json:"scanned"`
	Renewed int `json:"renewed"`
	Blocked int `json:"blocked"`
	Failed  int `json:"failed"`
}

type IOrderUseCase interface {
	CreateOrder(ctx context.Context, cmd CreateOrderCommand) (entities.Order, entities.Invoice, LedgerOutcome, error)
	GetByID(ctx context.Context, id string) (entities.Order, error)
	List(ctx context.Context) ([]entities.Order, error)
	RenewDueOrders(ctx context.Context, now time.Time) (RenewalReport, error)
}

type OrderUseCase struct {
	orders   interfaces.IOrderRepository
	clients  interfaces.IClientRepository
	vehicles interfaces.IVehicleRepository
	invoices interfaces.IInvoiceRepository
	entries  interfaces.IAccountingEntryRepository
	settings interfaces.ISettingsRepository
}

var _ IOrderUseCase = (*OrderUseCase)(nil)

func NewOrderUseCase(
	orders interfaces.IOrderRepository,
	clients interfaces.IClientRepository,
	vehicles interfaces.IVehicleRepository,
	invoices interfaces.IInvoiceRepository,
	entries interfaces.IAccountingEntryRepository,
	settings interfaces.ISettingsRepository,
) *OrderUseCase {
	return &OrderUseCase{
		orders:   orders,
		clients:  clients,
		vehicles: vehicles,
		invoices: invoices,
		entries:  entries,
		settings: settings,
	}
}

// CreateOrder validates the items, prices the order at the client's VAT rate,
// persists it and synthesizes its draft invoice in the same call. Sale
// accounting entries are generated best effort: a ledger failure is reported
// through the LedgerOutcome, never by failing the order.
func (u *OrderUseCase) CreateOrder(ctx context.Context, cmd CreateOrderCommand) (entities.Order, entities.Invoice, LedgerOutcome, error) {
	cmd.ClientID = strings.TrimSpace(cmd.ClientID)
	if cmd.ClientID == "" {
		return entities.Order{}, entities.Invoice{}, LedgerOutcome{}, ErrInvalidClientID
	}
	if len(cmd.Items) == 0 {
		return entities.Order{}, entities.Invoice{}, LedgerOutcome{}, ErrEmptyOrder
	}
	if cmd.DepositAmount < 0 {
		return entities.Order{}, entities.Invoice{}, LedgerOutcome{}, ErrInvalidDeposit
	}

	client, err := u.clients.GetByID(ctx, cmd.ClientID)
	if err != nil {
		return entities.Order{}, entities.Invoice{}, LedgerOutcome{}, err
	}
	if client.ID == "" {
		return entities.Order{}, entities.Invoice{}, LedgerOutcome{}, ErrClientNotFound
	}

	items := make([]entities.OrderItem, len(cmd.Items))
	copy(items, cmd.Items)
	for i, item := range items {
		if item.Quantity < 1 || item.DailyRate < 0 {
			return entities.Order{}, entities.Invoice{}, LedgerOutcome{}, ErrInvalidOrderItem
		}
		vehicle, err := u.vehicles.GetByID(ctx, item.VehicleID)
		if err != nil {
			return entities.Order{}, entities.Invoice{}, LedgerOutcome{}, err
		}
		if vehicle.ID == "" {
			return entities.Order{}, entities.Invoice{}, LedgerOutcome{}, ErrVehicleNotFound
		}
		// Missing rate means "use the vehicle's current rate"; the snapshot
		// then shields the order from later rate changes.
		if item.DailyRate == 0 {
			items[i].DailyRate = vehicle.DailyRate
		}
	}

	pricedItems, totals := pricing.ComputeOrderTotals(items, client.VATRate, cmd.DepositAmount)

	count, err := u.orders.Count(ctx)
	if err != nil {
		return entities.Order{}, entities.Invoice{}, LedgerOutcome{}, err
	}

	order := entities.Order{
		ID:          uuid.NewString(),
		ClientID:    client.ID,
		OrderNumber: fmt.Sprintf("CMD%06d", count+1),
		Items:       pricedItems,
		OrderTotals: totals,
		Status:      entities.OrderStatusActive,
		CreatedAt:   time.Now().UTC(),
		CreatedBy:   cmd.CreatedBy,
	}
	if _, err := u.orders.Create(ctx, order); err != nil {
		return entities.Order{}, entities.Invoice{}, LedgerOutcome{}, err
	}

	invoice, outcome, err := u.createInvoiceForOrder(ctx, order, client)
	if err != nil {
		return entities.Order{}, entities.Invoice{}, LedgerOutcome{}, err
	}

	log.Printf("[order][usecase] order created order_id=%s number=%s invoice=%s grand_total=%.2f", order.ID, order.OrderNumber, invoice.InvoiceNumber, order.GrandTotal)
	return order, invoice, outcome, nil
}

func (u *OrderUseCase) GetByID(ctx context.Context, id string) (entities.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Order{}, ErrInvalidOrderID
	}
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}
	if order.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	return order, nil
}

func (u *OrderUseCase) List(ctx context.Context) ([]entities.Order, error) {
	return u.orders.List(ctx)
}

// RenewDueOrders sweeps active orders for renewable items whose window has
// lapsed. A renewal only fires once every invoice of the source order is
// fully paid; an unpaid or partially paid invoice blocks it. Each candidate
// is processed independently so one failure never stops the sweep.
func (u *OrderUseCase) RenewDueOrders(ctx context.Context, now time.Time) (RenewalReport, error) {
	orders, err := u.orders.List(ctx)
	if err != nil {
		return RenewalReport{}, err
	}

	var report RenewalReport
	for _, order := range orders {
		if order.Status != entities.OrderStatusActive {
			continue
		}
		for idx, item := range order.Items {
			if !item.IsRenewable || item.RentalDuration <= 0 {
				continue
			}
			if item.EndDate.After(now) {
				continue
			}
			report.Scanned++

			settled, err := u.orderFullySettled(ctx, order.ID)
			if err != nil {
				log.Printf("[order][usecase] renewal check failed order_id=%s err=%v", order.ID, err)
				report.Failed++
				continue
			}
			if !settled {
				log.Printf("[order][usecase] renewal blocked order_id=%s number=%s: unpaid invoice", order.ID, order.OrderNumber)
				report.Blocked++
				continue
			}

			if err := u.renewOrderItem(ctx, order, idx); err != nil {
				log.Printf("[order][usecase] renewal failed order_id=%s err=%v", order.ID, err)
				report.Failed++
				continue
			}
			report.Renewed++
		}
	}

	log.Printf("[order][usecase] renewal sweep done scanned=%d renewed=%d blocked=%d failed=%d", report.Scanned, report.Renewed, report.Blocked, report.Failed)
	return report, nil
}

// orderFullySettled reports whether every invoice referencing the order is
// paid. An order with no invoice at all is not considered settled.
func (u *OrderUseCase) orderFullySettled(ctx context.Context, orderID string) (bool, error) {
	invoices, err := u.invoices.ListByOrderID(ctx, orderID)
	if err != nil {
		return false, err
	}
	if len(invoices) == 0 {
		return false, nil
	}
	for _, inv := range invoices {
		if inv.Status != entities.InvoiceStatusPaid && inv.Status != entities.InvoiceStatusCancelled {
			return false, nil
		}
	}
	return true, nil
}

// renewOrderItem spawns a follow-on order carrying the single renewed item
// over the next rental window (no deposit; the deposit belongs to the first
// order), invoices it, and advances the source item's end date.
func (u *OrderUseCase) renewOrderItem(ctx context.Context, order entities.Order, idx int) error {
	client, err := u.clients.GetByID(ctx, order.ClientID)
	if err != nil {
		return err
	}
	if client.ID == "" {
		return ErrClientNotFound
	}

	item := order.Items[idx]
	start, end := pricing.NextRenewalWindow(item.RentalPeriod, item.RentalDuration, item.EndDate)

	renewedItem := item
	renewedItem.StartDate = start
	renewedItem.EndDate = end

	pricedItems, totals := pricing.ComputeOrderTotals([]entities.OrderItem{renewedItem}, client.VATRate, 0)

	count, err := u.orders.Count(ctx)
	if err != nil {
		return err
	}

	renewal := entities.Order{
		ID:          uuid.NewString(),
		ClientID:    order.ClientID,
		OrderNumber: fmt.Sprintf("CMD%06d", count+1),
		Items:       pricedItems,
		OrderTotals: totals,
		Status:      entities.OrderStatusActive,
		CreatedAt:   time.Now().UTC(),
		CreatedBy:   "renewal",
	}
	if _, err := u.orders.Create(ctx, renewal); err != nil {
		return err
	}
	if _, _, err := u.createInvoiceForOrder(ctx, renewal, client); err != nil {
		return err
	}

	// Advance the source item so the same window never renews twice. Totals
	// stay untouched; they are the history of what was originally billed.
	items := make([]entities.OrderItem, len(order.Items))
	copy(items, order.Items)
	items[idx].EndDate = end
	order.Items = items
	if _, err := u.orders.Update(ctx, order); err != nil {
		return err
	}

	log.Printf("[order][usecase] order renewed source=%s renewal=%s window=%s..%s", order.OrderNumber, renewal.OrderNumber, start.Format("2006-01-02"), end.Format("2006-01-02"))
	return nil
}

// createInvoiceForOrder synthesizes the draft invoice snapshotting the
// order's items and totals, then records the sale entries best effort.
func (u *OrderUseCase) createInvoiceForOrder(ctx context.Context, order entities.Order, client entities.Client) (entities.Invoice, LedgerOutcome, error) {
	settings, err := u.settings.Get(ctx)
	if err != nil || settings.ID == "" {
		settings = entities.DefaultSettings()
	}

	count, err := u.invoices.Count(ctx)
	if err != nil {
		return entities.Invoice{}, LedgerOutcome{}, err
	}

	now := time.Now().UTC()
	invoice := entities.Invoice{
		ID:              uuid.NewString(),
		InvoiceNumber:   fmt.Sprintf("FACT%06d", count+1),
		OrderID:         order.ID,
		ClientID:        order.ClientID,
		InvoiceDate:     now,
		DueDate:         now.AddDate(0, 0, settings.InvoiceDueDelayDays()),
		Items:           order.Items,
		OrderTotals:     order.OrderTotals,
		Status:          entities.InvoiceStatusDraft,
		AmountPaid:      0,
		RemainingAmount: order.GrandTotal,
		Version:         1,
		CreatedAt:       now,
	}
	if _, err := u.invoices.Create(ctx, invoice); err != nil {
		return entities.Invoice{}, LedgerOutcome{}, err
	}

	outcome := LedgerOutcome{Entries: accounting.GenerateInvoiceEntries(invoice, client, settings)}
	if err := u.entries.CreateMany(ctx, outcome.Entries); err != nil {
		log.Printf("[order][usecase] accounting entries failed invoice=%s err=%v (invoice kept)", invoice.InvoiceNumber, err)
		outcome = LedgerOutcome{Err: err}
	}
	return invoice, outcome, nil
}
