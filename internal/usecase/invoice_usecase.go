package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"log"
	"strings"
	"time"

	"autopro_rental/internal/domain/accounting"
	"autopro_rental/internal/domain/entities"
	"autopro_rental/internal/usecase/interfaces"
)

var (
	ErrInvoiceAlreadyPaid    = errors.New("invoice already paid")
	ErrInvoiceNotCancellable = errors.New("paid or cancelled invoice cannot be cancelled")
	ErrClientMissingEmail    = errors.New("client has no email address")
)

// ReminderReport summarizes an overdue reminder sweep.
type ReminderReport struct {
	Examined int `json:"examined"`
	Sent     int `json:"sent"`
}

// DashboardSummary is the back-office landing page counters.
type DashboardSummary struct {
	TotalClients    int `json:"total_clients"`
	TotalVehicles   int `json:"total_vehicles"`
	ActiveOrders    int `json:"active_orders"`
	OverdueInvoices int `json:"overdue_invoices"`
}

type IInvoiceUseCase interface {
	List(ctx context.Context) ([]entities.Invoice, error)
	GetByID(ctx context.Context, id string) (entities.Invoice, error)
	ListOverdue(ctx context.Context, now time.Time) ([]entities.Invoice, error)
	MarkOverdue(ctx context.Context, now time.Time) (int, error)
	SendOverdueReminders(ctx context.Context, now time.Time) (ReminderReport, error)
	GeneratePDF(ctx context.Context, id string) (entities.Invoice, error)
	SendByEmail(ctx context.Context, id string) (bool, error)
	MarkPaid(ctx context.Context, id string, method entities.PaymentMethod) (entities.Invoice, LedgerOutcome, error)
	Cancel(ctx context.Context, id string) (entities.Invoice, error)
	Dashboard(ctx context.Context) (DashboardSummary, error)
}

type InvoiceUseCase struct {
	invoices interfaces.IInvoiceRepository
	clients  interfaces.IClientRepository
	vehicles interfaces.IVehicleRepository
	orders   interfaces.IOrderRepository
	entries  interfaces.IAccountingEntryRepository
	settings interfaces.ISettingsRepository
	payments IPaymentUseCase
	renderer interfaces.IPDFRenderer
	notifier interfaces.INotifier
}

var _ IInvoiceUseCase = (*InvoiceUseCase)(nil)

func NewInvoiceUseCase(
	invoices interfaces.IInvoiceRepository,
	clients interfaces.IClientRepository,
	vehicles interfaces.IVehicleRepository,
	orders interfaces.IOrderRepository,
	entries interfaces.IAccountingEntryRepository,
	settings interfaces.ISettingsRepository,
	payments IPaymentUseCase,
	renderer interfaces.IPDFRenderer,
	notifier interfaces.INotifier,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		invoices: invoices,
		clients:  clients,
		vehicles: vehicles,
		orders:   orders,
		entries:  entries,
		settings: settings,
		payments: payments,
		renderer: renderer,
		notifier: notifier,
	}
}

func (u *InvoiceUseCase) List(ctx context.Context) ([]entities.Invoice, error) {
	return u.invoices.List(ctx)
}

func (u *InvoiceUseCase) GetByID(ctx context.Context, id string) (entities.Invoice, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Invoice{}, ErrInvalidInvoiceID
	}
	inv, err := u.invoices.GetByID(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.ID == "" {
		return entities.Invoice{}, ErrInvoiceNotFound
	}
	return inv, nil
}

// ListOverdue returns unpaid invoices whose due date has lapsed, without
// mutating their status.
func (u *InvoiceUseCase) ListOverdue(ctx context.Context, now time.Time) ([]entities.Invoice, error) {
	return u.invoices.ListOverdue(ctx, now)
}

// MarkOverdue flips lapsed sent/partially_paid invoices to overdue and
// returns how many were flipped. Draft invoices are left alone: a document
// never issued cannot be late.
func (u *InvoiceUseCase) MarkOverdue(ctx context.Context, now time.Time) (int, error) {
	lapsed, err := u.invoices.ListOverdue(ctx, now)
	if err != nil {
		return 0, err
	}

	marked := 0
	for _, inv := range lapsed {
		if inv.Status != entities.InvoiceStatusSent && inv.Status != entities.InvoiceStatusPartiallyPaid {
			continue
		}
		inv.Status = entities.InvoiceStatusOverdue
		if _, err := u.invoices.Update(ctx, inv); err != nil {
			log.Printf("[invoice][usecase] overdue mark failed invoice=%s err=%v", inv.InvoiceNumber, err)
			continue
		}
		marked++
	}
	return marked, nil
}

// SendOverdueReminders emails a relance for each overdue invoice whose days
// late match one of the configured reminder periods. Per-invoice failures are
// logged and skipped so one bad address does not stall the sweep.
func (u *InvoiceUseCase) SendOverdueReminders(ctx context.Context, now time.Time) (ReminderReport, error) {
	lapsed, err := u.invoices.ListOverdue(ctx, now)
	if err != nil {
		return ReminderReport{}, err
	}

	settings, err := u.settings.Get(ctx)
	if err != nil || settings.ID == "" {
		settings = entities.DefaultSettings()
	}

	report := ReminderReport{Examined: len(lapsed)}
	for _, inv := range lapsed {
		daysOverdue := int(now.Sub(inv.DueDate).Hours() / 24)
		if !reminderDue(daysOverdue, settings.ReminderPeriods) {
			continue
		}
		client, err := u.clients.GetByID(ctx, inv.ClientID)
		if err != nil || client.ID == "" || strings.TrimSpace(client.Email) == "" {
			log.Printf("[invoice][usecase] reminder skipped invoice=%s: no reachable client", inv.InvoiceNumber)
			continue
		}
		delivered, err := u.notifier.SendPaymentReminder(ctx, inv, client, settings, daysOverdue)
		if err != nil {
			log.Printf("[invoice][usecase] reminder failed invoice=%s err=%v", inv.InvoiceNumber, err)
			continue
		}
		if delivered {
			report.Sent++
		}
	}

	log.Printf("[invoice][usecase] reminder sweep done examined=%d sent=%d", report.Examined, report.Sent)
	return report, nil
}

func reminderDue(daysOverdue int, periods []int) bool {
	for _, p := range periods {
		if daysOverdue == p {
			return true
		}
	}
	return false
}

// GeneratePDF renders the invoice document, stores it base64-encoded on the
// invoice and promotes a draft to sent. Re-rendering an already issued
// invoice replaces the stored document without touching the status.
func (u *InvoiceUseCase) GeneratePDF(ctx context.Context, id string) (entities.Invoice, error) {
	inv, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}

	client, err := u.clients.GetByID(ctx, inv.ClientID)
	if err != nil {
		return entities.Invoice{}, err
	}
	if client.ID == "" {
		return entities.Invoice{}, ErrClientNotFound
	}

	settings, err := u.settings.Get(ctx)
	if err != nil || settings.ID == "" {
		settings = entities.DefaultSettings()
	}

	details := make([]entities.InvoiceItemDetail, 0, len(inv.Items))
	for _, item := range inv.Items {
		detail := entities.InvoiceItemDetail{Item: item}
		vehicle, err := u.vehicles.GetByID(ctx, item.VehicleID)
		if err == nil && vehicle.ID != "" {
			detail.VehicleBrand = vehicle.Brand
			detail.VehicleModel = vehicle.Model
			detail.LicensePlate = vehicle.LicensePlate
		}
		details = append(details, detail)
	}

	pdf, err := u.renderer.RenderInvoice(ctx, inv, client, settings, details)
	if err != nil {
		return entities.Invoice{}, err
	}

	inv.PDFData = base64.StdEncoding.EncodeToString(pdf)
	if inv.Status == entities.InvoiceStatusDraft {
		inv.Status = entities.InvoiceStatusSent
	}

	updated, err := u.invoices.Update(ctx, inv)
	if err != nil {
		return entities.Invoice{}, err
	}

	log.Printf("[invoice][usecase] pdf generated invoice=%s bytes=%d status=%s", inv.InvoiceNumber, len(pdf), updated.Status)
	return updated, nil
}

// SendByEmail delivers the invoice PDF to the client's email address,
// rendering the document first when none is stored yet. Returns the notifier
// delivery outcome.
func (u *InvoiceUseCase) SendByEmail(ctx context.Context, id string) (bool, error) {
	inv, err := u.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if inv.PDFData == "" {
		inv, err = u.GeneratePDF(ctx, id)
		if err != nil {
			return false, err
		}
	}

	client, err := u.clients.GetByID(ctx, inv.ClientID)
	if err != nil {
		return false, err
	}
	if client.ID == "" {
		return false, ErrClientNotFound
	}
	if strings.TrimSpace(client.Email) == "" {
		return false, ErrClientMissingEmail
	}

	settings, err := u.settings.Get(ctx)
	if err != nil || settings.ID == "" {
		settings = entities.DefaultSettings()
	}

	pdf, err := base64.StdEncoding.DecodeString(inv.PDFData)
	if err != nil {
		return false, err
	}

	delivered, err := u.notifier.SendInvoice(ctx, inv, client, settings, pdf)
	if err != nil {
		return false, err
	}

	log.Printf("[invoice][usecase] invoice emailed invoice=%s to=%s delivered=%t", inv.InvoiceNumber, client.Email, delivered)
	return delivered, nil
}

// MarkPaid settles the invoice in one step by routing the full remaining
// balance through the payment ledger, then records the settlement entries
// best effort.
func (u *InvoiceUseCase) MarkPaid(ctx context.Context, id string, method entities.PaymentMethod) (entities.Invoice, LedgerOutcome, error) {
	inv, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Invoice{}, LedgerOutcome{}, err
	}
	if inv.Status == entities.InvoiceStatusPaid || inv.RemainingAmount < paidTolerance {
		return entities.Invoice{}, LedgerOutcome{}, ErrInvoiceAlreadyPaid
	}

	now := time.Now().UTC()
	if _, err := u.payments.AddPayment(ctx, inv.ID, AddPaymentCommand{
		Amount:        inv.RemainingAmount,
		PaymentDate:   now,
		PaymentMethod: method,
		Notes:         "Règlement complet",
	}); err != nil {
		return entities.Invoice{}, LedgerOutcome{}, err
	}

	settled, err := u.invoices.GetByID(ctx, inv.ID)
	if err != nil {
		return entities.Invoice{}, LedgerOutcome{}, err
	}

	client, err := u.clients.GetByID(ctx, settled.ClientID)
	if err != nil || client.ID == "" {
		log.Printf("[invoice][usecase] settlement entries skipped invoice=%s: client unavailable", settled.InvoiceNumber)
		return settled, LedgerOutcome{Err: ErrClientNotFound}, nil
	}

	outcome := LedgerOutcome{Entries: accounting.GeneratePaymentEntries(settled, client, now, method)}
	if err := u.entries.CreateMany(ctx, outcome.Entries); err != nil {
		log.Printf("[invoice][usecase] settlement entries failed invoice=%s err=%v (payment kept)", settled.InvoiceNumber, err)
		outcome = LedgerOutcome{Err: err}
	}
	return settled, outcome, nil
}

// Cancel voids an invoice. Paid and already cancelled invoices are terminal.
func (u *InvoiceUseCase) Cancel(ctx context.Context, id string) (entities.Invoice, error) {
	inv, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.Status == entities.InvoiceStatusPaid || inv.Status == entities.InvoiceStatusCancelled {
		return entities.Invoice{}, ErrInvoiceNotCancellable
	}

	inv.Status = entities.InvoiceStatusCancelled
	updated, err := u.invoices.Update(ctx, inv)
	if err != nil {
		return entities.Invoice{}, err
	}

	log.Printf("[invoice][usecase] invoice cancelled invoice=%s", inv.InvoiceNumber)
	return updated, nil
}

// Dashboard aggregates the landing page counters from the four stores.
func (u *InvoiceUseCase) Dashboard(ctx context.Context) (DashboardSummary, error) {
	clients, err := u.clients.CountActive(ctx)
	if err != nil {
		return DashboardSummary{}, err
	}
	vehicles, err := u.vehicles.Count(ctx)
	if err != nil {
		return DashboardSummary{}, err
	}
	active, err := u.orders.CountByStatus(ctx, entities.OrderStatusActive)
	if err != nil {
		return DashboardSummary{}, err
	}
	overdue, err := u.invoices.CountOverdue(ctx, time.Now().UTC())
	if err != nil {
		return DashboardSummary{}, err
	}

	return DashboardSummary{
		TotalClients:    clients,
		TotalVehicles:   vehicles,
		ActiveOrders:    active,
		OverdueInvoices: overdue,
	}, nil
}
