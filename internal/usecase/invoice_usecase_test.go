package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"autopro_rental/internal/domain/accounting"
	"autopro_rental/internal/domain/entities"
	mock_interfaces "autopro_rental/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type invoiceUseCaseMocks struct {
	invoices *mock_interfaces.MockIInvoiceRepository
	clients  *mock_interfaces.MockIClientRepository
	vehicles *mock_interfaces.MockIVehicleRepository
	orders   *mock_interfaces.MockIOrderRepository
	entries  *mock_interfaces.MockIAccountingEntryRepository
	settings *mock_interfaces.MockISettingsRepository
	payments *mock_interfaces.MockIPaymentRepository
	renderer *mock_interfaces.MockIPDFRenderer
	notifier *mock_interfaces.MockINotifier
}

func newInvoiceUseCaseWithMocks(ctrl *gomock.Controller) (*InvoiceUseCase, invoiceUseCaseMocks) {
	m := invoiceUseCaseMocks{
		invoices: mock_interfaces.NewMockIInvoiceRepository(ctrl),
		clients:  mock_interfaces.NewMockIClientRepository(ctrl),
		vehicles: mock_interfaces.NewMockIVehicleRepository(ctrl),
		orders:   mock_interfaces.NewMockIOrderRepository(ctrl),
		entries:  mock_interfaces.NewMockIAccountingEntryRepository(ctrl),
		settings: mock_interfaces.NewMockISettingsRepository(ctrl),
		payments: mock_interfaces.NewMockIPaymentRepository(ctrl),
		renderer: mock_interfaces.NewMockIPDFRenderer(ctrl),
		notifier: mock_interfaces.NewMockINotifier(ctrl),
	}
	paymentUC := NewPaymentUseCase(m.payments, m.invoices)
	uc := NewInvoiceUseCase(m.invoices, m.clients, m.vehicles, m.orders, m.entries, m.settings, paymentUC, m.renderer, m.notifier)
	return uc, m
}

func TestInvoiceUseCase_GeneratePDF(t *testing.T) {
	t.Run("draft promoted to sent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newInvoiceUseCaseWithMocks(ctrl)

		inv := testInvoice(0)
		inv.Status = entities.InvoiceStatusDraft
		inv.PDFData = ""
		inv.Items = []entities.OrderItem{{VehicleID: "veh-1", Quantity: 1, DailyRate: 50, TotalDays: 5, ItemTotalHT: 250}}

		m.invoices.EXPECT().GetByID(gomock.Any(), "inv-1").Return(inv, nil)
		m.clients.EXPECT().GetByID(gomock.Any(), "cli-1").Return(entities.Client{ID: "cli-1", CompanyName: "Transports Morel"}, nil)
		m.settings.EXPECT().Get(gomock.Any()).Return(entities.DefaultSettings(), nil)
		m.vehicles.EXPECT().GetByID(gomock.Any(), "veh-1").Return(entities.Vehicle{ID: "veh-1", Brand: "Renault", Model: "Trafic", LicensePlate: "AB-123-CD"}, nil)
		m.renderer.EXPECT().RenderInvoice(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ entities.Invoice, _ entities.Client, _ entities.Settings, details []entities.InvoiceItemDetail) ([]byte, error) {
				if len(details) != 1 || details[0].VehicleBrand != "Renault" {
					t.Fatalf("unexpected item details: %+v", details)
				}
				return []byte("%PDF-1.4 fake"), nil
			},
		)
		m.invoices.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, got entities.Invoice) (entities.Invoice, error) {
				if got.Status != entities.InvoiceStatusSent {
					t.Fatalf("expected sent, got %s", got.Status)
				}
				decoded, err := base64.StdEncoding.DecodeString(got.PDFData)
				if err != nil || string(decoded) != "%PDF-1.4 fake" {
					t.Fatalf("pdf not stored base64-encoded: %v", err)
				}
				return got, nil
			},
		)

		updated, err := uc.GeneratePDF(context.Background(), "inv-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Status != entities.InvoiceStatusSent {
			t.Fatalf("expected sent, got %s", updated.Status)
		}
	})

	t.Run("renderer error bubbles up", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newInvoiceUseCaseWithMocks(ctrl)

		inv := testInvoice(0)
		m.invoices.EXPECT().GetByID(gomock.Any(), "inv-1").Return(inv, nil)
		m.clients.EXPECT().GetByID(gomock.Any(), "cli-1").Return(entities.Client{ID: "cli-1"}, nil)
		m.settings.EXPECT().Get(gomock.Any()).Return(entities.DefaultSettings(), nil)
		m.renderer.EXPECT().RenderInvoice(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("font missing"))

		if _, err := uc.GeneratePDF(context.Background(), "inv-1"); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestInvoiceUseCase_SendByEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, m := newInvoiceUseCaseWithMocks(ctrl)

	inv := testInvoice(0)
	inv.PDFData = base64.StdEncoding.EncodeToString([]byte("%PDF-1.4 fake"))

	m.invoices.EXPECT().GetByID(gomock.Any(), "inv-1").Return(inv, nil)
	m.clients.EXPECT().GetByID(gomock.Any(), "cli-1").Return(entities.Client{ID: "cli-1", Email: "compta@morel.fr"}, nil)
	m.settings.EXPECT().Get(gomock.Any()).Return(entities.DefaultSettings(), nil)
	m.notifier.EXPECT().SendInvoice(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), []byte("%PDF-1.4 fake")).Return(true, nil)

	delivered, err := uc.SendByEmail(context.Background(), "inv-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !delivered {
		t.Fatalf("expected delivered")
	}
}

func TestInvoiceUseCase_MarkPaid(t *testing.T) {
	t.Run("already paid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newInvoiceUseCaseWithMocks(ctrl)

		inv := testInvoice(540)
		inv.Status = entities.InvoiceStatusPaid
		m.invoices.EXPECT().GetByID(gomock.Any(), "inv-1").Return(inv, nil)

		_, _, err := uc.MarkPaid(context.Background(), "inv-1", entities.PaymentMethodBank)
		if !errors.Is(err, ErrInvoiceAlreadyPaid) {
			t.Fatalf("expected ErrInvoiceAlreadyPaid, got %v", err)
		}
	})

	t.Run("settles remaining balance through the ledger", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newInvoiceUseCaseWithMocks(ctrl)

		inv := testInvoice(100)
		settled := testInvoice(540)
		settled.Status = entities.InvoiceStatusPaid

		m.invoices.EXPECT().GetByID(gomock.Any(), "inv-1").Return(inv, nil)
		m.invoices.EXPECT().GetByID(gomock.Any(), "inv-1").Return(inv, nil)
		m.payments.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.Payment) (entities.Payment, error) {
				if p.Amount != 440 {
					t.Fatalf("expected remaining 440 paid, got %.2f", p.Amount)
				}
				return p, nil
			},
		)
		m.invoices.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, got entities.Invoice) (entities.Invoice, error) {
				if got.Status != entities.InvoiceStatusPaid {
					t.Fatalf("expected paid, got %s", got.Status)
				}
				return got, nil
			},
		)
		m.invoices.EXPECT().GetByID(gomock.Any(), "inv-1").Return(settled, nil)
		m.clients.EXPECT().GetByID(gomock.Any(), "cli-1").Return(entities.Client{ID: "cli-1", CompanyName: "Transports Morel"}, nil)
		m.entries.EXPECT().CreateMany(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, entries []entities.AccountingEntry) error {
				if len(entries) != 2 {
					t.Fatalf("expected 2 settlement rows, got %d", len(entries))
				}
				if entries[0].AccountCode != accounting.AccountBank || entries[0].Debit != 300 {
					t.Fatalf("unexpected treasury row: %+v", entries[0])
				}
				if entries[1].AccountCode != accounting.AccountClientReceivables || entries[1].Credit != 300 {
					t.Fatalf("unexpected client row: %+v", entries[1])
				}
				return nil
			},
		)

		got, outcome, err := uc.MarkPaid(context.Background(), "inv-1", entities.PaymentMethodBank)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Status != entities.InvoiceStatusPaid {
			t.Fatalf("expected paid, got %s", got.Status)
		}
		if !outcome.Recorded() {
			t.Fatalf("expected settlement entries recorded, got %+v", outcome)
		}
	})
}

func TestInvoiceUseCase_MarkOverdue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, m := newInvoiceUseCaseWithMocks(ctrl)

	now := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	sent := testInvoice(0)
	partial := testInvoice(100)
	draft := testInvoice(0)
	draft.ID = "inv-3"
	draft.Status = entities.InvoiceStatusDraft

	m.invoices.EXPECT().ListOverdue(gomock.Any(), now).Return([]entities.Invoice{sent, partial, draft}, nil)
	m.invoices.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, inv entities.Invoice) (entities.Invoice, error) {
			if inv.Status != entities.InvoiceStatusOverdue {
				t.Fatalf("expected overdue, got %s", inv.Status)
			}
			return inv, nil
		},
	).Times(2)

	marked, err := uc.MarkOverdue(context.Background(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if marked != 2 {
		t.Fatalf("expected 2 marked, got %d", marked)
	}
}

func TestInvoiceUseCase_SendOverdueReminders(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, m := newInvoiceUseCaseWithMocks(ctrl)

	now := time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC)

	hit := testInvoice(0)
	hit.DueDate = now.AddDate(0, 0, -7)

	offPeriod := testInvoice(0)
	offPeriod.ID = "inv-2"
	offPeriod.DueDate = now.AddDate(0, 0, -3)

	noEmail := testInvoice(0)
	noEmail.ID = "inv-3"
	noEmail.ClientID = "cli-2"
	noEmail.DueDate = now.AddDate(0, 0, -15)

	m.invoices.EXPECT().ListOverdue(gomock.Any(), now).Return([]entities.Invoice{hit, offPeriod, noEmail}, nil)
	m.settings.EXPECT().Get(gomock.Any()).Return(entities.DefaultSettings(), nil)
	m.clients.EXPECT().GetByID(gomock.Any(), "cli-1").Return(entities.Client{ID: "cli-1", Email: "compta@morel.fr"}, nil)
	m.clients.EXPECT().GetByID(gomock.Any(), "cli-2").Return(entities.Client{ID: "cli-2"}, nil)
	m.notifier.EXPECT().SendPaymentReminder(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), 7).Return(true, nil)

	report, err := uc.SendOverdueReminders(context.Background(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Examined != 3 || report.Sent != 1 {
		t.Fatalf("expected 3 examined / 1 sent, got %+v", report)
	}
}

func TestInvoiceUseCase_Cancel(t *testing.T) {
	t.Run("paid invoice is terminal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newInvoiceUseCaseWithMocks(ctrl)

		inv := testInvoice(540)
		inv.Status = entities.InvoiceStatusPaid
		m.invoices.EXPECT().GetByID(gomock.Any(), "inv-1").Return(inv, nil)

		_, err := uc.Cancel(context.Background(), "inv-1")
		if !errors.Is(err, ErrInvoiceNotCancellable) {
			t.Fatalf("expected ErrInvoiceNotCancellable, got %v", err)
		}
	})

	t.Run("sent invoice cancels", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newInvoiceUseCaseWithMocks(ctrl)

		m.invoices.EXPECT().GetByID(gomock.Any(), "inv-1").Return(testInvoice(0), nil)
		m.invoices.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, inv entities.Invoice) (entities.Invoice, error) { return inv, nil },
		)

		got, err := uc.Cancel(context.Background(), "inv-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Status != entities.InvoiceStatusCancelled {
			t.Fatalf("expected cancelled, got %s", got.Status)
		}
	})
}

func TestInvoiceUseCase_Dashboard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, m := newInvoiceUseCaseWithMocks(ctrl)

	m.clients.EXPECT().CountActive(gomock.Any()).Return(12, nil)
	m.vehicles.EXPECT().Count(gomock.Any()).Return(8, nil)
	m.orders.EXPECT().CountByStatus(gomock.Any(), entities.OrderStatusActive).Return(5, nil)
	m.invoices.EXPECT().CountOverdue(gomock.Any(), gomock.Any()).Return(3, nil)

	got, err := uc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := DashboardSummary{TotalClients: 12, TotalVehicles: 8, ActiveOrders: 5, OverdueInvoices: 3}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}
