package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"autopro_rental/internal/domain/entities"
	mock_interfaces "autopro_rental/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type orderUseCaseMocks struct {
	orders   *mock_interfaces.MockIOrderRepository
	clients  *mock_interfaces.MockIClientRepository
	vehicles *mock_interfaces.MockIVehicleRepository
	invoices *mock_interfaces.MockIInvoiceRepository
	entries  *mock_interfaces.MockIAccountingEntryRepository
	settings *mock_interfaces.MockISettingsRepository
}

func newOrderUseCaseWithMocks(ctrl *gomock.Controller) (*OrderUseCase, orderUseCaseMocks) {
	m := orderUseCaseMocks{
		orders:   mock_interfaces.NewMockIOrderRepository(ctrl),
		clients:  mock_interfaces.NewMockIClientRepository(ctrl),
		vehicles: mock_interfaces.NewMockIVehicleRepository(ctrl),
		invoices: mock_interfaces.NewMockIInvoiceRepository(ctrl),
		entries:  mock_interfaces.NewMockIAccountingEntryRepository(ctrl),
		settings: mock_interfaces.NewMockISettingsRepository(ctrl),
	}
	uc := NewOrderUseCase(m.orders, m.clients, m.vehicles, m.invoices, m.entries, m.settings)
	return uc, m
}

func fiveDayItem() entities.OrderItem {
	return entities.OrderItem{
		VehicleID: "veh-1",
		Quantity:  1,
		DailyRate: 50,
		StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
	}
}

func TestOrderUseCase_CreateOrder(t *testing.T) {
	t.Run("invalid client id", func(t *testing.T) {
		uc, _ := newOrderUseCaseWithMocks(gomock.NewController(t))
		_, _, _, err := uc.CreateOrder(context.Background(), CreateOrderCommand{ClientID: "  ", Items: []entities.OrderItem{fiveDayItem()}})
		if !errors.Is(err, ErrInvalidClientID) {
			t.Fatalf("expected ErrInvalidClientID, got %v", err)
		}
	})

	t.Run("empty order", func(t *testing.T) {
		uc, _ := newOrderUseCaseWithMocks(gomock.NewController(t))
		_, _, _, err := uc.CreateOrder(context.Background(), CreateOrderCommand{ClientID: "cli-1"})
		if !errors.Is(err, ErrEmptyOrder) {
			t.Fatalf("expected ErrEmptyOrder, got %v", err)
		}
	})

	t.Run("negative deposit", func(t *testing.T) {
		uc, _ := newOrderUseCaseWithMocks(gomock.NewController(t))
		_, _, _, err := uc.CreateOrder(context.Background(), CreateOrderCommand{ClientID: "cli-1", DepositAmount: -1, Items: []entities.OrderItem{fiveDayItem()}})
		if !errors.Is(err, ErrInvalidDeposit) {
			t.Fatalf("expected ErrInvalidDeposit, got %v", err)
		}
	})

	t.Run("client not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUseCaseWithMocks(ctrl)

		m.clients.EXPECT().GetByID(gomock.Any(), "cli-404").Return(entities.Client{}, nil)

		_, _, _, err := uc.CreateOrder(context.Background(), CreateOrderCommand{ClientID: "cli-404", Items: []entities.OrderItem{fiveDayItem()}})
		if !errors.Is(err, ErrClientNotFound) {
			t.Fatalf("expected ErrClientNotFound, got %v", err)
		}
	})

	t.Run("vehicle not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUseCaseWithMocks(ctrl)

		m.clients.EXPECT().GetByID(gomock.Any(), "cli-1").Return(entities.Client{ID: "cli-1", VATRate: 20}, nil)
		m.vehicles.EXPECT().GetByID(gomock.Any(), "veh-1").Return(entities.Vehicle{}, nil)

		_, _, _, err := uc.CreateOrder(context.Background(), CreateOrderCommand{ClientID: "cli-1", Items: []entities.OrderItem{fiveDayItem()}})
		if !errors.Is(err, ErrVehicleNotFound) {
			t.Fatalf("expected ErrVehicleNotFound, got %v", err)
		}
	})

	t.Run("create success with deposit and ledger", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUseCaseWithMocks(ctrl)

		m.clients.EXPECT().GetByID(gomock.Any(), "cli-1").Return(entities.Client{ID: "cli-1", CompanyName: "Transports Morel", VATRate: 20}, nil)
		m.vehicles.EXPECT().GetByID(gomock.Any(), "veh-1").Return(entities.Vehicle{ID: "veh-1", DailyRate: 50}, nil)
		m.orders.EXPECT().Count(gomock.Any()).Return(0, nil)
		m.orders.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Order{})).DoAndReturn(
			func(_ context.Context, o entities.Order) (entities.Order, error) {
				if o.OrderNumber != "CMD000001" {
					t.Fatalf("expected CMD000001, got %s", o.OrderNumber)
				}
				if o.TotalHT != 250 || o.TotalVAT != 50 || o.TotalTTC != 300 {
					t.Fatalf("unexpected totals: %+v", o.OrderTotals)
				}
				if o.DepositVAT != 40 || o.GrandTotal != 540 {
					t.Fatalf("unexpected deposit totals: %+v", o.OrderTotals)
				}
				if o.Items[0].TotalDays != 5 || o.Items[0].ItemTotalHT != 250 {
					t.Fatalf("unexpected item: %+v", o.Items[0])
				}
				return o, nil
			},
		)
		m.settings.EXPECT().Get(gomock.Any()).Return(entities.DefaultSettings(), nil)
		m.invoices.EXPECT().Count(gomock.Any()).Return(0, nil)
		m.invoices.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Invoice{})).DoAndReturn(
			func(_ context.Context, inv entities.Invoice) (entities.Invoice, error) {
				if inv.InvoiceNumber != "FACT000001" {
					t.Fatalf("expected FACT000001, got %s", inv.InvoiceNumber)
				}
				if inv.Status != entities.InvoiceStatusDraft {
					t.Fatalf("expected draft, got %s", inv.Status)
				}
				if inv.AmountPaid != 0 || inv.RemainingAmount != 540 {
					t.Fatalf("unexpected aggregates: paid=%.2f remaining=%.2f", inv.AmountPaid, inv.RemainingAmount)
				}
				if got := inv.DueDate.Sub(inv.InvoiceDate); got != 30*24*time.Hour {
					t.Fatalf("expected 30-day due delay, got %v", got)
				}
				return inv, nil
			},
		)
		m.entries.EXPECT().CreateMany(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, entries []entities.AccountingEntry) error {
				var debit, credit float64
				for _, e := range entries {
					debit += e.Debit
					credit += e.Credit
				}
				if debit != credit || debit != 300 {
					t.Fatalf("unbalanced entries: debit=%.2f credit=%.2f", debit, credit)
				}
				return nil
			},
		)

		order, invoice, outcome, err := uc.CreateOrder(context.Background(), CreateOrderCommand{
			ClientID:      "cli-1",
			DepositAmount: 200,
			Items:         []entities.OrderItem{fiveDayItem()},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if order.GrandTotal != 540 || invoice.GrandTotal != 540 {
			t.Fatalf("expected grand total 540, got order=%.2f invoice=%.2f", order.GrandTotal, invoice.GrandTotal)
		}
		if !outcome.Recorded() {
			t.Fatalf("expected ledger entries recorded, got %+v", outcome)
		}
	})

	t.Run("ledger failure keeps the invoice", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUseCaseWithMocks(ctrl)

		m.clients.EXPECT().GetByID(gomock.Any(), "cli-1").Return(entities.Client{ID: "cli-1", VATRate: 20}, nil)
		m.vehicles.EXPECT().GetByID(gomock.Any(), "veh-1").Return(entities.Vehicle{ID: "veh-1"}, nil)
		m.orders.EXPECT().Count(gomock.Any()).Return(4, nil)
		m.orders.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, o entities.Order) (entities.Order, error) { return o, nil },
		)
		m.settings.EXPECT().Get(gomock.Any()).Return(entities.Settings{}, nil)
		m.invoices.EXPECT().Count(gomock.Any()).Return(4, nil)
		m.invoices.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, inv entities.Invoice) (entities.Invoice, error) { return inv, nil },
		)
		m.entries.EXPECT().CreateMany(gomock.Any(), gomock.Any()).Return(errors.New("table unavailable"))

		order, invoice, outcome, err := uc.CreateOrder(context.Background(), CreateOrderCommand{
			ClientID: "cli-1",
			Items:    []entities.OrderItem{fiveDayItem()},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if order.OrderNumber != "CMD000005" || invoice.InvoiceNumber != "FACT000005" {
			t.Fatalf("unexpected numbering: %s %s", order.OrderNumber, invoice.InvoiceNumber)
		}
		if outcome.Recorded() || outcome.Err == nil {
			t.Fatalf("expected ledger failure surfaced, got %+v", outcome)
		}
	})
}

func TestOrderUseCase_RenewDueOrders(t *testing.T) {
	now := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	renewableOrder := func() entities.Order {
		item := fiveDayItem()
		item.IsRenewable = true
		item.RentalPeriod = entities.RentalPeriodWeeks
		item.RentalDuration = 1
		item.EndDate = time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
		return entities.Order{
			ID:          "ord-1",
			ClientID:    "cli-1",
			OrderNumber: "CMD000001",
			Items:       []entities.OrderItem{item},
			Status:      entities.OrderStatusActive,
		}
	}

	t.Run("unpaid invoice blocks renewal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUseCaseWithMocks(ctrl)

		m.orders.EXPECT().List(gomock.Any()).Return([]entities.Order{renewableOrder()}, nil)
		m.invoices.EXPECT().ListByOrderID(gomock.Any(), "ord-1").Return([]entities.Invoice{
			{ID: "inv-1", Status: entities.InvoiceStatusPartiallyPaid},
		}, nil)

		report, err := uc.RenewDueOrders(context.Background(), now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Scanned != 1 || report.Blocked != 1 || report.Renewed != 0 {
			t.Fatalf("unexpected report: %+v", report)
		}
	})

	t.Run("paid invoice renews over the next window", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUseCaseWithMocks(ctrl)

		m.orders.EXPECT().List(gomock.Any()).Return([]entities.Order{renewableOrder()}, nil)
		m.invoices.EXPECT().ListByOrderID(gomock.Any(), "ord-1").Return([]entities.Invoice{
			{ID: "inv-1", Status: entities.InvoiceStatusPaid},
		}, nil)
		m.clients.EXPECT().GetByID(gomock.Any(), "cli-1").Return(entities.Client{ID: "cli-1", VATRate: 20}, nil)
		m.orders.EXPECT().Count(gomock.Any()).Return(1, nil)
		m.orders.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, o entities.Order) (entities.Order, error) {
				if o.OrderNumber != "CMD000002" {
					t.Fatalf("expected CMD000002, got %s", o.OrderNumber)
				}
				if o.DepositAmount != 0 || o.DepositVAT != 0 {
					t.Fatalf("renewal must carry no deposit: %+v", o.OrderTotals)
				}
				wantStart := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
				wantEnd := time.Date(2025, 4, 7, 0, 0, 0, 0, time.UTC)
				if !o.Items[0].StartDate.Equal(wantStart) || !o.Items[0].EndDate.Equal(wantEnd) {
					t.Fatalf("unexpected window: %s..%s", o.Items[0].StartDate, o.Items[0].EndDate)
				}
				return o, nil
			},
		)
		m.settings.EXPECT().Get(gomock.Any()).Return(entities.DefaultSettings(), nil)
		m.invoices.EXPECT().Count(gomock.Any()).Return(1, nil)
		m.invoices.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, inv entities.Invoice) (entities.Invoice, error) { return inv, nil },
		)
		m.entries.EXPECT().CreateMany(gomock.Any(), gomock.Any()).Return(nil)
		m.orders.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, o entities.Order) (entities.Order, error) {
				wantEnd := time.Date(2025, 4, 7, 0, 0, 0, 0, time.UTC)
				if !o.Items[0].EndDate.Equal(wantEnd) {
					t.Fatalf("source end date not advanced: %s", o.Items[0].EndDate)
				}
				return o, nil
			},
		)

		report, err := uc.RenewDueOrders(context.Background(), now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Renewed != 1 || report.Blocked != 0 || report.Failed != 0 {
			t.Fatalf("unexpected report: %+v", report)
		}
	})

	t.Run("candidate failure does not stop the sweep", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUseCaseWithMocks(ctrl)

		broken := renewableOrder()
		healthy := renewableOrder()
		healthy.ID = "ord-2"

		m.orders.EXPECT().List(gomock.Any()).Return([]entities.Order{broken, healthy}, nil)
		m.invoices.EXPECT().ListByOrderID(gomock.Any(), "ord-1").Return(nil, errors.New("index offline"))
		m.invoices.EXPECT().ListByOrderID(gomock.Any(), "ord-2").Return([]entities.Invoice{
			{ID: "inv-2", Status: entities.InvoiceStatusPartiallyPaid},
		}, nil)

		report, err := uc.RenewDueOrders(context.Background(), now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Failed != 1 || report.Blocked != 1 {
			t.Fatalf("unexpected report: %+v", report)
		}
	})
}
