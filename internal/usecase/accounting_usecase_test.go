package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"autopro_rental/internal/domain/entities"
	mock_interfaces "autopro_rental/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestAccountingUseCase_Summary(t *testing.T) {
	t.Run("end before start", func(t *testing.T) {
		uc := NewAccountingUseCase(nil)
		start := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
		end := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		_, err := uc.Summary(context.Background(), start, end)
		if !errors.Is(err, ErrInvalidPeriod) {
			t.Fatalf("expected ErrInvalidPeriod, got %v", err)
		}
	})

	t.Run("balanced summary", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		entriesRepo := mock_interfaces.NewMockIAccountingEntryRepository(ctrl)
		uc := NewAccountingUseCase(entriesRepo)

		start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
		mid := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
		entriesRepo.EXPECT().ListByDateRange(gomock.Any(), start, end).Return([]entities.AccountingEntry{
			{AccountCode: "411000", AccountName: "Client - Morel", Debit: 300, EntryDate: mid},
			{AccountCode: "706000", AccountName: "Prestations", Credit: 250, EntryDate: mid},
			{AccountCode: "445571", AccountName: "TVA 20%", Credit: 50, EntryDate: mid},
		}, nil)

		summary, err := uc.Summary(context.Background(), start, end)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !summary.Summary.IsBalanced {
			t.Fatalf("expected balanced summary: %+v", summary.Summary)
		}
		if summary.Summary.TotalDebit != 300 || summary.Summary.TotalCredit != 300 {
			t.Fatalf("unexpected totals: %+v", summary.Summary)
		}
	})
}

func TestAccountingUseCase_Export(t *testing.T) {
	t.Run("unknown format", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		entriesRepo := mock_interfaces.NewMockIAccountingEntryRepository(ctrl)
		uc := NewAccountingUseCase(entriesRepo)

		entriesRepo.EXPECT().List(gomock.Any()).Return(nil, nil)

		_, err := uc.Export(context.Background(), "quickbooks")
		if !errors.Is(err, ErrUnknownExportFormat) {
			t.Fatalf("expected ErrUnknownExportFormat, got %v", err)
		}
	})

	t.Run("format dispatch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		entriesRepo := mock_interfaces.NewMockIAccountingEntryRepository(ctrl)
		uc := NewAccountingUseCase(entriesRepo)

		entry := entities.AccountingEntry{
			EntryDate:   time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
			AccountCode: "411000",
			AccountName: "Client - Morel",
			Debit:       300,
			Description: "Facture FACT000001 - Location véhicules",
			Reference:   "FACT000001",
		}

		for format, marker := range map[string]string{
			"csv":   "Libellé écriture",
			"ciel":  "VTE",
			"sage":  "Compte_tiers",
			"cegid": "VEN",
		} {
			entriesRepo.EXPECT().List(gomock.Any()).Return([]entities.AccountingEntry{entry}, nil)
			out, err := uc.Export(context.Background(), format)
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", format, err)
			}
			if !strings.Contains(out, marker) {
				t.Fatalf("%s: expected %q in output:\n%s", format, marker, out)
			}
		}
	})
}
