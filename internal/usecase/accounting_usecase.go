package usecase

import (
	"context"
	"errors"
	"time"

	"autopro_rental/internal/domain/accounting"
	"autopro_rental/internal/domain/entities"
	"autopro_rental/internal/usecase/interfaces"
)

var (
	ErrInvalidPeriod       = errors.New("period end cannot precede period start")
	ErrUnknownExportFormat = errors.New("unknown export format")
)

type IAccountingUseCase interface {
	ListEntries(ctx context.Context) ([]entities.AccountingEntry, error)
	Summary(ctx context.Context, start, end time.Time) (accounting.JournalSummary, error)
	Export(ctx context.Context, format string) (string, error)
}

type AccountingUseCase struct {
	entries interfaces.IAccountingEntryRepository
}

var _ IAccountingUseCase = (*AccountingUseCase)(nil)

func NewAccountingUseCase(entries interfaces.IAccountingEntryRepository) *AccountingUseCase {
	return &AccountingUseCase{entries: entries}
}

func (u *AccountingUseCase) ListEntries(ctx context.Context) ([]entities.AccountingEntry, error) {
	return u.entries.List(ctx)
}

// Summary aggregates the ledger per account over an inclusive date range.
func (u *AccountingUseCase) Summary(ctx context.Context, start, end time.Time) (accounting.JournalSummary, error) {
	if end.Before(start) {
		return accounting.JournalSummary{}, ErrInvalidPeriod
	}
	entries, err := u.entries.ListByDateRange(ctx, start, end)
	if err != nil {
		return accounting.JournalSummary{}, err
	}
	return accounting.Summarize(entries, start, end), nil
}

// Export serializes the whole ledger in the requested bookkeeping format
// (csv, ciel, sage or cegid).
func (u *AccountingUseCase) Export(ctx context.Context, format string) (string, error) {
	entries, err := u.entries.List(ctx)
	if err != nil {
		return "", err
	}

	switch format {
	case accounting.FormatCSV:
		return accounting.ExportCSV(entries)
	case accounting.FormatCiel:
		return accounting.ExportCiel(entries)
	case accounting.FormatSage:
		return accounting.ExportSage(entries)
	case accounting.FormatCegid:
		return accounting.ExportCegid(entries)
	default:
		return "", ErrUnknownExportFormat
	}
}
