package interfaces

import (
	"context"
	"time"

	"autopro_rental/internal/domain/entities"
)

// IAccountingEntryRepository abstracts DynamoDB persistence for the
// append-only accounting ledger.

type IAccountingEntryRepository interface {
	CreateMany(ctx context.Context, entries []entities.AccountingEntry) error
	List(ctx context.Context) ([]entities.AccountingEntry, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]entities.AccountingEntry, error)
}
