package interfaces

import (
	"context"
	"time"

	"autopro_rental/internal/domain/entities"
)

// IInvoiceRepository abstracts DynamoDB persistence for Invoice.
//
// Update performs an optimistic conditional write on the invoice Version
// field and returns ErrVersionConflict (a repository-level error surfaced as
// a zero-value invoice plus error) when another writer got there first. The
// payment ledger additionally serializes same-invoice mutations in-process.

type IInvoiceRepository interface {
	Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error)
	GetByID(ctx context.Context, id string) (entities.Invoice, error)
	List(ctx context.Context) ([]entities.Invoice, error)
	ListByOrderID(ctx context.Context, orderID string) ([]entities.Invoice, error)
	ListOverdue(ctx context.Context, now time.Time) ([]entities.Invoice, error)
	Update(ctx context.Context, inv entities.Invoice) (entities.Invoice, error)
	Count(ctx context.Context) (int, error)
	CountOverdue(ctx context.Context, now time.Time) (int, error)
}
