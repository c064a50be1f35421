package interfaces

import (
	"context"

	"autopro_rental/internal/domain/entities"
)

// IPDFRenderer abstracts the invoice document renderer. The core supplies the
// invoice, client, company settings and per-item vehicle details; typesetting
// is entirely the collaborator's concern.
type IPDFRenderer interface {
	RenderInvoice(ctx context.Context, inv entities.Invoice, client entities.Client, settings entities.Settings, items []entities.InvoiceItemDetail) ([]byte, error)
}
