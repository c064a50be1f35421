package interfaces

import (
	"context"

	"autopro_rental/internal/domain/entities"
)

// INotifier abstracts outbound email (invoice delivery, payment reminders).
// The core only cares about a boolean delivery outcome; retries and provider
// specifics stay behind the implementation.
type INotifier interface {
	SendInvoice(ctx context.Context, inv entities.Invoice, client entities.Client, settings entities.Settings, pdf []byte) (bool, error)
	SendPaymentReminder(ctx context.Context, inv entities.Invoice, client entities.Client, settings entities.Settings, daysOverdue int) (bool, error)
}
