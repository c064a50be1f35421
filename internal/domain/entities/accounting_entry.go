package entities

import "time"

type AccountingEntryType string

const (
	EntrySale             AccountingEntryType = "sale"
	EntryVATCollected     AccountingEntryType = "vat_collected"
	EntryClientReceivable AccountingEntryType = "client_receivable"
)

// AccountingEntry is one double-entry ledger row derived from an invoice or a
// settlement, following the French Plan Comptable Général.
//
// Storage model (DynamoDB):
//   - PK: id
//
// Exactly one of Debit/Credit is non-zero per entry, and every entry set
// generated for an invoice balances (Σdebit == Σcredit). The ledger is
// append-only: rows are never mutated after creation.
type AccountingEntry struct {
	ID          string              `json:"id"`
	EntryDate   time.Time           `json:"entry_date"`
	InvoiceID   string              `json:"invoice_id"`
	ClientID    string              `json:"client_id"`
	AccountCode string              `json:"account_code"`
	AccountName string              `json:"account_name"`
	Debit       float64             `json:"debit"`
	Credit      float64             `json:"credit"`
	Description string              `json:"description"`
	Reference   string              `json:"reference"`
	EntryType   AccountingEntryType `json:"entry_type"`
}

// Amount returns the non-zero side of the entry.
func (e AccountingEntry) Amount() float64 {
	if e.Debit > 0 {
		return e.Debit
	}
	return e.Credit
}

// IsDebit reports whether the entry sits on the debit side.
func (e AccountingEntry) IsDebit() bool {
	return e.Debit > 0
}
