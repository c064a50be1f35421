package response

import (
	"time"

	"autopro_rental/internal/domain/entities"
)

type AccountingEntryResponse struct {
	ID          string    `json:"id"`
	EntryDate   time.Time `json:"entry_date"`
	InvoiceID   string    `json:"invoice_id"`
	ClientID    string    `json:"client_id"`
	AccountCode string    `json:"account_code"`
	AccountName string    `json:"account_name"`
	Debit       float64   `json:"debit"`
	Credit      float64   `json:"credit"`
	Description string    `json:"description"`
	Reference   string    `json:"reference"`
	EntryType   string    `json:"entry_type"`
}

func FromAccountingEntry(e entities.AccountingEntry) AccountingEntryResponse {
	return AccountingEntryResponse{
		ID:          e.ID,
		EntryDate:   e.EntryDate,
		InvoiceID:   e.InvoiceID,
		ClientID:    e.ClientID,
		AccountCode: e.AccountCode,
		AccountName: e.AccountName,
		Debit:       e.Debit,
		Credit:      e.Credit,
		Description: e.Description,
		Reference:   e.Reference,
		EntryType:   string(e.EntryType),
	}
}

func FromAccountingEntries(entries []entities.AccountingEntry) []AccountingEntryResponse {
	out := make([]AccountingEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, FromAccountingEntry(e))
	}
	return out
}
