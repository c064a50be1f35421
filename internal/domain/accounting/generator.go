// Package accounting derives French PCG double-entry ledger rows from
// invoices and settlements, and serializes them for external bookkeeping
// tools.
//
// The generators are stateless: they take their inputs explicitly and return
// entry slices. Persisting the rows is the caller's responsibility through
// the accounting-entry repository.
package accounting

import (
	"fmt"
	"time"

	"autopro_rental/internal/domain/entities"

	"github.com/google/uuid"
)

// Plan Comptable Général account codes used for rental invoicing.
const (
	AccountClientReceivables      = "411000"
	AccountSalesServices          = "706000"
	AccountVATCollectedStandard   = "445571" // 20%
	AccountVATCollectedReduced    = "445572" // 10%
	AccountVATCollectedSuperRed   = "445573" // 5.5%
	AccountBank                   = "512000"
	AccountCash                   = "530000"
)

// SelectVATAccount maps a VAT rate to its collected-VAT account. The 20% and
// 10% accounts honor the settings overrides; 5.5% is fixed by the chart.
// Unsupported rates fall back to the standard-rate account.
func SelectVATAccount(vatRate float64, settings entities.Settings) string {
	switch vatRate {
	case 20.0:
		if settings.Accounts.VATStandard != "" {
			return settings.Accounts.VATStandard
		}
		return AccountVATCollectedStandard
	case 10.0:
		if settings.Accounts.VATReduced != "" {
			return settings.Accounts.VATReduced
		}
		return AccountVATCollectedReduced
	case 5.5:
		return AccountVATCollectedSuperRed
	default:
		return AccountVATCollectedStandard
	}
}

// GenerateInvoiceEntries produces the balanced entry set recorded when an
// invoice is created: client receivable debit for the TTC amount, sales
// credit for the HT amount, and a collected-VAT credit when VAT applies.
func GenerateInvoiceEntries(inv entities.Invoice, client entities.Client, settings entities.Settings) []entities.AccountingEntry {
	entries := make([]entities.AccountingEntry, 0, 3)

	entries = append(entries, entities.AccountingEntry{
		ID:          uuid.NewString(),
		EntryDate:   inv.InvoiceDate,
		InvoiceID:   inv.ID,
		ClientID:    inv.ClientID,
		AccountCode: AccountClientReceivables,
		AccountName: fmt.Sprintf("Client - %s", client.CompanyName),
		Debit:       inv.TotalTTC,
		Description: fmt.Sprintf("Facture %s - Location véhicules", inv.InvoiceNumber),
		Reference:   inv.InvoiceNumber,
		EntryType:   entities.EntryClientReceivable,
	})

	salesAccount := settings.Accounts.Sales
	if salesAccount == "" {
		salesAccount = AccountSalesServices
	}
	entries = append(entries, entities.AccountingEntry{
		ID:          uuid.NewString(),
		EntryDate:   inv.InvoiceDate,
		InvoiceID:   inv.ID,
		ClientID:    inv.ClientID,
		AccountCode: salesAccount,
		AccountName: "Prestations de services - Location véhicules",
		Credit:      inv.TotalHT,
		Description: fmt.Sprintf("Facture %s - Vente HT", inv.InvoiceNumber),
		Reference:   inv.InvoiceNumber,
		EntryType:   entities.EntrySale,
	})

	if inv.TotalVAT > 0 {
		vatRate := client.VATRate
		entries = append(entries, entities.AccountingEntry{
			ID:          uuid.NewString(),
			EntryDate:   inv.InvoiceDate,
			InvoiceID:   inv.ID,
			ClientID:    inv.ClientID,
			AccountCode: SelectVATAccount(vatRate, settings),
			AccountName: fmt.Sprintf("TVA collectée %g%%", vatRate),
			Credit:      inv.TotalVAT,
			Description: fmt.Sprintf("Facture %s - TVA %g%%", inv.InvoiceNumber, vatRate),
			Reference:   inv.InvoiceNumber,
			EntryType:   entities.EntryVATCollected,
		})
	}

	return entries
}

// GeneratePaymentEntries produces the two balanced settlement rows: treasury
// debit (bank or cash, by payment method) and client receivable credit, both
// for the invoice TTC amount.
func GeneratePaymentEntries(inv entities.Invoice, client entities.Client, paymentDate time.Time, method entities.PaymentMethod) []entities.AccountingEntry {
	treasuryAccount := AccountBank
	treasuryName := "Banque"
	if method == entities.PaymentMethodCash {
		treasuryAccount = AccountCash
		treasuryName = "Caisse"
	}

	return []entities.AccountingEntry{
		{
			ID:          uuid.NewString(),
			EntryDate:   paymentDate,
			InvoiceID:   inv.ID,
			ClientID:    inv.ClientID,
			AccountCode: treasuryAccount,
			AccountName: treasuryName,
			Debit:       inv.TotalTTC,
			Description: fmt.Sprintf("Règlement facture %s - %s", inv.InvoiceNumber, client.CompanyName),
			Reference:   inv.InvoiceNumber,
			EntryType:   entities.EntryClientReceivable,
		},
		{
			ID:          uuid.NewString(),
			EntryDate:   paymentDate,
			InvoiceID:   inv.ID,
			ClientID:    inv.ClientID,
			AccountCode: AccountClientReceivables,
			AccountName: fmt.Sprintf("Client - %s", client.CompanyName),
			Credit:      inv.TotalTTC,
			Description: fmt.Sprintf("Règlement facture %s", inv.InvoiceNumber),
			Reference:   inv.InvoiceNumber,
			EntryType:   entities.EntryClientReceivable,
		},
	}
}
