package accounting

import (
	"math"
	"testing"
	"time"

	"autopro_rental/internal/domain/entities"
)

func sampleInvoice() entities.Invoice {
	return entities.Invoice{
		ID:            "inv-1",
		InvoiceNumber: "FACT000042",
		ClientID:      "cli-1",
		InvoiceDate:   time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC),
		OrderTotals: entities.OrderTotals{
			TotalHT:  250.00,
			TotalVAT: 50.00,
			TotalTTC: 300.00,
		},
	}
}

func sampleClient(vatRate float64) entities.Client {
	return entities.Client{ID: "cli-1", CompanyName: "Transports Morel", VATRate: vatRate}
}

func sumDebitsCredits(entries []entities.AccountingEntry) (float64, float64) {
	var d, c float64
	for _, e := range entries {
		d += e.Debit
		c += e.Credit
	}
	return d, c
}

func TestGenerateInvoiceEntries_BalancedWithVAT(t *testing.T) {
	entries := GenerateInvoiceEntries(sampleInvoice(), sampleClient(20.0), entities.DefaultSettings())

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	debits, credits := sumDebitsCredits(entries)
	if math.Abs(debits-300.00) > 0.01 || math.Abs(debits-credits) > 0.01 {
		t.Fatalf("entry set not balanced: debits=%.2f credits=%.2f", debits, credits)
	}

	if entries[0].AccountCode != AccountClientReceivables || entries[0].Debit != 300.00 {
		t.Fatalf("unexpected client entry: %+v", entries[0])
	}
	if entries[1].AccountCode != "706000" || entries[1].Credit != 250.00 {
		t.Fatalf("unexpected sales entry: %+v", entries[1])
	}
	if entries[2].AccountCode != "445571" || entries[2].Credit != 50.00 {
		t.Fatalf("unexpected VAT entry: %+v", entries[2])
	}
	if entries[2].EntryType != entities.EntryVATCollected {
		t.Fatalf("unexpected VAT entry type: %s", entries[2].EntryType)
	}

	for _, e := range entries {
		if e.ID == "" {
			t.Fatalf("entry missing id: %+v", e)
		}
		if e.Reference != "FACT000042" {
			t.Fatalf("entry missing invoice reference: %+v", e)
		}
		if (e.Debit > 0) == (e.Credit > 0) {
			t.Fatalf("entry must have exactly one non-zero side: %+v", e)
		}
	}
}

func TestGenerateInvoiceEntries_ZeroVAT(t *testing.T) {
	inv := sampleInvoice()
	inv.TotalVAT = 0
	inv.TotalTTC = inv.TotalHT

	entries := GenerateInvoiceEntries(inv, sampleClient(0), entities.DefaultSettings())

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries without VAT, got %d", len(entries))
	}
	debits, credits := sumDebitsCredits(entries)
	if math.Abs(debits-credits) > 0.01 {
		t.Fatalf("zero-VAT entry set not balanced: debits=%.2f credits=%.2f", debits, credits)
	}
}

func TestGenerateInvoiceEntries_SalesAccountOverride(t *testing.T) {
	settings := entities.DefaultSettings()
	settings.Accounts.Sales = "706100"

	entries := GenerateInvoiceEntries(sampleInvoice(), sampleClient(20.0), settings)

	if entries[1].AccountCode != "706100" {
		t.Fatalf("expected overridden sales account, got %s", entries[1].AccountCode)
	}
}

func TestSelectVATAccount(t *testing.T) {
	settings := entities.DefaultSettings()

	cases := []struct {
		rate float64
		want string
	}{
		{20.0, "445571"},
		{10.0, "445572"},
		{5.5, "445573"},
		{7.0, "445571"}, // unsupported rate falls back to the standard account
		{0.0, "445571"},
	}
	for _, tc := range cases {
		if got := SelectVATAccount(tc.rate, settings); got != tc.want {
			t.Fatalf("SelectVATAccount(%.1f) = %s, want %s", tc.rate, got, tc.want)
		}
	}

	settings.Accounts.VATStandard = "445710"
	settings.Accounts.VATReduced = "445720"
	if got := SelectVATAccount(20.0, settings); got != "445710" {
		t.Fatalf("standard override ignored, got %s", got)
	}
	if got := SelectVATAccount(10.0, settings); got != "445720" {
		t.Fatalf("reduced override ignored, got %s", got)
	}
	// The super-reduced account is not overridable.
	if got := SelectVATAccount(5.5, settings); got != "445573" {
		t.Fatalf("super-reduced account must stay fixed, got %s", got)
	}
}

func TestGeneratePaymentEntries(t *testing.T) {
	inv := sampleInvoice()
	client := sampleClient(20.0)
	paidAt := time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)

	t.Run("bank", func(t *testing.T) {
		entries := GeneratePaymentEntries(inv, client, paidAt, entities.PaymentMethodBank)
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
		if entries[0].AccountCode != AccountBank || entries[0].Debit != 300.00 {
			t.Fatalf("unexpected treasury entry: %+v", entries[0])
		}
		if entries[1].AccountCode != AccountClientReceivables || entries[1].Credit != 300.00 {
			t.Fatalf("unexpected client entry: %+v", entries[1])
		}
		debits, credits := sumDebitsCredits(entries)
		if math.Abs(debits-credits) > 0.01 {
			t.Fatalf("payment entries not balanced: %.2f vs %.2f", debits, credits)
		}
	})

	t.Run("cash", func(t *testing.T) {
		entries := GeneratePaymentEntries(inv, client, paidAt, entities.PaymentMethodCash)
		if entries[0].AccountCode != AccountCash || entries[0].AccountName != "Caisse" {
			t.Fatalf("unexpected cash treasury entry: %+v", entries[0])
		}
	})
}

func TestSummarize(t *testing.T) {
	base := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	entries := []entities.AccountingEntry{
		{AccountCode: "411000", AccountName: "Client - A", Debit: 300, EntryDate: base},
		{AccountCode: "706000", AccountName: "Prestations", Credit: 250, EntryDate: base},
		{AccountCode: "445571", AccountName: "TVA 20%", Credit: 50, EntryDate: base},
		// Outside the period, must be excluded.
		{AccountCode: "411000", AccountName: "Client - A", Debit: 120, EntryDate: base.AddDate(0, 2, 0)},
	}

	summary := Summarize(entries, base.AddDate(0, 0, -1), base.AddDate(0, 1, 0))

	if summary.Summary.TotalEntries != 3 {
		t.Fatalf("expected 3 entries in period, got %d", summary.Summary.TotalEntries)
	}
	if !summary.Summary.IsBalanced {
		t.Fatalf("expected balanced summary: %+v", summary.Summary)
	}
	acc := summary.Accounts["411000"]
	if acc.TotalDebit != 300 || acc.Balance != 300 || acc.EntriesCount != 1 {
		t.Fatalf("unexpected 411000 aggregate: %+v", acc)
	}
	if summary.Accounts["706000"].Balance != -250 {
		t.Fatalf("expected credit balance of -250, got %+v", summary.Accounts["706000"])
	}
}
