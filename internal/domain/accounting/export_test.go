package accounting

import (
	"strings"
	"testing"
	"time"

	"autopro_rental/internal/domain/entities"
)

func exportFixture() []entities.AccountingEntry {
	date := time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)
	return []entities.AccountingEntry{
		{
			EntryDate:   date,
			ClientID:    "cli-1",
			AccountCode: "411000",
			AccountName: "Client - Transports Morel",
			Debit:       300.00,
			Description: "Facture FACT000042 - Location véhicules",
			Reference:   "FACT000042",
		},
		{
			EntryDate:   date,
			ClientID:    "cli-1",
			AccountCode: "706000",
			AccountName: "Prestations de services - Location véhicules",
			Credit:      250.00,
			Description: "Facture FACT000042 - Vente HT",
			Reference:   "FACT000042",
		},
		{
			EntryDate:   date,
			ClientID:    "cli-1",
			AccountCode: "445571",
			AccountName: "TVA collectée 20%",
			Credit:      50.00,
			Description: "Facture FACT000042 - TVA 20%",
			Reference:   "FACT000042",
		},
	}
}

func splitLines(t *testing.T, out string) []string {
	t.Helper()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) == 0 {
		t.Fatalf("empty export output")
	}
	return lines
}

func TestExportCSV_Shape(t *testing.T) {
	entries := exportFixture()
	out, err := ExportCSV(entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := splitLines(t, out)
	if len(lines) != len(entries)+1 {
		t.Fatalf("expected %d lines (header+rows), got %d", len(entries)+1, len(lines))
	}
	if !strings.HasPrefix(lines[0], "Date;Compte;") {
		t.Fatalf("unexpected header: %s", lines[0])
	}

	// Every row's Montant column equals max(debit, credit) with a decimal comma.
	wantMontant := []string{"300,00", "250,00", "50,00"}
	wantSens := []string{"D", "C", "C"}
	for i, line := range lines[1:] {
		fields := strings.Split(line, ";")
		if len(fields) != 9 {
			t.Fatalf("expected 9 columns, got %d: %s", len(fields), line)
		}
		if fields[0] != "15/04/2025" {
			t.Fatalf("expected dd/mm/yyyy date, got %s", fields[0])
		}
		if fields[7] != wantMontant[i] {
			t.Fatalf("row %d: expected Montant %s, got %s", i, wantMontant[i], fields[7])
		}
		if fields[8] != wantSens[i] {
			t.Fatalf("row %d: expected Sens %s, got %s", i, wantSens[i], fields[8])
		}
	}

	// The absent side renders as "0,00".
	debitRow := strings.Split(lines[1], ";")
	if debitRow[5] != "300,00" || debitRow[6] != "0,00" {
		t.Fatalf("unexpected debit/credit rendering: %s", lines[1])
	}
}

func TestExportCiel_Layout(t *testing.T) {
	out, err := ExportCiel(exportFixture())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := splitLines(t, out)
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}

	fields := strings.Split(lines[1], "\t")
	if fields[0] != "15042025" {
		t.Fatalf("expected compact ddmmyyyy date, got %s", fields[0])
	}
	if fields[1] != "VTE" {
		t.Fatalf("expected fixed VTE journal, got %s", fields[1])
	}
	if got := []rune(fields[3]); len(got) > 30 {
		t.Fatalf("description not truncated to 30 chars: %q (%d)", fields[3], len(got))
	}
	// Ciel leaves the opposing amount blank rather than writing zero.
	if fields[4] != "300,00" || fields[5] != "" {
		t.Fatalf("unexpected amount columns: %q / %q", fields[4], fields[5])
	}
}

func TestExportSage_SensAndThirdParty(t *testing.T) {
	out, err := ExportSage(exportFixture())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := splitLines(t, out)
	debitRow := strings.Split(lines[1], ";")
	creditRow := strings.Split(lines[2], ";")

	if debitRow[4] != "1" || creditRow[4] != "2" {
		t.Fatalf("expected sens codes 1/2, got %s/%s", debitRow[4], creditRow[4])
	}
	// Client id fills Compte_tiers only on 411* rows.
	if debitRow[2] != "cli-1" {
		t.Fatalf("expected client id as third-party account, got %q", debitRow[2])
	}
	if creditRow[2] != "" {
		t.Fatalf("expected empty third-party account on sales row, got %q", creditRow[2])
	}
	// Due date mirrors the accounting date.
	if debitRow[0] != debitRow[7] {
		t.Fatalf("expected matching dates, got %s vs %s", debitRow[0], debitRow[7])
	}
}

func TestExportCegid_Layout(t *testing.T) {
	out, err := ExportCegid(exportFixture())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := splitLines(t, out)
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	fields := strings.Split(lines[2], ";")
	if fields[1] != "VEN" {
		t.Fatalf("expected fixed VEN journal, got %s", fields[1])
	}
	if fields[5] != "0,00" || fields[6] != "250,00" {
		t.Fatalf("unexpected debit/credit rendering: %s", lines[2])
	}
}
