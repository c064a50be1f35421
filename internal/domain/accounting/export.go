package accounting

import (
	"encoding/csv"
	"strconv"
	"strings"

	"autopro_rental/internal/domain/entities"
)

// Export formats understood by the back office. CSV is the generic layout;
// the others target specific French bookkeeping tools.
const (
	FormatCSV   = "csv"
	FormatCiel  = "ciel"
	FormatSage  = "sage"
	FormatCegid = "cegid"
)

// frAmount renders a monetary value with the French decimal comma, two fixed
// places.
func frAmount(v float64) string {
	return strings.Replace(strconv.FormatFloat(v, 'f', 2, 64), ".", ",", 1)
}

// frAmountOrZero renders the value when positive, "0,00" otherwise.
func frAmountOrZero(v float64) string {
	if v > 0 {
		return frAmount(v)
	}
	return "0,00"
}

// frAmountOrBlank renders the value when positive, empty otherwise. Ciel
// leaves the opposing column blank instead of writing zero.
func frAmountOrBlank(v float64) string {
	if v > 0 {
		return frAmount(v)
	}
	return ""
}

// ExportCSV serializes entries in the generic semicolon-delimited layout
// accepted by most French accounting packages.
func ExportCSV(entries []entities.AccountingEntry) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	w.Comma = ';'

	if err := w.Write([]string{"Date", "Compte", "Libellé compte", "Référence", "Libellé écriture", "Débit", "Crédit", "Montant", "Sens"}); err != nil {
		return "", err
	}

	for _, e := range entries {
		sens := "C"
		if e.IsDebit() {
			sens = "D"
		}
		record := []string{
			e.EntryDate.Format("02/01/2006"),
			e.AccountCode,
			e.AccountName,
			e.Reference,
			e.Description,
			frAmountOrZero(e.Debit),
			frAmountOrZero(e.Credit),
			frAmount(e.Amount()),
			sens,
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}

	w.Flush()
	return sb.String(), w.Error()
}

// ExportCiel serializes entries for CIEL Compta: tab-delimited, compact
// ddmmyyyy dates, fixed sales journal, and a 30-character description limit.
func ExportCiel(entries []entities.AccountingEntry) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	w.Comma = '\t'

	if err := w.Write([]string{"Date", "Journal", "Compte", "Libellé", "Débit", "Crédit", "Numéro pièce"}); err != nil {
		return "", err
	}

	for _, e := range entries {
		desc := e.Description
		if r := []rune(desc); len(r) > 30 {
			desc = string(r[:30])
		}
		record := []string{
			e.EntryDate.Format("02012006"),
			"VTE",
			e.AccountCode,
			desc,
			frAmountOrBlank(e.Debit),
			frAmountOrBlank(e.Credit),
			e.Reference,
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}

	w.Flush()
	return sb.String(), w.Error()
}

// ExportSage serializes entries for SAGE: single-amount rows with a numeric
// direction code (1 debit, 2 credit), the client id as third-party account on
// 411* rows, and a due date mirroring the accounting date.
func ExportSage(entries []entities.AccountingEntry) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	w.Comma = ';'

	if err := w.Write([]string{"Date_comptable", "Compte_general", "Compte_tiers", "Libelle", "Sens", "Montant", "Reference", "Date_echeance"}); err != nil {
		return "", err
	}

	for _, e := range entries {
		sens := "2"
		if e.IsDebit() {
			sens = "1"
		}
		tiers := ""
		if strings.HasPrefix(e.AccountCode, "411") {
			tiers = e.ClientID
		}
		accountingDate := e.EntryDate.Format("02/01/2006")
		record := []string{
			accountingDate,
			e.AccountCode,
			tiers,
			e.Description,
			sens,
			frAmount(e.Amount()),
			e.Reference,
			accountingDate,
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}

	w.Flush()
	return sb.String(), w.Error()
}

// ExportCegid serializes entries for CEGID's CSV import layout.
func ExportCegid(entries []entities.AccountingEntry) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	w.Comma = ';'

	if err := w.Write([]string{"Date", "Code_journal", "Numero_compte", "Libelle_compte", "Libelle_ecriture", "Montant_debit", "Montant_credit", "Numero_piece"}); err != nil {
		return "", err
	}

	for _, e := range entries {
		record := []string{
			e.EntryDate.Format("02/01/2006"),
			"VEN",
			e.AccountCode,
			e.AccountName,
			e.Description,
			frAmountOrZero(e.Debit),
			frAmountOrZero(e.Credit),
			e.Reference,
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}

	w.Flush()
	return sb.String(), w.Error()
}
