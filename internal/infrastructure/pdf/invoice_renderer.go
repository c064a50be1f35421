package pdf

import (
	"bytes"
	"context"
	"fmt"

	"autopro_rental/internal/domain/entities"
	"autopro_rental/internal/usecase/interfaces"

	"github.com/go-pdf/fpdf"
)

// InvoiceRenderer typesets invoices as A4 PDF documents.

type InvoiceRenderer struct{}

var _ interfaces.IPDFRenderer = (*InvoiceRenderer)(nil)

func NewInvoiceRenderer() *InvoiceRenderer {
	return &InvoiceRenderer{}
}

// RenderInvoice lays the invoice out as: title, company and client blocks,
// invoice metadata, one line per rented vehicle, then the totals column.
func (r *InvoiceRenderer) RenderInvoice(_ context.Context, inv entities.Invoice, client entities.Client, settings entities.Settings, items []entities.InvoiceItemDetail) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetAutoPageBreak(true, 20)
	doc.AddPage()

	// Title.
	doc.SetFont("Helvetica", "B", 24)
	doc.SetTextColor(37, 99, 235)
	doc.CellFormat(0, 12, "FACTURE", "", 1, "C", false, 0, "")
	doc.Ln(6)
	doc.SetTextColor(55, 65, 81)

	// Company block on the left, client block on the right.
	companyName := settings.CompanyName
	if companyName == "" {
		companyName = "AutoPro Rental"
	}
	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(95, 6, tr(companyName), "", 0, "L", false, 0, "")
	doc.CellFormat(95, 6, tr("FACTURÉ À :"), "", 1, "L", false, 0, "")

	doc.SetFont("Helvetica", "", 10)
	left := []string{
		settings.CompanyAddress,
		"Tél : " + settings.CompanyPhone,
		"Email : " + settings.CompanyEmail,
	}
	right := []string{
		client.CompanyName,
		client.ContactName,
		client.Address,
		fmt.Sprintf("%s %s", client.PostalCode, client.City),
	}
	if client.VATNumber != "" {
		right = append(right, "N° TVA : "+client.VATNumber)
	}
	for i := 0; i < len(left) || i < len(right); i++ {
		var l, rr string
		if i < len(left) {
			l = left[i]
		}
		if i < len(right) {
			rr = right[i]
		}
		doc.CellFormat(95, 5, tr(l), "", 0, "L", false, 0, "")
		doc.CellFormat(95, 5, tr(rr), "", 1, "L", false, 0, "")
	}
	doc.Ln(8)

	// Invoice metadata.
	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(0, 5, tr("Facture n° "+inv.InvoiceNumber), "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 5, "Date de facturation : "+inv.InvoiceDate.Format("02/01/2006"), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 5, tr("Date d'échéance : "+inv.DueDate.Format("02/01/2006")), "", 1, "L", false, 0, "")
	doc.Ln(6)

	// Items table.
	doc.SetFont("Helvetica", "B", 10)
	doc.SetFillColor(37, 99, 235)
	doc.SetTextColor(255, 255, 255)
	doc.CellFormat(90, 8, "Description", "1", 0, "L", true, 0, "")
	doc.CellFormat(25, 8, tr("Quantité"), "1", 0, "C", true, 0, "")
	doc.CellFormat(35, 8, "Prix unitaire", "1", 0, "R", true, 0, "")
	doc.CellFormat(35, 8, "Total HT", "1", 1, "R", true, 0, "")

	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(55, 65, 81)
	for _, detail := range items {
		it := detail.Item
		desc := fmt.Sprintf("Location %s %s (%s) du %s au %s",
			detail.VehicleBrand, detail.VehicleModel, detail.LicensePlate,
			it.StartDate.Format("02/01/2006"), it.EndDate.Format("02/01/2006"))
		doc.CellFormat(90, 8, tr(desc), "1", 0, "L", false, 0, "")
		doc.CellFormat(25, 8, fmt.Sprintf("%d x %d j", it.Quantity, it.TotalDays), "1", 0, "C", false, 0, "")
		doc.CellFormat(35, 8, tr(fmt.Sprintf("%.2f €/j", it.DailyRate)), "1", 0, "R", false, 0, "")
		doc.CellFormat(35, 8, tr(fmt.Sprintf("%.2f €", it.ItemTotalHT)), "1", 1, "R", false, 0, "")
	}
	doc.Ln(4)

	// Totals column, deposit rows only when a deposit exists.
	writeTotal := func(label string, amount float64, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		doc.SetFont("Helvetica", style, 10)
		doc.CellFormat(115, 7, "", "", 0, "L", false, 0, "")
		doc.CellFormat(35, 7, tr(label), "", 0, "R", false, 0, "")
		doc.CellFormat(35, 7, tr(fmt.Sprintf("%.2f €", amount)), "", 1, "R", false, 0, "")
	}
	writeTotal("Total HT :", inv.TotalHT, false)
	writeTotal(fmt.Sprintf("TVA (%.1f%%) :", client.VATRate), inv.TotalVAT, false)
	writeTotal("Total TTC :", inv.TotalTTC, false)
	if inv.DepositAmount > 0 {
		writeTotal("Caution HT :", inv.DepositAmount, false)
		writeTotal("TVA caution :", inv.DepositVAT, false)
	}
	writeTotal("Total à payer :", inv.GrandTotal, true)
	doc.Ln(8)

	// Payment terms.
	doc.SetFont("Helvetica", "I", 9)
	doc.MultiCell(0, 5, tr(fmt.Sprintf(
		"Paiement à réception, au plus tard le %s. "+
			"Pénalités de retard : trois fois le taux d'intérêt légal. "+
			"Indemnité forfaitaire pour frais de recouvrement : 40 €.",
		inv.DueDate.Format("02/01/2006"))), "", "L", false)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}
