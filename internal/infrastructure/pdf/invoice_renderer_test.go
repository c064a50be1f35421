package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"autopro_rental/internal/domain/entities"
)

func TestRenderInvoice(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	inv := entities.Invoice{
		ID:            "inv-1",
		InvoiceNumber: "FACT000001",
		InvoiceDate:   start,
		DueDate:       start.AddDate(0, 0, 30),
		Items: []entities.OrderItem{
			{VehicleID: "veh-1", Quantity: 1, DailyRate: 50, StartDate: start, EndDate: start.AddDate(0, 0, 4), TotalDays: 5, ItemTotalHT: 250},
		},
		OrderTotals: entities.OrderTotals{
			TotalHT:       250,
			TotalVAT:      50,
			TotalTTC:      300,
			DepositAmount: 200,
			DepositVAT:    40,
			GrandTotal:    540,
		},
		Status: entities.InvoiceStatusDraft,
	}
	client := entities.Client{
		CompanyName: "Transports Michaud",
		ContactName: "Élise Michaud",
		Address:     "12 rue de la République",
		PostalCode:  "69002",
		City:        "Lyon",
		VATRate:     20,
		VATNumber:   "FR43732829320",
	}
	settings := entities.DefaultSettings()
	items := []entities.InvoiceItemDetail{
		{Item: inv.Items[0], VehicleBrand: "Renault", VehicleModel: "Trafic", LicensePlate: "AB-123-CD"},
	}

	out, err := NewInvoiceRenderer().RenderInvoice(context.Background(), inv, client, settings, items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) == 0 {
		t.Fatalf("expected non-empty document")
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("expected a pdf header, got %q", out[:8])
	}
}
