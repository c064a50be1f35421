package response

import (
	"testing"
	"time"

	"autopro_rental/internal/domain/entities"
)

func TestFromInvoice(t *testing.T) {
	now := time.Now().UTC()
	paid := now.Add(-time.Hour)
	inv := entities.Invoice{
		ID:            "inv-1",
		InvoiceNumber: "FACT000007",
		OrderID:       "ord-1",
		ClientID:      "cli-1",
		InvoiceDate:   now,
		DueDate:       now.AddDate(0, 0, 30),
		Items: []entities.OrderItem{
			{VehicleID: "veh-1", Quantity: 1, DailyRate: 50, TotalDays: 5, ItemTotalHT: 250},
		},
		OrderTotals: entities.OrderTotals{
			TotalHT:    250,
			TotalVAT:   50,
			TotalTTC:   300,
			GrandTotal: 300,
		},
		Status:          entities.InvoiceStatusPaid,
		AmountPaid:      300,
		RemainingAmount: 0,
		PaymentDate:     &paid,
		PDFData:         "JVBERi0=",
		CreatedAt:       now,
	}

	res := FromInvoice(inv)
	if res.ID != "inv-1" || res.InvoiceNumber != "FACT000007" {
		t.Fatalf("unexpected identity: %+v", res)
	}
	if res.Status != "paid" || res.AmountPaid != 300 || res.RemainingAmount != 0 {
		t.Fatalf("unexpected settlement fields: %+v", res)
	}
	if !res.HasPDF {
		t.Fatalf("expected has_pdf true when pdf data is stored")
	}
	if res.PaymentDate == nil || !res.PaymentDate.Equal(paid) {
		t.Fatalf("unexpected payment date: %+v", res.PaymentDate)
	}
	if len(res.Items) != 1 || res.Items[0].ItemTotalHT != 250 {
		t.Fatalf("unexpected items: %+v", res.Items)
	}
}

func TestFromInvoiceWithoutPDF(t *testing.T) {
	res := FromInvoice(entities.Invoice{ID: "inv-2", Status: entities.InvoiceStatusDraft})
	if res.HasPDF {
		t.Fatalf("expected has_pdf false for draft without pdf data")
	}
	if res.PaymentDate != nil {
		t.Fatalf("expected nil payment date, got %v", res.PaymentDate)
	}
}
