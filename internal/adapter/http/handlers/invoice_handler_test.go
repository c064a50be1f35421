package handlers

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"autopro_rental/internal/adapter/http/handlers/mocks"
	"autopro_rental/internal/domain/entities"
	"autopro_rental/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestInvoiceHandler_GetPDF(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("streams the decoded document", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		h := NewInvoiceHandler(uc)

		r := gin.New()
		r.GET("/v1/invoices/:id/pdf", h.GetPDF)

		pdf := []byte("%PDF-1.4 fake")
		uc.EXPECT().GeneratePDF(gomock.Any(), "inv-1").Return(entities.Invoice{
			ID:            "inv-1",
			InvoiceNumber: "FACT000003",
			Status:        entities.InvoiceStatusSent,
			PDFData:       base64.StdEncoding.EncodeToString(pdf),
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/invoices/inv-1/pdf", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if got := w.Header().Get("Content-Type"); got != "application/pdf" {
			t.Fatalf("unexpected content type %q", got)
		}
		if got := w.Header().Get("Content-Disposition"); got != "attachment; filename=FACT000003.pdf" {
			t.Fatalf("unexpected disposition %q", got)
		}
		if !bytes.Equal(w.Body.Bytes(), pdf) {
			t.Fatalf("unexpected body: %q", w.Body.String())
		}
	})

	t.Run("unknown invoice", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		h := NewInvoiceHandler(uc)

		r := gin.New()
		r.GET("/v1/invoices/:id/pdf", h.GetPDF)

		uc.EXPECT().GeneratePDF(gomock.Any(), "missing").
			Return(entities.Invoice{}, usecase.ErrInvoiceNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/invoices/missing/pdf", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestInvoiceHandler_MarkPaid(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("defaults to bank transfer on empty body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		h := NewInvoiceHandler(uc)

		r := gin.New()
		r.POST("/v1/invoices/:id/mark-paid", h.MarkPaid)

		uc.EXPECT().MarkPaid(gomock.Any(), "inv-1", entities.PaymentMethodBank).
			Return(entities.Invoice{
				ID:         "inv-1",
				Status:     entities.InvoiceStatusPaid,
				AmountPaid: 540,
			}, usecase.LedgerOutcome{Entries: []entities.AccountingEntry{{ID: "e1"}}}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/invoices/inv-1/mark-paid", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["accounting_recorded"] != true {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
		invoice, _ := body["invoice"].(map[string]any)
		if invoice["status"] != "paid" {
			t.Fatalf("unexpected invoice: %s", w.Body.String())
		}
	})

	t.Run("honors the method in body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		h := NewInvoiceHandler(uc)

		r := gin.New()
		r.POST("/v1/invoices/:id/mark-paid", h.MarkPaid)

		uc.EXPECT().MarkPaid(gomock.Any(), "inv-1", entities.PaymentMethodCash).
			Return(entities.Invoice{ID: "inv-1", Status: entities.InvoiceStatusPaid}, usecase.LedgerOutcome{}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/invoices/inv-1/mark-paid",
			bytes.NewBufferString(`{"payment_method":"cash"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("already settled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		h := NewInvoiceHandler(uc)

		r := gin.New()
		r.POST("/v1/invoices/:id/mark-paid", h.MarkPaid)

		uc.EXPECT().MarkPaid(gomock.Any(), "inv-1", entities.PaymentMethodBank).
			Return(entities.Invoice{}, usecase.LedgerOutcome{}, usecase.ErrInvoiceAlreadyPaid)

		req := httptest.NewRequest(http.MethodPost, "/v1/invoices/inv-1/mark-paid", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})
}

func TestInvoiceHandler_MarkOverdue(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIInvoiceUseCase(ctrl)
	h := NewInvoiceHandler(uc)

	r := gin.New()
	r.POST("/v1/invoices/mark-overdue", h.MarkOverdue)

	uc.EXPECT().MarkOverdue(gomock.Any(), gomock.AssignableToTypeOf(time.Time{})).Return(3, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/invoices/mark-overdue", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["marked_overdue"] != float64(3) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestInvoiceHandler_Dashboard(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIInvoiceUseCase(ctrl)
	h := NewInvoiceHandler(uc)

	r := gin.New()
	r.GET("/v1/dashboard", h.Dashboard)

	uc.EXPECT().Dashboard(gomock.Any()).Return(usecase.DashboardSummary{
		TotalClients:    12,
		TotalVehicles:   8,
		ActiveOrders:    5,
		OverdueInvoices: 3,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["total_clients"] != float64(12) || body["overdue_invoices"] != float64(3) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}
