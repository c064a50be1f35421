package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"autopro_rental/internal/adapter/http/handlers/mocks"
	"autopro_rental/internal/domain/accounting"
	"autopro_rental/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestAccountingHandler_Summary(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("bad date format", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAccountingUseCase(ctrl)
		h := NewAccountingHandler(uc)

		r := gin.New()
		r.GET("/v1/accounting/summary", h.Summary)

		req := httptest.NewRequest(http.MethodGet, "/v1/accounting/summary?start=03/01/2025&end=03/31/2025", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("explicit period is inclusive of the end day", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAccountingUseCase(ctrl)
		h := NewAccountingHandler(uc)

		r := gin.New()
		r.GET("/v1/accounting/summary", h.Summary)

		uc.EXPECT().Summary(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, start, end time.Time) (accounting.JournalSummary, error) {
				if !start.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)) {
					t.Fatalf("unexpected start %v", start)
				}
				if end.Before(time.Date(2025, 3, 31, 23, 0, 0, 0, time.UTC)) {
					t.Fatalf("expected end to cover the last day, got %v", end)
				}
				return accounting.JournalSummary{
					Summary: accounting.SummaryTotals{TotalEntries: 4, TotalDebit: 300, TotalCredit: 300, IsBalanced: true},
				}, nil
			})

		req := httptest.NewRequest(http.MethodGet, "/v1/accounting/summary?start=2025-03-01&end=2025-03-31", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		summary, _ := body["summary"].(map[string]any)
		if summary["is_balanced"] != true {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestAccountingHandler_Export(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("csv download", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAccountingUseCase(ctrl)
		h := NewAccountingHandler(uc)

		r := gin.New()
		r.GET("/v1/accounting/export/:format", h.Export)

		uc.EXPECT().Export(gomock.Any(), "csv").Return("Date;Journal;Libellé écriture\n", nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/accounting/export/csv", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
			t.Fatalf("unexpected content type %q", ct)
		}
		if cd := w.Header().Get("Content-Disposition"); !strings.HasSuffix(cd, ".csv") {
			t.Fatalf("unexpected disposition %q", cd)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAccountingUseCase(ctrl)
		h := NewAccountingHandler(uc)

		r := gin.New()
		r.GET("/v1/accounting/export/:format", h.Export)

		uc.EXPECT().Export(gomock.Any(), "xml").Return("", usecase.ErrUnknownExportFormat)

		req := httptest.NewRequest(http.MethodGet, "/v1/accounting/export/xml", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}
