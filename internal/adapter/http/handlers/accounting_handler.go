package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	response "autopro_rental/internal/adapter/http/dto/response"
	"autopro_rental/internal/domain/accounting"
	"autopro_rental/internal/usecase"
	"autopro_rental/pkg"

	"github.com/gin-gonic/gin"
)

// dateLayout is the query-parameter date format for summary periods.
const dateLayout = "2006-01-02"

// exportContentTypes maps export formats to the MIME type and file extension
// served on download.
var exportContentTypes = map[string]struct {
	contentType string
	extension   string
}{
	accounting.FormatCSV:   {"text/csv; charset=utf-8", "csv"},
	accounting.FormatCiel:  {"text/plain; charset=utf-8", "txt"},
	accounting.FormatSage:  {"text/plain; charset=utf-8", "txt"},
	accounting.FormatCegid: {"text/plain; charset=utf-8", "txt"},
}

// AccountingHandler handles HTTP requests for the ledger, its summaries and
// the accounting-package exports.

type AccountingHandler struct {
	usecase usecase.IAccountingUseCase
}

func NewAccountingHandler(uc usecase.IAccountingUseCase) *AccountingHandler {
	return &AccountingHandler{usecase: uc}
}

// ListEntries returns the full ledger.
func (h *AccountingHandler) ListEntries(c *gin.Context) {
	entries, err := h.usecase.ListEntries(c.Request.Context())
	if err != nil {
		log.Printf("[accounting][handler] list failed err=%v", err)
		appErr := mapAccountingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromAccountingEntries(entries))
}

// Summary aggregates the ledger over the period in query (?start=YYYY-MM-DD&end=YYYY-MM-DD).
// An omitted period defaults to the current calendar month.
func (h *AccountingHandler) Summary(c *gin.Context) {
	start, end, err := resolvePeriod(c.Query("start"), c.Query("end"))
	if err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_PERIOD", "Period dates must use the YYYY-MM-DD format", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	summary, err := h.usecase.Summary(c.Request.Context(), start, end)
	if err != nil {
		log.Printf("[accounting][handler] summary failed start=%s end=%s err=%v", start, end, err)
		appErr := mapAccountingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Export serializes the ledger for the accounting package in path
// (csv, ciel, sage or cegid) and streams it as a download.
func (h *AccountingHandler) Export(c *gin.Context) {
	format := c.Param("format")
	log.Printf("[accounting][handler] export start format=%s", format)

	content, err := h.usecase.Export(c.Request.Context(), format)
	if err != nil {
		log.Printf("[accounting][handler] export failed format=%s err=%v", format, err)
		appErr := mapAccountingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	meta := exportContentTypes[format]
	filename := fmt.Sprintf("ecritures_%s.%s", time.Now().UTC().Format("20060102"), meta.extension)
	log.Printf("[accounting][handler] export success format=%s bytes=%d", format, len(content))

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, meta.contentType, []byte(content))
}

// resolvePeriod parses the optional query dates; both empty means the
// current calendar month.
func resolvePeriod(startRaw, endRaw string) (time.Time, time.Time, error) {
	if startRaw == "" && endRaw == "" {
		now := time.Now().UTC()
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, 0).Add(-time.Second), nil
	}

	start, err := time.Parse(dateLayout, startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := time.Parse(dateLayout, endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	// Make the end date inclusive.
	return start, end.AddDate(0, 0, 1).Add(-time.Second), nil
}

func mapAccountingError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidPeriod):
		return pkg.NewDomainErrorSimple("INVALID_PERIOD", "Period end cannot precede its start", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrUnknownExportFormat):
		return pkg.NewDomainErrorSimple("UNKNOWN_EXPORT_FORMAT", "Export format must be csv, ciel, sage or cegid", http.StatusBadRequest)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "Internal server error", err, http.StatusInternalServerError)
	}
}
