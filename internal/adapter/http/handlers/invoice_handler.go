package handlers

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	request "autopro_rental/internal/adapter/http/dto/request"
	response "autopro_rental/internal/adapter/http/dto/response"
	"autopro_rental/internal/adapter/persistence/repository"
	"autopro_rental/internal/usecase"
	"autopro_rental/pkg"

	"github.com/gin-gonic/gin"
)

// InvoiceHandler handles HTTP requests for invoices and their lifecycle.

type InvoiceHandler struct {
	usecase usecase.IInvoiceUseCase
}

func NewInvoiceHandler(uc usecase.IInvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{usecase: uc}
}

// List returns all invoices.
func (h *InvoiceHandler) List(c *gin.Context) {
	invoices, err := h.usecase.List(c.Request.Context())
	if err != nil {
		log.Printf("[invoice][handler] list failed err=%v", err)
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromInvoices(invoices))
}

// GetByID returns one invoice.
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	invoice, err := h.usecase.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[invoice][handler] get failed invoice_id=%s err=%v", id, err)
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromInvoice(invoice))
}

// ListOverdue returns invoices past their due date and not settled.
func (h *InvoiceHandler) ListOverdue(c *gin.Context) {
	invoices, err := h.usecase.ListOverdue(c.Request.Context(), time.Now().UTC())
	if err != nil {
		log.Printf("[invoice][handler] list-overdue failed err=%v", err)
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromInvoices(invoices))
}

// MarkOverdue flips sent and partially paid invoices past due to overdue.
func (h *InvoiceHandler) MarkOverdue(c *gin.Context) {
	log.Printf("[invoice][handler] overdue sweep start")

	flipped, err := h.usecase.MarkOverdue(c.Request.Context(), time.Now().UTC())
	if err != nil {
		log.Printf("[invoice][handler] overdue sweep failed err=%v", err)
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[invoice][handler] overdue sweep done flipped=%d", flipped)

	c.JSON(http.StatusOK, gin.H{"marked_overdue": flipped})
}

// SendReminders emails overdue clients whose lateness hits a reminder period.
func (h *InvoiceHandler) SendReminders(c *gin.Context) {
	log.Printf("[invoice][handler] reminder sweep start")

	report, err := h.usecase.SendOverdueReminders(c.Request.Context(), time.Now().UTC())
	if err != nil {
		log.Printf("[invoice][handler] reminder sweep failed err=%v", err)
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[invoice][handler] reminder sweep done examined=%d sent=%d", report.Examined, report.Sent)

	c.JSON(http.StatusOK, report)
}

// GetPDF renders the invoice document on demand and streams it back.
func (h *InvoiceHandler) GetPDF(c *gin.Context) {
	id := c.Param("id")
	log.Printf("[invoice][handler] pdf start invoice_id=%s", id)

	invoice, err := h.usecase.GeneratePDF(c.Request.Context(), id)
	if err != nil {
		log.Printf("[invoice][handler] pdf failed invoice_id=%s err=%v", id, err)
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	pdf, err := base64.StdEncoding.DecodeString(invoice.PDFData)
	if err != nil {
		log.Printf("[invoice][handler] pdf decode failed invoice_id=%s err=%v", id, err)
		appErr := pkg.NewDomainError("PDF_DECODE_FAILED", "Stored document is corrupted", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[invoice][handler] pdf success invoice_id=%s bytes=%d", id, len(pdf))

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", invoice.InvoiceNumber))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// SendByEmail mails the invoice document to the client.
func (h *InvoiceHandler) SendByEmail(c *gin.Context) {
	id := c.Param("id")
	log.Printf("[invoice][handler] email start invoice_id=%s", id)

	sent, err := h.usecase.SendByEmail(c.Request.Context(), id)
	if err != nil {
		log.Printf("[invoice][handler] email failed invoice_id=%s err=%v", id, err)
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[invoice][handler] email success invoice_id=%s sent=%t", id, sent)

	c.JSON(http.StatusOK, gin.H{"sent": sent})
}

// MarkPaid settles the full remaining balance in one step.
func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	id := c.Param("id")

	var req request.MarkPaidRequest
	// Body is optional: an empty body means a bank transfer.
	_ = c.ShouldBindJSON(&req)
	log.Printf("[invoice][handler] mark-paid start invoice_id=%s method=%s", id, req.ResolveMethod())

	invoice, ledger, err := h.usecase.MarkPaid(c.Request.Context(), id, req.ResolveMethod())
	if err != nil {
		log.Printf("[invoice][handler] mark-paid failed invoice_id=%s err=%v", id, err)
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[invoice][handler] mark-paid success invoice_id=%s ledger_recorded=%t", id, ledger.Recorded())

	c.JSON(http.StatusOK, response.InvoiceSettlementResponse{
		Invoice:            response.FromInvoice(invoice),
		AccountingRecorded: ledger.Recorded(),
	})
}

// Cancel voids an invoice that is not already settled.
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	id := c.Param("id")
	log.Printf("[invoice][handler] cancel start invoice_id=%s", id)

	invoice, err := h.usecase.Cancel(c.Request.Context(), id)
	if err != nil {
		log.Printf("[invoice][handler] cancel failed invoice_id=%s err=%v", id, err)
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[invoice][handler] cancel success invoice_id=%s", id)

	c.JSON(http.StatusOK, response.FromInvoice(invoice))
}

// Dashboard returns the back-office landing counters.
func (h *InvoiceHandler) Dashboard(c *gin.Context) {
	summary, err := h.usecase.Dashboard(c.Request.Context())
	if err != nil {
		log.Printf("[invoice][handler] dashboard failed err=%v", err)
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, summary)
}

func mapInvoiceError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidInvoiceID):
		return pkg.NewDomainErrorSimple("INVALID_INVOICE_ID", "Invalid invoice id", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvoiceNotFound):
		return pkg.NewDomainErrorSimple("INVOICE_NOT_FOUND", "Invoice not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvoiceAlreadyPaid):
		return pkg.NewDomainErrorSimple("INVOICE_ALREADY_PAID", "Invoice is already settled", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvoiceNotCancellable):
		return pkg.NewDomainErrorSimple("INVOICE_NOT_CANCELLABLE", "Invoice cannot be cancelled in its current state", http.StatusConflict)
	case errors.Is(err, usecase.ErrClientMissingEmail):
		return pkg.NewDomainErrorSimple("CLIENT_MISSING_EMAIL", "Client has no email address on file", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrClientNotFound):
		return pkg.NewDomainErrorSimple("CLIENT_NOT_FOUND", "Client not found", http.StatusNotFound)
	case errors.Is(err, repository.ErrVersionConflict):
		return pkg.NewDomainErrorSimple("CONCURRENT_UPDATE", "Invoice was modified concurrently, retry the operation", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "Internal server error", err, http.StatusInternalServerError)
	}
}
