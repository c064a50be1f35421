package handlers

import (
	"errors"
	"log"
	"net/http"

	request "autopro_rental/internal/adapter/http/dto/request"
	response "autopro_rental/internal/adapter/http/dto/response"
	"autopro_rental/internal/adapter/persistence/repository"
	"autopro_rental/internal/usecase"
	"autopro_rental/pkg"

	"github.com/gin-gonic/gin"
)

// PaymentHandler handles HTTP requests for the invoice payment ledger.

type PaymentHandler struct {
	usecase usecase.IPaymentUseCase
}

func NewPaymentHandler(uc usecase.IPaymentUseCase) *PaymentHandler {
	return &PaymentHandler{usecase: uc}
}

// Create registers a settlement against the invoice in path.
func (h *PaymentHandler) Create(c *gin.Context) {
	invoiceID := c.Param("id")

	var req request.PaymentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] create start invoice_id=%s amount=%.2f", invoiceID, req.Amount)

	payment, err := h.usecase.AddPayment(c.Request.Context(), invoiceID, req.ToCommand())
	if err != nil {
		log.Printf("[payment][handler] create failed invoice_id=%s err=%v", invoiceID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] create success invoice_id=%s payment_id=%s", invoiceID, payment.ID)

	c.JSON(http.StatusCreated, response.FromPayment(payment))
}

// List returns the payments of the invoice in path, oldest first.
func (h *PaymentHandler) List(c *gin.Context) {
	invoiceID := c.Param("id")

	payments, err := h.usecase.ListPayments(c.Request.Context(), invoiceID)
	if err != nil {
		log.Printf("[payment][handler] list failed invoice_id=%s err=%v", invoiceID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayments(payments))
}

// Delete reverses a payment and returns the recomputed invoice.
func (h *PaymentHandler) Delete(c *gin.Context) {
	paymentID := c.Param("id")
	log.Printf("[payment][handler] delete start payment_id=%s", paymentID)

	invoice, err := h.usecase.DeletePayment(c.Request.Context(), paymentID)
	if err != nil {
		log.Printf("[payment][handler] delete failed payment_id=%s err=%v", paymentID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] delete success payment_id=%s invoice_id=%s status=%s",
		paymentID, invoice.ID, invoice.Status)

	c.JSON(http.StatusOK, response.FromInvoice(invoice))
}

func mapPaymentError(err error) *pkg.AppError {
	var overpayment *usecase.OverpaymentError
	switch {
	case errors.As(err, &overpayment):
		return pkg.NewDomainErrorSimple("OVERPAYMENT", overpayment.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrInvalidInvoiceID), errors.Is(err, usecase.ErrInvalidPaymentID),
		errors.Is(err, usecase.ErrInvalidPaymentAmount), errors.Is(err, usecase.ErrInvalidPaymentMethod):
		return pkg.NewDomainErrorSimple("INVALID_PAYMENT_INPUT", "Invalid payment payload", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvoiceNotFound):
		return pkg.NewDomainErrorSimple("INVOICE_NOT_FOUND", "Invoice not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	case errors.Is(err, repository.ErrVersionConflict):
		return pkg.NewDomainErrorSimple("CONCURRENT_UPDATE", "Invoice was modified concurrently, retry the operation", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "Internal server error", err, http.StatusInternalServerError)
	}
}
