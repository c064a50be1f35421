package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	request "autopro_rental/internal/adapter/http/dto/request"
	response "autopro_rental/internal/adapter/http/dto/response"
	"autopro_rental/internal/adapter/http/middleware"
	"autopro_rental/internal/usecase"
	"autopro_rental/pkg"

	"github.com/gin-gonic/gin"
)

// OrderHandler handles HTTP requests for rental orders.

type OrderHandler struct {
	usecase usecase.IOrderUseCase
}

func NewOrderHandler(uc usecase.IOrderUseCase) *OrderHandler {
	return &OrderHandler{usecase: uc}
}

// Create builds an order with its invoice and ledger entries in one step.
func (h *OrderHandler) Create(c *gin.Context) {
	var req request.OrderCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	createdBy := c.GetString(middleware.ContextUsernameKey)
	log.Printf("[order][handler] create start client_id=%s items=%d", req.ClientID, len(req.Items))

	order, invoice, ledger, err := h.usecase.CreateOrder(c.Request.Context(), req.ToCommand(createdBy))
	if err != nil {
		log.Printf("[order][handler] create failed client_id=%s err=%v", req.ClientID, err)
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[order][handler] create success order_id=%s number=%s invoice=%s ledger_recorded=%t",
		order.ID, order.OrderNumber, invoice.InvoiceNumber, ledger.Recorded())

	c.JSON(http.StatusCreated, response.FromOrderCreation(order, invoice, ledger))
}

// List returns all orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.usecase.List(c.Request.Context())
	if err != nil {
		log.Printf("[order][handler] list failed err=%v", err)
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromOrders(orders))
}

// GetByID returns one order.
func (h *OrderHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	order, err := h.usecase.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[order][handler] get failed order_id=%s err=%v", id, err)
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromOrder(order))
}

// RunRenewals sweeps renewable items whose window has elapsed and spawns
// follow-on orders for the settled ones.
func (h *OrderHandler) RunRenewals(c *gin.Context) {
	log.Printf("[order][handler] renewal sweep start")

	report, err := h.usecase.RenewDueOrders(c.Request.Context(), time.Now().UTC())
	if err != nil {
		log.Printf("[order][handler] renewal sweep failed err=%v", err)
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[order][handler] renewal sweep done scanned=%d renewed=%d blocked=%d failed=%d",
		report.Scanned, report.Renewed, report.Blocked, report.Failed)

	c.JSON(http.StatusOK, report)
}

func mapOrderError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidClientID), errors.Is(err, usecase.ErrEmptyOrder),
		errors.Is(err, usecase.ErrInvalidOrderItem), errors.Is(err, usecase.ErrInvalidDeposit):
		return pkg.NewDomainErrorSimple("INVALID_ORDER_INPUT", "Invalid order payload", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidOrderID):
		return pkg.NewDomainErrorSimple("INVALID_ORDER_ID", "Invalid order id", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrClientNotFound):
		return pkg.NewDomainErrorSimple("CLIENT_NOT_FOUND", "Client not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrVehicleNotFound):
		return pkg.NewDomainErrorSimple("VEHICLE_NOT_FOUND", "Vehicle not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "Internal server error", err, http.StatusInternalServerError)
	}
}
