package handlers

import (
	"errors"
	"log"
	"net/http"

	request "autopro_rental/internal/adapter/http/dto/request"
	response "autopro_rental/internal/adapter/http/dto/response"
	"autopro_rental/internal/usecase"
	"autopro_rental/pkg"

	"github.com/gin-gonic/gin"
)

// ClientHandler handles HTTP requests for renting companies.

type ClientHandler struct {
	usecase usecase.IClientUseCase
}

func NewClientHandler(uc usecase.IClientUseCase) *ClientHandler {
	return &ClientHandler{usecase: uc}
}

// Create registers a new client.
func (h *ClientHandler) Create(c *gin.Context) {
	var req request.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	client, err := h.usecase.Create(c.Request.Context(), req.ToCommand())
	if err != nil {
		log.Printf("[client][handler] create failed company=%s err=%v", req.CompanyName, err)
		appErr := mapClientError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[client][handler] create success client_id=%s company=%s", client.ID, client.CompanyName)

	c.JSON(http.StatusCreated, response.FromClient(client))
}

// List returns the active clients.
func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.usecase.List(c.Request.Context())
	if err != nil {
		log.Printf("[client][handler] list failed err=%v", err)
		appErr := mapClientError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromClients(clients))
}

// GetByID returns one client.
func (h *ClientHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	client, err := h.usecase.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[client][handler] get failed client_id=%s err=%v", id, err)
		appErr := mapClientError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromClient(client))
}

// Update replaces a client's editable fields.
func (h *ClientHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req request.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	current, err := h.usecase.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[client][handler] update load failed client_id=%s err=%v", id, err)
		appErr := mapClientError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	updated, err := h.usecase.Update(c.Request.Context(), req.ApplyTo(current))
	if err != nil {
		log.Printf("[client][handler] update failed client_id=%s err=%v", id, err)
		appErr := mapClientError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[client][handler] update success client_id=%s", id)

	c.JSON(http.StatusOK, response.FromClient(updated))
}

// Deactivate soft-deletes a client.
func (h *ClientHandler) Deactivate(c *gin.Context) {
	id := c.Param("id")

	if err := h.usecase.Deactivate(c.Request.Context(), id); err != nil {
		log.Printf("[client][handler] deactivate failed client_id=%s err=%v", id, err)
		appErr := mapClientError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[client][handler] deactivate success client_id=%s", id)

	c.Status(http.StatusNoContent)
}

// LookupCompany queries the business registry with a SIREN or SIRET.
func (h *ClientHandler) LookupCompany(c *gin.Context) {
	identifier := c.Param("identifier")
	log.Printf("[client][handler] registry lookup start identifier=%s", identifier)

	info, err := h.usecase.LookupCompany(c.Request.Context(), identifier)
	if err != nil {
		log.Printf("[client][handler] registry lookup failed identifier=%s err=%v", identifier, err)
		appErr := mapClientError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, info)
}

func mapClientError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidCompanyName), errors.Is(err, usecase.ErrInvalidVATRate):
		return pkg.NewDomainErrorSimple("INVALID_CLIENT_INPUT", "Invalid client payload", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidClientID):
		return pkg.NewDomainErrorSimple("INVALID_CLIENT_ID", "Invalid client id", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrClientNotFound):
		return pkg.NewDomainErrorSimple("CLIENT_NOT_FOUND", "Client not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidIdentifier):
		return pkg.NewDomainErrorSimple("INVALID_IDENTIFIER", "Identifier must be a 9-digit SIREN or a 14-digit SIRET", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrCompanyNotFound):
		return pkg.NewDomainErrorSimple("COMPANY_NOT_FOUND", "No registered company matches this identifier", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "Internal server error", err, http.StatusInternalServerError)
	}
}
