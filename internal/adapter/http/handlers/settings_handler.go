package handlers

import (
	"log"
	"net/http"

	request "autopro_rental/internal/adapter/http/dto/request"
	"autopro_rental/internal/usecase"
	"autopro_rental/pkg"

	"github.com/gin-gonic/gin"
)

// SettingsHandler handles the single back-office configuration document.

type SettingsHandler struct {
	usecase usecase.ISettingsUseCase
}

func NewSettingsHandler(uc usecase.ISettingsUseCase) *SettingsHandler {
	return &SettingsHandler{usecase: uc}
}

// Get returns the configuration, creating the defaults on first access.
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.usecase.Get(c.Request.Context())
	if err != nil {
		log.Printf("[settings][handler] get failed err=%v", err)
		appErr := pkg.NewDomainError("INTERNAL_ERROR", "Internal server error", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, settings)
}

// Update replaces the configuration document.
func (h *SettingsHandler) Update(c *gin.Context) {
	var req request.SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	settings, err := h.usecase.Update(c.Request.Context(), req.ToEntity())
	if err != nil {
		log.Printf("[settings][handler] update failed err=%v", err)
		appErr := pkg.NewDomainError("INTERNAL_ERROR", "Internal server error", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[settings][handler] update success")

	c.JSON(http.StatusOK, settings)
}
