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

// VehicleHandler handles HTTP requests for the rental fleet.

type VehicleHandler struct {
	usecase usecase.IVehicleUseCase
}

func NewVehicleHandler(uc usecase.IVehicleUseCase) *VehicleHandler {
	return &VehicleHandler{usecase: uc}
}

// Create registers a new vehicle.
func (h *VehicleHandler) Create(c *gin.Context) {
	var req request.VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	vehicle, err := h.usecase.Create(c.Request.Context(), req.ToCommand())
	if err != nil {
		log.Printf("[vehicle][handler] create failed plate=%s err=%v", req.LicensePlate, err)
		appErr := mapVehicleError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[vehicle][handler] create success vehicle_id=%s plate=%s", vehicle.ID, vehicle.LicensePlate)

	c.JSON(http.StatusCreated, response.FromVehicle(vehicle))
}

// List returns the fleet.
func (h *VehicleHandler) List(c *gin.Context) {
	vehicles, err := h.usecase.List(c.Request.Context())
	if err != nil {
		log.Printf("[vehicle][handler] list failed err=%v", err)
		appErr := mapVehicleError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromVehicles(vehicles))
}

// GetByID returns one vehicle.
func (h *VehicleHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	vehicle, err := h.usecase.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[vehicle][handler] get failed vehicle_id=%s err=%v", id, err)
		appErr := mapVehicleError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromVehicle(vehicle))
}

// Update replaces a vehicle's editable fields.
func (h *VehicleHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req request.VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	current, err := h.usecase.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[vehicle][handler] update load failed vehicle_id=%s err=%v", id, err)
		appErr := mapVehicleError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	updated, err := h.usecase.Update(c.Request.Context(), req.ApplyTo(current))
	if err != nil {
		log.Printf("[vehicle][handler] update failed vehicle_id=%s err=%v", id, err)
		appErr := mapVehicleError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[vehicle][handler] update success vehicle_id=%s", id)

	c.JSON(http.StatusOK, response.FromVehicle(updated))
}

func mapVehicleError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidLicensePlate), errors.Is(err, usecase.ErrInvalidDailyRate):
		return pkg.NewDomainErrorSimple("INVALID_VEHICLE_INPUT", "Invalid vehicle payload", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidVehicleID):
		return pkg.NewDomainErrorSimple("INVALID_VEHICLE_ID", "Invalid vehicle id", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrVehicleNotFound):
		return pkg.NewDomainErrorSimple("VEHICLE_NOT_FOUND", "Vehicle not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "Internal server error", err, http.StatusInternalServerError)
	}
}
