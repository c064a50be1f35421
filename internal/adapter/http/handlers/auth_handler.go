package handlers

import (
	"errors"
	"log"
	"net/http"

	request "autopro_rental/internal/adapter/http/dto/request"
	response "autopro_rental/internal/adapter/http/dto/response"
	"autopro_rental/internal/adapter/http/middleware"
	"autopro_rental/internal/usecase"
	"autopro_rental/pkg"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles operator registration and login.

type AuthHandler struct {
	usecase usecase.IAuthUseCase
}

func NewAuthHandler(uc usecase.IAuthUseCase) *AuthHandler {
	return &AuthHandler{usecase: uc}
}

// Register creates an operator account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	user, err := h.usecase.Register(c.Request.Context(), req.ToCommand())
	if err != nil {
		log.Printf("[auth][handler] register failed username=%s err=%v", req.Username, err)
		appErr := mapAuthError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[auth][handler] register success user_id=%s username=%s", user.ID, user.Username)

	c.JSON(http.StatusCreated, response.FromUser(user))
}

// Login checks credentials and issues a signed token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	user, err := h.usecase.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		log.Printf("[auth][handler] login failed username=%s err=%v", req.Username, err)
		appErr := mapAuthError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	token, err := middleware.GenerateJWT(user.ID, user.Username)
	if err != nil {
		log.Printf("[auth][handler] token signing failed user_id=%s err=%v", user.ID, err)
		appErr := pkg.NewDomainError("TOKEN_SIGNING_FAILED", "Could not issue token", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[auth][handler] login success user_id=%s username=%s", user.ID, user.Username)

	c.JSON(http.StatusOK, response.TokenResponse{Token: token, User: response.FromUser(user)})
}

// Me returns the authenticated operator's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)

	user, err := h.usecase.GetByID(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[auth][handler] me failed user_id=%s err=%v", userID, err)
		appErr := mapAuthError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromUser(user))
}

func mapAuthError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidUserPayload):
		return pkg.NewDomainErrorSimple("INVALID_USER_INPUT", "Username, email and password are required", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrUsernameTaken):
		return pkg.NewDomainErrorSimple("USERNAME_TAKEN", "Username is already in use", http.StatusConflict)
	case errors.Is(err, usecase.ErrEmailTaken):
		return pkg.NewDomainErrorSimple("EMAIL_TAKEN", "Email is already in use", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return pkg.NewDomainErrorSimple("INVALID_CREDENTIALS", "Invalid username or password", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrUserNotFound):
		return pkg.NewDomainErrorSimple("USER_NOT_FOUND", "User not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "Internal server error", err, http.StatusInternalServerError)
	}
}
