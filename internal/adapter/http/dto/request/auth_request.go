package request

import (
	"strings"

	"autopro_rental/internal/usecase"
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name"`
}

func (r RegisterRequest) ToCommand() usecase.RegisterCommand {
	return usecase.RegisterCommand{
		Username: strings.TrimSpace(r.Username),
		Email:    strings.TrimSpace(r.Email),
		Password: r.Password,
		FullName: strings.TrimSpace(r.FullName),
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
