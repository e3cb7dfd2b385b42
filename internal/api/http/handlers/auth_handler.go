package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/api/dto"
	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/service"
	apperrors "github.com/SamirYadav48/interactive-helpdesk-ticket-system/pkg/util"
)

// AuthHandler exposes operator login.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	result, err := h.auth.Login(req.Operator, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LoginResponse{
		Operator:  result.Operator,
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	}})
}
