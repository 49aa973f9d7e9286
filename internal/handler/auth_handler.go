package handler

import (
	"go-erp-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a user account
// POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req service.RegisterRequest
	if err := decodeStrict(c.Body(), &req); err != nil {
		return err
	}

	if _, err := h.authService.Register(c.UserContext(), req); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  true,
		"message": "User registered successfully",
	})
}

// Login handles user authentication
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := decodeStrict(c.Body(), &req); err != nil {
		return err
	}

	response, err := h.authService.Login(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":     true,
		"message":    "Login successful",
		"token":      response.Token,
		"expires_at": response.ExpiresAt,
		"user":       response.User,
	})
}

// Logout revokes every token of the current user
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	userID := actorID(c)
	if userID == nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}

	if err := h.authService.Logout(c.UserContext(), *userID); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"status": true, "message": "Logged out successfully"})
}
