package handler

import (
	"go-erp-api/internal/apperrors"
	"go-erp-api/internal/service"
	"go-erp-api/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetProfile returns the signed-in user
// GET /api/auth/me
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	userID := actorID(c)
	if userID == nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}

	user, err := h.userService.GetUserByID(c.UserContext(), userID.String())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": true, "data": user})
}

// GetUsers returns all users
// GET /api/users
func (h *UserHandler) GetUsers(c *fiber.Ctx) error {
	users, err := h.userService.GetAllUsers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": true, "data": users})
}

// GetUser returns a single user by ID
// GET /api/users/:id
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.userService.GetUserByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": true, "data": user})
}

// UpdateUserStatus activates or deactivates a user
// PATCH /api/users/:id/status
func (h *UserHandler) UpdateUserStatus(c *fiber.Ctx) error {
	var req service.UpdateUserStatusRequest
	if err := decodeStrict(c.Body(), &req); err != nil {
		return err
	}
	if v := validator.ValidateStruct(req); len(v) > 0 {
		return apperrors.NewValidation(v)
	}

	user, err := h.userService.SetUserStatus(c.UserContext(), c.Params("id"), *req.IsActive, actorID(c))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":  true,
		"message": "User updated successfully",
		"data":    user,
	})
}
