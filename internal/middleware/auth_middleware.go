package middleware

import (
	"strings"

	"go-erp-api/internal/service"
	"go-erp-api/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequireAuth is middleware that validates JWT token and sets user info in context
func RequireAuth(auth service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get Authorization header
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Missing authorization token")
		}

		// Extract token from "Bearer <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid authorization format. Use: Bearer <token>")
		}

		return authenticate(c, auth, parts[1])
	}
}

// RequireWebSocketAuth accepts websocket upgrades carrying a valid token in the "token" query parameter.
func RequireWebSocketAuth(auth service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		token := c.Query("token")
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Missing authorization token")
		}

		return authenticate(c, auth, token)
	}
}

func authenticate(c *fiber.Ctx, auth service.AuthService, token string) error {
	user, err := auth.ValidateToken(c.UserContext(), token)
	if err != nil {
		return err
	}

	// Set user info in context for downstream handlers
	c.Locals("user_id", user.ID)
	c.Locals("username", user.Username)
	c.SetUserContext(logger.WithContext(c.UserContext(),
		logger.FromContext(c.UserContext()).With(zap.Stringer("user_id", user.ID)),
	))

	return c.Next()
}
