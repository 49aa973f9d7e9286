package middleware

import (
	"strconv"

	"go-erp-api/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/ulule/limiter/v3"
	"go.uber.org/zap"
)

// RateLimit throttles requests per client IP.
func RateLimit(l *limiter.Limiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lctx, err := l.Get(c.UserContext(), c.IP())
		if err != nil {
			logger.FromContext(c.UserContext()).Error("Rate limiter unavailable", zap.Error(err))
			return err
		}

		c.Set("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
		c.Set("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))

		if lctx.Reached {
			return fiber.NewError(fiber.StatusTooManyRequests, "Too many requests, please try again later")
		}
		return c.Next()
	}
}
