package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"go-erp-api/internal/apperrors"
	"go-erp-api/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrorHandler renders every error returned by a route in the common envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var verr *apperrors.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"status":  false,
			"message": verr.Message,
			"errors":  verr.Violations,
		})
	}

	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return c.Status(statusOf(appErr.Kind)).JSON(fiber.Map{
			"status":  false,
			"message": appErr.Message,
		})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"status":  false,
			"message": fiberErr.Message,
		})
	}

	logger.FromContext(c.UserContext()).Error("Request failed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"status":  false,
		"message": "Internal server error",
	})
}

func statusOf(kind error) int {
	switch kind {
	case apperrors.ErrNotFound:
		return fiber.StatusNotFound
	case apperrors.ErrConflict, apperrors.ErrDuplicate:
		return fiber.StatusConflict
	case apperrors.ErrUnauthorized:
		return fiber.StatusUnauthorized
	case apperrors.ErrForbidden:
		return fiber.StatusForbidden
	case apperrors.ErrValidation:
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// decodeStrict decodes a single JSON object and rejects fields dst does not declare.
func decodeStrict(body []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fiber.NewError(fiber.StatusBadRequest, "Request body is required")
		}
		return fiber.NewError(fiber.StatusBadRequest, "Invalid JSON: "+err.Error())
	}
	if dec.More() {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid JSON: unexpected data after the object")
	}
	return nil
}

// actorID is the authenticated user set by the auth middleware, if any.
func actorID(c *fiber.Ctx) *uuid.UUID {
	if id, ok := c.Locals("user_id").(uuid.UUID); ok && id != uuid.Nil {
		return &id
	}
	return nil
}
