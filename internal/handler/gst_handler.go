package handler

import (
	"go-erp-api/internal/model"

	"github.com/gofiber/fiber/v2"
)

// GSTHandler serves the fixed GST lookup lists.
type GSTHandler struct{}

func NewGSTHandler() *GSTHandler {
	return &GSTHandler{}
}

// TaxStatus GET /api/gst-configuration/tax-status
func (h *GSTHandler) TaxStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  true,
		"message": "Tax status fetched successfully",
		"data":    model.TaxStatusOptions,
	})
}

// GSTRate GET /api/gst-configuration/gst-rate
func (h *GSTHandler) GSTRate(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  true,
		"message": "GST rate fetched successfully",
		"data":    model.GSTRateOptions,
	})
}
