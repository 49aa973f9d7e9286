package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go-erp-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

var listKeys = []string{"search", "order_by", "order_dir", "limit", "page"}

// ResourceHandler exposes a ResourceService over HTTP.
type ResourceHandler[I service.Input] struct {
	service service.ResourceService[I]
}

func NewResourceHandler[I service.Input](s service.ResourceService[I]) *ResourceHandler[I] {
	return &ResourceHandler[I]{service: s}
}

// Register mounts the resource routes on router.
func (h *ResourceHandler[I]) Register(router fiber.Router) {
	router.Post("/list", h.List)
	router.Post("/store", h.Store)
	router.Delete("/delete/:id", h.Delete)
	router.Get("/:id", h.Get)
}

// List returns one page of records
// POST /api/{resource}/list?search=&order_by=&order_dir=&limit=&page=
func (h *ResourceHandler[I]) List(c *fiber.Ctx) error {
	result, err := h.service.List(c.UserContext(), listParams(c))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":    true,
		"data":      result.Data,
		"total":     result.Total,
		"page":      result.Page,
		"last_page": result.LastPage,
		"order_by":  result.OrderBy,
		"order_dir": result.OrderDir,
	})
}

// Store creates a record, or updates it when the body carries an existing id
// POST /api/{resource}/store
func (h *ResourceHandler[I]) Store(c *fiber.Ctx) error {
	var in I
	if err := decodeStrict(c.Body(), &in); err != nil {
		return err
	}

	result, err := h.service.Upsert(c.UserContext(), in, actorID(c))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":  true,
		"message": result.Message,
		"data":    result.Data,
	})
}

// Get returns one record
// GET /api/{resource}/:id
func (h *ResourceHandler[I]) Get(c *fiber.Ctx) error {
	data, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": true, "data": data})
}

// Delete removes a record
// DELETE /api/{resource}/delete/:id
func (h *ResourceHandler[I]) Delete(c *fiber.Ctx) error {
	message, err := h.service.Delete(c.UserContext(), c.Params("id"), actorID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": true, "message": message})
}

// listParams reads the query string, falling back to a JSON body for keys the query omits.
func listParams(c *fiber.Ctx) service.ListParams {
	values := make(map[string]string, len(listKeys))
	if body := c.Body(); len(body) > 0 {
		var fields map[string]any
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.UseNumber()
		if err := dec.Decode(&fields); err == nil {
			for _, key := range listKeys {
				if v, ok := fields[key]; ok && v != nil {
					values[key] = fmt.Sprint(v)
				}
			}
		}
	}
	for _, key := range listKeys {
		if q := c.Query(key); q != "" {
			values[key] = q
		}
	}

	return service.ListParams{
		Search:   values["search"],
		OrderBy:  values["order_by"],
		OrderDir: values["order_dir"],
		Limit:    atoi(values["limit"]),
		Page:     atoi(values["page"]),
	}
}

// atoi reads a whole number, including integral forms such as "20.0" or "1e6".
// Values beyond int range saturate so the service caps them.
func atoi(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	if f < math.MinInt32 {
		return math.MinInt32
	}
	return int(f)
}
