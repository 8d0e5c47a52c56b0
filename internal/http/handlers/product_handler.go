package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"weblarek/internal/domain"
	"weblarek/internal/log"
	"weblarek/internal/services"
	"weblarek/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	list, err := h.Catalog.List()
	if err != nil {
		log.Error(c, "product.list.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(domain.APIError{Error: "Internal Server Error"})
	}
	return c.JSON(list)
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(fiber.StatusNotFound).JSON(domain.APIError{Error: "NotFound"})
	}
	p, err := h.Catalog.Get(id)
	if errors.Is(err, services.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(domain.APIError{Error: "NotFound"})
	}
	if err != nil {
		log.Error(c, "product.get.fail", err, map[string]any{"id": id})
		return c.Status(fiber.StatusInternalServerError).JSON(domain.APIError{Error: "Internal Server Error"})
	}
	return c.JSON(p)
}
