package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"weblarek/internal/domain"
	applog "weblarek/internal/log"
	"weblarek/internal/services"
)

type OrderHandler struct {
	Order *services.OrderService
}

func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var req domain.OrderRequest
	if err := c.BodyParser(&req); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"field": "body"})
		return c.Status(fiber.StatusBadRequest).JSON(domain.APIError{Error: "Неверный формат заказа"})
	}
	order, err := h.Order.Place(req)
	if err != nil {
		var ve *services.ValidationError
		if errors.As(err, &ve) {
			// business rule errors surface as 400 with a client-safe message
			applog.Security(c, "order.place.reject", map[string]any{"error": ve.Message, "items": len(req.Items)})
			return c.Status(fiber.StatusBadRequest).JSON(domain.APIError{Error: ve.Message})
		}
		applog.Error(c, "order.place.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(domain.APIError{Error: "Internal Server Error"})
	}
	applog.Audit(c, "order.place", map[string]any{"order_id": order.ID, "total": order.Total})
	return c.JSON(order)
}
