package handler

import (
	"time"

	"product-tracker/internal/model"
	"product-tracker/internal/repository"
	"product-tracker/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(s service.OrderService) *OrderHandler {
	return &OrderHandler{service: s}
}

func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var req service.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	order, err := h.service.CreateOrder(&req, getActor(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(order.ToResponse())
}

// GetOrders lists orders
// Query params: skip, limit, event_id, from, to (YYYY-MM-DD, inclusive)
func (h *OrderHandler) GetOrders(c *fiber.Ctx) error {
	skip, limit := pageFromQuery(c)
	filter := repository.OrderFilter{Page: repository.Page{Skip: skip, Limit: limit}}

	if raw := c.Query("event_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid event ID"})
		}
		filter.EventID = &id
	}
	for key, dst := range map[string]**time.Time{"from": &filter.From, "to": &filter.To} {
		raw := c.Query(key)
		if raw == "" {
			continue
		}
		t, err := time.Parse(model.DateLayout, raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid '" + key + "' date, expected YYYY-MM-DD"})
		}
		*dst = &t
	}

	orders, err := h.service.GetOrders(filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(model.OrderResponses(orders))
}

func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	order, err := h.service.GetOrder(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order.ToResponse())
}

func (h *OrderHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	var req service.UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	order, err := h.service.UpdateOrderStatus(id, &req, getActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order.ToResponse())
}

func (h *OrderHandler) DeleteOrder(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	if err := h.service.DeleteOrder(id, getActor(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"detail": "Order deleted successfully"})
}
