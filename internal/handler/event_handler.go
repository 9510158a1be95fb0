package handler

import (
	"product-tracker/internal/model"
	"product-tracker/internal/repository"
	"product-tracker/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type EventHandler struct {
	events service.EventService
	orders service.OrderService
}

func NewEventHandler(events service.EventService, orders service.OrderService) *EventHandler {
	return &EventHandler{events: events, orders: orders}
}

func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	var req service.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	event, err := h.events.CreateEvent(&req, getActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(event.ToResponse())
}

func (h *EventHandler) GetEvents(c *fiber.Ctx) error {
	skip, limit := pageFromQuery(c)
	events, err := h.events.GetEvents(repository.Page{Skip: skip, Limit: limit})
	if err != nil {
		return respondError(c, err)
	}

	out := make([]model.LiveSellingEventResponse, len(events))
	for i := range events {
		out[i] = events[i].ToResponse()
	}
	return c.JSON(out)
}

func (h *EventHandler) GetEvent(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid event ID"})
	}

	event, err := h.events.GetEvent(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(event.ToResponse())
}

func (h *EventHandler) GetEventOrders(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid event ID"})
	}

	orders, err := h.events.GetEventOrders(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(model.OrderResponses(orders))
}

// Reallocate re-splits the event's ads fee over its orders
// POST /api/v1/live_events/:id/reallocate
func (h *EventHandler) Reallocate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid event ID"})
	}

	orders, err := h.orders.Reallocate(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(model.OrderResponses(orders))
}

func (h *EventHandler) DeleteEvent(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid event ID"})
	}

	if err := h.events.DeleteEvent(id, getActor(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"detail": "Event deleted successfully"})
}
