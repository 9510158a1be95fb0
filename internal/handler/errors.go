package handler

import (
	"errors"

	"product-tracker/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Helper untuk ambil username dari JWT Context (set by auth middleware)
func getActor(c *fiber.Ctx) string {
	username, ok := c.Locals("username").(string)
	if !ok || username == "" {
		return "system"
	}
	return username
}

// respondError maps service errors onto HTTP status codes
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInsufficientStock), errors.Is(err, service.ErrValidation):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrUserInactive):
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
}

func pageFromQuery(c *fiber.Ctx) (skip, limit int) {
	return c.QueryInt("skip", 0), c.QueryInt("limit", 0)
}
