package handler

import (
	"product-tracker/pkg/database"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health reports whether the store answers
// GET /health
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	if err := database.Ping(c.UserContext(), h.db); err != nil {
		return c.Status(503).JSON(fiber.Map{
			"status":   "unhealthy",
			"database": "disconnected",
			"error":    err.Error(),
		})
	}
	return c.JSON(fiber.Map{"status": "healthy", "database": "connected"})
}
