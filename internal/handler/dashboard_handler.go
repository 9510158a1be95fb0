package handler

import (
	"product-tracker/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.AnalyticsService
}

func NewDashboardHandler(s service.AnalyticsService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetAnalytics returns revenue, profit and inventory age computed at call time
func (h *DashboardHandler) GetAnalytics(c *fiber.Ctx) error {
	analytics, err := h.service.GetAnalytics()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to compute analytics"})
	}

	return c.JSON(analytics)
}

// GetDashboardStats returns overview statistics
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.service.GetDashboardStats()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch dashboard stats"})
	}

	return c.JSON(stats)
}
