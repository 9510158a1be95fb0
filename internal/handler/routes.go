package handler

import (
	"net/http"

	"product-tracker/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

// Router holds everything the HTTP surface is built from
type Router struct {
	Health      *HealthHandler
	Auth        *AuthHandler
	Inventory   *InventoryHandler
	Orders      *OrderHandler
	Events      *EventHandler
	Dashboard   *DashboardHandler
	RequireAuth fiber.Handler
	Hub         *ws.Hub
	Metrics     http.Handler
}

func (r *Router) Register(app *fiber.App) {
	app.Get("/health", r.Health.Health)
	if r.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(r.Metrics))
	}

	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	api.Post("/token", r.Auth.Token)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", r.RequireAuth)

	protected.Get("/products", r.Inventory.GetProducts)
	protected.Post("/products", r.Inventory.CreateProduct)
	protected.Get("/products/:id", r.Inventory.GetProduct)
	protected.Delete("/products/:id", r.Inventory.DeleteProduct)

	protected.Get("/orders", r.Orders.GetOrders)
	protected.Post("/orders", r.Orders.CreateOrder)
	protected.Get("/orders/:id", r.Orders.GetOrder)
	protected.Patch("/orders/:id", r.Orders.UpdateOrderStatus)
	protected.Delete("/orders/:id", r.Orders.DeleteOrder)

	protected.Get("/live_events", r.Events.GetEvents)
	protected.Post("/live_events", r.Events.CreateEvent)
	protected.Get("/live_events/:id", r.Events.GetEvent)
	protected.Delete("/live_events/:id", r.Events.DeleteEvent)
	protected.Get("/live_events/:id/orders", r.Events.GetEventOrders)
	protected.Post("/live_events/:id/reallocate", r.Events.Reallocate)

	protected.Get("/analytics", r.Dashboard.GetAnalytics)
	protected.Get("/dashboard/stats", r.Dashboard.GetDashboardStats)

	// WebSocket Route
	if r.Hub != nil {
		app.Use("/ws", func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return c.SendStatus(fiber.StatusUpgradeRequired)
		})
		app.Get("/ws", websocket.New(r.Hub.Serve))
	}
}
