package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"product-tracker/internal/handler"
	"product-tracker/internal/middleware"
	"product-tracker/internal/model"
	"product-tracker/internal/repository"
	"product-tracker/internal/service"
	"product-tracker/internal/ws"
	"product-tracker/pkg/config"
	"product-tracker/pkg/database"
	"product-tracker/pkg/jwt"
	applog "product-tracker/pkg/logger"
	"product-tracker/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zlog := applog.New(cfg.Log.Level, cfg.Log.Format)
	defer zlog.Sync()

	// 2. Setup Database
	db, err := database.ConnectDB(cfg.Database)
	if err != nil {
		zlog.Fatal("database unavailable", zap.Error(err))
	}
	// Schema is created from the models; there is no separate migration step
	if err := db.AutoMigrate(model.AllModels()...); err != nil {
		zlog.Fatal("auto migrate failed", zap.Error(err))
	}

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub(zlog)
	go wsHub.Run()

	reg := metrics.NewRegistry()
	tokens := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Expiration, cfg.JWT.Issuer)

	// 4. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	eventRepo := repository.NewEventRepo(db)
	userRepo := repository.NewUserRepo(db)

	authService := service.NewAuthService(userRepo, tokens, zlog)
	invService := service.NewInventoryService(productRepo, wsHub, zlog)
	orderService := service.NewOrderService(productRepo, orderRepo, eventRepo, db, wsHub, reg, zlog)
	eventService := service.NewEventService(eventRepo, orderRepo, wsHub, zlog)
	analyticsService := service.NewAnalyticsService(productRepo, orderRepo, eventRepo, cfg.Inventory.LowStockThreshold)

	// 5. Seed the operator account
	if err := authService.SeedAdmin(cfg.Admin.Username, cfg.Admin.Password); err != nil {
		zlog.Warn("failed to seed admin user", zap.Error(err))
	}

	router := &handler.Router{
		Health:      handler.NewHealthHandler(db),
		Auth:        handler.NewAuthHandler(authService),
		Inventory:   handler.NewInventoryHandler(invService),
		Orders:      handler.NewOrderHandler(orderService),
		Events:      handler.NewEventHandler(eventService, orderService),
		Dashboard:   handler.NewDashboardHandler(analyticsService),
		RequireAuth: middleware.RequireAuth(userRepo, tokens),
		Hub:         wsHub,
		Metrics:     reg.Handler(),
	}

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Product Tracker v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.App.CORSAllowOrigins,
	}))

	// 7. Routes
	router.Register(app)

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.App.Port); err != nil {
			zlog.Panic("server stopped", zap.Error(err))
		}
	}()
	zlog.Info("server started", zap.String("port", cfg.App.Port), zap.String("env", cfg.App.Env))

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		zlog.Fatal("server forced to shutdown", zap.Error(err))
	}
	wsHub.Close()

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	zlog.Info("server exited")
}
