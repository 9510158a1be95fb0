package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"product-tracker/internal/middleware"
	"product-tracker/internal/model"
	"product-tracker/internal/repository"
	"product-tracker/internal/service"
	"product-tracker/pkg/jwt"
	"product-tracker/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testUser     = "owner"
	testPassword = "correct-horse"
)

type testServer struct {
	app   *fiber.App
	db    *gorm.DB
	token string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(model.AllModels()...))

	log := zap.NewNop()
	reg := metrics.NewRegistry()
	tokens := jwt.NewManager("test-secret", time.Hour, "product-tracker")

	productRepo := repository.NewProductRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	eventRepo := repository.NewEventRepo(db)
	userRepo := repository.NewUserRepo(db)

	authService := service.NewAuthService(userRepo, tokens, log)
	require.NoError(t, authService.SeedAdmin(testUser, testPassword))
	orderService := service.NewOrderService(productRepo, orderRepo, eventRepo, db, nil, reg, log)

	router := &Router{
		Health:      NewHealthHandler(db),
		Auth:        NewAuthHandler(authService),
		Inventory:   NewInventoryHandler(service.NewInventoryService(productRepo, nil, log)),
		Orders:      NewOrderHandler(orderService),
		Events:      NewEventHandler(service.NewEventService(eventRepo, orderRepo, nil, log), orderService),
		Dashboard:   NewDashboardHandler(service.NewAnalyticsService(productRepo, orderRepo, eventRepo, 3)),
		RequireAuth: middleware.RequireAuth(userRepo, tokens),
		Metrics:     reg.Handler(),
	}
	app := fiber.New()
	router.Register(app)

	srv := &testServer{app: app, db: db}
	srv.token = srv.login(t)
	return srv
}

func (s *testServer) login(t *testing.T) string {
	t.Helper()
	form := url.Values{"username": {testUser}, "password": {testPassword}}
	req := httptest.NewRequest("POST", "/api/v1/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var body struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "bearer", body.TokenType)
	return body.AccessToken
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.app.Test(req)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func decode(t *testing.T, data []byte, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(data, v), string(data))
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	sqlDB, err := srv.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	resp, err = srv.app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "tracker_orders_created_total")
}

func TestAuthRequired(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.app.Test(httptest.NewRequest("GET", "/api/v1/products", nil))
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)

	req := httptest.NewRequest("POST", "/api/v1/token", strings.NewReader(`{"username":"owner","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = srv.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestProductEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp, data := srv.do(t, "POST", "/api/v1/products", map[string]interface{}{
		"name":           "Mug",
		"purchase_price": 10,
		"shipping_fee":   4,
		"start_quantity": 5,
	})
	require.Equal(t, 201, resp.StatusCode, string(data))
	var created model.ProductResponse
	decode(t, data, &created)
	assert.Equal(t, 5, created.RemainingQuantity)

	resp, data = srv.do(t, "GET", "/api/v1/products/?skip=0&limit=10", nil)
	require.Equal(t, 200, resp.StatusCode)
	var list []model.ProductResponse
	decode(t, data, &list)
	assert.Len(t, list, 1)

	resp, _ = srv.do(t, "POST", "/api/v1/products", map[string]interface{}{"purchase_price": 1})
	assert.Equal(t, 400, resp.StatusCode)

	resp, _ = srv.do(t, "GET", "/api/v1/products/not-a-uuid", nil)
	assert.Equal(t, 400, resp.StatusCode)

	resp, _ = srv.do(t, "DELETE", "/api/v1/products/"+created.ID.String(), nil)
	assert.Equal(t, 200, resp.StatusCode)
	resp, _ = srv.do(t, "DELETE", "/api/v1/products/"+created.ID.String(), nil)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestOrderFlow(t *testing.T) {
	srv := newTestServer(t)

	_, data := srv.do(t, "POST", "/api/v1/products", map[string]interface{}{
		"name": "Mug", "purchase_price": 10, "shipping_fee": 4, "start_quantity": 3,
	})
	var product model.ProductResponse
	decode(t, data, &product)

	_, data = srv.do(t, "POST", "/api/v1/live_events", map[string]interface{}{"ads_fee": 100, "event_date": "2026-10-01"})
	var event model.LiveSellingEventResponse
	decode(t, data, &event)

	order := func(qty int) map[string]interface{} {
		return map[string]interface{}{
			"products":              []map[string]interface{}{{"product_id": product.ID, "quantity": qty}},
			"sales_channel":         "live_selling",
			"revenue":               100,
			"live_selling_event_id": event.ID.String(),
		}
	}

	resp, data := srv.do(t, "POST", "/api/v1/orders", order(1))
	require.Equal(t, 201, resp.StatusCode, string(data))
	var first model.OrderResponse
	decode(t, data, &first)
	assert.InDelta(t, 100.0, first.AdsFee, 1e-9)
	assert.InDelta(t, 114.0, first.TotalCost, 1e-9)

	resp, data = srv.do(t, "POST", "/api/v1/orders", order(1))
	require.Equal(t, 201, resp.StatusCode, string(data))

	resp, _ = srv.do(t, "POST", "/api/v1/orders", order(5))
	assert.Equal(t, 400, resp.StatusCode)

	resp, _ = srv.do(t, "POST", "/api/v1/orders", map[string]interface{}{
		"products":      []map[string]interface{}{{"product_id": uuid.New(), "quantity": 1}},
		"sales_channel": "shopee",
		"revenue":       10,
	})
	assert.Equal(t, 404, resp.StatusCode)

	resp, _ = srv.do(t, "POST", "/api/v1/orders", "not an object")
	assert.Equal(t, 400, resp.StatusCode)

	resp, data = srv.do(t, "GET", "/api/v1/live_events/"+event.ID.String()+"/orders", nil)
	require.Equal(t, 200, resp.StatusCode)
	var linked []model.OrderResponse
	decode(t, data, &linked)
	require.Len(t, linked, 2)
	for _, o := range linked {
		assert.InDelta(t, 50.0, o.AdsFee, 1e-9)
	}

	resp, data = srv.do(t, "PATCH", "/api/v1/orders/"+first.ID.String(), map[string]string{"status": "shipped"})
	require.Equal(t, 200, resp.StatusCode)
	var patched model.OrderResponse
	decode(t, data, &patched)
	assert.Equal(t, model.OrderShipped, patched.Status)

	resp, _ = srv.do(t, "PATCH", "/api/v1/orders/"+first.ID.String(), map[string]string{"status": "lost"})
	assert.Equal(t, 400, resp.StatusCode)

	resp, data = srv.do(t, "POST", "/api/v1/live_events/"+event.ID.String()+"/reallocate", nil)
	require.Equal(t, 200, resp.StatusCode)
	decode(t, data, &linked)
	assert.Len(t, linked, 2)

	resp, data = srv.do(t, "GET", "/api/v1/orders?event_id="+event.ID.String(), nil)
	require.Equal(t, 200, resp.StatusCode)
	decode(t, data, &linked)
	assert.Len(t, linked, 2)

	resp, _ = srv.do(t, "GET", "/api/v1/orders?from=yesterday", nil)
	assert.Equal(t, 400, resp.StatusCode)

	resp, data = srv.do(t, "GET", "/api/v1/analytics", nil)
	require.Equal(t, 200, resp.StatusCode)
	var analytics service.Analytics
	decode(t, data, &analytics)
	assert.InDelta(t, 200.0, analytics.TotalRevenue, 1e-9)
	assert.InDelta(t, 200.0-2*(10+50), analytics.TotalProfit, 1e-9)

	resp, data = srv.do(t, "GET", "/api/v1/dashboard/stats", nil)
	require.Equal(t, 200, resp.StatusCode)
	var stats service.DashboardStats
	decode(t, data, &stats)
	assert.Equal(t, int64(2), stats.TotalOrders)
	assert.Equal(t, int64(1), stats.LowStockProducts)

	resp, _ = srv.do(t, "DELETE", "/api/v1/orders/"+first.ID.String(), nil)
	assert.Equal(t, 200, resp.StatusCode)
	resp, _ = srv.do(t, "GET", "/api/v1/orders/"+first.ID.String(), nil)
	assert.Equal(t, 404, resp.StatusCode)

	resp, _ = srv.do(t, "DELETE", "/api/v1/live_events/"+event.ID.String(), nil)
	assert.Equal(t, 200, resp.StatusCode)
	resp, _ = srv.do(t, "GET", "/api/v1/live_events/"+event.ID.String(), nil)
	assert.Equal(t, 404, resp.StatusCode)
	resp, _ = srv.do(t, "POST", "/api/v1/live_events/"+uuid.New().String()+"/reallocate", nil)
	assert.Equal(t, 404, resp.StatusCode)
}
