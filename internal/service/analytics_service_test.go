package service

import (
	"testing"
	"time"

	"product-tracker/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAnalytics(t *testing.T) {
	f := newFixture(t)
	orders := f.orderService()
	now := time.Date(2026, 10, 16, 15, 30, 0, 0, time.UTC)

	var products []*model.Product
	for _, age := range []int{5, 10, 15} {
		reg := now.AddDate(0, 0, -age)
		reg = time.Date(reg.Year(), reg.Month(), reg.Day(), 0, 0, 0, 0, time.UTC)
		p := &model.Product{
			Name:              "item",
			PurchasePrice:     10,
			ShippingFee:       4,
			RegistrationDate:  &reg,
			StartQuantity:     5,
			RemainingQuantity: 5,
		}
		require.NoError(t, f.products.Create(p))
		products = append(products, p)
	}
	f.product(t, 1, 0, 1) // no registration date

	event := f.event(t, 90)
	for _, p := range products {
		_, err := orders.CreateOrder(orderRequest(event.ID.String(), 50, OrderItemRequest{ProductID: p.ID, Quantity: 1}), "tester")
		require.NoError(t, err)
	}
	_, err := orders.CreateOrder(&CreateOrderRequest{
		Products:     []OrderItemRequest{{ProductID: products[0].ID, Quantity: 2}},
		SalesChannel: model.ChannelShopee,
		ShopeeFee:    1,
		SellerCoupon: 3,
		Revenue:      float(40),
	}, "tester")
	require.NoError(t, err)

	svc := NewAnalyticsService(f.products, f.orders, f.events, 3).(*analyticsService)
	svc.now = func() time.Time { return now }

	got, err := svc.GetAnalytics()
	require.NoError(t, err)

	// event orders: 50 - (10 + 30) each; plain order: 40 - (1 + 20 - 3)
	assert.InDelta(t, 190.0, got.TotalRevenue, 1e-9)
	assert.InDelta(t, 3*10.0+22.0, got.TotalProfit, 1e-9)
	assert.InDelta(t, 10.0, got.AverageDaysInInventory, 1e-9)
}

func TestGetAnalytics_DeletedEventCarriesNoAds(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, 10, 0, 5)
	event := f.event(t, 60)
	_, err := f.orderService().CreateOrder(orderRequest(event.ID.String(), 50, OrderItemRequest{ProductID: p.ID, Quantity: 1}), "tester")
	require.NoError(t, err)
	require.NoError(t, f.events.Delete(event.ID))

	got, err := NewAnalyticsService(f.products, f.orders, f.events, 3).GetAnalytics()
	require.NoError(t, err)
	assert.InDelta(t, 40.0, got.TotalProfit, 1e-9)
}

func TestGetAnalytics_Empty(t *testing.T) {
	f := newFixture(t)

	got, err := NewAnalyticsService(f.products, f.orders, f.events, 3).GetAnalytics()
	require.NoError(t, err)
	assert.Equal(t, Analytics{}, *got)
}

func TestGetDashboardStats(t *testing.T) {
	f := newFixture(t)
	f.product(t, 10, 0, 5)
	f.product(t, 2, 0, 3)
	low := f.product(t, 7, 0, 4)
	_, err := f.orderService().CreateOrder(orderRequest("", 20, OrderItemRequest{ProductID: low.ID, Quantity: 2}), "tester")
	require.NoError(t, err)

	stats, err := NewAnalyticsService(f.products, f.orders, f.events, 3).GetDashboardStats()
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalProducts)
	assert.Equal(t, int64(1), stats.TotalOrders)
	assert.Equal(t, int64(2), stats.LowStockProducts)
	assert.Equal(t, 3, stats.LowStockThreshold)
	assert.InDelta(t, 5*10.0+3*2.0+2*7.0, stats.InventoryValue, 1e-9)
}

func TestDaysBetween(t *testing.T) {
	from := time.Date(2026, 3, 1, 23, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 11, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 10, daysBetween(from, to))
	assert.Equal(t, 0, daysBetween(to, to))
}
