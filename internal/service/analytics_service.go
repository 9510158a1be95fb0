package service

import (
	"time"

	"product-tracker/internal/allocation"
	"product-tracker/internal/repository"

	"github.com/google/uuid"
)

type Analytics struct {
	TotalRevenue           float64 `json:"total_revenue"`
	TotalProfit            float64 `json:"total_profit"`
	AverageDaysInInventory float64 `json:"average_days_in_inventory"`
}

type DashboardStats struct {
	TotalProducts     int64   `json:"total_products"`
	TotalOrders       int64   `json:"total_orders"`
	LowStockProducts  int64   `json:"low_stock_products"`
	LowStockThreshold int     `json:"low_stock_threshold"`
	InventoryValue    float64 `json:"inventory_value"`
}

type AnalyticsService interface {
	GetAnalytics() (*Analytics, error)
	GetDashboardStats() (*DashboardStats, error)
}

type analyticsService struct {
	productRepo       repository.ProductRepository
	orderRepo         repository.OrderRepository
	eventRepo         repository.EventRepository
	lowStockThreshold int
	now               func() time.Time
}

func NewAnalyticsService(pRepo repository.ProductRepository, oRepo repository.OrderRepository, eRepo repository.EventRepository, lowStockThreshold int) AnalyticsService {
	return &analyticsService{
		productRepo:       pRepo,
		orderRepo:         oRepo,
		eventRepo:         eRepo,
		lowStockThreshold: lowStockThreshold,
		now:               time.Now,
	}
}

// GetAnalytics replays the cost of every order against the current products
// and the current number of orders on each event, so the totals can differ
// from the figures stored on the orders.
func (s *analyticsService) GetAnalytics() (*Analytics, error) {
	orders, err := s.orderRepo.FindAll(repository.OrderFilter{})
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.List()
	if err != nil {
		return nil, err
	}
	events, err := s.eventRepo.List()
	if err != nil {
		return nil, err
	}

	lookup := productLookup(products)
	adsFees := make(map[uuid.UUID]float64, len(events))
	for _, e := range events {
		adsFees[e.ID] = e.AdsFee
	}
	linked := make(map[uuid.UUID]int)
	for _, o := range orders {
		if o.LiveSellingEventID != nil {
			linked[*o.LiveSellingEventID]++
		}
	}

	var out Analytics
	for i := range orders {
		o := &orders[i]
		var adsShare float64
		if o.LiveSellingEventID != nil {
			if fee, ok := adsFees[*o.LiveSellingEventID]; ok {
				adsShare = allocation.Share(fee, linked[*o.LiveSellingEventID])
			}
		}
		cost := allocation.SnapshotCost(lineItems(o.Items), lookup, feesOf(o), adsShare)
		out.TotalRevenue += o.Revenue
		out.TotalProfit += o.Revenue - cost
	}

	day := today(s.now())
	var totalDays, counted int
	for _, p := range products {
		if p.RegistrationDate == nil {
			continue
		}
		totalDays += daysBetween(*p.RegistrationDate, day)
		counted++
	}
	if counted > 0 {
		out.AverageDaysInInventory = float64(totalDays) / float64(counted)
	}

	return &out, nil
}

func (s *analyticsService) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{LowStockThreshold: s.lowStockThreshold}
	var err error

	if stats.TotalProducts, err = s.productRepo.Count(); err != nil {
		return nil, err
	}
	if stats.TotalOrders, err = s.orderRepo.Count(); err != nil {
		return nil, err
	}
	if stats.LowStockProducts, err = s.productRepo.CountLowStock(s.lowStockThreshold); err != nil {
		return nil, err
	}
	if stats.InventoryValue, err = s.productRepo.Valuation(); err != nil {
		return nil, err
	}
	return stats, nil
}

// daysBetween counts whole calendar days from one date to another
func daysBetween(from, to time.Time) int {
	return int(today(to).Sub(today(from)).Hours() / 24)
}
