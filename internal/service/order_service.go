package service

import (
	"errors"
	"fmt"
	"time"

	"product-tracker/internal/allocation"
	"product-tracker/internal/model"
	"product-tracker/internal/repository"
	"product-tracker/pkg/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type OrderService interface {
	CreateOrder(req *CreateOrderRequest, actor string) (*model.Order, error)
	GetOrders(filter repository.OrderFilter) ([]model.Order, error)
	GetOrder(id uuid.UUID) (*model.Order, error)
	UpdateOrderStatus(id uuid.UUID, req *UpdateOrderStatusRequest, actor string) (*model.Order, error)
	DeleteOrder(id uuid.UUID, actor string) error
	Reallocate(eventID uuid.UUID) ([]model.Order, error)
}

type orderService struct {
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	eventRepo   repository.EventRepository
	db          *gorm.DB
	notifier    Notifier
	metrics     *metrics.Registry
	log         *zap.Logger
	now         func() time.Time
}

func NewOrderService(
	pRepo repository.ProductRepository,
	oRepo repository.OrderRepository,
	eRepo repository.EventRepository,
	db *gorm.DB,
	notifier Notifier,
	reg *metrics.Registry,
	log *zap.Logger,
) OrderService {
	return &orderService{
		productRepo: pRepo,
		orderRepo:   oRepo,
		eventRepo:   eRepo,
		db:          db,
		notifier:    notifierOrNop(notifier),
		metrics:     reg,
		log:         log.Named("orders"),
		now:         time.Now,
	}
}

// CreateOrder checks and decrements stock for every line, prices the order
// with a provisional share of its event's ads fee and stores it, all in one
// transaction. If the event exists, every order linked to it is then
// re-split through Reallocate and the stored values of the new order are
// taken from that pass.
func (s *orderService) CreateOrder(req *CreateOrderRequest, actor string) (*model.Order, error) {
	if err := validate(req); err != nil {
		s.metrics.OrderRejections.WithLabelValues("validation").Inc()
		return nil, err
	}

	soldDate, err := parseDate(req.SoldDate, s.now())
	if err != nil {
		return nil, err
	}
	eventID, err := parseOptionalID(req.LiveSellingEventID)
	if err != nil {
		return nil, err
	}
	status := model.OrderPending
	if req.Status != "" {
		status = model.OrderStatus(req.Status)
	}

	order := &model.Order{
		Items:              make([]model.OrderItem, len(req.Products)),
		SalesChannel:       req.SalesChannel,
		ShopeeFee:          req.ShopeeFee,
		ShippingFee:        req.ShippingFee,
		SellerCoupon:       req.SellerCoupon,
		Revenue:            *req.Revenue,
		SoldDate:           &soldDate,
		Status:             status,
		LiveSellingEventID: eventID,
	}
	order.CreatedBy = actor
	order.UpdatedBy = actor
	for i, item := range req.Products {
		order.Items[i] = model.OrderItem{ProductID: item.ProductID, Quantity: item.Quantity}
	}

	eventFound := false
	err = s.db.Transaction(func(tx *gorm.DB) error {
		products := s.productRepo.WithTx(tx)
		orders := s.orderRepo.WithTx(tx)

		lookup := make(allocation.ProductLookup, len(order.Items))
		remaining := make(map[uuid.UUID]int, len(order.Items))
		for _, item := range order.Items {
			if _, seen := remaining[item.ProductID]; !seen {
				p, err := products.LockByID(item.ProductID)
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: %s", ErrProductNotFound, item.ProductID)
				}
				if err != nil {
					return err
				}
				remaining[p.ID] = p.RemainingQuantity
				lookup[p.ID] = allocation.ProductCost{PurchasePrice: p.PurchasePrice, ShippingFee: p.ShippingFee}
			}
			if remaining[item.ProductID] < item.Quantity {
				return fmt.Errorf("%w for product %s", ErrInsufficientStock, item.ProductID)
			}
			remaining[item.ProductID] -= item.Quantity
		}

		for id, left := range remaining {
			if err := products.UpdateStock(id, left, actor); err != nil {
				return err
			}
		}

		var adsShare float64
		if eventID != nil {
			event, err := s.eventRepo.WithTx(tx).FindByID(*eventID)
			switch {
			case err == nil:
				eventFound = true
				linked, err := orders.CountByEventID(*eventID)
				if err != nil {
					return err
				}
				adsShare = allocation.Share(event.AdsFee, int(linked)+1)
			case errors.Is(err, gorm.ErrRecordNotFound):
				s.log.Warn("order references unknown event, no ads fee charged", zap.Stringer("event_id", *eventID))
			default:
				return err
			}
		}

		res := allocation.Calculate(lineItems(order.Items), lookup, feesOf(order), adsShare)
		applyResult(order, res)

		return orders.Create(order)
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInsufficientStock):
			s.metrics.OrderRejections.WithLabelValues("insufficient_stock").Inc()
		case errors.Is(err, ErrProductNotFound):
			s.metrics.OrderRejections.WithLabelValues("product_not_found").Inc()
		}
		return nil, err
	}

	s.metrics.OrdersCreated.Inc()
	s.log.Info("order created",
		zap.Stringer("order_id", order.ID),
		zap.Float64("total_cost", order.TotalCost),
		zap.Float64("profit", order.Profit),
		zap.String("actor", actor),
	)

	if eventFound {
		updated, err := s.Reallocate(*eventID)
		if err != nil {
			return nil, err
		}
		for i := range updated {
			if updated[i].ID == order.ID {
				order.AdsFee = updated[i].AdsFee
				order.TotalCost = updated[i].TotalCost
				order.Profit = updated[i].Profit
			}
		}
	}

	s.notifier.Publish(EventOrderCreated, order.ToResponse())
	return order, nil
}

// Reallocate splits the event's ads fee equally over every order currently
// linked to it and stores the recomputed cost and profit of each. The event
// row is locked for the duration, so concurrent calls for one event run one
// after the other. Running it again without changes gives the same figures.
func (s *orderService) Reallocate(eventID uuid.UUID) ([]model.Order, error) {
	start := time.Now()
	var (
		updated []model.Order
		share   float64
	)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		event, err := s.eventRepo.WithTx(tx).LockByID(eventID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		if err != nil {
			return err
		}

		orders := s.orderRepo.WithTx(tx)
		linked, err := orders.FindByEventID(eventID)
		if err != nil {
			return err
		}
		if len(linked) == 0 {
			updated = linked
			return nil
		}

		lookup, err := s.lookupFor(s.productRepo.WithTx(tx), linked)
		if err != nil {
			return err
		}

		share = allocation.Share(event.AdsFee, len(linked))
		for i := range linked {
			o := &linked[i]
			res := allocation.Calculate(lineItems(o.Items), lookup, feesOf(o), share)
			if len(res.MissingProducts) > 0 {
				s.metrics.MissingProducts.Add(float64(len(res.MissingProducts)))
				s.log.Warn("order references unknown products, costed at zero",
					zap.Stringer("order_id", o.ID),
					zap.Int("missing", len(res.MissingProducts)),
				)
			}
			applyResult(o, res)
			if err := orders.UpdateFinancials(o); err != nil {
				return err
			}
		}
		updated = linked
		return nil
	})
	s.metrics.ReallocationSec.Observe(time.Since(start).Seconds())

	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.metrics.ReallocationFailed.Inc()
			s.log.Error("reallocation failed", zap.Stringer("event_id", eventID), zap.Error(err))
		}
		return nil, err
	}

	s.metrics.Reallocations.Inc()
	s.metrics.ReallocatedOrders.Add(float64(len(updated)))
	s.log.Debug("event reallocated",
		zap.Stringer("event_id", eventID),
		zap.Int("orders", len(updated)),
		zap.Float64("ads_fee_per_order", share),
	)
	s.notifier.Publish(EventEventReallocated, map[string]interface{}{
		"event_id":          eventID,
		"orders":            len(updated),
		"ads_fee_per_order": share,
	})
	return updated, nil
}

func (s *orderService) GetOrders(filter repository.OrderFilter) ([]model.Order, error) {
	filter.Page = repository.NewPage(filter.Skip, filter.Limit)
	return s.orderRepo.FindAll(filter)
}

func (s *orderService) GetOrder(id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	return order, err
}

// UpdateOrderStatus changes the status only; money fields are left as stored.
func (s *orderService) UpdateOrderStatus(id uuid.UUID, req *UpdateOrderStatusRequest, actor string) (*model.Order, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateStatus(id, model.OrderStatus(req.Status), actor); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	order, err := s.GetOrder(id)
	if err != nil {
		return nil, err
	}

	s.notifier.Publish(EventOrderStatusUpdated, map[string]interface{}{
		"order_id": order.ID,
		"status":   order.Status,
	})
	return order, nil
}

// DeleteOrder hard deletes the order. Stock is not returned. Orders left on
// the same event get their share of the ads fee recomputed.
func (s *orderService) DeleteOrder(id uuid.UUID, actor string) error {
	order, err := s.GetOrder(id)
	if err != nil {
		return err
	}

	if err := s.orderRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}
	s.log.Info("order deleted", zap.Stringer("order_id", id), zap.String("actor", actor))

	if order.LiveSellingEventID != nil {
		if _, err := s.Reallocate(*order.LiveSellingEventID); err != nil && !errors.Is(err, ErrEventNotFound) {
			return err
		}
	}

	s.notifier.Publish(EventOrderDeleted, map[string]interface{}{"order_id": id})
	return nil
}

func (s *orderService) lookupFor(products repository.ProductRepository, orders []model.Order) (allocation.ProductLookup, error) {
	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, o := range orders {
		for _, item := range o.Items {
			if !seen[item.ProductID] {
				seen[item.ProductID] = true
				ids = append(ids, item.ProductID)
			}
		}
	}

	found, err := products.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	return productLookup(found), nil
}

func productLookup(products []model.Product) allocation.ProductLookup {
	lookup := make(allocation.ProductLookup, len(products))
	for _, p := range products {
		lookup[p.ID] = allocation.ProductCost{PurchasePrice: p.PurchasePrice, ShippingFee: p.ShippingFee}
	}
	return lookup
}

func lineItems(items []model.OrderItem) []allocation.LineItem {
	out := make([]allocation.LineItem, len(items))
	for i, item := range items {
		out[i] = allocation.LineItem{ProductID: item.ProductID, Quantity: item.Quantity}
	}
	return out
}

func feesOf(o *model.Order) allocation.Fees {
	return allocation.Fees{
		ShopeeFee:    o.ShopeeFee,
		ShippingFee:  o.ShippingFee,
		SellerCoupon: o.SellerCoupon,
		Revenue:      o.Revenue,
		EventLinked:  o.LiveSellingEventID != nil,
	}
}

func applyResult(o *model.Order, res allocation.Result) {
	o.AdsFee = res.AdsFee
	o.TotalCost = res.TotalCost
	o.Profit = res.Profit
}
