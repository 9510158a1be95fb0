package service

import (
	"sync"
	"testing"
	"time"

	"product-tracker/internal/model"
	"product-tracker/internal/repository"
	"product-tracker/pkg/metrics"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type recordingNotifier struct {
	mu    sync.Mutex
	kinds []string
}

func (n *recordingNotifier) Publish(kind string, _ interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.kinds = append(n.kinds, kind)
}

func (n *recordingNotifier) Kinds() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.kinds...)
}

type fixture struct {
	db       *gorm.DB
	products repository.ProductRepository
	orders   repository.OrderRepository
	events   repository.EventRepository
	users    repository.UserRepository
	notifier *recordingNotifier
	metrics  *metrics.Registry
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.AllModels()...))

	return &fixture{
		db:       db,
		products: repository.NewProductRepo(db),
		orders:   repository.NewOrderRepo(db),
		events:   repository.NewEventRepo(db),
		users:    repository.NewUserRepo(db),
		notifier: &recordingNotifier{},
		metrics:  metrics.NewRegistry(),
	}
}

func (f *fixture) orderService() OrderService {
	return NewOrderService(f.products, f.orders, f.events, f.db, f.notifier, f.metrics, zap.NewNop())
}

func (f *fixture) product(t *testing.T, price, shipping float64, qty int) *model.Product {
	t.Helper()
	p := &model.Product{
		Name:              "item",
		PurchasePrice:     price,
		ShippingFee:       shipping,
		StartQuantity:     qty,
		RemainingQuantity: qty,
	}
	require.NoError(t, f.products.Create(p))
	return p
}

func (f *fixture) event(t *testing.T, adsFee float64) *model.LiveSellingEvent {
	t.Helper()
	e := &model.LiveSellingEvent{EventDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), AdsFee: adsFee}
	require.NoError(t, f.events.Create(e))
	return e
}

func (f *fixture) remaining(t *testing.T, p *model.Product) int {
	t.Helper()
	got, err := f.products.FindByID(p.ID)
	require.NoError(t, err)
	return got.RemainingQuantity
}

func float(v float64) *float64 { return &v }
