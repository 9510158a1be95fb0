package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg *prometheus.Registry

	OrdersCreated      prometheus.Counter
	OrderRejections    *prometheus.CounterVec
	Reallocations      prometheus.Counter
	ReallocatedOrders  prometheus.Counter
	ReallocationFailed prometheus.Counter
	ReallocationSec    prometheus.Histogram
	MissingProducts    prometheus.Counter
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	created := prometheus.NewCounter(prometheus.CounterOpts{Name: "tracker_orders_created_total"})
	rejections := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "tracker_order_rejections_total"}, []string{"reason"})
	reallocations := prometheus.NewCounter(prometheus.CounterOpts{Name: "tracker_event_reallocations_total"})
	reallocated := prometheus.NewCounter(prometheus.CounterOpts{Name: "tracker_reallocated_orders_total"})
	failed := prometheus.NewCounter(prometheus.CounterOpts{Name: "tracker_event_reallocation_failures_total"})
	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "tracker_event_reallocation_seconds",
		Buckets: prometheus.DefBuckets,
	})
	missing := prometheus.NewCounter(prometheus.CounterOpts{Name: "tracker_cost_missing_products_total"})

	r.MustRegister(created, rejections, reallocations, reallocated, failed, latency, missing)
	return &Registry{
		reg:                r,
		OrdersCreated:      created,
		OrderRejections:    rejections,
		Reallocations:      reallocations,
		ReallocatedOrders:  reallocated,
		ReallocationFailed: failed,
		ReallocationSec:    latency,
		MissingProducts:    missing,
	}
}

func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
