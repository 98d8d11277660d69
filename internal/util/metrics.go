package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BillsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bills_created_total",
		Help: "Total number of bills created",
	})

	BillsRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bills_rejected_total",
		Help: "Total number of rejected bill attempts",
	}, []string{"reason"})

	CustomersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "customers_created_total",
		Help: "Total number of customers created",
	})

	CustomersReusedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "customers_reused_total",
		Help: "Total number of billing requests that matched an existing customer by phone",
	})

	OrderStatusChangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_changes_total",
		Help: "Total number of order status transitions",
	}, []string{"to"})

	OrderTransitionsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "order_transitions_rejected_total",
		Help: "Total number of rejected order status transitions",
	})

	StockAlertsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_alerts_total",
		Help: "Total number of stock alerts raised by the stock worker",
	}, []string{"kind"})

	StockDeductionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stock_deductions_total",
		Help: "Total number of stock deductions applied from bill events",
	})

	DashboardCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_cache_hits_total",
		Help: "Dashboard stats served from the Redis cache",
	})

	DashboardCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_cache_misses_total",
		Help: "Dashboard stats computed from the store",
	})

	BillCreateLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bill_create_latency_seconds",
		Help:    "Latency of bill creation",
		Buckets: prometheus.DefBuckets,
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
