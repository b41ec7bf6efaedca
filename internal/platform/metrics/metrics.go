// Package metrics exposes the Prometheus collectors used by the server.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blood_desk"

// Metrics groups every collector registered by the server.
type Metrics struct {
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	stockUnits       *prometheus.GaugeVec
	stockAdjustments *prometheus.CounterVec
	stockRejections  *prometheus.CounterVec
}

// New registers all collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		stockUnits: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stock_units",
			Help:      "Units on hand per blood group as last read or adjusted.",
		}, []string{"blood_group"}),
		stockAdjustments: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_adjustments_total",
			Help:      "Committed stock adjustments by blood group and reason.",
		}, []string{"blood_group", "reason"}),
		stockRejections: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_adjustments_rejected_total",
			Help:      "Rejected stock adjustments by cause.",
		}, []string{"cause"}),
	}
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, route, status string, latency time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(latency.Seconds())
}

// StockAdjusted records a committed adjustment and the resulting level.
func (m *Metrics) StockAdjusted(group, reason string, units int) {
	if m == nil {
		return
	}
	m.stockAdjustments.WithLabelValues(group, reason).Inc()
	m.stockUnits.WithLabelValues(group).Set(float64(units))
}

// StockLevelObserved sets the gauge for a group without counting an adjustment.
func (m *Metrics) StockLevelObserved(group string, units int) {
	if m == nil {
		return
	}
	m.stockUnits.WithLabelValues(group).Set(float64(units))
}

// StockRejected records an adjustment refused before commit.
func (m *Metrics) StockRejected(cause string) {
	if m == nil {
		return
	}
	m.stockRejections.WithLabelValues(cause).Inc()
}
