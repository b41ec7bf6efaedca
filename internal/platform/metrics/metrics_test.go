package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveRequest("GET", "/api/stock", "200", 10*time.Millisecond)
	m.StockAdjusted("O+", "donation", 7)
	m.StockAdjusted("O+", "donation", 9)
	m.StockRejected("insufficient_stock")
	m.StockLevelObserved("AB-", 3)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/stock", "200")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.stockAdjustments.WithLabelValues("O+", "donation")))
	assert.Equal(t, 9.0, testutil.ToFloat64(m.stockUnits.WithLabelValues("O+")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.stockRejections.WithLabelValues("insufficient_stock")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.stockUnits.WithLabelValues("AB-")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.stockAdjustments.WithLabelValues("AB-", "adjust")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRequest("GET", "/", "200", time.Millisecond)
		m.StockAdjusted("O+", "issue", 1)
		m.StockRejected("invalid_group")
		m.StockLevelObserved("O-", 0)
	})
}
