package metrics

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := New()
	m.Change("client-storage")
	m.Change("client-storage")
	m.Write("client-storage", nil)
	m.Write("client-storage", errors.New("disk full"))
	m.Rehydrate("invoice-storage", "seed")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.changes.WithLabelValues("client-storage")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.writes.WithLabelValues("client-storage", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.writes.WithLabelValues("client-storage", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rehydrations.WithLabelValues("invoice-storage", "seed")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.Change("x")
	m.Write("x", nil)
	m.Rehydrate("x", "seed")
	assert.Nil(t, m.Registry())
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.Write("quotation-storage", nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `devis_persist_writes_total{record="quotation-storage",result="ok"} 1`))
}
