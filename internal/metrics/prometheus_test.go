package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alias1177/CoinCast/models"
)

// value returns the counter or gauge value of the series with the given labels
func value(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metrics:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if labels[lp.GetName()] != lp.GetValue() {
					continue metrics
				}
			}
			switch {
			case m.GetCounter() != nil:
				return m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				return m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				return float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	t.Fatalf("series %s%v not found", name, labels)
	return 0
}

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	result := models.ForecastResult{Snapshot: models.AssetSnapshot{Symbol: "BTC"}, ExpectedReturnPct: 1.25}
	r.RecordForecast("batch", result)
	r.RecordForecast("batch", result)
	r.RecordFailure("batch", models.AssetFailure{AssetID: "x", Err: errors.New("boom")})
	r.FeedError("coingecko")
	r.ObserveRefresh(0.3)

	assert.Equal(t, 2.0, value(t, reg, "coincast_forecasts_total", map[string]string{"profile": "batch", "outcome": OutcomeOK}))
	assert.Equal(t, 1.0, value(t, reg, "coincast_forecasts_total", map[string]string{"profile": "batch", "outcome": OutcomeFailed}))
	assert.Equal(t, 1.25, value(t, reg, "coincast_expected_return_pct", map[string]string{"symbol": "BTC"}))
	assert.Equal(t, 1.0, value(t, reg, "coincast_feed_errors_total", map[string]string{"source": "coingecko"}))
	assert.Equal(t, 1.0, value(t, reg, "coincast_refresh_duration_seconds", nil))
}

func TestHandler(t *testing.T) {
	r := New(NewRegistry())
	r.FeedError("mock")

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), `coincast_feed_errors_total{source="mock"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
