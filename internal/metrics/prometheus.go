package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Alias1177/CoinCast/models"
)

// Forecast outcomes
const (
	OutcomeOK     = "ok"
	OutcomeFailed = "failed"
)

// Recorder implements prediction.Recorder and market.ErrorObserver using Prometheus.
type Recorder struct {
	registry *prometheus.Registry

	forecasts       *prometheus.CounterVec
	feedErrors      *prometheus.CounterVec
	expectedReturn  *prometheus.GaugeVec
	refreshDuration prometheus.Histogram
}

// NewRegistry returns a registry carrying the Go runtime and process collectors
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// New creates a new Prometheus metrics recorder on the given registry.
func New(reg *prometheus.Registry) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		registry: reg,
		forecasts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coincast_forecasts_total",
				Help: "Total number of per-asset forecasts by profile and outcome",
			},
			[]string{"profile", "outcome"},
		),
		feedErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coincast_feed_errors_total",
				Help: "Total number of market feed failures",
			},
			[]string{"source"},
		),
		expectedReturn: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "coincast_expected_return_pct",
				Help: "Expected return of the latest forecast for a symbol, in percent",
			},
			[]string{"symbol"},
		),
		refreshDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "coincast_refresh_duration_seconds",
				Help:    "Duration of forecast board refreshes in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

// RecordForecast records a successful forecast.
func (r *Recorder) RecordForecast(profile string, result models.ForecastResult) {
	r.forecasts.WithLabelValues(profile, OutcomeOK).Inc()
	r.expectedReturn.WithLabelValues(result.Snapshot.Symbol).Set(result.ExpectedReturnPct)
}

// RecordFailure records an asset that produced no forecast.
func (r *Recorder) RecordFailure(profile string, _ models.AssetFailure) {
	r.forecasts.WithLabelValues(profile, OutcomeFailed).Inc()
}

// FeedError records a market source failure.
func (r *Recorder) FeedError(source string) {
	r.feedErrors.WithLabelValues(source).Inc()
}

// ObserveRefresh records how long a refresh took in seconds.
func (r *Recorder) ObserveRefresh(seconds float64) {
	r.refreshDuration.Observe(seconds)
}

// Handler exposes the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
