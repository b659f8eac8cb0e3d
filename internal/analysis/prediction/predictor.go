package prediction

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Alias1177/CoinCast/models"
)

// SignalsFunc supplies the auxiliary voting predicates for a snapshot once its expected return
// is known. It is consulted only in signal-voting mode.
type SignalsFunc func(ctx context.Context, snapshot models.AssetSnapshot, expectedReturnPct float64) (*models.TechnicalSignals, error)

// Recorder observes forecast outcomes
type Recorder interface {
	RecordForecast(profile string, result models.ForecastResult)
	RecordFailure(profile string, failure models.AssetFailure)
}

// Option configures a Forecaster
type Option func(*Forecaster)

// WithLogger sets the logger; the forecaster scopes it with its component name
func WithLogger(logger zerolog.Logger) Option {
	return func(f *Forecaster) {
		f.logger = logger.With().Str("component", "forecaster").Logger()
	}
}

// WithRecorder attaches a metrics recorder
func WithRecorder(r Recorder) Option {
	return func(f *Forecaster) {
		f.recorder = r
	}
}

// WithSignals enables signal-voting input
func WithSignals(fn SignalsFunc) Option {
	return func(f *Forecaster) {
		f.signals = fn
	}
}

// WithClock overrides the time source used for timestamps and fresh batch seeds
func WithClock(now func() time.Time) Option {
	return func(f *Forecaster) {
		f.now = now
	}
}

// Forecaster turns snapshots into forecasts under one profile.
// It holds no mutable state and is safe for concurrent use.
type Forecaster struct {
	cfg      Config
	logger   zerolog.Logger
	recorder Recorder
	signals  SignalsFunc
	now      func() time.Time
}

// NewForecaster validates the profile and builds a forecaster
func NewForecaster(cfg Config, opts ...Option) (*Forecaster, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	f := &Forecaster{
		cfg:    cfg,
		logger: zerolog.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Config returns the profile this forecaster runs
func (f *Forecaster) Config() Config {
	return f.cfg
}

// Forecast produces one forecast for the snapshot using the given random source
func (f *Forecaster) Forecast(ctx context.Context, snapshot models.AssetSnapshot, rnd RandomSource) (models.ForecastResult, error) {
	if err := ValidateSnapshot(snapshot); err != nil {
		return models.ForecastResult{}, err
	}

	// 1. Volatility
	volatility := EstimateVolatilityFrom(snapshot, f.cfg.VolatilitySource)

	// 2. Path, drift taken from the 1h trend
	drift := snapshot.HourlyChange() / 100
	points, err := SimulatePath(snapshot.CurrentPrice, drift, volatility,
		f.cfg.HorizonMinutes, f.cfg.StepMinutes, f.cfg.PathVariant, rnd)
	if err != nil {
		return models.ForecastResult{}, fmt.Errorf("simulate %s: %w", snapshot.ID, err)
	}

	confidences := make([]float64, len(points))
	for i := range points {
		points[i].Confidence = DecayConfidence(points[i].MinutesAhead, f.cfg.HorizonMinutes, f.cfg.Confidence)
		confidences[i] = points[i].Confidence
	}

	// 3. Expected return from the final point
	last := points[len(points)-1]
	expectedReturn := (last.Predicted - snapshot.CurrentPrice) / snapshot.CurrentPrice * 100
	if math.IsNaN(expectedReturn) || math.IsInf(expectedReturn, 0) {
		return models.ForecastResult{}, fmt.Errorf("expected return for %s: %w", snapshot.ID, ErrNumericOverflow)
	}

	// 4. Recommendation
	var signals *models.TechnicalSignals
	if f.signals != nil && f.cfg.RecommendationMode == ModeSignalVoting {
		signals, err = f.signals(ctx, snapshot, expectedReturn)
		if err != nil {
			f.logger.Warn().Err(err).Str("asset_id", snapshot.ID).Msg("Technical signals unavailable, using thresholds")
			signals = nil
		}
	}
	recommendation := Recommend(expectedReturn, f.cfg.RecommendationMode, signals)

	result := models.ForecastResult{
		Snapshot:          snapshot,
		Points:            points,
		Recommendation:    recommendation,
		Confidence:        aggregateConfidence(confidences, f.cfg.Aggregation),
		ExpectedReturnPct: expectedReturn,
		ProfitAt10x:       LeverageProfit(expectedReturn, f.cfg.Margin, Leverage10x),
		ProfitAt20x:       LeverageProfit(expectedReturn, f.cfg.Margin, Leverage20x),
		Volatility:        volatility,
		Signals:           signals,
		GeneratedAt:       f.now(),
	}

	f.logger.Debug().
		Str("asset_id", snapshot.ID).
		Float64("expected_return", expectedReturn).
		Str("recommendation", string(recommendation)).
		Msg("Forecast generated")

	return result, nil
}

type outcome struct {
	result models.ForecastResult
	err    error
}

// ForecastBatch forecasts every snapshot independently. A failing asset is recorded in
// Failures and never stops the rest; an empty input yields an empty result.
func (f *Forecaster) ForecastBatch(ctx context.Context, snapshots []models.AssetSnapshot) models.BatchResult {
	seed := f.cfg.Seed
	if seed == 0 {
		seed = f.now().UnixNano()
	}

	outcomes := make([]outcome, len(snapshots))
	run := func(i int) {
		res, err := f.Forecast(ctx, snapshots[i], assetSource(seed, i))
		outcomes[i] = outcome{result: res, err: err}
	}

	workers := min(f.cfg.Workers, len(snapshots))
	if workers <= 1 {
		for i := range snapshots {
			run(i)
		}
	} else {
		jobs := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					run(i)
				}
			}()
		}
		for i := range snapshots {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	}

	batch := models.BatchResult{
		RunID:       uuid.NewString(),
		Profile:     f.cfg.Name,
		Results:     make([]models.ForecastResult, 0, len(snapshots)),
		Failures:    []models.AssetFailure{},
		GeneratedAt: f.now(),
	}
	for i, o := range outcomes {
		if o.err != nil {
			failure := models.AssetFailure{AssetID: snapshots[i].ID, Symbol: snapshots[i].Symbol, Err: o.err}
			batch.Failures = append(batch.Failures, failure)
			f.logger.Warn().Err(o.err).Str("asset_id", failure.AssetID).Msg("Forecast failed")
			if f.recorder != nil {
				f.recorder.RecordFailure(f.cfg.Name, failure)
			}
			continue
		}
		batch.Results = append(batch.Results, o.result)
		if f.recorder != nil {
			f.recorder.RecordForecast(f.cfg.Name, o.result)
		}
	}

	f.logger.Info().
		Str("run_id", batch.RunID).
		Int("results", len(batch.Results)).
		Int("failures", len(batch.Failures)).
		Msg("Batch forecast complete")

	return batch
}

// ValidateSnapshot rejects non-positive prices and non-finite numeric fields
func ValidateSnapshot(s models.AssetSnapshot) error {
	if math.IsNaN(s.CurrentPrice) || s.CurrentPrice <= 0 || math.IsInf(s.CurrentPrice, 0) {
		return fmt.Errorf("%w: %s current price %v", ErrInvalidSnapshot, s.ID, s.CurrentPrice)
	}
	fields := map[string]float64{
		"high_24h":   s.High24h,
		"low_24h":    s.Low24h,
		"change_24h": s.PriceChangePct24h,
		"volume_24h": s.Volume24h,
		"market_cap": s.MarketCap,
	}
	if s.PriceChangePct1h != nil {
		fields["change_1h"] = *s.PriceChangePct1h
	}
	for name, v := range fields {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s %s is %v", ErrInvalidSnapshot, s.ID, name, v)
		}
	}
	return nil
}
