package indicators

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"

	"github.com/Alias1177/CoinCast/internal/calculate"
	"github.com/Alias1177/CoinCast/models"
)

// Thresholds of the voting predicates
const (
	returnThreshold = 2.0
	rsiOversold     = 30.0
	rsiOverbought   = 70.0
)

const (
	defaultInterval = "15min"
	defaultDays     = 1
	// window of closes the indicators are computed over
	lookback = 100
	cacheTTL = 5 * time.Minute
	// one entry per asset; the top-by-volume list never exceeds 250
	cacheSize = 256
)

// ErrInsufficientHistory is returned when the history is too short for RSI
var ErrInsufficientHistory = errors.New("insufficient price history")

// Compute evaluates the bullish and bearish predicates for the closes, the current price and
// the forecast's expected return.
func Compute(closes []float64, price, expectedReturnPct float64) models.TechnicalSignals {
	ind, ok := calculate.CalculateAllIndicators(closes)
	if !ok {
		// too short for the indicators; only the forecast itself votes
		return models.TechnicalSignals{
			Bullish: [models.SignalCount]bool{expectedReturnPct > returnThreshold},
			Bearish: [models.SignalCount]bool{expectedReturnPct < -returnThreshold},
			RSI:     50,
		}
	}

	return models.TechnicalSignals{
		Bullish: [models.SignalCount]bool{
			expectedReturnPct > returnThreshold,
			ind.RSI < rsiOversold,
			ind.MACDHist > 0,
			price < ind.BBLower,
		},
		Bearish: [models.SignalCount]bool{
			expectedReturnPct < -returnThreshold,
			ind.RSI > rsiOverbought,
			ind.MACDHist < 0,
			price > ind.BBUpper,
		},
		RSI:         ind.RSI,
		MACD:        ind.MACD,
		MACDSignal:  ind.MACDSignal,
		MACDHist:    ind.MACDHist,
		BBUpper:     ind.BBUpper,
		BBMiddle:    ind.BBMiddle,
		BBLower:     ind.BBLower,
		EMA:         ind.EMA,
		PriceChange: ind.PriceChange,
		Momentum:    ind.Momentum,
	}
}

// Provider computes technical signals from a history source, caching closes per asset
type Provider struct {
	history  models.HistorySource
	interval string
	days     int
	logger   zerolog.Logger
	cache    *expirable.LRU[string, []float64]
}

// NewProvider creates a provider reading 15-minute candles for the last day
func NewProvider(history models.HistorySource, logger zerolog.Logger) *Provider {
	return newProvider(history, logger, cacheTTL)
}

func newProvider(history models.HistorySource, logger zerolog.Logger, ttl time.Duration) *Provider {
	return &Provider{
		history:  history,
		interval: defaultInterval,
		days:     defaultDays,
		logger:   logger.With().Str("component", "indicators").Logger(),
		cache:    expirable.NewLRU[string, []float64](cacheSize, nil, ttl),
	}
}

// Signals has the shape of prediction.SignalsFunc
func (p *Provider) Signals(ctx context.Context, snapshot models.AssetSnapshot, expectedReturnPct float64) (*models.TechnicalSignals, error) {
	closes, err := p.closes(ctx, snapshot)
	if err != nil {
		return nil, err
	}
	if len(closes) < calculate.RSIPeriod+1 {
		return nil, fmt.Errorf("%s: %d closes: %w", snapshot.ID, len(closes), ErrInsufficientHistory)
	}

	signals := Compute(closes, snapshot.CurrentPrice, expectedReturnPct)
	return &signals, nil
}

func (p *Provider) closes(ctx context.Context, snapshot models.AssetSnapshot) ([]float64, error) {
	key := p.cacheKey(snapshot.ID)
	if closes, ok := p.cache.Get(key); ok {
		return closes, nil
	}

	candles, err := p.history.Candles(ctx, snapshot, p.interval, p.days)
	if err != nil {
		return nil, fmt.Errorf("fetch history for %s: %w", snapshot.ID, err)
	}
	closes := models.Closes(candles)
	if len(closes) > lookback {
		closes = closes[len(closes)-lookback:]
	}
	p.cache.Add(key, closes)

	p.logger.Debug().Str("asset_id", snapshot.ID).Int("closes", len(closes)).Msg("History cached")
	return closes, nil
}

func (p *Provider) cacheKey(assetID string) string {
	return fmt.Sprintf("%s_%s_%d", assetID, p.interval, p.days)
}
