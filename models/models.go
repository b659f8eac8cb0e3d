package models

import (
	"encoding/json"
	"time"
)

// Label is a discrete trading recommendation
type Label string

// Three-level labels
const (
	LabelLong    Label = "LONG"
	LabelShort   Label = "SHORT"
	LabelNeutral Label = "NEUTRAL"
)

// Five-level labels, shared by the threshold and signal-voting modes
const (
	LabelStrongBuy  Label = "STRONG_BUY"
	LabelBuy        Label = "BUY"
	LabelHold       Label = "HOLD"
	LabelSell       Label = "SELL"
	LabelStrongSell Label = "STRONG_SELL"
)

// AssetSnapshot is a single asset's current market data point.
// High24h >= CurrentPrice >= Low24h is expected but not guaranteed by feeds.
type AssetSnapshot struct {
	ID                string    `json:"id" validate:"required"`
	Symbol            string    `json:"symbol" validate:"required"`
	Name              string    `json:"name"`
	CurrentPrice      float64   `json:"current_price" validate:"gt=0"`
	High24h           float64   `json:"high_24h"`
	Low24h            float64   `json:"low_24h"`
	PriceChangePct24h float64   `json:"price_change_percentage_24h"`
	PriceChangePct1h  *float64  `json:"price_change_percentage_1h_in_currency,omitempty"`
	Volume24h         float64   `json:"total_volume"`
	MarketCap         float64   `json:"market_cap"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// HourlyChange returns the 1h percent change or zero when the feed did not supply it
func (s AssetSnapshot) HourlyChange() float64 {
	if s.PriceChangePct1h == nil {
		return 0
	}
	return *s.PriceChangePct1h
}

// ForecastPoint is one step of a simulated price path
type ForecastPoint struct {
	MinutesAhead int     `json:"minutes_ahead"`
	Predicted    float64 `json:"predicted"`
	UpperBound   float64 `json:"upper_bound"`
	LowerBound   float64 `json:"lower_bound"`
	Confidence   float64 `json:"confidence"`           // 0-100
	Degenerate   bool    `json:"degenerate,omitempty"` // a value was clamped at zero
}

// ForecastResult is the complete forecast for one asset. It is built fresh on every
// invocation and never mutated afterwards.
type ForecastResult struct {
	Snapshot          AssetSnapshot     `json:"snapshot"`
	Points            []ForecastPoint   `json:"points"`
	Recommendation    Label             `json:"recommendation"`
	Confidence        float64           `json:"confidence"`
	ExpectedReturnPct float64           `json:"expected_return_pct"`
	ProfitAt10x       float64           `json:"profit_at_10x"`
	ProfitAt20x       float64           `json:"profit_at_20x"`
	Volatility        float64           `json:"hourly_volatility"`
	Signals           *TechnicalSignals `json:"signals,omitempty"`
	GeneratedAt       time.Time         `json:"generated_at"`
}

// Last returns the final point of the path
func (r ForecastResult) Last() ForecastPoint {
	return r.Points[len(r.Points)-1]
}

// AssetFailure records why one asset of a batch produced no forecast
type AssetFailure struct {
	AssetID string `json:"asset_id"`
	Symbol  string `json:"symbol"`
	Err     error  `json:"-"`
}

// MarshalJSON renders the error as its message
func (f AssetFailure) MarshalJSON() ([]byte, error) {
	msg := ""
	if f.Err != nil {
		msg = f.Err.Error()
	}
	return json.Marshal(struct {
		AssetID string `json:"asset_id"`
		Symbol  string `json:"symbol"`
		Error   string `json:"error"`
	}{f.AssetID, f.Symbol, msg})
}

// BatchResult collects per-asset forecasts and per-asset failures of one batch run
type BatchResult struct {
	RunID       string           `json:"run_id"`
	Profile     string           `json:"profile"`
	Results     []ForecastResult `json:"results"`
	Failures    []AssetFailure   `json:"failures"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// Find returns the forecast for the given asset id
func (b *BatchResult) Find(assetID string) (ForecastResult, bool) {
	for _, r := range b.Results {
		if r.Snapshot.ID == assetID {
			return r, true
		}
	}
	return ForecastResult{}, false
}

// SignalCount is the number of auxiliary predicates on each side of a vote
const SignalCount = 4

// TechnicalSignals holds the bullish and bearish predicates used by the voting recommendation.
// Index order: expected return, RSI, MACD histogram, Bollinger breach.
type TechnicalSignals struct {
	Bullish [SignalCount]bool `json:"bullish"`
	Bearish [SignalCount]bool `json:"bearish"`

	RSI         float64 `json:"rsi"`
	MACD        float64 `json:"macd"`
	MACDSignal  float64 `json:"macd_signal"`
	MACDHist    float64 `json:"macd_hist"`
	BBUpper     float64 `json:"bb_upper"`
	BBMiddle    float64 `json:"bb_middle"`
	BBLower     float64 `json:"bb_lower"`
	EMA         float64 `json:"ema"`
	PriceChange float64 `json:"price_change_pct"` // over the last 5 candles
	Momentum    float64 `json:"momentum"`
}

// Votes counts the bullish and bearish predicates that hold
func (s TechnicalSignals) Votes() (bullish, bearish int) {
	for i := 0; i < SignalCount; i++ {
		if s.Bullish[i] {
			bullish++
		}
		if s.Bearish[i] {
			bearish++
		}
	}
	return bullish, bearish
}

// Candle represents a single price candle
type Candle struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume,omitempty"`
}

// Closes extracts close prices, oldest first
func Closes(candles []Candle) []float64 {
	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	return closes
}

// HotToken is an asset ranked by short-term movement or volume
type HotToken struct {
	Rank           int     `json:"rank"`
	ID             string  `json:"id"`
	Symbol         string  `json:"symbol"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	PriceChangePct float64 `json:"price_change_pct"`
	Volume         float64 `json:"volume"`
	MarketCap      float64 `json:"market_cap"`
}

// HotTokens groups the three rankings published on the fast refresh tick
type HotTokens struct {
	TopGainers  []HotToken `json:"top_gainers"`
	TopLosers   []HotToken `json:"top_losers"`
	TopByVolume []HotToken `json:"top_by_volume"`
	LastUpdated time.Time  `json:"last_updated"`
}
