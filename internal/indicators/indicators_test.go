package indicators

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alias1177/CoinCast/models"
)

type stubHistory struct {
	candles []models.Candle
	err     error
	calls   int
}

func (s *stubHistory) Candles(context.Context, models.AssetSnapshot, string, int) ([]models.Candle, error) {
	s.calls++
	return s.candles, s.err
}

func candles(n int, f func(i int) float64) []models.Candle {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]models.Candle, n)
	for i := range out {
		c := f(i)
		out[i] = models.Candle{Time: start.Add(time.Duration(i) * 15 * time.Minute), Open: c, High: c, Low: c, Close: c}
	}
	return out
}

func TestCompute(t *testing.T) {
	rising := make([]float64, 60)
	for i := range rising {
		rising[i] = 100 + float64(i)
	}

	tests := []struct {
		name        string
		closes      []float64
		price       float64
		r           float64
		wantBullish int
		wantBearish int
	}{
		// overbought RSI, positive histogram, price far above the upper band
		{"steady rally", rising, 500, 3, 2, 2},
		{"steady rally with negative outlook", rising, 159, -3, 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Compute(tt.closes, tt.price, tt.r)
			bullish, bearish := s.Votes()
			assert.Equal(t, tt.wantBullish, bullish)
			assert.Equal(t, tt.wantBearish, bearish)
			assert.Equal(t, 100.0, s.RSI)
			// closes rise by one: the last five gained 4 from 155, the last ten gained 9
			assert.InDelta(t, 4.0/155*100, s.PriceChange, 1e-9)
			assert.InDelta(t, 9.0, s.Momentum, 1e-9)
			assert.InDelta(t, 149.5, s.BBMiddle, 1e-9)
			assert.InDelta(t, 0.9*s.MACD, s.MACDSignal, 1e-9)
			assert.Greater(t, s.EMA, 0.0)
		})
	}
}

func TestCompute_ShortSeries(t *testing.T) {
	s := Compute([]float64{1, 2}, 2, 5)
	bullish, bearish := s.Votes()
	assert.Equal(t, 1, bullish)
	assert.Equal(t, 0, bearish)
	assert.True(t, s.Bullish[0])
}

func TestProvider_Signals(t *testing.T) {
	history := &stubHistory{candles: candles(120, func(i int) float64 { return 200 - float64(i) })}
	p := NewProvider(history, zerolog.Nop())

	snapshot := models.AssetSnapshot{ID: "bitcoin", Symbol: "btc", CurrentPrice: 10}
	s, err := p.Signals(context.Background(), snapshot, -4)
	require.NoError(t, err)

	// oversold, falling MACD, price below the lower band, negative outlook
	assert.True(t, s.Bearish[0])
	assert.True(t, s.Bullish[1])
	assert.True(t, s.Bearish[2])
	assert.True(t, s.Bullish[3])

	_, err = p.Signals(context.Background(), snapshot, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, history.calls)
}

func TestProvider_CacheExpires(t *testing.T) {
	history := &stubHistory{candles: candles(40, func(i int) float64 { return 100 + float64(i%3) })}
	p := newProvider(history, zerolog.Nop(), 20*time.Millisecond)

	snapshot := models.AssetSnapshot{ID: "ethereum", CurrentPrice: 101}
	_, err := p.Signals(context.Background(), snapshot, 0)
	require.NoError(t, err)
	_, err = p.Signals(context.Background(), snapshot, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, history.calls)

	time.Sleep(60 * time.Millisecond)
	_, err = p.Signals(context.Background(), snapshot, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, history.calls)
}

func TestProvider_Errors(t *testing.T) {
	snapshot := models.AssetSnapshot{ID: "solana", CurrentPrice: 150}

	short := NewProvider(&stubHistory{candles: candles(5, func(int) float64 { return 150 })}, zerolog.Nop())
	_, err := short.Signals(context.Background(), snapshot, 0)
	assert.ErrorIs(t, err, ErrInsufficientHistory)

	feedErr := errors.New("feed down")
	failing := NewProvider(&stubHistory{err: feedErr}, zerolog.Nop())
	_, err = failing.Signals(context.Background(), snapshot, 0)
	assert.ErrorIs(t, err, feedErr)
}
