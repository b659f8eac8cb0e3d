package market

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"github.com/Alias1177/CoinCast/models"
)

// SyntheticHistory produces random-walk candles that end at the snapshot price.
// The walk for an asset is fixed by the seed, the asset id and the latest candle time.
type SyntheticHistory struct {
	seed int64
	now  func() time.Time
}

// NewSyntheticHistory creates a history generator
func NewSyntheticHistory(seed int64) *SyntheticHistory {
	return &SyntheticHistory{seed: seed, now: time.Now}
}

// Candles implements models.HistorySource
func (h *SyntheticHistory) Candles(_ context.Context, snapshot models.AssetSnapshot, interval string, days int) ([]models.Candle, error) {
	width := models.IntervalDuration(interval)
	n := models.CandlesForDays(interval, days)
	if width == 0 || n == 0 {
		return nil, fmt.Errorf("unsupported history window %s x %d days", interval, days)
	}
	if !(snapshot.CurrentPrice > 0) {
		return nil, fmt.Errorf("synthetic history for %s: non-positive price", snapshot.ID)
	}

	end := h.now().UTC().Truncate(width)
	rnd := rand.New(rand.NewSource(h.assetSeed(snapshot.ID, end)))

	// per-candle volatility from the daily change, spread over the candles of one day
	daily := math.Abs(snapshot.PriceChangePct24h) / 100
	if daily == 0 {
		daily = 0.02
	}
	perCandle := daily / math.Sqrt(float64(models.CandlesForDays(interval, 1)))

	// walk backwards from the current price
	closes := make([]float64, n)
	closes[n-1] = snapshot.CurrentPrice
	for i := n - 2; i >= 0; i-- {
		step := (rnd.Float64() - 0.5) * 2 * perCandle
		closes[i] = closes[i+1] / (1 + step)
	}

	candles := make([]models.Candle, n)
	for i, c := range closes {
		open := c
		if i > 0 {
			open = closes[i-1]
		}
		wick := c * perCandle * rnd.Float64() / 2
		candles[i] = models.Candle{
			Time:   end.Add(-time.Duration(n-1-i) * width),
			Open:   open,
			High:   math.Max(open, c) + wick,
			Low:    math.Max(0, math.Min(open, c)-wick),
			Close:  c,
			Volume: snapshot.Volume24h / float64(models.CandlesForDays(interval, 1)),
		}
	}
	return candles, nil
}

func (h *SyntheticHistory) assetSeed(id string, end time.Time) int64 {
	f := fnv.New64a()
	f.Write([]byte(id))
	return h.seed ^ int64(f.Sum64()) ^ end.Unix()
}
