package board

import (
	"sync/atomic"

	"github.com/Alias1177/CoinCast/models"
)

// Board publishes the latest batch forecast and hot-token rankings.
// Each refresh replaces a value wholesale; readers never see a partial update.
type Board struct {
	forecasts atomic.Pointer[models.BatchResult]
	hot       atomic.Pointer[models.HotTokens]
}

// New creates an empty board
func New() *Board {
	return &Board{}
}

// PublishForecasts replaces the latest batch
func (b *Board) PublishForecasts(batch models.BatchResult) {
	b.forecasts.Store(&batch)
}

// PublishHot replaces the latest hot-token rankings
func (b *Board) PublishHot(hot models.HotTokens) {
	b.hot.Store(&hot)
}

// Latest returns the latest batch, or false before the first refresh
func (b *Board) Latest() (models.BatchResult, bool) {
	p := b.forecasts.Load()
	if p == nil {
		return models.BatchResult{}, false
	}
	return *p, true
}

// Find returns the latest forecast for one asset. ready is false before the first refresh.
func (b *Board) Find(assetID string) (result models.ForecastResult, found, ready bool) {
	p := b.forecasts.Load()
	if p == nil {
		return models.ForecastResult{}, false, false
	}
	result, found = p.Find(assetID)
	return result, found, true
}

// Hot returns the latest hot tokens, or false before the first refresh
func (b *Board) Hot() (models.HotTokens, bool) {
	p := b.hot.Load()
	if p == nil {
		return models.HotTokens{}, false
	}
	return *p, true
}
