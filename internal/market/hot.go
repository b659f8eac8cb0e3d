package market

import (
	"sort"
	"time"

	"github.com/Alias1177/CoinCast/models"
)

// HotTokenLimit is the length of each hot-token ranking
const HotTokenLimit = 15

// RankHotTokens ranks the snapshots by short-term move and by volume. The move is the 1h
// change when the feed supplies it, otherwise the 24h change.
func RankHotTokens(snapshots []models.AssetSnapshot, limit int, now time.Time) models.HotTokens {
	tokens := make([]models.HotToken, 0, len(snapshots))
	for i, s := range snapshots {
		change := s.PriceChangePct24h
		if s.PriceChangePct1h != nil {
			change = *s.PriceChangePct1h
		}
		tokens = append(tokens, models.HotToken{
			Rank:           i + 1,
			ID:             s.ID,
			Symbol:         s.Symbol,
			Name:           s.Name,
			Price:          s.CurrentPrice,
			PriceChangePct: change,
			Volume:         s.Volume24h,
			MarketCap:      s.MarketCap,
		})
	}

	return models.HotTokens{
		TopGainers: top(tokens, limit, func(a, b models.HotToken) bool {
			return a.PriceChangePct > b.PriceChangePct
		}),
		TopLosers: top(tokens, limit, func(a, b models.HotToken) bool {
			return a.PriceChangePct < b.PriceChangePct
		}),
		TopByVolume: top(tokens, limit, func(a, b models.HotToken) bool {
			return a.Volume > b.Volume
		}),
		LastUpdated: now,
	}
}

func top(tokens []models.HotToken, limit int, less func(a, b models.HotToken) bool) []models.HotToken {
	sorted := make([]models.HotToken, len(tokens))
	copy(sorted, tokens)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
