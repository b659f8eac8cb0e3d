package prediction

import (
	"math"

	"github.com/Alias1177/CoinCast/models"
)

// DefaultDailyVolatility is used when the snapshot carries no usable volatility signal
const DefaultDailyVolatility = 0.02

var hoursPerDaySqrt = math.Sqrt(24)

// EstimateVolatility returns the hourly volatility implied by the 24h percent change.
// The result is always positive.
func EstimateVolatility(snapshot models.AssetSnapshot) float64 {
	return toHourly(changeVolatility(snapshot))
}

// RangeVolatility returns the hourly volatility implied by the 24h high/low range relative to
// the current price. Inverted or empty ranges fall back to the 24h change signal.
func RangeVolatility(snapshot models.AssetSnapshot) float64 {
	if snapshot.CurrentPrice > 0 {
		daily := (snapshot.High24h - snapshot.Low24h) / snapshot.CurrentPrice
		if daily > 0 && !math.IsInf(daily, 0) {
			return toHourly(daily)
		}
	}
	return EstimateVolatility(snapshot)
}

// EstimateVolatilityFrom dispatches on the configured signal
func EstimateVolatilityFrom(snapshot models.AssetSnapshot, source VolatilitySource) float64 {
	if source == VolatilityFromRange {
		return RangeVolatility(snapshot)
	}
	return EstimateVolatility(snapshot)
}

func changeVolatility(snapshot models.AssetSnapshot) float64 {
	daily := math.Abs(snapshot.PriceChangePct24h) / 100
	if daily == 0 || math.IsNaN(daily) || math.IsInf(daily, 0) {
		return DefaultDailyVolatility
	}
	return daily
}

// toHourly scales a daily figure by sqrt(24) and floors it at the default
func toHourly(daily float64) float64 {
	hourly := daily / hoursPerDaySqrt
	if !(hourly > 0) || math.IsInf(hourly, 0) {
		return DefaultDailyVolatility / hoursPerDaySqrt
	}
	return hourly
}
