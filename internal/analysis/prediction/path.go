package prediction

import (
	"fmt"
	"math"

	"github.com/Alias1177/CoinCast/models"
)

// z-score of a two-sided 95% normal interval
const bandZ = 1.96

// Mean-reversion blend weights. Heuristic tuning kept for parity with the dashboard's
// behaviour, not derived from any fitted model.
const (
	reversionKeep   = 0.7
	reversionAnchor = 0.3
)

// SimulatePath walks the price forward in stepMinutes increments up to horizonMinutes.
// Each step applies a linear drift scaled by elapsed hours plus a uniform shock bounded by
// one hourly-volatility unit, and records a band whose width grows with sqrt(elapsed hours).
// Confidence is left for the caller to fill.
func SimulatePath(currentPrice, driftPerHour, hourlyVolatility float64, horizonMinutes, stepMinutes int,
	variant PathVariant, rnd RandomSource) ([]models.ForecastPoint, error) {

	if stepMinutes <= 0 || horizonMinutes < stepMinutes {
		return nil, fmt.Errorf("%w: horizon %d, step %d", ErrInvalidConfig, horizonMinutes, stepMinutes)
	}
	if variant != PathAccumulator && variant != PathMeanReverting {
		return nil, fmt.Errorf("%w: unknown path variant %q", ErrInvalidConfig, variant)
	}
	if !(currentPrice > 0) || math.IsInf(currentPrice, 0) {
		return nil, fmt.Errorf("%w: current price %v", ErrInvalidSnapshot, currentPrice)
	}
	if math.IsNaN(driftPerHour) || math.IsInf(driftPerHour, 0) ||
		math.IsNaN(hourlyVolatility) || math.IsInf(hourlyVolatility, 0) {
		return nil, fmt.Errorf("%w: drift %v, volatility %v", ErrNumericOverflow, driftPerHour, hourlyVolatility)
	}
	hourlyVolatility = math.Abs(hourlyVolatility)

	steps := horizonMinutes / stepMinutes
	points := make([]models.ForecastPoint, 0, steps)
	seed := currentPrice

	for i := 1; i <= steps; i++ {
		minutesAhead := i * stepMinutes
		elapsedHours := float64(minutesAhead) / 60

		drift := driftPerHour * elapsedHours
		shock := (rnd.Float64() - 0.5) * 2 * hourlyVolatility
		next := seed * (1 + drift + shock)
		if math.IsNaN(next) || math.IsInf(next, 0) {
			return nil, fmt.Errorf("%w: step %d produced %v", ErrNumericOverflow, i, next)
		}

		predicted := next
		degenerate := false
		if predicted < 0 {
			predicted = 0
			degenerate = true
		}

		halfWidth := bandZ * predicted * hourlyVolatility * math.Sqrt(elapsedHours)
		upper := predicted + halfWidth
		lower := predicted - halfWidth
		if math.IsInf(upper, 0) || math.IsNaN(halfWidth) {
			return nil, fmt.Errorf("%w: band at step %d", ErrNumericOverflow, i)
		}
		if lower < 0 {
			lower = 0
			degenerate = true
		}

		points = append(points, models.ForecastPoint{
			MinutesAhead: minutesAhead,
			Predicted:    predicted,
			UpperBound:   upper,
			LowerBound:   lower,
			Degenerate:   degenerate,
		})

		switch variant {
		case PathMeanReverting:
			seed = predicted*reversionKeep + currentPrice*reversionAnchor
		default:
			seed = predicted
		}
	}

	return points, nil
}
