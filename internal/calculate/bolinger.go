package calculate

import "math"

// Default Bollinger parameters
const (
	BBPeriod = 20
	BBStdDev = 2.0
)

// BollingerBands calculates the bands over the last period closes using the population
// standard deviation. Short series collapse all three bands onto the last close.
func BollingerBands(closes []float64, period int, stdDev float64) (upper, middle, lower float64) {
	if len(closes) == 0 {
		return 0, 0, 0
	}
	if period <= 0 || len(closes) < period {
		last := closes[len(closes)-1]
		return last, last, last
	}

	window := closes[len(closes)-period:]
	middle = Average(window)

	var variance float64
	for _, c := range window {
		variance += math.Pow(c-middle, 2)
	}
	sd := math.Sqrt(variance / float64(period))

	upper = middle + (sd * stdDev)
	lower = middle - (sd * stdDev)

	return upper, middle, lower
}
