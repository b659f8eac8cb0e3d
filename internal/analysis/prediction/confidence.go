package prediction

import "math"

// DecayConfidence maps a step's distance into the horizon to a confidence score.
// It falls linearly from the preset ceiling by up to spread points and never drops below the floor.
func DecayConfidence(minutesAhead, horizonMinutes int, preset ConfidencePreset) float64 {
	if horizonMinutes <= 0 {
		return preset.Floor
	}
	fraction := float64(minutesAhead) / float64(horizonMinutes)
	return math.Max(preset.Floor, preset.Ceiling-fraction*preset.Spread)
}

func aggregateConfidence(confidences []float64, mode Aggregation) float64 {
	if len(confidences) == 0 {
		return 0
	}
	if mode == AggregateMeanOfPoints {
		var sum float64
		for _, c := range confidences {
			sum += c
		}
		return sum / float64(len(confidences))
	}
	return confidences[len(confidences)-1]
}
