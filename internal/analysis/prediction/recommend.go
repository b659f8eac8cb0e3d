package prediction

import "github.com/Alias1177/CoinCast/models"

// Threshold-mode cut-offs, in expected-return percent. Comparisons are strict, so a return of
// exactly 0.5 is NEUTRAL/HOLD.
const (
	neutralBand = 0.5
	strongBand  = 2.0
)

// Recommend maps an expected return to a label. In signal-voting mode the auxiliary predicates
// decide; without them it falls back to the five-level thresholds.
func Recommend(expectedReturnPct float64, mode RecommendationMode, signals *models.TechnicalSignals) models.Label {
	switch mode {
	case ModeSimple5:
		return recommendFiveLevel(expectedReturnPct)
	case ModeSignalVoting:
		if signals == nil {
			return recommendFiveLevel(expectedReturnPct)
		}
		return recommendByVotes(*signals)
	default:
		return recommendThreeLevel(expectedReturnPct)
	}
}

func recommendThreeLevel(r float64) models.Label {
	if r > neutralBand {
		return models.LabelLong
	} else if r < -neutralBand {
		return models.LabelShort
	}
	return models.LabelNeutral
}

func recommendFiveLevel(r float64) models.Label {
	if r > strongBand {
		return models.LabelStrongBuy
	} else if r > neutralBand {
		return models.LabelBuy
	} else if r > -neutralBand {
		return models.LabelHold
	} else if r > -strongBand {
		return models.LabelSell
	}
	return models.LabelStrongSell
}

// recommendByVotes counts bullish and bearish predicates; bullish majorities win ties
func recommendByVotes(signals models.TechnicalSignals) models.Label {
	bullishSignals, bearishSignals := signals.Votes()

	if bullishSignals >= 3 {
		return models.LabelStrongBuy
	} else if bullishSignals >= 2 {
		return models.LabelBuy
	} else if bearishSignals >= 3 {
		return models.LabelStrongSell
	} else if bearishSignals >= 2 {
		return models.LabelSell
	}
	return models.LabelHold
}
