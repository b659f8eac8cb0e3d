package prediction

// DefaultMargin is the hypothetical initial margin the profit figures are quoted against
const DefaultMargin = 1050.0

// Leverage presets shown next to every forecast
const (
	Leverage10x = 10.0
	Leverage20x = 20.0
)

// LeverageProfit returns the hypothetical profit of a leveraged position that captures the
// expected return. The sign follows the expected return and the result is not clamped, so a
// loss can exceed the margin; liquidation is not modelled.
func LeverageProfit(expectedReturnPct, initialMargin, leverage float64) float64 {
	return initialMargin * (expectedReturnPct / 100) * leverage
}
