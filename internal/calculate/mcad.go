package calculate

// Default MACD periods
const (
	MACDFastPeriod = 12
	MACDSlowPeriod = 26
)

// The signal line is approximated as a fixed fraction of the MACD line instead of a
// 9-period EMA of its history, so the histogram always carries the sign of the MACD.
const macdSignalFactor = 0.9

// MACD returns the MACD line, its approximated signal line and the histogram
func MACD(closes []float64, fastPeriod, slowPeriod int) (macd, signal, histogram float64) {
	if len(closes) == 0 {
		return 0, 0, 0
	}

	macd = EMA(closes, fastPeriod) - EMA(closes, slowPeriod)
	signal = macd * macdSignalFactor
	histogram = macd - signal

	return macd, signal, histogram
}
