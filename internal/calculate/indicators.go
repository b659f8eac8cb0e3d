package calculate

// Indicators is the set of values computed over one close series
type Indicators struct {
	RSI        float64
	MACD       float64
	MACDSignal float64
	MACDHist   float64
	BBUpper    float64
	BBMiddle   float64
	BBLower    float64
	EMA        float64
	// PriceChange is the percent change over the last 5 closes
	PriceChange float64
	// Momentum is the difference between the last close and the close 10 periods ago
	Momentum float64
}

// EMAPeriod is the default EMA window
const EMAPeriod = 20

// CalculateAllIndicators computes every indicator with the default parameters.
// Returns false when fewer than 5 closes are available.
func CalculateAllIndicators(closes []float64) (Indicators, bool) {
	if len(closes) < 5 {
		return Indicators{}, false
	}

	rsi := RSI(closes, RSIPeriod)
	macd, macdSignal, macdHist := MACD(closes, MACDFastPeriod, MACDSlowPeriod)
	bbUpper, bbMiddle, bbLower := BollingerBands(closes, BBPeriod, BBStdDev)

	firstClose := closes[len(closes)-5]
	lastClose := closes[len(closes)-1]
	var priceChangePct float64
	if firstClose != 0 {
		priceChangePct = (lastClose - firstClose) / firstClose * 100
	}

	momentum := 0.0
	if len(closes) > 10 {
		momentum = lastClose - closes[len(closes)-10]
	}

	return Indicators{
		RSI:         rsi,
		MACD:        macd,
		MACDSignal:  macdSignal,
		MACDHist:    macdHist,
		BBUpper:     bbUpper,
		BBMiddle:    bbMiddle,
		BBLower:     bbLower,
		EMA:         EMA(closes, EMAPeriod),
		PriceChange: priceChangePct,
		Momentum:    momentum,
	}, true
}
