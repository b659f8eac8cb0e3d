package models

import "time"

// IntervalDuration maps a candle interval label to its duration. Unknown labels yield zero.
func IntervalDuration(interval string) time.Duration {
	switch interval {
	case "1min":
		return time.Minute
	case "3min":
		return 3 * time.Minute
	case "5min":
		return 5 * time.Minute
	case "15min":
		return 15 * time.Minute
	case "30min":
		return 30 * time.Minute
	case "1h":
		return time.Hour
	case "4h":
		return 4 * time.Hour
	case "1day":
		return 24 * time.Hour
	}
	return 0
}

// CandlesForDays returns how many candles of the given interval cover the given number of days
func CandlesForDays(interval string, days int) int {
	d := IntervalDuration(interval)
	if d == 0 || days <= 0 {
		return 0
	}
	return int(time.Duration(days) * 24 * time.Hour / d)
}
