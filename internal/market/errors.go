package market

import "errors"

var (
	// ErrSourceUnavailable is returned while a feed's circuit breaker is open
	ErrSourceUnavailable = errors.New("market source unavailable")
	// ErrNoSources is returned by a fallback chain with nothing configured
	ErrNoSources = errors.New("no market sources configured")
)
