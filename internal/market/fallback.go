package market

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Alias1177/CoinCast/models"
)

// ErrorObserver is notified of every source failure inside a fallback chain
type ErrorObserver interface {
	FeedError(source string)
}

// FallbackSource tries its sources in order; the first success wins
type FallbackSource struct {
	sources  []models.SnapshotSource
	observer ErrorObserver
	logger   zerolog.Logger
}

// NewFallbackSource chains sources. observer may be nil.
func NewFallbackSource(logger zerolog.Logger, observer ErrorObserver, sources ...models.SnapshotSource) *FallbackSource {
	return &FallbackSource{
		sources:  sources,
		observer: observer,
		logger:   logger.With().Str("component", "market_fallback").Logger(),
	}
}

// Name implements models.SnapshotSource
func (f *FallbackSource) Name() string { return "fallback" }

// TopByVolume implements models.SnapshotSource
func (f *FallbackSource) TopByVolume(ctx context.Context, limit int) ([]models.AssetSnapshot, error) {
	if len(f.sources) == 0 {
		return nil, ErrNoSources
	}

	var errs []error
	for _, src := range f.sources {
		snapshots, err := src.TopByVolume(ctx, limit)
		if err == nil {
			return snapshots, nil
		}

		f.logger.Warn().Err(err).Str("source", src.Name()).Msg("Market source failed, trying next")
		if f.observer != nil {
			f.observer.FeedError(src.Name())
		}
		errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))

		if ctx.Err() != nil {
			break
		}
	}
	return nil, errors.Join(errs...)
}
