package models

import "context"

// SnapshotSource supplies the current market snapshots the forecaster consumes
type SnapshotSource interface {
	Name() string
	TopByVolume(ctx context.Context, limit int) ([]AssetSnapshot, error)
}

// HistorySource supplies recent candles for the technical-indicator extension
type HistorySource interface {
	Candles(ctx context.Context, snapshot AssetSnapshot, interval string, days int) ([]Candle, error)
}
