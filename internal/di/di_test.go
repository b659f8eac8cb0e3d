package di

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alias1177/CoinCast/internal/config"
)

func mockConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("FEED", "mock")
	t.Setenv("FORECAST_SEED", "42")
	t.Setenv("HTTP_ADDR", "127.0.0.1:0")

	cfg, err := config.Load()
	require.NoError(t, err)
	return cfg
}

func TestInitializeApp_MockFeed(t *testing.T) {
	app, err := InitializeApp(mockConfig(t))
	require.NoError(t, err)

	require.NotNil(t, app.Forecasters.Single)
	require.NotNil(t, app.Forecasters.Batch)
	assert.Equal(t, "single", app.Forecasters.Single.Config().Name)
	assert.Equal(t, "batch", app.Forecasters.Batch.Config().Name)
	assert.Equal(t, int64(42), app.Forecasters.Batch.Config().Seed)
	assert.NotNil(t, app.Board)
	assert.NotNil(t, app.Refresher)
	assert.NotNil(t, app.Server)
	assert.Equal(t, "mock", app.Source.Name())
}

func TestInitializeApp_SeededMockIsReproducible(t *testing.T) {
	cfg := mockConfig(t)
	ctx := context.Background()

	run := func() ([]float64, []float64) {
		app, err := InitializeApp(cfg)
		require.NoError(t, err)

		snapshots, err := app.Source.TopByVolume(ctx, 5)
		require.NoError(t, err)
		batch := app.Forecasters.Batch.ForecastBatch(ctx, snapshots)
		require.Len(t, batch.Results, len(snapshots))

		prices := make([]float64, len(snapshots))
		predicted := make([]float64, len(batch.Results))
		for i := range snapshots {
			prices[i] = snapshots[i].CurrentPrice
			predicted[i] = batch.Results[i].Last().Predicted
		}
		return prices, predicted
	}

	prices1, predicted1 := run()
	prices2, predicted2 := run()
	assert.Equal(t, prices1, prices2)
	assert.Equal(t, predicted1, predicted2)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	app, err := InitializeApp(mockConfig(t))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("app did not stop after cancellation")
	}

	_, ready := app.Board.Latest()
	assert.True(t, ready)
}
