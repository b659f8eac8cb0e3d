package prediction

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatePath_Length(t *testing.T) {
	tests := []struct {
		name    string
		horizon int
		step    int
		want    int
	}{
		{"hour in 3min steps", 60, 3, 20},
		{"half hour in 3min steps", 30, 3, 10},
		{"single step", 60, 60, 1},
		{"uneven horizon truncates", 10, 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points, err := SimulatePath(100, 0.01, 0.01, tt.horizon, tt.step, PathAccumulator, NewSeededSource(1))
			require.NoError(t, err)
			require.Len(t, points, tt.want)
			for i, p := range points {
				assert.Equal(t, (i+1)*tt.step, p.MinutesAhead)
			}
		})
	}
}

func TestSimulatePath_BandOrdering(t *testing.T) {
	for _, variant := range []PathVariant{PathAccumulator, PathMeanReverting} {
		t.Run(string(variant), func(t *testing.T) {
			points, err := SimulatePath(43250.5, -0.003, 0.03, 60, 3, variant, NewSeededSource(7))
			require.NoError(t, err)
			for _, p := range points {
				assert.LessOrEqual(t, p.LowerBound, p.Predicted)
				assert.LessOrEqual(t, p.Predicted, p.UpperBound)
				assert.GreaterOrEqual(t, p.LowerBound, 0.0)
			}
		})
	}
}

func TestSimulatePath_BandWidensWithTime(t *testing.T) {
	// zero drift and zero shock keep the price flat so only elapsed time moves the band
	points, err := SimulatePath(100, 0, 0.05, 60, 3, PathAccumulator, &SequenceSource{Values: []float64{0.5}})
	require.NoError(t, err)
	for i := 1; i < len(points); i++ {
		prev := points[i-1].UpperBound - points[i-1].LowerBound
		cur := points[i].UpperBound - points[i].LowerBound
		assert.Greater(t, cur, prev)
	}
	last := points[len(points)-1]
	assert.InDelta(t, 1.96*100*0.05, last.UpperBound-100, 1e-9)
}

func TestSimulatePath_ForcedDrift(t *testing.T) {
	points, err := SimulatePath(100, 0.02, 0.01, 60, 60, PathAccumulator, &SequenceSource{Values: []float64{0.5}})
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.InDelta(t, 102.0, points[0].Predicted, 1e-9)
}

func TestSimulatePath_MeanRevertingSeed(t *testing.T) {
	rnd := &SequenceSource{Values: []float64{0.5}}
	points, err := SimulatePath(100, 0.1, 0.01, 120, 60, PathMeanReverting, rnd)
	require.NoError(t, err)
	require.Len(t, points, 2)

	// step 1: 100 * 1.1 = 110, next seed 0.7*110 + 0.3*100 = 107
	assert.InDelta(t, 110.0, points[0].Predicted, 1e-9)
	// step 2: drift over two hours is 0.2, 107 * 1.2
	assert.InDelta(t, 128.4, points[1].Predicted, 1e-9)
}

func TestSimulatePath_NonNegative(t *testing.T) {
	points, err := SimulatePath(0.0001, -50, 0.5, 60, 3, PathAccumulator, NewSeededSource(3))
	require.NoError(t, err)
	for _, p := range points {
		assert.GreaterOrEqual(t, p.Predicted, 0.0)
		assert.GreaterOrEqual(t, p.LowerBound, 0.0)
		assert.GreaterOrEqual(t, p.UpperBound, 0.0)
	}
	assert.True(t, points[0].Degenerate)
}

func TestSimulatePath_Errors(t *testing.T) {
	tests := []struct {
		name    string
		price   float64
		drift   float64
		vol     float64
		horizon int
		step    int
		variant PathVariant
		wantErr error
	}{
		{"zero step", 100, 0, 0.01, 60, 0, PathAccumulator, ErrInvalidConfig},
		{"horizon below step", 100, 0, 0.01, 2, 3, PathAccumulator, ErrInvalidConfig},
		{"unknown variant", 100, 0, 0.01, 60, 3, PathVariant("random_walk"), ErrInvalidConfig},
		{"zero price", 0, 0, 0.01, 60, 3, PathAccumulator, ErrInvalidSnapshot},
		{"negative price", -5, 0, 0.01, 60, 3, PathAccumulator, ErrInvalidSnapshot},
		{"nan price", math.NaN(), 0, 0.01, 60, 3, PathAccumulator, ErrInvalidSnapshot},
		{"infinite drift", 100, math.Inf(1), 0.01, 60, 3, PathAccumulator, ErrNumericOverflow},
		{"nan volatility", 100, 0, math.NaN(), 60, 3, PathAccumulator, ErrNumericOverflow},
		{"overflowing price", math.MaxFloat64, 1, 0.01, 60, 3, PathAccumulator, ErrNumericOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SimulatePath(tt.price, tt.drift, tt.vol, tt.horizon, tt.step, tt.variant, NewSeededSource(1))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSequenceSource(t *testing.T) {
	s := &SequenceSource{Values: []float64{0.1, 0.9}}
	assert.Equal(t, 0.1, s.Float64())
	assert.Equal(t, 0.9, s.Float64())
	assert.Equal(t, 0.1, s.Float64())

	empty := &SequenceSource{}
	assert.Equal(t, 0.5, empty.Float64())
}

func TestAssetSource_IndependentStreams(t *testing.T) {
	a := assetSource(42, 0).Float64()
	b := assetSource(42, 1).Float64()
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, assetSource(42, 0).Float64())
}
