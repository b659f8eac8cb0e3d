package prediction

import "math/rand"

// RandomSource yields uniform draws in [0, 1)
type RandomSource interface {
	Float64() float64
}

// NewSeededSource returns a deterministic source for the given seed
func NewSeededSource(seed int64) RandomSource {
	return rand.New(rand.NewSource(seed))
}

// assetSource derives an independent stream for the asset at index i of a batch so that
// parallel runs give the same per-asset results as sequential ones.
func assetSource(seed int64, i int) RandomSource {
	return NewSeededSource(mixSeed(uint64(seed) ^ uint64(i+1)*0x9E3779B97F4A7C15))
}

// splitmix64 finalizer
func mixSeed(z uint64) int64 {
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return int64(z ^ (z >> 31))
}

// SequenceSource replays a fixed list of draws, cycling when exhausted.
// Useful for forcing a specific drift/shock sequence.
type SequenceSource struct {
	Values []float64
	pos    int
}

// Float64 returns the next scripted draw
func (s *SequenceSource) Float64() float64 {
	if len(s.Values) == 0 {
		return 0.5
	}
	v := s.Values[s.pos%len(s.Values)]
	s.pos++
	return v
}
