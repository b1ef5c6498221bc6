package content

import "math/rand/v2"

// RandomSource picks uniformly among n candidates.
type RandomSource interface {
	IntN(n int) int // [0, n)
}

type globalRNG struct{}

func (globalRNG) IntN(n int) int { return rand.IntN(n) }

// DefaultRNG returns a source backed by the math/rand/v2 global generator.
func DefaultRNG() RandomSource { return globalRNG{} }

// Replicable RNG for tests and simulations.
type seededRNG struct{ r *rand.Rand }

// NewSeededRNG returns a deterministic source.
func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) IntN(n int) int { return s.r.IntN(n) }
