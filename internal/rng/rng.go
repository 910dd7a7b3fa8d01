// Package rng provides the seeded pseudo-random stream used by every
// generation attempt. Each attempt owns its own Stream so the full pipeline
// is a pure function of the seed; nothing here is safe for concurrent use
// and nothing needs to be.
//
// The generator is Mulberry32. math/rand would be simpler, but its sequence
// for a given seed is not guaranteed stable across Go releases, and dataset
// reproducibility is the whole contract here.
package rng

// Stream is a Mulberry32 generator over a 32-bit seed.
type Stream struct {
	state uint32
}

// New returns a stream seeded with the low 32 bits of seed.
func New(seed int64) *Stream {
	return &Stream{state: uint32(seed)}
}

// Float64 advances the state and returns the next value in [0,1).
func (s *Stream) Float64() float64 {
	s.state += 0x6D2B79F5
	t := s.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// Intn returns a uniform value in [0,n). Panics if n <= 0.
func (s *Stream) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn bound must be positive")
	}
	return int(s.Float64() * float64(n))
}

// Shuffle permutes n elements via the swap callback (Fisher-Yates).
func (s *Stream) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := s.Intn(i + 1)
		swap(i, j)
	}
}

// Perm returns a shuffled permutation of [0,n).
func (s *Stream) Perm(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	s.Shuffle(n, func(i, j int) { p[i], p[j] = p[j], p[i] })
	return p
}
