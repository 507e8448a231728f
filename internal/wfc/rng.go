package wfc

// Source supplies randomness to a generator. *math/rand.Rand satisfies it.
type Source interface {
	// Intn returns a pseudo-random int in [0, n). n is always > 0.
	Intn(n int) int
}

// SimpleRNG is a deterministic pseudo-random number generator (xorshift64).
type SimpleRNG struct {
	state uint64
}

// NewRNG creates a new RNG with the given seed.
func NewRNG(seed uint64) *SimpleRNG {
	if seed == 0 {
		seed = 88172645463325252 // Default seed
	}
	return &SimpleRNG{state: seed}
}

// Next returns the next random uint64.
func (r *SimpleRNG) Next() uint64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return r.state
}

// Intn returns a random int in [0, n).
func (r *SimpleRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// weightedPick draws one index from weights proportionally.
// At least one weight must be positive.
func weightedPick(rng Source, weights []int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	pick := rng.Intn(total)
	cumulative := 0
	for i, w := range weights {
		cumulative += w
		if pick < cumulative {
			return i
		}
	}
	return len(weights) - 1
}
