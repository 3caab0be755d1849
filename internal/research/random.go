package research

import (
	"math/rand/v2"
	"sync"
)

// Random is a goroutine-safe source of the randomness used for sample data.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandom returns a Random seeded from the runtime's random source.
func NewRandom() *Random {
	return &Random{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewSeededRandom returns a deterministic Random.
func NewSeededRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewPCG(seed, seed))}
}

// IntN returns a value in [0, n).
func (r *Random) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(n)
}

// Uniform returns a value in [lo, hi).
func (r *Random) Uniform(lo, hi float64) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return lo + r.rng.Float64()*(hi-lo)
}

// Sample returns k distinct indexes from [0, n).
func (r *Random) Sample(n, k int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if k > n {
		k = n
	}
	return r.rng.Perm(n)[:k]
}
