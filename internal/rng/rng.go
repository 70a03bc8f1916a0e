package rng

import (
	"math/rand"
	"sync"
)

// Generator provides a simple random number
type Generator interface {
	// Intn will return a random number up to but not including n
	Intn(n int) int
}

// Seeded is a deterministic generator that is safe for concurrent use
// Tests use it so that deals and computer players are reproducible
type Seeded struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeeded returns a generator seeded with seed
func NewSeeded(seed int64) *Seeded {
	return &Seeded{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Intn returns a random number from 0 <= x < n
func (s *Seeded) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rng.Intn(n)
}

// Shuffle permutes ints in place using gen
func Shuffle(gen Generator, ints []int) {
	for j := len(ints) - 1; j > 0; j-- {
		i := gen.Intn(j + 1)

		ints[i], ints[j] = ints[j], ints[i]
	}
}
