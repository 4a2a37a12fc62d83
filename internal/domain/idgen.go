package domain

import (
	"math/rand"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator produces 128-bit identifiers from a seeded pseudo-random
// stream. Reproducible UIDs given the same seed require swapping out a
// crypto/rand-backed UUID source for a seeded math/rand.Rand fed through
// uuid.NewRandomFromReader.
type IDGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewIDGenerator returns a generator whose output is fully determined by seed.
func NewIDGenerator(seed int64) *IDGenerator {
	return &IDGenerator{rng: rand.New(rand.NewSource(seed))}
}

// NewUID returns the next UUID in the seeded stream.
func (g *IDGenerator) NewUID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	id, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		// rand.Rand never returns a read error; this path is unreachable.
		return uuid.NewString()
	}
	return id.String()
}
