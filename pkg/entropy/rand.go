package entropy

import (
	crand "crypto/rand"
	"crypto/sha256"
	"fmt"
	"math/rand/v2"
	"strconv"
)

// Rand is the generator consulted by randomized completion. *rand.Rand
// from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// Seed is the full 256-bit key of the completion generator.
type Seed [32]byte

// NewSeed reads a seed from crypto/rand.
func NewSeed() (Seed, error) {
	var s Seed
	if _, err := crand.Read(s[:]); err != nil {
		return Seed{}, fmt.Errorf("read random seed: %w", err)
	}
	return s, nil
}

// SeedFromInt expands a small integer seed, as given on the command line,
// into a full Seed by hashing its decimal form.
func SeedFromInt(n int64) Seed {
	return sha256.Sum256([]byte(strconv.FormatInt(n, 10)))
}

// NewRand returns a ChaCha8 generator keyed by seed. The same seed always
// yields the same completion bits.
func NewRand(seed Seed) Rand {
	return rand.New(rand.NewChaCha8(seed))
}
