// Package random provides seeded pseudo-random sources for the simulators.
//
// Seeds come from crypto/rand so every session differs; tests pass a fixed
// seed to NewWithSeed for reproducible runs.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return binary.LittleEndian.Uint64(b[:]), nil
}

// New returns a PCG source seeded from crypto/rand. If the system source
// fails it falls back to the runtime's global generator for the seed.
func New() *rand.Rand {
	seed, err := NewSeed()
	if err != nil {
		seed = rand.Uint64()
	}
	return NewWithSeed(seed)
}

// NewWithSeed returns a deterministic generator for the given seed.
func NewWithSeed(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
