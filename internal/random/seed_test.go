package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeed(t *testing.T) {
	a, err := NewSeed()
	require.NoError(t, err)
	b, err := NewSeed()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestNewWithSeedIsDeterministic(t *testing.T) {
	r1 := NewWithSeed(42)
	r2 := NewWithSeed(42)
	for i := 0; i < 10; i++ {
		assert.Equal(t, r1.Uint64(), r2.Uint64())
	}
}

func TestNew(t *testing.T) {
	assert.NotNil(t, New())
}
