package rng_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/calder-games/arena/internal/game/rng"
)

// TestCryptoSource_Intn_InRange verifies the postcondition:
// every value returned by Intn(100) is in [0, 100).
func TestCryptoSource_Intn_InRange(t *testing.T) {
	src := rng.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Intn(100)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 100)
	}
}

// TestCryptoSource_Float64_InRange verifies every value returned by Float64
// is in [0.0, 1.0).
func TestCryptoSource_Float64_InRange(t *testing.T) {
	src := rng.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Float64()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

// TestCryptoSource_Intn_PanicsOnNonPositive verifies the precondition n > 0
// is enforced.
func TestCryptoSource_Intn_PanicsOnNonPositive(t *testing.T) {
	src := rng.NewCryptoSource()
	assert.Panics(t, func() { src.Intn(0) })
	assert.Panics(t, func() { src.Intn(-5) })
}
