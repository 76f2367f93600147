package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/calder-games/arena/internal/game/combat"
)

func TestCapability_StartsEnabled(t *testing.T) {
	c := combat.NewCapability()
	assert.True(t, c.Enabled())
}

func TestCapability_DisableEnableRoundTrip(t *testing.T) {
	c := combat.NewCapability()
	c.Disable("dialog")
	assert.False(t, c.Enabled())
	assert.True(t, c.DisabledBy("dialog"))
	c.Enable("dialog")
	assert.True(t, c.Enabled())
}

func TestCapability_OnlyOwnerReleasesItsHold(t *testing.T) {
	c := combat.NewCapability()
	c.Disable("dialog")
	c.Disable(combat.OwnerBlock)

	// Block's resume must not stomp dialog's still-disabled.
	c.Enable(combat.OwnerBlock)
	assert.False(t, c.Enabled())
	assert.True(t, c.DisabledBy("dialog"))

	c.Enable("dialog")
	assert.True(t, c.Enabled())
}

func TestCapability_DoubleDisableIsSingleHold(t *testing.T) {
	c := combat.NewCapability()
	c.Disable("dialog")
	c.Disable("dialog")
	c.Enable("dialog")
	assert.True(t, c.Enabled())
}

func TestCapability_EnableUnknownOwnerIsNoOp(t *testing.T) {
	c := combat.NewCapability()
	c.Disable("dialog")
	c.Enable("cutscene")
	assert.False(t, c.Enabled())
}

func TestCapability_ResetClearsAllHolds(t *testing.T) {
	c := combat.NewCapability()
	c.Disable("dialog")
	c.Disable(combat.OwnerBlock)
	c.Reset()
	assert.True(t, c.Enabled())
}
