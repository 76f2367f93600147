package combat_test

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"

	"github.com/calder-games/arena/internal/game/combat"
)

func bodyAt(x, y float64) *combat.Combatant {
	c := newEnemy(combat.Attributes{Health: 10})
	c.X, c.Y = x, y
	return c
}

func TestBBSpace_OverlapTracksGeometry(t *testing.T) {
	space := combat.NewBBSpace()
	attacker := newPlayer(combat.Attributes{Health: 10})
	attacker.X, attacker.Y = 0, 0
	attacker.Frame = "idle-right"

	geo := combat.Geometry{Reach: 56, Width: 40}
	h := space.CreateVolume(attacker, combat.PlaceHitbox(attacker, geo))

	// The rightward swing covers x in [16, 72] around y 0.
	assert.True(t, space.Overlaps(h, bodyAt(40, 0)))
	assert.True(t, space.Overlaps(h, bodyAt(80, 0)), "touching at the far edge still counts")
	assert.False(t, space.Overlaps(h, bodyAt(120, 0)))
	assert.False(t, space.Overlaps(h, bodyAt(40, 100)), "off the swing's vertical band")
	assert.False(t, space.Overlaps(h, bodyAt(-40, 0)), "behind the attacker")
}

func TestBBSpace_HandlesAreIndependent(t *testing.T) {
	space := combat.NewBBSpace()
	attacker := newPlayer(combat.Attributes{Health: 10})

	right := combat.Placement{Position: cp.Vector{X: 30}, Size: cp.Vector{X: 40, Y: 40}}
	left := combat.Placement{Position: cp.Vector{X: -30}, Size: cp.Vector{X: 40, Y: 40}}
	hr := space.CreateVolume(attacker, right)
	hl := space.CreateVolume(attacker, left)
	assert.NotEqual(t, hr, hl)

	target := bodyAt(40, 0)
	assert.True(t, space.Overlaps(hr, target))
	assert.False(t, space.Overlaps(hl, target))
}

func TestBBSpace_RemoveDiscardsVolume(t *testing.T) {
	space := combat.NewBBSpace()
	attacker := newPlayer(combat.Attributes{Health: 10})
	pl := combat.Placement{Position: cp.Vector{X: 10}, Size: cp.Vector{X: 40, Y: 40}}

	h := space.CreateVolume(attacker, pl)
	target := bodyAt(10, 0)
	assert.True(t, space.Overlaps(h, target))

	space.Remove(h)
	assert.False(t, space.Overlaps(h, target), "removed volumes never overlap")
	assert.NotPanics(t, func() { space.Remove(h) })
}

func TestBBSpace_UnknownHandleNeverOverlaps(t *testing.T) {
	space := combat.NewBBSpace()
	assert.False(t, space.Overlaps(combat.VolumeHandle("nope"), bodyAt(0, 0)))
}
