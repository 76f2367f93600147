package combat_test

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"

	"github.com/calder-games/arena/internal/game/combat"
)

func TestParseFacing(t *testing.T) {
	tests := []struct {
		frame string
		flipX bool
		want  combat.Facing
	}{
		{"attack-up", false, combat.FacingUp},
		{"player-walk-down-2", false, combat.FacingDown},
		{"idle-left", false, combat.FacingLeft},
		{"idle-right", false, combat.FacingRight},
		{"idle-right", true, combat.FacingLeft}, // mirrored right resolves to left
		{"attack-up", true, combat.FacingUp},    // flip only affects right frames
		{"spin-0", false, combat.FacingDown},    // no direction encoded: default down
		{"", false, combat.FacingDown},
	}
	for _, tc := range tests {
		got := combat.ParseFacing(tc.frame, tc.flipX)
		assert.Equal(t, tc.want, got, "frame=%q flipX=%v", tc.frame, tc.flipX)
	}
}

func TestFacing_String(t *testing.T) {
	assert.Equal(t, "up", combat.FacingUp.String())
	assert.Equal(t, "down", combat.FacingDown.String())
	assert.Equal(t, "left", combat.FacingLeft.String())
	assert.Equal(t, "right", combat.FacingRight.String())
}

func TestRotationConstants_MatchReferenceTable(t *testing.T) {
	assert.Equal(t, 0.0, combat.RotationRight)
	assert.Equal(t, 1.57, combat.RotationDown)
	assert.Equal(t, -1.57, combat.RotationUp)
	assert.Equal(t, -3.14, combat.RotationLeft)
}

func placerCombatant(frame string, flipX bool) *combat.Combatant {
	c := combat.NewCombatant("c1", "Test", combat.KindPlayer, combat.Attributes{Health: 10})
	c.X, c.Y = 100, 100
	c.Frame = frame
	c.FlipX = flipX
	return c
}

func TestPlaceHitbox_FourDirections(t *testing.T) {
	geo := combat.Geometry{Reach: 56, Width: 40}

	tests := []struct {
		frame    string
		offset   cp.Vector
		rotation float64
		position cp.Vector
		size     cp.Vector
	}{
		{"attack-right", cp.Vector{X: 28}, combat.RotationRight, cp.Vector{X: 116, Y: 100}, cp.Vector{X: 56, Y: 40}},
		{"attack-left", cp.Vector{X: -28}, combat.RotationLeft, cp.Vector{X: 84, Y: 100}, cp.Vector{X: 56, Y: 40}},
		{"attack-up", cp.Vector{Y: -28}, combat.RotationUp, cp.Vector{X: 100, Y: 84}, cp.Vector{X: 40, Y: 56}},
		{"attack-down", cp.Vector{Y: 28}, combat.RotationDown, cp.Vector{X: 100, Y: 116}, cp.Vector{X: 40, Y: 56}},
	}
	for _, tc := range tests {
		pl := combat.PlaceHitbox(placerCombatant(tc.frame, false), geo)
		assert.Equal(t, tc.offset, pl.Offset, tc.frame)
		assert.Equal(t, tc.rotation, pl.Rotation, tc.frame)
		assert.Equal(t, tc.position, pl.Position, tc.frame)
		assert.Equal(t, tc.size, pl.Size, tc.frame)
	}
}

func TestPlaceHitbox_MirroredRightMatchesLeft(t *testing.T) {
	geo := combat.Geometry{Reach: 56, Width: 40}
	mirrored := combat.PlaceHitbox(placerCombatant("attack-right", true), geo)
	left := combat.PlaceHitbox(placerCombatant("attack-left", false), geo)
	assert.Equal(t, left, mirrored)
}

func TestPlaceHitbox_UnknownFrameFallsBackToDown(t *testing.T) {
	geo := combat.Geometry{Reach: 56, Width: 40}
	unknown := combat.PlaceHitbox(placerCombatant("mystery-frame", false), geo)
	down := combat.PlaceHitbox(placerCombatant("attack-down", false), geo)
	assert.Equal(t, down, unknown)
}

func TestPlacement_BB_CoversVolume(t *testing.T) {
	geo := combat.Geometry{Reach: 56, Width: 40}
	pl := combat.PlaceHitbox(placerCombatant("attack-right", false), geo)
	bb := pl.BB()
	// Center is position + offset: (144, 100); half extents (28, 20).
	assert.Equal(t, 116.0, bb.L)
	assert.Equal(t, 172.0, bb.R)
	assert.Equal(t, 80.0, bb.B)
	assert.Equal(t, 120.0, bb.T)
}
