package combat

import (
	"github.com/jakecoffman/cp"

	"github.com/calder-games/arena/internal/config"
)

// Rotation angles (radians) for the melee volume, matching the animation rig
// reference table. Left is -3.14 rather than +π because the rig mirrors the
// right-facing swing.
const (
	RotationRight = 0.0
	RotationDown  = 1.57
	RotationUp    = -1.57
	RotationLeft  = -3.14
)

// Geometry holds the melee hit-zone extents.
type Geometry struct {
	// Reach is how far the volume extends from the attacker's body.
	Reach float64
	// Width is the lateral thickness of the volume.
	Width float64
}

// GeometryFromConfig extracts the hitbox extents from a CombatConfig.
func GeometryFromConfig(cc config.CombatConfig) Geometry {
	return Geometry{Reach: cc.HitboxReach, Width: cc.HitboxWidth}
}

// Placement describes where one transient melee volume goes.
type Placement struct {
	// Offset is the local offset applied to the volume body, centering the
	// reach extent in front of the attacker. Distinct per cardinal direction.
	Offset cp.Vector
	// Rotation is the volume's rotation in radians.
	Rotation float64
	// Position is the world anchor: the attacker's position displaced by half
	// the body extent along the facing axis.
	Position cp.Vector
	// Size is the volume extent: Reach along the facing axis, Width across it.
	Size cp.Vector
}

// PlaceHitbox computes the transient melee volume placement for the
// attacker's current facing. The mirrored-right case (FlipX with a "right"
// frame) resolves to the same placement as left via Combatant.Facing.
//
// Precondition: c must be non-nil.
// Postcondition: Rotation is one of RotationRight, RotationDown, RotationUp,
// RotationLeft.
func PlaceHitbox(c *Combatant, geo Geometry) Placement {
	pos := c.Position()
	halfW := c.Width / 2
	halfH := c.Height / 2
	halfReach := geo.Reach / 2

	switch c.Facing() {
	case FacingRight:
		return Placement{
			Offset:   cp.Vector{X: halfReach},
			Rotation: RotationRight,
			Position: cp.Vector{X: pos.X + halfW, Y: pos.Y},
			Size:     cp.Vector{X: geo.Reach, Y: geo.Width},
		}
	case FacingLeft:
		return Placement{
			Offset:   cp.Vector{X: -halfReach},
			Rotation: RotationLeft,
			Position: cp.Vector{X: pos.X - halfW, Y: pos.Y},
			Size:     cp.Vector{X: geo.Reach, Y: geo.Width},
		}
	case FacingUp:
		return Placement{
			Offset:   cp.Vector{Y: -halfReach},
			Rotation: RotationUp,
			Position: cp.Vector{X: pos.X, Y: pos.Y - halfH},
			Size:     cp.Vector{X: geo.Width, Y: geo.Reach},
		}
	default: // down, and any unrecognized facing
		return Placement{
			Offset:   cp.Vector{Y: halfReach},
			Rotation: RotationDown,
			Position: cp.Vector{X: pos.X, Y: pos.Y + halfH},
			Size:     cp.Vector{X: geo.Width, Y: geo.Reach},
		}
	}
}

// BB returns the axis-aligned bounding box covering the placed volume.
func (p Placement) BB() cp.BB {
	center := p.Position.Add(p.Offset)
	return cp.NewBBForExtents(center, p.Size.X/2, p.Size.Y/2)
}
