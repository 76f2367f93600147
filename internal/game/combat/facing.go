package combat

import "strings"

// Facing is a cardinal direction derived from the active animation frame name.
type Facing int

const (
	FacingDown Facing = iota
	FacingUp
	FacingLeft
	FacingRight
)

// String returns the direction label used in animation and sound keys.
func (f Facing) String() string {
	switch f {
	case FacingUp:
		return "up"
	case FacingLeft:
		return "left"
	case FacingRight:
		return "right"
	default:
		return "down"
	}
}

// ParseFacing extracts the facing direction from a frame name such as
// "player-walk-right-2". A "right" frame with the horizontal mirror flag set
// resolves to left. Frame names that encode no direction fall back to down
// rather than failing.
//
// Postcondition: Returns one of the four cardinal facings.
func ParseFacing(frame string, flipX bool) Facing {
	switch {
	case strings.Contains(frame, "up"):
		return FacingUp
	case strings.Contains(frame, "left"):
		return FacingLeft
	case strings.Contains(frame, "right"):
		if flipX {
			return FacingLeft
		}
		return FacingRight
	default:
		return FacingDown
	}
}

// AttackAnimationKey returns the directional attack animation key.
func AttackAnimationKey(f Facing) string { return "attack-" + f.String() }

// BlockAnimationKey returns the directional blocking animation key.
func BlockAnimationKey(f Facing) string { return "block-" + f.String() }

// IdleAnimationKey returns the directional idle animation key.
func IdleAnimationKey(f Facing) string { return "idle-" + f.String() }

// SoundMiss is the feedback cue played when an attack fails to land.
const SoundMiss = "miss"
