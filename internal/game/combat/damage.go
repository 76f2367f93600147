package combat

import (
	"math"

	"github.com/calder-games/arena/internal/config"
	"github.com/calder-games/arena/internal/game/rng"
)

// Tuning holds the externalized damage constants. These are balance knobs,
// not structural behavior; they normally come from configuration.
type Tuning struct {
	// VariancePct is the ± percentage of uniform variance on non-critical damage.
	VariancePct int
	// CriticalMultiplier scales raw attack power on a critical. Must be > 1.
	CriticalMultiplier float64
	// BlockMitigation multiplies non-critical damage dealt to a blocking target.
	BlockMitigation float64
}

// DefaultTuning returns the built-in balance constants.
func DefaultTuning() Tuning {
	return Tuning{VariancePct: 10, CriticalMultiplier: 1.5, BlockMitigation: 0.5}
}

// TuningFromConfig extracts the damage constants from a CombatConfig.
func TuningFromConfig(cc config.CombatConfig) Tuning {
	return Tuning{
		VariancePct:        cc.DamageVariancePct,
		CriticalMultiplier: cc.CriticalMultiplier,
		BlockMitigation:    cc.BlockMitigation,
	}
}

// ComputeDamage produces the final integer damage for a landed hit.
//
// Non-critical: base = attack - defense, ± VariancePct uniform variance,
// floored; if the target is blocking, BlockMitigation is applied before the
// final clamp; the result is clamped to a minimum of 1, so every successful
// non-critical hit deals at least 1 damage no matter how large defense is.
//
// Critical: ceil(attack * CriticalMultiplier), computed from raw attack power
// — defense, variance, and block mitigation are all bypassed.
//
// ComputeDamage does not mutate the target; callers apply the result with
// Combatant.ApplyDamage, which clamps health at zero.
//
// Precondition: attacker and target must be non-nil; src must be non-nil.
// Postcondition: Returns >= 1.
func ComputeDamage(attacker, target *Combatant, critical bool, tn Tuning, src rng.Source) int {
	if critical {
		return int(math.Ceil(attacker.Attributes.Attack * tn.CriticalMultiplier))
	}

	base := attacker.Attributes.Attack - target.Attributes.Defense
	v := float64(tn.VariancePct) / 100
	factor := 1 - v + src.Float64()*2*v
	dmg := math.Floor(base * factor)

	if target.IsBlocking() {
		dmg = math.Floor(dmg * tn.BlockMitigation)
	}
	if dmg < 1 {
		dmg = 1
	}
	return int(dmg)
}
