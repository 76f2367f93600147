package combat

import "github.com/calder-games/arena/internal/game/rng"

// ResolveHit decides whether an attack with the given hit rating lands against
// the given evasion. A defender with no evasion capability (evasion <= 0) is
// always hit; this is defined behavior, not a division guard error. Otherwise
// the hit chance is (hitRating * 100) / evasion in integer math, compared
// against a uniform draw in [0, 100): the attack lands iff chance >= draw.
// Equal hit and evasion ratings yield a chance of 100, effectively guaranteed.
//
// Precondition: src must be non-nil.
// Postcondition: Returns true whenever evasion <= 0.
func ResolveHit(hitRating, evasion int, src rng.Source) bool {
	if evasion <= 0 {
		return true
	}
	chance := hitRating * 100 / evasion
	return chance >= src.Intn(100)
}

// ResolveCritical decides whether a landed attack is a critical hit: a uniform
// draw in [0, 100) compared against the critical-chance percentage. A chance
// of 0 never crits; 100 always does.
//
// Precondition: src must be non-nil; chancePct in [0, 100].
func ResolveCritical(chancePct float64, src rng.Source) bool {
	return src.Float64()*100 < chancePct
}
