package combat

import (
	"sync"

	"go.uber.org/zap"
)

// completion path labels, for the debug log.
const (
	completedByAnimation = "animation"
	completedByFallback  = "fallback"
)

// attackCycle holds one attack's internal bookkeeping. It is created at
// attack start and discarded at completion; no cycle state outlives one
// cycle.
//
// Invariant: finish() returns true exactly once per cycle, so completion side
// effects run on at most one of the two completion paths.
type attackCycle struct {
	mu   sync.Mutex
	done bool

	animKey string

	cancelStart    CancelFunc
	cancelComplete CancelFunc
	cancelFallback CancelFunc

	hitbox    VolumeHandle
	hasHitbox bool

	// struck tracks targets already damaged this cycle; one swing lands on a
	// given target at most once.
	struck map[string]bool
}

func newAttackCycle(animKey string) *attackCycle {
	return &attackCycle{animKey: animKey, struck: make(map[string]bool)}
}

// finish claims the cycle's single completion. The first caller gets true;
// every later caller (the losing completion path, a reset) gets false.
func (cy *attackCycle) finish() bool {
	cy.mu.Lock()
	defer cy.mu.Unlock()
	if cy.done {
		return false
	}
	cy.done = true
	return true
}

// activeHitbox reports whether the cycle currently owns a melee volume.
func (cy *attackCycle) activeHitbox() bool {
	cy.mu.Lock()
	defer cy.mu.Unlock()
	return cy.hasHitbox
}

// teardown cancels whichever listeners and timers are still armed.
func (cy *attackCycle) teardown() {
	cy.mu.Lock()
	start, complete, fallback := cy.cancelStart, cy.cancelComplete, cy.cancelFallback
	cy.cancelStart, cy.cancelComplete, cy.cancelFallback = nil, nil, nil
	cy.mu.Unlock()

	for _, cancel := range []CancelFunc{start, complete, fallback} {
		if cancel != nil {
			cancel()
		}
	}
}

// Attack runs one attack cycle for c: guard entry, request the directional
// attack animation, arm the two completion paths, and place the melee hitbox
// per c's kind profile. The guard failure is a silent no-op, not an error —
// callers poll capability flags if they want feedback.
//
// Completion is guaranteed: if the animation-complete event never arrives
// (animation missing or interrupted), the fallback timeout performs the
// identical completion, so the state machine can never stay stuck in the
// attacking state.
//
// Precondition: c must be non-nil (panics otherwise).
func (e *Engine) Attack(c *Combatant) {
	if c == nil {
		panic("combat: Attack called with nil combatant")
	}

	e.mu.Lock()
	if !c.CanAttack.Enabled() || c.attacking || c.blocking {
		e.mu.Unlock()
		return
	}

	c.attacking = true
	c.CanAttack.Disable(OwnerAttack)

	facing := c.Facing()
	cy := newAttackCycle(AttackAnimationKey(facing))
	c.cycle = cy

	// Player swings front-load the hitbox for responsiveness; enemy swings
	// resolve where the target is when the swing lands.
	if c.profile.HitboxOnStart {
		e.placeHitboxLocked(c, cy)
	}
	e.mu.Unlock()

	cy.mu.Lock()
	cy.cancelStart = e.anim.OnStart(c, cy.animKey, func() {
		if c.IsPlayer() {
			e.audio.PlaySound(cy.animKey)
		}
	})
	cy.cancelComplete = e.anim.OnComplete(c, cy.animKey, func() {
		e.completeAttack(c, cy, completedByAnimation)
	})
	cy.cancelFallback = e.sched.ScheduleOnce(e.fallback, func() {
		e.completeAttack(c, cy, completedByFallback)
	})
	cy.mu.Unlock()

	e.anim.Play(c, cy.animKey)
	e.emitter.Emit(Event{Type: EventAttackStarted, AttackerID: c.ID})
	e.logger.Debug("attack started",
		zap.String("combatant", c.ID),
		zap.String("facing", facing.String()),
	)
}

// completeAttack restores the idle state at the end of a cycle. Both
// completion paths funnel here; whichever fires first wins and the loser is a
// no-op, so isAttacking/canAttack toggle exactly once per cycle.
func (e *Engine) completeAttack(c *Combatant, cy *attackCycle, via string) {
	if !cy.finish() {
		return
	}
	cy.teardown()

	if !c.profile.HitboxOnStart {
		// Enemy kind: (re)create the hitbox now and resolve the landing swing
		// against the current positions.
		e.mu.Lock()
		e.discardHitboxLocked(cy)
		e.placeHitboxLocked(c, cy)
		targets := e.opposingLocked(c)
		e.mu.Unlock()
		e.sweepHitbox(c, cy, targets)
	}

	e.mu.Lock()
	e.discardHitboxLocked(cy)
	c.attacking = false
	c.CanAttack.Enable(OwnerAttack)
	c.cycle = nil
	e.mu.Unlock()

	e.emitter.Emit(Event{Type: EventAttackCompleted, AttackerID: c.ID})
	e.logger.Debug("attack completed",
		zap.String("combatant", c.ID),
		zap.String("via", via),
	)
}

// placeHitboxLocked creates the directional melee volume for c and records it
// on the cycle. Callers hold e.mu; cy.mu guards the hitbox fields (lock order
// is always e.mu then cy.mu).
func (e *Engine) placeHitboxLocked(c *Combatant, cy *attackCycle) {
	pl := PlaceHitbox(c, e.geo)
	h := e.space.CreateVolume(c, pl)
	cy.mu.Lock()
	cy.hitbox = h
	cy.hasHitbox = true
	cy.mu.Unlock()
}

// discardHitboxLocked removes the cycle's volume if one is active. Callers
// hold e.mu.
func (e *Engine) discardHitboxLocked(cy *attackCycle) {
	cy.mu.Lock()
	active := cy.hasHitbox
	h := cy.hitbox
	cy.hasHitbox = false
	cy.mu.Unlock()
	if active {
		e.space.Remove(h)
	}
}

// sweepHitbox checks the cycle's volume against each candidate target and
// invokes TakeDamage on overlap, at most once per target per cycle.
func (e *Engine) sweepHitbox(attacker *Combatant, cy *attackCycle, targets []*Combatant) {
	for _, t := range targets {
		cy.mu.Lock()
		if !cy.hasHitbox {
			cy.mu.Unlock()
			return
		}
		h := cy.hitbox
		already := cy.struck[t.ID]
		cy.mu.Unlock()

		if already || !e.space.Overlaps(h, t) {
			continue
		}

		cy.mu.Lock()
		cy.struck[t.ID] = true
		cy.mu.Unlock()
		e.TakeDamage(attacker, t)
	}
}
