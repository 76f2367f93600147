package combat

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/calder-games/arena/internal/config"
	"github.com/calder-games/arena/internal/game/rng"
)

// Deps bundles the collaborators an Engine resolves combat against.
// Animator, Scheduler, Collision, and World are required. Audio, Visual, and
// Progression default to no-ops; Source defaults to the crypto source;
// a nil Logger becomes a no-op logger.
type Deps struct {
	Animator    Animator
	Scheduler   Scheduler
	Collision   Collision
	World       World
	Audio       Audio
	Visual      Visual
	Progression Progression
	Source      rng.Source
	Logger      *zap.Logger
}

// Engine is the combat resolution facade: it owns the attack and block state
// machines, damage application, and death sequencing for every registered
// combatant.
//
// The game loop is single-threaded and cooperative, but scheduled callbacks
// (the attack fallback timeout, the death grace delay) fire from timer
// goroutines, so engine state is guarded by a mutex.
type Engine struct {
	mu     sync.Mutex
	roster map[string]*Combatant

	tuning   Tuning
	geo      Geometry
	fallback time.Duration
	grace    time.Duration

	anim   Animator
	sched  Scheduler
	space  Collision
	world  World
	audio  Audio
	visual Visual
	prog   Progression
	src    rng.Source
	logger *zap.Logger

	emitter Emitter
}

// NewEngine creates an Engine from combat configuration and collaborators.
//
// Precondition: cc must have passed config validation.
// Postcondition: Returns a ready Engine, or an error naming the first missing
// required collaborator.
func NewEngine(cc config.CombatConfig, deps Deps) (*Engine, error) {
	switch {
	case deps.Animator == nil:
		return nil, errors.New("combat: Deps.Animator is required")
	case deps.Scheduler == nil:
		return nil, errors.New("combat: Deps.Scheduler is required")
	case deps.Collision == nil:
		return nil, errors.New("combat: Deps.Collision is required")
	case deps.World == nil:
		return nil, errors.New("combat: Deps.World is required")
	}
	if deps.Audio == nil {
		deps.Audio = noopAudio{}
	}
	if deps.Visual == nil {
		deps.Visual = noopVisual{}
	}
	if deps.Progression == nil {
		deps.Progression = noopProgression{}
	}
	if deps.Source == nil {
		deps.Source = rng.NewCryptoSource()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &Engine{
		roster:   make(map[string]*Combatant),
		tuning:   TuningFromConfig(cc),
		geo:      GeometryFromConfig(cc),
		fallback: cc.AttackFallbackTimeout,
		grace:    cc.DeathGraceDelay,
		anim:     deps.Animator,
		sched:    deps.Scheduler,
		space:    deps.Collision,
		world:    deps.World,
		audio:    deps.Audio,
		visual:   deps.Visual,
		prog:     deps.Progression,
		src:      deps.Source,
		logger:   deps.Logger,
	}, nil
}

// Events returns the engine's event emitter for display collaborators to
// subscribe to.
func (e *Engine) Events() *Emitter { return &e.emitter }

// Register adds c to the engine's roster so its hitboxes are swept and it can
// be targeted. Registering the same combatant twice is a no-op.
//
// Precondition: c must be non-nil.
func (e *Engine) Register(c *Combatant) {
	if c == nil {
		panic("combat: Register called with nil combatant")
	}
	e.mu.Lock()
	e.roster[c.ID] = c
	e.mu.Unlock()
}

// Deregister removes c from the roster. Unknown combatants are a no-op.
func (e *Engine) Deregister(c *Combatant) {
	if c == nil {
		return
	}
	e.mu.Lock()
	delete(e.roster, c.ID)
	e.mu.Unlock()
}

// HitOutcome reports what a single TakeDamage invocation did.
type HitOutcome struct {
	Hit      bool
	Critical bool
	Blocked  bool
	Damage   int
	Lethal   bool
}

// TakeDamage resolves one swing from attacker against target: hit roll,
// critical roll, damage computation, health mutation, and death hand-off.
// A miss changes no state beyond the miss feedback cue. A non-damageable
// target (already dying) absorbs nothing, defusing same-frame double-kills.
//
// Precondition: attacker and target must be non-nil (panics otherwise —
// a nil here is a collaborator contract violation, not a gameplay condition).
// Postcondition: target health is >= 0; on lethal damage the death sequence
// has been started but loot/removal are deferred past the grace delay.
func (e *Engine) TakeDamage(attacker, target *Combatant) HitOutcome {
	if attacker == nil || target == nil {
		panic("combat: TakeDamage requires non-nil attacker and target")
	}

	e.mu.Lock()
	if !target.damageable {
		e.mu.Unlock()
		return HitOutcome{}
	}

	if !ResolveHit(attacker.Attributes.HitRating, target.Attributes.Evasion, e.src) {
		e.mu.Unlock()
		e.audio.PlaySound(SoundMiss)
		e.emitter.Emit(Event{Type: EventMiss, AttackerID: attacker.ID, TargetID: target.ID})
		e.logger.Debug("attack missed",
			zap.String("attacker", attacker.ID),
			zap.String("target", target.ID),
		)
		return HitOutcome{}
	}

	critical := ResolveCritical(attacker.Attributes.CriticalChance, e.src)
	blocked := target.blocking && !critical
	dmg := ComputeDamage(attacker, target, critical, e.tuning, e.src)
	target.ApplyDamage(dmg)
	lethal := target.Attributes.Health == 0
	if lethal {
		// The non-damageable mark must land in the same locked section that
		// detects the kill: completion sweeps arrive on timer goroutines, and
		// a second lethal overlap racing this window would sequence the death
		// twice.
		target.damageable = false
	}
	e.mu.Unlock()

	out := HitOutcome{Hit: true, Critical: critical, Blocked: blocked, Damage: dmg, Lethal: lethal}
	e.emitter.Emit(Event{
		Type:       EventDamageApplied,
		AttackerID: attacker.ID,
		TargetID:   target.ID,
		Damage:     dmg,
		Critical:   critical,
		Blocked:    blocked,
	})
	e.logger.Debug("damage applied",
		zap.String("attacker", attacker.ID),
		zap.String("target", target.ID),
		zap.Int("damage", dmg),
		zap.Bool("critical", critical),
		zap.Bool("blocked", blocked),
		zap.Int("health", target.Attributes.Health),
	)

	if lethal {
		e.sequenceDeath(attacker, target)
	}
	return out
}

// Update is the per-frame hook. It re-registers overlap checks between every
// in-flight attack's active hitbox and the registered opposing combatants,
// invoking TakeDamage on overlap. Each cycle damages a given target at most
// once.
func (e *Engine) Update() {
	type pending struct {
		attacker *Combatant
		cycle    *attackCycle
		targets  []*Combatant
	}

	e.mu.Lock()
	var sweeps []pending
	for _, c := range e.roster {
		if c.attacking && c.cycle != nil && c.cycle.activeHitbox() {
			sweeps = append(sweeps, pending{c, c.cycle, e.opposingLocked(c)})
		}
	}
	e.mu.Unlock()

	for _, s := range sweeps {
		e.sweepHitbox(s.attacker, s.cycle, s.targets)
	}
}

// opposingLocked snapshots roster members of the other kind. Callers hold e.mu.
func (e *Engine) opposingLocked(attacker *Combatant) []*Combatant {
	var out []*Combatant
	for _, c := range e.roster {
		if c.ID == attacker.ID || c.Kind == attacker.Kind {
			continue
		}
		out = append(out, c)
	}
	return out
}

// ResetState bulk re-arms a collection of combatants after an external reset,
// e.g. returning from a paused scene. In-flight attack cycles are torn down
// (their late animation events and fallback timers become no-ops), transient
// flags clear, and the locks this core owns are released. Holds placed by
// external systems survive.
func (e *Engine) ResetState(combatants []*Combatant) {
	for _, c := range combatants {
		if c == nil {
			continue
		}
		e.mu.Lock()
		if cy := c.cycle; cy != nil {
			cy.finish()
			cy.teardown()
			e.discardHitboxLocked(cy)
			c.cycle = nil
		}
		c.attacking = false
		wasBlocking := c.blocking
		c.blocking = false
		c.CanAttack.Enable(OwnerAttack)
		c.CanAttack.Enable(OwnerBlock)
		c.CanMove.Enable(OwnerBlock)
		e.mu.Unlock()

		if wasBlocking {
			e.visual.ClearTint(c)
		}
	}
	e.logger.Debug("combat state reset", zap.Int("combatants", len(combatants)))
}
