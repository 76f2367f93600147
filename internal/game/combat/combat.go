// Package combat implements the combat resolution core for Arena: hit and
// critical resolution, damage calculation, the attack and block state
// machines, directional melee hitbox placement, and death sequencing.
//
// The package is a library consumed in-process by a larger game. Rendering,
// animation playback, collision detection, audio, leveling math, and loot
// presentation are collaborators reached through the interfaces in hooks.go.
package combat

import (
	"github.com/google/uuid"
	"github.com/jakecoffman/cp"
)

// Kind distinguishes player combatants from enemy combatants.
type Kind int

const (
	KindPlayer Kind = iota
	KindEnemy
)

// String returns a human-readable kind label.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// KindProfile supplies the per-kind combat policies. A profile is selected
// once at construction rather than branching on Kind throughout the state
// machines.
type KindProfile struct {
	// HitboxOnStart places the melee volume at attack start when true
	// (player swings front-load the hitbox for responsiveness) and at
	// animation completion when false (enemy swings resolve against the
	// state at the moment they land).
	HitboxOnStart bool
	// YieldsExperience reports whether killing this kind awards experience
	// to a player killer.
	YieldsExperience bool
}

// profileFor returns the policy set for the given kind.
func profileFor(k Kind) KindProfile {
	if k == KindPlayer {
		return KindProfile{HitboxOnStart: true, YieldsExperience: false}
	}
	return KindProfile{HitboxOnStart: false, YieldsExperience: true}
}

// Attributes holds a combatant's combat-relevant numeric stats.
// Attack and Defense are float64 because buffs may produce fractional values;
// final damage is always an integer.
type Attributes struct {
	Attack         float64
	Defense        float64
	CriticalChance float64 // percent in [0, 100]
	HitRating      int
	Evasion        int
	Health         int
	MaxHealth      int
}

// Combatant represents one participant in the attack/block/damage cycle.
// Its combat-relevant flags are created once at spawn and mutated in place
// for the combatant's lifetime; per-attack-cycle bookkeeping lives and dies
// with one cycle.
//
// Invariant: attacking and blocking are never both true.
// Invariant: Attributes.Health stays in [0, MaxHealth].
type Combatant struct {
	ID   string
	Name string
	Kind Kind

	Attributes Attributes

	// Capability locks, written cooperatively by this core and by external
	// systems such as dialog. Each writer tags its own disable.
	CanMove   *Capability
	CanAttack *Capability
	CanBlock  *Capability

	// ExperienceReward is awarded to a player killer when this combatant's
	// profile yields experience.
	ExperienceReward int

	// Frame is the active animation/frame name; it encodes the facing
	// direction. FlipX mirrors a "right" frame into a left-facing one.
	Frame string
	FlipX bool

	// X, Y is the world position; Width, Height the body bounds.
	X, Y          float64
	Width, Height float64

	profile    KindProfile
	attacking  bool
	blocking   bool
	damageable bool

	// cycle is non-nil only while an attack is in flight.
	cycle *attackCycle
}

// NewCombatant creates a combatant with all capabilities enabled, transient
// flags cleared, and the kind profile selected. An empty id is replaced with
// a fresh UUID.
//
// Postcondition: Damageable() is true; IsAttacking() and IsBlocking() are false.
func NewCombatant(id, name string, kind Kind, attrs Attributes) *Combatant {
	if id == "" {
		id = uuid.NewString()
	}
	if attrs.MaxHealth == 0 {
		attrs.MaxHealth = attrs.Health
	}
	return &Combatant{
		ID:         id,
		Name:       name,
		Kind:       kind,
		Attributes: attrs,
		CanMove:    NewCapability(),
		CanAttack:  NewCapability(),
		CanBlock:   NewCapability(),
		Frame:      "idle-down",
		Width:      32,
		Height:     32,
		profile:    profileFor(kind),
		damageable: true,
	}
}

// IsPlayer reports whether this combatant is the player kind.
func (c *Combatant) IsPlayer() bool { return c.Kind == KindPlayer }

// IsAttacking reports whether an attack cycle is in flight.
func (c *Combatant) IsAttacking() bool { return c.attacking }

// IsBlocking reports whether the combatant is in the blocking state.
func (c *Combatant) IsBlocking() bool { return c.blocking }

// Damageable reports whether the combatant can currently take damage.
// It is cleared at death to defuse same-frame double-kill races.
func (c *Combatant) Damageable() bool { return c.damageable }

// Profile returns the kind policy set selected at construction.
func (c *Combatant) Profile() KindProfile { return c.profile }

// Facing derives the current facing from the active frame name and mirror flag.
func (c *Combatant) Facing() Facing { return ParseFacing(c.Frame, c.FlipX) }

// Position returns the combatant's world position.
func (c *Combatant) Position() cp.Vector { return cp.Vector{X: c.X, Y: c.Y} }

// Bounds returns the combatant's body bounding box.
func (c *Combatant) Bounds() cp.BB {
	return cp.NewBBForExtents(c.Position(), c.Width/2, c.Height/2)
}

// ApplyDamage reduces Health by amount, flooring at zero.
//
// Precondition: amount must be >= 0.
// Postcondition: Attributes.Health >= 0.
func (c *Combatant) ApplyDamage(amount int) {
	c.Attributes.Health -= amount
	if c.Attributes.Health < 0 {
		c.Attributes.Health = 0
	}
}
