package combat

import "sync"

// Capability owner tags used by this core. External systems (dialog, cutscene
// triggers) use their own tags; only the tag that disabled a capability may
// re-enable it.
const (
	OwnerAttack = "combat:attack"
	OwnerBlock  = "combat:block"
)

// Capability is an owner-tagged capability lock backing the canMove /
// canAttack / canBlock flags. Each subsystem that disables a capability
// records that it did so; a capability is enabled iff no subsystem currently
// holds a disable. This keeps one system's "resume" from stomping another's
// "still disabled".
//
// It is safe for concurrent use.
type Capability struct {
	mu    sync.Mutex
	holds map[string]struct{}
}

// NewCapability returns an enabled Capability with no holds.
func NewCapability() *Capability {
	return &Capability{holds: make(map[string]struct{})}
}

// Disable records owner's hold on the capability. Disabling twice under the
// same owner is a single hold.
//
// Postcondition: Enabled() is false.
func (c *Capability) Disable(owner string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.holds == nil {
		c.holds = make(map[string]struct{})
	}
	c.holds[owner] = struct{}{}
}

// Enable releases owner's hold. Holds placed by other owners survive.
// Releasing a hold that was never placed is a no-op.
func (c *Capability) Enable(owner string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.holds, owner)
}

// Enabled reports whether no subsystem currently holds a disable.
func (c *Capability) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.holds) == 0
}

// DisabledBy reports whether owner currently holds a disable.
func (c *Capability) DisabledBy(owner string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.holds[owner]
	return ok
}

// Reset clears every hold, re-enabling the capability unconditionally.
// Intended for bulk re-arms after an external scene reset.
func (c *Capability) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.holds = make(map[string]struct{})
}
