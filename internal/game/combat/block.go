package combat

import "go.uber.org/zap"

// Block enters the blocking state: movement and attacking are disabled under
// this core's block tag, the blocking tint is applied, and the directional
// block animation plays if one exists (absence is tolerated — the state
// transition still occurs). The guard failure is a silent no-op.
//
// Postcondition on success: IsBlocking() is true; CanMove and CanAttack hold
// a disable tagged OwnerBlock.
//
// Precondition: c must be non-nil (panics otherwise).
func (e *Engine) Block(c *Combatant) {
	if c == nil {
		panic("combat: Block called with nil combatant")
	}

	e.mu.Lock()
	if !c.CanBlock.Enabled() || c.blocking || c.attacking {
		e.mu.Unlock()
		return
	}
	c.blocking = true
	c.CanMove.Disable(OwnerBlock)
	c.CanAttack.Disable(OwnerBlock)
	facing := c.Facing()
	e.mu.Unlock()

	e.visual.SetTint(c, BlockTint)
	if !e.anim.Play(c, BlockAnimationKey(facing)) {
		e.logger.Debug("no block animation for facing",
			zap.String("combatant", c.ID),
			zap.String("facing", facing.String()),
		)
	}
	e.logger.Debug("block entered", zap.String("combatant", c.ID))
}

// StopBlock exits the blocking state. Only the holds this core placed at
// block-enter are released: a capability an external system disabled for its
// own reason (an open dialog, say) stays disabled until that system releases
// it. No-op unless c is blocking.
//
// Precondition: c must be non-nil (panics otherwise).
func (e *Engine) StopBlock(c *Combatant) {
	if c == nil {
		panic("combat: StopBlock called with nil combatant")
	}

	e.mu.Lock()
	if !c.blocking {
		e.mu.Unlock()
		return
	}
	c.blocking = false
	c.CanMove.Enable(OwnerBlock)
	c.CanAttack.Enable(OwnerBlock)
	facing := c.Facing()
	e.mu.Unlock()

	e.visual.ClearTint(c)
	e.anim.Play(c, IdleAnimationKey(facing))
	e.logger.Debug("block exited", zap.String("combatant", c.ID))
}
