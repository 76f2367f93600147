package combat

import "go.uber.org/zap"

// sequenceDeath runs when damage brings a target's health to zero. The caller
// has already cleared the victim's damageable flag in the same locked section
// that detected the kill, so a concurrent second lethal hit resolves to a
// zero outcome and this sequence runs at most once per victim.
//
//  1. Stop the victim's animation.
//  2. Award the victim's experience reward to a player-kind killer when the
//     victim's profile yields experience.
//  3. After the grace delay, drop loot and destroy the victim. The delay
//     exists so the death effect registers visually before removal; it is
//     fire-and-forget and never blocks the caller.
func (e *Engine) sequenceDeath(killer, victim *Combatant) {
	e.anim.Stop(victim)

	if victim.profile.YieldsExperience && killer.IsPlayer() && victim.ExperienceReward > 0 {
		e.prog.AwardExperience(killer, victim.ExperienceReward)
		e.logger.Debug("experience awarded",
			zap.String("killer", killer.ID),
			zap.Int("amount", victim.ExperienceReward),
		)
	}

	e.emitter.Emit(Event{Type: EventDeath, AttackerID: killer.ID, TargetID: victim.ID})
	e.logger.Debug("death sequenced",
		zap.String("victim", victim.ID),
		zap.Duration("grace", e.grace),
	)

	e.sched.ScheduleOnce(e.grace, func() {
		e.world.DropLoot(victim)
		e.Deregister(victim)
		e.world.Destroy(victim)
	})
}
