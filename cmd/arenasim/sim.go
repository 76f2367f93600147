package main

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/calder-games/arena/internal/game/combat"
	"github.com/calder-games/arena/internal/game/loot"
	"github.com/calder-games/arena/internal/game/rng"
)

// tickClock is the simulation's virtual time source shared by the animator
// and scheduler. Advancing it fires everything that has come due, in order.
type tickClock struct {
	now  time.Duration
	next int
	due  []*clockTask
}

type clockTask struct {
	seq       int
	at        time.Duration
	fn        func()
	cancelled bool
}

func (c *tickClock) after(delay time.Duration, fn func()) *clockTask {
	t := &clockTask{seq: c.next, at: c.now + delay, fn: fn}
	c.next++
	c.due = append(c.due, t)
	return t
}

// advance moves virtual time forward and runs every pending task whose
// deadline has passed, in deadline order. Tasks scheduled by a firing task
// run on a later advance.
func (c *tickClock) advance(dt time.Duration) {
	c.now += dt
	pending := c.due
	c.due = nil
	sort.SliceStable(pending, func(i, j int) bool { return pending[i].at < pending[j].at })
	for _, t := range pending {
		if t.cancelled {
			continue
		}
		if t.at > c.now {
			c.due = append(c.due, t)
			continue
		}
		t.fn()
	}
}

// tickScheduler adapts the clock to combat.Scheduler.
type tickScheduler struct {
	clock *tickClock
}

func (s *tickScheduler) ScheduleOnce(delay time.Duration, fn func()) combat.CancelFunc {
	t := s.clock.after(delay, fn)
	return func() { t.cancelled = true }
}

// tickAnimator is a headless combat.Animator: every playback "starts" on the
// next advance and "completes" one animation duration later. Listener
// callbacks therefore never fire synchronously from registration.
type tickAnimator struct {
	clock    *tickClock
	duration time.Duration
	logger   *zap.Logger

	listeners map[string][]*animListener
}

type animListener struct {
	fn        func()
	cancelled bool
}

func newTickAnimator(clock *tickClock, duration time.Duration, logger *zap.Logger) *tickAnimator {
	return &tickAnimator{
		clock:     clock,
		duration:  duration,
		logger:    logger,
		listeners: make(map[string][]*animListener),
	}
}

func (a *tickAnimator) key(c *combat.Combatant, key, phase string) string {
	return c.ID + "/" + key + "/" + phase
}

func (a *tickAnimator) Play(c *combat.Combatant, key string) bool {
	c.Frame = key
	a.logger.Debug("animation play", zap.String("combatant", c.Name), zap.String("key", key))
	a.fireAfter(a.key(c, key, "start"), 0)
	a.fireAfter(a.key(c, key, "complete"), a.duration)
	return true
}

func (a *tickAnimator) Stop(c *combat.Combatant) {
	a.logger.Debug("animation stop", zap.String("combatant", c.Name))
}

func (a *tickAnimator) OnStart(c *combat.Combatant, key string, fn func()) combat.CancelFunc {
	return a.listen(a.key(c, key, "start"), fn)
}

func (a *tickAnimator) OnComplete(c *combat.Combatant, key string, fn func()) combat.CancelFunc {
	return a.listen(a.key(c, key, "complete"), fn)
}

func (a *tickAnimator) listen(k string, fn func()) combat.CancelFunc {
	l := &animListener{fn: fn}
	a.listeners[k] = append(a.listeners[k], l)
	return func() { l.cancelled = true }
}

// fireAfter schedules the one-shot delivery of an animation phase to its
// current listeners.
func (a *tickAnimator) fireAfter(k string, delay time.Duration) {
	a.clock.after(delay, func() {
		pending := a.listeners[k]
		delete(a.listeners, k)
		for _, l := range pending {
			if !l.cancelled {
				l.fn()
			}
		}
	})
}

// simWorld implements combat.World for the headless skirmish: loot rolls are
// logged instead of rendered, destruction marks the combatant dead.
type simWorld struct {
	logger   *zap.Logger
	tables   map[string]loot.Table
	lootKeys map[string]string
	src      rng.Source

	dead map[string]bool
}

func newSimWorld(logger *zap.Logger, tables map[string]loot.Table, lootKeys map[string]string, src rng.Source) *simWorld {
	return &simWorld{
		logger:   logger,
		tables:   tables,
		lootKeys: lootKeys,
		src:      src,
		dead:     make(map[string]bool),
	}
}

func (w *simWorld) DropLoot(c *combat.Combatant) {
	table, ok := w.tables[w.lootKeys[c.ID]]
	if !ok {
		return
	}
	result := loot.Generate(table, w.src)
	w.logger.Info("loot dropped",
		zap.String("combatant", c.Name),
		zap.Int("currency", result.Currency),
		zap.Int("items", len(result.Items)),
	)
	for _, item := range result.Items {
		w.logger.Info("loot item",
			zap.String("item", item.ItemDefID),
			zap.Int("quantity", item.Quantity),
		)
	}
}

func (w *simWorld) Destroy(c *combat.Combatant) {
	w.dead[c.ID] = true
	w.logger.Info("combatant removed", zap.String("combatant", c.Name))
}

func (w *simWorld) destroyed(c *combat.Combatant) bool { return w.dead[c.ID] }

// simProgression logs experience awards.
type simProgression struct {
	logger *zap.Logger
	total  int
}

func (p *simProgression) AwardExperience(c *combat.Combatant, amount int) {
	p.total += amount
	p.logger.Info("experience awarded",
		zap.String("combatant", c.Name),
		zap.Int("amount", amount),
		zap.Int("total", p.total),
	)
}

// simAudio logs sound cues.
type simAudio struct {
	logger *zap.Logger
}

func (a *simAudio) PlaySound(key string) {
	a.logger.Debug("sound", zap.String("key", key))
}
