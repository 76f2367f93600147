// Package main provides the arenasim binary: a headless skirmish simulator
// that drives the combat core through a virtual-time tick loop and logs the
// fight transcript.
package main

import (
	"flag"
	"log"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/calder-games/arena/internal/config"
	"github.com/calder-games/arena/internal/game/combat"
	"github.com/calder-games/arena/internal/game/loot"
	"github.com/calder-games/arena/internal/game/rng"
	"github.com/calder-games/arena/internal/observability"
)

const (
	// moveSpeed is how far a combatant steps per tick when closing distance.
	moveSpeed = 3.0
	// attackAnimDuration is the virtual playback time of a swing. It must be
	// shorter than the attack fallback timeout so completion normally arrives
	// through the animation path.
	attackAnimDuration = 300 * time.Millisecond
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file; empty = built-in defaults")
	rosterPath := flag.String("roster", "", "path to skirmish roster YAML; empty = built-in skirmish")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
		cfg = loaded
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	roster := DefaultRoster()
	if *rosterPath != "" {
		roster, err = LoadRoster(*rosterPath)
		if err != nil {
			logger.Fatal("loading roster", zap.Error(err))
		}
	}

	var tables map[string]loot.Table
	if cfg.Sim.LootTablePath != "" {
		tables, err = loot.LoadTables(cfg.Sim.LootTablePath)
		if err != nil {
			logger.Fatal("loading loot tables", zap.Error(err))
		}
		logger.Info("loaded loot tables", zap.Int("count", len(tables)))
	}

	src := rng.NewCryptoSource()
	player, enemies, lootKeys := roster.Spawn()

	clock := &tickClock{}
	anim := newTickAnimator(clock, attackAnimDuration, logger)
	world := newSimWorld(logger, tables, lootKeys, src)
	prog := &simProgression{logger: logger}

	engine, err := combat.NewEngine(cfg.Combat, combat.Deps{
		Animator:    anim,
		Scheduler:   &tickScheduler{clock: clock},
		Collision:   combat.NewBBSpace(),
		World:       world,
		Audio:       &simAudio{logger: logger},
		Progression: prog,
		Source:      src,
		Logger:      logger,
	})
	if err != nil {
		logger.Fatal("creating combat engine", zap.Error(err))
	}

	engine.Events().Subscribe(func(evt combat.Event) {
		logger.Info("combat event",
			zap.String("type", string(evt.Type)),
			zap.String("attacker", evt.AttackerID),
			zap.String("target", evt.TargetID),
			zap.Int("damage", evt.Damage),
			zap.Bool("critical", evt.Critical),
			zap.Bool("blocked", evt.Blocked),
		)
	})

	engine.Register(player)
	for _, e := range enemies {
		engine.Register(e)
	}
	logger.Info("skirmish starting",
		zap.String("player", player.Name),
		zap.Int("enemies", len(enemies)),
	)

	ticks := runSkirmish(cfg, engine, clock, world, player, enemies)

	survivors := 0
	for _, e := range enemies {
		if !world.destroyed(e) {
			survivors++
		}
	}
	outcome := "victory"
	switch {
	case world.destroyed(player) || player.Attributes.Health == 0:
		outcome = "defeat"
	case survivors > 0:
		outcome = "timeout"
	}
	logger.Info("skirmish over",
		zap.String("outcome", outcome),
		zap.Int("ticks", ticks),
		zap.Int("player_health", player.Attributes.Health),
		zap.Int("enemies_remaining", survivors),
		zap.Duration("elapsed", time.Since(start)),
	)
}

// runSkirmish advances virtual time until one side is gone or the tick bound
// is hit, steering every combatant with the same close-and-swing policy.
func runSkirmish(cfg config.Config, engine *combat.Engine, clock *tickClock, world *simWorld, player *combat.Combatant, enemies []*combat.Combatant) int {
	reach := cfg.Combat.HitboxReach

	livingFoes := func() []*combat.Combatant {
		var out []*combat.Combatant
		for _, e := range enemies {
			if !world.destroyed(e) && e.Damageable() {
				out = append(out, e)
			}
		}
		return out
	}

	undestroyed := func() int {
		n := 0
		for _, e := range enemies {
			if !world.destroyed(e) {
				n++
			}
		}
		return n
	}

	tick := 0
	for ; cfg.Sim.MaxTicks == 0 || tick < cfg.Sim.MaxTicks; tick++ {
		clock.advance(cfg.Sim.TickInterval)

		// Termination waits for destruction, not just lethal damage, so the
		// grace-delayed loot drops land in the transcript.
		if world.destroyed(player) || undestroyed() == 0 {
			break
		}

		foes := livingFoes()
		if player.Damageable() {
			steer(engine, player, nearest(player, foes), reach)
		}
		for _, e := range foes {
			steer(engine, e, player, reach)
		}

		engine.Update()
	}
	return tick
}

// steer closes the distance to target and swings once in reach. Movement
// honors the combatant's capability locks.
func steer(engine *combat.Engine, c, target *combat.Combatant, reach float64) {
	if target == nil || c.IsAttacking() || c.IsBlocking() {
		return
	}

	dx, dy := target.X-c.X, target.Y-c.Y
	face(c, dx, dy)

	dist := math.Hypot(dx, dy)
	if dist <= reach {
		engine.Attack(c)
		return
	}
	if !c.CanMove.Enabled() {
		return
	}
	step := math.Min(moveSpeed, dist)
	c.X += dx / dist * step
	c.Y += dy / dist * step
}

// face points c's idle frame along the dominant axis toward (dx, dy).
func face(c *combat.Combatant, dx, dy float64) {
	var f combat.Facing
	if math.Abs(dx) >= math.Abs(dy) {
		f = combat.FacingRight
		if dx < 0 {
			f = combat.FacingLeft
		}
	} else {
		f = combat.FacingDown
		if dy < 0 {
			f = combat.FacingUp
		}
	}
	c.FlipX = false
	c.Frame = combat.IdleAnimationKey(f)
}

func nearest(from *combat.Combatant, candidates []*combat.Combatant) *combat.Combatant {
	var best *combat.Combatant
	bestDist := math.Inf(1)
	for _, c := range candidates {
		d := math.Hypot(c.X-from.X, c.Y-from.Y)
		if d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}
