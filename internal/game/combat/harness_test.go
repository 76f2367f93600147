package combat_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/calder-games/arena/internal/config"
	"github.com/calder-games/arena/internal/game/combat"
	"github.com/calder-games/arena/internal/game/rng"
)

// seqSource is a deterministic rng.Source fed from fixed sequences. An empty
// ints sequence always draws 0; an empty floats sequence always draws 0.5
// (the midpoint, which makes the damage variance factor exactly 1.0).
type seqSource struct {
	ints   []int
	i      int
	floats []float64
	f      int
}

func (s *seqSource) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[s.i%len(s.ints)]
	s.i++
	if v >= n {
		v = n - 1
	}
	return v
}

func (s *seqSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0.5
	}
	v := s.floats[s.f%len(s.floats)]
	s.f++
	return v
}

// fakeAnimator captures playback requests and listeners so tests can fire
// start/complete events by hand. fire* respects deregistration; force*
// replays the originally registered callback even after deregistration, to
// simulate the race where a late event still reaches the core. The engine
// may call Stop from concurrent TakeDamage invocations, so stops is guarded.
type fakeAnimator struct {
	mu      sync.Mutex
	plays   []string
	stops   []string
	missing map[string]bool

	starts      map[string]func()
	completes   map[string]func()
	startFns    []func()
	completeFns []func()
}

func newFakeAnimator() *fakeAnimator {
	return &fakeAnimator{
		missing:   make(map[string]bool),
		starts:    make(map[string]func()),
		completes: make(map[string]func()),
	}
}

func listenerKey(c *combat.Combatant, key string) string { return c.ID + "/" + key }

func (a *fakeAnimator) Play(c *combat.Combatant, key string) bool {
	a.plays = append(a.plays, listenerKey(c, key))
	return !a.missing[key]
}

func (a *fakeAnimator) Stop(c *combat.Combatant) {
	a.mu.Lock()
	a.stops = append(a.stops, c.ID)
	a.mu.Unlock()
}

func (a *fakeAnimator) OnStart(c *combat.Combatant, key string, fn func()) combat.CancelFunc {
	k := listenerKey(c, key)
	a.starts[k] = fn
	a.startFns = append(a.startFns, fn)
	return func() { delete(a.starts, k) }
}

func (a *fakeAnimator) OnComplete(c *combat.Combatant, key string, fn func()) combat.CancelFunc {
	k := listenerKey(c, key)
	a.completes[k] = fn
	a.completeFns = append(a.completeFns, fn)
	return func() { delete(a.completes, k) }
}

func (a *fakeAnimator) fireStart(c *combat.Combatant, key string) {
	k := listenerKey(c, key)
	if fn, ok := a.starts[k]; ok {
		delete(a.starts, k)
		fn()
	}
}

func (a *fakeAnimator) fireComplete(c *combat.Combatant, key string) {
	k := listenerKey(c, key)
	if fn, ok := a.completes[k]; ok {
		delete(a.completes, k)
		fn()
	}
}

func (a *fakeAnimator) forceComplete(idx int) {
	a.completeFns[idx]()
}

// fakeScheduler captures scheduled calls. fire respects cancellation; force
// runs the callback regardless, to simulate a timer that fired before its
// cancellation landed. Scheduling and cancellation may arrive from
// concurrent engine calls.
type fakeScheduler struct {
	mu    sync.Mutex
	tasks []*schedTask
}

type schedTask struct {
	delay     time.Duration
	fn        func()
	cancelled bool
	fired     bool
}

func (s *fakeScheduler) ScheduleOnce(delay time.Duration, fn func()) combat.CancelFunc {
	t := &schedTask{delay: delay, fn: fn}
	s.mu.Lock()
	s.tasks = append(s.tasks, t)
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		t.cancelled = true
		s.mu.Unlock()
	}
}

func (s *fakeScheduler) fire(i int) {
	s.mu.Lock()
	t := s.tasks[i]
	runnable := !t.cancelled && !t.fired
	if runnable {
		t.fired = true
	}
	s.mu.Unlock()
	if runnable {
		// fn may schedule follow-up tasks, so it runs outside the lock.
		t.fn()
	}
}

func (s *fakeScheduler) force(i int) {
	s.tasks[i].fn()
}

func (s *fakeScheduler) fireAll() {
	for i := range s.tasks {
		s.fire(i)
	}
}

type fakeAudio struct {
	sounds []string
}

func (a *fakeAudio) PlaySound(key string) { a.sounds = append(a.sounds, key) }

type fakeVisual struct {
	tints   map[string]uint32
	cleared []string
}

func newFakeVisual() *fakeVisual { return &fakeVisual{tints: make(map[string]uint32)} }

func (v *fakeVisual) SetTint(c *combat.Combatant, rgba uint32) { v.tints[c.ID] = rgba }
func (v *fakeVisual) ClearTint(c *combat.Combatant) {
	delete(v.tints, c.ID)
	v.cleared = append(v.cleared, c.ID)
}

type award struct {
	id     string
	amount int
}

type fakeProgression struct {
	mu     sync.Mutex
	awards []award
}

func (p *fakeProgression) AwardExperience(c *combat.Combatant, amount int) {
	p.mu.Lock()
	p.awards = append(p.awards, award{id: c.ID, amount: amount})
	p.mu.Unlock()
}

type fakeWorld struct {
	looted    []string
	destroyed []string
}

func (w *fakeWorld) DropLoot(c *combat.Combatant) { w.looted = append(w.looted, c.ID) }
func (w *fakeWorld) Destroy(c *combat.Combatant)  { w.destroyed = append(w.destroyed, c.ID) }

// fakeSpace is a scripted Collision collaborator: every volume overlaps every
// target iff overlap is true.
type fakeSpace struct {
	created []combat.Placement
	removed int
	overlap bool
}

func (s *fakeSpace) CreateVolume(owner *combat.Combatant, pl combat.Placement) combat.VolumeHandle {
	s.created = append(s.created, pl)
	return combat.VolumeHandle(fmt.Sprintf("vol-%d", len(s.created)))
}

func (s *fakeSpace) Overlaps(h combat.VolumeHandle, target *combat.Combatant) bool {
	return s.overlap
}

func (s *fakeSpace) Remove(h combat.VolumeHandle) { s.removed++ }

// harness wires an Engine to the fake collaborators above. events is guarded
// because emits may arrive from concurrent TakeDamage calls.
type harness struct {
	engine *combat.Engine
	anim   *fakeAnimator
	sched  *fakeScheduler
	audio  *fakeAudio
	visual *fakeVisual
	prog   *fakeProgression
	world  *fakeWorld
	space  *fakeSpace

	eventMu sync.Mutex
	events  []combat.Event
}

func newHarness(t *testing.T, src rng.Source) *harness {
	t.Helper()
	h := &harness{
		anim:   newFakeAnimator(),
		sched:  &fakeScheduler{},
		audio:  &fakeAudio{},
		visual: newFakeVisual(),
		prog:   &fakeProgression{},
		world:  &fakeWorld{},
		space:  &fakeSpace{},
	}
	eng, err := combat.NewEngine(config.Default().Combat, combat.Deps{
		Animator:    h.anim,
		Scheduler:   h.sched,
		Collision:   h.space,
		World:       h.world,
		Audio:       h.audio,
		Visual:      h.visual,
		Progression: h.prog,
		Source:      src,
	})
	require.NoError(t, err)
	eng.Events().Subscribe(func(evt combat.Event) {
		h.eventMu.Lock()
		h.events = append(h.events, evt)
		h.eventMu.Unlock()
	})
	h.engine = eng
	return h
}

func (h *harness) eventCount(et combat.EventType) int {
	h.eventMu.Lock()
	defer h.eventMu.Unlock()
	n := 0
	for _, evt := range h.events {
		if evt.Type == et {
			n++
		}
	}
	return n
}

func newPlayer(attrs combat.Attributes) *combat.Combatant {
	return combat.NewCombatant("p1", "Alice", combat.KindPlayer, attrs)
}

func newEnemy(attrs combat.Attributes) *combat.Combatant {
	return combat.NewCombatant("e1", "Ganger", combat.KindEnemy, attrs)
}
