package combat

import "time"

// CancelFunc deregisters a listener or cancels a scheduled call. Calling it
// more than once, or after the listener fired, is a no-op.
type CancelFunc func()

// Animator is the animation playback collaborator. The core requests
// playbacks and listens for start/complete notifications; it does not know
// how frames are drawn.
//
// Listeners registered through OnStart and OnComplete fire on a later tick,
// never synchronously from within the registration call.
type Animator interface {
	// Play requests playback of key for c. It reports whether an animation
	// exists for key; a missing animation is tolerated by every caller.
	Play(c *Combatant, key string) bool
	// Stop halts c's current playback immediately.
	Stop(c *Combatant)
	// OnStart registers a one-shot callback fired when playback of key begins.
	OnStart(c *Combatant, key string, fn func()) CancelFunc
	// OnComplete registers a one-shot callback fired when playback of key
	// finishes.
	OnComplete(c *Combatant, key string, fn func()) CancelFunc
}

// Scheduler defers a call to a later tick. Scheduled calls are fire-and-forget
// from the caller's perspective.
type Scheduler interface {
	ScheduleOnce(delay time.Duration, fn func()) CancelFunc
}

// Audio receives sound-intent cues. The core selects keys; resource
// management belongs to the collaborator.
type Audio interface {
	PlaySound(key string)
}

// Visual receives tint intents for state feedback (the blocking tint).
type Visual interface {
	SetTint(c *Combatant, rgba uint32)
	ClearTint(c *Combatant)
}

// VolumeHandle identifies one transient collision volume.
type VolumeHandle string

// Collision is the overlap-detection collaborator. The core creates and
// removes transient melee volumes and asks for overlap verdicts; detection
// itself is external.
type Collision interface {
	// CreateVolume registers a transient volume for owner with the given
	// placement.
	CreateVolume(owner *Combatant, pl Placement) VolumeHandle
	// Overlaps reports whether the volume overlaps target's body bounds.
	Overlaps(h VolumeHandle, target *Combatant) bool
	// Remove discards the volume. Removing an unknown handle is a no-op.
	Remove(h VolumeHandle)
}

// Progression is the external leveling collaborator. The core only reports
// awards; the leveling curve lives elsewhere.
type Progression interface {
	AwardExperience(c *Combatant, amount int)
}

// World owns combatant lifecycle outside combat: loot presentation and final
// removal.
type World interface {
	DropLoot(c *Combatant)
	Destroy(c *Combatant)
}

// BlockTint is the feedback tint applied while blocking.
const BlockTint uint32 = 0x7f7fe0ff

// noopAudio, noopVisual, and noopProgression back optional collaborators so
// the state machines never nil-check mid-flow.
type noopAudio struct{}

func (noopAudio) PlaySound(string) {}

type noopVisual struct{}

func (noopVisual) SetTint(*Combatant, uint32) {}
func (noopVisual) ClearTint(*Combatant)       {}

type noopProgression struct{}

func (noopProgression) AwardExperience(*Combatant, int) {}
