package combat

import (
	"sync"

	"github.com/google/uuid"
	"github.com/jakecoffman/cp"
)

// BBSpace is an in-memory Collision implementation using axis-aligned
// bounding boxes. It serves the simulator and tests; a full physics engine
// can replace it behind the same interface.
//
// It is safe for concurrent use.
type BBSpace struct {
	mu      sync.Mutex
	volumes map[VolumeHandle]cp.BB
}

// NewBBSpace returns an empty BBSpace.
func NewBBSpace() *BBSpace {
	return &BBSpace{volumes: make(map[VolumeHandle]cp.BB)}
}

// CreateVolume registers the placed volume and returns a fresh handle.
func (s *BBSpace) CreateVolume(owner *Combatant, pl Placement) VolumeHandle {
	h := VolumeHandle(uuid.NewString())
	s.mu.Lock()
	s.volumes[h] = pl.BB()
	s.mu.Unlock()
	return h
}

// Overlaps reports whether the volume's box intersects target's body bounds.
// Unknown handles never overlap.
func (s *BBSpace) Overlaps(h VolumeHandle, target *Combatant) bool {
	s.mu.Lock()
	bb, ok := s.volumes[h]
	s.mu.Unlock()
	if !ok {
		return false
	}
	return bb.Intersects(target.Bounds())
}

// Remove discards the volume. Removing an unknown handle is a no-op.
func (s *BBSpace) Remove(h VolumeHandle) {
	s.mu.Lock()
	delete(s.volumes, h)
	s.mu.Unlock()
}
