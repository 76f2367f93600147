package combat

// EventType identifies a combat event.
type EventType string

const (
	EventAttackStarted   EventType = "attack_started"
	EventAttackCompleted EventType = "attack_completed"
	EventMiss            EventType = "miss"
	EventDamageApplied   EventType = "damage_applied"
	EventDeath           EventType = "death"
)

// Event is emitted during combat resolution. Display collaborators render
// damage numbers and death effects from these; the core itself draws nothing.
type Event struct {
	Type       EventType
	AttackerID string
	TargetID   string
	Damage     int
	Critical   bool
	Blocked    bool
}

// EventHandler handles combat events.
type EventHandler func(evt Event)

// Emitter dispatches combat events to subscribed handlers in subscription
// order.
type Emitter struct {
	handlers []EventHandler
}

// Subscribe appends fn to the handler list. Nil handlers are ignored.
func (e *Emitter) Subscribe(fn EventHandler) {
	if fn == nil {
		return
	}
	e.handlers = append(e.handlers, fn)
}

// Emit sends evt to all handlers.
func (e *Emitter) Emit(evt Event) {
	if e == nil {
		return
	}
	for _, h := range e.handlers {
		h(evt)
	}
}
