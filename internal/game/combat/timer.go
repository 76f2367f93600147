package combat

import (
	"sync"
	"time"
)

// TimerScheduler implements Scheduler on the process clock. Each scheduled
// call owns its own timer; timers are discarded once fired or cancelled,
// never reused.
type TimerScheduler struct{}

// ScheduleOnce runs fn after delay in a separate goroutine unless the
// returned CancelFunc is called first. A stopped-flag guard covers the window
// where the timer fires concurrently with cancellation: once CancelFunc
// returns, fn will not run.
//
// Precondition: delay >= 0; fn must not be nil.
func (TimerScheduler) ScheduleOnce(delay time.Duration, fn func()) CancelFunc {
	var mu sync.Mutex
	stopped := false

	t := time.AfterFunc(delay, func() {
		mu.Lock()
		s := stopped
		mu.Unlock()
		if !s {
			fn()
		}
	})

	return func() {
		mu.Lock()
		stopped = true
		mu.Unlock()
		t.Stop()
	}
}
