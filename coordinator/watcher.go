package coordinator

import (
	"time"

	"github.com/deevus/matchday-tui/match"
)

// DefaultStatusCooldown is the minimum gap between two invalidations.
const DefaultStatusCooldown = 10 * time.Second

// StatusWatcher decides when a status change should invalidate live data.
//
// A change is watched when it leaves not_started or enters finished. A watched
// change fires unless the previous watched change was less than the cooldown
// ago; a suppressed change still restarts the cooldown.
type StatusWatcher struct {
	cooldown time.Duration
	now      func() time.Time

	seeded           bool
	last             match.Status
	lastInvalidation time.Time
}

func NewStatusWatcher(cooldown time.Duration, now func() time.Time) *StatusWatcher {
	if now == nil {
		now = time.Now
	}
	return &StatusWatcher{cooldown: cooldown, now: now}
}

// Reset starts watching a new subject from the given baseline. An empty status
// leaves the baseline to the next observation.
func (w *StatusWatcher) Reset(status match.Status) {
	w.seeded = status != ""
	w.last = status
	w.lastInvalidation = time.Time{}
}

// Observe records status and reports whether live data should be invalidated.
// The first observation only sets the baseline.
func (w *StatusWatcher) Observe(status match.Status) bool {
	if !w.seeded {
		w.Reset(status)
		return false
	}

	prev := w.last
	w.last = status
	if status == prev {
		return false
	}
	if prev != match.StatusNotStarted && status != match.StatusFinished {
		return false
	}

	now := w.now()
	fire := w.lastInvalidation.IsZero() || now.Sub(w.lastInvalidation) >= w.cooldown
	w.lastInvalidation = now
	return fire
}

// Last returns the most recently observed status.
func (w *StatusWatcher) Last() match.Status {
	return w.last
}
