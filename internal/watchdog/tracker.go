package watchdog

import (
	"time"

	api "github.com/ghostinator/netdog/lib-netdog"
	"github.com/google/uuid"
)

// State is the watchdog state.
type State int8

const (
	// StateHealthy means the last check proved working connectivity.
	StateHealthy State = iota

	// StateDegraded means the checks are failing but the failures have not
	// lasted long enough to reset the adapter yet.
	StateDegraded

	// StateRemediating means an adapter reset is in progress.
	// This state is transient; it collapses back to StateHealthy or
	// StateDegraded before the check round finishes.
	StateRemediating
)

func (s State) String() string {
	switch s {
	case StateDegraded:
		return "DEGRADED"
	case StateRemediating:
		return "REMEDIATING"
	default:
		return "HEALTHY"
	}
}

// Decision is the outcome of feeding one check round into the Tracker.
type Decision struct {
	// NeedReset is true when the failures lasted past the threshold and the
	// adapter should be reset now.
	NeedReset bool

	// Resolved is the failure window that this round closed, or nil.
	Resolved *api.FailureWindow
}

// Tracker accumulates failure evidence over check rounds and decides when
// the adapter is due for a reset.
//
// The tracker keeps at most one open failure window. The window opens at
// the first failed round after a healthy one, and closes when a round
// succeeds or an adapter reset succeeds. While the window is open, a round
// that is at least the threshold after the window start asks for a reset.
//
// The tracker is not safe for concurrent use; the watchdog drives it from
// a single goroutine.
type Tracker struct {
	threshold time.Duration
	window    *api.FailureWindow
}

func NewTracker(threshold time.Duration) *Tracker {
	return &Tracker{threshold: threshold}
}

// State returns the current state.
// StateRemediating is never returned here because it only lives inside a
// single check round.
func (t *Tracker) State() State {
	if t.window == nil {
		return StateHealthy
	}
	return StateDegraded
}

// Window returns a copy of the open failure window, or nil.
func (t *Tracker) Window() *api.FailureWindow {
	if t.window == nil {
		return nil
	}
	w := *t.window
	return &w
}

// Observe consumes the outcome of one check round.
//
// The at argument is the time of the round itself, not the wall clock, so
// that the threshold arithmetic is exact no matter how long the probes took.
func (t *Tracker) Observe(at time.Time, healthy bool, adapter, message string) Decision {
	if healthy {
		return Decision{Resolved: t.close(at)}
	}

	if t.window == nil {
		t.window = &api.FailureWindow{
			ID:        uuid.NewString(),
			Adapter:   adapter,
			Message:   message,
			StartedAt: at,
			Failures:  1,
		}
	} else {
		t.window.Failures++
		if message != "" {
			t.window.Message = message
		}
	}

	return Decision{
		NeedReset: at.Sub(t.window.StartedAt) >= t.threshold,
	}
}

// ResetAttempted records that an adapter reset was attempted, whatever came
// out of it.
func (t *Tracker) ResetAttempted() {
	if t.window != nil {
		t.window.Resets++
	}
}

// ResetSucceeded closes the window and returns it.
//
// This is optimistic: the reset is assumed to have fixed the connectivity,
// and the next round's probes confirm or reopen. A reset that did not help
// opens a fresh window on the next failed round, and that window asks for
// another reset only after a full threshold again.
func (t *Tracker) ResetSucceeded(at time.Time) *api.FailureWindow {
	return t.close(at)
}

// ResetFailed keeps the window open, so the next failed round is already
// past the threshold and retries the reset immediately.
func (t *Tracker) ResetFailed(message string) {
	if t.window != nil && message != "" {
		t.window.Message = message
	}
}

func (t *Tracker) close(at time.Time) *api.FailureWindow {
	if t.window == nil {
		return nil
	}
	w := t.window
	t.window = nil
	w.ResolvedAt = at
	return w
}
