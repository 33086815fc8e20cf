package joystick

import "sync/atomic"

// State is the shared lifecycle flag observed by the poller, the consumer
// and the control listener. It is a lone atomic, not a lock-guarded value:
// each loop re-checks it once per tick and a one-tick stale read is fine.
type State int32

const (
	// Running: the poller drains events and the consumer renders/emits.
	Running State = iota
	// Stopped: capture is paused. The poller has exited and cannot be
	// restarted without recreating it; only shutdown remains.
	Stopped
	// Terminating: every loop winds down and the process exits.
	Terminating
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	case Terminating:
		return "terminating"
	default:
		return "unknown"
	}
}

// RunState holds the current lifecycle state.
type RunState struct {
	v atomic.Int32
}

// NewRunState returns a RunState in the Running state.
func NewRunState() *RunState {
	return &RunState{}
}

// State returns the current state.
func (r *RunState) State() State {
	return State(r.v.Load())
}

// Pause moves Running to Stopped. Returns false if capture was not running.
func (r *RunState) Pause() bool {
	return r.v.CompareAndSwap(int32(Running), int32(Stopped))
}

// Resume always fails: a stopped poller has released its device handle and
// exited its thread, and cannot be brought back without recreating it.
// Kept as an explicit method so callers surface the limitation to the user
// instead of silently ignoring the request.
func (r *RunState) Resume() bool {
	return false
}

// Terminate moves any state to Terminating.
func (r *RunState) Terminate() {
	r.v.Store(int32(Terminating))
}
