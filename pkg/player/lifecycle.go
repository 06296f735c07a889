package player

import "strings"

// LifecycleState is a host application lifecycle state.
type LifecycleState string

const (
	// LifecycleResumed indicates the host is visible and responding to user input.
	LifecycleResumed LifecycleState = "resumed"

	// LifecycleInactive indicates the host is transitioning (e.g., receiving a phone call).
	LifecycleInactive LifecycleState = "inactive"

	// LifecyclePaused indicates the host is not visible but still running.
	LifecyclePaused LifecycleState = "paused"

	// LifecycleDetached indicates the host is being torn down.
	LifecycleDetached LifecycleState = "detached"
)

// ParseLifecycleState matches s case-insensitively against the known states.
func ParseLifecycleState(s string) (LifecycleState, bool) {
	state := LifecycleState(strings.ToLower(strings.TrimSpace(s)))
	switch state {
	case LifecycleResumed, LifecycleInactive, LifecyclePaused, LifecycleDetached:
		return state, true
	}
	return "", false
}

// HandleLifecycle maps a host lifecycle transition onto the view: resumed
// calls OnResume, inactive and paused call OnStop, and detached calls Release.
// It must be called on the dispatcher.
func (v *View) HandleLifecycle(state LifecycleState) {
	switch state {
	case LifecycleResumed:
		v.OnResume()
	case LifecycleInactive, LifecyclePaused:
		v.OnStop()
	case LifecycleDetached:
		v.Release()
	}
}
