package player

import (
	stderrors "errors"
	"sync/atomic"

	"github.com/go-drift/ytplayer/pkg/errors"
)

// ReadinessState tracks whether a player handle accepts commands.
type ReadinessState int32

const (
	// Uninitialized is the state before Initialize is called.
	Uninitialized ReadinessState = iota
	// Initializing is the state after Initialize, until the runtime reports ready.
	Initializing
	// Ready is terminal. A handle that stops being usable is destroyed, not reset.
	Ready
)

func (s ReadinessState) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initializing:
		return "initializing"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// Usage errors returned to the host.
var (
	// ErrAlreadyInitialized is returned when initializing a handle that is
	// past Uninitialized.
	ErrAlreadyInitialized = stderrors.New("player already initialized")

	// ErrCustomUI is returned when requesting the default chrome of a view
	// that uses a custom UI.
	ErrCustomUI = stderrors.New("player uses a custom UI; the default UI is unavailable")

	// ErrReleased is returned when operating a view after Release.
	ErrReleased = stderrors.New("player view released")
)

// ReadyCallback receives the player handle once it is ready.
type ReadyCallback func(p *Player)

// Readiness is the Uninitialized → Initializing → Ready state machine with
// its queue of pending ready callbacks.
//
// State and Destroyed may be read from any goroutine. Every other method
// must be called on the dispatcher.
type Readiness struct {
	state     atomic.Int32
	destroyed atomic.Bool
	pending   []ReadyCallback
}

// State returns the current state.
func (r *Readiness) State() ReadinessState {
	return ReadinessState(r.state.Load())
}

// Begin moves Uninitialized to Initializing. It fails with
// ErrAlreadyInitialized in any other state and leaves the state unchanged.
func (r *Readiness) Begin() error {
	if !r.state.CompareAndSwap(int32(Uninitialized), int32(Initializing)) {
		return ErrAlreadyInitialized
	}
	return nil
}

// WhenReady runs cb immediately if the handle is Ready, and otherwise queues
// it. Callbacks requested after Destroy are dropped.
func (r *Readiness) WhenReady(p *Player, cb ReadyCallback) {
	if cb == nil || r.destroyed.Load() {
		return
	}
	if r.State() == Ready {
		runReady(cb, p)
		return
	}
	r.pending = append(r.pending, cb)
}

// MarkReady enters Ready and runs every queued callback exactly once, in the
// order they were requested. A panicking callback is reported and does not
// stop the ones after it. It reports whether this call made the transition;
// later calls do nothing and return false.
func (r *Readiness) MarkReady(p *Player) bool {
	if r.destroyed.Load() || r.State() == Ready {
		return false
	}
	r.state.Store(int32(Ready))

	pending := r.pending
	r.pending = nil
	for _, cb := range pending {
		runReady(cb, p)
	}
	return true
}

func runReady(cb ReadyCallback, p *Player) {
	defer errors.Recover("player.ready")
	cb(p)
}

// Pending returns the number of queued callbacks.
func (r *Readiness) Pending() int {
	return len(r.pending)
}

// Destroy drops queued callbacks. Raw events arriving afterwards are discarded.
func (r *Readiness) Destroy() {
	r.destroyed.Store(true)
	r.pending = nil
}

// Destroyed reports whether Destroy was called.
func (r *Readiness) Destroyed() bool {
	return r.destroyed.Load()
}
