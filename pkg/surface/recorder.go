package surface

import (
	"sync"

	"github.com/go-drift/ytplayer/pkg/event"
)

// Call is one command received by a Recorder.
type Call struct {
	Command Command
	Args    []any
}

// Recorder is a Surface that records commands instead of running a runtime.
// Tests drive it by emitting raw signals with Emit.
//
//	rec := surface.NewRecorder()
//	view := player.NewView(rec, dispatch.Immediate{}, netstate.Always())
//	rec.Emit(event.CategoryReady, "")
type Recorder struct {
	mu          sync.Mutex
	vars        map[string]any
	sink        Sink
	calls       []Call
	initialized int
	destroyed   bool

	// InitErr, when set, is returned by Initialize.
	InitErr error
	// InvokeErr, when set, is returned by Invoke after the call is recorded.
	InvokeErr error
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Initialize implements Surface.
func (r *Recorder) Initialize(vars map[string]any, sink Sink) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.initialized++
	if r.InitErr != nil {
		return r.InitErr
	}
	r.vars = vars
	r.sink = sink
	return nil
}

// Invoke implements Surface.
func (r *Recorder) Invoke(cmd Command, args ...any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.destroyed {
		return ErrDestroyed
	}
	r.calls = append(r.calls, Call{Command: cmd, Args: args})
	return r.InvokeErr
}

// Destroy implements Surface.
func (r *Recorder) Destroy() {
	r.mu.Lock()
	r.destroyed = true
	r.sink = nil
	r.mu.Unlock()
}

// Emit delivers a raw signal to the sink passed to Initialize. It reports
// false if the recorder is not initialized or has been destroyed.
func (r *Recorder) Emit(category event.Category, payload string) bool {
	r.mu.Lock()
	sink := r.sink
	r.mu.Unlock()
	if sink == nil {
		return false
	}
	sink(category, payload)
	return true
}

// Calls returns a copy of the recorded commands.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Commands returns the names of the recorded commands in order.
func (r *Recorder) Commands() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Command, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.Command
	}
	return out
}

// Last returns the most recent command, if any.
func (r *Recorder) Last() (Call, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return Call{}, false
	}
	return r.calls[len(r.calls)-1], true
}

// Reset forgets recorded commands.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.calls = nil
	r.mu.Unlock()
}

// Vars returns the variables passed to Initialize.
func (r *Recorder) Vars() map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.vars
}

// Initialized returns how many times Initialize was called.
func (r *Recorder) Initialized() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.initialized
}

// Destroyed reports whether Destroy was called.
func (r *Recorder) Destroyed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.destroyed
}
