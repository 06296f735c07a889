// Package netstate observes host network connectivity.
//
// A Monitor that cannot classify connectivity reports connected, so that a
// missing facility never blocks player initialization.
package netstate

import (
	"errors"
	"sync"
)

// ErrClosed is returned when subscribing to a closed monitor.
var ErrClosed = errors.New("monitor closed")

// Monitor reports connectivity and notifies subscribers of changes.
type Monitor interface {
	// Connected reports whether a usable network is available.
	Connected() bool

	// Subscribe registers fn to be called with the new state whenever
	// connectivity changes. fn may be called from any goroutine. The returned
	// cancel function stops notifications.
	Subscribe(fn func(connected bool)) (cancel func() error, err error)
}

// Static is a Monitor whose state is set by the caller. The zero value
// reports disconnected.
type Static struct {
	mu        sync.Mutex
	connected bool
	subs      map[int]func(bool)
	nextID    int
}

// NewStatic creates a Static monitor with the given initial state.
func NewStatic(connected bool) *Static {
	return &Static{connected: connected}
}

// Always returns a monitor that reports connected and never changes. It is
// the fallback when no connectivity facility is available.
func Always() *Static {
	return NewStatic(true)
}

// Connected implements Monitor.
func (s *Static) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// Subscribe implements Monitor.
func (s *Static) Subscribe(fn func(bool)) (func() error, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subs == nil {
		s.subs = make(map[int]func(bool))
	}
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() error {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
		return nil
	}, nil
}

// Set changes the state and notifies subscribers when it differs.
func (s *Static) Set(connected bool) {
	s.mu.Lock()
	if s.connected == connected {
		s.mu.Unlock()
		return
	}
	s.connected = connected
	subs := make([]func(bool), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(connected)
	}
}

// Subscribers returns the number of active subscriptions.
func (s *Static) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}
