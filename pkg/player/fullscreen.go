package player

import (
	"sync/atomic"

	"github.com/go-drift/ytplayer/pkg/listener"
)

// FullscreenListener is notified when the view enters or exits fullscreen.
type FullscreenListener interface {
	OnEnterFullscreen()
	OnExitFullscreen()
}

// FullscreenFuncs adapts a pair of functions to a FullscreenListener.
// Either function may be nil. Register it by pointer so it can be removed.
type FullscreenFuncs struct {
	Enter func()
	Exit  func()
}

func (f *FullscreenFuncs) OnEnterFullscreen() {
	if f.Enter != nil {
		f.Enter()
	}
}

func (f *FullscreenFuncs) OnExitFullscreen() {
	if f.Exit != nil {
		f.Exit()
	}
}

// Fullscreen tracks the view's fullscreen flag and notifies listeners on
// change. It draws nothing; the host resizes its own views in response.
//
// IsFullscreen may be called from any goroutine. Every other method must be
// called on the dispatcher.
type Fullscreen struct {
	on        atomic.Bool
	listeners listener.Registry[FullscreenListener]
}

// IsFullscreen reports whether the view is fullscreen.
func (f *Fullscreen) IsFullscreen() bool {
	return f.on.Load()
}

// Enter switches to fullscreen. It does nothing if already fullscreen.
func (f *Fullscreen) Enter() {
	if !f.on.CompareAndSwap(false, true) {
		return
	}
	f.listeners.ForEach(func(l FullscreenListener) { l.OnEnterFullscreen() })
}

// Exit leaves fullscreen. It does nothing if not fullscreen.
func (f *Fullscreen) Exit() {
	if !f.on.CompareAndSwap(true, false) {
		return
	}
	f.listeners.ForEach(func(l FullscreenListener) { l.OnExitFullscreen() })
}

// Toggle enters or exits fullscreen.
func (f *Fullscreen) Toggle() {
	if f.IsFullscreen() {
		f.Exit()
	} else {
		f.Enter()
	}
}

// AddListener registers l. It returns false if l was already registered.
func (f *Fullscreen) AddListener(l FullscreenListener) bool {
	return f.listeners.Add(l)
}

// RemoveListener unregisters l. It returns false if l was not registered.
func (f *Fullscreen) RemoveListener(l FullscreenListener) bool {
	return f.listeners.Remove(l)
}

func (f *Fullscreen) clear() {
	f.listeners.Clear()
}
