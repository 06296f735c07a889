package player

import (
	"fmt"
	"sync/atomic"

	"github.com/go-drift/ytplayer/pkg/dispatch"
	"github.com/go-drift/ytplayer/pkg/errors"
	"github.com/go-drift/ytplayer/pkg/event"
	"github.com/go-drift/ytplayer/pkg/listener"
	"github.com/go-drift/ytplayer/pkg/netstate"
	"github.com/go-drift/ytplayer/pkg/options"
	"github.com/go-drift/ytplayer/pkg/surface"
)

// View hosts one embedded player and is the host-facing API.
//
// Like a UI toolkit view, a View belongs to one thread: its methods must be
// called on the dispatcher it was created with (the host's main thread).
// Use [View.Post] to get there from another goroutine. Raw signals from the
// surface and connectivity changes may arrive on any goroutine; the view
// posts them to the dispatcher itself. [View.State], [View.IsReady] and
// [View.IsFullscreen] may be called from any goroutine.
//
//	view := player.NewView(surf, loop, netstate.New())
//	loop.Post(func() {
//		view.WhenReady(func(p *player.Player) { p.LoadVideo("dQw4w9WgXcQ", 0) })
//		if err := view.Initialize(myListener, true, nil); err != nil {
//			log.Fatal(err)
//		}
//	})
type View struct {
	surface    surface.Surface
	dispatcher dispatch.Dispatcher
	monitor    netstate.Monitor

	player      *Player
	readiness   Readiness
	listeners   listener.Registry[Listener]
	resumer     *Resumer
	chrome      *Chrome
	fullscreen  Fullscreen
	eligibility Eligibility

	connected   bool
	pendingInit map[string]any // player vars, set while initialization is deferred
	initialized bool           // the surface accepted Initialize
	cancelNet   func() error
	customUI    bool
	released    atomic.Bool
}

// NewView creates a view over surf. A nil dispatcher runs tasks inline; a nil
// monitor always reports connected.
func NewView(surf surface.Surface, d dispatch.Dispatcher, monitor netstate.Monitor) *View {
	if d == nil {
		d = dispatch.Immediate{}
	}
	if monitor == nil {
		monitor = netstate.Always()
	}
	p := newPlayer(surf)
	v := &View{
		surface:     surf,
		dispatcher:  d,
		monitor:     monitor,
		player:      p,
		resumer:     NewResumer(),
		chrome:      newChrome(p),
		eligibility: NewEligibility(),
		connected:   true,
	}
	v.listeners.Add(v.chrome)
	v.fullscreen.AddListener(v.chrome)
	return v
}

// Player returns the control handle. Commands issued before the handle is
// ready are forwarded as-is; use WhenReady to wait for readiness.
func (v *View) Player() *Player {
	return v.player
}

// Post schedules task on the view's dispatcher.
func (v *View) Post(task func()) bool {
	return v.dispatcher.Post(task)
}

// State returns the readiness state of the handle.
func (v *View) State() ReadinessState {
	return v.readiness.State()
}

// IsReady reports whether the handle accepts commands.
func (v *View) IsReady() bool {
	return v.readiness.State() == Ready
}

// Initialize starts the player runtime. The listener, if not nil, is
// registered before any event is delivered. A nil opts uses
// [options.Default].
//
// With handleNetworkEvents, the view subscribes to its connectivity monitor:
// initialization waits until a network is available, and playback is resumed
// when connectivity returns. Without it, the runtime is created immediately
// and the host reports connectivity with NetworkAvailable and NetworkLost.
//
// Initialize fails with [ErrAlreadyInitialized] if called more than once; the
// first initialization is left intact. Invalid options fail without changing
// any state.
func (v *View) Initialize(l Listener, handleNetworkEvents bool, opts *options.Player) error {
	const op = "player.Initialize"
	if v.released.Load() {
		return v.usageError(op, ErrReleased)
	}

	vars := options.Default()
	if opts != nil {
		vars = *opts
	}
	if err := vars.Validate(); err != nil {
		return v.usageError(op, fmt.Errorf("invalid options: %w", err))
	}
	if err := v.readiness.Begin(); err != nil {
		return v.usageError(op, err)
	}

	if l != nil {
		v.listeners.Add(l)
	}
	v.pendingInit = vars.Vars()

	if !handleNetworkEvents {
		v.startInit()
		return nil
	}

	cancel, err := v.monitor.Subscribe(v.postConnectivity)
	if err != nil {
		errors.Report(&errors.BridgeError{
			Op:     op,
			Kind:   errors.KindEnvironment,
			Handle: v.player.id,
			Err:    fmt.Errorf("connectivity unavailable, assuming connected: %w", err),
		})
		v.connected = true
		v.startInit()
		return nil
	}
	v.cancelNet = cancel
	v.connected = v.monitor.Connected()
	if v.connected {
		v.startInit()
	}
	return nil
}

// InitializeWithWebUI initializes the player with the runtime's own web
// controls instead of the default chrome. The default chrome is detached and
// DefaultUI fails afterwards.
func (v *View) InitializeWithWebUI(l Listener, handleNetworkEvents bool) error {
	if v.readiness.State() != Uninitialized {
		return v.usageError("player.InitializeWithWebUI", ErrAlreadyInitialized)
	}
	opts := options.NewBuilder().Controls(1).Build()
	v.UseCustomUI()
	return v.Initialize(l, handleNetworkEvents, &opts)
}

// WhenReady calls cb with the handle once it is ready. If the handle is
// already ready, cb runs immediately. Each callback runs exactly once, in
// the order requested.
func (v *View) WhenReady(cb ReadyCallback) {
	v.readiness.WhenReady(v.player, cb)
}

// PendingReadyCallbacks returns the number of callbacks waiting for readiness.
func (v *View) PendingReadyCallbacks() int {
	return v.readiness.Pending()
}

// AddListener registers l. It returns false if l was already registered or
// the view has been released.
func (v *View) AddListener(l Listener) bool {
	if l == nil || v.released.Load() {
		return false
	}
	return v.listeners.Add(l)
}

// RemoveListener unregisters l. It returns false if l was not registered. A
// listener may remove itself from within a callback; it receives no further
// events.
func (v *View) RemoveListener(l Listener) bool {
	if l == nil {
		return false
	}
	return v.listeners.Remove(l)
}

// EnableBackgroundPlayback allows playback to continue while the host is in
// the background.
func (v *View) EnableBackgroundPlayback(enable bool) {
	v.eligibility.SetBackgroundAllowed(enable)
}

// Eligibility returns the current playback eligibility.
func (v *View) Eligibility() Eligibility {
	return v.eligibility
}

// OnResume records that the host came to the foreground. Playback is not
// resumed automatically; only a connectivity recovery resumes playback.
func (v *View) OnResume() {
	v.eligibility.SetHostVisible(true)
	v.resumer.SetCanLoad(true)
}

// OnStop records that the host went to the background. Playback is paused
// unless background playback is enabled.
func (v *View) OnStop() {
	v.eligibility.SetHostVisible(false)
	v.resumer.SetCanLoad(false)
	if v.resumer.Playing() && !v.eligibility.IsEligible() {
		v.resumer.MarkWantsResume()
		v.player.Pause()
	}
}

// NetworkAvailable reports that connectivity is available. On a transition
// from disconnected, a deferred initialization is started, or playback is
// resumed if the handle is ready.
func (v *View) NetworkAvailable() {
	v.setConnected(true)
}

// NetworkLost reports that connectivity was lost. Playback is left alone.
func (v *View) NetworkLost() {
	v.setConnected(false)
}

// UseCustomUI detaches the default chrome. The host draws its own controls
// and drives the player directly.
func (v *View) UseCustomUI() {
	if v.customUI {
		return
	}
	v.listeners.Remove(v.chrome)
	v.fullscreen.RemoveListener(v.chrome)
	v.customUI = true
}

// IsUsingCustomUI reports whether UseCustomUI was called.
func (v *View) IsUsingCustomUI() bool {
	return v.customUI
}

// DefaultUI returns the default chrome. It fails with [ErrCustomUI] once the
// view uses a custom UI.
func (v *View) DefaultUI() (*Chrome, error) {
	if v.customUI {
		return nil, v.usageError("player.DefaultUI", ErrCustomUI)
	}
	return v.chrome, nil
}

// EnterFullscreen switches the view to fullscreen.
func (v *View) EnterFullscreen() { v.fullscreen.Enter() }

// ExitFullscreen leaves fullscreen.
func (v *View) ExitFullscreen() { v.fullscreen.Exit() }

// ToggleFullscreen enters or exits fullscreen.
func (v *View) ToggleFullscreen() { v.fullscreen.Toggle() }

// IsFullscreen reports whether the view is fullscreen.
func (v *View) IsFullscreen() bool { return v.fullscreen.IsFullscreen() }

// AddFullscreenListener registers l. It returns false if already registered.
func (v *View) AddFullscreenListener(l FullscreenListener) bool {
	return v.fullscreen.AddListener(l)
}

// RemoveFullscreenListener unregisters l. It returns false if not registered.
func (v *View) RemoveFullscreenListener(l FullscreenListener) bool {
	return v.fullscreen.RemoveListener(l)
}

// Release tears the player down. Raw events arriving afterwards are
// discarded, commands on the handle are dropped, and pending ready callbacks
// never run. Release never fails and may be called more than once.
func (v *View) Release() {
	if !v.released.CompareAndSwap(false, true) {
		return
	}
	v.readiness.Destroy()
	v.player.destroy()
	v.pendingInit = nil

	if cancel := v.cancelNet; cancel != nil {
		v.cancelNet = nil
		func() {
			defer errors.Recover("player.Release")
			_ = cancel()
		}()
	}

	v.surface.Destroy()
	v.listeners.Clear()
	v.fullscreen.clear()
}

// onRaw is the surface sink. It runs on the surface's goroutine.
func (v *View) onRaw(category event.Category, payload string) {
	if v.readiness.Destroyed() {
		return
	}
	v.dispatcher.Post(func() {
		if v.readiness.Destroyed() {
			return
		}
		ev, ok := event.Decode(category, payload)
		if !ok {
			return
		}
		v.handle(ev)
	})
}

// handle runs on the dispatcher.
func (v *View) handle(ev event.Event) {
	deliver(v.resumer, v.player, ev)

	switch e := ev.(type) {
	case event.StateChange:
		// A video loaded just before the host left may start afterwards.
		if e.State == event.StatePlaying && !v.eligibility.IsEligible() {
			v.resumer.MarkWantsResume()
			v.player.Pause()
		}
	case event.Ready:
		v.readiness.MarkReady(v.player)
	}

	v.listeners.ForEach(func(l Listener) {
		defer errors.Recover("player.deliver")
		deliver(l, v.player, ev)
	})
}

func (v *View) postConnectivity(connected bool) {
	if v.released.Load() {
		return
	}
	v.dispatcher.Post(func() { v.setConnected(connected) })
}

func (v *View) setConnected(connected bool) {
	if v.released.Load() {
		return
	}
	was := v.connected
	v.connected = connected
	if was || !connected {
		return
	}
	if v.readiness.State() == Ready {
		v.resumer.Resume(v.player)
		return
	}
	v.startInit()
}

// startInit creates the runtime if initialization is pending. A failed
// attempt stays pending so the next connectivity recovery retries it.
func (v *View) startInit() {
	vars := v.pendingInit
	if vars == nil || v.initialized {
		return
	}
	v.pendingInit = nil
	if err := v.surface.Initialize(vars, v.onRaw); err != nil {
		v.pendingInit = vars
		errors.Report(&errors.BridgeError{
			Op:     "player.initialize",
			Kind:   errors.KindInit,
			Handle: v.player.id,
			Err:    err,
		})
		return
	}
	v.initialized = true
}

func (v *View) usageError(op string, err error) error {
	return &errors.BridgeError{
		Op:     op,
		Kind:   errors.KindUsage,
		Handle: v.player.id,
		Err:    err,
	}
}
