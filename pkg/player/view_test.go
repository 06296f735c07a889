package player

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/ytplayer/pkg/dispatch"
	"github.com/go-drift/ytplayer/pkg/errors"
	"github.com/go-drift/ytplayer/pkg/event"
	"github.com/go-drift/ytplayer/pkg/netstate"
	"github.com/go-drift/ytplayer/pkg/options"
	"github.com/go-drift/ytplayer/pkg/surface"
)

func TestView_InitializeCreatesRuntime(t *testing.T) {
	v, rec := newTestView(t)
	assert.Equal(t, Uninitialized, v.State())

	require.NoError(t, v.Initialize(nil, false, nil))
	assert.Equal(t, Initializing, v.State())
	assert.Equal(t, 1, rec.Initialized())
	assert.Equal(t, 0, rec.Vars()["controls"])
	assert.Equal(t, 1, rec.Vars()["enablejsapi"])

	rec.Emit(event.CategoryReady, "")
	assert.Equal(t, Ready, v.State())
	assert.True(t, v.IsReady())
}

func TestView_InitializeTwice(t *testing.T) {
	v, rec := newTestView(t)
	first := &eventLog{}
	require.NoError(t, v.Initialize(first, false, nil))

	second := &eventLog{}
	err := v.Initialize(second, false, nil)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, ErrAlreadyInitialized))

	var bridgeErr *errors.BridgeError
	require.True(t, stderrors.As(err, &bridgeErr))
	assert.Equal(t, errors.KindUsage, bridgeErr.Kind)
	assert.Equal(t, v.Player().ID(), bridgeErr.Handle)

	// The first initialization is intact.
	assert.Equal(t, Initializing, v.State())
	assert.Equal(t, 1, rec.Initialized())
	rec.Emit(event.CategoryReady, "")
	assert.Equal(t, []string{"ready"}, first.events)
	assert.Empty(t, second.events)

	// Still an error once ready.
	assert.ErrorIs(t, v.Initialize(nil, false, nil), ErrAlreadyInitialized)
}

func TestView_InitializeRejectsInvalidOptions(t *testing.T) {
	v, rec := newTestView(t)
	bad := options.NewBuilder().Controls(3).Build()

	err := v.Initialize(nil, false, &bad)
	require.Error(t, err)
	assert.Equal(t, Uninitialized, v.State())
	assert.Zero(t, rec.Initialized())

	require.NoError(t, v.Initialize(nil, false, nil))
}

func TestView_WhenReadyOrder(t *testing.T) {
	v, rec := newTestView(t)
	require.NoError(t, v.Initialize(nil, false, nil))

	var order []string
	for _, name := range []string{"A", "B", "C"} {
		v.WhenReady(func(*Player) { order = append(order, name) })
	}
	v.AddListener(&eventLog{onReady: func(*Player) { order = append(order, "onReady") }})
	assert.Equal(t, 3, v.PendingReadyCallbacks())
	assert.Empty(t, order)

	rec.Emit(event.CategoryReady, "")
	assert.Equal(t, []string{"A", "B", "C", "onReady"}, order)
	assert.Zero(t, v.PendingReadyCallbacks())

	// After readiness, callbacks run immediately and are not queued.
	v.WhenReady(func(p *Player) {
		assert.Same(t, v.Player(), p)
		order = append(order, "D")
	})
	assert.Equal(t, []string{"A", "B", "C", "onReady", "D"}, order)
	assert.Zero(t, v.PendingReadyCallbacks())

	// A second ready signal does not rerun the callbacks.
	rec.Emit(event.CategoryReady, "")
	assert.Equal(t, []string{"A", "B", "C", "onReady", "D", "onReady"}, order)
}

func TestView_PanickingReadyCallbackDoesNotStopOthers(t *testing.T) {
	h := captureErrors(t)
	v, rec := newTestView(t)
	log := &eventLog{}
	require.NoError(t, v.Initialize(log, false, nil))

	var ran []string
	v.WhenReady(func(*Player) {
		ran = append(ran, "A")
		panic("callback failed")
	})
	v.WhenReady(func(*Player) { ran = append(ran, "B") })

	assert.NotPanics(t, func() { rec.Emit(event.CategoryReady, "") })
	assert.Equal(t, []string{"A", "B"}, ran)
	assert.Equal(t, []string{"ready"}, log.events)
	assert.Zero(t, v.PendingReadyCallbacks())
	require.Len(t, h.panicked(), 1)
	assert.Equal(t, "player.ready", h.panicked()[0].Op)
}

func TestView_WhenReadyBeforeInitialize(t *testing.T) {
	v, rec := newTestView(t)
	calls := 0
	v.WhenReady(func(*Player) { calls++ })
	assert.Equal(t, 1, v.PendingReadyCallbacks())

	require.NoError(t, v.Initialize(nil, false, nil))
	rec.Emit(event.CategoryReady, "")
	rec.Emit(event.CategoryReady, "")
	assert.Equal(t, 1, calls)
}

func TestView_DeliversTypedEvents(t *testing.T) {
	l := &eventLog{}
	_, rec := readyView(t, l)
	l.events = nil

	rec.Emit(event.CategoryStateChange, "playing")
	rec.Emit(event.CategoryQualityChange, "HD720")
	rec.Emit(event.CategoryRateChange, "1.5")
	rec.Emit(event.CategoryError, "100")
	rec.Emit(event.CategoryAPIChange, "")
	rec.Emit(event.CategoryCurrentTime, "12.5")
	rec.Emit(event.CategoryDuration, "300")
	rec.Emit(event.CategoryLoadedFraction, "0.25")
	rec.Emit(event.CategoryVideoID, "dQw4w9WgXcQ")
	rec.Emit(event.CategoryVideoURL, "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	rec.Emit(event.CategoryStateChange, "rewinding")
	rec.Emit(event.CategoryAPIReady, "")

	assert.Equal(t, []string{
		"state:PLAYING",
		"quality:HD720",
		"rate:1.5",
		"error:VIDEO_NOT_FOUND",
		"apiChange",
		"second:12.5",
		"duration:300",
		"fraction:0.25",
		"videoId:dQw4w9WgXcQ",
		"videoUrl:https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"state:UNKNOWN",
	}, l.events)
}

func TestView_MalformedTelemetry(t *testing.T) {
	l := &eventLog{}
	_, rec := readyView(t, l)
	l.events = nil

	rec.Emit(event.CategoryCurrentTime, "")
	rec.Emit(event.CategoryCurrentTime, "abc")
	rec.Emit(event.CategoryLoadedFraction, "")
	rec.Emit(event.CategoryLoadedFraction, "abc")
	assert.Empty(t, l.events)

	rec.Emit(event.CategoryDuration, "")
	rec.Emit(event.CategoryDuration, "abc")
	assert.Equal(t, []string{"duration:0", "duration:0"}, l.events)
}

func TestView_ListenerSetSemantics(t *testing.T) {
	v, rec := readyView(t, nil)
	l := &eventLog{}

	assert.True(t, v.AddListener(l))
	assert.False(t, v.AddListener(l))
	rec.Emit(event.CategoryVideoID, "x")
	assert.Equal(t, []string{"videoId:x"}, l.events)

	assert.True(t, v.RemoveListener(l))
	assert.False(t, v.RemoveListener(l))
	rec.Emit(event.CategoryVideoID, "y")
	assert.Equal(t, []string{"videoId:x"}, l.events)

	assert.False(t, v.AddListener(nil))
	assert.False(t, v.RemoveListener(nil))
}

func TestView_SelfUnregisterDuringDispatch(t *testing.T) {
	v, rec := readyView(t, nil)

	quitter := &eventLog{}
	quitter.onState = func(*Player, event.PlayerState) { v.RemoveListener(quitter) }
	others := []*eventLog{{}, {}, {}}

	v.AddListener(quitter)
	for _, l := range others {
		v.AddListener(l)
	}

	rec.Emit(event.CategoryStateChange, "PLAYING")
	rec.Emit(event.CategoryStateChange, "PAUSED")

	assert.Equal(t, []string{"state:PLAYING"}, quitter.events)
	for _, l := range others {
		assert.Equal(t, []string{"state:PLAYING", "state:PAUSED"}, l.events)
	}
}

func TestView_ListenerAddedDuringDispatchWaitsForNextPass(t *testing.T) {
	v, rec := readyView(t, nil)

	late := &eventLog{}
	adder := &eventLog{}
	adder.onState = func(*Player, event.PlayerState) { v.AddListener(late) }
	v.AddListener(adder)

	rec.Emit(event.CategoryStateChange, "BUFFERING")
	assert.Empty(t, late.events)

	rec.Emit(event.CategoryStateChange, "PLAYING")
	assert.Equal(t, []string{"state:PLAYING"}, late.events)
}

func TestView_PanickingListenerDoesNotStopOthers(t *testing.T) {
	h := captureErrors(t)
	v, rec := readyView(t, nil)

	bad := &eventLog{}
	bad.onState = func(*Player, event.PlayerState) { panic("listener bug") }
	good := &eventLog{}
	v.AddListener(bad)
	v.AddListener(good)

	rec.Emit(event.CategoryStateChange, "PAUSED")
	assert.Equal(t, []string{"state:PAUSED"}, good.events)
	assert.Len(t, h.panics, 1)
}

func TestView_BackgroundPauseOnPlaying(t *testing.T) {
	tests := []struct {
		name              string
		backgroundAllowed bool
		wantPause         bool
	}{
		{"background not allowed", false, true},
		{"background allowed", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, rec := readyView(t, nil)
			v.EnableBackgroundPlayback(tt.backgroundAllowed)
			v.OnStop()
			rec.Reset()

			rec.Emit(event.CategoryStateChange, "PLAYING")
			if tt.wantPause {
				assert.Equal(t, []surface.Command{surface.CommandPauseVideo}, rec.Commands())
			} else {
				assert.Empty(t, rec.Commands())
			}
		})
	}
}

func TestView_PlayingInBackgroundResumesWithLoad(t *testing.T) {
	v, rec := readyView(t, nil)
	rec.Emit(event.CategoryVideoID, "v1")
	rec.Emit(event.CategoryCurrentTime, "30")

	v.OnStop()
	rec.Emit(event.CategoryStateChange, "PLAYING")
	rec.Emit(event.CategoryStateChange, "PAUSED")
	require.Equal(t, []surface.Command{surface.CommandPauseVideo}, rec.Commands())

	v.OnResume()
	v.NetworkLost()
	rec.Reset()
	v.NetworkAvailable()
	assert.Equal(t, []surface.Call{
		{Command: surface.CommandLoadVideo, Args: []any{"v1", 30.0}},
	}, rec.Calls())
}

func TestView_NoPauseWhileVisible(t *testing.T) {
	_, rec := readyView(t, nil)
	rec.Emit(event.CategoryStateChange, "PLAYING")
	assert.Empty(t, rec.Commands())
}

func TestView_OnStopPausesPlayback(t *testing.T) {
	v, rec := readyView(t, nil)
	rec.Emit(event.CategoryStateChange, "PLAYING")

	v.OnStop()
	assert.Equal(t, []surface.Command{surface.CommandPauseVideo}, rec.Commands())
	assert.False(t, v.Eligibility().IsEligible())

	// Foreground alone does not resume.
	rec.Reset()
	v.OnResume()
	assert.Empty(t, rec.Commands())
	assert.True(t, v.Eligibility().IsEligible())
}

func TestView_OnStopWithBackgroundPlayback(t *testing.T) {
	v, rec := readyView(t, nil)
	v.EnableBackgroundPlayback(true)
	rec.Emit(event.CategoryStateChange, "PLAYING")

	v.OnStop()
	assert.Empty(t, rec.Commands())
	assert.True(t, v.Eligibility().IsEligible())
}

func TestView_OnStopWhenNotPlaying(t *testing.T) {
	v, rec := readyView(t, nil)
	rec.Emit(event.CategoryStateChange, "PAUSED")
	v.OnStop()
	assert.Empty(t, rec.Commands())
}

func TestView_ConnectivityResumeWhenReady(t *testing.T) {
	v, rec := readyView(t, nil)
	rec.Emit(event.CategoryVideoID, "dQw4w9WgXcQ")
	rec.Emit(event.CategoryCurrentTime, "42")
	rec.Emit(event.CategoryStateChange, "PLAYING")

	v.NetworkLost()
	assert.Empty(t, rec.Commands(), "losing the network does not pause")

	v.NetworkAvailable()
	require.Equal(t, []surface.Call{
		{Command: surface.CommandLoadVideo, Args: []any{"dQw4w9WgXcQ", 42.0}},
	}, rec.Calls())

	// Already connected: no transition, no command.
	rec.Reset()
	v.NetworkAvailable()
	assert.Empty(t, rec.Commands())
}

func TestView_ConnectivityDefersInitialization(t *testing.T) {
	rec := surface.NewRecorder()
	monitor := netstate.NewStatic(false)
	v := NewView(rec, dispatch.Immediate{}, monitor)
	t.Cleanup(v.Release)

	require.NoError(t, v.Initialize(nil, true, nil))
	assert.Equal(t, Initializing, v.State())
	assert.Zero(t, rec.Initialized(), "initialization waits for a network")

	monitor.Set(true)
	assert.Equal(t, 1, rec.Initialized())
	assert.Empty(t, rec.Commands(), "initialization proceeds instead of resume")

	// Flapping before ready does not initialize twice.
	monitor.Set(false)
	monitor.Set(true)
	assert.Equal(t, 1, rec.Initialized())
	assert.Empty(t, rec.Commands())

	rec.Emit(event.CategoryReady, "")
	monitor.Set(false)
	monitor.Set(true)
	assert.Equal(t, []surface.Command{surface.CommandPlayVideo}, rec.Commands())
}

func TestView_ConnectedMonitorInitializesImmediately(t *testing.T) {
	rec := surface.NewRecorder()
	monitor := netstate.NewStatic(true)
	v := NewView(rec, dispatch.Immediate{}, monitor)
	t.Cleanup(v.Release)

	require.NoError(t, v.Initialize(nil, true, nil))
	assert.Equal(t, 1, rec.Initialized())
	assert.Equal(t, 1, monitor.Subscribers())
}

type failingMonitor struct{}

func (failingMonitor) Connected() bool { return false }
func (failingMonitor) Subscribe(func(bool)) (func() error, error) {
	return nil, stderrors.New("no connectivity service")
}

func TestView_MissingConnectivityAssumesConnected(t *testing.T) {
	h := captureErrors(t)
	rec := surface.NewRecorder()
	v := NewView(rec, dispatch.Immediate{}, failingMonitor{})
	t.Cleanup(v.Release)

	require.NoError(t, v.Initialize(nil, true, nil))
	assert.Equal(t, 1, rec.Initialized())
	require.Len(t, h.errors(), 1)
	assert.Equal(t, errors.KindEnvironment, h.errors()[0].Kind)
}

func TestView_SurfaceInitFailureRetriesOnReconnect(t *testing.T) {
	h := captureErrors(t)
	rec := surface.NewRecorder()
	rec.InitErr = stderrors.New("page failed to load")
	v := NewView(rec, dispatch.Immediate{}, nil)
	t.Cleanup(v.Release)

	require.NoError(t, v.Initialize(nil, false, nil))
	require.Len(t, h.errors(), 1)
	assert.Equal(t, errors.KindInit, h.errors()[0].Kind)

	rec.InitErr = nil
	v.NetworkLost()
	v.NetworkAvailable()
	assert.Equal(t, 2, rec.Initialized())

	rec.Emit(event.CategoryReady, "")
	assert.True(t, v.IsReady())
}

func TestView_ReleaseDiscardsEvents(t *testing.T) {
	monitor := netstate.NewStatic(true)
	rec := surface.NewRecorder()
	v := NewView(rec, dispatch.Immediate{}, monitor)
	l := &eventLog{}
	require.NoError(t, v.Initialize(l, true, nil))

	var sink surface.Sink = v.onRaw
	pending := 0
	v.WhenReady(func(*Player) { pending++ })

	v.Release()
	v.Release()
	assert.True(t, rec.Destroyed())
	assert.Zero(t, monitor.Subscribers())

	sink(event.CategoryReady, "")
	sink(event.CategoryStateChange, "PLAYING")
	assert.Empty(t, l.events)
	assert.Zero(t, pending)

	v.Player().Play()
	assert.Empty(t, rec.Commands())
	assert.False(t, v.AddListener(&eventLog{}))
	assert.ErrorIs(t, v.Initialize(nil, false, nil), ErrReleased)
}

func TestView_ReleaseSwallowsUnsubscribeErrors(t *testing.T) {
	captureErrors(t)
	rec := surface.NewRecorder()
	v := NewView(rec, dispatch.Immediate{}, &unsubscribeFails{})
	require.NoError(t, v.Initialize(nil, true, nil))
	assert.NotPanics(t, v.Release)
	assert.True(t, rec.Destroyed())
}

type unsubscribeFails struct{}

func (*unsubscribeFails) Connected() bool { return true }
func (*unsubscribeFails) Subscribe(func(bool)) (func() error, error) {
	return func() error { panic("receiver already unregistered") }, nil
}

func TestView_QueuedEventsDroppedAfterRelease(t *testing.T) {
	loop := dispatch.NewManualLoop()
	rec := surface.NewRecorder()
	v := NewView(rec, loop, nil)
	l := &eventLog{}

	require.NoError(t, v.Initialize(l, false, nil))
	rec.Emit(event.CategoryReady, "")
	rec.Emit(event.CategoryStateChange, "PLAYING")
	assert.Equal(t, 2, loop.Pending())

	v.Release()
	loop.Close()
	loop.Run(t.Context())
	assert.Empty(t, l.events)
}

func TestView_EventsCrossGoroutines(t *testing.T) {
	loop := dispatch.NewLoop(t.Context())
	rec := surface.NewRecorder()
	v := NewView(rec, loop, nil)
	l := &eventLog{}

	initDone := make(chan error, 1)
	loop.Post(func() { initDone <- v.Initialize(l, false, nil) })
	require.NoError(t, <-initDone)

	done := make(chan struct{})
	go func() {
		defer close(done)
		rec.Emit(event.CategoryReady, "")
		for i := range 100 {
			rec.Emit(event.CategoryCurrentTime, string(rune('0'+i%10)))
		}
	}()
	<-done

	loop.Post(v.Release)
	loop.Close()
	<-loop.Done()

	require.Len(t, l.events, 101)
	assert.Equal(t, "ready", l.events[0])
	for i, e := range l.events[1:] {
		assert.Equal(t, "second:"+string(rune('0'+i%10)), e)
	}
}

func TestView_CustomUI(t *testing.T) {
	v, rec := newTestView(t)
	chrome, err := v.DefaultUI()
	require.NoError(t, err)
	require.NotNil(t, chrome)

	v.UseCustomUI()
	v.UseCustomUI()
	assert.True(t, v.IsUsingCustomUI())

	_, err = v.DefaultUI()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCustomUI)

	require.NoError(t, v.Initialize(nil, false, nil))
	rec.Emit(event.CategoryReady, "")
	rec.Emit(event.CategoryVideoID, "detached")
	assert.Empty(t, chrome.State().VideoID, "detached chrome receives no events")
}

func TestView_InitializeWithWebUI(t *testing.T) {
	v, rec := newTestView(t)
	require.NoError(t, v.InitializeWithWebUI(nil, false))
	assert.Equal(t, 1, rec.Vars()["controls"])
	_, err := v.DefaultUI()
	assert.ErrorIs(t, err, ErrCustomUI)

	assert.ErrorIs(t, v.InitializeWithWebUI(nil, false), ErrAlreadyInitialized)
}

func TestView_DefaultChromeFollowsPlayer(t *testing.T) {
	v, rec := readyView(t, nil)
	chrome, err := v.DefaultUI()
	require.NoError(t, err)

	rec.Emit(event.CategoryVideoID, "dQw4w9WgXcQ")
	rec.Emit(event.CategoryStateChange, "PLAYING")
	rec.Emit(event.CategoryCurrentTime, "61.8")
	v.EnterFullscreen()

	state := chrome.State()
	assert.True(t, state.Playing)
	assert.True(t, state.Fullscreen)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ#t=61", chrome.WatchURL())

	chrome.PlayPause()
	assert.Equal(t, []surface.Command{surface.CommandPauseVideo}, rec.Commands())
}

func TestView_Fullscreen(t *testing.T) {
	v, _ := newTestView(t)
	var log []string
	l := &FullscreenFuncs{
		Enter: func() { log = append(log, "enter") },
		Exit:  func() { log = append(log, "exit") },
	}
	assert.True(t, v.AddFullscreenListener(l))
	assert.False(t, v.AddFullscreenListener(l))

	v.EnterFullscreen()
	v.EnterFullscreen()
	assert.True(t, v.IsFullscreen())
	v.ToggleFullscreen()
	assert.False(t, v.IsFullscreen())
	v.ExitFullscreen()
	v.ToggleFullscreen()

	assert.True(t, v.RemoveFullscreenListener(l))
	v.ToggleFullscreen()
	assert.Equal(t, []string{"enter", "exit", "enter"}, log)
}

func TestView_HandleLifecycle(t *testing.T) {
	v, rec := readyView(t, nil)
	rec.Emit(event.CategoryStateChange, "PLAYING")

	v.HandleLifecycle(LifecyclePaused)
	assert.False(t, v.Eligibility().HostVisible())
	assert.Equal(t, []surface.Command{surface.CommandPauseVideo}, rec.Commands())

	v.HandleLifecycle(LifecycleResumed)
	assert.True(t, v.Eligibility().HostVisible())

	v.HandleLifecycle(LifecycleInactive)
	assert.False(t, v.Eligibility().HostVisible())

	v.HandleLifecycle(LifecycleDetached)
	assert.True(t, rec.Destroyed())
}

func TestParseLifecycleState(t *testing.T) {
	state, ok := ParseLifecycleState(" Paused ")
	assert.True(t, ok)
	assert.Equal(t, LifecyclePaused, state)

	_, ok = ParseLifecycleState("hidden")
	assert.False(t, ok)
}
