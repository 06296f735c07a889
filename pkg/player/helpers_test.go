package player

import (
	"fmt"
	"sync"
	"testing"

	"github.com/go-drift/ytplayer/pkg/dispatch"
	"github.com/go-drift/ytplayer/pkg/errors"
	"github.com/go-drift/ytplayer/pkg/event"
	"github.com/go-drift/ytplayer/pkg/netstate"
	"github.com/go-drift/ytplayer/pkg/surface"
)

// newTestView creates a view over a recording surface with inline dispatch
// and a monitor that is always connected.
func newTestView(t *testing.T) (*View, *surface.Recorder) {
	t.Helper()
	rec := surface.NewRecorder()
	v := NewView(rec, dispatch.Immediate{}, netstate.Always())
	t.Cleanup(v.Release)
	return v, rec
}

// readyView returns an initialized view that has received the ready signal,
// with recorded commands cleared.
func readyView(t *testing.T, l Listener) (*View, *surface.Recorder) {
	t.Helper()
	v, rec := newTestView(t)
	if err := v.Initialize(l, false, nil); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	rec.Emit(event.CategoryReady, "")
	if !v.IsReady() {
		t.Fatal("expected view to be ready")
	}
	rec.Reset()
	return v, rec
}

// eventLog records every callback as a short string.
type eventLog struct {
	BaseListener
	events  []string
	onState func(p *Player, state event.PlayerState)
	onReady func(p *Player)
}

func (l *eventLog) add(format string, args ...any) {
	l.events = append(l.events, fmt.Sprintf(format, args...))
}

func (l *eventLog) OnReady(p *Player) {
	l.add("ready")
	if l.onReady != nil {
		l.onReady(p)
	}
}

func (l *eventLog) OnStateChange(p *Player, s event.PlayerState) {
	l.add("state:%s", s)
	if l.onState != nil {
		l.onState(p, s)
	}
}

func (l *eventLog) OnPlaybackQualityChange(_ *Player, q event.PlaybackQuality) {
	l.add("quality:%s", q)
}
func (l *eventLog) OnPlaybackRateChange(_ *Player, rate string) { l.add("rate:%s", rate) }
func (l *eventLog) OnError(_ *Player, err event.PlayerError)   { l.add("error:%s", err) }
func (l *eventLog) OnApiChange(*Player)                         { l.add("apiChange") }
func (l *eventLog) OnCurrentSecond(_ *Player, s float64)        { l.add("second:%v", s) }
func (l *eventLog) OnVideoDuration(_ *Player, d float64)        { l.add("duration:%v", d) }
func (l *eventLog) OnVideoLoadedFraction(_ *Player, f float64)  { l.add("fraction:%v", f) }
func (l *eventLog) OnVideoId(_ *Player, id string)              { l.add("videoId:%s", id) }
func (l *eventLog) OnVideoUrl(_ *Player, u string)              { l.add("videoUrl:%s", u) }

// captureHandler records reported errors.
type captureHandler struct {
	mu     sync.Mutex
	errs   []*errors.BridgeError
	panics []*errors.PanicError
}

func (h *captureHandler) HandleError(err *errors.BridgeError) {
	h.mu.Lock()
	h.errs = append(h.errs, err)
	h.mu.Unlock()
}

func (h *captureHandler) HandlePanic(err *errors.PanicError) {
	h.mu.Lock()
	h.panics = append(h.panics, err)
	h.mu.Unlock()
}

func (h *captureHandler) errors() []*errors.BridgeError {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*errors.BridgeError(nil), h.errs...)
}

func (h *captureHandler) panicked() []*errors.PanicError {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*errors.PanicError(nil), h.panics...)
}

func captureErrors(t *testing.T) *captureHandler {
	t.Helper()
	h := &captureHandler{}
	errors.SetHandler(h)
	t.Cleanup(func() { errors.SetHandler(nil) })
	return h
}
