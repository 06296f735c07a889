// Package jsruntime hosts a headless player runtime in an embedded
// JavaScript VM.
//
// The runtime implements [surface.Surface] without a browser: player.js models
// the scripting side of an embedded web player and posts JSON frames back
// through a [bridge.Bridge]. The VM is not safe for concurrent use, so it is
// owned by a single [dispatch.Loop] goroutine and every call into it is
// posted there.
package jsruntime

import (
	"context"
	_ "embed"
	"fmt"
	"sync"
	"time"

	"github.com/dop251/goja"
	"github.com/samber/lo"

	"github.com/go-drift/ytplayer/pkg/bridge"
	"github.com/go-drift/ytplayer/pkg/dispatch"
	"github.com/go-drift/ytplayer/pkg/errors"
	"github.com/go-drift/ytplayer/pkg/surface"
)

//go:embed player.js
var playerJS string

var program = goja.MustCompile("player.js", playerJS, false)

// DefaultTickInterval is how often the playback clock advances.
const DefaultTickInterval = 250 * time.Millisecond

// DefaultDuration is the length, in seconds, of videos missing from the
// catalog.
const DefaultDuration = 300.0

// Catalog describes the media known to a headless runtime.
type Catalog struct {
	// Durations maps video ids to their length in seconds.
	Durations map[string]float64
	// Playlists maps playlist ids to their video ids.
	Playlists map[string][]string
	// DefaultDuration applies to videos missing from Durations.
	DefaultDuration float64
}

func (c Catalog) duration(id string) float64 {
	if d, ok := c.Durations[id]; ok && d > 0 {
		return d
	}
	if c.DefaultDuration > 0 {
		return c.DefaultDuration
	}
	return DefaultDuration
}

// Snapshot is the runtime's internal view of playback.
type Snapshot struct {
	State      string  `json:"state"`
	VideoID    string  `json:"videoId"`
	Time       float64 `json:"time"`
	Duration   float64 `json:"duration"`
	Index      int     `json:"index"`
	Volume     int     `json:"volume"`
	Muted      bool    `json:"muted"`
	Rate       float64 `json:"rate"`
	Loop       bool    `json:"loop"`
	Fullscreen bool    `json:"fullscreen"`
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithTickInterval sets how often the playback clock advances. Zero disables
// the clock; use [Runtime.Advance] to drive it by hand.
func WithTickInterval(d time.Duration) Option {
	return func(r *Runtime) { r.tickInterval = d }
}

// WithCatalog sets the media the runtime knows about.
func WithCatalog(c Catalog) Option {
	return func(r *Runtime) { r.catalog = c }
}

type runtimeState int

const (
	stateNew runtimeState = iota
	stateRunning
	stateDestroyed
)

// Runtime is a headless [surface.Surface] backed by a JavaScript VM.
type Runtime struct {
	catalog      Catalog
	tickInterval time.Duration

	mu     sync.Mutex
	state  runtimeState // guarded by mu
	loop   *dispatch.Loop
	bridge *bridge.Bridge
	cancel context.CancelFunc

	// Owned by the loop goroutine.
	vm  *goja.Runtime
	api *goja.Object
}

var _ surface.Surface = (*Runtime)(nil)

// New creates a runtime. Nothing runs until Initialize.
func New(opts ...Option) *Runtime {
	r := &Runtime{tickInterval: DefaultTickInterval}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Initialize implements surface.Surface. It starts the VM goroutine and
// creates the player with vars.
func (r *Runtime) Initialize(vars map[string]any, sink surface.Sink) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.state {
	case stateRunning:
		return fmt.Errorf("jsruntime: already initialized")
	case stateDestroyed:
		return surface.ErrDestroyed
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.loop = dispatch.NewLoop(ctx)
	r.bridge = bridge.New(sink)
	r.state = stateRunning

	vars = lo.Assign(map[string]any{}, vars)
	r.loop.Post(func() { r.boot(vars) })
	if r.tickInterval > 0 {
		go r.clock(ctx, r.tickInterval)
	}
	return nil
}

// Invoke implements surface.Surface. The command runs asynchronously on the
// VM goroutine; script failures are reported with [errors.KindSurface].
func (r *Runtime) Invoke(cmd surface.Command, args ...any) error {
	if !lo.Contains(surface.Commands, cmd) {
		return fmt.Errorf("%w: %s", surface.ErrUnknownCommand, cmd)
	}
	loop, err := r.running()
	if err != nil {
		return err
	}
	args = append([]any(nil), args...)
	if !loop.Post(func() { r.invoke(string(cmd), args) }) {
		return surface.ErrDestroyed
	}
	return nil
}

// Destroy implements surface.Surface. Queued work is dropped silently and no
// signals are delivered afterwards.
func (r *Runtime) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.state
	r.state = stateDestroyed
	if prev != stateRunning {
		return
	}
	r.bridge.Close()
	r.cancel()
	r.loop.Close()
}

// Done is closed once the VM goroutine has exited after Destroy. It is nil
// before Initialize.
func (r *Runtime) Done() <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loop == nil {
		return nil
	}
	return r.loop.Done()
}

// Advance moves the playback clock forward by d.
func (r *Runtime) Advance(d time.Duration) error {
	loop, err := r.running()
	if err != nil {
		return err
	}
	seconds := d.Seconds()
	loop.Post(func() { r.invoke("tick", []any{seconds}) })
	return nil
}

// Flush waits until all work queued before the call has run.
func (r *Runtime) Flush(ctx context.Context) error {
	loop, err := r.running()
	if err != nil {
		return err
	}
	done := make(chan struct{})
	if !loop.Post(func() { close(done) }) {
		return surface.ErrDestroyed
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns the runtime's playback state once queued work has run.
func (r *Runtime) Snapshot(ctx context.Context) (Snapshot, error) {
	loop, err := r.running()
	if err != nil {
		return Snapshot{}, err
	}

	type result struct {
		snap Snapshot
		err  error
	}
	ch := make(chan result, 1)
	ok := loop.Post(func() {
		var res result
		defer func() { ch <- res }()
		if r.api == nil {
			res.err = surface.ErrNotInitialized
			return
		}
		v, err := r.call("snapshot", nil)
		if err != nil {
			res.err = err
			return
		}
		res.err = r.vm.ExportTo(v, &res.snap)
	})
	if !ok {
		return Snapshot{}, surface.ErrDestroyed
	}
	select {
	case res := <-ch:
		return res.snap, res.err
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}

func (r *Runtime) running() (*dispatch.Loop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch r.state {
	case stateNew:
		return nil, surface.ErrNotInitialized
	case stateDestroyed:
		return nil, surface.ErrDestroyed
	}
	return r.loop, nil
}

// boot runs on the loop goroutine.
func (r *Runtime) boot(vars map[string]any) {
	vm := goja.New()
	vm.SetFieldNameMapper(goja.TagFieldNameMapper("json", true))

	host := vm.NewObject()
	mustSet(host, "send", func(frame string) {
		_ = r.bridge.HandleFrame([]byte(frame))
	})
	mustSet(host, "durationOf", r.catalog.duration)
	mustSet(host, "playlistOf", func(id string) goja.Value {
		ids, ok := r.catalog.Playlists[id]
		if !ok {
			return goja.Null()
		}
		return vm.NewArray(lo.ToAnySlice(ids)...)
	})
	mustSet(vm.GlobalObject(), "bridge", host)

	if _, err := vm.RunProgram(program); err != nil {
		errors.Report(&errors.BridgeError{
			Op:   "jsruntime.boot",
			Kind: errors.KindInit,
			Err:  err,
		})
		return
	}
	api := vm.Get("ytbridge")
	if api == nil || goja.IsUndefined(api) || goja.IsNull(api) {
		errors.Report(&errors.BridgeError{
			Op:   "jsruntime.boot",
			Kind: errors.KindInit,
			Err:  fmt.Errorf("player script did not export ytbridge"),
		})
		return
	}
	r.vm, r.api = vm, api.ToObject(vm)
	r.invoke("create", []any{vars})
}

// invoke runs on the loop goroutine.
func (r *Runtime) invoke(name string, args []any) {
	if r.api == nil {
		return
	}
	if _, err := r.call(name, args); err != nil {
		errors.Report(&errors.BridgeError{
			Op:    "jsruntime.invoke",
			Kind:  errors.KindSurface,
			Event: name,
			Err:   err,
		})
	}
}

func (r *Runtime) call(name string, args []any) (goja.Value, error) {
	fn, ok := goja.AssertFunction(r.api.Get(name))
	if !ok {
		return nil, fmt.Errorf("%w: %s", surface.ErrUnknownCommand, name)
	}
	values := make([]goja.Value, len(args))
	for i, arg := range args {
		values[i] = r.toValue(arg)
	}
	return fn(r.api, values...)
}

func (r *Runtime) toValue(arg any) goja.Value {
	switch v := arg.(type) {
	case []string:
		return r.vm.NewArray(lo.ToAnySlice(v)...)
	default:
		return r.vm.ToValue(v)
	}
}

// clock advances the playback clock by the elapsed wall time on each tick.
func (r *Runtime) clock(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			elapsed := now.Sub(last)
			last = now
			if err := r.Advance(elapsed); err != nil {
				return
			}
		}
	}
}

func mustSet(obj *goja.Object, name string, value any) {
	if err := obj.Set(name, value); err != nil {
		panic(fmt.Sprintf("jsruntime: set %s: %v", name, err))
	}
}
