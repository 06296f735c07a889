// Package dispatch serializes work onto a single logical thread.
//
// Raw player events arrive on whatever goroutine the embedding surface uses.
// Every listener callback and every state-machine transition is posted to a
// [Dispatcher] so that listeners never run concurrently or reentrantly.
package dispatch

import (
	"context"
	"sync"

	"github.com/go-drift/ytplayer/pkg/errors"
)

// Dispatcher schedules tasks to run one at a time, in the order posted.
type Dispatcher interface {
	// Post schedules task and returns immediately. It returns false if the
	// task was not accepted (nil task, or the dispatcher is closed).
	Post(task func()) bool
}

// Func adapts a host-provided scheduling function, such as a UI toolkit's
// "run on main thread" primitive, to a Dispatcher. The function must run
// callbacks serially and in order.
type Func func(callback func())

// Post implements Dispatcher.
func (f Func) Post(task func()) bool {
	if f == nil || task == nil {
		return false
	}
	f(task)
	return true
}

// Immediate runs each task inline on the posting goroutine. It is intended
// for tests and for hosts that already deliver raw events on their main thread.
type Immediate struct{}

// Post implements Dispatcher.
func (Immediate) Post(task func()) (accepted bool) {
	if task == nil {
		return false
	}
	accepted = true
	defer errors.Recover("dispatch.Immediate")
	task()
	return accepted
}

// Loop is a Dispatcher backed by a single consumer goroutine and an
// unbounded FIFO queue. Producers never block.
//
// Create with [NewLoop] to have the loop own its goroutine, or with
// [NewManualLoop] and call [Loop.Run] from the goroutine that should act as
// the main thread.
type Loop struct {
	mu      sync.Mutex
	queue   []func() // guarded by mu
	closed  bool     // guarded by mu
	wake    chan struct{}
	done    chan struct{}
	started sync.Once
}

// NewManualLoop creates a loop that runs nothing until Run is called.
func NewManualLoop() *Loop {
	return &Loop{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// NewLoop creates a loop and starts its consumer goroutine. The loop stops
// when ctx is canceled or Close is called.
func NewLoop(ctx context.Context) *Loop {
	l := NewManualLoop()
	go l.Run(ctx)
	return l
}

// Post implements Dispatcher.
func (l *Loop) Post(task func()) bool {
	if task == nil {
		return false
	}
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, task)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Run consumes tasks on the calling goroutine until ctx is canceled or the
// loop is closed and drained. Run may be called at most once; later calls
// return immediately.
func (l *Loop) Run(ctx context.Context) {
	first := false
	l.started.Do(func() { first = true })
	if !first {
		return
	}
	defer close(l.done)

	for {
		task, ok, closed := l.next()
		if ok {
			l.run(task)
			continue
		}
		if closed {
			return
		}
		select {
		case <-ctx.Done():
			l.Close()
		case <-l.wake:
		}
	}
}

// Close stops accepting tasks. Tasks already queued still run. Close returns
// without waiting; use Done to wait for the consumer to finish.
func (l *Loop) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Done is closed once Run has returned.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Pending returns the number of queued tasks.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

func (l *Loop) next() (task func(), ok, closed bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		l.queue = nil
		return nil, false, l.closed
	}
	task = l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return task, true, false
}

// run executes one task, containing a panic so a misbehaving listener
// cannot stop the loop.
func (l *Loop) run(task func()) {
	defer errors.Recover("dispatch.Loop")
	task()
}
