//go:build linux

package netstate

import (
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"

	"github.com/go-drift/ytplayer/pkg/errors"
)

const (
	nmDest      = "org.freedesktop.NetworkManager"
	nmPath      = "/org/freedesktop/NetworkManager"
	nmInterface = "org.freedesktop.NetworkManager"
	nmSignal    = nmInterface + ".StateChanged"
)

// dbusMonitor follows NetworkManager's global state over the system bus.
type dbusMonitor struct {
	conn    *dbus.Conn
	signals chan *dbus.Signal
	done    chan struct{}
	once    sync.Once

	mu        sync.Mutex
	connected bool
	subs      map[int]func(bool)
	nextID    int
}

// New returns a Monitor backed by NetworkManager. If the system bus or
// NetworkManager is unavailable, the failure is reported and a monitor that
// always reports connected is returned instead.
func New() Monitor {
	m, err := newDBusMonitor()
	if err != nil {
		errors.Report(&errors.BridgeError{
			Op:   "netstate.New",
			Kind: errors.KindEnvironment,
			Err:  fmt.Errorf("connectivity unavailable, assuming connected: %w", err),
		})
		return Always()
	}
	return m
}

func newDBusMonitor() (*dbusMonitor, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, err
	}

	v, err := conn.Object(nmDest, nmPath).GetProperty(nmInterface + ".State")
	if err != nil {
		conn.Close()
		return nil, err
	}
	state, ok := v.Value().(uint32)
	if !ok {
		conn.Close()
		return nil, fmt.Errorf("unexpected NetworkManager state type %T", v.Value())
	}

	if err := conn.AddMatchSignal(
		dbus.WithMatchObjectPath(nmPath),
		dbus.WithMatchInterface(nmInterface),
		dbus.WithMatchMember("StateChanged"),
	); err != nil {
		conn.Close()
		return nil, err
	}

	m := &dbusMonitor{
		conn:      conn,
		signals:   make(chan *dbus.Signal, 16),
		done:      make(chan struct{}),
		connected: nmConnected(state),
		subs:      make(map[int]func(bool)),
	}
	conn.Signal(m.signals)
	go m.watch()
	return m, nil
}

// Connected implements Monitor.
func (m *dbusMonitor) Connected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected
}

// Subscribe implements Monitor.
func (m *dbusMonitor) Subscribe(fn func(bool)) (func() error, error) {
	select {
	case <-m.done:
		return nil, ErrClosed
	default:
	}

	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() error {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
		return nil
	}, nil
}

// Close stops watching and releases the bus connection.
func (m *dbusMonitor) Close() error {
	var err error
	m.once.Do(func() {
		close(m.done)
		m.conn.RemoveSignal(m.signals)
		err = m.conn.Close()
	})
	return err
}

func (m *dbusMonitor) watch() {
	defer errors.Recover("netstate.watch")
	for {
		select {
		case <-m.done:
			return
		case sig, ok := <-m.signals:
			if !ok {
				return
			}
			if sig.Name != nmSignal || len(sig.Body) == 0 {
				continue
			}
			state, ok := sig.Body[0].(uint32)
			if !ok {
				continue
			}
			m.update(nmConnected(state))
		}
	}
}

func (m *dbusMonitor) update(connected bool) {
	m.mu.Lock()
	if m.connected == connected {
		m.mu.Unlock()
		return
	}
	m.connected = connected
	subs := make([]func(bool), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	for _, fn := range subs {
		fn(connected)
	}
}
