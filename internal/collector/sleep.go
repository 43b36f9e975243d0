package collector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/godbus/dbus/v5"
)

const (
	logindDest      = "org.freedesktop.login1"
	logindPath      = dbus.ObjectPath("/org/freedesktop/login1")
	logindManager   = "org.freedesktop.login1.Manager"
	prepareForSleep = logindManager + ".PrepareForSleep"
)

// SleepTransition is the direction of a logind PrepareForSleep signal.
type SleepTransition int

const (
	TransitionSuspend SleepTransition = iota
	TransitionResume
)

// Event returns the log event label for the transition.
func (t SleepTransition) Event() string {
	if t == TransitionSuspend {
		return EventSuspend
	}
	return EventResume
}

func (t SleepTransition) String() string {
	return t.Event()
}

// SleepMonitor delivers systemd-logind PrepareForSleep signals one at a time.
// It holds a delay inhibitor lock so a sample can be written before the
// system actually suspends; Release lets the suspend proceed.
type SleepMonitor struct {
	conn    *dbus.Conn
	signals chan *dbus.Signal
	lock    *os.File
	log     *slog.Logger
}

// NewSleepMonitor connects to the system bus, subscribes to PrepareForSleep
// and takes the initial inhibitor lock.
func NewSleepMonitor(logger *slog.Logger) (*SleepMonitor, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, fmt.Errorf("connect system bus: %w", err)
	}

	err = conn.AddMatchSignal(
		dbus.WithMatchInterface(logindManager),
		dbus.WithMatchMember("PrepareForSleep"),
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("add match: %w", err)
	}

	m := &SleepMonitor{
		conn:    conn,
		signals: make(chan *dbus.Signal, 16),
		log:     logger,
	}
	conn.Signal(m.signals)

	if err := m.Inhibit(); err != nil {
		m.Close()
		return nil, err
	}
	return m, nil
}

// Next blocks until the next sleep transition or until ctx is done.
func (m *SleepMonitor) Next(ctx context.Context) (SleepTransition, error) {
	for {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case sig, ok := <-m.signals:
			if !ok {
				return 0, errors.New("system bus connection closed")
			}
			if t, ok := transitionFromSignal(sig); ok {
				return t, nil
			}
		}
	}
}

// Inhibit takes a logind delay lock on sleep. It is a no-op while a lock is held.
func (m *SleepMonitor) Inhibit() error {
	if m.lock != nil {
		return nil
	}
	var fd dbus.UnixFD
	err := m.conn.Object(logindDest, logindPath).Call(
		logindManager+".Inhibit", 0,
		"sleep", "batterylog", "Recording battery state before sleep", "delay",
	).Store(&fd)
	if err != nil {
		return fmt.Errorf("take inhibitor lock: %w", err)
	}
	m.lock = os.NewFile(uintptr(fd), "logind-inhibit")
	m.log.Debug("inhibitor lock taken")
	return nil
}

// Release drops the inhibitor lock, allowing a pending suspend to continue.
func (m *SleepMonitor) Release() {
	if m.lock == nil {
		return
	}
	if err := m.lock.Close(); err != nil {
		m.log.Warn("close inhibitor lock", "err", err)
	}
	m.lock = nil
	m.log.Debug("inhibitor lock released")
}

// Close releases the lock and the bus connection.
func (m *SleepMonitor) Close() error {
	m.Release()
	m.conn.RemoveSignal(m.signals)
	return m.conn.Close()
}

func transitionFromSignal(sig *dbus.Signal) (SleepTransition, bool) {
	if sig == nil || sig.Name != prepareForSleep || len(sig.Body) < 1 {
		return 0, false
	}
	active, ok := sig.Body[0].(bool)
	if !ok {
		return 0, false
	}
	if active {
		return TransitionSuspend, true
	}
	return TransitionResume, true
}
