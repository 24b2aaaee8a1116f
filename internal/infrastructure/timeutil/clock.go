// Package timeutil provides time-related utilities for testability and convenience.
package timeutil

import (
	"sort"
	"sync"
	"time"
)

// Clock provides an abstraction over time.Now() and time.AfterFunc() for testability.
// Use RealClock in production and MockClock in tests.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// AfterFunc waits for the duration to elapse and then calls f.
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a handle to a pending AfterFunc call.
type Timer interface {
	// Stop prevents the timer from firing.
	// It returns false if the timer has already fired or been stopped.
	Stop() bool
}

// RealClock uses the actual system time.
type RealClock struct{}

// NewRealClock creates a new RealClock instance.
func NewRealClock() *RealClock {
	return &RealClock{}
}

// Now returns the current system time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// AfterFunc schedules f on its own goroutine via time.AfterFunc.
func (RealClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// MockClock is a manually driven clock for testing.
// Timers only fire from Advance/Set, on the caller's goroutine.
type MockClock struct {
	mu      sync.Mutex
	now     time.Time
	seq     int
	pending []*mockTimer
}

type mockTimer struct {
	clock *MockClock
	at    time.Time
	seq   int
	fn    func()
	done  bool
}

// NewMockClock creates a mock clock with the given fixed time.
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{now: t}
}

// NewMockClockFromString creates a mock clock from an RFC3339 time string.
// Panics if the time string is invalid (for use in tests only).
func NewMockClockFromString(timeStr string) *MockClock {
	t, err := time.Parse(time.RFC3339, timeStr)
	if err != nil {
		panic("invalid time string: " + err.Error())
	}
	return NewMockClock(t)
}

// Now returns the mock time.
func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// AfterFunc registers f to run once the mock time reaches Now()+d.
func (m *MockClock) AfterFunc(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()

	if d < 0 {
		d = 0
	}
	m.seq++
	t := &mockTimer{clock: m, at: m.now.Add(d), seq: m.seq, fn: f}
	m.pending = append(m.pending, t)
	return t
}

// Stop implements Timer.
func (t *mockTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if t.done {
		return false
	}
	t.done = true
	t.clock.removeLocked(t)
	return true
}

// Set moves the mock clock to a specific time, firing every timer that became due.
func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
	m.fireDue()
}

// Advance moves the mock clock forward by the given duration,
// firing due timers in deadline order.
func (m *MockClock) Advance(d time.Duration) {
	m.Set(m.Now().Add(d))
}

// AdvanceMillis moves the mock clock forward by the given number of milliseconds.
func (m *MockClock) AdvanceMillis(ms int) {
	m.Advance(time.Duration(ms) * time.Millisecond)
}

// PendingTimers returns the number of timers that have not fired or been stopped.
func (m *MockClock) PendingTimers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// fireDue runs due timers one at a time without holding the lock,
// so callbacks may schedule or stop other timers.
func (m *MockClock) fireDue() {
	for {
		m.mu.Lock()
		sort.SliceStable(m.pending, func(i, j int) bool {
			if m.pending[i].at.Equal(m.pending[j].at) {
				return m.pending[i].seq < m.pending[j].seq
			}
			return m.pending[i].at.Before(m.pending[j].at)
		})
		if len(m.pending) == 0 || m.pending[0].at.After(m.now) {
			m.mu.Unlock()
			return
		}
		t := m.pending[0]
		t.done = true
		m.pending = m.pending[1:]
		m.mu.Unlock()

		t.fn()
	}
}

func (m *MockClock) removeLocked(t *mockTimer) {
	for i, p := range m.pending {
		if p == t {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			return
		}
	}
}

// Ensure interfaces are implemented.
var (
	_ Clock = (*RealClock)(nil)
	_ Clock = (*MockClock)(nil)
	_ Timer = (*time.Timer)(nil)
	_ Timer = (*mockTimer)(nil)
)
