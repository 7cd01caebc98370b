package engine

import (
	"sync"
	"time"
)

// FrameInterval is the delay between scheduled frame callbacks.
const FrameInterval = time.Second / 60

// Scheduler delivers frame callbacks. The engine guarantees it holds
// at most one outstanding callback id at any time; Cancel releases it.
type Scheduler interface {
	Schedule(fn func(now time.Time)) (id int)
	Cancel(id int)
}

// TimerScheduler schedules callbacks on wall-clock timers. Callbacks
// run on timer goroutines; the engine serializes them internally.
type TimerScheduler struct {
	mu     sync.Mutex
	nextID int
	timers map[int]*time.Timer
}

func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{timers: make(map[int]*time.Timer)}
}

func (s *TimerScheduler) Schedule(fn func(now time.Time)) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.timers[id] = time.AfterFunc(FrameInterval, func() {
		s.mu.Lock()
		delete(s.timers, id)
		s.mu.Unlock()
		fn(time.Now())
	})
	return id
}

func (s *TimerScheduler) Cancel(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
}

// ManualScheduler holds the pending callback until Fire is called.
// The TUI and headless runners use it to drive frames from their own
// loops; tests use it for deterministic stepping.
type ManualScheduler struct {
	mu      sync.Mutex
	nextID  int
	pending map[int]func(now time.Time)
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{pending: make(map[int]func(now time.Time))}
}

func (s *ManualScheduler) Schedule(fn func(now time.Time)) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.pending[s.nextID] = fn
	return s.nextID
}

func (s *ManualScheduler) Cancel(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, id)
}

// Pending reports the number of outstanding callbacks.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Fire runs and releases every pending callback (the engine keeps at
// most one). It returns the number fired.
func (s *ManualScheduler) Fire(now time.Time) int {
	s.mu.Lock()
	fns := make([]func(time.Time), 0, len(s.pending))
	for id, fn := range s.pending {
		fns = append(fns, fn)
		delete(s.pending, id)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(now)
	}
	return len(fns)
}
