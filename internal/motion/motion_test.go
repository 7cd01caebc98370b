package motion

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestFixedSignal(t *testing.T) {
	if Fixed(0.5).Scale() != 0.5 {
		t.Error("fixed signal should return its value")
	}
}

func TestFuncSignal(t *testing.T) {
	sig := Func(func() float64 { return 0.25 })
	if sig.Scale() != 0.25 {
		t.Error("func signal should call through")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{-1, 0}, {0, 0}, {0.5, 0.5}, {1, 1}, {3, 1},
	}
	for _, tt := range tests {
		if got := Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%f): expected %f, got %f", tt.in, tt.want, got)
		}
	}
}

func TestWatcherFiresOnZero(t *testing.T) {
	fired := make(chan struct{})
	w := NewWatcher(Fixed(0), time.Millisecond, 0, func() { close(fired) })
	w.Start()
	defer w.Stop()

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher never fired on a zero signal")
	}
}

func TestWatcherFiresOnce(t *testing.T) {
	var count atomic.Int32
	w := NewWatcher(Fixed(0), time.Millisecond, 0, func() { count.Add(1) })
	w.Start()

	time.Sleep(50 * time.Millisecond)
	if got := count.Load(); got != 1 {
		t.Errorf("expected exactly one fire, got %d", got)
	}
}

func TestWatcherDoesNotFireOnNonzero(t *testing.T) {
	var count atomic.Int32
	w := NewWatcher(Fixed(0.7), time.Millisecond, 0, func() { count.Add(1) })
	w.Start()
	defer w.Stop()

	time.Sleep(30 * time.Millisecond)
	if count.Load() != 0 {
		t.Error("watcher fired on a nonzero signal")
	}
}

func TestWatcherStopIdempotent(t *testing.T) {
	w := NewWatcher(Fixed(1), time.Millisecond, 0, func() {})
	w.Start()
	w.Stop()
	w.Stop() // must not panic
}

func TestWatcherEdgeTrigger(t *testing.T) {
	var scale atomic.Value
	scale.Store(1.0)
	sig := Func(func() float64 { return scale.Load().(float64) })

	fired := make(chan struct{})
	w := NewWatcher(sig, time.Millisecond, 0, func() { close(fired) })
	w.Start()
	defer w.Stop()

	time.Sleep(10 * time.Millisecond)
	select {
	case <-fired:
		t.Fatal("fired before the signal dropped")
	default:
	}

	scale.Store(0.0)
	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher missed the drop to zero")
	}
}
