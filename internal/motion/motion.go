// Package motion models the external reduced-motion preference: a
// scale in [0,1] the field multiplies into every displacement, and a
// polling watcher for the edge where the scale drops to exactly zero.
package motion

import (
	"math/rand"
	"sync"
	"time"
)

// Signal exposes the current motion scale. 0 means fully static, 1
// means full motion. Implementations must be safe for concurrent use.
type Signal interface {
	Scale() float64
}

// Fixed is a Signal pinned to one value.
type Fixed float64

func (f Fixed) Scale() float64 { return float64(f) }

// Func adapts a plain function to a Signal.
type Func func() float64

func (fn Func) Scale() float64 { return fn() }

// Clamp bounds a raw scale reading to [0,1]; out-of-range readings
// from an external capability are treated as saturated, not errors.
func Clamp(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

// Watcher samples a Signal on a fixed interval (plus optional uniform
// jitter) and fires a callback once when it observes a scale of
// exactly zero. It then stops itself; a later nonzero reading never
// un-fires it.
type Watcher struct {
	signal   Signal
	interval time.Duration
	jitter   time.Duration
	onZero   func()

	mu      sync.Mutex
	stopCh  chan struct{}
	running bool
}

func NewWatcher(sig Signal, interval, jitter time.Duration, onZero func()) *Watcher {
	if interval <= 0 {
		interval = time.Second
	}
	return &Watcher{
		signal:   sig,
		interval: interval,
		jitter:   jitter,
		onZero:   onZero,
	}
}

// Start launches the poll loop. Re-entrant calls while running are
// no-ops.
func (w *Watcher) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return
	}
	w.running = true
	w.stopCh = make(chan struct{})

	go w.loop(w.stopCh)
}

func (w *Watcher) loop(stop chan struct{}) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for {
		d := w.interval
		if w.jitter > 0 {
			d += time.Duration(rng.Int63n(int64(w.jitter)))
		}
		timer := time.NewTimer(d)
		select {
		case <-stop:
			timer.Stop()
			return
		case <-timer.C:
		}

		if w.signal.Scale() == 0 {
			w.onZero()
			w.mu.Lock()
			w.running = false
			w.mu.Unlock()
			return
		}
	}
}

// Stop halts the poll loop. Safe to call repeatedly and after the
// watcher has fired.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	w.running = false
	close(w.stopCh)
}
