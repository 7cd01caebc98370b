// Package engine owns the animation lifecycle: a
// Stopped/Running/Destroyed state machine wrapping the particle field,
// its drawing surface, the frame scheduler, resize debouncing, and the
// visibility and motion-preference wiring.
package engine

import (
	"sync"
	"time"

	"github.com/san-kum/driftfield/internal/config"
	"github.com/san-kum/driftfield/internal/field"
	"github.com/san-kum/driftfield/internal/graph"
	"github.com/san-kum/driftfield/internal/motion"
	"github.com/san-kum/driftfield/internal/surface"
)

type State int

const (
	StateStopped State = iota
	StateRunning
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateRunning:
		return "running"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Frame is the per-tick report handed to observers.
type Frame struct {
	Delta     float64
	Scale     float64
	Particles int
	Edges     []graph.Edge
	Time      time.Time
}

// Observer receives one callback per completed frame.
type Observer interface {
	OnFrame(f Frame)
}

// SurfaceFactory builds the drawing surface for given dimensions in
// drawing units. Returning nil means the surface is unavailable.
type SurfaceFactory func(width, height float64) surface.Surface

// Options carries the engine's collaborators. Zero values select
// defaults: full motion, wall-clock scheduling, a Braille surface.
type Options struct {
	Signal     motion.Signal
	Scheduler  Scheduler
	NewSurface SurfaceFactory
	Logf       func(format string, args ...any)
}

// Engine is the lifecycle controller and external control surface.
// All methods are safe for concurrent use; frame work is serialized on
// the engine mutex so a tick never runs against itself.
type Engine struct {
	mu sync.Mutex

	state     State
	gen       uint64
	cfg       config.Config
	container surface.Container
	surf      surface.Surface
	field     *field.Field

	signal     motion.Signal
	sched      Scheduler
	newSurface SurfaceFactory
	logf       func(string, ...any)

	frameID     int
	lastFrame   time.Time
	watcher     *motion.Watcher
	resizeTimer *time.Timer

	observers []Observer
}

// New builds a stopped engine mounted in the container. It declines
// to initialize when the container is missing, the surface cannot be
// created, or the motion scale is already zero; all such errors leave
// the container untouched.
func New(container surface.Container, cfg config.Config, opts Options) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if container == nil {
		return nil, ErrNoContainer
	}

	e := &Engine{
		cfg:        cfg,
		container:  container,
		signal:     opts.Signal,
		sched:      opts.Scheduler,
		newSurface: opts.NewSurface,
		logf:       opts.Logf,
	}
	if e.signal == nil {
		e.signal = motion.Fixed(1)
	}
	if e.sched == nil {
		e.sched = NewTimerScheduler()
	}
	if e.newSurface == nil {
		e.newSurface = func(w, h float64) surface.Surface {
			return surface.NewBraille(int(w)/2+1, int(h)/4+1)
		}
	}
	if e.logf == nil {
		e.logf = func(string, ...any) {}
	}

	if motion.Clamp(e.signal.Scale()) == 0 {
		return nil, ErrMotionDisabled
	}

	if err := e.initialize(); err != nil {
		return nil, err
	}
	return e, nil
}

// initialize measures the container, mounts a fresh surface scaled by
// the pixel ratio, and repopulates the field. Caller holds no lock or
// the engine lock; it touches no lifecycle state.
func (e *Engine) initialize() error {
	w, h := e.container.Bounds()
	if w <= 0 || h <= 0 {
		return ErrSurfaceUnavailable
	}

	dw := w * e.cfg.PixelRatio
	dh := h * e.cfg.PixelRatio

	s := e.newSurface(dw, dh)
	if s == nil {
		return ErrSurfaceUnavailable
	}
	if err := e.container.Attach(s); err != nil {
		return ErrSurfaceUnavailable
	}

	e.surf = s
	sw, sh := s.Size()
	e.field = field.New(e.cfg, sw, sh)
	e.logf("driftfield: initialized %d particles\n", e.field.Count())
	return nil
}

// teardownLocked unmounts the surface and drops the particles.
func (e *Engine) teardownLocked() {
	if e.surf != nil {
		e.container.Detach(e.surf)
		e.surf = nil
	}
	if e.field != nil {
		e.field.Clear()
	}
}

// AddObserver registers a per-frame observer.
func (e *Engine) AddObserver(o Observer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observers = append(e.observers, o)
}

// Start moves Stopped -> Running: resets the frame clock, schedules
// the first tick, and begins polling the motion signal. A no-op when
// already running or destroyed.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateStopped || e.surf == nil {
		return
	}
	e.state = StateRunning
	e.gen++
	e.lastFrame = time.Now()
	e.scheduleLocked()

	if e.watcher == nil {
		e.watcher = motion.NewWatcher(e.signal, e.cfg.MotionPollInterval, e.cfg.MotionPollJitter, e.Destroy)
	}
	e.watcher.Start()
}

// Stop moves Running -> Stopped, releasing the pending frame callback
// so the loop halts before the next tick. A no-op otherwise.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked()
}

func (e *Engine) stopLocked() {
	if e.state != StateRunning {
		return
	}
	e.state = StateStopped
	e.gen++
	if e.frameID != 0 {
		e.sched.Cancel(e.frameID)
		e.frameID = 0
	}
	if e.watcher != nil {
		e.watcher.Stop()
	}
}

// Destroy is terminal: stops the loop, halts the motion poll, detaches
// the surface from the container, and clears the particle collection.
// Every later operation is a no-op. Notably, destruction triggered by
// a zero motion scale is one-way: re-enabling motion afterwards does
// not resurrect the engine.
func (e *Engine) Destroy() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StateDestroyed {
		return
	}
	e.stopLocked()
	if e.resizeTimer != nil {
		e.resizeTimer.Stop()
		e.resizeTimer = nil
	}
	e.teardownLocked()
	e.state = StateDestroyed
	e.gen++
}

// Reinit stops the loop, rebuilds surface and particles from the
// container's current box, and starts again. A no-op once destroyed.
func (e *Engine) Reinit() error {
	e.mu.Lock()
	if e.state == StateDestroyed {
		e.mu.Unlock()
		return ErrDestroyed
	}
	e.stopLocked()
	e.teardownLocked()
	err := e.initialize()
	e.mu.Unlock()
	if err != nil {
		return err
	}
	e.Start()
	return nil
}

// SetConfig merges the partial into a fresh effective configuration
// and reinitializes. The previous configuration is kept on validation
// failure.
func (e *Engine) SetConfig(p config.Partial) error {
	e.mu.Lock()
	if e.state == StateDestroyed {
		e.mu.Unlock()
		return ErrDestroyed
	}
	next := e.cfg.Merge(p)
	if err := next.Validate(); err != nil {
		e.mu.Unlock()
		return err
	}
	e.cfg = next
	e.mu.Unlock()
	return e.Reinit()
}

// NotifyResize coalesces resize signals with a trailing debounce and
// then reinitializes from the container's new box.
func (e *Engine) NotifyResize() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StateDestroyed {
		return
	}
	if e.resizeTimer != nil {
		e.resizeTimer.Stop()
	}
	e.resizeTimer = time.AfterFunc(e.cfg.ResizeDebounce, func() {
		_ = e.Reinit()
	})
}

// NotifyVisibility stops the loop when hidden and, when configured,
// restarts it on return to visibility.
func (e *Engine) NotifyVisibility(visible bool) {
	e.mu.Lock()
	if e.state == StateDestroyed {
		e.mu.Unlock()
		return
	}
	resume := e.cfg.ResumeOnVisible
	e.mu.Unlock()

	if !visible {
		e.Stop()
		return
	}
	if resume {
		e.Start()
	}
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// ParticleCount returns the live particle count; 0 once destroyed.
func (e *Engine) ParticleCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.field == nil {
		return 0
	}
	return e.field.Count()
}

// Config returns the current effective configuration.
func (e *Engine) Config() config.Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// Surface returns the mounted drawing surface, or nil once destroyed.
func (e *Engine) Surface() surface.Surface {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.surf
}

func (e *Engine) scheduleLocked() {
	gen := e.gen
	e.frameID = e.sched.Schedule(func(now time.Time) { e.tick(now, gen) })
}

// tick runs one frame: compute clamped delta, advance and render the
// particles, run the connection pass, notify observers, reschedule.
// A stale callback (generation mismatch after stop/start) is dropped,
// so cancellation always lands before the next tick.
func (e *Engine) tick(now time.Time, gen uint64) {
	e.mu.Lock()
	if e.state != StateRunning || gen != e.gen {
		e.mu.Unlock()
		return
	}

	delta := now.Sub(e.lastFrame).Seconds() * 1000 / config.FrameUnitMs
	if delta > config.MaxDelta {
		delta = config.MaxDelta
	}
	if delta < 0 {
		delta = 0
	}
	e.lastFrame = now

	scale := motion.Clamp(e.signal.Scale())

	e.surf.Clear()
	e.field.Step(delta, scale)
	e.field.Render(e.surf)

	edges := graph.Pass(e.field.Particles, graph.Options{
		Distance:       e.cfg.ConnectionDistance,
		MaxConnections: e.cfg.MaxConnections,
		LineAlpha:      e.cfg.LineAlpha,
	})
	graph.Render(e.surf, e.field.Particles, edges)

	frame := Frame{
		Delta:     delta,
		Scale:     scale,
		Particles: e.field.Count(),
		Edges:     edges,
		Time:      now,
	}
	observers := e.observers

	e.scheduleLocked()
	e.mu.Unlock()

	for _, o := range observers {
		o.OnFrame(frame)
	}
}
