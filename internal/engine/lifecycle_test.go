package engine

import (
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/driftfield/internal/config"
	"github.com/san-kum/driftfield/internal/motion"
	"github.com/san-kum/driftfield/internal/surface"
)

func testConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Seed = 1
	cfg.ResizeDebounce = 5 * time.Millisecond
	cfg.MotionPollInterval = 2 * time.Millisecond
	return cfg
}

func recorderFactory(w, h float64) surface.Surface {
	return surface.NewRecorder(w, h)
}

var _ = Describe("Engine lifecycle", func() {
	var (
		box   *surface.Box
		sched *ManualScheduler
		eng   *Engine
	)

	newEngine := func(cfg config.Config, sig motion.Signal) *Engine {
		e, err := New(box, cfg, Options{
			Signal:     sig,
			Scheduler:  sched,
			NewSurface: recorderFactory,
		})
		Expect(err).NotTo(HaveOccurred())
		return e
	}

	BeforeEach(func() {
		box = surface.NewBox(600, 400)
		sched = NewManualScheduler()
		eng = newEngine(testConfig(), motion.Fixed(1))
	})

	AfterEach(func() {
		eng.Destroy()
	})

	It("starts in the stopped state with a mounted surface", func() {
		Expect(eng.State()).To(Equal(StateStopped))
		Expect(box.Attached()).NotTo(BeNil())
		Expect(eng.ParticleCount()).To(Equal(eng.Config().ParticleBudget(600, 400)))
	})

	It("schedules exactly one callback on start, even when started twice", func() {
		eng.Start()
		eng.Start()
		Expect(eng.State()).To(Equal(StateRunning))
		Expect(sched.Pending()).To(Equal(1))
	})

	It("keeps a single outstanding callback across ticks", func() {
		eng.Start()
		now := time.Now()
		for i := 0; i < 10; i++ {
			now = now.Add(FrameInterval)
			Expect(sched.Fire(now)).To(Equal(1))
			Expect(sched.Pending()).To(Equal(1))
		}
	})

	It("releases the pending callback on stop, idempotently", func() {
		eng.Start()
		eng.Stop()
		eng.Stop()
		Expect(eng.State()).To(Equal(StateStopped))
		Expect(sched.Pending()).To(BeZero())
		Expect(sched.Fire(time.Now())).To(BeZero())
	})

	It("drops a stale callback that fires after stop", func() {
		eng.Start()
		var frames atomic.Int32
		eng.AddObserver(observerFunc(func(Frame) { frames.Add(1) }))

		eng.Stop()
		sched.Fire(time.Now())
		Expect(frames.Load()).To(BeZero())
	})

	Describe("destroy", func() {
		It("detaches the surface and clears the particles", func() {
			eng.Start()
			eng.Destroy()

			Expect(eng.State()).To(Equal(StateDestroyed))
			Expect(box.Attached()).To(BeNil())
			Expect(eng.ParticleCount()).To(BeZero())
			Expect(sched.Pending()).To(BeZero())
		})

		It("is terminal: start has no effect afterwards", func() {
			eng.Destroy()
			eng.Start()

			Expect(eng.State()).To(Equal(StateDestroyed))
			Expect(sched.Pending()).To(BeZero())
			Expect(eng.ParticleCount()).To(BeZero())
		})

		It("rejects reinit and setconfig afterwards", func() {
			eng.Destroy()
			Expect(eng.Reinit()).To(MatchError(ErrDestroyed))
			Expect(eng.SetConfig(config.Partial{})).To(MatchError(ErrDestroyed))
		})
	})

	Describe("visibility", func() {
		It("stops when hidden and resumes when visible", func() {
			eng.Start()
			eng.NotifyVisibility(false)
			Expect(eng.State()).To(Equal(StateStopped))

			eng.NotifyVisibility(true)
			Expect(eng.State()).To(Equal(StateRunning))
		})

		It("stays stopped on visible when resume is disabled", func() {
			cfg := testConfig()
			cfg.ResumeOnVisible = false
			box = surface.NewBox(600, 400)
			sched = NewManualScheduler()
			e := newEngine(cfg, motion.Fixed(1))
			defer e.Destroy()

			e.Start()
			e.NotifyVisibility(false)
			e.NotifyVisibility(true)
			Expect(e.State()).To(Equal(StateStopped))
		})
	})

	Describe("resize", func() {
		It("debounces and rebuilds from the new box", func() {
			eng.Start()
			box.SetBounds(1200, 800)

			eng.NotifyResize()
			eng.NotifyResize()
			eng.NotifyResize()

			expected := eng.Config().ParticleBudget(1200, 800)
			Eventually(eng.ParticleCount).Should(Equal(expected))
			Eventually(eng.State).Should(Equal(StateRunning))
		})
	})

	Describe("SetConfig", func() {
		It("merges into a fresh effective config and reinitializes", func() {
			n := 5
			Expect(eng.SetConfig(config.Partial{MaxParticles: &n})).To(Succeed())
			Expect(eng.Config().MaxParticles).To(Equal(5))
			Expect(eng.ParticleCount()).To(Equal(5))
			Expect(eng.State()).To(Equal(StateRunning))
		})

		It("keeps the old config when the merge does not validate", func() {
			bad := -3
			before := eng.Config()
			Expect(eng.SetConfig(config.Partial{MaxParticles: &bad})).NotTo(Succeed())
			Expect(eng.Config()).To(Equal(before))
		})
	})

	Describe("motion preference", func() {
		It("destroys, one-way, when the polled scale drops to zero", func() {
			var scale atomic.Value
			scale.Store(1.0)
			sig := motion.Func(func() float64 { return scale.Load().(float64) })

			box = surface.NewBox(600, 400)
			sched = NewManualScheduler()
			e := newEngine(testConfig(), sig)
			e.Start()

			scale.Store(0.0)
			Eventually(e.State).Should(Equal(StateDestroyed))

			// re-enabling motion never resurrects the engine
			scale.Store(1.0)
			e.Start()
			Consistently(e.State, 20*time.Millisecond).Should(Equal(StateDestroyed))
		})
	})
})

var _ = Describe("Engine construction", func() {
	It("declines without a container", func() {
		_, err := New(nil, testConfig(), Options{})
		Expect(err).To(MatchError(ErrNoContainer))
	})

	It("declines when the container box is unmeasurable", func() {
		_, err := New(surface.NewBox(0, 0), testConfig(), Options{NewSurface: recorderFactory})
		Expect(err).To(MatchError(ErrSurfaceUnavailable))
	})

	It("declines when the surface cannot be created", func() {
		_, err := New(surface.NewBox(600, 400), testConfig(), Options{
			NewSurface: func(w, h float64) surface.Surface { return nil },
		})
		Expect(err).To(MatchError(ErrSurfaceUnavailable))
	})

	It("declines when the motion scale is already zero", func() {
		_, err := New(surface.NewBox(600, 400), testConfig(), Options{
			Signal:     motion.Fixed(0),
			NewSurface: recorderFactory,
		})
		Expect(err).To(MatchError(ErrMotionDisabled))
	})

	It("rejects an invalid config", func() {
		cfg := testConfig()
		cfg.MaxParticles = -1
		_, err := New(surface.NewBox(600, 400), cfg, Options{NewSurface: recorderFactory})
		Expect(err).To(HaveOccurred())
	})
})

type observerFunc func(Frame)

func (fn observerFunc) OnFrame(f Frame) { fn(f) }
