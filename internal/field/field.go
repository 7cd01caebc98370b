// Package field owns the particle collection and per-frame motion.
// The connection pass lives in package graph; lifecycle and frame
// scheduling live in package engine.
package field

import (
	"math/rand"
	"time"

	"github.com/san-kum/driftfield/internal/config"
	"github.com/san-kum/driftfield/internal/surface"
)

// Field is the particle collection plus its dimensions. Particle order
// is insertion order and is stable across frames; the connection pass
// depends on it for its greedy degree-cap tie-breaking.
type Field struct {
	Particles []*Particle

	width, height float64
	cfg           config.Config
	rng           *rand.Rand
	drift         *driftSource
}

// New seeds the field RNG (cfg.Seed, or the wall clock when zero) and
// populates particles for the given dimensions.
func New(cfg config.Config, width, height float64) *Field {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	f := &Field{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
	if cfg.Drift {
		f.drift = newDriftSource(seed, cfg.DriftStrength)
	}
	f.Resize(width, height)
	return f
}

func (f *Field) Size() (float64, float64) { return f.width, f.height }

func (f *Field) Config() config.Config { return f.cfg }

// Resize re-measures the field and rebuilds the particle set from
// scratch. Prior particle state is discarded, not rescaled.
func (f *Field) Resize(width, height float64) {
	f.width = width
	f.height = height

	count := f.cfg.ParticleBudget(width, height)
	f.Particles = make([]*Particle, count)
	for i := range f.Particles {
		p := &Particle{}
		p.Reset(f.rng, width, height, f.cfg)
		f.Particles[i] = p
	}
}

// Step advances every particle by one frame. delta is in 60fps frame
// units, motionScale in [0,1].
func (f *Field) Step(delta, motionScale float64) {
	if f.drift != nil {
		f.drift.tick(delta)
	}
	for _, p := range f.Particles {
		if f.drift != nil {
			f.drift.perturb(p, delta, f.cfg)
		}
		p.Advance(delta, motionScale, f.width, f.height)
	}
}

// Render draws every particle in iteration order.
func (f *Field) Render(s surface.Surface) {
	for _, p := range f.Particles {
		p.Render(s)
	}
}

// Count returns the live particle count.
func (f *Field) Count() int { return len(f.Particles) }

// Clear drops the particle collection; used on destroy.
func (f *Field) Clear() { f.Particles = nil }
