package field

import (
	"math"
	"math/rand"

	"github.com/san-kum/driftfield/internal/config"
	"github.com/san-kum/driftfield/internal/surface"
)

// Particle is a single point in the field. Size and Opacity are fixed
// for the particle's lifetime; Connections is transient per-frame
// bookkeeping for the proximity pass.
type Particle struct {
	X, Y        float64
	VX, VY      float64
	Size        float64
	Opacity     float64
	Connections int
}

// Reset places the particle uniformly at random inside a w x h field
// and rolls a fresh size, speed, heading, and opacity from cfg ranges.
func (p *Particle) Reset(rng *rand.Rand, w, h float64, cfg config.Config) {
	p.X = rng.Float64() * w
	p.Y = rng.Float64() * h
	p.Size = cfg.MinSize + rng.Float64()*(cfg.MaxSize-cfg.MinSize)

	speed := cfg.MinSpeed + rng.Float64()*(cfg.MaxSpeed-cfg.MinSpeed)
	heading := rng.Float64() * 2 * math.Pi
	p.VX = math.Cos(heading) * speed
	p.VY = math.Sin(heading) * speed

	p.Opacity = cfg.MinOpacity + rng.Float64()*(cfg.MaxOpacity-cfg.MinOpacity)
	p.Connections = 0
}

// Advance moves the particle by velocity * motionScale * delta and
// wraps at the field edges. The wrap is not modular: a particle that
// leaves an edge is placed exactly on the opposite edge regardless of
// how far it overshot. A motionScale of 0 freezes position exactly.
// The per-frame connection counter is zeroed here.
func (p *Particle) Advance(delta, motionScale, w, h float64) {
	p.X += p.VX * motionScale * delta
	p.Y += p.VY * motionScale * delta

	if p.X > w {
		p.X = 0
	} else if p.X < 0 {
		p.X = w
	}
	if p.Y > h {
		p.Y = 0
	} else if p.Y < 0 {
		p.Y = h
	}

	p.Connections = 0
}

// Render draws the particle as a filled circle at its own opacity.
func (p *Particle) Render(s surface.Surface) {
	s.FillCircle(p.X, p.Y, p.Size, p.Opacity)
}

// DistanceTo returns the Euclidean distance to another particle.
func (p *Particle) DistanceTo(o *Particle) float64 {
	dx := p.X - o.X
	dy := p.Y - o.Y
	return math.Sqrt(dx*dx + dy*dy)
}
