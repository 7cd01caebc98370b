package field

import (
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/san-kum/driftfield/internal/config"
)

// driftSource steers particle headings through a slowly evolving
// perlin noise field. It only touches velocity; displacement is still
// scaled by motion scale in Advance, so a zero scale freezes a
// drifting field just like a plain one.
type driftSource struct {
	noise    *perlin.Perlin
	strength float64
	t        float64
}

func newDriftSource(seed int64, strength float64) *driftSource {
	if strength <= 0 {
		strength = 0.01
	}
	return &driftSource{
		noise:    perlin.NewPerlin(2, 2, 3, seed),
		strength: strength,
	}
}

func (d *driftSource) tick(delta float64) {
	d.t += delta * 0.002
}

func (d *driftSource) perturb(p *Particle, delta float64, cfg config.Config) {
	n := d.noise.Noise3D(p.X*0.004, p.Y*0.004, d.t)
	heading := n * 2 * math.Pi

	p.VX += math.Cos(heading) * d.strength * delta
	p.VY += math.Sin(heading) * d.strength * delta

	// keep drifting particles inside the configured speed band
	speed := math.Sqrt(p.VX*p.VX + p.VY*p.VY)
	if speed > cfg.MaxSpeed && speed > 0 {
		p.VX *= cfg.MaxSpeed / speed
		p.VY *= cfg.MaxSpeed / speed
	}
}
