// Package graph draws the proximity edges between particles: every
// pair closer than a cutoff gets a line whose alpha fades linearly
// with distance, subject to a per-particle degree cap.
package graph

import (
	"github.com/san-kum/driftfield/internal/field"
	"github.com/san-kum/driftfield/internal/surface"
)

type Options struct {
	// Distance is the strict cutoff; a pair at exactly this distance
	// is not connected.
	Distance float64

	// MaxConnections caps how many edges one particle may join in a
	// single frame.
	MaxConnections int

	// LineAlpha is the stroke alpha at distance zero.
	LineAlpha float64
}

// Edge is one drawn connection, indices into the particle slice.
type Edge struct {
	I, J     int
	Distance float64
	Alpha    float64
}

// Pass scans all unordered pairs (i, j), i < j, in ascending index
// order and greedily grants edges until either endpoint runs out of
// budget. The ordering is load-bearing: when candidates compete for a
// capped particle's remaining budget, the lowest-index pair wins, not
// the closest. Both endpoints' counters are incremented per edge; the
// counters must have been zeroed by the frame's advance phase.
func Pass(particles []*field.Particle, opts Options) []Edge {
	if opts.MaxConnections <= 0 || opts.Distance <= 0 {
		return nil
	}

	var edges []Edge
	for i := 0; i < len(particles); i++ {
		pi := particles[i]
		if pi.Connections >= opts.MaxConnections {
			continue
		}
		for j := i + 1; j < len(particles); j++ {
			if pi.Connections >= opts.MaxConnections {
				break
			}
			pj := particles[j]
			if pj.Connections >= opts.MaxConnections {
				continue
			}

			d := pi.DistanceTo(pj)
			if d >= opts.Distance {
				continue
			}

			edges = append(edges, Edge{
				I:        i,
				J:        j,
				Distance: d,
				Alpha:    opts.LineAlpha * (1 - d/opts.Distance),
			})
			pi.Connections++
			pj.Connections++
		}
	}
	return edges
}

// Render strokes the given edges onto a surface.
func Render(s surface.Surface, particles []*field.Particle, edges []Edge) {
	for _, e := range edges {
		a, b := particles[e.I], particles[e.J]
		s.StrokeLine(a.X, a.Y, b.X, b.Y, e.Alpha)
	}
}
