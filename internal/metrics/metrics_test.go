package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/driftfield/internal/engine"
	"github.com/san-kum/driftfield/internal/graph"
)

func frameWith(edges, particles int, scale float64) engine.Frame {
	return engine.Frame{
		Edges:     make([]graph.Edge, edges),
		Particles: particles,
		Scale:     scale,
	}
}

func TestEdgeCount(t *testing.T) {
	m := NewEdgeCount()

	if m.Value() != 0 {
		t.Error("expected 0 before any frame")
	}

	m.Observe(frameWith(2, 10, 1))
	m.Observe(frameWith(4, 10, 1))

	if m.Value() != 3 {
		t.Errorf("expected mean 3, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected 0 after reset")
	}
}

func TestMeanDegree(t *testing.T) {
	m := NewMeanDegree()

	m.Observe(frameWith(5, 10, 1)) // degree 1.0
	m.Observe(frameWith(10, 10, 1)) // degree 2.0

	if math.Abs(m.Value()-1.5) > 1e-9 {
		t.Errorf("expected mean degree 1.5, got %f", m.Value())
	}
}

func TestMeanDegreeSkipsEmptyFrames(t *testing.T) {
	m := NewMeanDegree()
	m.Observe(frameWith(0, 0, 1))
	if m.Value() != 0 {
		t.Error("empty frames should not contribute")
	}
}

func TestMotionScale(t *testing.T) {
	m := NewMotionScale()
	m.Observe(frameWith(0, 1, 1.0))
	m.Observe(frameWith(0, 1, 0.5))
	if math.Abs(m.Value()-0.75) > 1e-9 {
		t.Errorf("expected mean scale 0.75, got %f", m.Value())
	}
}

func TestCollector(t *testing.T) {
	c := Default()

	c.OnFrame(frameWith(3, 10, 1))
	c.OnFrame(frameWith(5, 10, 1))

	if c.Frames() != 2 {
		t.Errorf("expected 2 frames, got %d", c.Frames())
	}
	if len(c.EdgeHistory) != 2 || c.EdgeHistory[0] != 3 || c.EdgeHistory[1] != 5 {
		t.Errorf("edge history wrong: %v", c.EdgeHistory)
	}

	results := c.Results()
	if results["edges_per_frame"] != 4 {
		t.Errorf("expected edges_per_frame 4, got %f", results["edges_per_frame"])
	}
	if _, ok := results["mean_degree"]; !ok {
		t.Error("expected mean_degree in results")
	}

	c.Reset()
	if c.Frames() != 0 || len(c.EdgeHistory) != 0 {
		t.Error("reset should drop frame history")
	}
}
