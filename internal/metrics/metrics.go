// Package metrics aggregates per-frame statistics from the engine's
// observer callback into scalar summary values.
package metrics

import "github.com/san-kum/driftfield/internal/engine"

type Metric interface {
	Name() string
	Observe(f engine.Frame)
	Value() float64
	Reset()
}

// EdgeCount reports the mean number of drawn connections per frame.
type EdgeCount struct {
	frames int
	total  int
}

func NewEdgeCount() *EdgeCount { return &EdgeCount{} }

func (m *EdgeCount) Name() string { return "edges_per_frame" }

func (m *EdgeCount) Observe(f engine.Frame) {
	m.frames++
	m.total += len(f.Edges)
}

func (m *EdgeCount) Value() float64 {
	if m.frames == 0 {
		return 0
	}
	return float64(m.total) / float64(m.frames)
}

func (m *EdgeCount) Reset() { m.frames, m.total = 0, 0 }

// MeanDegree reports the mean per-particle connection degree across
// frames (each edge contributes two degree endpoints).
type MeanDegree struct {
	frames int
	sum    float64
}

func NewMeanDegree() *MeanDegree { return &MeanDegree{} }

func (m *MeanDegree) Name() string { return "mean_degree" }

func (m *MeanDegree) Observe(f engine.Frame) {
	if f.Particles == 0 {
		return
	}
	m.frames++
	m.sum += float64(2*len(f.Edges)) / float64(f.Particles)
}

func (m *MeanDegree) Value() float64 {
	if m.frames == 0 {
		return 0
	}
	return m.sum / float64(m.frames)
}

func (m *MeanDegree) Reset() { m.frames, m.sum = 0, 0 }

// MotionScale reports the mean motion scale the frames ran under.
type MotionScale struct {
	frames int
	sum    float64
}

func NewMotionScale() *MotionScale { return &MotionScale{} }

func (m *MotionScale) Name() string { return "mean_motion_scale" }

func (m *MotionScale) Observe(f engine.Frame) {
	m.frames++
	m.sum += f.Scale
}

func (m *MotionScale) Value() float64 {
	if m.frames == 0 {
		return 0
	}
	return m.sum / float64(m.frames)
}

func (m *MotionScale) Reset() { m.frames, m.sum = 0, 0 }

// Collector fans one engine frame out to a set of metrics; it is the
// engine.Observer the headless runner registers.
type Collector struct {
	metrics []Metric
	frames  int

	// EdgeHistory keeps per-frame edge counts for plotting.
	EdgeHistory []float64
}

func NewCollector(ms ...Metric) *Collector {
	return &Collector{metrics: ms}
}

func Default() *Collector {
	return NewCollector(NewEdgeCount(), NewMeanDegree(), NewMotionScale())
}

func (c *Collector) OnFrame(f engine.Frame) {
	c.frames++
	c.EdgeHistory = append(c.EdgeHistory, float64(len(f.Edges)))
	for _, m := range c.metrics {
		m.Observe(f)
	}
}

func (c *Collector) Frames() int { return c.frames }

func (c *Collector) Results() map[string]float64 {
	out := make(map[string]float64, len(c.metrics))
	for _, m := range c.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (c *Collector) Reset() {
	c.frames = 0
	c.EdgeHistory = nil
	for _, m := range c.metrics {
		m.Reset()
	}
}
