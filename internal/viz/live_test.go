package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/driftfield/internal/config"
	"github.com/san-kum/driftfield/internal/engine"
	"github.com/san-kum/driftfield/internal/surface"
)

func TestTermSurfaceScaling(t *testing.T) {
	ts := &termSurface{br: surface.NewBraille(10, 5), scale: 8}

	w, h := ts.Size()
	if w != 160 || h != 160 {
		t.Errorf("Size = (%v, %v), want (160, 160)", w, h)
	}

	// A dot at logical (80, 80) lands mid-grid.
	ts.FillCircle(80, 80, 4, 1.0)
	if ts.br.DotCount() == 0 {
		t.Error("expected dots after FillCircle")
	}

	ts.Clear()
	if ts.br.DotCount() != 0 {
		t.Error("expected empty grid after Clear")
	}
}

func TestScaleControlClamps(t *testing.T) {
	c := newScaleControl(0.5)
	if c.Scale() != 0.5 {
		t.Errorf("Scale = %v, want 0.5", c.Scale())
	}
	c.set(1.5)
	if c.Scale() != 1 {
		t.Errorf("Scale = %v, want 1", c.Scale())
	}
	c.set(-0.2)
	if c.Scale() != 0 {
		t.Errorf("Scale = %v, want 0", c.Scale())
	}
}

func TestGetThemeFallback(t *testing.T) {
	if got := GetTheme("ocean"); got.Name != "ocean" {
		t.Errorf("GetTheme(ocean).Name = %q", got.Name)
	}
	if got := GetTheme("nope"); got.Name != ThemeNebula.Name {
		t.Errorf("unknown theme should fall back, got %q", got.Name)
	}
}

func testModel(t *testing.T) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Seed = 1
	m, err := NewModel(cfg, "")
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	t.Cleanup(m.eng.Destroy)
	return m
}

func TestModelTickProducesFrame(t *testing.T) {
	m := testModel(t)

	next, _ := m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if !m.sink.seen {
		t.Fatal("expected a frame after a tick")
	}
	if m.collector.Frames() != 1 {
		t.Errorf("Frames = %d, want 1", m.collector.Frames())
	}
}

func TestModelSpaceTogglesLifecycle(t *testing.T) {
	m := testModel(t)

	space := tea.KeyMsg{Type: tea.KeySpace}
	next, _ := m.Update(space)
	m = next.(Model)
	if m.eng.State() != engine.StateStopped {
		t.Fatalf("state after pause = %v, want stopped", m.eng.State())
	}
	next, _ = m.Update(space)
	m = next.(Model)
	if m.eng.State() != engine.StateRunning {
		t.Fatalf("state after resume = %v, want running", m.eng.State())
	}
}

func TestModelViewRendersStats(t *testing.T) {
	m := testModel(t)
	next, _ := m.Update(TickMsg(time.Now()))
	m = next.(Model)

	view := m.View()
	if !strings.Contains(view, "DRIFTFIELD") {
		t.Error("missing title in view")
	}
	if !strings.Contains(view, "Particles") {
		t.Error("missing particle count in view")
	}
}

func TestSparklineChartWidth(t *testing.T) {
	if got := SparklineChart(nil, 8); got != strings.Repeat("─", 8) {
		t.Errorf("empty sparkline = %q", got)
	}
	out := SparklineChart([]float64{1, 2, 3, 4, 5, 6, 7, 8}, 4)
	if out == "" {
		t.Error("expected non-empty sparkline")
	}
}
