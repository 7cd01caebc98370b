package gui

import "testing"

func TestCanvasRecordsOps(t *testing.T) {
	c := NewCanvas(800, 600)

	w, h := c.Size()
	if w != 800 || h != 600 {
		t.Errorf("Size = (%v, %v), want (800, 600)", w, h)
	}

	c.FillCircle(10, 20, 2, 0.5)
	c.StrokeLine(0, 0, 10, 10, 0.1)
	if len(c.circles) != 1 || len(c.lines) != 1 {
		t.Fatalf("got %d circles, %d lines", len(c.circles), len(c.lines))
	}

	// Invisible primitives are dropped.
	c.FillCircle(1, 1, 1, 0)
	c.StrokeLine(0, 0, 1, 1, -0.5)
	if len(c.circles) != 1 || len(c.lines) != 1 {
		t.Error("zero-alpha ops should be skipped")
	}

	c.Clear()
	if len(c.circles) != 0 || len(c.lines) != 0 {
		t.Error("Clear should drop ops")
	}
}

func TestAlphaWhiteClamps(t *testing.T) {
	if c := alphaWhite(2.0); c.A != 255 {
		t.Errorf("A = %d, want 255", c.A)
	}
	if c := alphaWhite(-1.0); c.A != 0 {
		t.Errorf("A = %d, want 0", c.A)
	}
	c := alphaWhite(0.5)
	if c.R != c.A || c.G != c.A || c.B != c.A {
		t.Error("expected premultiplied white")
	}
}

func TestMotionDial(t *testing.T) {
	d := newMotionDial(1)
	d.set(0.3)
	if d.Scale() != 0.3 {
		t.Errorf("Scale = %v, want 0.3", d.Scale())
	}
	d.set(5)
	if d.Scale() != 1 {
		t.Errorf("Scale = %v, want 1", d.Scale())
	}
}
