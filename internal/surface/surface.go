// Package surface provides the drawing targets the particle field
// renders onto: a Braille terminal surface for the TUI and a recording
// surface for tests. Coordinates are in drawing units (dots for the
// Braille surface), with (0,0) at the top-left.
package surface

import "fmt"

// Surface is a clearable 2D drawing target. Alpha is in [0,1]; a
// surface may quantize or threshold it but must treat 0 as invisible.
type Surface interface {
	Size() (width, height float64)
	Clear()
	FillCircle(x, y, r, alpha float64)
	StrokeLine(x0, y0, x1, y1, alpha float64)
}

// Container is the node an engine mounts its surface into. The engine
// measures the container box for sizing and attaches exactly one
// surface it created itself; Detach must only be called with that
// surface.
type Container interface {
	Bounds() (width, height float64)
	Attach(s Surface) error
	Detach(s Surface)
}

// Box is an in-memory container with a fixed measurable box. It holds
// at most one attached surface.
type Box struct {
	width, height float64
	attached      Surface
}

func NewBox(width, height float64) *Box {
	return &Box{width: width, height: height}
}

func (b *Box) Bounds() (float64, float64) { return b.width, b.height }

func (b *Box) Attach(s Surface) error {
	if b.attached != nil {
		return fmt.Errorf("container already holds a surface")
	}
	b.attached = s
	return nil
}

func (b *Box) Detach(s Surface) {
	if b.attached == s {
		b.attached = nil
	}
}

// SetBounds changes the measurable box, as a window resize would.
func (b *Box) SetBounds(width, height float64) {
	b.width = width
	b.height = height
}

// Attached returns the currently mounted surface, or nil.
func (b *Box) Attached() Surface { return b.attached }
