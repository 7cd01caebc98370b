package gui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

type circleOp struct {
	x, y, r, alpha float64
}

type lineOp struct {
	x0, y0, x1, y1, alpha float64
}

// Canvas is a display-list drawing surface. The engine draws into it
// during the tick and the game replays the ops onto the screen in the
// next Draw call.
type Canvas struct {
	width, height float64
	circles       []circleOp
	lines         []lineOp
}

func NewCanvas(width, height float64) *Canvas {
	return &Canvas{width: width, height: height}
}

func (c *Canvas) Size() (float64, float64) { return c.width, c.height }

func (c *Canvas) Clear() {
	c.circles = c.circles[:0]
	c.lines = c.lines[:0]
}

func (c *Canvas) FillCircle(x, y, r, alpha float64) {
	if alpha <= 0 {
		return
	}
	c.circles = append(c.circles, circleOp{x, y, r, alpha})
}

func (c *Canvas) StrokeLine(x0, y0, x1, y1, alpha float64) {
	if alpha <= 0 {
		return
	}
	c.lines = append(c.lines, lineOp{x0, y0, x1, y1, alpha})
}

// alphaWhite returns premultiplied white at the given opacity.
func alphaWhite(alpha float64) color.RGBA {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	v := uint8(alpha * 255)
	return color.RGBA{v, v, v, v}
}

// Replay draws the recorded frame onto the screen.
func (c *Canvas) Replay(screen *ebiten.Image) {
	for _, l := range c.lines {
		vector.StrokeLine(screen, float32(l.x0), float32(l.y0), float32(l.x1), float32(l.y1), 1, alphaWhite(l.alpha), true)
	}
	for _, op := range c.circles {
		vector.DrawFilledCircle(screen, float32(op.x), float32(op.y), float32(op.r), alphaWhite(op.alpha), true)
	}
}
