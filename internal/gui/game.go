// Package gui runs the particle field in a native window using
// Ebitengine.
package gui

import (
	"fmt"
	"image/color"
	"math"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/san-kum/driftfield/internal/config"
	"github.com/san-kum/driftfield/internal/engine"
	"github.com/san-kum/driftfield/internal/surface"
)

var backgroundColor = color.RGBA{10, 12, 20, 255}

// motionDial is a MotionSignal adjusted from the keyboard. The
// engine's watcher reads it concurrently.
type motionDial struct {
	bits atomic.Uint64
}

func newMotionDial(v float64) *motionDial {
	d := &motionDial{}
	d.set(v)
	return d
}

func (d *motionDial) Scale() float64 { return math.Float64frombits(d.bits.Load()) }

func (d *motionDial) set(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	d.bits.Store(math.Float64bits(v))
}

// Game holds the engine and the input state for the window.
type Game struct {
	eng     *engine.Engine
	sched   *engine.ManualScheduler
	box     *surface.Box
	canvas  *Canvas
	dial    *motionDial
	width   int
	height  int
	visible bool
	showHUD bool
}

func NewGame(cfg config.Config, width, height int) (*Game, error) {
	box := surface.NewBox(float64(width), float64(height))
	sched := engine.NewManualScheduler()
	dial := newMotionDial(1)

	var canvas *Canvas
	eng, err := engine.New(box, cfg, engine.Options{
		Signal:    dial,
		Scheduler: sched,
		NewSurface: func(w, h float64) surface.Surface {
			canvas = NewCanvas(w, h)
			return canvas
		},
	})
	if err != nil {
		return nil, fmt.Errorf("starting engine: %w", err)
	}
	eng.Start()

	return &Game{
		eng:     eng,
		sched:   sched,
		box:     box,
		canvas:  canvas,
		dial:    dial,
		width:   width,
		height:  height,
		visible: true,
		showHUD: true,
	}, nil
}

// Update is called each tick by Ebitengine.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.eng.Destroy()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if g.eng.State() == engine.StateRunning {
			g.eng.Stop()
		} else {
			g.eng.Start()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.eng.Reinit()
		g.canvas, _ = g.eng.Surface().(*Canvas)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		g.visible = !g.visible
		g.eng.NotifyVisibility(g.visible)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		g.dial.set(g.dial.Scale() + 0.1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		g.dial.set(g.dial.Scale() - 0.1)
	}

	g.sched.Fire(time.Now())
	return nil
}

// Draw replays the last engine frame onto the screen.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	if canvas, ok := g.eng.Surface().(*Canvas); ok {
		canvas.Replay(screen)
	}
	if g.showHUD {
		hud := fmt.Sprintf("%s  particles %d  motion %.1f", g.eng.State(), g.eng.ParticleCount(), g.dial.Scale())
		ebitenutil.DebugPrint(screen, hud)
	}
}

// Layout tracks window resizes and feeds them to the engine debouncer.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.box.SetBounds(float64(outsideWidth), float64(outsideHeight))
		g.eng.NotifyResize()
	}
	return g.width, g.height
}

// Run opens the window and blocks until it closes.
func Run(cfg config.Config, width, height int) error {
	game, err := NewGame(cfg, width, height)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("driftfield")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)

	return ebiten.RunGame(game)
}
