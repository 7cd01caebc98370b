package viz

import (
	"fmt"
	"math"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/driftfield/internal/config"
	"github.com/san-kum/driftfield/internal/engine"
	"github.com/san-kum/driftfield/internal/metrics"
	"github.com/san-kum/driftfield/internal/surface"
)

const (
	defaultCols = 56
	defaultRows = 20
	statsWidth  = 45

	// dotScale maps one braille dot to dotScale logical pixels so a
	// terminal canvas covers enough area for a useful particle budget.
	dotScale = 8.0
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(statsWidth)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// termSurface projects logical pixel coordinates down onto a braille
// dot grid.
type termSurface struct {
	br    *surface.Braille
	scale float64
}

func (t *termSurface) Size() (float64, float64) {
	w, h := t.br.Size()
	return w * t.scale, h * t.scale
}

func (t *termSurface) Clear() { t.br.Clear() }

func (t *termSurface) FillCircle(x, y, r, alpha float64) {
	t.br.FillCircle(x/t.scale, y/t.scale, r/t.scale, alpha)
}

func (t *termSurface) StrokeLine(x0, y0, x1, y1, alpha float64) {
	t.br.StrokeLine(x0/t.scale, y0/t.scale, x1/t.scale, y1/t.scale, alpha)
}

func (t *termSurface) String() string { return t.br.String() }

// scaleControl is a MotionSignal the keyboard can adjust while the
// engine's watcher reads it from another goroutine.
type scaleControl struct {
	bits atomic.Uint64
}

func newScaleControl(v float64) *scaleControl {
	c := &scaleControl{}
	c.set(v)
	return c
}

func (c *scaleControl) Scale() float64 { return math.Float64frombits(c.bits.Load()) }

func (c *scaleControl) set(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	c.bits.Store(math.Float64bits(v))
}

// frameSink captures the latest frame for the stats panel.
type frameSink struct {
	frame engine.Frame
	seen  bool
}

func (s *frameSink) OnFrame(f engine.Frame) {
	s.frame = f
	s.seen = true
}

// Model drives a live particle field in the terminal.
type Model struct {
	eng       *engine.Engine
	sched     *engine.ManualScheduler
	box       *surface.Box
	scale     *scaleControl
	collector *metrics.Collector
	sink      *frameSink
	preset    string
	visible   bool
	showHelp  bool
}

// NewModel builds the engine against a terminal-sized container and
// starts it.
func NewModel(cfg config.Config, preset string) (Model, error) {
	box := surface.NewBox(defaultCols*2*dotScale, defaultRows*4*dotScale)
	sched := engine.NewManualScheduler()
	scale := newScaleControl(1)

	eng, err := engine.New(box, cfg, engine.Options{
		Signal:    scale,
		Scheduler: sched,
		NewSurface: func(w, h float64) surface.Surface {
			return &termSurface{
				br:    surface.NewBraille(int(w/dotScale)/2, int(h/dotScale)/4),
				scale: dotScale,
			}
		},
	})
	if err != nil {
		return Model{}, fmt.Errorf("starting engine: %w", err)
	}

	collector := metrics.Default()
	sink := &frameSink{}
	eng.AddObserver(collector)
	eng.AddObserver(sink)
	eng.Start()

	return Model{
		eng:       eng,
		sched:     sched,
		box:       box,
		scale:     scale,
		collector: collector,
		sink:      sink,
		preset:    preset,
		visible:   true,
	}, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and drives the frame scheduler.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.eng.Destroy()
			return m, tea.Quit
		case " ":
			if m.eng.State() == engine.StateRunning {
				m.eng.Stop()
			} else {
				m.eng.Start()
			}
		case "r":
			m.eng.Reinit()
			m.collector.Reset()
		case "v":
			m.visible = !m.visible
			m.eng.NotifyVisibility(m.visible)
		case "up", "k":
			m.scale.set(m.scale.Scale() + 0.1)
		case "down", "j":
			m.scale.set(m.scale.Scale() - 0.1)
		case "t":
			names := ThemeNames()
			for i, name := range names {
				if name == CurrentTheme.Name {
					SetTheme(names[(i+1)%len(names)])
					break
				}
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		cols := msg.Width - statsWidth - 8
		rows := msg.Height - 4
		if cols < 20 {
			cols = 20
		}
		if rows < 8 {
			rows = 8
		}
		m.box.SetBounds(float64(cols*2)*dotScale, float64(rows*4)*dotScale)
		m.eng.NotifyResize()
	case TickMsg:
		m.sched.Fire(time.Time(msg))
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// View renders the canvas pane next to the stats panel.
func (m Model) View() string {
	canvas := ""
	if s, ok := m.eng.Surface().(fmt.Stringer); ok {
		canvas = s.String()
	}
	canvasView := canvasStyle.Render(canvas)

	headerStyle := lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Bold(true).MarginBottom(1)
	labelStyle := lipgloss.NewStyle().Foreground(CurrentTheme.Muted).Width(12)
	valueStyle := lipgloss.NewStyle().Foreground(CurrentTheme.Text)

	var s strings.Builder
	title := "DRIFTFIELD"
	if m.preset != "" {
		title += " · " + strings.ToUpper(m.preset)
	}
	s.WriteString(headerStyle.Render(title) + "\n")
	s.WriteString(m.statusLine() + "\n\n")

	if len(m.collector.EdgeHistory) > 1 {
		hist := m.collector.EdgeHistory
		if len(hist) > 120 {
			hist = hist[len(hist)-120:]
		}
		chart := asciigraph.Plot(hist, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Connections"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Particles") + valueStyle.Render(fmt.Sprintf("%d", m.eng.ParticleCount())) + "\n")
	edges := 0
	delta := 0.0
	if m.sink.seen {
		edges = len(m.sink.frame.Edges)
		delta = m.sink.frame.Delta
	}
	s.WriteString(labelStyle.Render("Edges") + valueStyle.Render(fmt.Sprintf("%d", edges)) + "\n")
	s.WriteString(labelStyle.Render("Delta") + valueStyle.Render(fmt.Sprintf("%.2f", delta)) + "\n")
	s.WriteString(labelStyle.Render("Frames") + valueStyle.Render(fmt.Sprintf("%d", m.collector.Frames())) + "\n")
	s.WriteString(labelStyle.Render("Motion") + ProgressBar(m.scale.Scale(), 10) + valueStyle.Render(fmt.Sprintf(" %.1f", m.scale.Scale())) + "\n")
	s.WriteString("\n" + Separator(30) + "\n")
	s.WriteString(MetricLabel.Render("Edge rate ") + SparklineChart(m.collector.EdgeHistory, 24) + "\n")

	s.WriteString(helpStyle.Render("\nSP:Pause R:Reset V:Hide Q:Quit\nT:Theme ↑↓:Motion ?:Help"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Rebuild the field        ║
║  V        - Toggle visibility        ║
║  Up/K     - Raise motion scale       ║
║  Down/J   - Lower motion scale       ║
║           (zero tears the field down)║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

func (m Model) statusLine() string {
	switch m.eng.State() {
	case engine.StateRunning:
		return StatusRunning.Render("● RUNNING")
	case engine.StateStopped:
		if !m.visible {
			return StatusStopped.Render("◌ HIDDEN")
		}
		return StatusStopped.Render("◌ STOPPED")
	default:
		return StatusDestroyed.Render("✕ DESTROYED")
	}
}
