package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/driftfield/internal/config"
	"github.com/san-kum/driftfield/internal/engine"
	"github.com/san-kum/driftfield/internal/gui"
	"github.com/san-kum/driftfield/internal/metrics"
	"github.com/san-kum/driftfield/internal/store"
	"github.com/san-kum/driftfield/internal/surface"
	"github.com/san-kum/driftfield/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string

	maxParticles int
	maxConns     int
	distance     float64
	lineAlpha    float64
	seed         int64
	drift        bool

	duration float64
	width    float64
	height   float64

	winWidth  int
	winHeight int
)

// main registers the driftfield commands; running without a subcommand
// opens the live terminal view.
func main() {
	rootCmd := &cobra.Command{
		Use:   "driftfield",
		Short: "ambient particle field renderer",
		RunE:  runLive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".driftfield", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().IntVar(&maxParticles, "particles", 0, "particle cap")
	rootCmd.PersistentFlags().IntVar(&maxConns, "connections", 0, "per-particle connection cap")
	rootCmd.PersistentFlags().Float64Var(&distance, "distance", 0, "connection distance")
	rootCmd.PersistentFlags().Float64Var(&lineAlpha, "line-alpha", 0, "base line opacity")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed")
	rootCmd.PersistentFlags().BoolVar(&drift, "drift", false, "perlin drift")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "live terminal view",
		RunE:  runLive,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "headless run",
		RunE:  runHeadless,
	}
	runCmd.Flags().Float64Var(&duration, "time", 10.0, "duration in seconds")
	runCmd.Flags().Float64Var(&width, "width", 1280, "field width")
	runCmd.Flags().Float64Var(&height, "height", 720, "field height")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "windowed view",
		RunE:  runGUI,
	}
	guiCmd.Flags().IntVar(&winWidth, "width", 1024, "window width")
	guiCmd.Flags().IntVar(&winHeight, "height", 640, "window height")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return store.New(dataDir).ExportJSON(os.Stdout, args[0])
		},
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return store.New(dataDir).ExportCSV(os.Stdout, args[0])
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark frame throughput",
		RunE:  benchRun,
	}

	rootCmd.AddCommand(liveCmd, runCmd, guiCmd, listCmd, plotCmd, exportCmd, exportJSONCmd, exportCSVCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers preset, config file, and flags, in that order of
// increasing precedence.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p, ok := config.GetPreset(preset)
		if !ok {
			return cfg, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("particles") {
		cfg.MaxParticles = maxParticles
	}
	if cmd.Flags().Changed("connections") {
		cfg.MaxConnections = maxConns
	}
	if cmd.Flags().Changed("distance") {
		cfg.ConnectionDistance = distance
	}
	if cmd.Flags().Changed("line-alpha") {
		cfg.LineAlpha = lineAlpha
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("drift") {
		cfg.Drift = drift
	}

	return cfg, cfg.Validate()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	m, err := viz.NewModel(cfg, preset)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	return gui.Run(cfg, winWidth, winHeight)
}

// frameLog records per-frame rows for persistence.
type frameLog struct {
	frames []store.FrameRecord
}

func (l *frameLog) OnFrame(f engine.Frame) {
	l.frames = append(l.frames, store.FrameRecord{
		Frame:     len(l.frames),
		Delta:     f.Delta,
		Scale:     f.Scale,
		Particles: f.Particles,
		Edges:     len(f.Edges),
	})
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	box := surface.NewBox(width, height)
	sched := engine.NewManualScheduler()
	eng, err := engine.New(box, cfg, engine.Options{
		Scheduler: sched,
		NewSurface: func(w, h float64) surface.Surface {
			return surface.NewRecorder(w, h)
		},
	})
	if err != nil {
		return err
	}

	collector := metrics.Default()
	flog := &frameLog{}
	eng.AddObserver(collector)
	eng.AddObserver(flog)
	eng.Start()

	fmt.Printf("running %d particles for %.1fs...\n", eng.ParticleCount(), duration)
	start := time.Now()

	// Synthetic 60fps clock so the run is deterministic under a seed.
	steps := int(duration * 60)
	now := start
	for i := 0; i < steps; i++ {
		now = now.Add(time.Second / 60)
		sched.Fire(now)
	}
	eng.Destroy()

	elapsed := time.Since(start)

	runID, err := st.Save(preset, cfg, duration, flog.frames, collector.Results())
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", collector.Frames())
	fmt.Println("\nmetrics:")
	for name, val := range collector.Results() {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tPRESET\tDURATION\tFRAMES\tEDGES/FRAME")

	for _, run := range runs {
		presetName := run.Preset
		if presetName == "" {
			presetName = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1fs\t%d\t%.1f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			presetName,
			run.Duration,
			run.Frames,
			run.Metrics["edges_per_frame"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("frames: %d\n\n", len(frames))

	edges := make([]float64, len(frames))
	deltas := make([]float64, len(frames))
	for i, f := range frames {
		edges[i] = float64(f.Edges)
		deltas[i] = f.Delta
	}

	fmt.Println(asciigraph.Plot(edges,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("connections per frame"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(deltas,
		asciigraph.Height(6),
		asciigraph.Width(80),
		asciigraph.Caption("frame delta"),
	))

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func benchRun(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	sizes := []struct{ w, h float64 }{
		{640, 360},
		{1280, 720},
		{1920, 1080},
	}
	const ticks = 600

	fmt.Println("benchmarking frame throughput")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIZE\tPARTICLES\tTICKS\tTIME\tTICKS/SEC")

	for _, size := range sizes {
		box := surface.NewBox(size.w, size.h)
		sched := engine.NewManualScheduler()
		eng, err := engine.New(box, cfg, engine.Options{
			Scheduler: sched,
			NewSurface: func(sw, sh float64) surface.Surface {
				return surface.NewRecorder(sw, sh)
			},
		})
		if err != nil {
			return err
		}
		eng.Start()

		start := time.Now()
		now := start
		for i := 0; i < ticks; i++ {
			now = now.Add(time.Second / 60)
			sched.Fire(now)
		}
		elapsed := time.Since(start)
		particles := eng.ParticleCount()
		eng.Destroy()

		fmt.Fprintf(w, "%.0fx%.0f\t%d\t%d\t%v\t%.0f\n",
			size.w, size.h, particles, ticks, elapsed,
			float64(ticks)/elapsed.Seconds())
	}

	return w.Flush()
}
