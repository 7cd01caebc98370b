package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// AreaPerParticle is the surface area (in drawing units) that yields
	// one particle; particle count is floor(area/AreaPerParticle) capped
	// at MaxParticles.
	AreaPerParticle = 15000.0

	// FrameUnitMs is the length of one frame at 60fps. A delta of 1.0
	// in field units corresponds to exactly this much wall time.
	FrameUnitMs = 1000.0 / 60.0

	// MaxDelta caps frame delta in 60fps units so a stalled loop does
	// not teleport particles when it resumes.
	MaxDelta = 2.0

	DefaultMaxParticles       = 50
	DefaultMaxConnections     = 3
	DefaultConnectionDistance = 120.0
	DefaultMinSpeed           = 0.1
	DefaultMaxSpeed           = 0.5
	DefaultMinSize            = 1.0
	DefaultMaxSize            = 3.0
	DefaultMinOpacity         = 0.3
	DefaultMaxOpacity         = 0.7
	DefaultLineAlpha          = 0.15
)

// Config is the full engine configuration. An Engine takes a Config at
// construction and treats it as immutable; SetConfig merges a Partial
// into a fresh copy rather than mutating the live one.
type Config struct {
	MaxParticles       int     `yaml:"max_particles"`
	MinSpeed           float64 `yaml:"min_speed"`
	MaxSpeed           float64 `yaml:"max_speed"`
	MinSize            float64 `yaml:"min_size"`
	MaxSize            float64 `yaml:"max_size"`
	MinOpacity         float64 `yaml:"min_opacity"`
	MaxOpacity         float64 `yaml:"max_opacity"`
	ConnectionDistance float64 `yaml:"connection_distance"`
	MaxConnections     int     `yaml:"max_connections"`
	LineAlpha          float64 `yaml:"line_alpha"`
	ParticleColor      string  `yaml:"particle_color"`
	LineColor          string  `yaml:"line_color"`
	PixelRatio         float64 `yaml:"pixel_ratio"`
	Seed               int64   `yaml:"seed"`

	// Drift enables perlin-noise perturbation of particle velocity.
	Drift         bool    `yaml:"drift"`
	DriftStrength float64 `yaml:"drift_strength"`

	// ResumeOnVisible controls whether the engine restarts when the
	// page/terminal becomes visible again after a hide.
	ResumeOnVisible bool `yaml:"resume_on_visible"`

	// ResizeDebounce coalesces resize events before a reinit.
	ResizeDebounce time.Duration `yaml:"resize_debounce"`

	// MotionPollInterval and MotionPollJitter govern how often the
	// motion signal is sampled for the destroy-on-zero rule.
	MotionPollInterval time.Duration `yaml:"motion_poll_interval"`
	MotionPollJitter   time.Duration `yaml:"motion_poll_jitter"`
}

// Partial carries optional overrides for SetConfig. Nil fields are
// left at their current effective value.
type Partial struct {
	MaxParticles       *int           `yaml:"max_particles"`
	MinSpeed           *float64       `yaml:"min_speed"`
	MaxSpeed           *float64       `yaml:"max_speed"`
	MinSize            *float64       `yaml:"min_size"`
	MaxSize            *float64       `yaml:"max_size"`
	MinOpacity         *float64       `yaml:"min_opacity"`
	MaxOpacity         *float64       `yaml:"max_opacity"`
	ConnectionDistance *float64       `yaml:"connection_distance"`
	MaxConnections     *int           `yaml:"max_connections"`
	LineAlpha          *float64       `yaml:"line_alpha"`
	ParticleColor      *string        `yaml:"particle_color"`
	LineColor          *string        `yaml:"line_color"`
	PixelRatio         *float64       `yaml:"pixel_ratio"`
	Seed               *int64         `yaml:"seed"`
	Drift              *bool          `yaml:"drift"`
	DriftStrength      *float64       `yaml:"drift_strength"`
	ResumeOnVisible    *bool          `yaml:"resume_on_visible"`
	ResizeDebounce     *time.Duration `yaml:"resize_debounce"`
	MotionPollInterval *time.Duration `yaml:"motion_poll_interval"`
	MotionPollJitter   *time.Duration `yaml:"motion_poll_jitter"`
}

func DefaultConfig() Config {
	return Config{
		MaxParticles:       DefaultMaxParticles,
		MinSpeed:           DefaultMinSpeed,
		MaxSpeed:           DefaultMaxSpeed,
		MinSize:            DefaultMinSize,
		MaxSize:            DefaultMaxSize,
		MinOpacity:         DefaultMinOpacity,
		MaxOpacity:         DefaultMaxOpacity,
		ConnectionDistance: DefaultConnectionDistance,
		MaxConnections:     DefaultMaxConnections,
		LineAlpha:          DefaultLineAlpha,
		ParticleColor:      "#4ade80",
		LineColor:          "#4ade80",
		PixelRatio:         1.0,
		ResumeOnVisible:    true,
		ResizeDebounce:     250 * time.Millisecond,
		MotionPollInterval: time.Second,
	}
}

func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c Config) Validate() error {
	if c.MaxParticles < 0 {
		return fmt.Errorf("max_particles must be non-negative, got %d", c.MaxParticles)
	}
	if c.MaxConnections < 0 {
		return fmt.Errorf("max_connections must be non-negative, got %d", c.MaxConnections)
	}
	if c.MinSpeed > c.MaxSpeed {
		return fmt.Errorf("min_speed %.3f exceeds max_speed %.3f", c.MinSpeed, c.MaxSpeed)
	}
	if c.MinSize > c.MaxSize {
		return fmt.Errorf("min_size %.3f exceeds max_size %.3f", c.MinSize, c.MaxSize)
	}
	if c.MinOpacity > c.MaxOpacity {
		return fmt.Errorf("min_opacity %.3f exceeds max_opacity %.3f", c.MinOpacity, c.MaxOpacity)
	}
	if c.ConnectionDistance < 0 {
		return fmt.Errorf("connection_distance must be non-negative, got %.3f", c.ConnectionDistance)
	}
	if c.PixelRatio <= 0 {
		return fmt.Errorf("pixel_ratio must be positive, got %.3f", c.PixelRatio)
	}
	return nil
}

// Merge returns a copy of c with every non-nil field of p applied.
// The receiver is not modified.
func (c Config) Merge(p Partial) Config {
	out := c
	if p.MaxParticles != nil {
		out.MaxParticles = *p.MaxParticles
	}
	if p.MinSpeed != nil {
		out.MinSpeed = *p.MinSpeed
	}
	if p.MaxSpeed != nil {
		out.MaxSpeed = *p.MaxSpeed
	}
	if p.MinSize != nil {
		out.MinSize = *p.MinSize
	}
	if p.MaxSize != nil {
		out.MaxSize = *p.MaxSize
	}
	if p.MinOpacity != nil {
		out.MinOpacity = *p.MinOpacity
	}
	if p.MaxOpacity != nil {
		out.MaxOpacity = *p.MaxOpacity
	}
	if p.ConnectionDistance != nil {
		out.ConnectionDistance = *p.ConnectionDistance
	}
	if p.MaxConnections != nil {
		out.MaxConnections = *p.MaxConnections
	}
	if p.LineAlpha != nil {
		out.LineAlpha = *p.LineAlpha
	}
	if p.ParticleColor != nil {
		out.ParticleColor = *p.ParticleColor
	}
	if p.LineColor != nil {
		out.LineColor = *p.LineColor
	}
	if p.PixelRatio != nil {
		out.PixelRatio = *p.PixelRatio
	}
	if p.Seed != nil {
		out.Seed = *p.Seed
	}
	if p.Drift != nil {
		out.Drift = *p.Drift
	}
	if p.DriftStrength != nil {
		out.DriftStrength = *p.DriftStrength
	}
	if p.ResumeOnVisible != nil {
		out.ResumeOnVisible = *p.ResumeOnVisible
	}
	if p.ResizeDebounce != nil {
		out.ResizeDebounce = *p.ResizeDebounce
	}
	if p.MotionPollInterval != nil {
		out.MotionPollInterval = *p.MotionPollInterval
	}
	if p.MotionPollJitter != nil {
		out.MotionPollJitter = *p.MotionPollJitter
	}
	return out
}

// ParticleBudget returns the particle count for a surface of the given
// dimensions: density scales with area but is capped.
func (c Config) ParticleBudget(width, height float64) int {
	n := int(width * height / AreaPerParticle)
	if n > c.MaxParticles {
		n = c.MaxParticles
	}
	if n < 0 {
		n = 0
	}
	return n
}
