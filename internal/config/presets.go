package config

import "time"

var Presets = map[string]Config{
	"calm": {
		MaxParticles: 30, MinSpeed: 0.05, MaxSpeed: 0.2,
		MinSize: 1.0, MaxSize: 2.5, MinOpacity: 0.3, MaxOpacity: 0.6,
		ConnectionDistance: 140, MaxConnections: 2, LineAlpha: 0.1,
		ParticleColor: "#7dd3fc", LineColor: "#7dd3fc",
		PixelRatio: 1.0, ResumeOnVisible: true,
		ResizeDebounce: 250 * time.Millisecond, MotionPollInterval: time.Second,
	},
	"dense": {
		MaxParticles: 80, MinSpeed: 0.1, MaxSpeed: 0.5,
		MinSize: 1.0, MaxSize: 3.0, MinOpacity: 0.3, MaxOpacity: 0.7,
		ConnectionDistance: 100, MaxConnections: 4, LineAlpha: 0.2,
		ParticleColor: "#4ade80", LineColor: "#4ade80",
		PixelRatio: 1.0, ResumeOnVisible: true,
		ResizeDebounce: 250 * time.Millisecond, MotionPollInterval: time.Second,
	},
	"sparse": {
		MaxParticles: 15, MinSpeed: 0.1, MaxSpeed: 0.4,
		MinSize: 2.0, MaxSize: 4.0, MinOpacity: 0.4, MaxOpacity: 0.7,
		ConnectionDistance: 200, MaxConnections: 2, LineAlpha: 0.12,
		ParticleColor: "#fbbf24", LineColor: "#fbbf24",
		PixelRatio: 1.0, ResumeOnVisible: true,
		ResizeDebounce: 250 * time.Millisecond, MotionPollInterval: time.Second,
	},
	"drift": {
		MaxParticles: 50, MinSpeed: 0.05, MaxSpeed: 0.3,
		MinSize: 1.0, MaxSize: 3.0, MinOpacity: 0.3, MaxOpacity: 0.7,
		ConnectionDistance: 120, MaxConnections: 3, LineAlpha: 0.15,
		ParticleColor: "#c084fc", LineColor: "#c084fc",
		PixelRatio: 1.0, Drift: true, DriftStrength: 0.02,
		ResumeOnVisible: true,
		ResizeDebounce:  250 * time.Millisecond, MotionPollInterval: time.Second,
	},
}

func GetPreset(name string) (Config, bool) {
	cfg, ok := Presets[name]
	return cfg, ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
