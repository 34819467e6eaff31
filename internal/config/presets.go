package config

var Presets = map[string]*Config{
	"classic": {
		Planets: 4, MaxMass: 1.0, Spiral: 0, Integrator: "rk4", Scheme: "level",
		StepSize: 10.0, MaxSteps: 3000, Attempts: 1000, Gliders: 100, Seed: 23,
		Bounds: BoundsConfig{MaxX: 1080, MaxY: 720},
	},
	"spiral-in": {
		Planets: 4, MaxMass: 1.0, Spiral: 0.05, Integrator: "rk4", Scheme: "level",
		StepSize: 10.0, MaxSteps: 3000, Attempts: 1000, Gliders: 60, Seed: 23,
		Bounds: BoundsConfig{MaxX: 1080, MaxY: 720},
	},
	"spiral-out": {
		Planets: 4, MaxMass: 1.0, Spiral: -0.05, Integrator: "rk4", Scheme: "level",
		StepSize: 10.0, MaxSteps: 3000, Attempts: 1000, Gliders: 60, Seed: 23,
		Bounds: BoundsConfig{MaxX: 1080, MaxY: 720},
	},
	"dense": {
		Planets: 8, MaxMass: 0.8, Spiral: 0.02, Integrator: "rk4", Scheme: "level",
		StepSize: 6.0, MaxSteps: 4000, Attempts: 1500, Gliders: 120, Seed: 23,
		Bounds: BoundsConfig{MaxX: 1080, MaxY: 720},
	},
	"sparse": {
		Planets: 2, MaxMass: 1.0, Spiral: 0.01, Integrator: "rk4", Scheme: "level",
		StepSize: 10.0, MaxSteps: 5000, Attempts: 1000, Gliders: 40, Seed: 23,
		Bounds: BoundsConfig{MinX: -500, MinY: -500, MaxX: 1500, MaxY: 1200},
	},
	"contour": {
		Planets: 4, MaxMass: 1.0, Spiral: 0.02, Integrator: "midpoint", Scheme: "contour",
		StepSize: 6.0, MaxSteps: 3000, Attempts: 1000, Gliders: 100, Seed: 23,
		Bounds: BoundsConfig{MaxX: 1080, MaxY: 720},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
