// Package config loads and validates the weldr configuration file.
//
// The configuration supplies the global per-class weld defaults that the
// sampler resolves overrides against, the machine geometry that yields
// the work-surface target center, and the knobs for sequencing, motion,
// and animation output. It is read once at startup and passed by value
// into the components that need it; nothing reads it afterwards.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/weldworks/weldr/pkg/domain"
	"github.com/weldworks/weldr/pkg/geometry"
)

// WeldClass holds the default process parameters for one operation class.
type WeldClass struct {
	Temperature   float64 `yaml:"temperature"`
	DwellTime     float64 `yaml:"dwell_time"`
	ContactHeight float64 `yaml:"contact_height"`
	Spacing       float64 `yaml:"spacing"`
}

// Machine describes the work surface.
type Machine struct {
	BedSizeX float64 `yaml:"bed_size_x"`
	BedSizeY float64 `yaml:"bed_size_y"`
}

// TargetCenter returns the work-surface center the pattern is centered on.
func (m Machine) TargetCenter() geometry.Point {
	return geometry.Point{X: m.BedSizeX / 2, Y: m.BedSizeY / 2}
}

// Movement holds motion parameters shared by all weld classes.
type Movement struct {
	TravelHeight float64 `yaml:"travel_height"`
	ZSpeed       float64 `yaml:"z_speed"`
	XYSpeed      float64 `yaml:"xy_speed"`
}

// Temperatures holds machine-level temperatures outside any weld class.
type Temperatures struct {
	Bed      float64 `yaml:"bed"`
	Cooldown float64 `yaml:"cooldown"`
}

// Sequencing selects and parameterizes the point ordering strategy.
type Sequencing struct {
	Strategy          string `yaml:"strategy"`
	SkipBaseDistance  int    `yaml:"skip_base_distance"`
	FarthestMaxPoints int    `yaml:"farthest_max_points"`
}

// Animation holds timing for the animated outputs.
type Animation struct {
	TimeBetweenWelds float64 `yaml:"time_between_welds"`
	PauseTime        float64 `yaml:"pause_time"`
	MinDuration      float64 `yaml:"min_duration"`
}

// Output holds instruction-stream options.
type Output struct {
	// FilmInsertionPause inserts an operator pause after heat-up so
	// plastic film can be placed before the first weld.
	FilmInsertionPause bool `yaml:"film_insertion_pause"`
}

// Config is the full weldr configuration.
type Config struct {
	Machine      Machine                             `yaml:"machine"`
	Movement     Movement                            `yaml:"movement"`
	Temperatures Temperatures                        `yaml:"temperatures"`
	Welds        map[domain.OperationClass]WeldClass `yaml:"welds"`
	Sequencing   Sequencing                          `yaml:"sequencing"`
	Animation    Animation                           `yaml:"animation"`
	Output       Output                              `yaml:"output"`
}

// Default returns the built-in configuration, tuned for a 250x220 mm bed.
func Default() Config {
	return Config{
		Machine:      Machine{BedSizeX: 250, BedSizeY: 220},
		Movement:     Movement{TravelHeight: 2.0, ZSpeed: 300, XYSpeed: 3000},
		Temperatures: Temperatures{Bed: 35, Cooldown: 0},
		Welds: map[domain.OperationClass]WeldClass{
			domain.ClassNormal:  {Temperature: 170, DwellTime: 1.0, ContactHeight: 0.10, Spacing: 2.0},
			domain.ClassLight:   {Temperature: 150, DwellTime: 0.5, ContactHeight: 0.15, Spacing: 2.0},
			domain.ClassStop:    {Temperature: 170, DwellTime: 1.0, ContactHeight: 0.10, Spacing: 2.0},
			domain.ClassPipette: {Temperature: 140, DwellTime: 0.5, ContactHeight: 0.05, Spacing: 2.0},
		},
		Sequencing: Sequencing{Strategy: "skip", SkipBaseDistance: 5, FarthestMaxPoints: 2000},
		Animation:  Animation{TimeBetweenWelds: 0.5, PauseTime: 5.0, MinDuration: 10.0},
		Output:     Output{FilmInsertionPause: true},
	}
}

// Load reads a YAML configuration file layered over the defaults. A
// missing file is not an error; the defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Defaults returns the resolved default parameters for a class. Unknown
// classes fall back to the normal class so a point is never left without
// concrete parameters.
func (c Config) Defaults(class domain.OperationClass) domain.WeldParams {
	wc, ok := c.Welds[class]
	if !ok {
		wc = c.Welds[domain.ClassNormal]
	}
	return domain.WeldParams{
		Temperature:   wc.Temperature,
		DwellTime:     wc.DwellTime,
		ContactHeight: wc.ContactHeight,
		Spacing:       wc.Spacing,
	}
}

// Validate checks value ranges. It reports the first violation found.
func (c Config) Validate() error {
	if c.Machine.BedSizeX <= 0 || c.Machine.BedSizeY <= 0 {
		return fmt.Errorf("machine bed size must be positive, got %gx%g", c.Machine.BedSizeX, c.Machine.BedSizeY)
	}
	if c.Movement.TravelHeight < 0 {
		return fmt.Errorf("movement.travel_height must be non-negative, got %g", c.Movement.TravelHeight)
	}
	if c.Temperatures.Bed < 0 || c.Temperatures.Bed > 150 {
		return fmt.Errorf("temperatures.bed must be between 0 and 150, got %g", c.Temperatures.Bed)
	}
	for class, wc := range c.Welds {
		if !class.Valid() {
			return fmt.Errorf("unknown weld class %q", class)
		}
		if wc.Spacing <= 0 {
			return fmt.Errorf("welds.%s.spacing must be positive, got %g", class, wc.Spacing)
		}
		if wc.DwellTime < 0 {
			return fmt.Errorf("welds.%s.dwell_time must be non-negative, got %g", class, wc.DwellTime)
		}
		if wc.Temperature < 0 || wc.Temperature > 300 {
			return fmt.Errorf("welds.%s.temperature must be between 0 and 300, got %g", class, wc.Temperature)
		}
	}
	if c.Sequencing.SkipBaseDistance < 2 {
		return fmt.Errorf("sequencing.skip_base_distance must be at least 2, got %d", c.Sequencing.SkipBaseDistance)
	}
	if c.Sequencing.FarthestMaxPoints <= 0 {
		return fmt.Errorf("sequencing.farthest_max_points must be positive, got %d", c.Sequencing.FarthestMaxPoints)
	}
	if c.Animation.TimeBetweenWelds <= 0 {
		return fmt.Errorf("animation.time_between_welds must be positive, got %g", c.Animation.TimeBetweenWelds)
	}
	return nil
}
