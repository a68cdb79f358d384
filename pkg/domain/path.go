package domain

import "github.com/weldworks/weldr/pkg/geometry"

// OperationClass categorizes a path and selects its default weld
// parameters and pause behavior.
type OperationClass string

const (
	// ClassNormal is a standard structural weld.
	ClassNormal OperationClass = "normal"
	// ClassLight is a lighter frangible weld intended to be broken later.
	ClassLight OperationClass = "light"
	// ClassStop marks a path that requires operator intervention before
	// its points are welded.
	ClassStop OperationClass = "stop"
	// ClassPipette marks a fluid-handling location that pauses the run.
	ClassPipette OperationClass = "pipette"
)

// Valid reports whether c is one of the known operation classes.
func (c OperationClass) Valid() bool {
	switch c {
	case ClassNormal, ClassLight, ClassStop, ClassPipette:
		return true
	}
	return false
}

// Pausing reports whether paths of this class request an operator pause
// before their first point.
func (c OperationClass) Pausing() bool {
	return c == ClassStop || c == ClassPipette
}

// Overrides holds optional per-path parameter overrides. A nil field
// falls back to the global default for the path's operation class.
type Overrides struct {
	Temperature   *float64 `yaml:"temperature" json:"temperature,omitempty"`
	DwellTime     *float64 `yaml:"dwell_time" json:"dwell_time,omitempty"`
	ContactHeight *float64 `yaml:"contact_height" json:"contact_height,omitempty"`
	Spacing       *float64 `yaml:"spacing" json:"spacing,omitempty"`
}

// Path is one drawing element reduced to a polyline, with the metadata
// every sampled point inherits. Paths are immutable once produced by a
// parser.
type Path struct {
	ID           string
	Class        OperationClass
	Vertices     geometry.Polyline
	Overrides    Overrides
	PauseMessage string
	// OrderHint stabilizes processing order among paths that carry no
	// explicit sequence index in the source drawing.
	OrderHint float64
}

// PathModel is a drawing reduced to an ordered list of paths, as
// produced by the parsing layer.
type PathModel struct {
	Source string
	Paths  []Path
}
