package domain

import "github.com/weldworks/weldr/pkg/geometry"

// WeldParams are the fully resolved process parameters for one weld
// point. Defaults have already been applied; no field is optional.
type WeldParams struct {
	Temperature   float64 `json:"temperature"`
	DwellTime     float64 `json:"dwell_time"`
	ContactHeight float64 `json:"contact_height"`
	Spacing       float64 `json:"spacing"`
}

// WeldPoint is a single sampled contact location. It is self-describing:
// parameters are resolved at sampling time so downstream consumers never
// consult configuration. Never mutated after creation.
type WeldPoint struct {
	Position     geometry.Point
	Class        OperationClass
	Params       WeldParams
	PauseMessage string

	// PathID and Index trace the point back to its source path and its
	// position within that path's sampled list.
	PathID string
	Index  int
}

// Translate returns a copy of the point moved by (dx, dy). Traceability
// fields are preserved.
func (p WeldPoint) Translate(dx, dy float64) WeldPoint {
	p.Position = p.Position.Add(dx, dy)
	return p
}

// SequencedPointList is the full point set from all paths in final
// visitation order. It is always a permutation of the sampled set.
type SequencedPointList []WeldPoint
