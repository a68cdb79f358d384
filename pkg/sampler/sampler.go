// Package sampler converts paths into evenly spaced weld points.
//
// Each path's polyline is walked by arc length: a point is emitted every
// time the accumulated distance since the last emitted point reaches the
// resolved spacing, and every distinct original vertex is emitted
// unconditionally so corners and curve extrema are never lost. A vertex
// repeated consecutively (a zero-length segment) is emitted once; two
// welds at the same coordinate would double the heat input without
// adding a contact. Per-path parameter overrides are resolved against
// the configured class defaults here, so every point downstream is
// fully self-describing.
package sampler

import (
	"sort"

	"github.com/weldworks/weldr/pkg/config"
	"github.com/weldworks/weldr/pkg/domain"
	"github.com/weldworks/weldr/pkg/geometry"
)

// interior samples that would land on a vertex are dropped in favor of
// the vertex itself.
const arcEpsilon = 1e-9

// Sampler emits weld points for paths using the configured class
// defaults. Spacing, when positive, overrides the class default spacing
// for every path that carries no explicit spacing override of its own.
type Sampler struct {
	Config  config.Config
	Spacing float64
}

// New returns a sampler over the given configuration.
func New(cfg config.Config) *Sampler {
	return &Sampler{Config: cfg}
}

// SampleModel samples every path of the model in declaration order,
// stabilized by each path's order hint. The result preserves the
// per-path grouping the sequence planner operates on.
func (s *Sampler) SampleModel(model domain.PathModel) ([][]domain.WeldPoint, error) {
	paths := make([]domain.Path, len(model.Paths))
	copy(paths, model.Paths)
	sort.SliceStable(paths, func(i, j int) bool {
		return paths[i].OrderHint < paths[j].OrderHint
	})

	out := make([][]domain.WeldPoint, 0, len(paths))
	for _, path := range paths {
		points, err := s.Sample(path)
		if err != nil {
			return nil, err
		}
		out = append(out, points)
	}
	return out, nil
}

// Sample emits the weld points for a single path. A path with no
// vertices is rejected; a path with a single vertex or zero total length
// yields exactly one point.
func (s *Sampler) Sample(path domain.Path) ([]domain.WeldPoint, error) {
	if len(path.Vertices) == 0 {
		return nil, &domain.DegeneratePathError{PathID: path.ID}
	}

	params := s.resolve(path)

	if len(path.Vertices) < 2 || path.Vertices.Length() == 0 {
		return []domain.WeldPoint{s.point(path, params, path.Vertices[0], 0)}, nil
	}

	positions := samplePolyline(path.Vertices, params.Spacing)
	points := make([]domain.WeldPoint, len(positions))
	for i, pos := range positions {
		points[i] = s.point(path, params, pos, i)
	}
	return points, nil
}

func (s *Sampler) point(path domain.Path, params domain.WeldParams, pos geometry.Point, index int) domain.WeldPoint {
	return domain.WeldPoint{
		Position:     pos,
		Class:        path.Class,
		Params:       params,
		PauseMessage: path.PauseMessage,
		PathID:       path.ID,
		Index:        index,
	}
}

// resolve applies the override/fallback chain: path override first, then
// the sampler-wide spacing (spacing only), then the class default.
func (s *Sampler) resolve(path domain.Path) domain.WeldParams {
	params := s.Config.Defaults(path.Class)
	if s.Spacing > 0 {
		params.Spacing = s.Spacing
	}
	o := path.Overrides
	if o.Temperature != nil {
		params.Temperature = *o.Temperature
	}
	if o.DwellTime != nil {
		params.DwellTime = *o.DwellTime
	}
	if o.ContactHeight != nil {
		params.ContactHeight = *o.ContactHeight
	}
	if o.Spacing != nil {
		params.Spacing = *o.Spacing
	}
	return params
}

// samplePolyline walks the polyline emitting every vertex plus
// interpolated points at exact arc-length multiples of spacing within
// each segment. The arc-length accumulator resets at every vertex, so
// consecutive emitted points are never more than spacing apart.
// Zero-length segments contribute no second emission of their vertex.
func samplePolyline(pl geometry.Polyline, spacing float64) []geometry.Point {
	out := []geometry.Point{pl[0]}
	for i := 1; i < len(pl); i++ {
		a, b := pl[i-1], pl[i]
		segLen := a.Distance(b)
		if segLen > spacing {
			for k := 1; float64(k)*spacing < segLen-arcEpsilon; k++ {
				t := float64(k) * spacing / segLen
				out = append(out, a.Lerp(b, t))
			}
		}
		if segLen > 0 {
			out = append(out, b)
		}
	}
	return out
}
