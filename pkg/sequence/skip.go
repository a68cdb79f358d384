package sequence

import "github.com/weldworks/weldr/pkg/domain"

// skipPlanner groups each path's points into n interleaved passes: pass
// k visits indices k, k+n, k+2n, and so on. All of pass 0 across every
// path is emitted before any of pass 1, which maximizes the index
// distance between consecutively welded points early in the run, when
// the material is coolest.
type skipPlanner struct {
	n int
}

func (skipPlanner) Name() string { return StrategySkip }

func (p skipPlanner) Plan(paths [][]domain.WeldPoint) (domain.SequencedPointList, error) {
	out := make(domain.SequencedPointList, 0, totalPoints(paths))
	for pass := 0; pass < p.n; pass++ {
		for _, points := range paths {
			for i := pass; i < len(points); i += p.n {
				out = append(out, points[i])
			}
		}
	}
	return out, nil
}
