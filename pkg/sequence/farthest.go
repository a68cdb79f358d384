package sequence

import (
	"fmt"
	"math"
	"sort"

	"github.com/weldworks/weldr/pkg/domain"
)

// farthestPlanner greedily visits, at every step, the unvisited point
// whose distance to the nearest already-visited point is largest. This
// gives the best global thermal spreading of all strategies but costs
// O(n²), so it is gated behind a configured point ceiling instead of
// silently degrading on large inputs.
type farthestPlanner struct {
	maxPoints int
}

func (farthestPlanner) Name() string { return StrategyFarthest }

func (p farthestPlanner) Plan(paths [][]domain.WeldPoint) (domain.SequencedPointList, error) {
	all := flatten(paths)
	if p.maxPoints > 0 && len(all) > p.maxPoints {
		return nil, &domain.StrategyParameterError{
			Strategy: StrategyFarthest,
			Reason:   fmt.Sprintf("%d points exceeds the configured ceiling of %d", len(all), p.maxPoints),
		}
	}
	if len(all) <= 1 {
		return all, nil
	}

	// Candidates are scanned in (path ID, index) order so that distance
	// ties always resolve to the lowest traceability key.
	scan := make([]int, len(all))
	for i := range scan {
		scan[i] = i
	}
	sort.SliceStable(scan, func(a, b int) bool {
		pa, pb := all[scan[a]], all[scan[b]]
		if pa.PathID != pb.PathID {
			return pa.PathID < pb.PathID
		}
		return pa.Index < pb.Index
	})

	out := make(domain.SequencedPointList, 0, len(all))
	visited := make([]bool, len(all))

	// minDist[i] is the distance from point i to the nearest visited
	// point, maintained incrementally as points are visited.
	minDist := make([]float64, len(all))
	for i := range minDist {
		minDist[i] = math.Inf(1)
	}

	visit := func(idx int) {
		visited[idx] = true
		out = append(out, all[idx])
		for i := range all {
			if visited[i] {
				continue
			}
			if d := all[i].Position.Distance(all[idx].Position); d < minDist[i] {
				minDist[i] = d
			}
		}
	}

	// The first point of the first path anchors the traversal.
	visit(0)

	for len(out) < len(all) {
		best := -1
		for _, i := range scan {
			if visited[i] {
				continue
			}
			if best == -1 || minDist[i] > minDist[best] {
				best = i
			}
		}
		visit(best)
	}
	return out, nil
}
