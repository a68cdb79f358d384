package sequence

import "github.com/weldworks/weldr/pkg/domain"

// binaryPlanner visits each path in bisection order: first point, last
// point, then the midpoint of the whole span, then the midpoints of the
// two halves, breadth first. Like skip it spreads early welds apart, but
// with a recursive-halving tie-break instead of a fixed stride.
type binaryPlanner struct{}

func (binaryPlanner) Name() string { return StrategyBinary }

func (binaryPlanner) Plan(paths [][]domain.WeldPoint) (domain.SequencedPointList, error) {
	out := make(domain.SequencedPointList, 0, totalPoints(paths))
	for _, points := range paths {
		for _, idx := range bisectionOrder(len(points)) {
			out = append(out, points[idx])
		}
	}
	return out, nil
}

// bisectionOrder returns the visit order for n sequential indices.
func bisectionOrder(n int) []int {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []int{0}
	case n == 2:
		return []int{0, 1}
	}

	order := []int{0, n - 1}

	// Breadth-first queue of index spans still containing unvisited
	// interior points.
	spans := [][2]int{{0, n - 1}}
	for len(spans) > 0 {
		span := spans[0]
		spans = spans[1:]

		start, end := span[0], span[1]
		if end-start <= 1 {
			continue
		}
		mid := (start + end) / 2
		order = append(order, mid)
		if mid-start > 1 {
			spans = append(spans, [2]int{start, mid})
		}
		if end-mid > 1 {
			spans = append(spans, [2]int{mid, end})
		}
	}
	return order
}
