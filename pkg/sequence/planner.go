// Package sequence reorders sampled weld points to control thermal
// buildup. Every strategy is a bijection on the input point set: points
// are reordered, never added, dropped, or duplicated.
package sequence

import (
	"fmt"

	"github.com/weldworks/weldr/pkg/config"
	"github.com/weldworks/weldr/pkg/domain"
)

// Strategy names accepted by New.
const (
	StrategyLinear   = "linear"
	StrategySkip     = "skip"
	StrategyBinary   = "binary"
	StrategyFarthest = "farthest"
)

// Planner produces the final visitation order from the per-path point
// lists emitted by the sampler.
type Planner interface {
	// Name returns the strategy identifier.
	Name() string
	// Plan flattens the per-path lists into one sequenced list.
	Plan(paths [][]domain.WeldPoint) (domain.SequencedPointList, error)
}

// New constructs the planner selected by the sequencing configuration.
// Parameter violations are reported up front, before any planning runs.
func New(seq config.Sequencing) (Planner, error) {
	switch seq.Strategy {
	case StrategyLinear:
		return linearPlanner{}, nil
	case StrategySkip, "":
		if seq.SkipBaseDistance < 2 {
			return nil, &domain.StrategyParameterError{
				Strategy: StrategySkip,
				Reason:   fmt.Sprintf("skip base distance must be at least 2, got %d", seq.SkipBaseDistance),
			}
		}
		return skipPlanner{n: seq.SkipBaseDistance}, nil
	case StrategyBinary:
		return binaryPlanner{}, nil
	case StrategyFarthest:
		return farthestPlanner{maxPoints: seq.FarthestMaxPoints}, nil
	default:
		return nil, &domain.StrategyParameterError{
			Strategy: seq.Strategy,
			Reason:   "unknown strategy",
		}
	}
}

func totalPoints(paths [][]domain.WeldPoint) int {
	n := 0
	for _, p := range paths {
		n += len(p)
	}
	return n
}

func flatten(paths [][]domain.WeldPoint) domain.SequencedPointList {
	out := make(domain.SequencedPointList, 0, totalPoints(paths))
	for _, p := range paths {
		out = append(out, p...)
	}
	return out
}
