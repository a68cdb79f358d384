package sequence

import "github.com/weldworks/weldr/pkg/domain"

// linearPlanner keeps paths and points in their original order. It is
// the baseline strategy: no thermal spreading at all.
type linearPlanner struct{}

func (linearPlanner) Name() string { return StrategyLinear }

func (linearPlanner) Plan(paths [][]domain.WeldPoint) (domain.SequencedPointList, error) {
	return flatten(paths), nil
}
