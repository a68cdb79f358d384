package domain

import (
	"errors"
	"fmt"
)

// ErrEmptySequence is returned when sampling produced no points at all,
// e.g. a path model with no paths. The pipeline fails before replay; no
// consumer output is produced.
var ErrEmptySequence = errors.New("empty sequence: no points to weld")

// DegeneratePathError is returned when a path carries zero vertices.
type DegeneratePathError struct {
	PathID string
}

func (e *DegeneratePathError) Error() string {
	return fmt.Sprintf("path %q has no vertices", e.PathID)
}

// StrategyParameterError is returned when a sequencing strategy is
// requested with parameters it cannot run under.
type StrategyParameterError struct {
	Strategy string
	Reason   string
}

func (e *StrategyParameterError) Error() string {
	return fmt.Sprintf("strategy %q: %s", e.Strategy, e.Reason)
}

// ConsumerError is returned when an output consumer fails during replay
// or finalization. EventIndex is the index of the last event that was
// dispatched successfully to every consumer (-1 if none were), so the
// caller can report precisely what was and was not emitted.
type ConsumerError struct {
	Consumer   string
	EventIndex int
	Err        error
}

func (e *ConsumerError) Error() string {
	return fmt.Sprintf("consumer %q failed after event %d: %v", e.Consumer, e.EventIndex, e.Err)
}

func (e *ConsumerError) Unwrap() error { return e.Err }
