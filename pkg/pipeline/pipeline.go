// Package pipeline implements the two-pass event pipeline.
//
// A run first records the sequenced point list into an immutable event
// list while folding every visited coordinate into the spatial bounds
// (recording pass), then replays the identical list with the derived
// centering offset applied to each point visit, broadcasting every event
// to all registered consumers in order (replay pass). Recording once and
// folding twice guarantees both passes see byte-identical event content.
package pipeline

import (
	"log/slog"

	"github.com/weldworks/weldr/internal/logging"
	"github.com/weldworks/weldr/pkg/domain"
	"github.com/weldworks/weldr/pkg/geometry"
	"github.com/weldworks/weldr/pkg/ports"
)

// Pipeline drives one recording pass and one replay pass. A Pipeline is
// single-use per run; bounds are never reused across runs.
type Pipeline struct {
	target    geometry.Point
	consumers []ports.Consumer
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the pipeline logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a pipeline centering output on target and broadcasting to
// the given consumers. Registration order is dispatch order.
func New(target geometry.Point, consumers []ports.Consumer, opts ...Option) *Pipeline {
	p := &Pipeline{
		target:    target,
		consumers: consumers,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes both passes. It fails with domain.ErrEmptySequence before
// any consumer sees an event when the sequence contains no points, and
// with a domain.ConsumerError carrying the last fully dispatched event
// index when a consumer fails mid-replay.
func (p *Pipeline) Run(seq domain.SequencedPointList) error {
	events, bounds := Record(seq)
	if bounds.Empty() {
		return domain.ErrEmptySequence
	}

	offset := bounds.OffsetTo(p.target)
	p.logger.Info("recording pass complete",
		"events", len(events),
		"points", bounds.Points,
		"offset_x", offset.DX,
		"offset_y", offset.DY,
	)

	for i, ev := range events {
		if ev.Kind == domain.EventPointVisit {
			ev.Point = ev.Point.Translate(offset.DX, offset.DY)
		}
		for _, c := range p.consumers {
			if err := c.OnEvent(ev); err != nil {
				return &domain.ConsumerError{Consumer: c.Name(), EventIndex: i - 1, Err: err}
			}
		}
	}

	for _, c := range p.consumers {
		if err := c.Finalize(); err != nil {
			return &domain.ConsumerError{Consumer: c.Name(), EventIndex: len(events) - 1, Err: err}
		}
	}

	p.logger.Info("replay pass complete", "consumers", len(p.consumers))
	return nil
}

// Record synthesizes the event sequence for one sequenced point list and
// folds every visit into the returned bounds. It is a pure function: the
// same input always yields the same event list, and replaying never
// re-derives events.
//
// Path boundary events are emitted whenever the source path changes. A
// pause request is emitted once per pausing path, immediately before its
// first visited point.
func Record(seq domain.SequencedPointList) ([]domain.Event, domain.Bounds) {
	var (
		events  []domain.Event
		bounds  domain.Bounds
		current string
		inPath  bool
		paused  = map[string]bool{}
	)

	for _, pt := range seq {
		if !inPath || pt.PathID != current {
			if inPath {
				events = append(events, domain.PathEnd(current))
			}
			current = pt.PathID
			inPath = true
			events = append(events, domain.PathStart(current))
		}
		if pt.Class.Pausing() && !paused[pt.PathID] {
			paused[pt.PathID] = true
			events = append(events, domain.PauseRequested(pt.PathID, pt.PauseMessage))
		}
		events = append(events, domain.PointVisit(pt))
		bounds.Include(pt.Position)
	}

	if inPath {
		events = append(events, domain.PathEnd(current))
	}
	events = append(events, domain.SequenceComplete())
	return events, bounds
}
