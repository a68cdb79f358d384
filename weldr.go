// Package weldr converts 2-D vector drawings into a sequenced set of
// point-contact weld operations and broadcasts them to output consumers
// such as the instruction-stream and animation emitters.
//
// The high-level flow is: a parser produces a domain.PathModel, the
// sampler turns each path into evenly spaced weld points, the sequence
// planner reorders them under the selected thermal strategy, and the
// two-pass pipeline records spatial bounds, derives the centering
// offset, and replays the identical event sequence to every consumer.
package weldr

import (
	"log/slog"

	"github.com/weldworks/weldr/internal/logging"
	"github.com/weldworks/weldr/pkg/config"
	"github.com/weldworks/weldr/pkg/domain"
	"github.com/weldworks/weldr/pkg/pipeline"
	"github.com/weldworks/weldr/pkg/ports"
	"github.com/weldworks/weldr/pkg/sampler"
	"github.com/weldworks/weldr/pkg/sequence"
)

// Version is the release version reported by the CLI.
const Version = "0.3.0"

// Runner is the high-level entry point. It wires the sampler, planner,
// and pipeline for one conversion run.
type Runner struct {
	cfg       config.Config
	seq       config.Sequencing
	spacing   float64
	consumers []ports.Consumer
	logger    *slog.Logger
}

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithStrategy overrides the configured sequencing strategy.
func WithStrategy(name string) Option {
	return func(r *Runner) {
		r.seq.Strategy = name
	}
}

// WithSkipBaseDistance overrides the configured skip base distance.
func WithSkipBaseDistance(n int) Option {
	return func(r *Runner) {
		r.seq.SkipBaseDistance = n
	}
}

// WithSpacing overrides the per-class default dot spacing for paths that
// carry no spacing override of their own.
func WithSpacing(s float64) Option {
	return func(r *Runner) {
		r.spacing = s
	}
}

// WithConsumers registers the output consumers. Registration order is
// dispatch order.
func WithConsumers(consumers ...ports.Consumer) Option {
	return func(r *Runner) {
		r.consumers = append(r.consumers, consumers...)
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// New creates a Runner over the given configuration.
func New(cfg config.Config, opts ...Option) *Runner {
	r := &Runner{
		cfg:    cfg,
		seq:    cfg.Sequencing,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes one full conversion: sample, sequence, record, replay.
// It returns nil only when every consumer has finalized; any failure
// aborts the run in its entirety (see the domain error taxonomy).
func (r *Runner) Run(model domain.PathModel) error {
	// Planner construction validates strategy parameters before any
	// sampling work happens.
	planner, err := sequence.New(r.seq)
	if err != nil {
		return err
	}

	smp := sampler.New(r.cfg)
	smp.Spacing = r.spacing
	perPath, err := smp.SampleModel(model)
	if err != nil {
		return err
	}

	seq, err := planner.Plan(perPath)
	if err != nil {
		return err
	}
	r.logger.Info("sequence planned",
		"strategy", planner.Name(),
		"paths", len(perPath),
		"points", len(seq),
	)

	pipe := pipeline.New(r.cfg.Machine.TargetCenter(), r.consumers, pipeline.WithLogger(r.logger))
	return pipe.Run(seq)
}
