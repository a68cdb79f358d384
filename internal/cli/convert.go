package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	weldr "github.com/weldworks/weldr"
	"github.com/weldworks/weldr/internal/logging"
	"github.com/weldworks/weldr/pkg/config"
	"github.com/weldworks/weldr/pkg/domain"
	"github.com/weldworks/weldr/pkg/emitters/anim"
	"github.com/weldworks/weldr/pkg/emitters/gcode"
	gifemit "github.com/weldworks/weldr/pkg/emitters/gif"
	"github.com/weldworks/weldr/pkg/parsers/dxf"
	"github.com/weldworks/weldr/pkg/parsers/svg"
	"github.com/weldworks/weldr/pkg/ports"
)

// ConvertOptions contains all the configuration for the convert command.
type ConvertOptions struct {
	InputPath     string
	OutputPath    string
	AnimationPath string
	GIFPath       string
	ConfigPath    string
	Strategy      string
	Skip          int
	Spacing       float64
	Debug         bool
}

// Convert runs one drawing-to-instruction-stream conversion.
func Convert(opts ConvertOptions) error {
	logger := newLogger(opts.Debug)

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	model, err := parseInput(opts.InputPath)
	if err != nil {
		return err
	}
	logger.Info("drawing parsed", "source", model.Source, "paths", len(model.Paths))

	if opts.OutputPath == "" {
		base := strings.TrimSuffix(opts.InputPath, filepath.Ext(opts.InputPath))
		opts.OutputPath = base + ".gcode"
	}

	out, err := os.Create(opts.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	stats := &statsConsumer{}
	consumers := []ports.Consumer{gcode.New(out, cfg), stats}

	var closers []func() error
	if opts.AnimationPath != "" {
		f, err := os.Create(opts.AnimationPath)
		if err != nil {
			return fmt.Errorf("failed to create animation file: %w", err)
		}
		closers = append(closers, f.Close)
		consumers = append(consumers, anim.New(f, cfg))
	}
	if opts.GIFPath != "" {
		f, err := os.Create(opts.GIFPath)
		if err != nil {
			return fmt.Errorf("failed to create gif file: %w", err)
		}
		closers = append(closers, f.Close)
		consumers = append(consumers, gifemit.New(f, cfg))
	}
	defer func() {
		for _, c := range closers {
			c()
		}
	}()

	runOpts := []weldr.Option{weldr.WithConsumers(consumers...), weldr.WithLogger(logger)}
	if opts.Strategy != "" {
		runOpts = append(runOpts, weldr.WithStrategy(opts.Strategy))
	}
	if opts.Skip > 0 {
		runOpts = append(runOpts, weldr.WithSkipBaseDistance(opts.Skip))
	}
	if opts.Spacing > 0 {
		runOpts = append(runOpts, weldr.WithSpacing(opts.Spacing))
	}

	if err := weldr.New(cfg, runOpts...).Run(model); err != nil {
		return err
	}

	printSummary(opts, stats)
	return nil
}

func parseInput(path string) (domain.PathModel, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".dxf":
		f, err := os.Open(path)
		if err != nil {
			return domain.PathModel{}, fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		return dxf.Parse(f)
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return domain.PathModel{}, fmt.Errorf("failed to open input: %w", err)
		}
		return svg.Parse(data)
	}
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return logging.New(level)
}

// statsConsumer collects run statistics for the terminal summary.
// Interleaving strategies revisit paths, so distinct paths are tracked
// by ID rather than by boundary-event count.
type statsConsumer struct {
	seen   map[string]bool
	points int
	pauses int
	bounds domain.Bounds
}

func (s *statsConsumer) Name() string { return "stats" }

func (s *statsConsumer) OnEvent(ev domain.Event) error {
	switch ev.Kind {
	case domain.EventPathStart:
		if s.seen == nil {
			s.seen = map[string]bool{}
		}
		s.seen[ev.PathID] = true
	case domain.EventPointVisit:
		s.points++
		s.bounds.Include(ev.Point.Position)
	case domain.EventPauseRequested:
		s.pauses++
	}
	return nil
}

func (s *statsConsumer) Finalize() error { return nil }
