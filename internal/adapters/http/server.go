// Package http exposes conversion over HTTP for hosts that prefer a
// service to a CLI. The instruction stream comes back as the response
// body; animations are available through the format query parameter.
package http

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	weldr "github.com/weldworks/weldr"
	"github.com/weldworks/weldr/pkg/config"
	"github.com/weldworks/weldr/pkg/domain"
	"github.com/weldworks/weldr/pkg/emitters/anim"
	"github.com/weldworks/weldr/pkg/emitters/gcode"
	"github.com/weldworks/weldr/pkg/parsers/svg"
	"github.com/weldworks/weldr/pkg/ports"
)

var (
	conversions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "weldr_conversions_total",
		Help: "Conversion requests by outcome.",
	}, []string{"status"})
	pointsEmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "weldr_points_emitted_total",
		Help: "Weld points emitted across all conversions.",
	})
)

// Server handles conversion requests over one shared configuration.
type Server struct {
	cfg    config.Config
	logger *slog.Logger
}

// NewHandler creates the HTTP handler.
func NewHandler(cfg config.Config, logger *slog.Logger) http.Handler {
	s := &Server{cfg: cfg, logger: logger}

	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/convert", s.handleConvert)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// handleConvert accepts an SVG body and responds with the generated
// output. Query parameters: strategy (linear|skip|binary|farthest),
// skip (base distance), spacing (mm), format (gcode|svg).
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 16<<20))
	if err != nil {
		s.fail(w, http.StatusBadRequest, "failed to read request body", err)
		return
	}

	model, err := svg.Parse(body)
	if err != nil {
		s.fail(w, http.StatusBadRequest, "failed to parse drawing", err)
		return
	}

	var (
		buf      bytes.Buffer
		consumer ports.Consumer
		mime     string
	)
	switch r.URL.Query().Get("format") {
	case "", "gcode":
		consumer = gcode.New(&buf, s.cfg)
		mime = "text/x.gcode"
	case "svg":
		consumer = anim.New(&buf, s.cfg)
		mime = "image/svg+xml"
	default:
		s.fail(w, http.StatusBadRequest, "unknown output format", nil)
		return
	}

	counter := &countingConsumer{}
	opts := []weldr.Option{weldr.WithConsumers(consumer, counter), weldr.WithLogger(s.logger)}
	if v := r.URL.Query().Get("strategy"); v != "" {
		opts = append(opts, weldr.WithStrategy(v))
	}
	if v := r.URL.Query().Get("skip"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.fail(w, http.StatusBadRequest, "invalid skip parameter", err)
			return
		}
		opts = append(opts, weldr.WithSkipBaseDistance(n))
	}
	if v := r.URL.Query().Get("spacing"); v != "" {
		sp, err := strconv.ParseFloat(v, 64)
		if err != nil {
			s.fail(w, http.StatusBadRequest, "invalid spacing parameter", err)
			return
		}
		opts = append(opts, weldr.WithSpacing(sp))
	}

	if err := weldr.New(s.cfg, opts...).Run(model); err != nil {
		status := http.StatusInternalServerError
		var strategyErr *domain.StrategyParameterError
		var degenerateErr *domain.DegeneratePathError
		if errors.Is(err, domain.ErrEmptySequence) || errors.As(err, &strategyErr) || errors.As(err, &degenerateErr) {
			status = http.StatusUnprocessableEntity
		}
		s.fail(w, status, "conversion failed", err)
		return
	}

	conversions.WithLabelValues("ok").Inc()
	pointsEmitted.Add(float64(counter.points))
	w.Header().Set("Content-Type", mime)
	w.Write(buf.Bytes())
}

func (s *Server) fail(w http.ResponseWriter, status int, msg string, err error) {
	conversions.WithLabelValues("error").Inc()
	s.logger.Error(msg, "error", err, "status", status)
	http.Error(w, msg, status)
}

// countingConsumer rides along the replay pass to feed the metrics.
type countingConsumer struct {
	points int
}

func (c *countingConsumer) Name() string { return "metrics" }

func (c *countingConsumer) OnEvent(ev domain.Event) error {
	if ev.Kind == domain.EventPointVisit {
		c.points++
	}
	return nil
}

func (c *countingConsumer) Finalize() error { return nil }
