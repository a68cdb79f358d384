// Package anim emits an animated SVG visualization of the weld run.
//
// Dots appear in visitation order using SMIL set-timers, colored by
// operation class, so the operator can preview exactly how the sequence
// will unfold on the machine. The consumer buffers events and renders at
// finalize, once the replayed bounds are known.
package anim

import (
	"bufio"
	"fmt"
	"io"

	"github.com/weldworks/weldr/pkg/config"
	"github.com/weldworks/weldr/pkg/domain"
)

const padding = 10.0

var classColors = map[domain.OperationClass]string{
	domain.ClassNormal:  "#000000",
	domain.ClassLight:   "#0000ff",
	domain.ClassStop:    "#ff0000",
	domain.ClassPipette: "#ff00ff",
}

type visit struct {
	point domain.WeldPoint
	at    float64
}

type pause struct {
	message string
	at      float64
}

// Emitter renders the animated SVG. It implements ports.Consumer.
type Emitter struct {
	w   io.Writer
	cfg config.Config

	visits []visit
	pauses []pause
	bounds domain.Bounds
	clock  float64
}

// New creates an emitter writing the finished SVG to w at Finalize.
func New(w io.Writer, cfg config.Config) *Emitter {
	return &Emitter{w: w, cfg: cfg}
}

// Name implements ports.Consumer.
func (e *Emitter) Name() string { return "svg-animation" }

// OnEvent implements ports.Consumer.
func (e *Emitter) OnEvent(ev domain.Event) error {
	switch ev.Kind {
	case domain.EventPointVisit:
		e.visits = append(e.visits, visit{point: ev.Point, at: e.clock})
		e.bounds.Include(ev.Point.Position)
		e.clock += e.cfg.Animation.TimeBetweenWelds
	case domain.EventPauseRequested:
		e.pauses = append(e.pauses, pause{message: ev.Message, at: e.clock})
		e.clock += e.cfg.Animation.PauseTime
	}
	return nil
}

// Finalize implements ports.Consumer. It writes the complete document.
func (e *Emitter) Finalize() error {
	w := bufio.NewWriter(e.w)

	duration := e.clock
	if duration < e.cfg.Animation.MinDuration {
		duration = e.cfg.Animation.MinDuration
	}

	rect := e.bounds.Rect()
	width := rect.Width() + 2*padding
	height := rect.Height() + 2*padding + 30 // room for the caption row

	fmt.Fprintf(w, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	fmt.Fprintf(w, "<svg width=\"%.1f\" height=\"%.1f\" viewBox=\"0 0 %.1f %.1f\" xmlns=\"http://www.w3.org/2000/svg\">\n",
		width, height, width, height)
	fmt.Fprintf(w, "  <rect width=\"100%%\" height=\"100%%\" fill=\"white\"/>\n")
	fmt.Fprintf(w, "  <title>Weld sequence: %d points, %.1fs</title>\n", len(e.visits), duration)

	for _, v := range e.visits {
		x := v.point.Position.X - rect.Min.X + padding
		// SVG Y grows downward; machine Y grows upward.
		y := rect.Max.Y - v.point.Position.Y + padding
		color := classColors[v.point.Class]
		if color == "" {
			color = classColors[domain.ClassNormal]
		}
		fmt.Fprintf(w, "  <circle cx=\"%.3f\" cy=\"%.3f\" r=\"1.2\" fill=\"%s\" opacity=\"0\">\n", x, y, color)
		fmt.Fprintf(w, "    <set attributeName=\"opacity\" to=\"1\" begin=\"%.2fs\" fill=\"freeze\"/>\n", v.at)
		fmt.Fprintf(w, "  </circle>\n")
	}

	for _, p := range e.pauses {
		msg := p.message
		if msg == "" {
			msg = "Operator pause"
		}
		fmt.Fprintf(w, "  <text x=\"%.1f\" y=\"%.1f\" font-size=\"6\" fill=\"#ff0000\" opacity=\"0\">%s\n",
			padding, height-10, xmlEscape(msg))
		fmt.Fprintf(w, "    <set attributeName=\"opacity\" to=\"1\" begin=\"%.2fs\"/>\n", p.at)
		fmt.Fprintf(w, "    <set attributeName=\"opacity\" to=\"0\" begin=\"%.2fs\"/>\n", p.at+e.cfg.Animation.PauseTime)
		fmt.Fprintf(w, "  </text>\n")
	}

	fmt.Fprintf(w, "</svg>\n")
	return w.Flush()
}

func xmlEscape(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '&':
			out = append(out, "&amp;"...)
		case '<':
			out = append(out, "&lt;"...)
		case '>':
			out = append(out, "&gt;"...)
		default:
			out = append(out, s[i])
		}
	}
	return string(out)
}
