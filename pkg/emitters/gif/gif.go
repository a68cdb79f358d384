// Package gif emits an animated GIF of the weld run, one frame per
// point visit. It renders at finalize, after the replayed bounds are
// known, composing frames with golang.org/x/image/draw and labeling
// them with the basicfont face.
package gif

import (
	"image"
	"image/color"
	stdgif "image/gif"
	"io"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/weldworks/weldr/pkg/config"
	"github.com/weldworks/weldr/pkg/domain"
)

const (
	scale   = 4.0 // pixels per millimeter
	margin  = 16  // pixels
	caption = 20  // pixel rows reserved for the frame label
	dotR    = 2   // dot radius in pixels
)

var palette = color.Palette{
	color.White,
	color.Black,
	color.RGBA{R: 0xff, A: 0xff},          // stop
	color.RGBA{B: 0xff, A: 0xff},          // light
	color.RGBA{R: 0xff, B: 0xff, A: 0xff}, // pipette
	color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff},
}

func classColor(c domain.OperationClass) color.Color {
	switch c {
	case domain.ClassLight:
		return palette[3]
	case domain.ClassStop:
		return palette[2]
	case domain.ClassPipette:
		return palette[4]
	default:
		return palette[1]
	}
}

type step struct {
	point   domain.WeldPoint
	pause   bool
	message string
}

// Emitter buffers the replayed sequence and encodes the GIF at
// Finalize. It implements ports.Consumer.
type Emitter struct {
	w      io.Writer
	cfg    config.Config
	steps  []step
	bounds domain.Bounds
}

// New creates an emitter writing the encoded GIF to w at Finalize.
func New(w io.Writer, cfg config.Config) *Emitter {
	return &Emitter{w: w, cfg: cfg}
}

// Name implements ports.Consumer.
func (e *Emitter) Name() string { return "gif-animation" }

// OnEvent implements ports.Consumer.
func (e *Emitter) OnEvent(ev domain.Event) error {
	switch ev.Kind {
	case domain.EventPointVisit:
		e.steps = append(e.steps, step{point: ev.Point})
		e.bounds.Include(ev.Point.Position)
	case domain.EventPauseRequested:
		e.steps = append(e.steps, step{pause: true, message: ev.Message})
	}
	return nil
}

// Finalize implements ports.Consumer.
func (e *Emitter) Finalize() error {
	// EncodeAll rejects a zero-frame GIF, so an empty run writes nothing.
	if e.bounds.Empty() {
		return nil
	}

	rect := e.bounds.Rect()
	width := int(rect.Width()*scale) + 2*margin
	height := int(rect.Height()*scale) + 2*margin + caption

	// The canvas accumulates welded dots; each frame snapshots it.
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, xdraw.Src)

	weldDelay := int(e.cfg.Animation.TimeBetweenWelds * 100) // centiseconds
	if weldDelay < 2 {
		weldDelay = 2
	}
	pauseDelay := int(e.cfg.Animation.PauseTime * 100)

	out := &stdgif.GIF{}
	welded := 0
	for _, s := range e.steps {
		if s.pause {
			out.Image = append(out.Image, e.frame(canvas, labelOr(s.message, "paused")))
			out.Delay = append(out.Delay, pauseDelay)
			continue
		}

		welded++
		px := margin + int((s.point.Position.X-rect.Min.X)*scale)
		py := margin + int((rect.Max.Y-s.point.Position.Y)*scale)
		drawDot(canvas, px, py, classColor(s.point.Class))

		out.Image = append(out.Image, e.frame(canvas, labelOr("", "")))
		out.Delay = append(out.Delay, weldDelay)
	}

	// Hold the completed pattern on screen at the end.
	out.Image = append(out.Image, e.frame(canvas, "complete"))
	out.Delay = append(out.Delay, 300)

	return stdgif.EncodeAll(e.w, out)
}

// frame snapshots the canvas into a paletted image and draws the label.
func (e *Emitter) frame(canvas *image.RGBA, label string) *image.Paletted {
	f := image.NewPaletted(canvas.Bounds(), palette)
	xdraw.Draw(f, f.Bounds(), canvas, image.Point{}, xdraw.Src)
	if label != "" {
		d := font.Drawer{
			Dst:  f,
			Src:  image.NewUniform(palette[2]),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(margin, canvas.Bounds().Dy()-6),
		}
		d.DrawString(label)
	}
	return f
}

func drawDot(img *image.RGBA, cx, cy int, c color.Color) {
	for dy := -dotR; dy <= dotR; dy++ {
		for dx := -dotR; dx <= dotR; dx++ {
			if dx*dx+dy*dy <= dotR*dotR {
				img.Set(cx+dx, cy+dy, c)
			}
		}
	}
}

func labelOr(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
