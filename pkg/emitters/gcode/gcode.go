// Package gcode emits the machine-control instruction stream.
//
// The emitter is a streaming pipeline consumer: instructions are written
// as events arrive, with no intermediate representation. It tracks the
// tool's last commanded height and nozzle temperature so redundant
// motion and heating commands are suppressed, and every point visit
// expands to exactly one contact cycle: XY move, lower to contact
// height, dwell, raise to travel height.
package gcode

import (
	"bufio"
	"fmt"
	"io"

	"github.com/weldworks/weldr/pkg/config"
	"github.com/weldworks/weldr/pkg/domain"
)

// Emitter writes the instruction stream for one run. It implements
// ports.Consumer.
type Emitter struct {
	w   *bufio.Writer
	cfg config.Config

	headerWritten bool
	currentZ      float64
	currentTemp   float64
	firstWeld     bool

	paths  int
	points int
	pauses int
}

// New creates an emitter writing to w.
func New(w io.Writer, cfg config.Config) *Emitter {
	return &Emitter{
		w:         bufio.NewWriter(w),
		cfg:       cfg,
		firstWeld: true,
		currentZ:  -1,
	}
}

// Name implements ports.Consumer.
func (e *Emitter) Name() string { return "gcode" }

// OnEvent implements ports.Consumer.
func (e *Emitter) OnEvent(ev domain.Event) error {
	if !e.headerWritten {
		if err := e.writeHeader(); err != nil {
			return err
		}
		e.headerWritten = true
	}

	switch ev.Kind {
	case domain.EventPathStart:
		e.paths++
		e.printf("; Starting path: %s\n", ev.PathID)
	case domain.EventPointVisit:
		e.writeContactCycle(ev.Point)
		e.points++
	case domain.EventPauseRequested:
		e.writePause(ev.Message)
		e.pauses++
	case domain.EventPathEnd:
		e.printf("; Completed path: %s\n\n", ev.PathID)
	case domain.EventSequenceComplete:
		// Footer is written at Finalize so late errors still surface.
	}
	return e.err()
}

// Finalize implements ports.Consumer. It writes run statistics and the
// cooldown sequence, then flushes.
func (e *Emitter) Finalize() error {
	if !e.headerWritten {
		return e.w.Flush()
	}
	e.printf("; End of welding sequence\n")
	e.printf("; Total paths: %d\n", e.paths)
	e.printf("; Total points: %d\n", e.points)
	e.printf("; Total pauses: %d\n\n", e.pauses)

	cooldown := e.cfg.Temperatures.Cooldown
	e.printf("M104 S%g ; Cool nozzle\n", cooldown)
	e.printf("M140 S%g ; Cool bed\n", cooldown)
	e.printf("G1 Z%g F%g ; Raise tool\n", e.cfg.Movement.TravelHeight+10, e.cfg.Movement.ZSpeed)
	e.printf("M84 ; Disable motors\n")
	return e.w.Flush()
}

func (e *Emitter) writeHeader() error {
	bed := e.cfg.Temperatures.Bed
	nozzle := e.cfg.Defaults(domain.ClassNormal).Temperature

	e.printf("; Generated by weldr\n")
	e.printf("; Point-contact welding instruction stream\n")
	e.printf(";\n")
	e.printf("; Bed temperature: %g\n", bed)
	e.printf("; Nozzle temperature: %g\n", nozzle)
	e.printf(";\n\n")

	e.printf("G21 ; Millimeter units\n")
	e.printf("G90 ; Absolute positioning\n")
	e.printf("M140 S%g ; Set bed temperature\n", bed)
	e.printf("M190 S%g ; Wait for bed temperature\n", bed)
	e.printf("M104 S%g ; Set nozzle temperature\n", nozzle)
	e.printf("M109 S%g ; Wait for nozzle temperature\n\n", nozzle)
	e.currentTemp = nozzle

	if e.cfg.Output.FilmInsertionPause {
		e.printf("M0 Insert film sheets and continue ; Operator pause\n\n")
	}

	e.moveZ(e.cfg.Movement.TravelHeight, "Move to travel height")
	return e.err()
}

// writeContactCycle emits one full weld cycle for the point. The XY move
// happens at travel height; the Z moves are suppressed when the tool is
// already at the commanded height.
func (e *Emitter) writeContactCycle(pt domain.WeldPoint) {
	mv := e.cfg.Movement

	if temp := pt.Params.Temperature; temp != e.currentTemp {
		e.printf("M104 S%g ; Set nozzle temperature\n", temp)
		e.currentTemp = temp
	}

	comment := "Move to next point"
	if e.firstWeld {
		comment = "Move to start of welding"
		e.firstWeld = false
	}
	e.printf("G1 X%.3f Y%.3f F%g ; %s\n", pt.Position.X, pt.Position.Y, mv.XYSpeed, comment)

	e.moveZ(pt.Params.ContactHeight, "Lower to contact height")
	e.printf("G4 P%.0f ; Dwell %.2gs\n", pt.Params.DwellTime*1000, pt.Params.DwellTime)
	e.moveZ(mv.TravelHeight, "Raise to travel height")
}

func (e *Emitter) writePause(message string) {
	if message == "" {
		message = "Manual intervention required"
	}
	e.moveZ(e.cfg.Movement.TravelHeight, "Raise before pause")
	e.printf("M0 %s ; Operator pause\n", message)
}

// moveZ commands a Z move unless the tool is already there.
func (e *Emitter) moveZ(z float64, comment string) {
	if z == e.currentZ {
		return
	}
	e.printf("G1 Z%.3f F%g ; %s\n", z, e.cfg.Movement.ZSpeed, comment)
	e.currentZ = z
}

func (e *Emitter) printf(format string, args ...any) {
	fmt.Fprintf(e.w, format, args...)
}

// err surfaces any buffered write error.
func (e *Emitter) err() error {
	if _, err := e.w.Write(nil); err != nil {
		return err
	}
	return nil
}
