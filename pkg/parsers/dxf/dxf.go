// Package dxf parses a subset of DXF into the path model.
//
// Supported entities: LINE, LWPOLYLINE, and CIRCLE from the ENTITIES
// section. Operation class comes from the layer name. CAD exports often
// emit connected outlines as unordered individual LINE entities, so
// lines on the same layer are stitched back into polylines by matching
// coincident endpoints before sampling (see chain.go).
package dxf

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/weldworks/weldr/pkg/domain"
	"github.com/weldworks/weldr/pkg/geometry"
)

const (
	circleSegments = 32
	// joinTolerance is the max endpoint gap (mm) still considered the
	// same point when chaining LINE entities.
	joinTolerance = 0.01
)

type tag struct {
	code  int
	value string
}

type entity struct {
	kind  string
	layer string
	tags  []tag
}

// Parse reads a DXF document into a path model.
func Parse(r io.Reader) (domain.PathModel, error) {
	entities, err := readEntities(r)
	if err != nil {
		return domain.PathModel{}, err
	}

	model := domain.PathModel{Source: "dxf"}
	counter := 0

	// LINE entities are grouped per layer and chained; everything else
	// maps to one path directly.
	lines := map[string][]segment{}
	add := func(layer string, vertices geometry.Polyline) {
		model.Paths = append(model.Paths, domain.Path{
			ID:        fmt.Sprintf("dxf_%d", counter),
			Class:     layerClass(layer),
			Vertices:  vertices,
			OrderHint: float64(counter),
		})
		counter++
	}

	for _, e := range entities {
		switch e.kind {
		case "LINE":
			a := geometry.Point{X: e.value(10), Y: e.value(20)}
			b := geometry.Point{X: e.value(11), Y: e.value(21)}
			lines[e.layer] = append(lines[e.layer], segment{a: a, b: b})
		case "LWPOLYLINE":
			pl := e.polylineVertices()
			if len(pl) >= 2 {
				add(e.layer, pl)
			}
		case "CIRCLE":
			cx, cy, r := e.value(10), e.value(20), e.value(40)
			pl := make(geometry.Polyline, 0, circleSegments+1)
			for i := 0; i <= circleSegments; i++ {
				angle := 2 * math.Pi * float64(i) / circleSegments
				pl = append(pl, geometry.Point{X: cx + r*math.Cos(angle), Y: cy + r*math.Sin(angle)})
			}
			add(e.layer, pl)
		}
	}

	// Map iteration order is randomized; chain layers in name order so
	// identical documents always yield identical path order.
	layers := make([]string, 0, len(lines))
	for layer := range lines {
		layers = append(layers, layer)
	}
	sort.Strings(layers)
	for _, layer := range layers {
		for _, pl := range chainSegments(lines[layer], joinTolerance) {
			add(layer, pl)
		}
	}
	return model, nil
}

func readEntities(r io.Reader) ([]entity, error) {
	scanner := bufio.NewScanner(r)
	var (
		entities  []entity
		current   *entity
		inSection bool
		lineNo    int
	)

	readLine := func() (string, bool) {
		if !scanner.Scan() {
			return "", false
		}
		lineNo++
		return strings.TrimSpace(scanner.Text()), true
	}

	for {
		codeStr, ok := readLine()
		if !ok {
			break
		}
		value, ok := readLine()
		if !ok {
			return nil, fmt.Errorf("dxf: dangling group code at line %d", lineNo)
		}
		code, err := strconv.Atoi(codeStr)
		if err != nil {
			return nil, fmt.Errorf("dxf: bad group code %q at line %d", codeStr, lineNo)
		}

		switch {
		case code == 2 && value == "ENTITIES":
			inSection = true
		case code == 0 && value == "ENDSEC":
			if current != nil {
				entities = append(entities, *current)
				current = nil
			}
			inSection = false
		case inSection && code == 0:
			if current != nil {
				entities = append(entities, *current)
			}
			current = &entity{kind: value}
		case inSection && current != nil:
			if code == 8 {
				current.layer = value
			}
			current.tags = append(current.tags, tag{code: code, value: value})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("dxf: read failed: %w", err)
	}
	if current != nil {
		entities = append(entities, *current)
	}
	return entities, nil
}

// value returns the first float value for the group code, 0 if absent.
func (e entity) value(code int) float64 {
	for _, t := range e.tags {
		if t.code == code {
			v, _ := strconv.ParseFloat(t.value, 64)
			return v
		}
	}
	return 0
}

// polylineVertices collects repeated 10/20 pairs, closing the loop when
// the closed flag (70 bit 0) is set.
func (e entity) polylineVertices() geometry.Polyline {
	var (
		pl     geometry.Polyline
		x      float64
		haveX  bool
		closed bool
	)
	for _, t := range e.tags {
		switch t.code {
		case 10:
			x, _ = strconv.ParseFloat(t.value, 64)
			haveX = true
		case 20:
			if haveX {
				y, _ := strconv.ParseFloat(t.value, 64)
				pl = append(pl, geometry.Point{X: x, Y: y})
				haveX = false
			}
		case 70:
			flags, _ := strconv.Atoi(t.value)
			closed = flags&1 != 0
		}
	}
	if closed && len(pl) > 1 {
		pl = append(pl, pl[0])
	}
	return pl
}

func layerClass(layer string) domain.OperationClass {
	name := strings.ToLower(layer)
	switch {
	case strings.Contains(name, "light"), strings.Contains(name, "frangible"):
		return domain.ClassLight
	case strings.Contains(name, "stop"):
		return domain.ClassStop
	case strings.Contains(name, "pipette"):
		return domain.ClassPipette
	default:
		return domain.ClassNormal
	}
}
