// Package svg parses a subset of SVG into the path model.
//
// Supported elements: line, polyline, polygon, rect, circle, and path
// (M/L/H/V/C/Z commands, absolute or relative, cubics flattened).
// Operation class is resolved from stroke color the way the drawing
// convention defines it: black is a normal weld, blue a light weld, red
// a stop point, magenta a pipette point. Per-path parameter overrides
// ride on data-weld-* attributes. Coordinates are taken as millimeters.
package svg

import (
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/weldworks/weldr/pkg/domain"
	"github.com/weldworks/weldr/pkg/geometry"
)

const (
	circleSegments = 32
	curveSegments  = 16
	overridePrefix = "data-weld-"
)

type node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []node     `xml:",any"`
}

func (n node) attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// Parse converts an SVG document into a path model.
func Parse(data []byte) (domain.PathModel, error) {
	var root node
	if err := xml.Unmarshal(data, &root); err != nil {
		return domain.PathModel{}, fmt.Errorf("failed to parse svg: %w", err)
	}

	model := domain.PathModel{Source: "svg"}
	counter := 0
	if err := walk(root, &model, &counter); err != nil {
		return domain.PathModel{}, err
	}
	return model, nil
}

func walk(n node, model *domain.PathModel, counter *int) error {
	for _, child := range n.Children {
		vertices, supported, err := elementVertices(child)
		if err != nil {
			return err
		}
		if supported {
			path, err := buildPath(child, vertices, *counter)
			if err != nil {
				return err
			}
			model.Paths = append(model.Paths, path)
			*counter++
			continue
		}
		if err := walk(child, model, counter); err != nil {
			return err
		}
	}
	return nil
}

func elementVertices(n node) (geometry.Polyline, bool, error) {
	switch n.XMLName.Local {
	case "line":
		return geometry.Polyline{
			{X: num(n.attr("x1")), Y: num(n.attr("y1"))},
			{X: num(n.attr("x2")), Y: num(n.attr("y2"))},
		}, true, nil
	case "polyline", "polygon":
		pl, err := parsePoints(n.attr("points"))
		if err != nil {
			return nil, true, err
		}
		if n.XMLName.Local == "polygon" && len(pl) > 1 {
			pl = append(pl, pl[0])
		}
		return pl, true, nil
	case "rect":
		x, y := num(n.attr("x")), num(n.attr("y"))
		w, h := num(n.attr("width")), num(n.attr("height"))
		return geometry.Polyline{
			{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}, {X: x, Y: y},
		}, true, nil
	case "circle":
		cx, cy, r := num(n.attr("cx")), num(n.attr("cy")), num(n.attr("r"))
		pl := make(geometry.Polyline, 0, circleSegments+1)
		for i := 0; i <= circleSegments; i++ {
			a := 2 * math.Pi * float64(i) / circleSegments
			pl = append(pl, geometry.Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)})
		}
		return pl, true, nil
	case "path":
		pl, err := parsePathData(n.attr("d"))
		return pl, true, err
	}
	return nil, false, nil
}

func buildPath(n node, vertices geometry.Polyline, index int) (domain.Path, error) {
	class, message := classify(n)

	id := n.attr("id")
	if id == "" {
		id = fmt.Sprintf("path_%d", index)
	}

	overrides, err := parseOverrides(n)
	if err != nil {
		return domain.Path{}, fmt.Errorf("path %q: %w", id, err)
	}

	hint := float64(index)
	if v := n.attr(overridePrefix + "order"); v != "" {
		hint = num(v)
	}

	return domain.Path{
		ID:           id,
		Class:        class,
		Vertices:     vertices,
		Overrides:    overrides,
		PauseMessage: message,
		OrderHint:    hint,
	}, nil
}

// classify resolves the operation class from the element's color. Red
// and magenta elements carry a pause message picked from data-message or
// title, falling back to a generic prompt.
func classify(n node) (domain.OperationClass, string) {
	colors := strings.ToLower(n.attr("stroke") + " " + n.attr("fill") + " " + n.attr("style"))

	has := func(names ...string) bool {
		for _, name := range names {
			if strings.Contains(colors, name) {
				return true
			}
		}
		return false
	}

	message := func(fallback string) string {
		if m := n.attr("data-message"); m != "" {
			return m
		}
		if m := n.attr("title"); m != "" {
			return m
		}
		return fallback
	}

	switch {
	case has("red", "#ff0000", "#f00", "rgb(255,0,0)"):
		return domain.ClassStop, message("Manual intervention required")
	case has("magenta", "#ff00ff", "#f0f", "rgb(255,0,255)"):
		return domain.ClassPipette, message("Pipette operation")
	case has("blue", "#0000ff", "#00f", "rgb(0,0,255)"):
		return domain.ClassLight, ""
	default:
		return domain.ClassNormal, ""
	}
}

// parseOverrides decodes data-weld-* attributes into the typed override
// struct, e.g. data-weld-dwell-time="0.5" or data-weld-temperature="150".
func parseOverrides(n node) (domain.Overrides, error) {
	raw := map[string]string{}
	for _, a := range n.Attrs {
		if !strings.HasPrefix(a.Name.Local, overridePrefix) {
			continue
		}
		key := strings.ReplaceAll(strings.TrimPrefix(a.Name.Local, overridePrefix), "-", "_")
		if key == "order" {
			continue
		}
		raw[key] = a.Value
	}

	var overrides domain.Overrides
	if len(raw) == 0 {
		return overrides, nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "yaml",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &overrides,
	})
	if err != nil {
		return overrides, err
	}
	if err := dec.Decode(raw); err != nil {
		return overrides, fmt.Errorf("invalid weld override attributes: %w", err)
	}
	return overrides, nil
}

func parsePoints(s string) (geometry.Polyline, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' || r == '\n' || r == '\t' })
	if len(fields)%2 != 0 {
		return nil, fmt.Errorf("points attribute has odd coordinate count: %q", s)
	}
	pl := make(geometry.Polyline, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		pl = append(pl, geometry.Point{X: num(fields[i]), Y: num(fields[i+1])})
	}
	return pl, nil
}

func num(s string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v
}
