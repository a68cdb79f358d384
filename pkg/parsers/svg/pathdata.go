package svg

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/weldworks/weldr/pkg/geometry"
)

// parsePathData flattens an SVG path "d" attribute into a polyline.
// Cubic curves are subdivided at a fixed parameter step; the drawing
// convention keeps curves gentle enough that uniform subdivision stays
// well inside the dot spacing.
func parsePathData(d string) (geometry.Polyline, error) {
	tokens := tokenize(d)
	var (
		pl      geometry.Polyline
		cur     geometry.Point
		start   geometry.Point
		command byte
		i       int
	)

	need := func(n int) error {
		if i+n > len(tokens) {
			return fmt.Errorf("path data truncated in %q command", string(command))
		}
		return nil
	}
	number := func() float64 {
		v, _ := strconv.ParseFloat(tokens[i], 64)
		i++
		return v
	}

	for i < len(tokens) {
		tok := tokens[i]
		if len(tok) == 1 && isLetter(tok[0]) {
			if !isCommand(tok[0]) {
				return nil, fmt.Errorf("unsupported path command %q", tok)
			}
			command = tok[0]
			i++
			if command == 'Z' || command == 'z' {
				pl = append(pl, start)
				cur = start
				continue
			}
		} else if command == 0 {
			return nil, fmt.Errorf("path data does not start with a command: %q", d)
		}

		relative := command >= 'a'
		switch upper(command) {
		case 'M':
			if err := need(2); err != nil {
				return nil, err
			}
			p := geometry.Point{X: number(), Y: number()}
			if relative {
				p = cur.Add(p.X, p.Y)
			}
			cur, start = p, p
			pl = append(pl, p)
			// Subsequent coordinate pairs after a moveto are implicit
			// linetos.
			if command == 'M' {
				command = 'L'
			} else {
				command = 'l'
			}
		case 'L':
			if err := need(2); err != nil {
				return nil, err
			}
			p := geometry.Point{X: number(), Y: number()}
			if relative {
				p = cur.Add(p.X, p.Y)
			}
			cur = p
			pl = append(pl, p)
		case 'H':
			if err := need(1); err != nil {
				return nil, err
			}
			x := number()
			if relative {
				x += cur.X
			}
			cur = geometry.Point{X: x, Y: cur.Y}
			pl = append(pl, cur)
		case 'V':
			if err := need(1); err != nil {
				return nil, err
			}
			y := number()
			if relative {
				y += cur.Y
			}
			cur = geometry.Point{X: cur.X, Y: y}
			pl = append(pl, cur)
		case 'C':
			if err := need(6); err != nil {
				return nil, err
			}
			c1 := geometry.Point{X: number(), Y: number()}
			c2 := geometry.Point{X: number(), Y: number()}
			end := geometry.Point{X: number(), Y: number()}
			if relative {
				c1 = cur.Add(c1.X, c1.Y)
				c2 = cur.Add(c2.X, c2.Y)
				end = cur.Add(end.X, end.Y)
			}
			for s := 1; s <= curveSegments; s++ {
				t := float64(s) / curveSegments
				pl = append(pl, cubicAt(cur, c1, c2, end, t))
			}
			cur = end
		default:
			return nil, fmt.Errorf("unsupported path command %q", string(command))
		}
	}
	return pl, nil
}

func cubicAt(p0, p1, p2, p3 geometry.Point, t float64) geometry.Point {
	u := 1 - t
	return geometry.Point{
		X: u*u*u*p0.X + 3*u*u*t*p1.X + 3*u*t*t*p2.X + t*t*t*p3.X,
		Y: u*u*u*p0.Y + 3*u*u*t*p1.Y + 3*u*t*t*p2.Y + t*t*t*p3.Y,
	}
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isCommand(b byte) bool {
	switch upper(b) {
	case 'M', 'L', 'H', 'V', 'C', 'Z':
		return true
	}
	return false
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

// tokenize splits path data into command letters and numbers.
func tokenize(d string) []string {
	var tokens []string
	var buf strings.Builder

	flush := func() {
		if buf.Len() > 0 {
			tokens = append(tokens, buf.String())
			buf.Reset()
		}
	}

	for _, r := range d {
		switch {
		case unicode.IsLetter(r) && r != 'e' && r != 'E':
			flush()
			tokens = append(tokens, string(r))
		case r == ',' || unicode.IsSpace(r):
			flush()
		case r == '-' && buf.Len() > 0 && !strings.HasSuffix(buf.String(), "e"):
			// A minus sign starts a new number unless it follows an
			// exponent marker.
			flush()
			buf.WriteRune(r)
		default:
			buf.WriteRune(r)
		}
	}
	flush()
	return tokens
}
