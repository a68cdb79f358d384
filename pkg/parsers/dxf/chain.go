package dxf

import (
	"github.com/asim/quadtree"

	"github.com/weldworks/weldr/pkg/geometry"
)

type segment struct {
	a geometry.Point
	b geometry.Point
}

// endpoint identifies one end of a segment inside the quadtree.
type endpoint struct {
	seg int
	end int // 0 = a, 1 = b
}

// chainSegments stitches individual line segments into polylines by
// repeatedly extending each chain with the nearest unused endpoint
// within tol. The endpoint index is a quadtree so lookups stay cheap on
// drawings with thousands of exported lines.
func chainSegments(segs []segment, tol float64) []geometry.Polyline {
	if len(segs) == 0 {
		return nil
	}

	tree := buildEndpointTree(segs, tol)
	used := make([]bool, len(segs))

	// take removes and returns an unused endpoint within tol of p.
	take := func(p geometry.Point) (endpoint, bool) {
		aabb := quadtree.NewAABB(
			quadtree.NewPoint(p.X, p.Y, nil),
			quadtree.NewPoint(tol, tol, nil),
		)
		for _, qp := range tree.KNearest(aabb, 8, nil) {
			ep := qp.Data().(endpoint)
			if used[ep.seg] {
				tree.Remove(qp)
				continue
			}
			x, y := qp.Coordinates()
			if (geometry.Point{X: x, Y: y}).Distance(p) <= tol {
				tree.Remove(qp)
				return ep, true
			}
		}
		return endpoint{}, false
	}

	var chains []geometry.Polyline
	for i := range segs {
		if used[i] {
			continue
		}
		used[i] = true
		chain := geometry.Polyline{segs[i].a, segs[i].b}

		// Grow forward from the tail, then backward from the head.
		for {
			ep, ok := take(chain[len(chain)-1])
			if !ok {
				break
			}
			used[ep.seg] = true
			chain = append(chain, otherEnd(segs[ep.seg], ep.end))
		}
		for {
			ep, ok := take(chain[0])
			if !ok {
				break
			}
			used[ep.seg] = true
			chain = append(geometry.Polyline{otherEnd(segs[ep.seg], ep.end)}, chain...)
		}
		chains = append(chains, chain)
	}
	return chains
}

func otherEnd(s segment, end int) geometry.Point {
	if end == 0 {
		return s.b
	}
	return s.a
}

func buildEndpointTree(segs []segment, tol float64) *quadtree.QuadTree {
	var bounds geometry.Rect
	bounds.Min, bounds.Max = segs[0].a, segs[0].a
	include := func(p geometry.Point) {
		if p.X < bounds.Min.X {
			bounds.Min.X = p.X
		}
		if p.X > bounds.Max.X {
			bounds.Max.X = p.X
		}
		if p.Y < bounds.Min.Y {
			bounds.Min.Y = p.Y
		}
		if p.Y > bounds.Max.Y {
			bounds.Max.Y = p.Y
		}
	}
	for _, s := range segs {
		include(s.a)
		include(s.b)
	}

	center := bounds.Center()
	halfW := bounds.Width()/2 + tol + 1
	halfH := bounds.Height()/2 + tol + 1
	aabb := quadtree.NewAABB(
		quadtree.NewPoint(center.X, center.Y, nil),
		quadtree.NewPoint(halfW, halfH, nil),
	)
	tree := quadtree.New(aabb, 0, nil)
	for i, s := range segs {
		tree.Insert(quadtree.NewPoint(s.a.X, s.a.Y, endpoint{seg: i, end: 0}))
		tree.Insert(quadtree.NewPoint(s.b.X, s.b.Y, endpoint{seg: i, end: 1}))
	}
	return tree
}
