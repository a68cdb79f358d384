package domain

import "github.com/weldworks/weldr/pkg/geometry"

// Bounds accumulates the spatial extent of every visited point during
// the recording pass. The zero value is empty.
type Bounds struct {
	Min    geometry.Point
	Max    geometry.Point
	Points int
}

// Include folds one point into the bounds.
func (b *Bounds) Include(p geometry.Point) {
	if b.Points == 0 {
		b.Min, b.Max = p, p
	} else {
		if p.X < b.Min.X {
			b.Min.X = p.X
		}
		if p.X > b.Max.X {
			b.Max.X = p.X
		}
		if p.Y < b.Min.Y {
			b.Min.Y = p.Y
		}
		if p.Y > b.Max.Y {
			b.Max.Y = p.Y
		}
	}
	b.Points++
}

// Empty reports whether no points have been folded in. An empty bounds
// has no defined center and no centering offset.
func (b Bounds) Empty() bool { return b.Points == 0 }

// Rect returns the bounding rectangle. Only meaningful when non-empty.
func (b Bounds) Rect() geometry.Rect {
	return geometry.Rect{Min: b.Min, Max: b.Max}
}

// CenteringOffset is the translation that maps the recorded bounds'
// geometric center onto the target work-surface center. Computed once
// per run after the recording pass; read-only during replay.
type CenteringOffset struct {
	DX float64
	DY float64
}

// OffsetTo derives the centering offset for the given target center.
func (b Bounds) OffsetTo(target geometry.Point) CenteringOffset {
	center := b.Rect().Center()
	return CenteringOffset{
		DX: target.X - center.X,
		DY: target.Y - center.Y,
	}
}
