package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weldworks/weldr/pkg/geometry"
)

func TestBoundsEmpty(t *testing.T) {
	var b Bounds
	assert.True(t, b.Empty())

	b.Include(geometry.Point{X: 1, Y: 2})
	assert.False(t, b.Empty())
	assert.Equal(t, 1, b.Points)
	assert.Equal(t, geometry.Point{X: 1, Y: 2}, b.Min)
	assert.Equal(t, geometry.Point{X: 1, Y: 2}, b.Max)
}

func TestBoundsInclude(t *testing.T) {
	var b Bounds
	b.Include(geometry.Point{X: 5, Y: 5})
	b.Include(geometry.Point{X: -1, Y: 10})
	b.Include(geometry.Point{X: 3, Y: 0})

	assert.Equal(t, geometry.Point{X: -1, Y: 0}, b.Min)
	assert.Equal(t, geometry.Point{X: 5, Y: 10}, b.Max)
	assert.Equal(t, 3, b.Points)
}

func TestOffsetTo(t *testing.T) {
	var b Bounds
	b.Include(geometry.Point{X: 0, Y: 0})
	b.Include(geometry.Point{X: 10, Y: 20})

	off := b.OffsetTo(geometry.Point{X: 125, Y: 110})
	assert.Equal(t, 120.0, off.DX)
	assert.Equal(t, 100.0, off.DY)
}

func TestOperationClass(t *testing.T) {
	assert.True(t, ClassNormal.Valid())
	assert.True(t, ClassPipette.Valid())
	assert.False(t, OperationClass("bogus").Valid())

	assert.False(t, ClassNormal.Pausing())
	assert.False(t, ClassLight.Pausing())
	assert.True(t, ClassStop.Pausing())
	assert.True(t, ClassPipette.Pausing())
}

func TestWeldPointTranslate(t *testing.T) {
	p := WeldPoint{
		Position: geometry.Point{X: 1, Y: 2},
		PathID:   "p1",
		Index:    3,
	}
	q := p.Translate(10, -2)

	assert.Equal(t, geometry.Point{X: 11, Y: 0}, q.Position)
	assert.Equal(t, "p1", q.PathID)
	assert.Equal(t, 3, q.Index)
	// The original is untouched.
	assert.Equal(t, geometry.Point{X: 1, Y: 2}, p.Position)
}
