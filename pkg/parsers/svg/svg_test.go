package svg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weldworks/weldr/pkg/domain"
	"github.com/weldworks/weldr/pkg/geometry"
)

func TestParseBasicElements(t *testing.T) {
	data := []byte(`<svg xmlns="http://www.w3.org/2000/svg">
  <line id="l1" x1="0" y1="0" x2="10" y2="0" stroke="black"/>
  <polyline points="0,0 5,5 10,0" stroke="black"/>
  <rect x="1" y="1" width="4" height="3" stroke="black"/>
</svg>`)

	model, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, model.Paths, 3)

	assert.Equal(t, "l1", model.Paths[0].ID)
	assert.Equal(t, geometry.Polyline{{X: 0, Y: 0}, {X: 10, Y: 0}}, model.Paths[0].Vertices)

	assert.Equal(t, "path_1", model.Paths[1].ID, "unnamed elements get generated ids")
	assert.Len(t, model.Paths[1].Vertices, 3)

	rect := model.Paths[2].Vertices
	require.Len(t, rect, 5)
	assert.Equal(t, rect[0], rect[4], "rect closes back to its origin")
}

func TestParseNestedGroups(t *testing.T) {
	data := []byte(`<svg xmlns="http://www.w3.org/2000/svg">
  <g><g><line x1="0" y1="0" x2="1" y2="1" stroke="black"/></g></g>
</svg>`)

	model, err := Parse(data)
	require.NoError(t, err)
	assert.Len(t, model.Paths, 1)
}

func TestClassFromStrokeColor(t *testing.T) {
	data := []byte(`<svg xmlns="http://www.w3.org/2000/svg">
  <line x1="0" y1="0" x2="1" y2="0" stroke="black"/>
  <line x1="0" y1="1" x2="1" y2="1" stroke="blue"/>
  <line x1="0" y1="2" x2="1" y2="2" stroke="#ff0000" data-message="check alignment"/>
  <line x1="0" y1="3" x2="1" y2="3" style="stroke: magenta"/>
</svg>`)

	model, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, model.Paths, 4)

	assert.Equal(t, domain.ClassNormal, model.Paths[0].Class)
	assert.Equal(t, domain.ClassLight, model.Paths[1].Class)
	assert.Equal(t, domain.ClassStop, model.Paths[2].Class)
	assert.Equal(t, "check alignment", model.Paths[2].PauseMessage)
	assert.Equal(t, domain.ClassPipette, model.Paths[3].Class)
	assert.Equal(t, "Pipette operation", model.Paths[3].PauseMessage)
}

func TestOverrideAttributes(t *testing.T) {
	data := []byte(`<svg xmlns="http://www.w3.org/2000/svg">
  <line x1="0" y1="0" x2="1" y2="0" stroke="black"
        data-weld-temperature="155" data-weld-dwell-time="0.75" data-weld-spacing="1.5"/>
</svg>`)

	model, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, model.Paths, 1)

	o := model.Paths[0].Overrides
	require.NotNil(t, o.Temperature)
	assert.Equal(t, 155.0, *o.Temperature)
	require.NotNil(t, o.DwellTime)
	assert.Equal(t, 0.75, *o.DwellTime)
	require.NotNil(t, o.Spacing)
	assert.Equal(t, 1.5, *o.Spacing)
	assert.Nil(t, o.ContactHeight)
}

func TestUnknownOverrideRejected(t *testing.T) {
	data := []byte(`<svg xmlns="http://www.w3.org/2000/svg">
  <line id="bad" x1="0" y1="0" x2="1" y2="0" data-weld-wattage="9000"/>
</svg>`)

	_, err := Parse(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad")
}

func TestOrderHint(t *testing.T) {
	data := []byte(`<svg xmlns="http://www.w3.org/2000/svg">
  <line id="a" x1="0" y1="0" x2="1" y2="0" data-weld-order="5"/>
  <line id="b" x1="0" y1="1" x2="1" y2="1"/>
</svg>`)

	model, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, 5.0, model.Paths[0].OrderHint)
	assert.Equal(t, 1.0, model.Paths[1].OrderHint, "defaults to document order")
}

func TestCircleCloses(t *testing.T) {
	data := []byte(`<svg xmlns="http://www.w3.org/2000/svg">
  <circle cx="10" cy="10" r="5" stroke="black"/>
</svg>`)

	model, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, model.Paths, 1)

	pl := model.Paths[0].Vertices
	require.Len(t, pl, 33)
	assert.InDelta(t, pl[0].X, pl[len(pl)-1].X, 1e-9)
	assert.InDelta(t, pl[0].Y, pl[len(pl)-1].Y, 1e-9)
	assert.InDelta(t, 15.0, pl[0].X, 1e-9, "starts at angle zero")
}
