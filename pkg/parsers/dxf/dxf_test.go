package dxf

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weldworks/weldr/pkg/domain"
	"github.com/weldworks/weldr/pkg/geometry"
)

// doc assembles a minimal DXF document around the given entity tags.
func doc(body string) string {
	return "0\nSECTION\n2\nENTITIES\n" + body + "0\nENDSEC\n0\nEOF\n"
}

func TestParseLWPolyline(t *testing.T) {
	data := doc(`0
LWPOLYLINE
8
welds
70
0
10
0
20
0
10
10
20
0
10
10
20
10
`)
	model, err := Parse(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, model.Paths, 1)

	assert.Equal(t, domain.ClassNormal, model.Paths[0].Class)
	assert.Equal(t, geometry.Polyline{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10},
	}, model.Paths[0].Vertices)
}

func TestParseClosedLWPolyline(t *testing.T) {
	data := doc(`0
LWPOLYLINE
8
welds
70
1
10
0
20
0
10
10
20
0
10
10
20
10
`)
	model, err := Parse(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, model.Paths, 1)

	pl := model.Paths[0].Vertices
	require.Len(t, pl, 4)
	assert.Equal(t, pl[0], pl[3], "closed flag appends the first vertex")
}

func TestParseCircle(t *testing.T) {
	data := doc(`0
CIRCLE
8
welds
10
5
20
5
40
2
`)
	model, err := Parse(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, model.Paths, 1)

	pl := model.Paths[0].Vertices
	require.Len(t, pl, 33)
	assert.InDelta(t, 7.0, pl[0].X, 1e-9)
	assert.InDelta(t, 5.0, pl[0].Y, 1e-9)
}

func TestLayerClass(t *testing.T) {
	assert.Equal(t, domain.ClassNormal, layerClass("0"))
	assert.Equal(t, domain.ClassLight, layerClass("Frangible_Seams"))
	assert.Equal(t, domain.ClassLight, layerClass("light-welds"))
	assert.Equal(t, domain.ClassStop, layerClass("STOP_POINTS"))
	assert.Equal(t, domain.ClassPipette, layerClass("pipette_ports"))
}

func TestLinesAreChainedPerLayer(t *testing.T) {
	// Three connected lines exported out of order, plus one isolated line
	// on another layer.
	data := doc(`0
LINE
8
welds
10
10
20
0
11
20
21
0
0
LINE
8
welds
10
0
20
0
11
10
21
0
0
LINE
8
welds
10
20
20
0
11
20
21
10
0
LINE
8
stop_marks
10
50
20
50
11
60
21
50
`)
	model, err := Parse(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, model.Paths, 2)

	byClass := map[domain.OperationClass]domain.Path{}
	for _, p := range model.Paths {
		byClass[p.Class] = p
	}

	chained := byClass[domain.ClassNormal]
	require.Len(t, chained.Vertices, 4, "three connected lines form one polyline")
	assert.InDelta(t, 30.0, chained.Vertices.Length(), 1e-9)

	isolated := byClass[domain.ClassStop]
	assert.Len(t, isolated.Vertices, 2)
}

func TestLineChainingOrderIsStable(t *testing.T) {
	// One LINE per layer, enough layers that map iteration order would
	// show through if it leaked into the output.
	var b strings.Builder
	for i, layer := range []string{"welds", "frangible", "stop_a", "pipette_a", "outline", "stop_b"} {
		x := i * 10
		fmt.Fprintf(&b, "0\nLINE\n8\n%s\n10\n%d\n20\n0\n11\n%d\n21\n0\n", layer, x, x+5)
	}
	data := doc(b.String())

	first, err := Parse(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, first.Paths, 6)

	for run := 0; run < 50; run++ {
		again, err := Parse(strings.NewReader(data))
		require.NoError(t, err)
		require.Equal(t, first.Paths, again.Paths, "run %d: path order changed across identical parses", run)
	}

	// Path IDs and order hints follow sorted layer names.
	for i, p := range first.Paths {
		assert.Equal(t, fmt.Sprintf("dxf_%d", i), p.ID)
		assert.Equal(t, float64(i), p.OrderHint)
	}
}

func TestBadGroupCode(t *testing.T) {
	_, err := Parse(strings.NewReader("0\nSECTION\n2\nENTITIES\nnope\nLINE\n"))
	assert.ErrorContains(t, err, "bad group code")
}
