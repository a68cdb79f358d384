package weldr_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	weldr "github.com/weldworks/weldr"
	"github.com/weldworks/weldr/pkg/config"
	"github.com/weldworks/weldr/pkg/domain"
	"github.com/weldworks/weldr/pkg/emitters/gcode"
	"github.com/weldworks/weldr/pkg/geometry"
)

func model(paths ...domain.Path) domain.PathModel {
	return domain.PathModel{Source: "test", Paths: paths}
}

func straightLine(id string, class domain.OperationClass, length float64) domain.Path {
	return domain.Path{
		ID:    id,
		Class: class,
		Vertices: geometry.Polyline{
			{X: 0, Y: 0},
			{X: length, Y: 0},
		},
	}
}

func TestRunProducesCenteredInstructionStream(t *testing.T) {
	var buf bytes.Buffer
	runner := weldr.New(config.Default(),
		weldr.WithConsumers(gcode.New(&buf, config.Default())),
		weldr.WithStrategy("linear"),
		weldr.WithSpacing(5),
	)

	require.NoError(t, runner.Run(model(straightLine("l1", domain.ClassNormal, 10))))

	out := buf.String()
	assert.Contains(t, out, "G21 ; Millimeter units")
	assert.Contains(t, out, "G1 X120.000 Y110.000", "pattern is centered on the bed")
	assert.Contains(t, out, "G1 X130.000 Y110.000")
	assert.Contains(t, out, "; Total points: 3")
}

func TestRunEmptyModel(t *testing.T) {
	var buf bytes.Buffer
	runner := weldr.New(config.Default(),
		weldr.WithConsumers(gcode.New(&buf, config.Default())),
	)

	err := runner.Run(model())
	require.ErrorIs(t, err, domain.ErrEmptySequence)
	assert.Empty(t, buf.String(), "no output is produced for an empty model")
}

func TestRunRejectsBadStrategyBeforeSampling(t *testing.T) {
	runner := weldr.New(config.Default(),
		weldr.WithStrategy("skip"),
		weldr.WithSkipBaseDistance(1),
	)

	err := runner.Run(model(straightLine("l1", domain.ClassNormal, 10)))
	var strategyErr *domain.StrategyParameterError
	require.ErrorAs(t, err, &strategyErr)
}

func TestRunRejectsDegeneratePath(t *testing.T) {
	runner := weldr.New(config.Default())

	err := runner.Run(model(domain.Path{ID: "void", Class: domain.ClassNormal}))
	var degenerate *domain.DegeneratePathError
	require.ErrorAs(t, err, &degenerate)
	assert.Equal(t, "void", degenerate.PathID)
}

func TestRunPausesForStopPath(t *testing.T) {
	var buf bytes.Buffer
	runner := weldr.New(config.Default(),
		weldr.WithConsumers(gcode.New(&buf, config.Default())),
	)

	stop := straightLine("stop1", domain.ClassStop, 2)
	stop.PauseMessage = "check alignment"

	require.NoError(t, runner.Run(model(stop)))

	out := buf.String()
	pause := strings.Index(out, "M0 check alignment")
	firstWeld := strings.Index(out, "Move to start of welding")
	require.Positive(t, pause)
	require.Positive(t, firstWeld)
	assert.Less(t, pause, firstWeld, "pause precedes the path's first weld")
}

func TestRunIsDeterministic(t *testing.T) {
	run := func() string {
		var buf bytes.Buffer
		runner := weldr.New(config.Default(),
			weldr.WithConsumers(gcode.New(&buf, config.Default())),
		)
		require.NoError(t, runner.Run(model(
			straightLine("a", domain.ClassNormal, 10),
			straightLine("b", domain.ClassLight, 6),
		)))
		return buf.String()
	}

	assert.Equal(t, run(), run(), "identical input yields byte-identical output")
}
