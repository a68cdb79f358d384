package ports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weldworks/weldr/pkg/domain"
	"github.com/weldworks/weldr/pkg/geometry"
)

// RunConsumerContract runs a suite of tests verifying that a Consumer
// implementation adheres to the interface contract: it accepts a
// well-formed event sequence without error and finalizes cleanly.
// Emitter packages call this from their own tests with a fresh instance
// per invocation.
func RunConsumerContract(t *testing.T, newConsumer func() Consumer) {
	point := func(x, y float64, idx int) domain.WeldPoint {
		return domain.WeldPoint{
			Position: geometry.Point{X: x, Y: y},
			Class:    domain.ClassNormal,
			Params:   domain.WeldParams{Temperature: 170, DwellTime: 1, ContactHeight: 0.1, Spacing: 2},
			PathID:   "p1",
			Index:    idx,
		}
	}

	t.Run("Full Sequence", func(t *testing.T) {
		c := newConsumer()
		require.NotEmpty(t, c.Name(), "consumer must identify itself")

		events := []domain.Event{
			domain.PathStart("p1"),
			domain.PointVisit(point(10, 10, 0)),
			domain.PointVisit(point(12, 10, 1)),
			domain.PathEnd("p1"),
			domain.SequenceComplete(),
		}
		for i, ev := range events {
			require.NoError(t, c.OnEvent(ev), "event %d (%s) should be accepted", i, ev.Kind)
		}
		assert.NoError(t, c.Finalize(), "finalize should flush without error")
	})

	t.Run("Pause Before First Point", func(t *testing.T) {
		c := newConsumer()
		events := []domain.Event{
			domain.PathStart("stop1"),
			domain.PauseRequested("stop1", "check alignment"),
			domain.PointVisit(point(5, 5, 0)),
			domain.PathEnd("stop1"),
			domain.SequenceComplete(),
		}
		for _, ev := range events {
			require.NoError(t, c.OnEvent(ev))
		}
		assert.NoError(t, c.Finalize())
	})
}
