package gif

import (
	"bytes"
	stdgif "image/gif"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weldworks/weldr/pkg/config"
	"github.com/weldworks/weldr/pkg/domain"
	"github.com/weldworks/weldr/pkg/geometry"
	"github.com/weldworks/weldr/pkg/ports"
)

func TestConsumerContract(t *testing.T) {
	ports.RunConsumerContract(t, func() ports.Consumer {
		return New(&bytes.Buffer{}, config.Default())
	})
}

func visit(x, y float64) domain.Event {
	return domain.PointVisit(domain.WeldPoint{
		Position: geometry.Point{X: x, Y: y},
		Class:    domain.ClassNormal,
	})
}

func TestOneFramePerVisitPlusFinalHold(t *testing.T) {
	var buf bytes.Buffer
	e := New(&buf, config.Default())

	events := []domain.Event{
		domain.PathStart("p1"),
		visit(0, 0),
		visit(5, 0),
		visit(10, 0),
		domain.PathEnd("p1"),
		domain.SequenceComplete(),
	}
	for _, ev := range events {
		require.NoError(t, e.OnEvent(ev))
	}
	require.NoError(t, e.Finalize())

	decoded, err := stdgif.DecodeAll(&buf)
	require.NoError(t, err)
	assert.Len(t, decoded.Image, 4, "three visit frames plus the hold frame")
	assert.Equal(t, 300, decoded.Delay[len(decoded.Delay)-1])
}

func TestPauseFrameUsesPauseDelay(t *testing.T) {
	cfg := config.Default()
	cfg.Animation.PauseTime = 3 // 300 cs

	var buf bytes.Buffer
	e := New(&buf, cfg)
	events := []domain.Event{
		domain.PathStart("s"),
		domain.PauseRequested("s", "check alignment"),
		visit(0, 0),
		visit(1, 1),
		domain.SequenceComplete(),
	}
	for _, ev := range events {
		require.NoError(t, e.OnEvent(ev))
	}
	require.NoError(t, e.Finalize())

	decoded, err := stdgif.DecodeAll(&buf)
	require.NoError(t, err)
	require.Len(t, decoded.Delay, 4)
	assert.Equal(t, 300, decoded.Delay[0], "pause frame holds for the configured pause time")
}

func TestEmptySequenceWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	e := New(&buf, config.Default())
	require.NoError(t, e.OnEvent(domain.SequenceComplete()))
	require.NoError(t, e.Finalize())
	assert.Empty(t, buf.Bytes())
}
