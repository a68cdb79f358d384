package anim

import (
	"bytes"
	"strings"
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

func visitEvent(x, y float64, class domain.OperationClass) domain.Event {
	return domain.PointVisit(domain.WeldPoint{
		Position: geometry.Point{X: x, Y: y},
		Class:    class,
	})
}

func render(t *testing.T, cfg config.Config, events ...domain.Event) string {
	t.Helper()
	var buf bytes.Buffer
	e := New(&buf, cfg)
	for _, ev := range events {
		require.NoError(t, e.OnEvent(ev))
	}
	require.NoError(t, e.Finalize())
	return buf.String()
}

func TestDotsAppearInSequenceOrder(t *testing.T) {
	cfg := config.Default()
	cfg.Animation.TimeBetweenWelds = 0.5

	out := render(t, cfg,
		domain.PathStart("p1"),
		visitEvent(0, 0, domain.ClassNormal),
		visitEvent(2, 0, domain.ClassNormal),
		visitEvent(4, 0, domain.ClassNormal),
		domain.SequenceComplete(),
	)

	assert.Equal(t, 3, strings.Count(out, "<circle"))
	assert.Contains(t, out, `begin="0.00s"`)
	assert.Contains(t, out, `begin="0.50s"`)
	assert.Contains(t, out, `begin="1.00s"`)
}

func TestClassColors(t *testing.T) {
	out := render(t, config.Default(),
		visitEvent(0, 0, domain.ClassNormal),
		visitEvent(1, 0, domain.ClassLight),
		visitEvent(2, 0, domain.ClassStop),
	)

	assert.Contains(t, out, `fill="#000000"`)
	assert.Contains(t, out, `fill="#0000ff"`)
	assert.Contains(t, out, `fill="#ff0000"`)
}

func TestYAxisFlipped(t *testing.T) {
	out := render(t, config.Default(),
		visitEvent(0, 0, domain.ClassNormal),
		visitEvent(0, 10, domain.ClassNormal),
	)

	// Machine (0,10) is the top of the pattern, so it renders at the
	// smaller SVG y coordinate.
	low := strings.Index(out, `cy="20.000"`)  // machine y=0
	high := strings.Index(out, `cy="10.000"`) // machine y=10
	assert.Positive(t, low)
	assert.Positive(t, high)
	assert.Less(t, low, high, "visits render in visitation order")
}

func TestPauseCaptionEscaped(t *testing.T) {
	out := render(t, config.Default(),
		domain.PauseRequested("s", "insert <film> & continue"),
		visitEvent(0, 0, domain.ClassStop),
	)

	assert.Contains(t, out, "insert &lt;film&gt; &amp; continue")
	assert.NotContains(t, out, "<film>")
}

func TestPauseShiftsClock(t *testing.T) {
	cfg := config.Default()
	cfg.Animation.TimeBetweenWelds = 0.5
	cfg.Animation.PauseTime = 5

	out := render(t, cfg,
		visitEvent(0, 0, domain.ClassStop),
		domain.PauseRequested("s", "wait"),
		visitEvent(1, 0, domain.ClassStop),
	)

	// Second dot appears after the first weld slot plus the pause.
	assert.Contains(t, out, `begin="5.50s"`)
}
