package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weldworks/weldr/pkg/domain"
	"github.com/weldworks/weldr/pkg/geometry"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, geometry.Point{X: 125, Y: 110}, cfg.Machine.TargetCenter())
	assert.Equal(t, "skip", cfg.Sequencing.Strategy)
	assert.Equal(t, 5, cfg.Sequencing.SkipBaseDistance)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weldr.yaml")
	content := []byte(`
machine:
  bed_size_x: 300
sequencing:
  strategy: farthest
welds:
  light:
    temperature: 145
    dwell_time: 0.4
    contact_height: 0.2
    spacing: 1.5
`)
	require.NoError(t, os.WriteFile(path, content, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 300.0, cfg.Machine.BedSizeX)
	assert.Equal(t, 220.0, cfg.Machine.BedSizeY, "untouched fields keep defaults")
	assert.Equal(t, "farthest", cfg.Sequencing.Strategy)
	assert.Equal(t, 145.0, cfg.Welds[domain.ClassLight].Temperature)
	assert.Equal(t, 1.5, cfg.Welds[domain.ClassLight].Spacing)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weldr.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sequencing:\n  skip_base_distance: 1\n"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "skip_base_distance")
}

func TestDefaultsUnknownClassFallsBackToNormal(t *testing.T) {
	cfg := Default()
	params := cfg.Defaults(domain.OperationClass("mystery"))
	assert.Equal(t, cfg.Defaults(domain.ClassNormal), params)
}

func TestValidateRanges(t *testing.T) {
	cfg := Default()
	cfg.Welds[domain.ClassNormal] = WeldClass{Temperature: 400, DwellTime: 1, ContactHeight: 0.1, Spacing: 2}
	assert.ErrorContains(t, cfg.Validate(), "temperature")

	cfg = Default()
	cfg.Machine.BedSizeX = 0
	assert.ErrorContains(t, cfg.Validate(), "bed size")

	cfg = Default()
	cfg.Welds["frangible"] = WeldClass{Temperature: 100, DwellTime: 1, ContactHeight: 0.1, Spacing: 2}
	assert.ErrorContains(t, cfg.Validate(), "unknown weld class")
}
