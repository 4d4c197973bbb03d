package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.NotNil(t, cfg)
	assert.Equal(t, "COM3", cfg.Serial.Port)
	assert.Equal(t, 16, cfg.Filter.WindowSize)
	assert.Equal(t, float64(40), cfg.Stability.Tolerance)
	assert.Equal(t, 5, cfg.Stability.Samples)
	assert.Equal(t, float64(2000), cfg.Calibration.ReferenceWeight)
	assert.Zero(t, cfg.Calibration.ScaleFactor)
	assert.True(t, cfg.Calibration.Auto)
	assert.Equal(t, 3*time.Second, cfg.Button.LongPress)
	assert.Equal(t, 10*time.Millisecond, cfg.Controller.TickInterval)
	assert.Equal(t, 500*time.Millisecond, cfg.Controller.DisplayInterval)
	assert.Equal(t, int32(42000), cfg.Mock.BaselineCounts)
}

func TestLoad_FileNotExists(t *testing.T) {
	cfg, err := Load("nonexistent.yaml")
	require.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, "COM3", cfg.Serial.Port)
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	yamlContent := `
serial:
  port: "/dev/ttyACM0"

filter:
  window_size: 20

stability:
  tolerance: 25
  samples: 8

calibration:
  reference_weight: 1000
  scale_factor: 212.5
  auto: false

button:
  long_press: 2s

controller:
  tick_interval: 5ms
  display_interval: 250ms
`
	_, err = tmpfile.WriteString(yamlContent)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	require.NoError(t, err)

	assert.Equal(t, "/dev/ttyACM0", cfg.Serial.Port)
	assert.Equal(t, 20, cfg.Filter.WindowSize)
	assert.Equal(t, float64(25), cfg.Stability.Tolerance)
	assert.Equal(t, 8, cfg.Stability.Samples)
	assert.Equal(t, float64(1000), cfg.Calibration.ReferenceWeight)
	assert.Equal(t, 212.5, cfg.Calibration.ScaleFactor)
	assert.False(t, cfg.Calibration.Auto)
	assert.Equal(t, 2*time.Second, cfg.Button.LongPress)
	assert.Equal(t, 5*time.Millisecond, cfg.Controller.TickInterval)
	assert.Equal(t, 250*time.Millisecond, cfg.Controller.DisplayInterval)

	// Sections absent from the file keep their defaults
	assert.Equal(t, int32(42000), cfg.Mock.BaselineCounts)
}

func TestLoad_PartialYAMLBackfillsDefaults(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	_, err = tmpfile.WriteString("serial:\n  port: \"/dev/ttyUSB0\"\n")
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	require.NoError(t, err)

	assert.Equal(t, "/dev/ttyUSB0", cfg.Serial.Port)
	assert.Equal(t, 16, cfg.Filter.WindowSize)
	assert.Equal(t, float64(40), cfg.Stability.Tolerance)
	assert.Equal(t, 3*time.Second, cfg.Button.LongPress)
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	_, err = tmpfile.WriteString("serial: [not a mapping")
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	_, err = Load(tmpfile.Name())
	assert.Error(t, err)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := Default()
	cfg.Serial.Port = "/dev/ttyACM1"
	cfg.Calibration.ScaleFactor = 0.0048 // Persisted calibration
	cfg.Calibration.Auto = false

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/dev/ttyACM1", loaded.Serial.Port)
	assert.Equal(t, 0.0048, loaded.Calibration.ScaleFactor)
	assert.False(t, loaded.Calibration.Auto)
	assert.Equal(t, cfg.Controller.TickInterval, loaded.Controller.TickInterval)
}

func TestEnsureDefaults_KeepsZeroScaleFactor(t *testing.T) {
	cfg := &Config{}
	cfg.ensureDefaults()

	// Zero means "never calibrated" and must survive the backfill
	assert.Zero(t, cfg.Calibration.ScaleFactor)
	assert.Equal(t, float64(2000), cfg.Calibration.ReferenceWeight)
	assert.Equal(t, 16, cfg.Filter.WindowSize)
}
