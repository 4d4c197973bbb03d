package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModel_UncalibratedUntilDerive(t *testing.T) {
	m := NewModel()

	assert.False(t, m.Calibrated())
	_, err := m.Apply(123)
	assert.ErrorIs(t, err, ErrUncalibrated)

	// Taring alone does not calibrate
	m.SetTare(100)
	_, err = m.Apply(123)
	assert.ErrorIs(t, err, ErrUncalibrated)

	require.NoError(t, m.DeriveScale(150, 500))
	assert.True(t, m.Calibrated())
	_, err = m.Apply(123)
	assert.NoError(t, err)
}

func TestModel_DeriveScaleWorkedExample(t *testing.T) {
	m := NewModel()
	m.SetTare(100)

	require.NoError(t, m.DeriveScale(150, 500))
	assert.InDelta(t, 10.0, m.ScaleFactor(), 1e-9)

	weight, err := m.Apply(200)
	require.NoError(t, err)
	assert.InDelta(t, 1000.0, weight, 1e-9)
}

func TestModel_DeriveScaleDegenerate(t *testing.T) {
	tests := []struct {
		name        string
		tare        float64
		reading     float64
		knownWeight float64
	}{
		{
			name:        "reading equals tare offset",
			tare:        100,
			reading:     100,
			knownWeight: 500,
		},
		{
			name:        "reading below tare offset",
			tare:        100,
			reading:     50,
			knownWeight: 500,
		},
		{
			name:        "zero known weight",
			tare:        100,
			reading:     150,
			knownWeight: 0,
		},
		{
			name:        "negative known weight",
			tare:        100,
			reading:     150,
			knownWeight: -10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel()
			m.SetTare(tt.tare)

			err := m.DeriveScale(tt.reading, tt.knownWeight)
			assert.ErrorIs(t, err, ErrDegenerateCalibration)

			// A failed derivation leaves the model untouched
			assert.False(t, m.Calibrated())
			assert.Zero(t, m.ScaleFactor())
			_, err = m.Apply(tt.reading)
			assert.ErrorIs(t, err, ErrUncalibrated)
		})
	}
}

func TestModel_FailedDeriveRetainsPreviousCalibration(t *testing.T) {
	m := NewModel()
	m.SetTare(100)
	require.NoError(t, m.DeriveScale(150, 500))

	err := m.DeriveScale(100, 500)
	assert.ErrorIs(t, err, ErrDegenerateCalibration)
	assert.True(t, m.Calibrated())
	assert.InDelta(t, 10.0, m.ScaleFactor(), 1e-9)
}

func TestModel_SetTareIdempotent(t *testing.T) {
	m := NewModel()
	m.SetTare(100)
	m.SetTare(100)
	require.NoError(t, m.DeriveScale(150, 500))

	// Re-taring after calibration shifts the zero point, not the slope
	m.SetTare(120)
	assert.InDelta(t, 10.0, m.ScaleFactor(), 1e-9)
	weight, err := m.Apply(170)
	require.NoError(t, err)
	assert.InDelta(t, 500.0, weight, 1e-9)
}

func TestNewSeededModel(t *testing.T) {
	t.Run("positive factor", func(t *testing.T) {
		m := NewSeededModel(10)
		assert.True(t, m.Calibrated())

		m.SetTare(100)
		weight, err := m.Apply(150)
		require.NoError(t, err)
		assert.InDelta(t, 500.0, weight, 1e-9)
	})

	t.Run("zero factor stays uncalibrated", func(t *testing.T) {
		m := NewSeededModel(0)
		assert.False(t, m.Calibrated())
	})

	t.Run("negative factor stays uncalibrated", func(t *testing.T) {
		m := NewSeededModel(-3)
		assert.False(t, m.Calibrated())
	})
}
