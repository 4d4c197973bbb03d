package loadcell

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Albert24GG/goscale/pkg/config"
)

func testMockConfig() *config.MockConfig {
	return &config.MockConfig{
		BaselineCounts: 42000,
		CountsPerGram:  210.0,
		NoiseCounts:    10.0,
		LoadGrams:      250.0,
		LoadDuration:   time.Hour, // Keep the load schedule out of the way
		LoadPeriod:     24 * time.Hour,
		SampleRate:     2 * time.Millisecond,
	}
}

func collectSamples(t *testing.T, m *Mock, n int) []RawSample {
	t.Helper()
	samples := make([]RawSample, 0, n)
	timeout := time.After(2 * time.Second)
	for len(samples) < n {
		select {
		case s, ok := <-m.Samples():
			require.True(t, ok, "samples channel closed early")
			samples = append(samples, s)
		case <-timeout:
			t.Fatalf("timed out waiting for samples, got %d of %d", len(samples), n)
		}
	}
	return samples
}

func TestMock_ConnectAndSample(t *testing.T) {
	// LoadPeriod far in the future, so the platform stays near baseline
	cfg := testMockConfig()
	cfg.LoadDuration = 0
	m := NewMock(cfg)

	require.NoError(t, m.Connect())
	defer m.Close()

	assert.True(t, m.IsConnected())

	samples := collectSamples(t, m, 5)
	for _, s := range samples {
		assert.InDelta(t, float64(cfg.BaselineCounts), float64(s.Count), 500,
			"baseline sample far from configured baseline")
		assert.False(t, s.Button)
		assert.False(t, s.Timestamp.IsZero())
	}
}

func TestMock_ConnectTwiceFails(t *testing.T) {
	m := NewMock(testMockConfig())

	require.NoError(t, m.Connect())
	defer m.Close()

	assert.Error(t, m.Connect())
}

func TestMock_PressButton(t *testing.T) {
	m := NewMock(testMockConfig())

	require.NoError(t, m.Connect())
	defer m.Close()

	m.PressButton(true)
	// Drain a few frames; the level must show up once set
	deadline := time.After(2 * time.Second)
	for {
		select {
		case s, ok := <-m.Samples():
			require.True(t, ok, "samples channel closed early")
			if s.Button {
				return
			}
		case <-deadline:
			t.Fatal("button press never reflected in samples")
		}
	}
}

func TestMock_NilConfigUsesDefaults(t *testing.T) {
	m := NewMock(nil)

	require.NoError(t, m.Connect())
	defer m.Close()

	samples := collectSamples(t, m, 1)
	assert.NotZero(t, samples[0].Count)
}
