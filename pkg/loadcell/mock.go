package loadcell

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/Albert24GG/goscale/pkg/config"
)

// Mock simulates a load cell device for testing and development. It produces
// a noisy baseline reading and periodically "places" a configured mass on the
// platform, with a short first-order settling transient so the controller's
// stability detection has something realistic to chew on.
type Mock struct {
	cfg *config.MockConfig

	samples   chan RawSample
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
	connected bool

	// Simulation state
	startTime  time.Time
	lastLoadOn time.Time
	counts     float64 // Current simulated reading before noise
	button     bool
}

// NewMock creates a new mocked device instance.
func NewMock(cfg *config.MockConfig) *Mock {
	if cfg == nil {
		cfg = &config.MockConfig{
			BaselineCounts: 42000,
			CountsPerGram:  210.0,
			NoiseCounts:    15.0,
			LoadGrams:      250.0,
			LoadDuration:   5 * time.Second,
			LoadPeriod:     15 * time.Second,
			SampleRate:     100 * time.Millisecond,
		}
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Mock{
		cfg:       cfg,
		samples:   make(chan RawSample, DefaultBufferSize),
		ctx:       ctx,
		cancel:    cancel,
		connected: false,
	}
}

// Connect simulates connecting to the device.
func (m *Mock) Connect() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.connected {
		return fmt.Errorf("already connected")
	}

	m.connected = true
	m.startTime = time.Now()
	m.lastLoadOn = m.startTime
	m.counts = float64(m.cfg.BaselineCounts)

	// Start generating samples
	go m.generateSamples()

	return nil
}

// Close stops the mocked device.
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return nil
	}

	m.cancel()
	m.connected = false
	close(m.samples)

	return nil
}

// Samples returns the channel for reading samples.
func (m *Mock) Samples() <-chan RawSample {
	return m.samples
}

// PressButton sets the simulated button level.
func (m *Mock) PressButton(pressed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.button = pressed
}

// IsConnected returns whether the device is currently connected.
func (m *Mock) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

// generateSamples generates simulated samples.
func (m *Mock) generateSamples() {
	ticker := time.NewTicker(m.cfg.SampleRate)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			sample := m.generateSample()
			select {
			case m.samples <- sample:
			case <-m.ctx.Done():
				return
			default:
				// Channel full, skip
			}
		}
	}
}

// generateSample generates a single simulated sample.
func (m *Mock) generateSample() RawSample {
	m.mu.RLock()
	now := time.Now()
	elapsed := now.Sub(m.startTime)
	loadElapsed := now.Sub(m.lastLoadOn)
	button := m.button
	m.mu.RUnlock()

	// Decide whether the mass is currently on the platform
	loadOn := false
	if loadElapsed >= m.cfg.LoadPeriod {
		// Time to place the mass again
		loadOn = true
		m.mu.Lock()
		m.lastLoadOn = now
		m.mu.Unlock()
	} else if loadElapsed < m.cfg.LoadDuration {
		// Mass is still on the platform
		loadOn = true
	}

	target := float64(m.cfg.BaselineCounts)
	if loadOn {
		target += m.cfg.LoadGrams * m.cfg.CountsPerGram
	}

	// First-order settling toward the target so placing/removing the mass
	// looks like a real platform bouncing into place.
	settleTimeConstant := 0.3 // seconds
	dt := m.cfg.SampleRate.Seconds()
	alpha := dt / settleTimeConstant
	if alpha > 1 {
		alpha = 1
	}
	m.counts += alpha * (target - m.counts)

	// Deterministic pseudo-noise
	noise := (math.Sin(float64(elapsed.Nanoseconds())*0.001) +
		math.Cos(float64(elapsed.Nanoseconds())*0.0013)) *
		m.cfg.NoiseCounts * 0.5

	value := m.counts + noise
	if value > float64(hx711MaxCount-1) {
		value = float64(hx711MaxCount - 1)
	} else if value < float64(-hx711MaxCount) {
		value = float64(-hx711MaxCount)
	}

	return RawSample{
		Timestamp: now,
		Count:     int32(value),
		Button:    button,
	}
}
