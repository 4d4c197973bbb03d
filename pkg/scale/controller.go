package scale

import (
	"context"
	"fmt"
	"time"

	"github.com/Albert24GG/goscale/pkg/config"
)

// State is the controller's mode.
type State int

const (
	// StateAwaitingTare waits for a stable no-load reading to capture as the
	// tare offset. Entered at startup and on every tare request.
	StateAwaitingTare State = iota
	// StateAwaitingCalibrationWeight waits for a stable reading with the
	// reference weight on the platform to derive the scale factor.
	StateAwaitingCalibrationWeight
	// StateReady continuously converts readings to weights. Button gestures
	// are acted on only in this state.
	StateReady
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateAwaitingTare:
		return "awaiting tare"
	case StateAwaitingCalibrationWeight:
		return "awaiting calibration weight"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Controller is the scale state machine. It exclusively owns the calibration
// model and the sample filter and mutates them from a single cooperative tick
// loop; there is no concurrent mutation to guard against.
type Controller struct {
	cfg *config.Config

	model     *Model
	filter    *Filter
	stability *stabilityDetector

	samples  SampleSource
	gestures GestureSource
	display  DisplaySink

	state   State
	started bool

	lastWeightShown time.Time
	onCalibrated    []func(scaleFactor float64)
}

// New creates a controller. A positive persisted scale factor in the config
// seeds the model so the scale is usable right after the boot tare; the tare
// offset itself is never persisted and is always re-captured at startup.
func New(cfg *config.Config, samples SampleSource, gestures GestureSource, display DisplaySink) *Controller {
	return &Controller{
		cfg:       cfg,
		model:     NewSeededModel(cfg.Calibration.ScaleFactor),
		filter:    NewFilter(cfg.Filter.WindowSize),
		stability: newStabilityDetector(cfg.Stability.Tolerance, cfg.Stability.Samples),
		samples:   samples,
		gestures:  gestures,
		display:   display,
		state:     StateAwaitingTare,
	}
}

// State returns the controller's current state.
func (c *Controller) State() State {
	return c.state
}

// Model returns the calibration model owned by the controller. Callers must
// treat it as read-only; all mutation goes through the tick loop.
func (c *Controller) Model() *Model {
	return c.model
}

// OnCalibrated registers a callback invoked from the tick loop whenever a
// calibration pass derives a new scale factor. Callbacks should return
// quickly.
func (c *Controller) OnCalibrated(callback func(scaleFactor float64)) {
	c.onCalibrated = append(c.onCalibrated, callback)
}

// Run drives the tick loop at the configured interval until ctx is cancelled.
func (c *Controller) Run(ctx context.Context) {
	ticker := time.NewTicker(c.cfg.Controller.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Tick()
		}
	}
}

// Tick runs one iteration of the control loop: poll and route a pending
// gesture, then pull at most one raw sample through the filter and the current
// state's logic. At most one display intent is emitted per tick; a tick that
// changes state is consumed by the transition.
func (c *Controller) Tick() {
	if !c.started {
		c.started = true
		c.enterTare()
		return
	}

	if g, ok := c.gestures.Poll(); ok {
		switch RouteGesture(g, c.state) {
		case CommandTare:
			c.enterTare()
			return
		case CommandCalibrate:
			c.enterCalibration()
			return
		}
		// Ignored gestures fall through to normal sample processing.
	}

	raw, ok := c.samples.Poll()
	if !ok {
		// No sample this tick is not an error, just skip the filter update.
		return
	}
	reading := c.filter.Push(raw)

	switch c.state {
	case StateAwaitingTare:
		c.tickTare(reading)
	case StateAwaitingCalibrationWeight:
		c.tickCalibration(reading)
	case StateReady:
		c.tickReady(reading)
	}
}

// enterTare starts a new tare step.
func (c *Controller) enterTare() {
	c.state = StateAwaitingTare
	c.filter.Reset()
	c.stability.reset()
	c.display.Show(PromptIntent("Remove load, taring..."))
}

// enterCalibration starts a new calibration step (the reference-weight half;
// the zero point is whatever the last tare captured).
func (c *Controller) enterCalibration() {
	c.state = StateAwaitingCalibrationWeight
	c.filter.Reset()
	c.stability.reset()
	c.display.Show(PromptIntent(fmt.Sprintf("Place %.0fg weight", c.cfg.Calibration.ReferenceWeight)))
}

// tickTare waits for a stable no-load reading, captures it as the tare offset
// and returns to Ready. With auto-calibration enabled and no scale factor yet,
// it proceeds straight into the calibration step instead, which is how the
// device runs its first-boot calibration.
func (c *Controller) tickTare(reading float64) {
	if !c.stability.observe(reading) {
		return
	}

	c.model.SetTare(reading)

	if c.cfg.Calibration.Auto && !c.model.Calibrated() {
		c.enterCalibration()
		return
	}

	c.filter.Reset()
	c.stability.reset()
	c.state = StateReady
	c.display.Show(PromptIntent("Tare complete"))
}

// tickCalibration waits for a stable reading with the reference weight on the
// platform and derives the scale factor from it. A degenerate reading aborts
// the attempt without touching the model: back to Ready when a previous
// calibration exists, back to the tare step when none does.
func (c *Controller) tickCalibration(reading float64) {
	if !c.stability.observe(reading) {
		return
	}

	err := c.model.DeriveScale(reading, c.cfg.Calibration.ReferenceWeight)
	c.filter.Reset()
	c.stability.reset()

	if err != nil {
		if c.model.Calibrated() {
			c.state = StateReady
		} else {
			c.state = StateAwaitingTare
		}
		c.display.Show(ErrorIntent("Calibration failed"))
		return
	}

	for _, callback := range c.onCalibrated {
		callback(c.model.ScaleFactor())
	}

	c.state = StateReady
	c.display.Show(PromptIntent("Calibration complete"))
}

// tickReady converts the reading to a weight and refreshes the display at the
// configured rate. An uncalibrated model here means the state was reached
// without a scale factor; the controller recovers by starting a new tare.
func (c *Controller) tickReady(reading float64) {
	weight, err := c.model.Apply(reading)
	if err != nil {
		c.state = StateAwaitingTare
		c.filter.Reset()
		c.stability.reset()
		c.display.Show(ErrorIntent("Calibration required"))
		return
	}

	if c.cfg.Controller.DisplayInterval > 0 {
		now := time.Now()
		if now.Sub(c.lastWeightShown) < c.cfg.Controller.DisplayInterval {
			return
		}
		c.lastWeightShown = now
	}
	c.display.Show(WeightIntent(weight))
}
