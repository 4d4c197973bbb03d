package scale

import "errors"

var (
	// ErrUncalibrated is returned by Apply before any successful calibration.
	ErrUncalibrated = errors.New("scale is not calibrated")
	// ErrDegenerateCalibration is returned by DeriveScale when the reference
	// weight produced no measurable reading delta or the weight itself is not
	// positive. The model is left untouched.
	ErrDegenerateCalibration = errors.New("degenerate calibration")
)

// Model holds the single-point linear calibration of the scale: a tare offset
// in filtered-reading units and a scale factor in grams per count.
//
// The zero value is an uncalibrated model. The scale factor is strictly
// positive once calibration has completed; a failed DeriveScale never leaves
// the model partially updated.
type Model struct {
	tareOffset  float64
	scaleFactor float64
	calibrated  bool
}

// NewModel returns an uncalibrated model.
func NewModel() *Model {
	return &Model{}
}

// NewSeededModel returns a model preloaded with a previously derived scale
// factor, e.g. one persisted by the application across restarts. A
// non-positive factor yields an uncalibrated model.
func NewSeededModel(scaleFactor float64) *Model {
	m := &Model{}
	if scaleFactor > 0 {
		m.scaleFactor = scaleFactor
		m.calibrated = true
	}
	return m
}

// Apply converts a filtered reading into a weight in grams.
// Fails with ErrUncalibrated if no scale factor has ever been derived.
func (m *Model) Apply(reading float64) (float64, error) {
	if !m.calibrated {
		return 0, ErrUncalibrated
	}
	return m.scaleFactor * (reading - m.tareOffset), nil
}

// SetTare records the current no-load reading as the zero point. It has no
// preconditions and is idempotent.
func (m *Model) SetTare(reading float64) {
	m.tareOffset = reading
}

// DeriveScale computes the scale factor from a filtered reading taken with a
// known reference weight on the platform.
//
// Fails with ErrDegenerateCalibration when the weight is not positive or the
// reading does not exceed the tare offset (no delta means division by zero; a
// negative delta would produce a negative factor, which the model forbids).
// On failure the previous scale factor, if any, is retained.
func (m *Model) DeriveScale(reading, knownWeight float64) error {
	if knownWeight <= 0 {
		return ErrDegenerateCalibration
	}
	delta := reading - m.tareOffset
	if delta <= 0 {
		return ErrDegenerateCalibration
	}

	m.scaleFactor = knownWeight / delta
	m.calibrated = true
	return nil
}

// Calibrated reports whether a scale factor is available.
func (m *Model) Calibrated() bool {
	return m.calibrated
}

// TareOffset returns the current tare offset in filtered-reading units.
func (m *Model) TareOffset() float64 {
	return m.tareOffset
}

// ScaleFactor returns the current scale factor in grams per count
// (0 while uncalibrated).
func (m *Model) ScaleFactor() float64 {
	return m.scaleFactor
}
