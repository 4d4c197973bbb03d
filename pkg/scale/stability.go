package scale

import "math"

// stabilityDetector declares a filtered reading trustworthy once its
// tick-to-tick change stays within a tolerance for a minimum run length.
// This debounces the mechanical settling of the load cell after the platform
// is loaded or unloaded.
type stabilityDetector struct {
	tolerance float64
	needed    int

	prev    float64
	hasPrev bool
	run     int
}

func newStabilityDetector(tolerance float64, samples int) *stabilityDetector {
	if samples < 1 {
		samples = 1
	}
	return &stabilityDetector{
		tolerance: tolerance,
		needed:    samples,
	}
}

// observe feeds the next filtered reading and reports whether the reading has
// been stable for the required run length.
func (d *stabilityDetector) observe(reading float64) bool {
	if !d.hasPrev {
		d.prev = reading
		d.hasPrev = true
		return false
	}

	if math.Abs(reading-d.prev) <= d.tolerance {
		d.run++
	} else {
		d.run = 0
	}
	d.prev = reading

	return d.run >= d.needed
}

// reset discards any accumulated run so a new tare or calibration step starts
// from scratch.
func (d *stabilityDetector) reset() {
	d.hasPrev = false
	d.run = 0
}
