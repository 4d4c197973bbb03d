package scale

// Filter smooths a stream of raw load cell counts with a fixed-capacity
// sliding window and exposes the arithmetic mean of the window.
//
// Before the window fills up the mean is taken over however many samples have
// been pushed so far, so the very first push already yields a usable reading.
// The running sum is kept in int64 to avoid accumulating float error over long
// sessions.
type Filter struct {
	window []int32
	sum    int64
	next   int // Index the next sample overwrites
	count  int // Number of valid samples in the window
}

// NewFilter creates a filter with the given window size. Sizes below 1 are
// clamped to 1.
func NewFilter(windowSize int) *Filter {
	if windowSize < 1 {
		windowSize = 1
	}
	return &Filter{
		window: make([]int32, windowSize),
	}
}

// Push adds a raw sample to the window and returns the current filtered
// reading (mean of the window contents).
func (f *Filter) Push(raw int32) float64 {
	if f.count == len(f.window) {
		f.sum -= int64(f.window[f.next])
	} else {
		f.count++
	}
	f.window[f.next] = raw
	f.sum += int64(raw)
	f.next = (f.next + 1) % len(f.window)

	return float64(f.sum) / float64(f.count)
}

// Reset clears the window. The next Push depends only on samples pushed after
// the reset, so residual readings cannot bias a new tare or calibration run.
func (f *Filter) Reset() {
	f.sum = 0
	f.next = 0
	f.count = 0
}

// Len returns the number of samples currently in the window.
func (f *Filter) Len() int {
	return f.count
}
