package scale

// SampleSource supplies raw load cell counts to the controller. Poll is
// non-blocking: it returns false when no new sample is available so one
// cooperative loop can service sampling, gestures and display timing without
// ever suspending.
type SampleSource interface {
	Poll() (int32, bool)
}

// GestureSource supplies classified button gestures to the controller.
// Poll is non-blocking.
type GestureSource interface {
	Poll() (Gesture, bool)
}

// ChanSampleSource adapts a buffered channel of raw counts to SampleSource.
type ChanSampleSource <-chan int32

// Poll implements SampleSource.
func (c ChanSampleSource) Poll() (int32, bool) {
	select {
	case raw, ok := <-c:
		return raw, ok
	default:
		return 0, false
	}
}

// ChanGestureSource adapts a buffered channel of gestures to GestureSource.
type ChanGestureSource <-chan Gesture

// Poll implements GestureSource.
func (c ChanGestureSource) Poll() (Gesture, bool) {
	select {
	case g, ok := <-c:
		return g, ok
	default:
		return 0, false
	}
}
