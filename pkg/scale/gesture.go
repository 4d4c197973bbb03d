package scale

// Gesture is a classified, already-debounced button press.
type Gesture int

const (
	// ShortPress is a press released before the long-press threshold.
	ShortPress Gesture = iota
	// LongPress is a press held past the long-press threshold.
	LongPress
)

// String returns a human-readable gesture name.
func (g Gesture) String() string {
	switch g {
	case ShortPress:
		return "short press"
	case LongPress:
		return "long press"
	default:
		return "unknown"
	}
}

// Command is a controller command produced by routing a gesture.
type Command int

const (
	// CommandNone means the gesture is ignored in the current state.
	CommandNone Command = iota
	// CommandTare requests a new tare.
	CommandTare
	// CommandCalibrate requests a new calibration pass.
	CommandCalibrate
)

// RouteGesture maps a button gesture onto a controller command for the given
// state. Gestures arriving while a tare or calibration step is already in
// flight are dropped rather than queued, so a step can never be restarted or
// overlapped mid-sequence.
func RouteGesture(g Gesture, state State) Command {
	if state != StateReady {
		return CommandNone
	}
	switch g {
	case ShortPress:
		return CommandTare
	case LongPress:
		return CommandCalibrate
	default:
		return CommandNone
	}
}
