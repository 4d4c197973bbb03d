// Package button classifies debounced button levels into press gestures.
//
// The firmware debounces the physical contact and reports a clean pressed
// level with every sample frame; this package watches the level edges on the
// host and turns them into the two gestures the controller understands:
// a short press (released before the long-press threshold) and a long press
// (reported once as soon as the hold crosses the threshold, without waiting
// for the release).
package button

import (
	"time"

	"github.com/Albert24GG/goscale/pkg/scale"
)

// Classifier turns a stream of (level, timestamp) observations into gestures.
// It is not safe for concurrent use; feed it from a single goroutine.
type Classifier struct {
	longPress time.Duration

	down      bool
	pressedAt time.Time
	longFired bool
}

// NewClassifier creates a classifier with the given long-press threshold.
func NewClassifier(longPress time.Duration) *Classifier {
	return &Classifier{
		longPress: longPress,
	}
}

// Update feeds the next observed button level. It returns a gesture and true
// when one completes on this observation:
//   - LongPress fires while the button is still held, exactly once per hold.
//   - ShortPress fires on release, unless a LongPress already fired for this
//     hold.
func (c *Classifier) Update(pressed bool, now time.Time) (scale.Gesture, bool) {
	switch {
	case pressed && !c.down:
		// Press started
		c.down = true
		c.pressedAt = now
		c.longFired = false

	case pressed && c.down:
		if !c.longFired && now.Sub(c.pressedAt) >= c.longPress {
			c.longFired = true
			return scale.LongPress, true
		}

	case !pressed && c.down:
		// Press ended
		c.down = false
		if !c.longFired {
			return scale.ShortPress, true
		}
	}

	return 0, false
}
