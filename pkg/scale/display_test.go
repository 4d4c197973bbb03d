package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatWeight(t *testing.T) {
	tests := []struct {
		name  string
		grams float64
		want  string
	}{
		{
			name:  "zero",
			grams: 0,
			want:  "0g",
		},
		{
			name:  "whole grams",
			grams: 42,
			want:  "42g",
		},
		{
			name:  "rounds fractional grams",
			grams: 41.6,
			want:  "42g",
		},
		{
			name:  "exactly a kilogram stays in grams",
			grams: 1000,
			want:  "1000g",
		},
		{
			name:  "above a kilogram switches to kg",
			grams: 1250,
			want:  "1.25kg",
		},
		{
			name:  "negative grams",
			grams: -12,
			want:  "-12g",
		},
		{
			name:  "negative kilograms",
			grams: -1500,
			want:  "-1.50kg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatWeight(tt.grams))
		})
	}
}

func TestIntentConstructors(t *testing.T) {
	w := WeightIntent(123.4)
	assert.Equal(t, IntentWeight, w.Kind)
	assert.InDelta(t, 123.4, w.Weight, 1e-9)

	p := PromptIntent("taring")
	assert.Equal(t, IntentPrompt, p.Kind)
	assert.Equal(t, "taring", p.Text)

	e := ErrorIntent("oops")
	assert.Equal(t, IntentError, e.Kind)
	assert.Equal(t, "oops", e.Text)
}

func TestChanSources_NonBlocking(t *testing.T) {
	samples := make(chan int32, 1)
	src := ChanSampleSource(samples)

	_, ok := src.Poll()
	assert.False(t, ok, "empty channel must not report a sample")

	samples <- 42
	raw, ok := src.Poll()
	assert.True(t, ok)
	assert.Equal(t, int32(42), raw)

	gestures := make(chan Gesture, 1)
	gsrc := ChanGestureSource(gestures)

	_, ok = gsrc.Poll()
	assert.False(t, ok, "empty channel must not report a gesture")

	gestures <- LongPress
	g, ok := gsrc.Poll()
	assert.True(t, ok)
	assert.Equal(t, LongPress, g)
}
