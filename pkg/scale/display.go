package scale

import (
	"fmt"
	"math"
)

// IntentKind discriminates display intents.
type IntentKind int

const (
	// IntentWeight shows the current weight.
	IntentWeight IntentKind = iota
	// IntentPrompt shows an instruction or status text.
	IntentPrompt
	// IntentError shows an error message.
	IntentError
)

// DisplayIntent is a single display instruction emitted by the controller.
// Weight is meaningful only for IntentWeight, Text only for the other kinds.
type DisplayIntent struct {
	Kind   IntentKind
	Weight float64 // Grams
	Text   string
}

// WeightIntent returns a show-weight intent.
func WeightIntent(grams float64) DisplayIntent {
	return DisplayIntent{Kind: IntentWeight, Weight: grams}
}

// PromptIntent returns a status/instruction intent.
func PromptIntent(text string) DisplayIntent {
	return DisplayIntent{Kind: IntentPrompt, Text: text}
}

// ErrorIntent returns an error message intent.
func ErrorIntent(text string) DisplayIntent {
	return DisplayIntent{Kind: IntentError, Text: text}
}

// DisplaySink receives display intents from the controller. Show is
// fire-and-forget; the controller never consumes a result and must not be
// blocked, so implementations should return quickly.
type DisplaySink interface {
	Show(intent DisplayIntent)
}

// DisplayFunc adapts a plain function to the DisplaySink interface.
type DisplayFunc func(intent DisplayIntent)

// Show implements DisplaySink.
func (f DisplayFunc) Show(intent DisplayIntent) {
	f(intent)
}

// FormatWeight renders a weight in grams for display: whole grams below a
// kilogram, kilograms with two decimals above.
func FormatWeight(grams float64) string {
	if math.Abs(grams) > 1000 {
		return fmt.Sprintf("%.2fkg", grams/1000)
	}
	return fmt.Sprintf("%dg", int(math.RoundToEven(grams)))
}
