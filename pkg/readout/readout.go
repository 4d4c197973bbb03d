// Package readout provides the scale's main display widget: a large weight
// figure with a status line underneath, standing in for the SSD1306 panel of
// the physical device.
package readout

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/Albert24GG/goscale/pkg/scale"
)

// Widget is a custom Fyne widget that renders display intents from the scale
// controller.
type Widget struct {
	widget.BaseWidget

	// Data (protected by mu)
	mu      sync.RWMutex
	weight  string
	status  string
	isError bool
}

// New creates a new readout widget.
func New() *Widget {
	w := &Widget{
		weight: "--",
		status: "Disconnected",
	}
	w.ExtendBaseWidget(w)
	return w
}

// Show implements scale.DisplaySink. It may be called from the controller
// goroutine; the refresh is scheduled onto the Fyne main thread.
func (w *Widget) Show(intent scale.DisplayIntent) {
	w.mu.Lock()
	switch intent.Kind {
	case scale.IntentWeight:
		w.weight = scale.FormatWeight(intent.Weight)
		w.isError = false
	case scale.IntentPrompt:
		w.status = intent.Text
		w.isError = false
	case scale.IntentError:
		w.status = intent.Text
		w.isError = true
	}
	w.mu.Unlock()

	fyne.Do(w.Refresh)
}

// SetStatus sets the status line directly (used for connection state changes
// that do not come from the controller).
func (w *Widget) SetStatus(status string) {
	w.mu.Lock()
	w.status = status
	w.isError = false
	w.mu.Unlock()

	fyne.Do(w.Refresh)
}

// CreateRenderer creates the widget renderer.
func (w *Widget) CreateRenderer() fyne.WidgetRenderer {
	background := canvas.NewRectangle(color.RGBA{R: 20, G: 20, B: 20, A: 255})

	weightText := canvas.NewText("--", color.White)
	weightText.TextSize = 64
	weightText.TextStyle = fyne.TextStyle{Bold: true}
	weightText.Alignment = fyne.TextAlignCenter

	statusText := canvas.NewText("", color.RGBA{R: 180, G: 180, B: 180, A: 255})
	statusText.TextSize = 18
	statusText.Alignment = fyne.TextAlignCenter

	return &readoutRenderer{
		readout:    w,
		background: background,
		weightText: weightText,
		statusText: statusText,
		objects:    []fyne.CanvasObject{background, weightText, statusText},
	}
}

// readoutRenderer renders the readout widget.
type readoutRenderer struct {
	readout *Widget

	background *canvas.Rectangle
	weightText *canvas.Text
	statusText *canvas.Text

	objects []fyne.CanvasObject
}

// MinSize returns the minimum size of the widget.
func (r *readoutRenderer) MinSize() fyne.Size {
	return fyne.NewSize(360, 180)
}

// Layout arranges the widget components.
func (r *readoutRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)

	r.weightText.Resize(fyne.NewSize(size.Width, size.Height*0.65))
	r.weightText.Move(fyne.NewPos(0, size.Height*0.08))

	r.statusText.Resize(fyne.NewSize(size.Width, size.Height*0.25))
	r.statusText.Move(fyne.NewPos(0, size.Height*0.72))
}

// Refresh updates the widget display.
func (r *readoutRenderer) Refresh() {
	r.readout.mu.RLock()
	weight := r.readout.weight
	status := r.readout.status
	isError := r.readout.isError
	r.readout.mu.RUnlock()

	r.weightText.Text = weight
	r.statusText.Text = status
	if isError {
		r.statusText.Color = color.RGBA{R: 230, G: 80, B: 80, A: 255}
	} else {
		r.statusText.Color = color.RGBA{R: 180, G: 180, B: 180, A: 255}
	}

	canvas.Refresh(r.weightText)
	canvas.Refresh(r.statusText)
}

// Objects returns the renderer's canvas objects.
func (r *readoutRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

// Destroy cleans up renderer resources.
func (r *readoutRenderer) Destroy() {}
