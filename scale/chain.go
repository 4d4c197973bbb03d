package main

import (
	"context"
	"fmt"
	"log"

	"fyne.io/fyne/v2/dialog"

	"github.com/Albert24GG/goscale/pkg/button"
	"github.com/Albert24GG/goscale/pkg/loadcell"
	"github.com/Albert24GG/goscale/pkg/scale"
)

const (
	sampleBufferSize  = 100
	gestureBufferSize = 8
)

// chain wires a connected device to a running controller: one goroutine fans
// the device's sample frames out into a raw-count channel and the button
// gesture classifier, and the controller consumes both through its
// non-blocking poll sources.
type chain struct {
	device   loadcell.Device
	gestures chan scale.Gesture

	cancel  context.CancelFunc
	fanDone chan struct{} // Closed when the fan-out goroutine exits
	ctlDone chan struct{} // Closed when the controller loop exits
}

// startChain connects the device and starts the fan-out and controller
// goroutines.
func startChain(state *appState, device loadcell.Device) (*chain, error) {
	if err := device.Connect(); err != nil {
		return nil, err
	}

	samples := make(chan int32, sampleBufferSize)
	gestures := make(chan scale.Gesture, gestureBufferSize)
	classifier := button.NewClassifier(state.cfg.Button.LongPress)

	fanDone := make(chan struct{})
	go func() {
		defer close(fanDone)
		defer close(samples)
		for frame := range device.Samples() {
			select {
			case samples <- frame.Count:
			default:
				// Controller is behind, drop the sample
			}

			if g, ok := classifier.Update(frame.Button, frame.Timestamp); ok {
				select {
				case gestures <- g:
				default:
					log.Printf("Gesture channel full, dropping %v", g)
				}
			}
		}
	}()

	controller := scale.New(
		state.cfg,
		scale.ChanSampleSource(samples),
		scale.ChanGestureSource(gestures),
		state.display,
	)

	// Persist newly derived scale factors so calibration survives restarts.
	controller.OnCalibrated(func(scaleFactor float64) {
		state.cfg.Calibration.ScaleFactor = scaleFactor
		if err := state.cfg.Save(state.configPath); err != nil {
			log.Printf("Failed to save calibration: %v", err)
			return
		}
		log.Printf("Calibration saved: scale factor %.4f g/count", scaleFactor)
	})

	ctx, cancel := context.WithCancel(context.Background())
	ctlDone := make(chan struct{})
	go func() {
		defer close(ctlDone)
		controller.Run(ctx)
	}()

	return &chain{
		device:   device,
		gestures: gestures,
		cancel:   cancel,
		fanDone:  fanDone,
		ctlDone:  ctlDone,
	}, nil
}

// InjectGesture feeds a synthetic gesture (from the GUI buttons) into the
// controller's gesture source.
func (c *chain) InjectGesture(g scale.Gesture) {
	select {
	case c.gestures <- g:
	default:
		log.Printf("Gesture channel full, dropping %v", g)
	}
}

// close shuts the chain down and waits for its goroutines to finish.
func (c *chain) close() {
	c.cancel()
	<-c.ctlDone

	if c.device != nil {
		c.device.Close()
	}
	<-c.fanDone
}

// closeChain gracefully closes the current measurement chain.
func closeChain(state *appState) {
	if state.chain == nil {
		return
	}
	state.chain.close()
	state.chain = nil
}

// handleConnect handles the connect/disconnect button click.
func handleConnect(state *appState) {
	if state.chain != nil {
		// Disconnect - gracefully close measurement chain
		closeChain(state)
		state.tareBtn.Disable()
		state.calibrateBtn.Disable()
		state.display.SetStatus("Disconnected")
		if state.useMock {
			log.Println("Disconnected from mocked device")
		} else {
			log.Println("Disconnected from serial port")
		}
		return
	}

	var device loadcell.Device
	if state.useMock {
		device = loadcell.NewMock(&state.cfg.Mock)
		log.Println("Using mocked device")
	} else {
		device = loadcell.New(state.cfg.Serial.Port, loadcell.DefaultBaudRate, loadcell.DefaultBufferSize)
	}

	ch, err := startChain(state, device)
	if err != nil {
		if state.useMock {
			dialog.ShowError(fmt.Errorf("failed to connect to mocked device: %w", err), state.window)
		} else {
			dialog.ShowError(fmt.Errorf("failed to connect to %s: %w", state.cfg.Serial.Port, err), state.window)
		}
		return
	}
	state.chain = ch

	state.tareBtn.Enable()
	state.calibrateBtn.Enable()
	if state.useMock {
		log.Println("Connected to mocked device")
	} else {
		log.Printf("Connected to serial port: %s", state.cfg.Serial.Port)
	}
}
