package main

import (
	"flag"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/Albert24GG/goscale/pkg/config"
	"github.com/Albert24GG/goscale/pkg/readout"
	"github.com/Albert24GG/goscale/pkg/scale"
)

func main() {
	var (
		portFlag   = flag.String("p", "", "Serial port override (e.g., COM3 or /dev/ttyACM0)")
		configFlag = flag.String("config", "config.yaml", "Configuration file path")
		mockFlag   = flag.Bool("mock", false, "Use mocked device instead of serial port")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Override serial port if provided via command line
	if *portFlag != "" {
		cfg.Serial.Port = *portFlag
	}

	// Create Fyne application
	application := app.NewWithID("com.github.albert24gg.goscale")

	// Create main window
	window := application.NewWindow("Scale")
	window.Resize(fyne.NewSize(480, 320))
	window.CenterOnScreen()

	// Create the readout widget (the scale's "display")
	display := readout.New()

	// Create application state
	state := &appState{
		cfg:        cfg,
		configPath: *configFlag,
		display:    display,
		window:     window,
		useMock:    *mockFlag,
	}

	// Create toolbar
	toolbar := createToolbar(state)

	window.SetContent(container.NewBorder(
		toolbar,
		nil,
		nil,
		nil,
		display,
	))

	window.SetOnClosed(func() {
		closeChain(state)
	})

	window.ShowAndRun()
}

// appState holds the application state.
type appState struct {
	cfg        *config.Config
	configPath string

	display *readout.Widget
	window  fyne.Window

	connectBtn   *widget.Button
	tareBtn      *widget.Button
	calibrateBtn *widget.Button

	useMock bool
	chain   *chain // Current measurement chain (nil if not connected)
}

// createToolbar creates the application toolbar with Connect, Tare, Calibrate
// and Settings buttons.
func createToolbar(state *appState) fyne.CanvasObject {
	connectBtn := widget.NewButtonWithIcon("", theme.LoginIcon(), func() {
		handleConnect(state)
	})
	state.connectBtn = connectBtn

	settingsBtn := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		showSettingsDialog(state)
	})

	// Tare and Calibrate inject the same gestures a physical button press
	// would produce, so the controller treats them identically.
	tareBtn := widget.NewButton("Tare", func() {
		state.injectGesture(scale.ShortPress)
	})
	tareBtn.Disable()
	state.tareBtn = tareBtn

	calibrateBtn := widget.NewButton("Calibrate", func() {
		state.injectGesture(scale.LongPress)
	})
	calibrateBtn.Disable()
	state.calibrateBtn = calibrateBtn

	return container.NewBorder(
		nil, // top
		nil, // bottom
		container.NewHBox(connectBtn, settingsBtn), // left
		container.NewHBox(tareBtn, calibrateBtn),   // right
		nil, // center (spacer)
	)
}

// injectGesture feeds a gesture into the running chain, if any.
func (s *appState) injectGesture(g scale.Gesture) {
	if s.chain == nil {
		return
	}
	s.chain.InjectGesture(g)
}
