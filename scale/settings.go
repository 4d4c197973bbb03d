package main

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/Albert24GG/goscale/pkg/loadcell"
)

// showSettingsDialog displays a settings dialog with tabs for the
// configuration options.
func showSettingsDialog(state *appState) {
	tabs := container.NewAppTabs(
		createSerialTab(state),
		createCalibrationTab(state),
		createMeasurementTab(state),
	)

	content := container.NewBorder(nil, nil, nil, nil, tabs)
	content.Resize(fyne.NewSize(500, 400))

	d := dialog.NewCustom("Settings", "Close", content, state.window)
	d.Resize(fyne.NewSize(500, 400))
	d.Show()
}

// createSerialTab creates the Serial configuration tab.
func createSerialTab(state *appState) *container.TabItem {
	ports, err := loadcell.Ports()
	portOptions := []string{}
	if err == nil {
		for _, port := range ports {
			portOptions = append(portOptions, port.Name)
		}
	}

	// Add current port if not in list
	currentPort := state.cfg.Serial.Port
	found := false
	for _, opt := range portOptions {
		if opt == currentPort {
			found = true
			break
		}
	}
	if !found && currentPort != "" {
		portOptions = append(portOptions, currentPort)
	}

	portSelect := widget.NewSelect(portOptions, nil)
	if currentPort != "" {
		portSelect.SetSelected(currentPort)
	}

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Serial Port", Widget: portSelect},
		},
		OnSubmit: func() {
			if portSelect.Selected == "" {
				return
			}
			state.cfg.Serial.Port = portSelect.Selected
			saveConfig(state)
		},
		SubmitText: "Apply",
	}

	return container.NewTabItem("Serial", form)
}

// createCalibrationTab creates the Calibration configuration tab.
func createCalibrationTab(state *appState) *container.TabItem {
	refEntry := widget.NewEntry()
	refEntry.SetText(fmt.Sprintf("%.0f", state.cfg.Calibration.ReferenceWeight))

	autoCheck := widget.NewCheck("Calibrate automatically after boot tare", nil)
	autoCheck.SetChecked(state.cfg.Calibration.Auto)

	factorLabel := widget.NewLabel(formatFactor(state.cfg.Calibration.ScaleFactor))

	clearBtn := widget.NewButton("Clear stored calibration", func() {
		state.cfg.Calibration.ScaleFactor = 0
		factorLabel.SetText(formatFactor(0))
		saveConfig(state)
	})

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Reference weight (g)", Widget: refEntry},
			{Text: "", Widget: autoCheck},
			{Text: "Stored scale factor", Widget: factorLabel},
			{Text: "", Widget: clearBtn},
		},
		OnSubmit: func() {
			ref, err := strconv.ParseFloat(refEntry.Text, 64)
			if err != nil || ref <= 0 {
				dialog.ShowError(fmt.Errorf("invalid reference weight: %q", refEntry.Text), state.window)
				return
			}
			state.cfg.Calibration.ReferenceWeight = ref
			state.cfg.Calibration.Auto = autoCheck.Checked
			saveConfig(state)
		},
		SubmitText: "Apply",
	}

	return container.NewTabItem("Calibration", form)
}

// createMeasurementTab creates the filter/stability configuration tab.
func createMeasurementTab(state *appState) *container.TabItem {
	windowEntry := widget.NewEntry()
	windowEntry.SetText(strconv.Itoa(state.cfg.Filter.WindowSize))

	toleranceEntry := widget.NewEntry()
	toleranceEntry.SetText(fmt.Sprintf("%.0f", state.cfg.Stability.Tolerance))

	samplesEntry := widget.NewEntry()
	samplesEntry.SetText(strconv.Itoa(state.cfg.Stability.Samples))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Filter window (samples)", Widget: windowEntry},
			{Text: "Stability tolerance (counts)", Widget: toleranceEntry},
			{Text: "Stability run length", Widget: samplesEntry},
		},
		OnSubmit: func() {
			window, err := strconv.Atoi(windowEntry.Text)
			if err != nil || window < 1 {
				dialog.ShowError(fmt.Errorf("invalid filter window: %q", windowEntry.Text), state.window)
				return
			}
			tolerance, err := strconv.ParseFloat(toleranceEntry.Text, 64)
			if err != nil || tolerance <= 0 {
				dialog.ShowError(fmt.Errorf("invalid tolerance: %q", toleranceEntry.Text), state.window)
				return
			}
			samples, err := strconv.Atoi(samplesEntry.Text)
			if err != nil || samples < 1 {
				dialog.ShowError(fmt.Errorf("invalid run length: %q", samplesEntry.Text), state.window)
				return
			}

			state.cfg.Filter.WindowSize = window
			state.cfg.Stability.Tolerance = tolerance
			state.cfg.Stability.Samples = samples
			saveConfig(state)
		},
		SubmitText: "Apply",
	}

	return container.NewTabItem("Measurement", form)
}

// formatFactor renders a stored scale factor for display.
func formatFactor(factor float64) string {
	if factor <= 0 {
		return "not calibrated"
	}
	return fmt.Sprintf("%.4f g/count", factor)
}

// saveConfig persists the configuration, reporting failures in a dialog.
// Timing and filter changes take effect on the next connect.
func saveConfig(state *appState) {
	if err := state.cfg.Save(state.configPath); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save config: %w", err), state.window)
	}
}
