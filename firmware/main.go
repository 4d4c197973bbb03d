//go:build tinygo

//go:generate tinygo flash -target=xiao

package main

import (
	"machine"
	"time"
)

var (
	uart = machine.UART0

	// Button debouncing - shift register of recent pin levels
	buttonHistory uint16 = 0xFFFF // Pullup wiring idles high
	buttonPressed bool

	// Timing
	lastButtonPoll time.Time
)

func main() {
	// Configure HX711 pins: clock out, data in
	PIN_HX711_SCK.Configure(machine.PinConfig{Mode: machine.PinOutput})
	PIN_HX711_DT.Configure(machine.PinConfig{Mode: machine.PinInput})
	PIN_HX711_SCK.Low()

	// Button is wired to ground, idle high
	PIN_BUTTON.Configure(machine.PinConfig{Mode: machine.PinInputPullup})

	// Configure UART for sample streaming
	uart.Configure(machine.UARTConfig{
		BaudRate: UART_BAUD_RATE,
	})

	lastButtonPoll = time.Now()

	// Main loop: the HX711 paces the loop at its own conversion rate
	// (~10 samples per second); the button history shifts every 10ms in
	// between.
	for {
		now := time.Now()

		if now.Sub(lastButtonPoll) >= BUTTON_POLL_MS*time.Millisecond {
			pollButton()
			lastButtonPoll = now
		}

		if !hx711Ready() {
			time.Sleep(HX711_RETRY_MS * time.Millisecond)
			continue
		}

		count := hx711Read()
		outputSample(count)
	}
}

// hx711Ready reports whether the HX711 has a conversion waiting. The part
// signals readiness by pulling the data line low.
func hx711Ready() bool {
	return !PIN_HX711_DT.Get()
}

// hx711Read clocks out one 24-bit two's complement conversion and leaves the
// part configured for channel A at gain 128 (25 total pulses).
func hx711Read() int32 {
	var value int32

	for i := 0; i < 24; i++ {
		PIN_HX711_SCK.High()
		clockDelay()
		value <<= 1
		if PIN_HX711_DT.Get() {
			value |= 1
		}
		PIN_HX711_SCK.Low()
		clockDelay()
	}

	// Extra pulses select the input/gain for the next conversion
	for i := 24; i < HX711_GAIN_A128; i++ {
		PIN_HX711_SCK.High()
		clockDelay()
		PIN_HX711_SCK.Low()
		clockDelay()
	}

	// Sign-extend 24 bits to 32
	if value&0x800000 != 0 {
		value |= ^int32(0xFFFFFF)
	}

	return value
}

// clockDelay holds an HX711 clock phase. The part wants 0.2-50us; holding the
// clock high longer than 60us would power it down.
func clockDelay() {
	time.Sleep(time.Microsecond)
}

// pollButton shifts the current pin level into the history register and
// updates the debounced state when a clean edge pattern shows up. Active low:
// a falling pin level is a press.
func pollButton() {
	var level uint16
	if PIN_BUTTON.Get() {
		level = 1
	}
	buttonHistory = (buttonHistory << 1) | level

	switch buttonHistory & BUTTON_HISTORY_MASK {
	case BUTTON_FELL_PATTERN:
		buttonHistory = 0x0000
		buttonPressed = true
	case BUTTON_ROSE_PATTERN:
		buttonHistory = 0xFFFF
		buttonPressed = false
	}
}

// outputSample writes one sample frame to the UART.
// Format: "unix_micros,count,button\n"
// Example: "1234567890123,42137,0\n"
func outputSample(count int32) {
	print(time.Now().UnixNano() / 1000)
	print(",")
	print(count)
	print(",")
	if buttonPressed {
		print("1")
	} else {
		print("0")
	}
	print("\n")
}
