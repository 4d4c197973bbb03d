//go:build tinygo

package main

import "machine"

const (
	// Timing configuration
	BUTTON_POLL_MS  = 10 // Button history shift interval in milliseconds
	HX711_RETRY_MS  = 1  // Wait between data-ready polls in milliseconds
	HX711_GAIN_A128 = 25 // Total clock pulses for channel A, gain 128

	// Button debouncing
	// 16-sample shift register; the mask requires 6 stable samples after a
	// 4-sample guard gap before an edge is accepted.
	BUTTON_HISTORY_MASK uint16 = 0b1111_0000_0011_1111
	BUTTON_ROSE_PATTERN uint16 = 0b0000_0000_0011_1111
	BUTTON_FELL_PATTERN uint16 = 0b1111_0000_0000_0000

	// HX711 pins
	PIN_HX711_SCK = machine.D4
	PIN_HX711_DT  = machine.D5

	// Button pin (active low, internal pullup)
	PIN_BUTTON = machine.D7

	// Serial configuration
	// Format "unix_micros,count,button\n", worst case ~27 bytes per line at
	// 10 lines/sec (HX711 sample rate) = ~270 bytes/sec, far below what
	// 115200 baud 8N1 (11520 bytes/sec) carries.
	UART_BAUD_RATE = 115200
)
