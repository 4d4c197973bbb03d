package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Serial      SerialConfig      `yaml:"serial"`
	Filter      FilterConfig      `yaml:"filter"`
	Stability   StabilityConfig   `yaml:"stability"`
	Calibration CalibrationConfig `yaml:"calibration"`
	Button      ButtonConfig      `yaml:"button"`
	Controller  ControllerConfig  `yaml:"controller"`
	Mock        MockConfig        `yaml:"mock"`
}

// SerialConfig contains serial port configuration.
type SerialConfig struct {
	Port string `yaml:"port"`
}

// FilterConfig contains sample filter configuration.
type FilterConfig struct {
	WindowSize int `yaml:"window_size"` // Sliding window length in samples
}

// StabilityConfig contains the stability detection parameters used to decide
// when a tare or calibration reading has settled.
type StabilityConfig struct {
	Tolerance float64 `yaml:"tolerance"` // Max tick-to-tick delta of the filtered reading (raw counts)
	Samples   int     `yaml:"samples"`   // Consecutive ticks the delta must stay within tolerance
}

// CalibrationConfig contains calibration parameters.
type CalibrationConfig struct {
	ReferenceWeight float64 `yaml:"reference_weight"` // Known reference mass in grams
	ScaleFactor     float64 `yaml:"scale_factor"`     // Persisted scale factor (0 = not calibrated yet)
	Auto            bool    `yaml:"auto"`             // Run calibration after the boot tare when uncalibrated
}

// ButtonConfig contains button gesture classification parameters.
type ButtonConfig struct {
	LongPress time.Duration `yaml:"long_press"` // Hold duration that turns a press into a long press
}

// ControllerConfig contains the controller loop timing parameters.
type ControllerConfig struct {
	TickInterval    time.Duration `yaml:"tick_interval"`    // Sampling tick period
	DisplayInterval time.Duration `yaml:"display_interval"` // Minimum period between weight display updates
}

// MockConfig contains mock device configuration.
type MockConfig struct {
	BaselineCounts int32         `yaml:"baseline_counts"` // Raw counts with the platform empty
	CountsPerGram  float64       `yaml:"counts_per_gram"` // Simulated load cell sensitivity
	NoiseCounts    float64       `yaml:"noise_counts"`    // Noise amplitude in raw counts
	LoadGrams      float64       `yaml:"load_grams"`      // Simulated mass placed on the platform
	LoadDuration   time.Duration `yaml:"load_duration"`   // How long the mass stays on
	LoadPeriod     time.Duration `yaml:"load_period"`     // Time between placements
	SampleRate     time.Duration `yaml:"sample_rate"`     // Sample rate
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Serial: SerialConfig{
			Port: "COM3", // Default for Windows, should be "/dev/ttyACM0" on Linux/Mac
		},
		Filter: FilterConfig{
			WindowSize: 16,
		},
		Stability: StabilityConfig{
			Tolerance: 40,
			Samples:   5,
		},
		Calibration: CalibrationConfig{
			ReferenceWeight: 2000.0,
			ScaleFactor:     0,
			Auto:            true,
		},
		Button: ButtonConfig{
			LongPress: 3 * time.Second,
		},
		Controller: ControllerConfig{
			TickInterval:    10 * time.Millisecond,
			DisplayInterval: 500 * time.Millisecond,
		},
		Mock: MockConfig{
			BaselineCounts: 42000,
			CountsPerGram:  210.0,
			NoiseCounts:    15.0,
			LoadGrams:      250.0,
			LoadDuration:   5 * time.Second,
			LoadPeriod:     15 * time.Second,
			SampleRate:     100 * time.Millisecond, // 10 samples per second, HX711 default rate
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, return defaults
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Ensure minimum required fields are set (use defaults if missing)
	cfg.ensureDefaults()

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ensureDefaults ensures that all required fields have default values if missing.
// Calibration.ScaleFactor is deliberately left alone: zero means the scale has
// never been calibrated, and that is a valid persisted state.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Serial.Port == "" {
		c.Serial.Port = def.Serial.Port
	}

	if c.Filter.WindowSize <= 0 {
		c.Filter.WindowSize = def.Filter.WindowSize
	}

	if c.Stability.Tolerance <= 0 {
		c.Stability.Tolerance = def.Stability.Tolerance
	}
	if c.Stability.Samples <= 0 {
		c.Stability.Samples = def.Stability.Samples
	}

	if c.Calibration.ReferenceWeight <= 0 {
		c.Calibration.ReferenceWeight = def.Calibration.ReferenceWeight
	}

	if c.Button.LongPress <= 0 {
		c.Button.LongPress = def.Button.LongPress
	}

	if c.Controller.TickInterval <= 0 {
		c.Controller.TickInterval = def.Controller.TickInterval
	}
	if c.Controller.DisplayInterval <= 0 {
		c.Controller.DisplayInterval = def.Controller.DisplayInterval
	}

	if c.Mock.BaselineCounts == 0 {
		c.Mock.BaselineCounts = def.Mock.BaselineCounts
	}
	if c.Mock.CountsPerGram == 0 {
		c.Mock.CountsPerGram = def.Mock.CountsPerGram
	}
	if c.Mock.SampleRate == 0 {
		c.Mock.SampleRate = def.Mock.SampleRate
	}
	if c.Mock.LoadPeriod == 0 {
		c.Mock.LoadPeriod = def.Mock.LoadPeriod
	}
	if c.Mock.LoadDuration == 0 {
		c.Mock.LoadDuration = def.Mock.LoadDuration
	}
}
