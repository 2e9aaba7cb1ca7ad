// Package control runs the concurrent sensor-actuator loops: periodic
// sampling with thresholded motor control, keypad scanning with
// presence-gated dispatch, and rate-limited telemetry publishing. All
// loops coordinate only through the readings store and stop together on
// context cancellation.
package control

import (
	"time"

	"github.com/sweeney/garden-controller/internal/logic"
)

// Config carries the loop periods and thresholds. Loaded once at startup;
// immutable afterwards.
type Config struct {
	// SamplePeriod is the main sensor polling interval.
	SamplePeriod time.Duration

	// ClimatePeriod is the slower temperature/humidity cadence, checked
	// inside the sampling loop (the DHT11 cannot be read every second).
	ClimatePeriod time.Duration

	// KeypadPeriod is the matrix scan interval.
	KeypadPeriod time.Duration

	// TelemetryPeriod is the publisher tick; the sink applies its own
	// minimum spacing on top.
	TelemetryPeriod time.Duration

	// DebouncePoll is how often a pressed key is re-checked for release.
	DebouncePoll time.Duration

	BeakerHeightCM     float64
	WaterLowDistanceCM float64
	TempMinC           float64
	TempMaxC           float64
}

// DefaultConfig returns the stock timing and thresholds.
func DefaultConfig() Config {
	return Config{
		SamplePeriod:       time.Second,
		ClimatePeriod:      5 * time.Second,
		KeypadPeriod:       20 * time.Millisecond,
		TelemetryPeriod:    5 * time.Second,
		DebouncePoll:       100 * time.Millisecond,
		BeakerHeightCM:     logic.DefaultBeakerHeightCM,
		WaterLowDistanceCM: logic.DefaultWaterLowDistanceCM,
		TempMinC:           logic.DefaultTempMinC,
		TempMaxC:           logic.DefaultTempMaxC,
	}
}
