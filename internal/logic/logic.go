// Package logic contains pure threshold logic for the garden controller.
// This package has NO external dependencies (no GPIO, network, OS, or
// time.Sleep). Time, when needed, is injectable via parameters.
package logic

// Default thresholds, overridable from flags.
const (
	DefaultBeakerHeightCM     = 10.0
	DefaultWaterLowDistanceCM = 7.0
	DefaultTempMinC           = -20.0
	DefaultTempMaxC           = 80.0
)

// WaterHeight derives the water column height from an ultrasonic distance
// reading, clamped to [0, beaker]. Callers must only pass validated
// distances (> 0); a failed measurement never reaches this function.
func WaterHeight(beakerCM, distanceCM float64) float64 {
	h := beakerCM - distanceCM
	if h < 0 {
		return 0
	}
	if h > beakerCM {
		return beakerCM
	}
	return h
}

// WaterLow reports whether a distance reading means the water level is
// below the refill threshold.
func WaterLow(distanceCM, lowCutoffCM float64) bool {
	return distanceCM > lowCutoffCM
}

// ValidTemperature reports whether a temperature reading is inside the
// plausible range. DHT11 modules glitch to far out-of-range values; those
// are treated the same as a missing reading.
func ValidTemperature(tempC, minC, maxC float64) bool {
	return tempC >= minC && tempC <= maxC
}

// MotorDecision maps the soil moisture state to the motor command:
// dry soil waters, moist soil stops.
func MotorDecision(soilDry bool) bool {
	return soilDry
}
