// Package gpio provides the hardware capabilities the control loops
// consume, with hardware abstraction. The real implementations use the
// Linux GPIO character device; the fakes allow testing without hardware.
package gpio

// Default pin assignments (BCM numbering).
const (
	DefaultPinSwitch   = 22 // slide switch, master enable (active high)
	DefaultPinPIR      = 17 // PIR motion sensor (active low: 0 = presence)
	DefaultPinMotor    = 23 // DC motor driver
	DefaultPinTrigger  = 25 // HC-SR04 trigger
	DefaultPinEcho     = 27 // HC-SR04 echo (level shifted to 3.3 V)
	DefaultPinMoisture = 4  // soil moisture sensor, digital out (high = dry)
	DefaultPinDHT      = 21 // DHT11 data line
)

// DefaultKeypadRowPins and DefaultKeypadColPins wire the 4x3 key matrix.
// Rows are inputs with pull-ups, columns are outputs driven low one at a
// time.
var (
	DefaultKeypadRowPins = []int{6, 20, 19, 13}
	DefaultKeypadColPins = []int{12, 5, 16}
)

// DigitalInput reads one boolean logic level. Implementations resolve
// active-low wiring so Read always returns the logical state (e.g. true =
// presence for the PIR).
type DigitalInput interface {
	Read() (bool, error)
	Close() error
}

// Output drives one binary output line.
type Output interface {
	Set(on bool) error
	Close() error
}

// DistanceSensor performs one ultrasonic time-of-flight measurement.
type DistanceSensor interface {
	// MeasureCM returns the measured distance in centimetres. Both edge
	// waits are bounded; a timeout returns an error, never blocks.
	MeasureCM() (float64, error)
	Close() error
}

// TempHumidity is one validated measurement from the climate sensor.
// Humidity is nil when the sensor did not report it.
type TempHumidity struct {
	Humidity *float64
	TempC    float64
}

// TempHumiditySensor performs one temperature/humidity measurement.
type TempHumiditySensor interface {
	Measure() (TempHumidity, error)
	Close() error
}

// MatrixScanner samples the whole key matrix. Scan returns
// pressed[row][col] for every cell; pin-level strobing is the
// implementation's concern.
type MatrixScanner interface {
	Scan() ([][]bool, error)
	Close() error
}
