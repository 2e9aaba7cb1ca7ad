package gpio

import "errors"

// FakeInput is a test double returning scripted logic levels.
// Each Read consumes the next value; the last value repeats.
type FakeInput struct {
	Values []bool

	// ReadError, if set, is returned by Read.
	ReadError error

	// Closed tracks if Close was called.
	Closed bool

	index int
}

// NewFakeInput creates a FakeInput with the given values.
func NewFakeInput(values ...bool) *FakeInput {
	return &FakeInput{Values: values}
}

// Read returns the next scripted value.
func (f *FakeInput) Read() (bool, error) {
	if f.ReadError != nil {
		return false, f.ReadError
	}
	if len(f.Values) == 0 {
		return false, errors.New("no values configured")
	}
	v := f.Values[f.index]
	if f.index < len(f.Values)-1 {
		f.index++
	}
	return v, nil
}

// Close marks the input as closed.
func (f *FakeInput) Close() error {
	f.Closed = true
	return nil
}

// FakeOutput records every commanded state.
type FakeOutput struct {
	// States contains every value passed to Set, in order.
	States []bool

	// SetError, if set, is returned by Set.
	SetError error

	Closed bool
}

// NewFakeOutput creates a FakeOutput.
func NewFakeOutput() *FakeOutput {
	return &FakeOutput{}
}

// Set records the commanded state.
func (f *FakeOutput) Set(on bool) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.States = append(f.States, on)
	return nil
}

// Last returns the most recently commanded state, or false if none.
func (f *FakeOutput) Last() bool {
	if len(f.States) == 0 {
		return false
	}
	return f.States[len(f.States)-1]
}

// Close marks the output as closed.
func (f *FakeOutput) Close() error {
	f.Closed = true
	return nil
}

// DistanceSample is one scripted ultrasonic result.
type DistanceSample struct {
	CM  float64
	Err error
}

// FakeDistanceSensor returns scripted measurements.
// The last sample repeats once exhausted.
type FakeDistanceSensor struct {
	Samples []DistanceSample
	Closed  bool

	index int
}

// NewFakeDistanceSensor creates a FakeDistanceSensor with the given samples.
func NewFakeDistanceSensor(samples ...DistanceSample) *FakeDistanceSensor {
	return &FakeDistanceSensor{Samples: samples}
}

// MeasureCM returns the next scripted measurement.
func (f *FakeDistanceSensor) MeasureCM() (float64, error) {
	if len(f.Samples) == 0 {
		return 0, errors.New("no samples configured")
	}
	s := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return s.CM, s.Err
}

// Close marks the sensor as closed.
func (f *FakeDistanceSensor) Close() error {
	f.Closed = true
	return nil
}

// ClimateSample is one scripted temperature/humidity result.
type ClimateSample struct {
	Reading TempHumidity
	Err     error
}

// FakeTempHumiditySensor returns scripted measurements.
// The last sample repeats once exhausted.
type FakeTempHumiditySensor struct {
	Samples []ClimateSample
	Closed  bool

	index int
}

// NewFakeTempHumiditySensor creates a FakeTempHumiditySensor.
func NewFakeTempHumiditySensor(samples ...ClimateSample) *FakeTempHumiditySensor {
	return &FakeTempHumiditySensor{Samples: samples}
}

// Measure returns the next scripted measurement.
func (f *FakeTempHumiditySensor) Measure() (TempHumidity, error) {
	if len(f.Samples) == 0 {
		return TempHumidity{}, errors.New("no samples configured")
	}
	s := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return s.Reading, s.Err
}

// Close marks the sensor as closed.
func (f *FakeTempHumiditySensor) Close() error {
	f.Closed = true
	return nil
}

// FakeMatrix returns scripted keypad frames.
// Each Scan consumes the next frame; the last frame repeats.
type FakeMatrix struct {
	Frames [][][]bool

	// ScanError, if set, is returned by Scan.
	ScanError error

	Closed bool

	index int
}

// NewFakeMatrix creates a FakeMatrix with the given frames.
func NewFakeMatrix(frames ...[][]bool) *FakeMatrix {
	return &FakeMatrix{Frames: frames}
}

// Scan returns the next scripted frame.
func (f *FakeMatrix) Scan() ([][]bool, error) {
	if f.ScanError != nil {
		return nil, f.ScanError
	}
	if len(f.Frames) == 0 {
		return nil, errors.New("no frames configured")
	}
	frame := f.Frames[f.index]
	if f.index < len(f.Frames)-1 {
		f.index++
	}
	return frame, nil
}

// Close marks the scanner as closed.
func (f *FakeMatrix) Close() error {
	f.Closed = true
	return nil
}
