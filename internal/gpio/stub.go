//go:build !linux

package gpio

import (
	"errors"
	"time"
)

var errUnsupported = errors.New("gpio: not supported on this platform (requires Linux)")

// Chip is not available on non-Linux platforms.
type Chip struct{}

// OpenChip returns an error on non-Linux platforms.
func OpenChip(name string) (*Chip, error) {
	return nil, errUnsupported
}

func (c *Chip) Close() error { return nil }

func (c *Chip) Input(pin int, activeLow bool) (*RealInput, error) { return nil, errUnsupported }

func (c *Chip) Output(pin int) (*RealOutput, error) { return nil, errUnsupported }

func (c *Chip) Distance(trigPin, echoPin int, edgeWait time.Duration) (*RealDistanceSensor, error) {
	return nil, errUnsupported
}

func (c *Chip) DHT(pin int) (*RealDHT11, error) { return nil, errUnsupported }

func (c *Chip) Matrix(rowPins, colPins []int) (*RealMatrix, error) { return nil, errUnsupported }

type RealInput struct{}

func (r *RealInput) Read() (bool, error) { return false, errUnsupported }
func (r *RealInput) Close() error        { return nil }

type RealOutput struct{}

func (r *RealOutput) Set(on bool) error { return errUnsupported }
func (r *RealOutput) Close() error      { return nil }

type RealDistanceSensor struct{}

func (r *RealDistanceSensor) MeasureCM() (float64, error) { return 0, errUnsupported }
func (r *RealDistanceSensor) Close() error                { return nil }

type RealDHT11 struct{}

func (r *RealDHT11) Measure() (TempHumidity, error) { return TempHumidity{}, errUnsupported }
func (r *RealDHT11) Close() error                   { return nil }

type RealMatrix struct{}

func (r *RealMatrix) Scan() ([][]bool, error) { return nil, errUnsupported }
func (r *RealMatrix) Close() error            { return nil }
