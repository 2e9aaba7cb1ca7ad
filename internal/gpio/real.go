//go:build linux

package gpio

import (
	"errors"
	"fmt"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// Chip wraps the GPIO character device and constructs the real
// capabilities. One Chip is opened at startup and shared by every device.
type Chip struct {
	chip *gpiocdev.Chip
}

// OpenChip opens the named GPIO chip (typically "gpiochip0").
func OpenChip(name string) (*Chip, error) {
	chip, err := gpiocdev.NewChip(name)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip %s: %w", name, err)
	}
	return &Chip{chip: chip}, nil
}

// Close releases the chip. Lines requested from it must be closed first.
func (c *Chip) Close() error {
	return c.chip.Close()
}

// RealInput reads a single input line.
type RealInput struct {
	line *gpiocdev.Line
}

// Input requests pin as an input. activeLow inverts the line so Read
// returns the logical state; pull-ups hold active-low sensors idle.
func (c *Chip) Input(pin int, activeLow bool) (*RealInput, error) {
	opts := []gpiocdev.LineReqOption{gpiocdev.AsInput}
	if activeLow {
		opts = append(opts, gpiocdev.AsActiveLow, gpiocdev.WithPullUp)
	} else {
		opts = append(opts, gpiocdev.WithPullDown)
	}
	line, err := c.chip.RequestLine(pin, opts...)
	if err != nil {
		return nil, fmt.Errorf("request input pin %d: %w", pin, err)
	}
	return &RealInput{line: line}, nil
}

// Read returns the logical level of the line.
func (r *RealInput) Read() (bool, error) {
	v, err := r.line.Value()
	if err != nil {
		return false, fmt.Errorf("read pin: %w", err)
	}
	return v == 1, nil
}

// Close releases the line.
func (r *RealInput) Close() error {
	return r.line.Close()
}

// RealOutput drives a single output line.
type RealOutput struct {
	line *gpiocdev.Line
}

// Output requests pin as an output, initially off.
func (c *Chip) Output(pin int) (*RealOutput, error) {
	line, err := c.chip.RequestLine(pin, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, fmt.Errorf("request output pin %d: %w", pin, err)
	}
	return &RealOutput{line: line}, nil
}

// Set drives the line high (on) or low (off).
func (r *RealOutput) Set(on bool) error {
	v := 0
	if on {
		v = 1
	}
	if err := r.line.SetValue(v); err != nil {
		return fmt.Errorf("set pin: %w", err)
	}
	return nil
}

// Close drives the line low and reconfigures it to an input with
// pull-down (Pi boot default) before releasing, so the actuator cannot be
// left energised across restarts.
func (r *RealOutput) Close() error {
	var errs []error
	if err := r.line.SetValue(0); err != nil {
		errs = append(errs, fmt.Errorf("clear pin: %w", err))
	}
	if err := r.line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
		errs = append(errs, fmt.Errorf("reconfigure pin: %w", err))
	}
	if err := r.line.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close pin: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// RealDistanceSensor is an HC-SR04 style ultrasonic ranger.
type RealDistanceSensor struct {
	trig     *gpiocdev.Line
	echo     *gpiocdev.Line
	edgeWait time.Duration
}

// Distance requests the trigger/echo pair. edgeWait bounds each echo edge
// wait (the sensor's ~4 m range needs under 25 ms round trip).
func (c *Chip) Distance(trigPin, echoPin int, edgeWait time.Duration) (*RealDistanceSensor, error) {
	trig, err := c.chip.RequestLine(trigPin, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, fmt.Errorf("request trigger pin %d: %w", trigPin, err)
	}
	echo, err := c.chip.RequestLine(echoPin, gpiocdev.AsInput)
	if err != nil {
		trig.Close()
		return nil, fmt.Errorf("request echo pin %d: %w", echoPin, err)
	}
	return &RealDistanceSensor{trig: trig, echo: echo, edgeWait: edgeWait}, nil
}

var errEchoTimeout = errors.New("echo timeout")

// MeasureCM fires a 10 µs trigger pulse and times the echo pulse.
// Sound travels 34300 cm/s; the pulse covers the distance twice.
func (r *RealDistanceSensor) MeasureCM() (float64, error) {
	if err := r.trig.SetValue(1); err != nil {
		return 0, fmt.Errorf("trigger: %w", err)
	}
	time.Sleep(10 * time.Microsecond)
	if err := r.trig.SetValue(0); err != nil {
		return 0, fmt.Errorf("trigger: %w", err)
	}

	start, err := r.waitEdge(1)
	if err != nil {
		return 0, fmt.Errorf("echo rise: %w", err)
	}
	stop, err := r.waitEdge(0)
	if err != nil {
		return 0, fmt.Errorf("echo fall: %w", err)
	}

	distance := stop.Sub(start).Seconds() * 34300 / 2
	return distance, nil
}

// waitEdge busy-polls the echo line until it reaches level, bounded by
// edgeWait. Poll-based: no edge interrupts assumed available.
func (r *RealDistanceSensor) waitEdge(level int) (time.Time, error) {
	deadline := time.Now().Add(r.edgeWait)
	for {
		v, err := r.echo.Value()
		if err != nil {
			return time.Time{}, err
		}
		now := time.Now()
		if v == level {
			return now, nil
		}
		if now.After(deadline) {
			return time.Time{}, errEchoTimeout
		}
	}
}

// Close releases both lines.
func (r *RealDistanceSensor) Close() error {
	err1 := r.trig.Close()
	err2 := r.echo.Close()
	if err1 != nil {
		return err1
	}
	return err2
}

// RealDHT11 reads a DHT11 single-wire temperature/humidity module.
type RealDHT11 struct {
	line *gpiocdev.Line
}

// DHT requests the DHT11 data pin. The line idles as an input with
// pull-up; Measure reconfigures it around each transfer.
func (c *Chip) DHT(pin int) (*RealDHT11, error) {
	line, err := c.chip.RequestLine(pin, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		return nil, fmt.Errorf("request dht pin %d: %w", pin, err)
	}
	return &RealDHT11{line: line}, nil
}

// Measure performs one DHT11 transfer: hold the line low 18 ms to start,
// then decode 40 bits from the high pulse widths and verify the checksum.
func (r *RealDHT11) Measure() (TempHumidity, error) {
	if err := r.line.Reconfigure(gpiocdev.AsOutput(0)); err != nil {
		return TempHumidity{}, fmt.Errorf("dht start: %w", err)
	}
	time.Sleep(18 * time.Millisecond)
	if err := r.line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullUp); err != nil {
		return TempHumidity{}, fmt.Errorf("dht release: %w", err)
	}

	// Sensor preamble: ~80 µs low then ~80 µs high before the first bit.
	if _, err := r.waitLevel(0, time.Millisecond); err != nil {
		return TempHumidity{}, fmt.Errorf("dht response: %w", err)
	}
	if _, err := r.waitLevel(1, time.Millisecond); err != nil {
		return TempHumidity{}, fmt.Errorf("dht preamble: %w", err)
	}
	if _, err := r.waitLevel(0, time.Millisecond); err != nil {
		return TempHumidity{}, fmt.Errorf("dht preamble: %w", err)
	}

	var data [5]byte
	for i := 0; i < 40; i++ {
		// Each bit: ~50 µs low, then high for ~27 µs (0) or ~70 µs (1).
		if _, err := r.waitLevel(1, time.Millisecond); err != nil {
			return TempHumidity{}, fmt.Errorf("dht bit %d: %w", i, err)
		}
		high, err := r.waitLevel(0, time.Millisecond)
		if err != nil {
			return TempHumidity{}, fmt.Errorf("dht bit %d: %w", i, err)
		}
		data[i/8] <<= 1
		if high > 48*time.Microsecond {
			data[i/8] |= 1
		}
	}

	if data[4] != data[0]+data[1]+data[2]+data[3] {
		return TempHumidity{}, errors.New("dht checksum mismatch")
	}

	humidity := float64(data[0])
	temp := float64(data[2])
	if data[3]&0x80 != 0 {
		temp = -temp
	}
	return TempHumidity{Humidity: &humidity, TempC: temp}, nil
}

// waitLevel busy-polls until the line reads level, returning how long the
// previous level lasted.
func (r *RealDHT11) waitLevel(level int, timeout time.Duration) (time.Duration, error) {
	start := time.Now()
	deadline := start.Add(timeout)
	for {
		v, err := r.line.Value()
		if err != nil {
			return 0, err
		}
		if v == level {
			return time.Since(start), nil
		}
		if time.Now().After(deadline) {
			return 0, errors.New("level timeout")
		}
	}
}

// Close releases the data line.
func (r *RealDHT11) Close() error {
	return r.line.Close()
}

// RealMatrix scans a key matrix: columns driven low one at a time, rows
// sampled as active-low inputs with pull-ups.
type RealMatrix struct {
	rows []*gpiocdev.Line
	cols []*gpiocdev.Line
}

// Matrix requests the row and column lines for the keypad.
func (c *Chip) Matrix(rowPins, colPins []int) (*RealMatrix, error) {
	m := &RealMatrix{}
	for _, pin := range rowPins {
		line, err := c.chip.RequestLine(pin, gpiocdev.AsInput, gpiocdev.AsActiveLow, gpiocdev.WithPullUp)
		if err != nil {
			m.Close()
			return nil, fmt.Errorf("request row pin %d: %w", pin, err)
		}
		m.rows = append(m.rows, line)
	}
	for _, pin := range colPins {
		// Idle high; a column is selected by driving it low.
		line, err := c.chip.RequestLine(pin, gpiocdev.AsOutput(1))
		if err != nil {
			m.Close()
			return nil, fmt.Errorf("request column pin %d: %w", pin, err)
		}
		m.cols = append(m.cols, line)
	}
	return m, nil
}

// Scan strobes each column and samples every row, returning
// pressed[row][col].
func (m *RealMatrix) Scan() ([][]bool, error) {
	frame := make([][]bool, len(m.rows))
	for i := range frame {
		frame[i] = make([]bool, len(m.cols))
	}

	for c, col := range m.cols {
		if err := col.SetValue(0); err != nil {
			return nil, fmt.Errorf("select column %d: %w", c, err)
		}
		for r, row := range m.rows {
			v, err := row.Value()
			if err != nil {
				col.SetValue(1)
				return nil, fmt.Errorf("sample row %d: %w", r, err)
			}
			frame[r][c] = v == 1
		}
		if err := col.SetValue(1); err != nil {
			return nil, fmt.Errorf("deselect column %d: %w", c, err)
		}
	}
	return frame, nil
}

// Close releases all matrix lines.
func (m *RealMatrix) Close() error {
	var first error
	for _, line := range m.rows {
		if err := line.Close(); err != nil && first == nil {
			first = err
		}
	}
	for _, line := range m.cols {
		if err := line.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
