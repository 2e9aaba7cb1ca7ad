package control

import (
	"errors"
	"testing"

	"github.com/sweeney/garden-controller/internal/display"
	"github.com/sweeney/garden-controller/internal/gpio"
	"github.com/sweeney/garden-controller/internal/store"
)

func TestCommandsWaterLevel(t *testing.T) {
	st := store.New()
	screen := &display.FakeRenderer{}
	c := NewCommands(testConfig(), st,
		gpio.NewFakeDistanceSensor(gpio.DistanceSample{CM: 8}),
		gpio.NewFakeTempHumiditySensor(),
		screen)

	c.Handle("1")

	snap := st.Snapshot()
	if snap.DistanceCM == nil || *snap.DistanceCM != 8 {
		t.Fatalf("expected distance 8, got %v", snap.DistanceCM)
	}
	if snap.WaterHeight == nil || *snap.WaterHeight != 2 {
		t.Fatalf("expected water height 2, got %v", snap.WaterHeight)
	}
	line1, line2 := screen.Last()
	if line1 != "Water:  2.00cm" {
		t.Errorf("line1: expected %q, got %q", "Water:  2.00cm", line1)
	}
	if line2 != "Dist:   8.00cm" {
		t.Errorf("line2: expected %q, got %q", "Dist:   8.00cm", line2)
	}
}

func TestCommandsWaterLevelReadError(t *testing.T) {
	st := store.New()
	screen := &display.FakeRenderer{}
	c := NewCommands(testConfig(), st,
		gpio.NewFakeDistanceSensor(gpio.DistanceSample{Err: errors.New("echo timeout")}),
		gpio.NewFakeTempHumiditySensor(),
		screen)

	c.Handle("1")

	if snap := st.Snapshot(); snap.DistanceCM != nil {
		t.Errorf("expected no store update on read error, got %v", snap.DistanceCM)
	}
	if line1, _ := screen.Last(); line1 != "Water read err" {
		t.Errorf("expected error shown, got %q", line1)
	}
}

func TestCommandsWaterLevelGarbageReading(t *testing.T) {
	st := store.New()
	screen := &display.FakeRenderer{}
	c := NewCommands(testConfig(), st,
		gpio.NewFakeDistanceSensor(gpio.DistanceSample{CM: 0}),
		gpio.NewFakeTempHumiditySensor(),
		screen)

	c.Handle("1")

	if snap := st.Snapshot(); snap.WaterHeight != nil {
		t.Errorf("expected no store update on garbage reading, got %v", snap.WaterHeight)
	}
	if line1, _ := screen.Last(); line1 != "Water: invalid" {
		t.Errorf("expected invalid shown, got %q", line1)
	}
}

func TestCommandsTemperature(t *testing.T) {
	st := store.New()
	screen := &display.FakeRenderer{}
	h := 55.0
	c := NewCommands(testConfig(), st,
		gpio.NewFakeDistanceSensor(),
		gpio.NewFakeTempHumiditySensor(
			gpio.ClimateSample{Reading: gpio.TempHumidity{TempC: 21.5, Humidity: &h}},
		),
		screen)

	c.Handle("2")

	snap := st.Snapshot()
	if snap.TempC == nil || *snap.TempC != 21.5 {
		t.Fatalf("expected temp 21.5, got %v", snap.TempC)
	}
	if snap.Humidity == nil || *snap.Humidity != 55 {
		t.Fatalf("expected humidity 55, got %v", snap.Humidity)
	}
	if line1, _ := screen.Last(); line1 != "Temp: 21.50 C" {
		t.Errorf("expected temp shown, got %q", line1)
	}
}

func TestCommandsTemperatureReadError(t *testing.T) {
	st := store.New()
	screen := &display.FakeRenderer{}
	c := NewCommands(testConfig(), st,
		gpio.NewFakeDistanceSensor(),
		gpio.NewFakeTempHumiditySensor(
			gpio.ClimateSample{Err: errors.New("no response")},
		),
		screen)

	c.Handle("2")

	if snap := st.Snapshot(); snap.TempC != nil {
		t.Errorf("expected no store update on read error, got %v", snap.TempC)
	}
	if line1, _ := screen.Last(); line1 != "Temp read fail" {
		t.Errorf("expected failure shown, got %q", line1)
	}
}

func TestCommandsTemperatureInvalid(t *testing.T) {
	st := store.New()
	screen := &display.FakeRenderer{}
	c := NewCommands(testConfig(), st,
		gpio.NewFakeDistanceSensor(),
		gpio.NewFakeTempHumiditySensor(
			gpio.ClimateSample{Reading: gpio.TempHumidity{TempC: -3276.6}},
		),
		screen)

	c.Handle("2")

	if snap := st.Snapshot(); snap.TempC != nil {
		t.Errorf("expected glitch reading dropped, got %v", snap.TempC)
	}
	if line1, _ := screen.Last(); line1 != "Temp read fail" {
		t.Errorf("expected failure shown, got %q", line1)
	}
}

func TestCommandsUnmappedKey(t *testing.T) {
	st := store.New()
	screen := &display.FakeRenderer{}
	c := NewCommands(testConfig(), st,
		gpio.NewFakeDistanceSensor(gpio.DistanceSample{CM: 8}),
		gpio.NewFakeTempHumiditySensor(
			gpio.ClimateSample{Reading: gpio.TempHumidity{TempC: 21}},
		),
		screen)

	c.Handle("#")

	if len(screen.Lines) != 0 {
		t.Errorf("expected nothing rendered for unmapped key, got %v", screen.Lines)
	}
	snap := st.Snapshot()
	if snap.TempC != nil || snap.DistanceCM != nil {
		t.Errorf("expected no store updates for unmapped key, got %+v", snap)
	}
}
