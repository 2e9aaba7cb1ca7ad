package mqtt

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sweeney/garden-controller/internal/store"
)

func TestFormatReadingFull(t *testing.T) {
	ts := time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC)
	r := store.Reading{
		TempC:       store.Float(21.5),
		Humidity:    store.Float(48),
		DistanceCM:  store.Float(8),
		WaterHeight: store.Float(2),
		SoilDry:     store.Bool(true),
		PIRActive:   store.Bool(false),
		MotorOn:     true,
	}

	payload, err := FormatReading(ts, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := `{"garden":{"timestamp":"2026-03-02T14:30:00Z","temp_c":21.5,"humidity":48,"distance_cm":8,"water_height":2,"soil_dry":true,"pir_active":false,"motor_on":true}}`
	if string(payload) != expected {
		t.Errorf("unexpected payload:\ngot:  %s\nwant: %s", payload, expected)
	}
}

func TestFormatReadingOmitsUnset(t *testing.T) {
	ts := time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC)

	payload, err := FormatReading(ts, store.Reading{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := `{"garden":{"timestamp":"2026-03-02T14:30:00Z","motor_on":false}}`
	if string(payload) != expected {
		t.Errorf("unexpected payload:\ngot:  %s\nwant: %s", payload, expected)
	}
}

func TestFormatSystemPayload(t *testing.T) {
	event := SystemEvent{
		Timestamp: time.Date(2026, 3, 2, 10, 30, 45, 0, time.UTC),
		Event:     "SHUTDOWN",
		Reason:    "SIGTERM",
	}

	payload, err := FormatSystemPayload(event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := `{"system":{"timestamp":"2026-03-02T10:30:45Z","event":"SHUTDOWN","reason":"SIGTERM"}}`
	if string(payload) != expected {
		t.Errorf("unexpected payload:\ngot:  %s\nwant: %s", payload, expected)
	}
}

func TestFormatSystemPayloadNoReason(t *testing.T) {
	event := SystemEvent{
		Timestamp: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		Event:     "STARTUP",
	}

	payload, err := FormatSystemPayload(event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var parsed map[string]map[string]any
	if err := json.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if _, ok := parsed["system"]["reason"]; ok {
		t.Error("reason should be omitted when empty")
	}
}

func TestFakePublisherRecords(t *testing.T) {
	f := NewFakePublisher()
	ts := time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC)

	if err := f.PublishReading(ts, store.Reading{MotorOn: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.PublishSystem(SystemEvent{Timestamp: ts, Event: "STARTUP"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.Readings) != 1 || !f.Readings[0].Reading.MotorOn {
		t.Errorf("unexpected readings: %+v", f.Readings)
	}
	if len(f.SystemEvents) != 1 || f.SystemEvents[0].Event != "STARTUP" {
		t.Errorf("unexpected system events: %+v", f.SystemEvents)
	}
}
