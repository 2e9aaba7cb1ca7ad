// Package mqtt mirrors reading snapshots and lifecycle events to a local
// broker for dashboards on the home network, with abstraction for testing.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/sweeney/garden-controller/internal/store"
)

// TopicReadings is the topic for periodic reading snapshots.
const TopicReadings = "garden/controller/readings"

// TopicSystem is the topic for system lifecycle events.
const TopicSystem = "garden/controller/system"

// Publisher publishes garden state to MQTT.
type Publisher interface {
	// PublishReading sends a reading snapshot to the broker.
	// Returns error if publishing fails (must not crash the process).
	PublishReading(t time.Time, r store.Reading) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// SystemEvent represents a lifecycle event (startup, shutdown).
type SystemEvent struct {
	Timestamp time.Time
	Event     string // "STARTUP" or "SHUTDOWN"
	Reason    string // "SIGTERM", "SIGINT" (shutdown only)
	Retained  bool
}

// ReadingPayload is the MQTT message envelope for snapshots.
type ReadingPayload struct {
	Garden GardenPayload `json:"garden"`
}

// GardenPayload contains the snapshot details. Unset fields are omitted.
type GardenPayload struct {
	Timestamp   string   `json:"timestamp"`
	TempC       *float64 `json:"temp_c,omitempty"`
	Humidity    *float64 `json:"humidity,omitempty"`
	DistanceCM  *float64 `json:"distance_cm,omitempty"`
	WaterHeight *float64 `json:"water_height,omitempty"`
	SoilDry     *bool    `json:"soil_dry,omitempty"`
	PIRActive   *bool    `json:"pir_active,omitempty"`
	MotorOn     bool     `json:"motor_on"`
}

// FormatReading creates the JSON payload for a snapshot.
func FormatReading(t time.Time, r store.Reading) ([]byte, error) {
	payload := ReadingPayload{
		Garden: GardenPayload{
			Timestamp:   t.UTC().Format(time.RFC3339),
			TempC:       r.TempC,
			Humidity:    r.Humidity,
			DistanceCM:  r.DistanceCM,
			WaterHeight: r.WaterHeight,
			SoilDry:     r.SoilDry,
			PIRActive:   r.PIRActive,
			MotorOn:     r.MotorOn,
		},
	}
	return json.Marshal(payload)
}

// SystemPayload is the MQTT message envelope for system events.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
