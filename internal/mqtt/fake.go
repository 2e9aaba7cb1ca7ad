package mqtt

import (
	"time"

	"github.com/sweeney/garden-controller/internal/store"
)

// PublishedReading records one snapshot publish for test assertions.
type PublishedReading struct {
	Timestamp time.Time
	Reading   store.Reading
}

// FakePublisher records published messages for test assertions.
type FakePublisher struct {
	// Readings contains all published snapshots.
	Readings []PublishedReading

	// ReadingPayloads contains the JSON payloads for snapshots.
	ReadingPayloads [][]byte

	// SystemEvents contains all published system events.
	SystemEvents []SystemEvent

	// SystemPayloads contains the JSON payloads for system events.
	SystemPayloads [][]byte

	// PublishError, if set, is returned by PublishReading.
	PublishError error

	// PublishSystemError, if set, is returned by PublishSystem.
	PublishSystemError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakePublisher creates a FakePublisher for testing.
func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

// PublishReading records the snapshot.
func (f *FakePublisher) PublishReading(t time.Time, r store.Reading) error {
	if f.PublishError != nil {
		return f.PublishError
	}

	f.Readings = append(f.Readings, PublishedReading{Timestamp: t, Reading: r})

	payload, err := FormatReading(t, r)
	if err != nil {
		return err
	}
	f.ReadingPayloads = append(f.ReadingPayloads, payload)
	return nil
}

// PublishSystem records the system event.
func (f *FakePublisher) PublishSystem(event SystemEvent) error {
	if f.PublishSystemError != nil {
		return f.PublishSystemError
	}

	f.SystemEvents = append(f.SystemEvents, event)

	payload, err := FormatSystemPayload(event)
	if err != nil {
		return err
	}
	f.SystemPayloads = append(f.SystemPayloads, payload)
	return nil
}

// Close marks the publisher as closed.
func (f *FakePublisher) Close() error {
	f.Closed = true
	return nil
}
