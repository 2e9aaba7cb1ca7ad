package control

import (
	"context"
	"log"
	"time"

	"github.com/sweeney/garden-controller/internal/mqtt"
	"github.com/sweeney/garden-controller/internal/store"
)

// Sink accepts reading snapshots. Implementations rate-limit themselves
// and report whether the push was accepted; the publisher never retries
// inside a tick.
type Sink interface {
	Push(r store.Reading) bool
}

// Telemetry periodically snapshots the store and pushes it outward: to
// the channel sink and, when configured, mirrored to the local broker.
type Telemetry struct {
	cfg    Config
	store  *store.Store
	sink   Sink
	mirror mqtt.Publisher
}

// NewTelemetry creates the publisher loop. sink and mirror may each be
// nil when unconfigured.
func NewTelemetry(cfg Config, st *store.Store, sink Sink, mirror mqtt.Publisher) *Telemetry {
	return &Telemetry{cfg: cfg, store: st, sink: sink, mirror: mirror}
}

// Enabled reports whether any destination is configured.
func (t *Telemetry) Enabled() bool {
	return t.sink != nil || t.mirror != nil
}

// Run publishes at the configured period until ctx is cancelled.
func (t *Telemetry) Run(ctx context.Context) {
	ticker := time.NewTicker(t.cfg.TelemetryPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.publish(time.Now())
		}
	}
}

func (t *Telemetry) publish(now time.Time) {
	snap := t.store.Snapshot()

	if t.sink != nil {
		if t.sink.Push(snap) {
			log.Printf("telemetry: channel updated")
		} else {
			log.Printf("telemetry: push skipped or failed")
		}
	}

	if t.mirror != nil {
		if err := t.mirror.PublishReading(now, snap); err != nil {
			log.Printf("telemetry: mirror publish failed: %v", err)
		}
	}
}
