// Package alert gates notifications on state transitions with a per-key
// cooldown, so observers hear about each change once instead of every
// sampling iteration.
package alert

import (
	"log"
	"sync"
	"time"
)

// DefaultCooldown is the minimum time between two notifications for the
// same key.
const DefaultCooldown = 60 * time.Second

// Notifier delivers one message to the alert sink.
type Notifier interface {
	Send(text string) error
}

type entry struct {
	state    any
	seen     bool
	lastSent time.Time
}

// Gate tracks (last state, last successful send) per key. Entries are
// created lazily on first Consider. Safe for use from multiple callers.
type Gate struct {
	notifier Notifier
	cooldown time.Duration

	mu      sync.Mutex
	entries map[string]*entry
}

// New creates a Gate delivering through n. A nil notifier disables the
// gate entirely; Consider becomes a no-op.
func New(n Notifier, cooldown time.Duration) *Gate {
	return &Gate{
		notifier: n,
		cooldown: cooldown,
		entries:  map[string]*entry{},
	}
}

// Consider records the observed state for key and sends message if the
// state changed since the last considered state and the cooldown since
// the last successful send has elapsed. Returns whether a notification
// was delivered.
//
// The last-sent time only advances on a confirmed send, so a transient
// delivery failure does not eat the cooldown window. The recorded state
// advances whether or not the send succeeded: an unchanged state is never
// retried, but a later genuine transition is still detected.
func (g *Gate) Consider(now time.Time, key string, state any, message string) bool {
	if g == nil || g.notifier == nil {
		return false
	}

	g.mu.Lock()
	e := g.entries[key]
	if e == nil {
		e = &entry{}
		g.entries[key] = e
	}

	changed := !e.seen || e.state != state
	recentlySent := !e.lastSent.IsZero() && now.Sub(e.lastSent) < g.cooldown
	if !changed || recentlySent {
		g.mu.Unlock()
		return false
	}
	e.state = state
	e.seen = true
	g.mu.Unlock()

	// The lock is never held across the send; a slow delivery on one key
	// must not block Consider for the others.
	if err := g.notifier.Send(message); err != nil {
		log.Printf("alert: send %q failed: %v", key, err)
		return false
	}

	g.mu.Lock()
	e.lastSent = now
	g.mu.Unlock()
	return true
}
