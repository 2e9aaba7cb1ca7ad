// Package store holds the shared record of the latest sensor readings.
// It is written by the sampling loop, the keypad handlers and the motor
// driver, and read by the telemetry publisher and the Telegram bot.
package store

import "sync"

// Reading is the latest known state of every sensor and the motor.
// Pointer fields are nil until a validated measurement has been stored;
// a failed read never half-applies.
type Reading struct {
	TempC       *float64
	Humidity    *float64
	DistanceCM  *float64
	WaterHeight *float64
	SoilDry     *bool
	PIRActive   *bool
	MotorOn     bool
}

// Store owns a single Reading behind a mutex. Callers never hold the
// lock across sensor or network I/O: measure first, then Update with
// the already-computed value.
type Store struct {
	mu sync.Mutex
	r  Reading
}

// New creates a Store with all fields unset and the motor off.
func New() *Store {
	return &Store{}
}

// Update applies fn to the record under the lock. fn must not block.
func (s *Store) Update(fn func(*Reading)) {
	s.mu.Lock()
	fn(&s.r)
	s.mu.Unlock()
}

// Snapshot returns a copy of the record, consistent at a single instant
// and safe to use after the lock is released.
func (s *Store) Snapshot() Reading {
	s.mu.Lock()
	r := s.r
	s.mu.Unlock()

	r.TempC = cloneFloat(r.TempC)
	r.Humidity = cloneFloat(r.Humidity)
	r.DistanceCM = cloneFloat(r.DistanceCM)
	r.WaterHeight = cloneFloat(r.WaterHeight)
	r.SoilDry = cloneBool(r.SoilDry)
	r.PIRActive = cloneBool(r.PIRActive)
	return r
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneBool(p *bool) *bool {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Float returns a pointer to v, for setting optional fields.
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to v, for setting optional fields.
func Bool(v bool) *bool { return &v }
