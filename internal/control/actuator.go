package control

import (
	"log"

	"github.com/sweeney/garden-controller/internal/gpio"
	"github.com/sweeney/garden-controller/internal/store"
)

// Actuator commands the irrigation motor. Every call records the
// commanded state in the store so observers see what was asked of the
// hardware, not an inference. Set is idempotent.
type Actuator struct {
	out   gpio.Output
	store *store.Store
}

// NewActuator creates an Actuator driving out.
func NewActuator(out gpio.Output, st *store.Store) *Actuator {
	return &Actuator{out: out, store: st}
}

// Set drives the motor on or off. A hardware fault is logged, not
// propagated; the commanded state is recorded regardless.
func (a *Actuator) Set(on bool) {
	if err := a.out.Set(on); err != nil {
		log.Printf("actuator: set %v failed: %v", on, err)
	}
	a.store.Update(func(r *store.Reading) {
		r.MotorOn = on
	})
}
