package control

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sweeney/garden-controller/internal/alert"
	"github.com/sweeney/garden-controller/internal/gpio"
	"github.com/sweeney/garden-controller/internal/logic"
	"github.com/sweeney/garden-controller/internal/store"
)

// Sensors bundles the inputs the sampling loop reads.
type Sensors struct {
	// Enable is the master slide switch; off forces the motor off and
	// skips the iteration.
	Enable gpio.DigitalInput

	// PIR reports presence (already resolved from the active-low line).
	PIR gpio.DigitalInput

	// Moisture reads true when the soil is dry.
	Moisture gpio.DigitalInput

	Distance gpio.DistanceSensor
	Climate  gpio.TempHumiditySensor
}

// Sampler is the periodic sensor loop: read, validate, store, decide.
// Sensor failures degrade to keep-previous-value and never stop the loop.
type Sampler struct {
	cfg      Config
	store    *store.Store
	actuator *Actuator
	alerts   *alert.Gate
	sensors  Sensors

	lastClimate time.Time
}

// NewSampler creates a Sampler. alerts may be nil when no notifier is
// configured.
func NewSampler(cfg Config, st *store.Store, act *Actuator, alerts *alert.Gate, sensors Sensors) *Sampler {
	return &Sampler{
		cfg:      cfg,
		store:    st,
		actuator: act,
		alerts:   alerts,
		sensors:  sensors,
	}
}

// Run samples at the configured period until ctx is cancelled.
func (s *Sampler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.SamplePeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sample(time.Now())
		}
	}
}

// Sample performs one iteration. All sensor I/O happens before the store
// is touched; only computed values are written under the lock.
func (s *Sampler) Sample(now time.Time) {
	enabled, err := s.sensors.Enable.Read()
	if err != nil {
		log.Printf("sampling: enable switch read failed: %v", err)
		return
	}
	if !enabled {
		s.actuator.Set(false)
		return
	}

	s.samplePresence()
	s.sampleDistance(now)
	s.sampleMoisture(now)
	s.sampleClimate(now)
}

func (s *Sampler) samplePresence() {
	active, err := s.sensors.PIR.Read()
	if err != nil {
		log.Printf("sampling: pir read failed: %v", err)
		return
	}
	s.store.Update(func(r *store.Reading) {
		r.PIRActive = store.Bool(active)
	})
}

// sampleDistance measures the water level. A timeout or garbage reading
// leaves the stored distance and water height untouched and raises no
// alert transition.
func (s *Sampler) sampleDistance(now time.Time) {
	d, err := s.sensors.Distance.MeasureCM()
	if err != nil {
		log.Printf("sampling: distance read failed: %v", err)
		return
	}
	if d <= 0 {
		log.Printf("sampling: discarding garbage distance %.2f cm", d)
		return
	}

	height := logic.WaterHeight(s.cfg.BeakerHeightCM, d)
	s.store.Update(func(r *store.Reading) {
		r.DistanceCM = store.Float(d)
		r.WaterHeight = store.Float(height)
	})

	if logic.WaterLow(d, s.cfg.WaterLowDistanceCM) {
		s.alerts.Consider(now, "water_low", true,
			fmt.Sprintf("Water LOW (distance %.2f cm)", d))
	} else {
		s.alerts.Consider(now, "water_low", false, "Water OK again.")
	}
}

// sampleMoisture reads the soil state and drives the motor from it. The
// alert gate sees the state every iteration and decides on its own
// whether a transition is worth notifying.
func (s *Sampler) sampleMoisture(now time.Time) {
	dry, err := s.sensors.Moisture.Read()
	if err != nil {
		log.Printf("sampling: moisture read failed: %v", err)
		return
	}

	s.store.Update(func(r *store.Reading) {
		r.SoilDry = store.Bool(dry)
	})
	s.actuator.Set(logic.MotorDecision(dry))

	if dry {
		s.alerts.Consider(now, "soil_dry", true, "Soil is DRY - motor turned ON.")
	} else {
		s.alerts.Consider(now, "soil_dry", false, "Soil MOIST - motor turned OFF.")
	}
}

// sampleClimate runs at the slower cadence. Out-of-range temperatures are
// treated like a missing reading: previous values stay put.
func (s *Sampler) sampleClimate(now time.Time) {
	if !s.lastClimate.IsZero() && now.Sub(s.lastClimate) < s.cfg.ClimatePeriod {
		return
	}
	s.lastClimate = now

	m, err := s.sensors.Climate.Measure()
	if err != nil {
		log.Printf("sampling: climate read failed: %v", err)
		return
	}
	if !logic.ValidTemperature(m.TempC, s.cfg.TempMinC, s.cfg.TempMaxC) {
		log.Printf("sampling: discarding out-of-range temperature %.1f C", m.TempC)
		return
	}

	s.store.Update(func(r *store.Reading) {
		r.TempC = store.Float(m.TempC)
		if m.Humidity != nil {
			r.Humidity = store.Float(*m.Humidity)
		}
	})
}
