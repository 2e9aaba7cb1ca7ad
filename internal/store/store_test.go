package store

import (
	"strings"
	"sync"
	"testing"
)

func TestSnapshotDefaults(t *testing.T) {
	s := New()
	r := s.Snapshot()

	if r.TempC != nil || r.Humidity != nil || r.DistanceCM != nil ||
		r.WaterHeight != nil || r.SoilDry != nil || r.PIRActive != nil {
		t.Error("new store should have all optional fields unset")
	}
	if r.MotorOn {
		t.Error("new store should have motor off")
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	s := New()
	s.Update(func(r *Reading) {
		r.TempC = Float(21.5)
		r.SoilDry = Bool(true)
	})

	snap := s.Snapshot()

	// Mutating the store after the snapshot must not affect the copy.
	s.Update(func(r *Reading) {
		*r.TempC = 99.0
		*r.SoilDry = false
		r.MotorOn = true
	})

	if *snap.TempC != 21.5 {
		t.Errorf("snapshot temp changed: got %v", *snap.TempC)
	}
	if !*snap.SoilDry {
		t.Error("snapshot soil_dry changed")
	}
	if snap.MotorOn {
		t.Error("snapshot motor changed")
	}
}

func TestUpdateReplacesFields(t *testing.T) {
	s := New()
	s.Update(func(r *Reading) {
		r.DistanceCM = Float(8.0)
		r.WaterHeight = Float(2.0)
	})
	s.Update(func(r *Reading) {
		r.DistanceCM = nil
		r.WaterHeight = nil
	})

	r := s.Snapshot()
	if r.DistanceCM != nil || r.WaterHeight != nil {
		t.Error("expected distance and water height unset after clearing")
	}
}

func TestConcurrentAccess(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			s.Update(func(r *Reading) { r.TempC = Float(float64(n)) })
		}(i)
		go func() {
			defer wg.Done()
			_ = s.Snapshot()
		}()
	}
	wg.Wait()

	if s.Snapshot().TempC == nil {
		t.Error("expected temp set after concurrent updates")
	}
}

func TestStatusTextAllUnset(t *testing.T) {
	text := StatusText(Reading{})

	for _, want := range []string{
		"Temp: n/a",
		"Humidity: n/a",
		"Water height: n/a",
		"Distance: n/a",
		"Soil: n/a",
		"PIR: n/a",
		"Motor: OFF",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("status text missing %q:\n%s", want, text)
		}
	}
}

func TestStatusTextFull(t *testing.T) {
	r := Reading{
		TempC:       Float(21.5),
		Humidity:    Float(48),
		DistanceCM:  Float(8),
		WaterHeight: Float(2),
		SoilDry:     Bool(true),
		PIRActive:   Bool(false),
		MotorOn:     true,
	}
	text := StatusText(r)

	for _, want := range []string{
		"Temp: 21.50 °C",
		"Humidity: 48.00 %",
		"Water height: 2.00 cm",
		"Distance: 8.00 cm",
		"Soil: DRY",
		"PIR: IDLE",
		"Motor: ON",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("status text missing %q:\n%s", want, text)
		}
	}
}
