package alert

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// fakeNotifier records sent messages and can fail on demand.
type fakeNotifier struct {
	Sent    []string
	SendErr error
}

func (f *fakeNotifier) Send(text string) error {
	if f.SendErr != nil {
		return f.SendErr
	}
	f.Sent = append(f.Sent, text)
	return nil
}

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func TestFirstObservationSends(t *testing.T) {
	n := &fakeNotifier{}
	g := New(n, DefaultCooldown)

	if !g.Consider(t0, "water_low", true, "Water LOW") {
		t.Fatal("first observation should send")
	}
	if len(n.Sent) != 1 || n.Sent[0] != "Water LOW" {
		t.Errorf("unexpected sends: %v", n.Sent)
	}
}

func TestSameStateNeverResends(t *testing.T) {
	n := &fakeNotifier{}
	g := New(n, DefaultCooldown)

	g.Consider(t0, "water_low", true, "Water LOW")
	// Same state repeatedly, even far beyond cooldown.
	for i := 1; i <= 5; i++ {
		if g.Consider(t0.Add(time.Duration(i)*2*time.Minute), "water_low", true, "Water LOW") {
			t.Errorf("call %d: unchanged state must not resend", i)
		}
	}
	if len(n.Sent) != 1 {
		t.Errorf("expected 1 send, got %d", len(n.Sent))
	}
}

func TestCooldownSuppressesToggles(t *testing.T) {
	n := &fakeNotifier{}
	g := New(n, DefaultCooldown)

	g.Consider(t0, "water_low", true, "Water LOW")

	// State toggles several times inside the cooldown window.
	if g.Consider(t0.Add(10*time.Second), "water_low", false, "Water OK") {
		t.Error("toggle inside cooldown must not send")
	}
	if g.Consider(t0.Add(20*time.Second), "water_low", true, "Water LOW") {
		t.Error("toggle inside cooldown must not send")
	}

	// After cooldown, a state differing from the last recorded one sends.
	if !g.Consider(t0.Add(61*time.Second), "water_low", false, "Water OK") {
		t.Error("changed state after cooldown should send")
	}
	if len(n.Sent) != 2 {
		t.Errorf("expected 2 sends, got %d", len(n.Sent))
	}
}

func TestSendFailureDoesNotAdvanceCooldown(t *testing.T) {
	n := &fakeNotifier{SendErr: errors.New("network down")}
	g := New(n, DefaultCooldown)

	if g.Consider(t0, "soil_dry", true, "Soil is DRY") {
		t.Fatal("failed send should report not sent")
	}

	// The state was recorded despite the failure: no resend storm.
	n.SendErr = nil
	if g.Consider(t0.Add(time.Second), "soil_dry", true, "Soil is DRY") {
		t.Error("unchanged state must not retry after failed send")
	}

	// But a genuine transition sends immediately: the failed attempt did
	// not start a cooldown window.
	if !g.Consider(t0.Add(2*time.Second), "soil_dry", false, "Soil MOIST") {
		t.Error("transition after failed send should deliver immediately")
	}
	if len(n.Sent) != 1 {
		t.Errorf("expected 1 send, got %d", len(n.Sent))
	}
}

func TestKeysAreIndependent(t *testing.T) {
	n := &fakeNotifier{}
	g := New(n, DefaultCooldown)

	g.Consider(t0, "water_low", true, "Water LOW")
	if !g.Consider(t0.Add(time.Second), "soil_dry", true, "Soil is DRY") {
		t.Error("cooldown on one key must not block another")
	}
	if len(n.Sent) != 2 {
		t.Errorf("expected 2 sends, got %d", len(n.Sent))
	}
}

func TestScenarioWaterLowRepeat(t *testing.T) {
	// distance=8, beaker=10, cutoff=7 -> low; repeat within 60s at
	// distance=9 (still low) must not resend.
	n := &fakeNotifier{}
	g := New(n, DefaultCooldown)

	if !g.Consider(t0, "water_low", true, "Water LOW (distance 8.00 cm)") {
		t.Fatal("first low reading should send")
	}
	if g.Consider(t0.Add(30*time.Second), "water_low", true, "Water LOW (distance 9.00 cm)") {
		t.Error("still-low reading within cooldown must not resend")
	}
	if len(n.Sent) != 1 {
		t.Errorf("expected 1 send, got %d", len(n.Sent))
	}
}

// stallingNotifier blocks its first Send until released; later sends
// return immediately.
type stallingNotifier struct {
	entered chan struct{}
	release chan struct{}
	stalled atomic.Bool
}

func (n *stallingNotifier) Send(text string) error {
	if n.stalled.CompareAndSwap(false, true) {
		close(n.entered)
		<-n.release
	}
	return nil
}

func TestSlowSendDoesNotBlockOtherKeys(t *testing.T) {
	n := &stallingNotifier{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	g := New(n, DefaultCooldown)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		g.Consider(t0, "water_low", true, "Water LOW")
	}()
	<-n.entered

	// With one key's delivery in flight, an unrelated key must still get
	// through promptly.
	done := make(chan bool, 1)
	go func() {
		done <- g.Consider(t0, "soil_dry", true, "Soil is DRY")
	}()

	select {
	case sent := <-done:
		if !sent {
			t.Error("unrelated key should deliver while another send is in flight")
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("Consider blocked on an unrelated key's in-flight send")
	}

	close(n.release)
	wg.Wait()
}

func TestNilNotifierDisablesGate(t *testing.T) {
	g := New(nil, DefaultCooldown)
	if g.Consider(t0, "water_low", true, "Water LOW") {
		t.Error("gate without a notifier must be a no-op")
	}
}

func TestNilGateIsSafe(t *testing.T) {
	var g *Gate
	if g.Consider(t0, "water_low", true, "Water LOW") {
		t.Error("nil gate must be a no-op")
	}
}
