package control

import (
	"context"
	"log"
	"time"

	"github.com/sweeney/garden-controller/internal/gpio"
	"github.com/sweeney/garden-controller/internal/logic"
)

// KeypadScanner polls the key matrix, detects rising edges, and
// dispatches recognized keys while presence is active. A pressed key
// blocks only its own scan cycle until release (software debounce);
// without presence the press is still debounced but silently absorbed.
type KeypadScanner struct {
	cfg     Config
	matrix  gpio.MatrixScanner
	pir     gpio.DigitalInput
	handler func(key string)
	edges   *logic.EdgeDetector
}

// NewKeypadScanner creates a scanner dispatching keys to handler.
func NewKeypadScanner(cfg Config, matrix gpio.MatrixScanner, pir gpio.DigitalInput, handler func(key string)) *KeypadScanner {
	return &KeypadScanner{
		cfg:     cfg,
		matrix:  matrix,
		pir:     pir,
		handler: handler,
		edges:   logic.NewEdgeDetector(logic.KeypadRows, logic.KeypadCols),
	}
}

// Run scans at the configured period until ctx is cancelled.
func (k *KeypadScanner) Run(ctx context.Context) {
	ticker := time.NewTicker(k.cfg.KeypadPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			k.scan(ctx)
		}
	}
}

// scan samples one frame and handles any new presses.
func (k *KeypadScanner) scan(ctx context.Context) {
	present, err := k.pir.Read()
	if err != nil {
		log.Printf("keypad: pir read failed: %v", err)
		present = false
	}

	frame, err := k.matrix.Scan()
	if err != nil {
		log.Printf("keypad: scan failed: %v", err)
		return
	}

	for _, e := range k.edges.Rising(frame) {
		key := logic.KeyAt(e.Row, e.Col)
		if key == "" {
			continue
		}
		if present {
			k.handler(key)
		} else {
			log.Printf("keypad: key %s ignored, no presence", key)
		}
		k.waitRelease(ctx, e)
	}
}

// waitRelease blocks until the cell reads released, polling against the
// stop signal. Bounded by the physical key release, not a timeout; a
// stuck key stalls only this scanner.
func (k *KeypadScanner) waitRelease(ctx context.Context, e logic.Edge) {
	for {
		frame, err := k.matrix.Scan()
		if err != nil {
			log.Printf("keypad: scan failed during debounce: %v", err)
			return
		}
		if e.Row >= len(frame) || e.Col >= len(frame[e.Row]) || !frame[e.Row][e.Col] {
			k.edges.Settle(e.Row, e.Col, false)
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(k.cfg.DebouncePoll):
		}
	}
}
