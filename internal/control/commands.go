package control

import (
	"fmt"
	"log"

	"github.com/sweeney/garden-controller/internal/display"
	"github.com/sweeney/garden-controller/internal/gpio"
	"github.com/sweeney/garden-controller/internal/logic"
	"github.com/sweeney/garden-controller/internal/store"
)

// Commands maps keypad keys to on-demand measurements. Key 1 measures
// the water level, key 2 the temperature; both update the store and show
// the result on the display. Other keys are only logged.
type Commands struct {
	cfg      Config
	store    *store.Store
	distance gpio.DistanceSensor
	climate  gpio.TempHumiditySensor
	screen   display.Renderer
}

// NewCommands creates the keypad command handlers.
func NewCommands(cfg Config, st *store.Store, distance gpio.DistanceSensor, climate gpio.TempHumiditySensor, screen display.Renderer) *Commands {
	return &Commands{
		cfg:      cfg,
		store:    st,
		distance: distance,
		climate:  climate,
		screen:   screen,
	}
}

// Handle dispatches one key press.
func (c *Commands) Handle(key string) {
	switch key {
	case "1":
		c.waterLevel()
	case "2":
		c.temperature()
	default:
		log.Printf("keypad: key pressed: %s", key)
	}
}

func (c *Commands) waterLevel() {
	d, err := c.distance.MeasureCM()
	if err != nil {
		log.Printf("keypad: water level read failed: %v", err)
		c.screen.Render("Water read err", "")
		return
	}
	if d <= 0 {
		log.Printf("keypad: invalid water level reading %.2f cm", d)
		c.screen.Render("Water: invalid", "")
		return
	}

	height := logic.WaterHeight(c.cfg.BeakerHeightCM, d)
	c.store.Update(func(r *store.Reading) {
		r.DistanceCM = store.Float(d)
		r.WaterHeight = store.Float(height)
	})
	log.Printf("keypad: water height %.2f cm (distance %.2f cm)", height, d)
	c.screen.Render(
		fmt.Sprintf("Water:%6.2fcm", height),
		fmt.Sprintf("Dist: %6.2fcm", d),
	)
}

func (c *Commands) temperature() {
	m, err := c.climate.Measure()
	if err != nil {
		log.Printf("keypad: temperature read failed: %v", err)
		c.screen.Render("Temp read fail", "")
		return
	}
	if !logic.ValidTemperature(m.TempC, c.cfg.TempMinC, c.cfg.TempMaxC) {
		log.Printf("keypad: discarding out-of-range temperature %.1f C", m.TempC)
		c.screen.Render("Temp read fail", "")
		return
	}

	c.store.Update(func(r *store.Reading) {
		r.TempC = store.Float(m.TempC)
		if m.Humidity != nil {
			r.Humidity = store.Float(*m.Humidity)
		}
	})
	log.Printf("keypad: temperature %.2f C", m.TempC)
	c.screen.Render(fmt.Sprintf("Temp: %.2f C", m.TempC), "")
}
