package store

import (
	"fmt"
	"strings"
)

// StatusText renders a snapshot as the multi-line status report sent to
// Telegram. Unset fields show as "n/a".
func StatusText(r Reading) string {
	lines := []string{
		"Status:",
		optFloat("Temp", r.TempC, "°C"),
		optFloat("Humidity", r.Humidity, "%"),
		optFloat("Water height", r.WaterHeight, "cm"),
		optFloat("Distance", r.DistanceCM, "cm"),
		"Soil: " + optChoice(r.SoilDry, "DRY", "MOIST"),
		"PIR: " + optChoice(r.PIRActive, "ACTIVE", "IDLE"),
		"Motor: " + onOff(r.MotorOn),
	}
	return strings.Join(lines, "\n")
}

func optFloat(name string, v *float64, unit string) string {
	if v == nil {
		return name + ": n/a"
	}
	return fmt.Sprintf("%s: %.2f %s", name, *v, unit)
}

func optChoice(v *bool, yes, no string) string {
	if v == nil {
		return "n/a"
	}
	if *v {
		return yes
	}
	return no
}

func onOff(v bool) string {
	if v {
		return "ON"
	}
	return "OFF"
}
