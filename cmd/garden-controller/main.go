// Command garden-controller runs the greenhouse daemon: it samples the
// sensors, drives the irrigation motor, answers the keypad and pushes
// readings to ThingSpeak, Telegram and an optional local MQTT broker.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/sweeney/garden-controller/internal/alert"
	"github.com/sweeney/garden-controller/internal/control"
	"github.com/sweeney/garden-controller/internal/display"
	"github.com/sweeney/garden-controller/internal/gpio"
	"github.com/sweeney/garden-controller/internal/mqtt"
	"github.com/sweeney/garden-controller/internal/store"
	"github.com/sweeney/garden-controller/internal/telegram"
	"github.com/sweeney/garden-controller/internal/thingspeak"
)

// Secrets come from the environment, not flags, so they stay out of ps
// output and service files can source an env file.
const (
	envThingSpeakKey  = "THINGSPEAK_WRITE_KEY"
	envTelegramToken  = "TELEGRAM_BOT_TOKEN"
	envTelegramChatID = "TELEGRAM_CHAT_ID"
)

func main() {
	poll := flag.Duration("poll", time.Second, "sensor polling interval")
	climatePoll := flag.Duration("climate-poll", 5*time.Second, "temperature/humidity read interval")
	keypadPoll := flag.Duration("keypad-poll", 20*time.Millisecond, "keypad scan interval")
	telemetryPoll := flag.Duration("telemetry-poll", 5*time.Second, "telemetry publish interval")
	cooldown := flag.Duration("cooldown", alert.DefaultCooldown, "minimum time between repeated alerts")
	minPush := flag.Duration("min-push", thingspeak.DefaultMinInterval, "minimum spacing between channel updates")
	beaker := flag.Float64("beaker", 10, "water beaker height in cm")
	waterLow := flag.Float64("water-low", 7, "distance in cm beyond which water counts as low")
	broker := flag.String("broker", "", "MQTT broker address (empty to disable)")
	chipName := flag.String("chip", "gpiochip0", "GPIO character device")
	pinSwitch := flag.Int("pin-switch", gpio.DefaultPinSwitch, "BCM pin for the enable switch")
	pinPIR := flag.Int("pin-pir", gpio.DefaultPinPIR, "BCM pin for the PIR sensor")
	pinMotor := flag.Int("pin-motor", gpio.DefaultPinMotor, "BCM pin for the motor driver")
	pinTrigger := flag.Int("pin-trigger", gpio.DefaultPinTrigger, "BCM pin for the ultrasonic trigger")
	pinEcho := flag.Int("pin-echo", gpio.DefaultPinEcho, "BCM pin for the ultrasonic echo")
	pinMoisture := flag.Int("pin-moisture", gpio.DefaultPinMoisture, "BCM pin for the moisture sensor")
	pinDHT := flag.Int("pin-dht", gpio.DefaultPinDHT, "BCM pin for the DHT11 data line")
	printStatus := flag.Bool("print-status", false, "sample once, print the status and exit")

	flag.Parse()

	cfg := control.DefaultConfig()
	cfg.SamplePeriod = *poll
	cfg.ClimatePeriod = *climatePoll
	cfg.KeypadPeriod = *keypadPoll
	cfg.TelemetryPeriod = *telemetryPoll
	cfg.BeakerHeightCM = *beaker
	cfg.WaterLowDistanceCM = *waterLow

	pins := pinConfig{
		switchPin: *pinSwitch,
		pir:       *pinPIR,
		motor:     *pinMotor,
		trigger:   *pinTrigger,
		echo:      *pinEcho,
		moisture:  *pinMoisture,
		dht:       *pinDHT,
	}

	if err := run(cfg, pins, *chipName, *broker, *cooldown, *minPush, *printStatus); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

type pinConfig struct {
	switchPin int
	pir       int
	motor     int
	trigger   int
	echo      int
	moisture  int
	dht       int
}

// hardware holds the opened lines so shutdown can release them in one
// place.
type hardware struct {
	chip    *gpio.Chip
	sensors control.Sensors
	motor   gpio.Output
	matrix  gpio.MatrixScanner
}

func (h *hardware) close() {
	h.sensors.Enable.Close()
	h.sensors.PIR.Close()
	h.sensors.Moisture.Close()
	h.sensors.Distance.Close()
	h.sensors.Climate.Close()
	h.matrix.Close()
	h.motor.Close()
	h.chip.Close()
}

func openHardware(chipName string, pins pinConfig) (*hardware, error) {
	chip, err := gpio.OpenChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	enable, err := chip.Input(pins.switchPin, false)
	if err != nil {
		return nil, fmt.Errorf("init enable switch: %w", err)
	}
	pir, err := chip.Input(pins.pir, true)
	if err != nil {
		return nil, fmt.Errorf("init pir: %w", err)
	}
	moisture, err := chip.Input(pins.moisture, false)
	if err != nil {
		return nil, fmt.Errorf("init moisture sensor: %w", err)
	}
	distance, err := chip.Distance(pins.trigger, pins.echo, 100*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("init distance sensor: %w", err)
	}
	climate, err := chip.DHT(pins.dht)
	if err != nil {
		return nil, fmt.Errorf("init dht11: %w", err)
	}
	motor, err := chip.Output(pins.motor)
	if err != nil {
		return nil, fmt.Errorf("init motor: %w", err)
	}
	matrix, err := chip.Matrix(gpio.DefaultKeypadRowPins, gpio.DefaultKeypadColPins)
	if err != nil {
		return nil, fmt.Errorf("init keypad: %w", err)
	}

	return &hardware{
		chip: chip,
		sensors: control.Sensors{
			Enable:   enable,
			PIR:      pir,
			Moisture: moisture,
			Distance: distance,
			Climate:  climate,
		},
		motor:  motor,
		matrix: matrix,
	}, nil
}

func run(cfg control.Config, pins pinConfig, chipName, broker string, cooldown, minPush time.Duration, printStatus bool) error {
	hw, err := openHardware(chipName, pins)
	if err != nil {
		return err
	}
	defer hw.close()

	st := store.New()
	actuator := control.NewActuator(hw.motor, st)

	if printStatus {
		sampler := control.NewSampler(cfg, st, actuator, nil, hw.sensors)
		sampler.Sample(time.Now())
		fmt.Println(store.StatusText(st.Snapshot()))
		return nil
	}

	var screen display.Renderer = display.LogRenderer{}

	// Telegram: alert notifier plus the /status command bot.
	var bot *telegram.Service
	var notifier alert.Notifier
	if token := os.Getenv(envTelegramToken); token != "" {
		chatID, err := strconv.ParseInt(os.Getenv(envTelegramChatID), 10, 64)
		if err != nil {
			return fmt.Errorf("parse %s: %w", envTelegramChatID, err)
		}
		bot, err = telegram.New(token, chatID, func() string {
			return store.StatusText(st.Snapshot())
		})
		if err != nil {
			return err
		}
		notifier = bot
		log.Printf("telegram bot connected, chat %d", chatID)
	} else {
		log.Printf("telegram disabled (no %s)", envTelegramToken)
	}
	gate := alert.New(notifier, cooldown)

	// ThingSpeak channel updates.
	var sink control.Sink
	if key := os.Getenv(envThingSpeakKey); key != "" {
		sink = thingspeak.NewClient(key, minPush)
		log.Printf("thingspeak enabled, min interval %v", minPush)
	} else {
		log.Printf("thingspeak disabled (no %s)", envThingSpeakKey)
	}

	// Local MQTT mirror.
	var mirror mqtt.Publisher
	if broker != "" {
		m, err := mqtt.NewRealPublisher(broker)
		if err != nil {
			return fmt.Errorf("connect mqtt: %w", err)
		}
		defer m.Close()
		mirror = m
		log.Printf("mqtt mirror enabled, broker %s", broker)
	}

	if mirror != nil {
		event := mqtt.SystemEvent{
			Timestamp: time.Now(),
			Event:     "STARTUP",
			Retained:  true,
		}
		if err := mirror.PublishSystem(event); err != nil {
			log.Printf("failed to publish startup event: %v", err)
		}
	}
	if notifier != nil {
		if err := notifier.Send("System booted."); err != nil {
			log.Printf("boot notification failed: %v", err)
		}
	}
	screen.Render("System Ready", "")

	sampler := control.NewSampler(cfg, st, actuator, gate, hw.sensors)
	commands := control.NewCommands(cfg, st, hw.sensors.Distance, hw.sensors.Climate, screen)
	keypad := control.NewKeypadScanner(cfg, hw.matrix, hw.sensors.PIR, commands.Handle)
	telemetry := control.NewTelemetry(cfg, st, sink, mirror)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go sampler.Run(ctx)
	go keypad.Run(ctx)
	if telemetry.Enabled() {
		go telemetry.Run(ctx)
	}
	if bot != nil {
		go bot.Run(ctx)
	}

	log.Printf("started: poll=%v climate=%v keypad=%v telemetry=%v cooldown=%v",
		cfg.SamplePeriod, cfg.ClimatePeriod, cfg.KeypadPeriod, cfg.TelemetryPeriod, cooldown)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	s := <-sigCh
	log.Printf("received %v, shutting down", s)

	if mirror != nil {
		event := mqtt.SystemEvent{
			Timestamp: time.Now(),
			Event:     "SHUTDOWN",
			Reason:    signalName(s),
			Retained:  true,
		}
		if err := mirror.PublishSystem(event); err != nil {
			log.Printf("failed to publish shutdown event: %v", err)
		}
	}

	cancel()

	// Leave the motor off whatever state the loops were in.
	actuator.Set(false)
	return nil
}

func signalName(s os.Signal) string {
	switch s {
	case syscall.SIGINT:
		return "SIGINT"
	case syscall.SIGTERM:
		return "SIGTERM"
	}
	return "UNKNOWN"
}
