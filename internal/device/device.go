package device

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/live-labs/kluchnik/internal/display"
	"github.com/live-labs/kluchnik/internal/entropy"
	"github.com/live-labs/kluchnik/internal/hal"
	"github.com/live-labs/kluchnik/internal/transport"
)

// Device wires the board peripherals, session config, menu and generator
// together and adapts them to the transport server.
type Device struct {
	Config *Config
	Gen    *Generator
	Menu   *Menu
	Log    *zap.Logger

	// genMu serializes generation cycles. A remote GET_DATA arrives on the
	// transport goroutine while the local Select button fires on the input
	// loop; there is one counter and one panel, so whichever request comes
	// second queues behind the running cycle.
	genMu sync.Mutex
}

// New assembles a Device around a motion sensor and counter wiring. SelfTest
// should already have passed for the sensor and surface.
func New(gate *entropy.Gate, surface display.Surface, log *zap.Logger) *Device {
	if log == nil {
		log = zap.NewNop()
	}
	cfg := NewConfig()
	gen := &Generator{Source: gate, Surface: surface, Log: log}
	d := &Device{Config: cfg, Gen: gen, Log: log}
	d.Menu = NewMenu(cfg, surface, gate.Clock, func() {
		if _, err := d.generate(); err != nil {
			log.Error("generation failed", zap.Error(err))
		}
	})
	return d
}

// generate runs one cycle under the generation lock.
func (d *Device) generate() (Result, error) {
	d.genMu.Lock()
	defer d.genMu.Unlock()
	return d.Gen.Run(d.Config.Policy(), d.Config.Length())
}

// SelfTest checks the startup-critical peripherals. Per the firmware error
// policy a failure here is fatal: the caller renders a diagnostic and halts.
func SelfTest(sensor hal.MotionSensor, surface display.Surface) error {
	if err := sensor.Probe(); err != nil {
		return fmt.Errorf("motion sensor: %w", err)
	}
	surface.Clear()
	if err := surface.Flush(); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	return nil
}

// GenerateData implements transport.Handler: one full blocking generation
// cycle, result handed to the wire.
func (d *Device) GenerateData() (transport.Payload, error) {
	res, err := d.generate()
	if err != nil {
		return transport.Payload{}, err
	}
	return res.Payload, nil
}

// Up, Down and Select implement transport.Handler for the remote menu
// commands.
func (d *Device) Up()     { d.Menu.Up() }
func (d *Device) Down()   { d.Menu.Down() }
func (d *Device) Select() { d.Menu.Select() }
