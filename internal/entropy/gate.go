package entropy

import (
	"time"

	"github.com/live-labs/kluchnik/internal/hal"
)

const (
	// Window is the wall-clock budget of one NextByte call. The gate loop
	// runs until the window elapses, then the counter is sampled once.
	Window = 200 * time.Millisecond

	resetPulse = 10 * time.Microsecond
	settle     = 10 * time.Microsecond

	gateModMicros   = 100
	gateFloorMicros = 10
)

// Source yields raw entropy bytes one at a time.
type Source interface {
	NextByte() byte
}

// Fill overwrites every byte of p with a fresh draw from src.
func Fill(src Source, p []byte) {
	for i := range p {
		p[i] = src.NextByte()
	}
}

// Sample reads the 8 counter value lines into one byte, line i to bit i.
func Sample(bus hal.CounterBus) byte {
	var v byte
	for i := 0; i < 8; i++ {
		if bus.ReadBit(i) {
			v |= 1 << uint(i)
		}
	}
	return v
}

// GateOpen converts a motion magnitude to the gate-open duration:
// (magnitude mod 100) + 10 microseconds. The modulus bounds a single pulse
// while keeping it motion-dependent; the floor guarantees the counter always
// runs at least briefly per tick.
func GateOpen(magnitude int64) time.Duration {
	return time.Duration(magnitude%gateModMicros+gateFloorMicros) * time.Microsecond
}

// Gate drives the counter reset and gate-enable lines and samples the counter
// bus. It is the device-side Source.
type Gate struct {
	Reset  hal.Line
	Enable hal.Line
	Bus    hal.CounterBus
	Sensor hal.MotionSensor
	Clock  hal.Clock
}

// NextByte produces one raw entropy byte. It blocks for the full Window plus
// pulse overhead and always returns a value; there is no failure path.
func (g *Gate) NextByte() byte {
	g.Reset.Set(true)
	g.Clock.Sleep(resetPulse)
	g.Reset.Set(false)

	deadline := g.Clock.Now().Add(Window)
	for g.Clock.Now().Before(deadline) {
		open := GateOpen(g.Sensor.Read().Magnitude())
		g.Enable.Set(true)
		g.Clock.Sleep(open)
		g.Enable.Set(false)
		g.Clock.Sleep(settle)
	}
	return Sample(g.Bus)
}
