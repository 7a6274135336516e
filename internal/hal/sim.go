package hal

import (
	"math/rand"
	"sync"
	"time"
)

// Sim tick rate approximates a 4 MHz ripple counter.
const simTicksPerMicro = 4

// SimBoard emulates the Kluchnik counter and motion sensor in software. The
// counter free-runs only while the gate line is asserted: on deassert the
// elapsed gate-open time is converted to counter increments plus a small
// jitter term, which reproduces the accumulate-while-gated behavior of the
// real board closely enough for the host simulator and tests.
type SimBoard struct {
	mu      sync.Mutex
	rng     *rand.Rand
	clock   Clock
	counter uint8
	gateAt  time.Time
	gateOn  bool
	motion  Motion
}

// NewSimBoard creates a simulated board. The seed fixes the jitter and motion
// noise streams so tests can be reproducible.
func NewSimBoard(seed int64, clock Clock) *SimBoard {
	return &SimBoard{
		rng:   rand.New(rand.NewSource(seed)),
		clock: clock,
		motion: Motion{
			AX: 512, AY: -310, AZ: 16200,
			GX: 40, GY: -25, GZ: 12,
		},
	}
}

// ResetLine returns the counter reset strobe. Asserting it zeroes the counter.
func (b *SimBoard) ResetLine() Line { return simResetLine{b} }

// GateLine returns the gate enable line.
func (b *SimBoard) GateLine() Line { return simGateLine{b} }

// Counter returns the 8-line counter value bus.
func (b *SimBoard) Counter() CounterBus { return simCounterBus{b} }

// Motion returns the simulated 6-axis sensor.
func (b *SimBoard) Motion() MotionSensor { return simMotion{b} }

type simResetLine struct{ b *SimBoard }

func (l simResetLine) Set(high bool) {
	if !high {
		return
	}
	l.b.mu.Lock()
	l.b.counter = 0
	l.b.mu.Unlock()
}

type simGateLine struct{ b *SimBoard }

func (l simGateLine) Set(high bool) {
	b := l.b
	b.mu.Lock()
	defer b.mu.Unlock()
	if high {
		b.gateOn = true
		b.gateAt = b.clock.Now()
		return
	}
	if !b.gateOn {
		return
	}
	b.gateOn = false
	micros := b.clock.Now().Sub(b.gateAt).Microseconds()
	ticks := micros*simTicksPerMicro + int64(b.rng.Intn(7))
	b.counter += uint8(ticks)
}

type simCounterBus struct{ b *SimBoard }

func (c simCounterBus) ReadBit(i int) bool {
	c.b.mu.Lock()
	defer c.b.mu.Unlock()
	return c.b.counter&(1<<uint(i)) != 0
}

type simMotion struct{ b *SimBoard }

func (m simMotion) Probe() error { return nil }

// Read walks each axis by a small random step, mimicking a device held in a
// moving hand.
func (m simMotion) Read() Motion {
	b := m.b
	b.mu.Lock()
	defer b.mu.Unlock()
	step := func(v int16) int16 {
		return v + int16(b.rng.Intn(201)-100)
	}
	b.motion = Motion{
		AX: step(b.motion.AX), AY: step(b.motion.AY), AZ: step(b.motion.AZ),
		GX: step(b.motion.GX), GY: step(b.motion.GY), GZ: step(b.motion.GZ),
	}
	return b.motion
}
