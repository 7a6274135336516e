package hal

import "time"

// Line is a single digital output line.
type Line interface {
	// Set drives the line high (true) or low (false).
	Set(high bool)
}

// CounterBus exposes the 8 parallel value lines of the hardware counter.
// Line i carries bit i of the counter value.
type CounterBus interface {
	// ReadBit returns the state of counter output line i, 0 <= i < 8.
	// Floating or undriven lines read as an arbitrary level; that is an
	// accepted noise source, not a fault.
	ReadBit(i int) bool
}

// Motion is one 6-axis sample: three linear and three angular readings.
type Motion struct {
	AX, AY, AZ int16
	GX, GY, GZ int16
}

// Magnitude is the sum of absolute values of all six axes.
func (m Motion) Magnitude() int64 {
	abs := func(v int16) int64 {
		w := int64(v)
		if w < 0 {
			return -w
		}
		return w
	}
	return abs(m.AX) + abs(m.AY) + abs(m.AZ) + abs(m.GX) + abs(m.GY) + abs(m.GZ)
}

// MotionSensor reports live 6-axis motion samples. Probe is called once at
// startup; a probe failure is fatal for the device. Read never fails after a
// successful probe.
type MotionSensor interface {
	Probe() error
	Read() Motion
}

// Clock provides monotonic time and sleeping. The entropy gate depends on it
// for its deadline and pulse timing; tests substitute a scripted clock.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock is the wall Clock used on a running device.
type SystemClock struct{}

func (SystemClock) Now() time.Time        { return time.Now() }
func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }
