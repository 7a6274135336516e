package entropy

import (
	"testing"
	"time"

	"github.com/live-labs/kluchnik/internal/hal"
)

// fakeClock advances only when something sleeps.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time        { return c.now }
func (c *fakeClock) Sleep(d time.Duration) { c.now = c.now.Add(d) }

// recordLine captures every level transition.
type recordLine struct {
	levels []bool
}

func (l *recordLine) Set(high bool) { l.levels = append(l.levels, high) }

// fixedBus returns a constant counter value.
type fixedBus byte

func (b fixedBus) ReadBit(i int) bool { return byte(b)&(1<<uint(i)) != 0 }

// scriptedSensor cycles through a fixed magnitude script, all on one axis.
type scriptedSensor struct {
	script []int16
	pos    int
}

func (s *scriptedSensor) Probe() error { return nil }

func (s *scriptedSensor) Read() hal.Motion {
	v := s.script[s.pos%len(s.script)]
	s.pos++
	return hal.Motion{AX: v}
}

func TestGateOpenFormula(t *testing.T) {
	cases := []struct {
		magnitude int64
		want      time.Duration
	}{
		{0, 10 * time.Microsecond},
		{1, 11 * time.Microsecond},
		{99, 109 * time.Microsecond},
		{100, 10 * time.Microsecond},
		{12345, 55 * time.Microsecond},
	}
	for _, c := range cases {
		if got := GateOpen(c.magnitude); got != c.want {
			t.Errorf("GateOpen(%d) = %v, want %v", c.magnitude, got, c.want)
		}
	}
}

func TestSampleBitMapping(t *testing.T) {
	if got := Sample(fixedBus(0x81)); got != 0x81 {
		t.Errorf("Sample = %#x, want 0x81", got)
	}
	if got := Sample(fixedBus(0x00)); got != 0 {
		t.Errorf("Sample of all-low bus = %#x, want 0", got)
	}
	if got := Sample(fixedBus(0xFF)); got != 0xFF {
		t.Errorf("Sample of all-high bus = %#x, want 0xFF", got)
	}
}

func TestGateNextByte(t *testing.T) {
	clock := &fakeClock{}
	reset := &recordLine{}
	enable := &recordLine{}
	g := &Gate{
		Reset:  reset,
		Enable: enable,
		Bus:    fixedBus(0xB2),
		Sensor: &scriptedSensor{script: []int16{50, 120, 7}},
		Clock:  clock,
	}

	start := clock.Now()
	got := g.NextByte()

	if got != 0xB2 {
		t.Errorf("NextByte = %#x, want 0xB2", got)
	}
	if len(reset.levels) != 2 || !reset.levels[0] || reset.levels[1] {
		t.Errorf("reset strobe transitions = %v, want [true false]", reset.levels)
	}
	if len(enable.levels) < 2 || len(enable.levels)%2 != 0 {
		t.Errorf("gate enable transitions = %d, want an even count >= 2", len(enable.levels))
	}
	if elapsed := clock.Now().Sub(start); elapsed < Window {
		t.Errorf("gate returned after %v, want at least %v", elapsed, Window)
	}
}

func TestGateAcceptsZeroSample(t *testing.T) {
	g := &Gate{
		Reset:  &recordLine{},
		Enable: &recordLine{},
		Bus:    fixedBus(0x00),
		Sensor: &scriptedSensor{script: []int16{1}},
		Clock:  &fakeClock{},
	}
	if got := g.NextByte(); got != 0 {
		t.Errorf("NextByte = %#x, want 0 (all-zero sample is valid output)", got)
	}
}

func TestFillOverwritesEveryByte(t *testing.T) {
	src := &seqSource{}
	buf := make([]byte, 8)
	Fill(src, buf)
	for i, b := range buf {
		if b != byte(i+1) {
			t.Fatalf("buf[%d] = %d, want %d", i, b, i+1)
		}
	}
}

type seqSource struct{ n byte }

func (s *seqSource) NextByte() byte {
	s.n++
	return s.n
}
