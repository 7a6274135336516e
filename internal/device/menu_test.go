package device

import (
	"strings"
	"testing"
	"time"

	"github.com/live-labs/kluchnik/internal/password"
)

// stepClock only moves when told to.
type stepClock struct {
	now time.Time
}

func newStepClock() *stepClock {
	return &stepClock{now: time.Unix(1000, 0)}
}

func (c *stepClock) Now() time.Time        { return c.now }
func (c *stepClock) Sleep(d time.Duration) { c.now = c.now.Add(d) }
func (c *stepClock) Step(d time.Duration)  { c.now = c.now.Add(d) }

func newTestMenu(t *testing.T) (*Menu, *Config, *fakeSurface, *stepClock, *int) {
	t.Helper()
	cfg := NewConfig()
	surface := newFakeSurface()
	clock := newStepClock()
	generations := 0
	m := NewMenu(cfg, surface, clock, func() { generations++ })
	return m, cfg, surface, clock, &generations
}

func press(clock *stepClock, f func()) {
	clock.Step(DebounceWindow + time.Millisecond)
	f()
}

func TestMenuDebounce(t *testing.T) {
	m, _, surface, clock, _ := newTestMenu(t)
	press(clock, m.Down)
	m.Down() // same instant, must be dropped
	if !strings.Contains(allLines(surface), "> Set length") {
		t.Errorf("selector should sit on item 1, frame: %q", allLines(surface))
	}
	clock.Step(DebounceWindow / 2)
	m.Down() // still inside the window
	if !strings.Contains(allLines(surface), "> Set length") {
		t.Error("event inside the debounce window moved the selector")
	}
}

func TestMenuSelectorWraparound(t *testing.T) {
	m, _, surface, clock, _ := newTestMenu(t)
	press(clock, m.Up)
	if !strings.Contains(allLines(surface), "> About") {
		t.Errorf("up from the first item should wrap to the last, frame: %q", allLines(surface))
	}
	press(clock, m.Down)
	if !strings.Contains(allLines(surface), "> Generate password") {
		t.Errorf("down from the last item should wrap to the first, frame: %q", allLines(surface))
	}
}

func TestMenuScrollWindow(t *testing.T) {
	m, _, surface, clock, _ := newTestMenu(t)
	for i := 0; i < 3; i++ {
		press(clock, m.Down)
	}
	frame := allLines(surface)
	if !strings.Contains(frame, "> About") {
		t.Fatalf("selector should reach About, frame: %q", frame)
	}
	if strings.Contains(frame, "Generate password") {
		t.Errorf("first item should have scrolled out of the window, frame: %q", frame)
	}
}

func TestMenuGenerateIsBlockingCallback(t *testing.T) {
	m, _, _, clock, generations := newTestMenu(t)
	press(clock, m.Select)
	if *generations != 1 {
		t.Fatalf("generate callback ran %d times, want 1", *generations)
	}
}

func TestMenuLengthScreen(t *testing.T) {
	m, cfg, surface, clock, _ := newTestMenu(t)
	press(clock, m.Down)   // to Set length
	press(clock, m.Select) // enter the screen
	press(clock, m.Up)
	press(clock, m.Up)
	if got := cfg.Length(); got != DefaultLength+2 {
		t.Errorf("length = %d, want %d", got, DefaultLength+2)
	}
	press(clock, m.Down)
	if got := cfg.Length(); got != DefaultLength+1 {
		t.Errorf("length = %d, want %d", got, DefaultLength+1)
	}
	press(clock, m.Select) // confirm, back to main
	if !strings.Contains(allLines(surface), "> Set length") {
		t.Error("select on the length screen should return to the main menu")
	}
}

func TestMenuLengthWrapsAtBounds(t *testing.T) {
	m, cfg, _, clock, _ := newTestMenu(t)
	if err := cfg.SetLength(password.MaxLength); err != nil {
		t.Fatal(err)
	}
	press(clock, m.Down)
	press(clock, m.Select)
	press(clock, m.Up)
	if got := cfg.Length(); got != password.MinLength {
		t.Errorf("increment past %d = %d, want wrap to %d", password.MaxLength, got, password.MinLength)
	}
	press(clock, m.Down)
	if got := cfg.Length(); got != password.MaxLength {
		t.Errorf("decrement below %d = %d, want wrap to %d", password.MinLength, got, password.MaxLength)
	}
}

func TestMenuComplexityScreen(t *testing.T) {
	m, cfg, _, clock, _ := newTestMenu(t)
	press(clock, m.Down)
	press(clock, m.Down)   // to Set complexity
	press(clock, m.Select) // enter
	press(clock, m.Down)
	if got := cfg.Policy(); got != DefaultPolicy.Next() {
		t.Errorf("policy = %v, want %v", got, DefaultPolicy.Next())
	}
	press(clock, m.Down) // LettersNumbers -> AllPrintable -> wraps to Numbers
	if got := cfg.Policy(); got != password.Numbers {
		t.Errorf("policy = %v, want wraparound to %v", got, password.Numbers)
	}
}

func TestConfigSettersValidate(t *testing.T) {
	cfg := NewConfig()
	if err := cfg.SetPolicy(password.Policy(11)); err == nil {
		t.Error("invalid policy accepted")
	}
	if err := cfg.SetLength(2); err == nil {
		t.Error("invalid length accepted")
	}
	if err := cfg.SetPolicy(password.AllPrintable); err != nil {
		t.Errorf("valid policy rejected: %v", err)
	}
	if cfg.Policy() != password.AllPrintable {
		t.Error("SetPolicy did not stick")
	}
}

func allLines(s *fakeSurface) string {
	var b strings.Builder
	for i := 0; i < 8; i++ {
		if line, ok := s.lines[i]; ok {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}
