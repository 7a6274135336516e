package device

import (
	"fmt"
	"sync"
	"time"

	"github.com/live-labs/kluchnik/internal/display"
	"github.com/live-labs/kluchnik/internal/hal"
)

// DebounceWindow filters button chatter: events closer together than this are
// dropped.
const DebounceWindow = 200 * time.Millisecond

// menuVisibleRows is how many items fit the panel at once.
const menuVisibleRows = 3

var menuItems = []string{
	"Generate password",
	"Set length",
	"Set complexity",
	"About",
}

const (
	itemGenerate = iota
	itemLength
	itemComplexity
	itemAbout
)

type screen int

const (
	screenMain screen = iota
	screenLength
	screenComplexity
	screenAbout
)

// Menu is the device menu controller. Up/Down/Select correspond to the three
// physical buttons and their remote CMD_* equivalents; every event is
// debounced and redraws the panel.
type Menu struct {
	mu       sync.Mutex
	cfg      *Config
	surface  display.Surface
	clock    hal.Clock
	generate func()

	screen   screen
	selector int
	topLine  int
	lastPush time.Time
}

// NewMenu creates the controller. generate is invoked synchronously when the
// Generate item is selected; the menu is unresponsive until it returns, which
// mirrors the blocking firmware pipeline.
func NewMenu(cfg *Config, surface display.Surface, clock hal.Clock, generate func()) *Menu {
	return &Menu{cfg: cfg, surface: surface, clock: clock, generate: generate}
}

func (m *Menu) debounced() bool {
	now := m.clock.Now()
	if now.Sub(m.lastPush) < DebounceWindow {
		return true
	}
	m.lastPush = now
	return false
}

// Up handles the up button.
func (m *Menu) Up() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.debounced() {
		return
	}
	switch m.screen {
	case screenMain:
		m.selector--
		if m.selector < 0 {
			m.selector = len(menuItems) - 1
		}
		if m.selector < m.topLine {
			m.topLine = m.selector
		}
		if m.selector >= m.topLine+menuVisibleRows {
			m.topLine = m.selector - menuVisibleRows + 1
		}
	case screenLength:
		m.cfg.IncLength()
	case screenComplexity:
		m.cfg.PrevPolicy()
	}
	m.render()
}

// Down handles the down button.
func (m *Menu) Down() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.debounced() {
		return
	}
	switch m.screen {
	case screenMain:
		m.selector++
		if m.selector >= len(menuItems) {
			m.selector = 0
		}
		if m.selector >= m.topLine+menuVisibleRows {
			m.topLine = m.selector - menuVisibleRows + 1
		}
		if m.selector < m.topLine {
			m.topLine = m.selector
		}
	case screenLength:
		m.cfg.DecLength()
	case screenComplexity:
		m.cfg.NextPolicy()
	}
	m.render()
}

// Select handles the select button.
func (m *Menu) Select() {
	m.mu.Lock()
	if m.debounced() {
		m.mu.Unlock()
		return
	}
	switch m.screen {
	case screenMain:
		switch m.selector {
		case itemGenerate:
			m.mu.Unlock()
			// Blocking: the whole entropy-gathering phase runs here.
			m.generate()
			m.mu.Lock()
		case itemLength:
			m.screen = screenLength
		case itemComplexity:
			m.screen = screenComplexity
		case itemAbout:
			m.screen = screenAbout
		}
	default:
		// Any setting screen confirms and returns to the main menu.
		m.screen = screenMain
	}
	m.render()
	m.mu.Unlock()
}

// Render draws the current screen. Called once at startup; afterwards every
// button event redraws.
func (m *Menu) Render() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.render()
}

func (m *Menu) render() {
	s := m.surface
	s.Clear()
	switch m.screen {
	case screenMain:
		for i := 0; i < menuVisibleRows; i++ {
			idx := m.topLine + i
			if idx >= len(menuItems) {
				break
			}
			marker := "  "
			if idx == m.selector {
				marker = "> "
			}
			s.WriteLine(i+1, marker+menuItems[idx])
		}
	case screenLength:
		s.WriteLine(0, "Set length (4-32)")
		s.WriteLine(1, "Up/Down=+1/-1 Sel=OK")
		s.WriteLine(3, fmt.Sprintf("      %d", int(m.cfg.Length())))
	case screenComplexity:
		s.WriteLine(0, "Set complexity")
		s.WriteLine(1, "Up/Down=Change Sel=OK")
		s.WriteLine(3, "  "+m.cfg.Policy().String())
	case screenAbout:
		s.WriteLine(0, "Kluchnik TRNG")
		s.WriteLine(1, "AES-128-CBC transport")
		s.WriteLine(2, "Press Select...")
	}
	// A redraw failure leaves the previous frame on screen; the next
	// button event retries.
	_ = s.Flush()
}
