package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/live-labs/kluchnik/internal/device"
	"github.com/live-labs/kluchnik/internal/display"
	"github.com/live-labs/kluchnik/internal/entropy"
	"github.com/live-labs/kluchnik/internal/hal"
	"github.com/live-labs/kluchnik/internal/transport"
)

// DeviceOptions configures the simulated device.
type DeviceOptions struct {
	Listen string // TCP listen address for companion connections
	Seed   int64  // simulation seed; 0 derives one from the clock
	SSID   string
	APPass string
}

// Device runs the simulated Kluchnik device: menu on the terminal, transport
// server for companions. Keys: up/down arrows (or k/j) move, enter selects,
// q quits.
func Device(ctx context.Context, opts DeviceOptions) {
	logger, err := zap.NewDevelopment()
	if err != nil {
		HandleError(err)
	}
	defer logger.Sync()

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	clock := hal.SystemClock{}
	board := hal.NewSimBoard(seed, clock)
	surface := display.NewTerminal(os.Stdout)

	// Startup peripheral check. Per the firmware error policy a failure
	// here is fatal: render the diagnostic and halt.
	if err := device.SelfTest(board.Motion(), surface); err != nil {
		fmt.Fprintf(os.Stderr, "peripheral self-test failed: %s\n", err)
		os.Exit(1)
	}

	gate := &entropy.Gate{
		Reset:  board.ResetLine(),
		Enable: board.GateLine(),
		Bus:    board.Counter(),
		Sensor: board.Motion(),
		Clock:  clock,
	}
	dev := device.New(gate, surface, logger)

	ap := transport.DefaultAPConfig()
	if opts.SSID != "" {
		ap.SSID = opts.SSID
	}
	if opts.APPass != "" {
		ap.Password = opts.APPass
	}
	if err := transport.StartAccessPoint(ap, logger); err != nil {
		logger.Warn("access point unavailable", zap.Error(err))
	}

	srv := transport.NewServer(dev, logger)
	if err := srv.Listen(opts.Listen); err != nil {
		HandleError(err)
	}
	defer srv.Close()
	go func() {
		if err := srv.Serve(); err != nil {
			logger.Error("transport server stopped", zap.Error(err))
		}
	}()

	dev.Menu.Render()
	runButtonLoop(ctx, dev)
}

// runButtonLoop maps terminal keys onto the three device buttons until the
// context ends or q is pressed.
func runButtonLoop(ctx context.Context, dev *device.Device) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		HandleError(fmt.Errorf("raw terminal: %w", err))
	}
	defer term.Restore(fd, oldState)

	keys := make(chan byte)
	go func() {
		buf := make([]byte, 1)
		for {
			if _, err := os.Stdin.Read(buf); err != nil {
				close(keys)
				return
			}
			keys <- buf[0]
		}
	}()

	var esc []byte
	for {
		select {
		case <-ctx.Done():
			return
		case k, ok := <-keys:
			if !ok {
				return
			}
			// Arrow keys arrive as ESC [ A / ESC [ B.
			if len(esc) > 0 || k == 0x1b {
				esc = append(esc, k)
				if len(esc) < 3 {
					continue
				}
				switch esc[2] {
				case 'A':
					dev.Up()
				case 'B':
					dev.Down()
				}
				esc = nil
				continue
			}
			switch k {
			case 'k', 'w':
				dev.Up()
			case 'j', 's':
				dev.Down()
			case '\r', '\n', ' ':
				dev.Select()
			case 'q', 0x03: // q or Ctrl-C
				return
			}
		}
	}
}
