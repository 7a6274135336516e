package cmd

import (
	"crypto/rand"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/live-labs/kluchnik/internal/device"
	"github.com/live-labs/kluchnik/internal/display"
	"github.com/live-labs/kluchnik/internal/entropy"
	"github.com/live-labs/kluchnik/internal/hal"
	"github.com/live-labs/kluchnik/internal/password"
)

// GenerateOptions configures a one-shot local generation.
type GenerateOptions struct {
	Length     int
	Complexity string
	Quick      bool // draw from crypto/rand instead of the simulated gate
	Seed       int64
}

// Generate runs one generation cycle locally and prints the password, the
// QR symbol and the transport payload line.
func Generate(opts GenerateOptions) {
	policy, err := password.ParsePolicy(opts.Complexity)
	if err != nil {
		HandleError(err)
	}

	var src entropy.Source
	if opts.Quick {
		src = entropy.NewPool(rand.Reader, 4*password.MaxLength)
	} else {
		seed := opts.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		clock := hal.SystemClock{}
		board := hal.NewSimBoard(seed, clock)
		src = &entropy.Gate{
			Reset:  board.ResetLine(),
			Enable: board.GateLine(),
			Bus:    board.Counter(),
			Sensor: board.Motion(),
			Clock:  clock,
		}
		fmt.Fprintf(os.Stderr, "gathering entropy, ~%s...\n",
			time.Duration(opts.Length)*entropy.Window)
	}

	gen := &device.Generator{
		Source:  src,
		Surface: display.NewTerminal(os.Stdout),
		Log:     zap.NewNop(),
	}
	res, err := gen.Run(policy, password.Length(opts.Length))
	if err != nil {
		HandleError(err)
	}

	fmt.Printf("password: %s\n", res.Password)
	fmt.Printf("payload:  %s", res.Payload.Encode())
}
