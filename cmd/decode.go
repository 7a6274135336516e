package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/live-labs/kluchnik/internal/companion"
	"github.com/live-labs/kluchnik/internal/display"
	"github.com/live-labs/kluchnik/internal/transport"
)

// DecodeOptions configures offline payload decoding.
type DecodeOptions struct {
	Payload string // payload line; empty reads one line from stdin
	QR      bool   // render the derived password as a QR symbol
}

// Decode derives a password from a captured payload line without touching
// the device or the vault.
func Decode(opts DecodeOptions) {
	line := opts.Payload
	if line == "" {
		scanner := bufio.NewScanner(os.Stdin)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				HandleError(fmt.Errorf("read stdin: %w", err))
			}
			HandleError(fmt.Errorf("no payload on stdin"))
		}
		line = scanner.Text()
	}

	payload, err := transport.ParsePayload(line)
	if err != nil {
		HandleError(err)
	}

	derived, err := companion.DerivePassword(payload, nil)
	if err != nil {
		HandleError(err)
	}
	fmt.Printf("password: %s\n", derived)

	if opts.QR {
		if err := display.RenderQR(os.Stdout, derived); err != nil {
			HandleError(err)
		}
	}
}
