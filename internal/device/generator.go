package device

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/live-labs/kluchnik/internal/crypto"
	"github.com/live-labs/kluchnik/internal/display"
	"github.com/live-labs/kluchnik/internal/entropy"
	"github.com/live-labs/kluchnik/internal/password"
	"github.com/live-labs/kluchnik/internal/transport"
)

// Result is the artifact of one generation cycle. Key holds the raw sampled
// entropy bytes the password was derived from; Payload carries its encrypted
// form for the companion.
type Result struct {
	Password string
	Key      []byte
	Payload  transport.Payload
}

// Generator sequences one full generation cycle: entropy acquisition,
// password derivation, transport encryption, display output.
type Generator struct {
	Source  entropy.Source
	Surface display.Surface
	Log     *zap.Logger
}

// Run executes a generation cycle. It blocks for the whole entropy-gathering
// phase: length draws for the key plus one draw per character the filter
// rejects. The entropy key buffer is fully overwritten each cycle before use.
func (g *Generator) Run(policy password.Policy, length password.Length) (Result, error) {
	if !policy.Valid() {
		return Result{}, fmt.Errorf("generate: policy %d out of range", int(policy))
	}
	if !length.Valid() {
		return Result{}, fmt.Errorf("generate: length %d outside [%d,%d]",
			int(length), password.MinLength, password.MaxLength)
	}
	log := g.Log
	if log == nil {
		log = zap.NewNop()
	}

	g.Surface.Clear()
	g.Surface.WriteLine(1, "Shake the device to")
	g.Surface.WriteLine(2, "gather entropy...")
	if err := g.Surface.Flush(); err != nil {
		return Result{}, fmt.Errorf("generate: %w", err)
	}

	key := make([]byte, int(length))
	entropy.Fill(g.Source, key)

	pwd := password.Derive(key, policy, int(length), g.Source)

	ciphertext, err := crypto.PadAndEncrypt(key)
	if err != nil {
		return Result{}, fmt.Errorf("generate: %w", err)
	}

	res := Result{
		Password: pwd,
		Key:      key,
		Payload: transport.Payload{
			Length:     int(length),
			Complexity: int(policy),
			Ciphertext: ciphertext,
		},
	}

	log.Info("password generated",
		zap.Int("length", int(length)),
		zap.Stringer("policy", policy))

	g.Surface.Clear()
	g.Surface.WriteLine(0, "Password ready:")
	g.Surface.WriteLine(1, pwd)
	if len(pwd) > display.TextCols {
		g.Surface.WriteLine(2, pwd[display.TextCols:])
	}
	if err := g.Surface.Flush(); err != nil {
		return Result{}, fmt.Errorf("generate: %w", err)
	}
	if err := g.Surface.ShowQR(pwd); err != nil {
		// A QR encoder failure leaves the password readable as text.
		log.Warn("qr render failed", zap.Error(err))
	}
	return res, nil
}
