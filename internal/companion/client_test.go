package companion

import (
	"strings"
	"testing"

	"github.com/live-labs/kluchnik/internal/crypto"
	"github.com/live-labs/kluchnik/internal/password"
	"github.com/live-labs/kluchnik/internal/transport"
)

type scriptSource struct {
	bytes []byte
	pos   int
}

func (s *scriptSource) NextByte() byte {
	b := s.bytes[s.pos%len(s.bytes)]
	s.pos++
	return b
}

func payloadFor(t *testing.T, key []byte, policy password.Policy) transport.Payload {
	t.Helper()
	ct, err := crypto.PadAndEncrypt(key)
	if err != nil {
		t.Fatalf("encrypt key: %v", err)
	}
	return transport.Payload{Length: len(key), Complexity: int(policy), Ciphertext: ct}
}

func TestDerivePasswordMatchesDevicePrefix(t *testing.T) {
	// The seed "a1B2c3D4" keeps "1234" under the numbers policy on both
	// sides; only the padded tail depends on the local entropy source.
	p := payloadFor(t, []byte("a1B2c3D4"), password.Numbers)

	got, err := DerivePassword(p, &scriptSource{bytes: []byte{0, 1, 2, 3}})
	if err != nil {
		t.Fatalf("DerivePassword: %v", err)
	}
	if got != "12340123" {
		t.Errorf("derived = %q, want %q", got, "12340123")
	}
}

func TestDerivePasswordDefaultPool(t *testing.T) {
	p := payloadFor(t, []byte("!!!!abcd"), password.NumbersLower)

	got, err := DerivePassword(p, nil)
	if err != nil {
		t.Fatalf("DerivePassword: %v", err)
	}
	if len(got) != 8 {
		t.Fatalf("derived length = %d, want 8", len(got))
	}
	// The four '!' rejects are padded from the local pool; the filtered
	// survivors "abcd" keep their order at the front.
	if !strings.HasPrefix(got, "abcd") {
		t.Errorf("filtered prefix = %q, want %q", got[:4], "abcd")
	}
	for i := 0; i < len(got); i++ {
		if !password.NumbersLower.Accepts(got[i]) {
			t.Errorf("character %q outside policy class", got[i])
		}
	}
}

func TestDerivePasswordRejectsBadPayloads(t *testing.T) {
	good := payloadFor(t, []byte("12345678"), password.Numbers)

	bad := good
	bad.Complexity = 9
	if _, err := DerivePassword(bad, nil); err == nil {
		t.Error("unknown policy accepted")
	}

	bad = good
	bad.Length = 99
	if _, err := DerivePassword(bad, nil); err == nil {
		t.Error("out-of-range length accepted")
	}

	bad = good
	bad.Length = 16 // declared length disagrees with the 8-byte key
	if _, err := DerivePassword(bad, nil); err == nil {
		t.Error("length/key mismatch accepted")
	}

	bad = good
	bad.Ciphertext = bad.Ciphertext[:8]
	if _, err := DerivePassword(bad, nil); err == nil {
		t.Error("truncated ciphertext accepted")
	}
}
