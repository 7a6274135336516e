package transport

import (
	"bytes"
	"errors"
	"testing"
)

func TestPayloadEncode(t *testing.T) {
	p := Payload{Length: 16, Complexity: 2, Ciphertext: []byte{0xde, 0xad, 0x0b, 0xee}}
	if got, want := p.Encode(), "LEN:16,COMPLEX:2,KEY:DEAD0BEE\n"; got != want {
		t.Errorf("Encode = %q, want %q", got, want)
	}
}

func TestParsePayloadRoundTrip(t *testing.T) {
	in := Payload{Length: 32, Complexity: 3, Ciphertext: bytes.Repeat([]byte{0x10}, 32)}
	got, err := ParsePayload(in.Encode())
	if err != nil {
		t.Fatalf("ParsePayload: %v", err)
	}
	if got.Length != in.Length || got.Complexity != in.Complexity || !bytes.Equal(got.Ciphertext, in.Ciphertext) {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestParsePayloadToleratesCRLF(t *testing.T) {
	got, err := ParsePayload("LEN:4,COMPLEX:0,KEY:AB\r\n")
	if err != nil {
		t.Fatalf("ParsePayload: %v", err)
	}
	if got.Length != 4 || got.Complexity != 0 || !bytes.Equal(got.Ciphertext, []byte{0xab}) {
		t.Errorf("parsed = %+v", got)
	}
}

func TestParsePayloadRejects(t *testing.T) {
	lines := []string{
		"",
		"LEN:4,COMPLEX:0",
		"LENGTH:4,COMPLEX:0,KEY:AB",
		"LEN:x,COMPLEX:0,KEY:AB",
		"LEN:4,COMPLEXITY:0,KEY:AB",
		"LEN:4,COMPLEX:zero,KEY:AB",
		"LEN:4,COMPLEX:0,CT:AB",
		"LEN:4,COMPLEX:0,KEY:XYZ",
	}
	for _, line := range lines {
		if _, err := ParsePayload(line); !errors.Is(err, ErrMalformedPayload) {
			t.Errorf("ParsePayload(%q) err = %v, want ErrMalformedPayload", line, err)
		}
	}
}
