package transport

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrMalformedPayload = errors.New("malformed payload")

// Payload is one generation result: the configured password length and
// complexity policy wire value, plus the transport-encrypted entropy key.
type Payload struct {
	Length     int
	Complexity int
	Ciphertext []byte
}

// HexUpper renders bytes in the uppercase hex form used on the wire and in
// the companion's history listing.
func HexUpper(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}

// Encode renders the wire line, including the trailing newline.
func (p Payload) Encode() string {
	return fmt.Sprintf("LEN:%d,COMPLEX:%d,KEY:%s\n",
		p.Length, p.Complexity, HexUpper(p.Ciphertext))
}

// ParsePayload parses a wire line. A trailing newline or carriage return is
// tolerated.
func ParsePayload(line string) (Payload, error) {
	line = strings.TrimRight(line, "\r\n")
	parts := strings.SplitN(line, ",", 3)
	if len(parts) != 3 {
		return Payload{}, fmt.Errorf("%w: expected 3 fields, got %d", ErrMalformedPayload, len(parts))
	}

	lenField, ok := strings.CutPrefix(parts[0], "LEN:")
	if !ok {
		return Payload{}, fmt.Errorf("%w: missing LEN field", ErrMalformedPayload)
	}
	length, err := strconv.Atoi(lenField)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: bad LEN value %q", ErrMalformedPayload, lenField)
	}

	cxField, ok := strings.CutPrefix(parts[1], "COMPLEX:")
	if !ok {
		return Payload{}, fmt.Errorf("%w: missing COMPLEX field", ErrMalformedPayload)
	}
	complexity, err := strconv.Atoi(cxField)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: bad COMPLEX value %q", ErrMalformedPayload, cxField)
	}

	keyField, ok := strings.CutPrefix(parts[2], "KEY:")
	if !ok {
		return Payload{}, fmt.Errorf("%w: missing KEY field", ErrMalformedPayload)
	}
	ciphertext, err := hex.DecodeString(strings.ToLower(keyField))
	if err != nil {
		return Payload{}, fmt.Errorf("%w: bad KEY hex: %v", ErrMalformedPayload, err)
	}

	return Payload{Length: length, Complexity: complexity, Ciphertext: ciphertext}, nil
}
