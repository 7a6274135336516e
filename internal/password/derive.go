package password

import "github.com/live-labs/kluchnik/internal/entropy"

// Password length bounds. Length configuration wraps around at both ends.
const (
	MinLength = 4
	MaxLength = 32
)

// Length is the configured password length.
type Length int

// Inc increments with wraparound: past MaxLength it returns MinLength.
func (l Length) Inc() Length {
	if l >= MaxLength {
		return MinLength
	}
	return l + 1
}

// Dec decrements with wraparound: below MinLength it returns MaxLength.
func (l Length) Dec() Length {
	if l <= MinLength {
		return MaxLength
	}
	return l - 1
}

// Valid reports whether l is within [MinLength, MaxLength].
func (l Length) Valid() bool {
	return l >= MinLength && l <= MaxLength
}

// Derive converts entropy seed bytes into a password of exactly length
// characters under the given policy.
//
// Seed bytes are interpreted as ASCII: the first length bytes that already
// belong to the policy's class are kept in their original order, the rest are
// dropped. Every dropped byte costs one fresh draw from src, mapped
// deterministically into the class, appended after the kept characters. With
// length 0 the result is empty and src is never touched.
func Derive(seed []byte, policy Policy, length int, src entropy.Source) string {
	if length <= 0 {
		return ""
	}
	out := make([]byte, 0, length)
	n := length
	if n > len(seed) {
		n = len(seed)
	}
	for _, c := range seed[:n] {
		if policy.Accepts(c) {
			out = append(out, c)
		}
	}
	for len(out) < length {
		out = append(out, policy.padChar(src.NextByte()))
	}
	return string(out)
}
