package password

import "fmt"

// Policy selects the character classes a generated password may contain. The
// integer values are wire values: the device transmits them in the COMPLEX
// payload field and the companion application interprets them identically.
type Policy int

const (
	// Numbers keeps ASCII digits only.
	Numbers Policy = iota
	// NumbersLower keeps digits and lowercase letters.
	NumbersLower
	// LettersNumbers keeps digits, lowercase and uppercase letters.
	LettersNumbers
	// AllPrintable keeps every printable ASCII character, 33..126.
	AllPrintable
)

// Policies lists all policies in menu order.
func Policies() []Policy {
	return []Policy{Numbers, NumbersLower, LettersNumbers, AllPrintable}
}

func (p Policy) String() string {
	switch p {
	case Numbers:
		return "numbers"
	case NumbersLower:
		return "numbers+lower"
	case LettersNumbers:
		return "letters+numbers"
	case AllPrintable:
		return "printable"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy resolves a policy name as printed by String.
func ParsePolicy(s string) (Policy, error) {
	for _, p := range Policies() {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown complexity policy %q", s)
}

// Valid reports whether p is one of the four defined policies.
func (p Policy) Valid() bool {
	return p >= Numbers && p <= AllPrintable
}

// Next and Prev cycle through the policies with wraparound, for the menu.
func (p Policy) Next() Policy {
	if p >= AllPrintable {
		return Numbers
	}
	return p + 1
}

func (p Policy) Prev() Policy {
	if p <= Numbers {
		return AllPrintable
	}
	return p - 1
}

// Accepts reports whether c belongs to p's character class.
func (p Policy) Accepts(c byte) bool {
	digit := c >= '0' && c <= '9'
	lower := c >= 'a' && c <= 'z'
	upper := c >= 'A' && c <= 'Z'
	switch p {
	case Numbers:
		return digit
	case NumbersLower:
		return digit || lower
	case LettersNumbers:
		return digit || lower || upper
	case AllPrintable:
		return c >= 33 && c <= 126
	}
	panic(fmt.Sprintf("password: undefined policy %d", int(p)))
}

// symbols is the padding alphabet of the printable tier. Shared with the
// companion application; do not reorder.
const symbols = "!@#$%^&*()_+-=[]{}|;:,.<>?"

// padChar maps one raw entropy byte into p's class. Each tier has a single
// fixed mapping, kept exactly as the companion application expects.
func (p Policy) padChar(b byte) byte {
	switch p {
	case Numbers:
		return '0' + b%10
	case NumbersLower:
		return 'a' + b%26
	case LettersNumbers:
		// Uppercase only. The filter for this tier accepts digits and
		// lowercase as well; the asymmetry is deliberate and part of
		// the companion contract.
		return 'A' + b%26
	case AllPrintable:
		return symbols[int(b)%len(symbols)]
	}
	panic(fmt.Sprintf("password: undefined policy %d", int(p)))
}
