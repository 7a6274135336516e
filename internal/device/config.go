package device

import (
	"fmt"
	"sync"

	"github.com/live-labs/kluchnik/internal/password"
)

// Defaults of a fresh session. Settings live in memory only; they are not
// written to non-volatile storage.
const (
	DefaultLength = password.Length(16)
	DefaultPolicy = password.LettersNumbers
)

// Config is the device session configuration. It is created at startup and
// mutated only through its setters; remote commands arrive on the transport
// goroutine, hence the lock.
type Config struct {
	mu     sync.Mutex
	policy password.Policy
	length password.Length
}

// NewConfig creates a Config with the session defaults.
func NewConfig() *Config {
	return &Config{policy: DefaultPolicy, length: DefaultLength}
}

func (c *Config) Policy() password.Policy {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.policy
}

func (c *Config) Length() password.Length {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.length
}

// SetPolicy replaces the complexity policy.
func (c *Config) SetPolicy(p password.Policy) error {
	if !p.Valid() {
		return fmt.Errorf("config: policy %d out of range", int(p))
	}
	c.mu.Lock()
	c.policy = p
	c.mu.Unlock()
	return nil
}

// SetLength replaces the password length.
func (c *Config) SetLength(l password.Length) error {
	if !l.Valid() {
		return fmt.Errorf("config: length %d outside [%d,%d]", int(l), password.MinLength, password.MaxLength)
	}
	c.mu.Lock()
	c.length = l
	c.mu.Unlock()
	return nil
}

// IncLength and DecLength step the length with wraparound at both bounds.
func (c *Config) IncLength() {
	c.mu.Lock()
	c.length = c.length.Inc()
	c.mu.Unlock()
}

func (c *Config) DecLength() {
	c.mu.Lock()
	c.length = c.length.Dec()
	c.mu.Unlock()
}

// NextPolicy and PrevPolicy cycle the policy with wraparound.
func (c *Config) NextPolicy() {
	c.mu.Lock()
	c.policy = c.policy.Next()
	c.mu.Unlock()
}

func (c *Config) PrevPolicy() {
	c.mu.Lock()
	c.policy = c.policy.Prev()
	c.mu.Unlock()
}
