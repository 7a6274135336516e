package entropy

import (
	"fmt"
	"io"
)

// Pool is a Source backed by a buffer of pre-drawn bytes, refilled from an
// io.Reader whenever it drains. The companion application uses a crypto/rand
// backed Pool where the device uses the hardware Gate.
type Pool struct {
	r   io.Reader
	buf []byte
	pos int
}

// NewPool creates a Pool of the given capacity. The buffer is filled lazily
// on the first draw.
func NewPool(r io.Reader, capacity int) *Pool {
	if capacity <= 0 {
		capacity = 1
	}
	return &Pool{r: r, buf: make([]byte, capacity), pos: capacity}
}

// NextByte returns the next pooled byte, refilling from the underlying reader
// when the pool is exhausted. A refill failure panics: the only readers used
// in practice are crypto/rand and test stubs, for which a short read is a
// programming error rather than a recoverable condition.
func (p *Pool) NextByte() byte {
	if p.pos == len(p.buf) {
		if _, err := io.ReadFull(p.r, p.buf); err != nil {
			panic(fmt.Sprintf("entropy: pool refill failed: %v", err))
		}
		p.pos = 0
	}
	b := p.buf[p.pos]
	p.pos++
	return b
}
