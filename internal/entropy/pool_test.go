package entropy

import (
	"bytes"
	"testing"
)

// repeatReader serves an endless repetition of its pattern.
type repeatReader struct {
	pattern []byte
	pos     int
}

func (r *repeatReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = r.pattern[r.pos%len(r.pattern)]
		r.pos++
	}
	return len(p), nil
}

func TestPoolDrawsInOrder(t *testing.T) {
	p := NewPool(&repeatReader{pattern: []byte{1, 2, 3, 4}}, 4)
	got := make([]byte, 6)
	Fill(p, got)
	want := []byte{1, 2, 3, 4, 1, 2}
	if !bytes.Equal(got, want) {
		t.Errorf("pool draws = %v, want %v", got, want)
	}
}

func TestPoolRefills(t *testing.T) {
	r := &repeatReader{pattern: []byte{0xAB}}
	p := NewPool(r, 3)
	for i := 0; i < 10; i++ {
		if b := p.NextByte(); b != 0xAB {
			t.Fatalf("draw %d = %#x, want 0xAB", i, b)
		}
	}
	if r.pos != 12 {
		t.Errorf("reader supplied %d bytes, want 12 (4 refills of capacity 3)", r.pos)
	}
}
