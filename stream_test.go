package csvmonkey

import (
	"bytes"
	"strings"
	"testing"
)

func TestBytesCursorZeroCopyWhenCapacityAllows(t *testing.T) {
	backing := make([]byte, 4, 4+minGuard+8)
	copy(backing, "abcd")
	c, err := newBytesCursor(backing, DefaultConfig())
	if err != nil {
		t.Fatalf("newBytesCursor: %v", err)
	}
	if &c.buf[0] != &backing[0] {
		t.Errorf("expected zero-copy reuse of backing array's storage")
	}
	if !c.terminal {
		t.Errorf("bytes cursor should be immediately terminal")
	}
}

func TestBytesCursorCopiesWhenNoHeadroom(t *testing.T) {
	data := []byte("abcd")
	c, err := newBytesCursor(data, DefaultConfig())
	if err != nil {
		t.Fatalf("newBytesCursor: %v", err)
	}
	if len(c.buf) < len(data)+minGuard {
		t.Fatalf("copied buffer too small: %d", len(c.buf))
	}
	for _, b := range c.buf[len(data):] {
		if b != 0 {
			t.Fatalf("guard region not zero-filled: %v", c.buf[len(data):])
		}
	}
}

func TestFileCursorWindowsAndCompacts(t *testing.T) {
	input := strings.Repeat("row,of,data\n", 10000)
	cfg := DefaultConfig()
	cfg.Window = DefaultWindow // force a small window relative to input
	c, err := newFileCursor(bytes.NewReader([]byte(input)), cfg)
	if err != nil {
		t.Fatalf("newFileCursor: %v", err)
	}
	defer c.Close()

	total := 0
	for {
		total += c.remaining()
		if c.terminal && c.remaining() == 0 {
			break
		}
		c.advance(c.remaining())
		if err := c.ensureLookahead(); err != nil {
			t.Fatalf("ensureLookahead: %v", err)
		}
		if c.remaining() == 0 && c.terminal {
			break
		}
	}
	if total != len(input) {
		t.Errorf("total bytes observed = %d, want %d", total, len(input))
	}
}

func TestReaderOverFileSource(t *testing.T) {
	input := strings.Repeat("a,b,c\n", 5000)
	r, err := NewFromFile(bytes.NewReader([]byte(input)), DefaultConfig())
	if err != nil {
		t.Fatalf("NewFromFile: %v", err)
	}
	defer r.Close()

	count := 0
	for {
		row, err := r.NextRow()
		if err != nil {
			t.Fatalf("NextRow: %v", err)
		}
		if row == nil {
			break
		}
		if row.Len() != 3 {
			t.Fatalf("row %d has %d cells, want 3", count, row.Len())
		}
		count++
	}
	if count != 5000 {
		t.Errorf("read %d rows, want 5000", count)
	}
}
