//go:build linux

package csvmonkey

import (
	"os"

	"golang.org/x/sys/unix"
)

// newMmapCursor memory-maps path and wraps it as a terminal, already-full
// StreamCursor: mmap hands back the whole file's contents at once, so
// there is nothing left to refill (grounded on SnellerInc-sneller's
// ion/blockfmt mmap_linux.go).
//
// The guard region needs 16 real, dereferenceable bytes past EOF. When
// the file's length isn't a multiple of the page size, the kernel
// already zero-fills the rest of that last page for us, so csvmonkey
// maps up to that page boundary and, when that slack is at least 16
// bytes, reads the guard straight out of the mapping — the same "read
// past logical EOF into kernel-zeroed page slack" property
// SnellerInc-sneller's GuardMemory helper depends on, just without
// needing its extra mprotect'd page. When the slack is shorter than 16
// bytes (including a page-aligned length), the contents are copied once
// into an owned buffer with an explicit guard appended, matching the
// copy fallback newBytesCursor uses for undersized input. The empty
// file gets a guard-only buffer without being mapped.
func newMmapCursor(path string, cfg Config) (*StreamCursor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IoError{Err: err}
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, &IoError{Err: err}
	}
	size := int(fi.Size())

	window := cfg.Window
	if window <= 0 {
		window = DefaultWindow
	}
	if window < size {
		window = size
	}

	if size == 0 {
		f.Close()
		return &StreamCursor{
			kind:     sourceMmap,
			buf:      make([]byte, minGuard),
			end:      0,
			window:   window,
			guard:    minGuard,
			terminal: true,
		}, nil
	}

	pageSize := os.Getpagesize()
	mapLen := size
	if size%pageSize != 0 {
		mapLen = roundUpToPage(size, pageSize)
	}

	mem, err := unix.Mmap(int(f.Fd()), 0, mapLen, unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		f.Close()
		return nil, &IoError{Err: err}
	}

	if mapLen-size >= minGuard {
		closed := false
		return &StreamCursor{
			kind:     sourceMmap,
			buf:      mem,
			end:      size,
			window:   window,
			guard:    minGuard,
			terminal: true,
			closeFn: func() error {
				if closed {
					return nil
				}
				closed = true
				err1 := unix.Munmap(mem)
				err2 := f.Close()
				if err1 != nil {
					return &IoError{Err: err1}
				}
				if err2 != nil {
					return &IoError{Err: err2}
				}
				return nil
			},
		}, nil
	}

	owned := make([]byte, size+minGuard)
	copy(owned, mem[:size])
	unix.Munmap(mem)
	closed := false
	return &StreamCursor{
		kind:     sourceMmap,
		buf:      owned,
		end:      size,
		window:   window,
		guard:    minGuard,
		terminal: true,
		closeFn: func() error {
			if closed {
				return nil
			}
			closed = true
			return f.Close()
		},
	}, nil
}

func roundUpToPage(n, pageSize int) int {
	if n%pageSize == 0 {
		return n
	}
	return (n/pageSize + 1) * pageSize
}
