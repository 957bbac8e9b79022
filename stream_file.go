package csvmonkey

import "io"

// fileSource is the minimal interface NewFromFile needs: any io.Reader
// works, and an io.Seeker is used opportunistically to pre-size the
// cursor's buffer (mirrors the teacher's readAllWithPool sizing hint).
type fileSource interface {
	io.Reader
}

// newFileCursor builds a StreamCursor windowing an io.Reader WINDOW
// bytes at a time, growing the buffer up front when the source's total
// size can be determined cheaply.
func newFileCursor(f fileSource, cfg Config) (*StreamCursor, error) {
	window := cfg.Window
	if window <= 0 {
		window = DefaultWindow
	}
	c := newStreamCursor(sourceFile, window)

	if sizer, ok := f.(interface{ Size() int64 }); ok {
		if n := sizer.Size(); n > int64(window) {
			c.growForWindow(int(n) + c.guard)
		}
	} else if seeker, ok := f.(io.Seeker); ok {
		if end, err := seeker.Seek(0, io.SeekEnd); err == nil {
			if _, err := seeker.Seek(0, io.SeekStart); err == nil && end > int64(window) {
				c.growForWindow(int(end) + c.guard)
			}
		}
	}

	pull := readerPull(f)
	c.refill = func(c *StreamCursor) error {
		return windowedPull(c, pull)
	}
	c.closeFn = func() error {
		if closer, ok := f.(io.Closer); ok {
			return closer.Close()
		}
		return nil
	}

	if err := c.refill(c); err != nil {
		return nil, err
	}
	return c, nil
}
