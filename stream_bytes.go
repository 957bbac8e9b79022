package csvmonkey

// newBytesCursor builds a StreamCursor over data already resident in
// memory. When data's spare capacity is large enough to host the guard
// region, the cursor reuses data's backing array directly (true zero
// copy); otherwise it copies once into an owned buffer sized for the
// guard. Either way the cursor is immediately terminal: there is
// nothing left to refill.
func newBytesCursor(data []byte, cfg Config) (*StreamCursor, error) {
	guard := minGuard
	window := cfg.Window
	if window <= 0 {
		window = DefaultWindow
	}

	c := &StreamCursor{
		kind:   sourceBytes,
		window: window,
		guard:  guard,
	}

	if cap(data)-len(data) >= guard {
		c.buf = data[:len(data)+guard]
		for i := len(data); i < len(data)+guard; i++ {
			c.buf[i] = 0
		}
	} else {
		buf := make([]byte, len(data)+guard)
		copy(buf, data)
		c.buf = buf
	}
	c.end = len(data)
	c.terminal = true
	return c, nil
}

// newIterCursor builds a StreamCursor pulling chunks from a
// caller-supplied iterator function, matching the original from_iter
// entry point. next is called again each time the window needs topping
// up.
func newIterCursor(next func() (chunk []byte, eof bool, err error), cfg Config) (*StreamCursor, error) {
	window := cfg.Window
	if window <= 0 {
		window = DefaultWindow
	}
	c := newStreamCursor(sourceIter, window)

	var pending []byte
	pull := func(dst []byte) (int, bool, error) {
		if len(pending) == 0 {
			chunk, eof, err := next()
			if err != nil {
				return 0, false, err
			}
			if eof {
				return 0, true, nil
			}
			pending = chunk
		}
		n := copy(dst, pending)
		pending = pending[n:]
		return n, false, nil
	}

	c.refill = func(c *StreamCursor) error {
		return windowedPull(c, pull)
	}

	if err := c.refill(c); err != nil {
		return nil, err
	}
	return c, nil
}
