package csvmonkey

// Reader is the façade spec.md §4.E describes: it drives a tokenizer
// over a StreamCursor and hands back a single reused *Row per call to
// NextRow. A Reader is not safe for concurrent use.
type Reader struct {
	cfg Config
	cur *StreamCursor
	tok *tokenizer
	hdr *header
	row Row

	started bool
	fatal   error
}

func newReader(cur *StreamCursor, cfg Config) *Reader {
	return &Reader{cfg: cfg, cur: cur, tok: newTokenizer(cfg)}
}

// NewFromBytes builds a Reader over an in-memory buffer. data is not
// copied when it has enough spare capacity to host the guard region;
// otherwise it is copied once into an owned buffer.
func NewFromBytes(data []byte, cfg Config) (*Reader, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return nil, err
	}
	cur, err := newBytesCursor(data, cfg)
	if err != nil {
		return nil, err
	}
	return newReader(cur, cfg), nil
}

// NewFromFile builds a Reader over an already-open file (or any
// io.ReadSeeker-ish input), windowing it WINDOW bytes at a time.
func NewFromFile(f fileSource, cfg Config) (*Reader, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return nil, err
	}
	cur, err := newFileCursor(f, cfg)
	if err != nil {
		return nil, err
	}
	return newReader(cur, cfg), nil
}

// NewFromIter builds a Reader over a pull-iterator source: next is
// called repeatedly for more bytes until it returns eof=true.
func NewFromIter(next func() (chunk []byte, eof bool, err error), cfg Config) (*Reader, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return nil, err
	}
	cur, err := newIterCursor(next, cfg)
	if err != nil {
		return nil, err
	}
	return newReader(cur, cfg), nil
}

// NewFromPath builds a Reader over a memory-mapped file, matching the
// original from_path entry point. On platforms without mmap support it
// transparently falls back to reading the whole file into memory.
func NewFromPath(path string, cfg Config) (*Reader, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return nil, err
	}
	cur, err := newMmapCursor(path, cfg)
	if err != nil {
		return nil, err
	}
	return newReader(cur, cfg), nil
}

// NextRow advances to the next row and returns a view onto it. The
// returned *Row is only valid until the next call to NextRow or Close.
// NextRow returns (nil, nil) at clean end of input, and (nil, err) for
// any fatal error (after which every subsequent call returns the same
// error).
func (r *Reader) NextRow() (*Row, error) {
	if r.fatal != nil {
		return nil, r.fatal
	}
	if !r.started {
		r.started = true
		if r.cfg.Header {
			ok, err := r.tok.nextRow(r.cur)
			if err != nil {
				r.fatal = err
				return nil, err
			}
			if ok {
				r.row.reset(r.cur.buf, r.tok.offsets, r.cfg.Quote, nil)
				r.hdr = newHeader(&r.row)
			}
		}
	}

	ok, err := r.tok.nextRow(r.cur)
	if err != nil {
		r.fatal = err
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	r.row.reset(r.cur.buf, r.tok.offsets, r.cfg.Quote, r.hdr)
	return &r.row, nil
}

// Header reports the column names consumed from the first row, or nil
// if the reader was not built with Config.Header set (or no row has
// been read yet).
func (r *Reader) Header() []string {
	if r.hdr == nil {
		return nil
	}
	return r.hdr.names
}

// Close releases resources held by the reader's underlying source (a
// file handle or memory mapping).
func (r *Reader) Close() error {
	return r.cur.Close()
}
