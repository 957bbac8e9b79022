package csvmonkey

// Row is a zero-copy view onto the most recently read record. It borrows
// directly from the Reader's StreamCursor window: the bytes it points at
// remain valid only until the next call to [Reader.NextRow], after which
// the cursor may have compacted or overwritten them. Callers that need a
// record to outlive the next NextRow call must materialize it first with
// [Row.AsTuple], [Row.AsList], or [Row.AsMap].
type Row struct {
	buf   []byte
	base  int
	cells []cell
	quote byte
	hdr   *header

	// scratch holds the most recent unescaped cell, reused across calls
	// to avoid a per-cell allocation for the common case of sequential
	// single-cell access.
	scratch []byte
}

func (r *Row) reset(buf []byte, off rowOffsets, quote byte, hdr *header) {
	r.buf = buf
	r.base = off.base
	r.cells = off.cells
	r.quote = quote
	r.hdr = hdr
}

// Len reports the number of cells in the row.
func (r *Row) Len() int {
	return len(r.cells)
}

// resolveIndex applies Python-style negative-index wraparound: -1 is the
// last cell, -Len() is the first.
func (r *Row) resolveIndex(i int) (int, error) {
	n := len(r.cells)
	idx := i
	if idx < 0 {
		idx += n
	}
	if idx < 0 || idx >= n {
		return 0, ErrIndexOutOfRange
	}
	return idx, nil
}

// Get returns cell i's content as a string, accepting negative indices
// (spec.md's Python-derived Row.__getitem__ semantics). Quoted cells
// have surrounding quotes already stripped; escaped quotes ("" -> ") are
// collapsed lazily, once, into r.scratch.
func (r *Row) Get(i int) (string, error) {
	idx, err := r.resolveIndex(i)
	if err != nil {
		return "", err
	}
	return r.getAt(idx), nil
}

func (r *Row) getAt(idx int) string {
	c := r.cells[idx]
	raw := r.buf[r.base+c.start : r.base+c.start+c.length]
	if !c.needsUnescape || r.quote == 0 {
		return string(raw)
	}
	r.scratch = unescapeInto(r.scratch[:0], raw, r.quote)
	return string(r.scratch)
}

// GetByName returns the cell under the given header column name. It
// returns ErrHeaderRequired if the reader was not built with a header,
// and ErrUnknownColumn if no column matches name exactly.
func (r *Row) GetByName(name string) (string, error) {
	if r.hdr == nil {
		return "", ErrHeaderRequired
	}
	idx := r.hdr.lookup(name)
	if idx < 0 {
		return "", ErrUnknownColumn
	}
	if idx >= len(r.cells) {
		return "", ErrIndexOutOfRange
	}
	return r.getAt(idx), nil
}

// AsList materializes every cell of the row into a freshly allocated
// slice of strings, safe to retain past the next NextRow call.
func (r *Row) AsList() []string {
	out := make([]string, len(r.cells))
	for i := range r.cells {
		out[i] = r.getAt(i)
	}
	return out
}

// AsTuple is an alias for AsList kept for parity with the original
// Python API's yields='tuple' mode; Go has no fixed-arity tuple type.
func (r *Row) AsTuple() []string {
	return r.AsList()
}

// AsMap materializes the row into a column-name-keyed map. It returns
// ErrHeaderRequired if the reader was not built with a header.
func (r *Row) AsMap() (map[string]string, error) {
	if r.hdr == nil {
		return nil, ErrHeaderRequired
	}
	out := make(map[string]string, len(r.hdr.names))
	for i, name := range r.hdr.names {
		if i >= len(r.cells) {
			break
		}
		out[name] = r.getAt(i)
	}
	return out, nil
}

// unescapeInto collapses doubled quote characters ("" -> ") in src,
// appending the result to dst and returning the extended slice. src must
// not alias dst.
func unescapeInto(dst, src []byte, quote byte) []byte {
	for i := 0; i < len(src); i++ {
		b := src[i]
		dst = append(dst, b)
		if b == quote && i+1 < len(src) && src[i+1] == quote {
			i++
		}
	}
	return dst
}
