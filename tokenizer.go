package csvmonkey

import "math/bits"

// tokenizerState is the state machine spec.md §4.C describes.
type tokenizerState int

const (
	stateFieldStart tokenizerState = iota
	stateUnquoted
	stateQuoted
	stateQuotedSeenQuote
)

// cell describes one field of a row: a byte range in the current
// StreamCursor window, plus whether it was quoted (and so may need
// unescaping before its content can be handed to a caller).
type cell struct {
	start         int // offset from the row's window base
	length        int
	isQuoted      bool
	needsUnescape bool
}

// rowOffsets is the compact per-row cell table spec.md §3 describes.
// Offsets are relative to the window base at the moment the row was
// produced; they are valid only until the cursor advances past the row.
type rowOffsets struct {
	cells []cell
	// base is the StreamCursor.base in effect while this row's cell
	// offsets were recorded; cell.start/length are relative to it.
	base int
}

// tokenizer drives one StreamCursor lane-by-lane to find the next row's
// cell boundaries. It holds no data of its own beyond the cell table and
// a small amount of state carried between lanes within a single row; a
// Reader owns exactly one tokenizer.
type tokenizer struct {
	cfg Config

	offsets rowOffsets
}

func newTokenizer(cfg Config) *tokenizer {
	return &tokenizer{cfg: cfg}
}

// nextRow locates the next row in c, starting at c.base. It returns
// (false, nil) when the cursor is exhausted with no more rows, advances
// c past the row on success, and returns *RowTooLargeError or *IoError
// on failure (both of which are fatal: see errors.go).
func (t *tokenizer) nextRow(c *StreamCursor) (bool, error) {
	t.offsets.cells = t.offsets.cells[:0]

	delim := t.cfg.Delimiter
	quote := t.cfg.Quote

	state := stateFieldStart
	fieldStart := 0   // row-relative offset where the current field's content starts
	rowOff := 0       // row-relative scan cursor
	needsUnescape := false

	for {
		// Ensure at least 16 real-or-guard bytes are available at rowOff.
		if err := t.ensureLane(c, rowOff); err != nil {
			return false, err
		}
		if t.rowExceedsWindow(rowOff) {
			return false, &RowTooLargeError{Window: t.cfg.Window}
		}

		base := c.base
		t.offsets.base = base
		atEnd := rowOff >= c.remaining() && c.terminal

		if atEnd {
			// No more real bytes. Flush a pending trailing row if the
			// policy calls for it and there is unterminated content, or
			// if a field was already open (e.g. a trailing delimiter
			// leaves an empty final cell).
			if len(t.offsets.cells) == 0 && fieldStart == rowOff && state == stateFieldStart {
				return false, nil // clean EOF, nothing pending
			}
			if !t.cfg.FlushTrailingRow {
				return false, nil
			}
			t.closeCell(c, base, fieldStart, rowOff, state == stateQuoted || state == stateQuotedSeenQuote, needsUnescape)
			c.advance(rowOff)
			return true, nil
		}

		b := c.buf[base+rowOff]

		switch state {
		case stateFieldStart:
			if quote != 0 && b == quote {
				state = stateQuoted
				fieldStart = rowOff + 1
				rowOff++
				continue
			}
			state = stateUnquoted
			fieldStart = rowOff
			// fall through to unquoted handling of this same byte
			fallthrough

		case stateUnquoted:
			if advanced, done := t.scanUnquoted(c, base, &rowOff, delim); done {
				_ = advanced
				switch b2 := c.buf[base+rowOff]; b2 {
				case delim:
					t.closeCell(c, base, fieldStart, rowOff, false, false)
					rowOff++
					fieldStart = rowOff
					state = stateFieldStart
				case '\n':
					t.closeCell(c, base, fieldStart, rowOff, false, false)
					rowOff++
					if emitted, skip := t.finishRow(c, base, rowOff); skip {
						rowOff = 0
						fieldStart = 0
						state = stateFieldStart
						continue
					} else if emitted {
						return true, nil
					}
				case '\r':
					t.closeCell(c, base, fieldStart, rowOff, false, false)
					rowOff++
					if err := t.ensureLane(c, rowOff); err != nil {
						return false, err
					}
					if rowOff < c.remaining() && c.buf[base+rowOff] == '\n' {
						rowOff++
					}
					if emitted, skip := t.finishRow(c, base, rowOff); skip {
						rowOff = 0
						fieldStart = 0
						state = stateFieldStart
						continue
					} else if emitted {
						return true, nil
					}
				}
				continue
			}
			continue

		case stateQuoted:
			if t.scanQuoted(c, base, &rowOff, delim, quote) {
				state = stateQuotedSeenQuote
				rowOff++
			}
			continue

		case stateQuotedSeenQuote:
			if quote != 0 && b == quote {
				// Escaped quote: "" -> " content byte.
				needsUnescape = true
				state = stateQuoted
				rowOff++
				continue
			}
			// Closing quote. What follows should be delim/CR/LF/EOF; in
			// lenient mode anything else is appended as literal content
			// of the cell instead of raising an error (spec.md §4.C).
			switch b {
			case delim:
				t.closeCell(c, base, fieldStart, rowOff-1, true, needsUnescape)
				needsUnescape = false
				rowOff++
				fieldStart = rowOff
				state = stateFieldStart
			case '\n':
				t.closeCell(c, base, fieldStart, rowOff-1, true, needsUnescape)
				needsUnescape = false
				rowOff++
				if emitted, skip := t.finishRow(c, base, rowOff); skip {
					rowOff = 0
					fieldStart = 0
					state = stateFieldStart
					continue
				} else if emitted {
					return true, nil
				}
			case '\r':
				t.closeCell(c, base, fieldStart, rowOff-1, true, needsUnescape)
				needsUnescape = false
				rowOff++
				if err := t.ensureLane(c, rowOff); err != nil {
					return false, err
				}
				if rowOff < c.remaining() && c.buf[base+rowOff] == '\n' {
					rowOff++
				}
				if emitted, skip := t.finishRow(c, base, rowOff); skip {
					rowOff = 0
					fieldStart = 0
					state = stateFieldStart
					continue
				} else if emitted {
					return true, nil
				}
			default:
				// Lenient: the "closing" quote wasn't actually closing;
				// treat the bytes since as literal content and resume
				// scanning inside the quoted cell.
				state = stateQuoted
				rowOff++
			}
			continue
		}
	}
}

// scanUnquoted advances rowOff within the current lane-aligned window
// until a delimiter, CR, or LF is found (fast-path: skip whole lanes
// whose classifier mask is zero). Returns done=true once rowOff points
// at the special byte that ended the field.
func (t *tokenizer) scanUnquoted(c *StreamCursor, base int, rowOff *int, delim byte) (advanced, done bool) {
	for {
		if t.rowExceedsWindow(*rowOff) {
			// Let the caller's top-of-loop check raise RowTooLargeError;
			// returning here keeps this loop from scanning unbounded
			// past the window looking for a delimiter that may not
			// exist within it.
			return advanced, false
		}
		if err := t.ensureLane(c, *rowOff); err != nil {
			// Treat as "no more data this lane"; caller's atEnd check
			// on the next loop iteration handles it.
			return advanced, false
		}
		if *rowOff >= c.remaining() && c.terminal {
			return advanced, false
		}
		l := c.lane(base + *rowOff)
		mask := classifyLane(l, delim, 0)
		if mask == 0 {
			if c.terminal && *rowOff+16 > c.remaining() {
				// The lane's real bytes (less than 16 of them, the rest
				// being zero-filled guard) contain no delimiter or
				// terminator. Stop exactly at the real boundary instead
				// of jumping a full lane past it; the caller's atEnd
				// check on the next iteration handles what comes next.
				*rowOff = c.remaining()
				return true, false
			}
			*rowOff += 16
			advanced = true
			continue
		}
		bit := bits.TrailingZeros16(mask)
		*rowOff += bit
		return true, true
	}
}

// scanQuoted advances rowOff within a quoted cell until the quote byte
// is found, using the same lane mask-skip fast path scanUnquoted uses
// (spec.md §4.C: "consider only the quote byte as interesting" while
// quoted — delimiters and newlines inside quotes are literal). The
// shared classifier mask also carries delimiter/CR/LF bits, since those
// are always part of its definition (spec.md §4.B); a lane whose only
// hits are delimiter/CR/LF, with no quote byte among them, is literal
// content and is skipped like any other non-special lane. Returns true
// once rowOff points at the quote byte; false once real data is
// exhausted (EOF clamp) or the row has grown past the window.
func (t *tokenizer) scanQuoted(c *StreamCursor, base int, rowOff *int, delim, quote byte) bool {
	for {
		if t.rowExceedsWindow(*rowOff) {
			return false
		}
		if err := t.ensureLane(c, *rowOff); err != nil {
			return false
		}
		if *rowOff >= c.remaining() && c.terminal {
			return false
		}
		l := c.lane(base + *rowOff)
		mask := classifyLane(l, delim, quote)
		if mask != 0 {
			for m := mask; m != 0; m &= m - 1 {
				bit := bits.TrailingZeros16(m)
				if c.buf[base+*rowOff+bit] == quote {
					*rowOff += bit
					return true
				}
			}
		}
		if c.terminal && *rowOff+16 > c.remaining() {
			*rowOff = c.remaining()
			return false
		}
		*rowOff += 16
	}
}

// closeCell records a cell spanning [fieldStart, end) (row-relative
// offsets) into the tokenizer's rowOffsets table.
func (t *tokenizer) closeCell(c *StreamCursor, base, fieldStart, end int, quoted, needsUnescape bool) {
	length := end - fieldStart
	if length < 0 {
		length = 0
	}
	t.offsets.cells = append(t.offsets.cells, cell{
		start:         fieldStart,
		length:        length,
		isQuoted:      quoted,
		needsUnescape: needsUnescape,
	})
}

// finishRow decides whether the row just terminated at row-relative
// offset rowEnd should be emitted (non-blank) or skipped (a row
// consisting solely of a terminator, spec.md §4.C), and if emitted,
// advances the cursor past it.
func (t *tokenizer) finishRow(c *StreamCursor, base, rowEnd int) (emitted, skip bool) {
	if len(t.offsets.cells) == 1 && t.offsets.cells[0].length == 0 && !t.offsets.cells[0].isQuoted {
		// A single empty, unquoted cell means the "row" was just a bare
		// terminator: skip it instead of emitting an empty row.
		t.offsets.cells = t.offsets.cells[:0]
		c.advance(rowEnd)
		return false, true
	}
	c.advance(rowEnd)
	return true, false
}

// rowExceedsWindow reports whether a lane starting at row-relative
// offset rowOff would need more real bytes than a single refill cycle
// ever buffers. windowedPull only fills real data up to cfg.Window, so
// the last position a lane can safely start from is Window-16; going
// further would need bytes a non-terminal cursor can never promise.
func (t *tokenizer) rowExceedsWindow(rowOff int) bool {
	return rowOff+16 > t.cfg.Window
}

// ensureLane makes sure 16 real-or-guard bytes are available starting at
// row-relative offset rowOff, refilling the cursor as needed. Unlike
// ensureLookahead (which only tops up once the window has drained past
// its halfway mark), this forces a refill whenever THIS specific lane
// isn't covered yet, since a long field can otherwise need lookahead
// ensureLookahead's heuristic would decline to provide.
func (t *tokenizer) ensureLane(c *StreamCursor, rowOff int) error {
	for {
		if rowOff+16 <= c.remaining() {
			return nil
		}
		if c.terminal {
			return nil
		}
		before := c.end
		if err := c.refill(c); err != nil {
			return err
		}
		if c.end == before {
			return nil
		}
	}
}
