package csvmonkey

import (
	"bufio"
	"io"
)

// Writer re-serializes rows back into CSV text. Unlike the tokenizer's
// lenient reader, Writer always quotes every field it writes (the
// original csvcut.py CLI round-trips through Python's csv.writer with
// quoting=csv.QUOTE_ALL, and that's the simplest policy a cell produced
// by Row.Get can always round-trip through safely without re-deriving
// whether quoting was "necessary").
type Writer struct {
	Comma   byte // field delimiter, set to ',' by NewWriter
	Quote   byte // quote character, set to '"' by NewWriter
	UseCRLF bool // true to use \r\n as the line terminator

	w   *bufio.Writer
	err error
}

// NewWriter returns a new Writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		Comma: ',',
		Quote: '"',
		w:     bufio.NewWriter(w),
	}
}

// Write writes a single record, quoting every field.
func (w *Writer) Write(record []string) error {
	if w.err != nil {
		return w.err
	}
	for i, field := range record {
		if i > 0 {
			if w.err = w.w.WriteByte(w.Comma); w.err != nil {
				return w.err
			}
		}
		if w.err = w.writeQuotedField(field); w.err != nil {
			return w.err
		}
	}
	return w.writeLineEnding()
}

func (w *Writer) writeQuotedField(field string) error {
	if err := w.w.WriteByte(w.Quote); err != nil {
		return err
	}
	for i := 0; i < len(field); i++ {
		c := field[i]
		if c == w.Quote {
			if _, err := w.w.Write([]byte{w.Quote, w.Quote}); err != nil {
				return err
			}
			continue
		}
		if err := w.w.WriteByte(c); err != nil {
			return err
		}
	}
	return w.w.WriteByte(w.Quote)
}

func (w *Writer) writeLineEnding() error {
	if w.UseCRLF {
		_, w.err = w.w.WriteString("\r\n")
	} else {
		w.err = w.w.WriteByte('\n')
	}
	return w.err
}

// WriteAll writes multiple records and then calls Flush.
func (w *Writer) WriteAll(records [][]string) error {
	for _, record := range records {
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return w.Flush()
}

// WriteRow is a convenience wrapper writing a Row's materialized cells
// directly, without an intermediate []string allocation at the call
// site (Row.AsList still allocates internally).
func (w *Writer) WriteRow(row *Row) error {
	return w.Write(row.AsList())
}

// Flush writes any buffered data to the underlying io.Writer.
func (w *Writer) Flush() error {
	w.err = w.w.Flush()
	return w.err
}

// Error reports any error that occurred during a previous Write or Flush.
func (w *Writer) Error() error {
	return w.err
}
