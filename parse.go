package csvmonkey

// ParseBytes is a whole-buffer convenience wrapper around NewFromBytes:
// it reads every row and materializes it via Row.AsList, matching the
// original csvmonkey's common case of slurping a small file and getting
// back plain string records. Large inputs should use NewFromBytes (or
// NewFromPath/NewFromFile) directly and iterate NextRow instead of
// paying for every row's allocation up front.
func ParseBytes(data []byte, cfg Config) ([][]string, error) {
	r, err := NewFromBytes(data, cfg)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var records [][]string
	for {
		row, err := r.NextRow()
		if err != nil {
			return records, err
		}
		if row == nil {
			return records, nil
		}
		records = append(records, row.AsList())
	}
}

// ParseBytesStreaming parses data and invokes callback with a borrowed
// *Row for each record in turn, without materializing full records up
// front. Borrowing rules are the same as NextRow: row is only valid for
// the duration of the callback. If callback returns an error, parsing
// stops and that error is returned.
func ParseBytesStreaming(data []byte, cfg Config, callback func(*Row) error) error {
	r, err := NewFromBytes(data, cfg)
	if err != nil {
		return err
	}
	defer r.Close()

	for {
		row, err := r.NextRow()
		if err != nil {
			return err
		}
		if row == nil {
			return nil
		}
		if err := callback(row); err != nil {
			return err
		}
	}
}
