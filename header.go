package csvmonkey

// header is the byte-exact column-name index built from a CSV's first
// row when Config.Header is set. It is built once per Reader and never
// mutated afterward.
type header struct {
	names []string
	index map[string]int
}

func newHeader(row *Row) *header {
	h := &header{
		names: make([]string, row.Len()),
		index: make(map[string]int, row.Len()),
	}
	for i := 0; i < row.Len(); i++ {
		name := row.getAt(i)
		h.names[i] = name
		if _, dup := h.index[name]; !dup {
			h.index[name] = i
		}
	}
	return h
}

// lookup returns the column position for name, or -1 if no header
// column matches it exactly.
func (h *header) lookup(name string) int {
	if h == nil {
		return -1
	}
	if i, ok := h.index[name]; ok {
		return i
	}
	return -1
}
