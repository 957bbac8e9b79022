package csvmonkey

import "testing"

func TestRowGetNegativeIndex(t *testing.T) {
	r, err := NewFromBytes([]byte("a,b,c\n"), DefaultConfig())
	if err != nil {
		t.Fatalf("NewFromBytes: %v", err)
	}
	defer r.Close()
	row, err := r.NextRow()
	if err != nil || row == nil {
		t.Fatalf("NextRow: row=%v err=%v", row, err)
	}

	cases := []struct {
		idx  int
		want string
	}{
		{0, "a"},
		{-1, "c"},
		{-2, "b"},
		{-3, "a"},
	}
	for _, tc := range cases {
		got, err := row.Get(tc.idx)
		if err != nil {
			t.Errorf("Get(%d): %v", tc.idx, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Get(%d) = %q, want %q", tc.idx, got, tc.want)
		}
	}

	if _, err := row.Get(3); err != ErrIndexOutOfRange {
		t.Errorf("Get(3) err = %v, want ErrIndexOutOfRange", err)
	}
	if _, err := row.Get(-4); err != ErrIndexOutOfRange {
		t.Errorf("Get(-4) err = %v, want ErrIndexOutOfRange", err)
	}
}

func TestRowAsMapWithoutHeader(t *testing.T) {
	r, err := NewFromBytes([]byte("a,b\n"), DefaultConfig())
	if err != nil {
		t.Fatalf("NewFromBytes: %v", err)
	}
	defer r.Close()
	row, _ := r.NextRow()
	if _, err := row.AsMap(); err != ErrHeaderRequired {
		t.Errorf("AsMap without header err = %v, want ErrHeaderRequired", err)
	}
}

func TestRowAsMap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Header = true
	r, err := NewFromBytes([]byte("x,y\n1,2\n"), cfg)
	if err != nil {
		t.Fatalf("NewFromBytes: %v", err)
	}
	defer r.Close()
	row, err := r.NextRow()
	if err != nil {
		t.Fatalf("NextRow: %v", err)
	}
	m, err := row.AsMap()
	if err != nil {
		t.Fatalf("AsMap: %v", err)
	}
	if m["x"] != "1" || m["y"] != "2" {
		t.Errorf("AsMap = %v, want x=1 y=2", m)
	}
}

func TestRowBorrowInvalidatedByNextRow(t *testing.T) {
	// Document (rather than strictly enforce, since Go has no borrow
	// checker) that materializing with AsList before advancing is the
	// supported pattern: the same *Row pointer is reused across calls.
	r, err := NewFromBytes([]byte("a,b\nc,d\n"), DefaultConfig())
	if err != nil {
		t.Fatalf("NewFromBytes: %v", err)
	}
	defer r.Close()
	first, _ := r.NextRow()
	firstCopy := first.AsList()
	second, _ := r.NextRow()
	if first != second {
		t.Fatalf("NextRow should reuse the same *Row across calls")
	}
	if firstCopy[0] != "a" {
		t.Errorf("materialized copy changed after NextRow: %v", firstCopy)
	}
}
