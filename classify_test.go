package csvmonkey

import (
	"math/rand"
	"testing"
)

func TestClassifyLaneSWARMatchesScalar(t *testing.T) {
	delim, quote := byte(','), byte('"')
	cases := [][]byte{
		make([]byte, 16),
		[]byte("a,b,c,d,e,f,g,hh"),
		[]byte(`"quoted","lanes"`),
		[]byte("\r\n\r\n\r\n\r\n\r\n\r\n\r\n\r\n"),
	}
	for _, l := range cases {
		if len(l) != 16 {
			t.Fatalf("fixture lane must be 16 bytes, got %d", len(l))
		}
		got := classifyLaneSWAR(l, delim, quote)
		want := classifyLaneScalar(l, delim, quote)
		if got != want {
			t.Errorf("lane %q: SWAR=%016b scalar=%016b", l, got, want)
		}
	}
}

func TestClassifyLaneSWARRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	alphabet := []byte{'a', ',', '"', '\r', '\n', 'z', ' ', 0}
	lane := make([]byte, 16)
	for iter := 0; iter < 10000; iter++ {
		for i := range lane {
			lane[i] = alphabet[rng.Intn(len(alphabet))]
		}
		got := classifyLaneSWAR(lane, ',', '"')
		want := classifyLaneScalar(lane, ',', '"')
		if got != want {
			t.Fatalf("iter %d: lane %q SWAR=%016b scalar=%016b", iter, lane, got, want)
		}
	}
}

func TestClassifyLaneQuoteDisabled(t *testing.T) {
	lane := []byte(`"aa","bb",c,d,ee`)[:16]
	got := classifyLaneSWAR(lane, ',', 0)
	want := classifyLaneScalar(lane, ',', 0)
	if got != want {
		t.Fatalf("quote-disabled mismatch: SWAR=%016b scalar=%016b", got, want)
	}
	// No bit should be set for the quote bytes themselves.
	if got&1 != 0 {
		t.Fatalf("quote byte at position 0 should not be classified when Quote==0")
	}
}
