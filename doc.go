// Package csvmonkey is a zero-copy, vector-accelerated CSV tokenizer for
// bulk ingestion of large delimited text files.
//
// A [Reader] composes a [StreamCursor] (a sliding window over a file,
// memory-mapped region, byte slice, or pull-iterator source) with a
// tokenizer state machine that locates cell boundaries and a [Row] that
// projects the current row onto that window without copying. Records are
// read one at a time in input order; a [Row] returned by [Reader.NextRow]
// is only valid until the next call to NextRow, unless materialized with
// [Row.AsTuple], [Row.AsList], or [Row.AsMap].
//
// The tokenizer is byte-oriented and single-byte-delimiter only: full
// RFC 4180 dialect coverage, Unicode-aware parsing, and concurrent use of
// one Reader from multiple goroutines are all out of scope.
package csvmonkey
