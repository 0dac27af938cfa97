// Package split turns an input byte stream into per-line records. Records
// keep their exact original bytes (only the line terminator is removed) so
// diagnostics can echo an offending line verbatim.
package split

import (
	"bufio"
	"io"
)

const (
	initialBuffer = 64 * 1024
	// MaxRecordSize caps a single record. A line beyond the cap cannot be
	// resynchronized and surfaces as a stream error, not a per-record one.
	MaxRecordSize = 64 * 1024 * 1024
)

// Splitter yields one record per input line, streaming with memory bounded
// by the largest single line.
type Splitter struct {
	s *bufio.Scanner
}

// New returns a Splitter reading from r.
func New(r io.Reader) *Splitter {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, initialBuffer), MaxRecordSize)
	return &Splitter{s: s}
}

// Scan advances to the next record. It returns false at end of input or on
// a stream error, which Err then reports.
func (s *Splitter) Scan() bool {
	return s.s.Scan()
}

// Bytes returns the current record without its line terminator. The slice
// is only valid until the next Scan call.
func (s *Splitter) Bytes() []byte {
	return s.s.Bytes()
}

// Err returns the first error hit by Scan, nil at clean end of input.
func (s *Splitter) Err() error {
	return s.s.Err()
}
