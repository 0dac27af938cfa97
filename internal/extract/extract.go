// Package extract resolves pointer selectors against parsed documents. It
// is the pure middle of the pipeline: one resolver walk per selector, one
// ordered result per record.
package extract

import (
	"github.com/mit-ccc/spac/internal/document"
	"github.com/mit-ccc/spac/internal/pointer"
)

// Resolve walks ptr from root one segment at a time and returns the located
// node. The empty pointer resolves to root itself. Descent fails on a
// missing object member, an out-of-range or non-index segment against an
// array, and on any remaining segment once a scalar is reached. An all-digit
// segment against an object is a literal key; its index reading applies only
// to arrays.
func Resolve(root document.Value, ptr pointer.Pointer) (document.Value, bool) {
	node := root
	for _, seg := range ptr {
		switch node.Kind() {
		case document.KindObject:
			next, ok := node.Member(seg.Key())
			if !ok {
				return nil, false
			}
			node = next
		case document.KindArray:
			idx, ok := seg.Index()
			if !ok {
				return nil, false
			}
			next, ok := node.Element(idx)
			if !ok {
				return nil, false
			}
			node = next
		default:
			return nil, false
		}
	}
	return node, true
}

// Result is one record's extraction outcome: values in selector order, plus
// the positions of selectors that did not resolve. Its slices are reused by
// the owning Extractor and stay valid only until the next Extract call.
type Result struct {
	Values []document.Value
	Missed []int
}

// Complete reports whether every selector resolved.
func (r Result) Complete() bool {
	return len(r.Missed) == 0
}

// Extractor applies a fixed selector list to successive documents. The
// selector list is shared read-only across the whole run; the value and
// miss slices are reused record to record.
type Extractor struct {
	selectors []pointer.Pointer
	values    []document.Value
	missed    []int
}

// New returns an Extractor for the configured selectors.
func New(selectors []pointer.Pointer) *Extractor {
	return &Extractor{
		selectors: selectors,
		values:    make([]document.Value, 0, len(selectors)),
	}
}

// Extract resolves every selector against root. Values keep their selector's
// position even in a partial result; missed positions carry a nil value.
func (e *Extractor) Extract(root document.Value) Result {
	e.values = e.values[:0]
	e.missed = e.missed[:0]

	for i, sel := range e.selectors {
		v, ok := Resolve(root, sel)
		if !ok {
			e.missed = append(e.missed, i)
			e.values = append(e.values, nil)
			continue
		}
		e.values = append(e.values, v)
	}

	return Result{Values: e.values, Missed: e.missed}
}
