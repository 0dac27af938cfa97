// Package document abstracts the parsed form of one JSON record behind a
// narrow tree interface, so selection logic stays independent of the parser
// backend that produced the tree.
package document

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownBackend indicates an unrecognised parser backend name.
	ErrUnknownBackend = errors.New("document: unknown parser backend")
	// ErrUnsupportedBackend indicates a backend that cannot run on this CPU.
	ErrUnsupportedBackend = errors.New("document: parser backend not supported on this CPU")
)

// Kind classifies a document node.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Value is a borrowed view of one node in a parsed record. A Value is valid
// only until the owning Parser's next Parse call; backends reuse their
// backing storage between records.
type Value interface {
	// Kind reports the node's type.
	Kind() Kind

	// Member returns the named entry of an object node. It reports false
	// when the node is not an object or has no such entry.
	Member(key string) (Value, bool)

	// Element returns the i-th entry of an array node. It reports false
	// when the node is not an array or the index is out of range.
	Element(i int) (Value, bool)

	// AppendJSON appends the node's compact JSON rendering to dst.
	AppendJSON(dst []byte) ([]byte, error)
}

// Parser turns one record's bytes into a document tree. Parse is
// deterministic and side-effect free per call; the returned Value and
// everything reachable from it is invalidated by the next Parse call.
type Parser interface {
	Parse(record []byte) (Value, error)
}

// Backend names a parser implementation.
type Backend int

const (
	// BackendAuto picks simdjson when the CPU supports it, fastjson otherwise.
	BackendAuto Backend = iota
	BackendSIMDJSON
	BackendFastJSON
)

// ParseBackend resolves a backend name from the CLI.
func ParseBackend(name string) (Backend, error) {
	switch name {
	case "auto":
		return BackendAuto, nil
	case "simdjson":
		return BackendSIMDJSON, nil
	case "fastjson":
		return BackendFastJSON, nil
	default:
		return BackendAuto, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}

// String returns the backend name.
func (b Backend) String() string {
	switch b {
	case BackendAuto:
		return "auto"
	case BackendSIMDJSON:
		return "simdjson"
	case BackendFastJSON:
		return "fastjson"
	default:
		return fmt.Sprintf("Backend(%d)", int(b))
	}
}

// NewParser constructs the parser for a backend. Requesting simdjson on a
// CPU without the required instructions is an error; auto falls back to
// fastjson instead.
func NewParser(backend Backend) (Parser, error) {
	switch backend {
	case BackendAuto:
		if simdjsonSupported() {
			return newSIMDJSONParser(), nil
		}
		return newFastJSONParser(), nil
	case BackendSIMDJSON:
		if !simdjsonSupported() {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedBackend, backend)
		}
		return newSIMDJSONParser(), nil
	case BackendFastJSON:
		return newFastJSONParser(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, backend)
	}
}
