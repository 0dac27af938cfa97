package document

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

// Decode builds a backend-independent tree over plain decoded Go values.
// It is the reference implementation of the Value contract: selection and
// formatting logic is tested against it, decoupled from the production
// backends and their storage reuse.
func Decode(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return anyValue{v: v}, nil
}

type anyValue struct {
	v any
}

func (a anyValue) Kind() Kind {
	switch a.v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case json.Number:
		return KindNumber
	case string:
		return KindString
	case []any:
		return KindArray
	case map[string]any:
		return KindObject
	default:
		return KindNull
	}
}

func (a anyValue) Member(key string) (Value, bool) {
	obj, ok := a.v.(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := obj[key]
	if !ok {
		return nil, false
	}
	return anyValue{v: v}, true
}

func (a anyValue) Element(i int) (Value, bool) {
	items, ok := a.v.([]any)
	if !ok || i < 0 || i >= len(items) {
		return nil, false
	}
	return anyValue{v: items[i]}, true
}

func (a anyValue) AppendJSON(dst []byte) ([]byte, error) {
	b, err := json.Marshal(a.v)
	if err != nil {
		return dst, fmt.Errorf("marshal %s node: %w", a.Kind(), err)
	}
	return append(dst, b...), nil
}
