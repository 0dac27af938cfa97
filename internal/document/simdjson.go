package document

import (
	"errors"
	"strconv"

	"github.com/minio/simdjson-go"
)

var (
	errNoDocument      = errors.New("document: record holds no document")
	errTrailingContent = errors.New("document: trailing content after document")
)

func simdjsonSupported() bool {
	return simdjson.SupportedCPU()
}

// simdjsonParser is the fast backend, a Go port of the parser the tool was
// built around. The tape from the previous record is handed back to Parse,
// so steady-state records parse without fresh allocations.
type simdjsonParser struct {
	pj   *simdjson.ParsedJson
	obj  simdjson.Object
	arr  simdjson.Array
	elem simdjson.Element
	root simdjson.Iter
}

func newSIMDJSONParser() *simdjsonParser {
	return &simdjsonParser{}
}

func (p *simdjsonParser) Parse(record []byte) (Value, error) {
	pj, err := simdjson.Parse(record, p.pj)
	if err != nil {
		return nil, err
	}
	p.pj = pj

	iter := pj.Iter()
	if iter.Advance() != simdjson.TypeRoot {
		return nil, errNoDocument
	}
	_, root, err := iter.Root(&p.root)
	if err != nil {
		return nil, err
	}
	v := simdjsonValue{iter: *root, p: p}
	if iter.Advance() != simdjson.TypeNone {
		return nil, errTrailingContent
	}
	return v, nil
}

// simdjsonValue holds its tape position by value, so it stays usable while
// the parser's scratch views are reused for further descents.
type simdjsonValue struct {
	iter simdjson.Iter
	p    *simdjsonParser
}

func (v simdjsonValue) Kind() Kind {
	switch v.iter.Type() {
	case simdjson.TypeObject:
		return KindObject
	case simdjson.TypeArray:
		return KindArray
	case simdjson.TypeString:
		return KindString
	case simdjson.TypeInt, simdjson.TypeUint, simdjson.TypeFloat:
		return KindNumber
	case simdjson.TypeBool:
		return KindBool
	default:
		return KindNull
	}
}

func (v simdjsonValue) Member(key string) (Value, bool) {
	if v.iter.Type() != simdjson.TypeObject {
		return nil, false
	}
	obj, err := v.iter.Object(&v.p.obj)
	if err != nil {
		return nil, false
	}
	elem := obj.FindKey(key, &v.p.elem)
	if elem == nil {
		return nil, false
	}
	return simdjsonValue{iter: elem.Iter, p: v.p}, true
}

func (v simdjsonValue) Element(i int) (Value, bool) {
	if v.iter.Type() != simdjson.TypeArray {
		return nil, false
	}
	arr, err := v.iter.Array(&v.p.arr)
	if err != nil {
		return nil, false
	}
	it := arr.Iter()
	for n := 0; ; n++ {
		if it.Advance() == simdjson.TypeNone {
			return nil, false
		}
		if n == i {
			return simdjsonValue{iter: it, p: v.p}, true
		}
	}
}

func (v simdjsonValue) AppendJSON(dst []byte) ([]byte, error) {
	return appendIterJSON(dst, v.iter)
}

// appendIterJSON renders exactly the element the iterator is positioned at,
// not the rest of its scope.
func appendIterJSON(dst []byte, i simdjson.Iter) ([]byte, error) {
	switch i.Type() {
	case simdjson.TypeNull:
		return append(dst, "null"...), nil
	case simdjson.TypeBool:
		b, err := i.Bool()
		if err != nil {
			return dst, err
		}
		return strconv.AppendBool(dst, b), nil
	case simdjson.TypeInt:
		n, err := i.Int()
		if err != nil {
			return dst, err
		}
		return strconv.AppendInt(dst, n, 10), nil
	case simdjson.TypeUint:
		n, err := i.Uint()
		if err != nil {
			return dst, err
		}
		return strconv.AppendUint(dst, n, 10), nil
	case simdjson.TypeFloat:
		f, err := i.Float()
		if err != nil {
			return dst, err
		}
		return strconv.AppendFloat(dst, f, 'g', -1, 64), nil
	case simdjson.TypeString:
		s, err := i.StringBytes()
		if err != nil {
			return dst, err
		}
		return appendJSONString(dst, s), nil
	case simdjson.TypeObject:
		obj, err := i.Object(nil)
		if err != nil {
			return dst, err
		}
		dst = append(dst, '{')
		n := 0
		var memberErr error
		err = obj.ForEach(func(key []byte, it simdjson.Iter) {
			if memberErr != nil {
				return
			}
			if n > 0 {
				dst = append(dst, ',')
			}
			n++
			dst = appendJSONString(dst, key)
			dst = append(dst, ':')
			dst, memberErr = appendIterJSON(dst, it)
		}, nil)
		if err != nil {
			return dst, err
		}
		if memberErr != nil {
			return dst, memberErr
		}
		return append(dst, '}'), nil
	case simdjson.TypeArray:
		arr, err := i.Array(nil)
		if err != nil {
			return dst, err
		}
		dst = append(dst, '[')
		it := arr.Iter()
		for n := 0; ; n++ {
			if it.Advance() == simdjson.TypeNone {
				break
			}
			if n > 0 {
				dst = append(dst, ',')
			}
			dst, err = appendIterJSON(dst, it)
			if err != nil {
				return dst, err
			}
		}
		return append(dst, ']'), nil
	default:
		return dst, errNoDocument
	}
}

const hexDigits = "0123456789abcdef"

// appendJSONString appends s as a quoted JSON string. The backends hand out
// decoded strings, so escaping has to be reapplied on the way out.
func appendJSONString(dst []byte, s []byte) []byte {
	dst = append(dst, '"')
	for _, c := range s {
		switch {
		case c == '"':
			dst = append(dst, '\\', '"')
		case c == '\\':
			dst = append(dst, '\\', '\\')
		case c == '\n':
			dst = append(dst, '\\', 'n')
		case c == '\r':
			dst = append(dst, '\\', 'r')
		case c == '\t':
			dst = append(dst, '\\', 't')
		case c < 0x20:
			dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
		default:
			dst = append(dst, c)
		}
	}
	return append(dst, '"')
}
