package document

import (
	"github.com/valyala/fastjson"
)

// fastjsonParser is the portable backend. The wrapped fastjson.Parser reuses
// its internal arena, which gives the borrowed-view lifetime the Value
// contract describes for free.
type fastjsonParser struct {
	p fastjson.Parser
}

func newFastJSONParser() *fastjsonParser {
	return &fastjsonParser{}
}

func (p *fastjsonParser) Parse(record []byte) (Value, error) {
	v, err := p.p.ParseBytes(record)
	if err != nil {
		return nil, err
	}
	return fastjsonValue{v: v}, nil
}

type fastjsonValue struct {
	v *fastjson.Value
}

func (f fastjsonValue) Kind() Kind {
	switch f.v.Type() {
	case fastjson.TypeObject:
		return KindObject
	case fastjson.TypeArray:
		return KindArray
	case fastjson.TypeString:
		return KindString
	case fastjson.TypeNumber:
		return KindNumber
	case fastjson.TypeTrue, fastjson.TypeFalse:
		return KindBool
	default:
		return KindNull
	}
}

func (f fastjsonValue) Member(key string) (Value, bool) {
	obj, err := f.v.Object()
	if err != nil {
		return nil, false
	}
	v := obj.Get(key)
	if v == nil {
		return nil, false
	}
	return fastjsonValue{v: v}, true
}

func (f fastjsonValue) Element(i int) (Value, bool) {
	items, err := f.v.Array()
	if err != nil || i < 0 || i >= len(items) {
		return nil, false
	}
	return fastjsonValue{v: items[i]}, true
}

func (f fastjsonValue) AppendJSON(dst []byte) ([]byte, error) {
	return f.v.MarshalTo(dst), nil
}
