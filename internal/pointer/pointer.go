// Package pointer parses JSON-pointer selectors into reusable segment
// sequences. A pointer is parsed once at startup and shared read-only across
// every record of a run; malformed pointers surface here, before any input
// is read.
package pointer

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment is one step of a parsed pointer. Every segment names a literal
// object key; a segment whose text is all digits with no redundant leading
// zero additionally addresses an array index.
type Segment struct {
	key     string
	index   int
	isIndex bool
}

// Key returns the decoded object key this segment addresses.
func (s Segment) Key() string {
	return s.key
}

// Index returns the array index reading of this segment, if it has one.
func (s Segment) Index() (int, bool) {
	return s.index, s.isIndex
}

// Pointer is an ordered segment sequence addressing one node in a document.
// The empty pointer addresses the document root.
type Pointer []Segment

// Parse compiles pointer text. Valid text is either empty or a sequence of
// '/'-prefixed segments; '~0' and '~1' decode to '~' and '/', any other use
// of '~' is a syntax error.
func Parse(text string) (Pointer, error) {
	if text == "" {
		return nil, nil
	}
	if text[0] != '/' {
		return nil, fmt.Errorf("%w: %q must be empty or start with '/'", ErrSyntax, text)
	}

	raw := strings.Split(text[1:], "/")
	p := make(Pointer, 0, len(raw))
	for _, token := range raw {
		key, err := decodeToken(token)
		if err != nil {
			return nil, fmt.Errorf("%w in %q", err, text)
		}
		seg := Segment{key: key}
		seg.index, seg.isIndex = indexReading(key)
		p = append(p, seg)
	}
	return p, nil
}

// ParseList compiles a comma-separated pointer list, the form the -f flag
// carries. The split on ',' is literal, so a key containing a comma cannot
// be selected; an empty element is the root pointer.
func ParseList(text string) ([]Pointer, error) {
	parts := strings.Split(text, ",")
	ptrs := make([]Pointer, 0, len(parts))
	for _, part := range parts {
		p, err := Parse(part)
		if err != nil {
			return nil, err
		}
		ptrs = append(ptrs, p)
	}
	return ptrs, nil
}

// String re-serializes the segment sequence to canonical pointer text.
// Parsing the result yields an equal pointer.
func (p Pointer) String() string {
	if len(p) == 0 {
		return ""
	}

	var b strings.Builder
	for _, seg := range p {
		b.WriteByte('/')
		for i := 0; i < len(seg.key); i++ {
			switch seg.key[i] {
			case '~':
				b.WriteString("~0")
			case '/':
				b.WriteString("~1")
			default:
				b.WriteByte(seg.key[i])
			}
		}
	}
	return b.String()
}

func decodeToken(raw string) (string, error) {
	if !strings.Contains(raw, "~") {
		return raw, nil
	}

	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '~' {
			b.WriteByte(c)
			continue
		}
		i++
		if i == len(raw) {
			return "", fmt.Errorf("%w: unfinished escape at end of segment %q", ErrSyntax, raw)
		}
		switch raw[i] {
		case '0':
			b.WriteByte('~')
		case '1':
			b.WriteByte('/')
		default:
			return "", fmt.Errorf("%w: undefined escape ~%c in segment %q", ErrSyntax, raw[i], raw)
		}
	}
	return b.String(), nil
}

// indexReading reports the array-index interpretation of a key: all digits,
// no leading zero other than the literal "0", and within int range.
func indexReading(key string) (int, bool) {
	if key == "" || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}
	for i := 0; i < len(key); i++ {
		if key[i] < '0' || key[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(key)
	if err != nil {
		return 0, false
	}
	return n, true
}
