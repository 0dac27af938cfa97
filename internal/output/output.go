// Package output renders extracted value tuples into the tool's record
// formats.
package output

import (
	"errors"
	"fmt"

	"github.com/mit-ccc/spac/internal/document"
)

// ErrUnknownFormat indicates an unrecognised format name.
var ErrUnknownFormat = errors.New("output: unknown format")

// Format is the closed set of record encodings.
type Format int

const (
	// FormatSpace joins the values' JSON renderings with single spaces.
	FormatSpace Format = iota
	// FormatTab joins the values' JSON renderings with single tabs.
	FormatTab
	// FormatArray wraps the values' JSON renderings in a JSON array.
	FormatArray
)

// ParseFormat resolves a format name from the CLI.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "space":
		return FormatSpace, nil
	case "tab":
		return FormatTab, nil
	case "array":
		return FormatArray, nil
	default:
		return FormatSpace, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatSpace:
		return "space"
	case FormatTab:
		return "tab"
	case FormatArray:
		return "array"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Renderer turns a value tuple into one newline-terminated output record.
// The output buffer is reused, so a rendered record is only valid until the
// next Render call.
type Renderer struct {
	format Format
	raw    bool
	buf    []byte
}

// NewRenderer returns a Renderer for the given format. When raw is set,
// string values lose their surrounding quotes; interior escape sequences
// are kept as rendered.
func NewRenderer(format Format, raw bool) *Renderer {
	return &Renderer{format: format, raw: raw}
}

// Render produces the record for values in tuple order.
func (r *Renderer) Render(values []document.Value) ([]byte, error) {
	buf := r.buf[:0]

	var sep byte = ' '
	if r.format == FormatTab {
		sep = '\t'
	}
	if r.format == FormatArray {
		sep = ','
		buf = append(buf, '[')
	}

	for i, v := range values {
		if i > 0 {
			buf = append(buf, sep)
		}
		start := len(buf)
		var err error
		buf, err = v.AppendJSON(buf)
		if err != nil {
			r.buf = buf
			return nil, fmt.Errorf("render value %d: %w", i, err)
		}
		if r.raw && v.Kind() == document.KindString && len(buf)-start >= 2 {
			copy(buf[start:], buf[start+1:len(buf)-1])
			buf = buf[:len(buf)-2]
		}
	}

	if r.format == FormatArray {
		buf = append(buf, ']')
	}
	buf = append(buf, '\n')

	r.buf = buf
	return buf, nil
}
