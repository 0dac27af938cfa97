package pointer

import "errors"

// ErrSyntax indicates malformed pointer text. It is reported at
// configuration time, before any record is processed.
var ErrSyntax = errors.New("pointer: syntax error")
