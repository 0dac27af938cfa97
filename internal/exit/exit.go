// Package exit describes how a run terminates before the record pipeline
// gets a say: which stream receives the message and which status code the
// process exits with.
package exit

import (
	"fmt"
	"io"
	"os"
)

// Result is a pending process termination.
type Result struct {
	Output   io.Writer
	ExitCode int
	Message  string
}

// Print writes the message to the configured stream.
func (r *Result) Print() {
	fmt.Fprint(r.Output, r.Message)
}

// Success terminates with status 0 and the message on stdout.
func Success(message string) *Result {
	return &Result{
		Output:   os.Stdout,
		ExitCode: 0,
		Message:  message,
	}
}

// Error terminates with status 1 and the message on stderr.
func Error(message string) *Result {
	return &Result{
		Output:   os.Stderr,
		ExitCode: 1,
		Message:  message,
	}
}

// Errorf is Error with fmt.Sprintf formatting.
func Errorf(format string, a ...any) *Result {
	return Error(fmt.Sprintf(format, a...))
}
