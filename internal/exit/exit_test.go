package exit

import (
	"bytes"
	"os"
	"testing"
)

func TestSuccessTargetsStdout(t *testing.T) {
	t.Parallel()

	result := Success("done\n")

	if result.ExitCode != 0 {
		t.Errorf("Success() ExitCode = %d, want 0", result.ExitCode)
	}
	if result.Message != "done\n" {
		t.Errorf("Success() Message = %q, want %q", result.Message, "done\n")
	}
	if result.Output != os.Stdout {
		t.Error("Success() expected output to stdout")
	}
}

func TestErrorTargetsStderr(t *testing.T) {
	t.Parallel()

	result := Error("no such selector\n")

	if result.ExitCode != 1 {
		t.Errorf("Error() ExitCode = %d, want 1", result.ExitCode)
	}
	if result.Output != os.Stderr {
		t.Error("Error() expected output to stderr")
	}
}

func TestErrorfFormatsMessage(t *testing.T) {
	t.Parallel()

	result := Errorf("invalid pointer %q at position %d", "/a~", 2)

	want := `invalid pointer "/a~" at position 2`
	if result.Message != want {
		t.Errorf("Errorf() Message = %q, want %q", result.Message, want)
	}
	if result.ExitCode != 1 {
		t.Errorf("Errorf() ExitCode = %d, want 1", result.ExitCode)
	}
}

func TestPrintWritesToConfiguredStream(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	result := &Result{Output: &buf, ExitCode: 1, Message: "boom"}

	result.Print()

	if buf.String() != "boom" {
		t.Errorf("Print() output = %q, want %q", buf.String(), "boom")
	}
}
