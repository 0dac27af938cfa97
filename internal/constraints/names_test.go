package constraints

import (
	"testing"

	"github.com/mit-ccc/spac/internal/config"
	"github.com/mit-ccc/spac/internal/document"
	"github.com/mit-ccc/spac/internal/output"
)

// The names the CLI advertises and the names the enums resolve must stay
// one set; a format or backend reachable from only one side is a bug.
func TestFormatNamesSharedAcrossBoundaries(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"space", "tab", "array"} {
		name := name
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			format, err := output.ParseFormat(name)
			if err != nil {
				t.Fatalf("output.ParseFormat(%q) error = %v", name, err)
			}
			if format.String() != name {
				t.Fatalf("Format.String() = %q, want %q", format.String(), name)
			}

			cfg, res := config.Parse([]string{"spac", "select", "-f", "/id", "--format", name})
			if res != nil {
				t.Fatalf("config.Parse rejected format %q: %+v", name, res)
			}
			if cfg.Format != format {
				t.Fatalf("config.Parse format = %v, want %v", cfg.Format, format)
			}
		})
	}
}

func TestBackendNamesSharedAcrossBoundaries(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"auto", "simdjson", "fastjson"} {
		name := name
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			backend, err := document.ParseBackend(name)
			if err != nil {
				t.Fatalf("document.ParseBackend(%q) error = %v", name, err)
			}
			if backend.String() != name {
				t.Fatalf("Backend.String() = %q, want %q", backend.String(), name)
			}

			cfg, res := config.Parse([]string{"spac", "select", "-f", "/id", "--parser", name})
			if res != nil {
				t.Fatalf("config.Parse rejected parser %q: %+v", name, res)
			}
			if cfg.Backend != backend {
				t.Fatalf("config.Parse backend = %v, want %v", cfg.Backend, backend)
			}
		})
	}
}
