// Package config parses the CLI surface into a validated run configuration.
// Every configuration problem is fatal here, before any input is read.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mit-ccc/spac/internal/document"
	"github.com/mit-ccc/spac/internal/exit"
	"github.com/mit-ccc/spac/internal/output"
	"github.com/mit-ccc/spac/internal/pointer"
)

var (
	ErrNoArguments    = errors.New("no arguments provided")
	ErrUnknownCommand = errors.New("unknown command")
	ErrNoFields       = errors.New("no field selectors specified (-f is required)")
)

// Config is the validated configuration for one run.
type Config struct {
	// Fields holds the selectors in declared order, shared read-only by
	// every record of the run.
	Fields []pointer.Pointer
	Format output.Format
	Raw    bool
	// Verbosity > 0 echoes offending input lines to stderr. Quiet zeroes
	// it during normalization; quiet wins over verbose.
	Verbosity int
	Quiet     bool
	Backend   document.Backend
	// Inputs are the positional input paths; empty means standard input.
	Inputs []string
	// Warnings are printed to stderr before the run starts.
	Warnings []string
}

// countFlag implements flag.Value for the repeatable -v flag. Each bare
// occurrence increments the count; -v=N sets it.
type countFlag int

func (c *countFlag) String() string {
	return strconv.Itoa(int(*c))
}

func (c *countFlag) Set(value string) error {
	if value == "" || value == "true" {
		*c++
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid verbosity level %q", value)
	}
	*c = countFlag(n)
	return nil
}

func (c *countFlag) IsBoolFlag() bool { return true }

// Parse parses command-line arguments and returns a validated Config.
// If parsing fails or help is requested, returns nil config and exit result.
func Parse(args []string) (*Config, *exit.Result) {
	if len(args) < 2 {
		return nil, exit.Errorf("Error: %v\n\n%s\n", ErrNoArguments, Usage())
	}

	switch args[1] {
	case "select":
	case "-h", "--help", "help":
		return nil, exit.Success(Usage() + "\n")
	default:
		return nil, exit.Errorf("Error: %v: %q\n\n%s\n", ErrUnknownCommand, args[1], Usage())
	}

	fs := flag.NewFlagSet("select", flag.ContinueOnError)

	// Suppress the default usage and error output since we handle both.
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)

	var (
		fields    string
		formatStr string
		raw       bool
		quiet     bool
		verbosity countFlag
		parserStr string
	)
	fs.StringVar(&fields, "f", "", "Comma-separated JSON pointer selectors")
	fs.StringVar(&fields, "fields", "", "Comma-separated JSON pointer selectors")
	fs.StringVar(&formatStr, "format", "space", "Output format: space, tab or array")
	fs.BoolVar(&raw, "raw", false, "Print string values without surrounding quotes")
	fs.BoolVar(&quiet, "q", false, "Suppress the error summary and always exit 0")
	fs.BoolVar(&quiet, "quiet", false, "Suppress the error summary and always exit 0")
	fs.Var(&verbosity, "v", "Echo offending input lines to stderr")
	fs.Var(&verbosity, "verbose", "Echo offending input lines to stderr")
	fs.StringVar(&parserStr, "parser", "auto", "JSON parser backend: auto, simdjson or fastjson")

	if err := fs.Parse(args[2:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, exit.Success(Usage() + "\n")
		}
		return nil, exit.Errorf("Error: %v\n\n%s\n", err, Usage())
	}

	if fields == "" {
		return nil, exit.Errorf("Error: %v\n\n%s\n", ErrNoFields, Usage())
	}
	selectors, err := pointer.ParseList(fields)
	if err != nil {
		return nil, exit.Errorf("Error: invalid field selector: %v\n", err)
	}

	format, err := output.ParseFormat(formatStr)
	if err != nil {
		return nil, exit.Errorf("Error: %v\n\n%s\n", err, Usage())
	}

	backend, err := document.ParseBackend(parserStr)
	if err != nil {
		return nil, exit.Errorf("Error: %v\n\n%s\n", err, Usage())
	}

	cfg := &Config{
		Fields:    selectors,
		Format:    format,
		Raw:       raw,
		Verbosity: int(verbosity),
		Quiet:     quiet,
		Backend:   backend,
		Inputs:    fs.Args(),
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, exit.Errorf("Error: %v\n", err)
	}

	return cfg, nil
}

// normalize applies the flag interactions: quiet wins over verbose, and raw
// has no effect on array formatting.
func (c *Config) normalize() {
	if c.Quiet {
		c.Verbosity = 0
	}
	if c.Raw && c.Format == output.FormatArray {
		c.Raw = false
		c.Warnings = append(c.Warnings, "warning: --raw has no effect when using array formatting")
	}
}

// Validate checks that every input path exists.
func (c *Config) Validate() error {
	for _, name := range c.Inputs {
		if _, err := os.Stat(name); err != nil {
			return fmt.Errorf("input file %s not found: %w", name, err)
		}
	}
	return nil
}

// Usage returns a usage string for the CLI tool.
func Usage() string {
	return `spac - JSON pointer field selection over newline-delimited JSON

Usage: spac select -f <pointer[,pointer...]> [options] [file ...]

Options:
  -f, --fields POINTERS   Comma-separated JSON pointer selectors (required)
      --format FORMAT     Output format: space, tab or array (default: space)
      --raw               Print string values without surrounding quotes
      --parser BACKEND    JSON parser backend: auto, simdjson or fastjson (default: auto)
  -v, --verbose           Echo offending input lines to stderr (repeatable)
  -q, --quiet             Suppress the error summary and always exit 0
  -h, --help              Show this help message

Reads one JSON document per input line from the given files, or from
standard input when no file is given. Records that fail to parse or that
are missing a selected field are dropped and counted; the count is reported
on stderr when the run ends.

Examples:
  spac select -f /id events.ndjson                 # id of every record
  cat events.ndjson | spac select -f /id,/name     # two fields per record
  spac select -f /user/name --format tab a.ndjson b.ndjson
  spac select -f /name --raw events.ndjson         # strings without quotes
  spac select -f /items/0 --format array events.ndjson`
}
