// Package pipeline wires the record stream together: split, parse, extract,
// render, write, tally. Per-record failures are absorbed into the tally and
// never stop the stream; only configuration and output I/O failures are
// fatal.
package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/mit-ccc/spac/internal/config"
	"github.com/mit-ccc/spac/internal/document"
	"github.com/mit-ccc/spac/internal/exit"
	"github.com/mit-ccc/spac/internal/extract"
	"github.com/mit-ccc/spac/internal/output"
	"github.com/mit-ccc/spac/internal/split"
)

const outputBufferSize = 64 * 1024

// Tally counts the run's dropped records. It is the only state that
// persists across records and is read once at the end of the run.
type Tally struct {
	Parse int
	Miss  int
}

// Total returns the combined drop count.
func (t Tally) Total() int {
	return t.Parse + t.Miss
}

// Runner processes the configured inputs as one logical record stream.
type Runner struct {
	cfg       *config.Config
	parser    document.Parser
	extractor *extract.Extractor
	renderer  *output.Renderer
	tally     Tally

	input     io.Reader
	output    io.Writer
	errOutput io.Writer
}

// New builds a Runner from a validated configuration.
func New(cfg *config.Config) (*Runner, *exit.Result) {
	parser, err := document.NewParser(cfg.Backend)
	if err != nil {
		return nil, exit.Errorf("Error: %v\n", err)
	}

	return &Runner{
		cfg:       cfg,
		parser:    parser,
		extractor: extract.New(cfg.Fields),
		renderer:  output.NewRenderer(cfg.Format, cfg.Raw),
		input:     os.Stdin,
		output:    os.Stdout,
		errOutput: os.Stderr,
	}, nil
}

// SetInput replaces the stream read when no input files are configured.
func (r *Runner) SetInput(in io.Reader) {
	r.input = in
}

func (r *Runner) SetOutput(w io.Writer) {
	r.output = w
}

func (r *Runner) SetErrorOutput(w io.Writer) {
	r.errOutput = w
}

// Tally returns the drop counts of the last Run.
func (r *Runner) Tally() Tally {
	return r.tally
}

func (r *Runner) payloadWriter() io.Writer {
	if r.output == nil {
		return io.Discard
	}
	return r.output
}

func (r *Runner) errorWriter() io.Writer {
	if r.errOutput == nil {
		return io.Discard
	}
	return r.errOutput
}

func (r *Runner) logf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.errorWriter(), format, args...)
}

// echo reports one dropped record when verbose mode is on. The raw line is
// echoed byte for byte.
func (r *Runner) echo(reason string, record []byte) {
	if r.cfg.Verbosity > 0 {
		r.logf("%s on line: %s\n", reason, record)
	}
}

// Run processes all inputs and returns the process exit code: 0 on a clean
// run or in quiet mode, 1 when records were dropped or the run failed.
func (r *Runner) Run(ctx context.Context) int {
	r.tally = Tally{}

	out := bufio.NewWriterSize(r.payloadWriter(), outputBufferSize)
	// Interactive runs flush per record so output appears as it happens.
	flushEach := lineBuffered(r.output)

	err := r.processAll(ctx, out, flushEach)
	if flushErr := out.Flush(); err == nil && flushErr != nil {
		err = fmt.Errorf("write output: %w", flushErr)
	}
	if err != nil {
		r.logf("Error: %v\n", err)
		return 1
	}

	if r.tally.Total() == 0 {
		return 0
	}
	if r.cfg.Quiet {
		return 0
	}
	r.logf("%d parser error(s) -- use -v for more info\n", r.tally.Total())
	return 1
}

func (r *Runner) processAll(ctx context.Context, out *bufio.Writer, flushEach bool) error {
	if len(r.cfg.Inputs) == 0 {
		return r.processStream(ctx, r.input, out, flushEach)
	}

	for _, name := range r.cfg.Inputs {
		f, err := os.Open(name)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		err = r.processStream(ctx, f, out, flushEach)
		_ = f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// processStream runs the per-record loop over one input. Each record is
// handled to completion before the next one is read, so memory stays
// bounded by one record plus the shared configuration.
func (r *Runner) processStream(ctx context.Context, in io.Reader, out *bufio.Writer, flushEach bool) error {
	splitter := split.New(in)
	for splitter.Scan() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("interrupted: %w", err)
		}

		record := splitter.Bytes()
		if len(record) == 0 {
			continue
		}

		root, err := r.parser.Parse(record)
		if err != nil {
			r.tally.Parse++
			r.echo("parse error", record)
			continue
		}

		result := r.extractor.Extract(root)
		if !result.Complete() {
			r.tally.Miss++
			r.echo("missing field", record)
			continue
		}

		rendered, err := r.renderer.Render(result.Values)
		if err != nil {
			// A value that parsed but cannot be rendered counts as a
			// parse failure so records stay fully accounted for.
			r.tally.Parse++
			r.echo("parse error", record)
			continue
		}

		if _, err := out.Write(rendered); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		if flushEach {
			if err := out.Flush(); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		}
	}

	if err := splitter.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

func lineBuffered(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
