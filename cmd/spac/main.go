package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mit-ccc/spac/internal/config"
	"github.com/mit-ccc/spac/internal/exit"
	"github.com/mit-ccc/spac/internal/pipeline"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	os.Exit(run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, res := config.Parse(args)
	if res != nil {
		return finish(res, stdout, stderr)
	}

	for _, warning := range cfg.Warnings {
		fmt.Fprintln(stderr, warning)
	}

	r, res := pipeline.New(cfg)
	if res != nil {
		return finish(res, stdout, stderr)
	}
	r.SetInput(stdin)
	r.SetOutput(stdout)
	r.SetErrorOutput(stderr)

	return r.Run(ctx)
}

// finish routes a pending exit result to the injected streams instead of
// the process-wide ones, keeping run testable end to end.
func finish(res *exit.Result, stdout, stderr io.Writer) int {
	w := stderr
	if res.ExitCode == 0 {
		w = stdout
	}
	fmt.Fprint(w, res.Message)
	return res.ExitCode
}
