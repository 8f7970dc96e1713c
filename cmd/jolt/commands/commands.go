// Package commands implements the jolt subcommands. Each command parses
// its own flags and returns an error for main to report.
package commands

import (
	"context"
	"flag"
	"io"
	"log"
	"os"

	"github.com/pkg/errors"

	"jolt/internal/config"
	"jolt/internal/history"
)

// Env is the outside world a command talks to.
type Env struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Interactive is set when Stdin and Stdout are a terminal.
	Interactive bool
}

func newFlagSet(name string, env Env) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	return fs
}

// singleFile returns the one positional argument a command expects.
func singleFile(fs *flag.FlagSet) (string, error) {
	if fs.NArg() != 1 {
		return "", errors.Errorf("%s: expected one file, got %d arguments", fs.Name(), fs.NArg())
	}
	return fs.Arg(0), nil
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "could not read file")
	}
	return string(data), nil
}

// openHistory opens the configured history store. A nil store means
// recording is disabled. Failing to open is logged, not fatal: the REPL
// still works without history.
func openHistory(ctx context.Context, cfg *config.Config) *history.Store {
	path := cfg.HistoryPath()
	if path == "" {
		return nil
	}
	store, err := history.Open(ctx, path)
	if err != nil {
		log.Printf("history disabled: %v", err)
		return nil
	}
	return store
}

// recorder converts a possibly nil store into a Recorder without the
// typed-nil trap.
func recorder(store *history.Store) history.Recorder {
	if store == nil {
		return nil
	}
	return store
}
