// Package repl runs an interactive Jolt session over one Evaluator.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"jolt/internal/eval"
	"jolt/internal/history"
)

const Banner = "Jolt REPL v0.1 | type 'exit' to quit"

type Options struct {
	Prompt string
	Banner bool
	// Interactive shows the banner and prompt. Piped input runs silently.
	Interactive bool
	Session     string
	Recorder    history.Recorder
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Run reads one unit of source per line until in is exhausted, the line
// "exit" is read or ctx is done. Cancelling ctx also ends a Run that is
// waiting for input. Every result that is not suppressed is printed; a
// syntax error is printed and the session goes on.
func Run(ctx context.Context, in io.Reader, out io.Writer, opts Options) error {
	if opts.Session == "" {
		opts.Session = uuid.NewString()
	}
	if opts.Interactive && opts.Banner {
		fmt.Fprintf(out, "\n%s\n\n", Banner)
	}

	done := make(chan struct{})
	defer close(done)
	lines, readErr := readLines(in, done)

	ev := eval.New(nil)
	for ctx.Err() == nil {
		if opts.Interactive {
			fmt.Fprint(out, opts.Prompt)
		}

		var line string
		var ok bool
		select {
		case <-ctx.Done():
			if opts.Interactive {
				fmt.Fprintln(out)
			}
			return nil
		case line, ok = <-lines:
		}
		if !ok {
			return <-readErr
		}

		switch strings.TrimSpace(line) {
		case "":
			continue
		case "exit":
			return nil
		}

		results, err := ev.EmitSource(line)
		record(ctx, opts, line, err)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		for _, r := range results {
			fmt.Fprintln(out, r.Unwrap())
		}
	}
	return nil
}

// readLines scans in on its own goroutine so a blocked read never holds
// up cancellation. lines is closed at end of input, after the scan error
// has been sent on the returned error channel. The goroutine stops
// handing out lines once done is closed.
func readLines(in io.Reader, done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		errc <- scanner.Err()
	}()
	return lines, errc
}

func record(ctx context.Context, opts Options, line string, err error) {
	if opts.Recorder == nil {
		return
	}
	entry := history.Entry{Session: opts.Session, Source: line, Failed: err != nil}
	if rerr := opts.Recorder.Record(ctx, entry); rerr != nil {
		log.Printf("repl: %v", rerr)
	}
}
