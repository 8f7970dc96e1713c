package commands

import (
	"context"
	"fmt"

	"jolt/internal/eval"
)

// RunCommand executes a file and prints the value of every out statement,
// one per line. A syntax error is returned as is so main can print the
// diagnostic without decoration.
func RunCommand(ctx context.Context, env Env, args []string) error {
	fs := newFlagSet("run", env)
	if err := fs.Parse(args); err != nil {
		return err
	}
	file, err := singleFile(fs)
	if err != nil {
		return err
	}
	src, err := readSource(file)
	if err != nil {
		return err
	}

	results, err := eval.New(nil).EmitFile(src, file)
	if err != nil {
		return err
	}
	for _, r := range results {
		if r.IsOutput() {
			fmt.Fprintln(env.Stdout, r.Unwrap())
		}
	}
	return nil
}
