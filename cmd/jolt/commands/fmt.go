package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"jolt/internal/formatter"
	"jolt/internal/parser"
)

// FmtCommand prints a file in canonical form, or rewrites it with -w.
// Files with syntax errors are left alone.
func FmtCommand(ctx context.Context, env Env, args []string) error {
	fs := newFlagSet("fmt", env)
	write := fs.Bool("w", false, "write result to the file instead of stdout")
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

	prog, err := parser.ParseFile(src, file)
	if err != nil {
		return err
	}
	formatted := formatter.Format(prog)

	if !*write {
		fmt.Fprint(env.Stdout, formatted)
		return nil
	}
	if formatted == src {
		return nil
	}
	info, err := os.Stat(file)
	if err != nil {
		return errors.Wrap(err, "fmt")
	}
	if err := os.WriteFile(file, []byte(formatted), info.Mode().Perm()); err != nil {
		return errors.Wrap(err, "error writing formatted file")
	}
	fmt.Fprintf(env.Stdout, "%s: formatted\n", file)
	return nil
}
