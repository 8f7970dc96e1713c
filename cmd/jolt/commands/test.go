package commands

import (
	"context"

	"github.com/pkg/errors"

	"jolt/internal/testrunner"
)

// TestCommand runs every *.jolt program under a directory against its
// *.out golden file.
func TestCommand(ctx context.Context, env Env, args []string) error {
	fs := newFlagSet("test", env)
	verbose := fs.Bool("v", false, "verbose output")
	asJSON := fs.Bool("json", false, "report as JSON")
	filter := fs.String("run", "", "only run programs whose name contains this text")
	failFast := fs.Bool("failfast", false, "stop at the first failure")
	if err := fs.Parse(args); err != nil {
		return err
	}
	dir := "."
	if fs.NArg() > 0 {
		dir = fs.Arg(0)
	}

	cases, err := testrunner.Discover(dir)
	if err != nil {
		return err
	}
	if len(cases) == 0 {
		return errors.Errorf("no %s programs found in %s", testrunner.SourceExt, dir)
	}

	cfg := &testrunner.Config{
		Verbose:      *verbose,
		Filter:       *filter,
		FailFast:     *failFast,
		OutputFormat: "text",
		Color:        env.Interactive,
	}
	if *asJSON {
		cfg.OutputFormat = "json"
	}
	stats := testrunner.NewRunner(cfg, env.Stdout).Run(cases)
	if stats.FailedTests > 0 {
		return errors.Errorf("%d of %d programs failed", stats.FailedTests, stats.TotalTests)
	}
	return nil
}
