// Package testrunner runs Jolt programs against golden output files.
//
// A case is a NAME.jolt program with a sibling NAME.out file holding the
// exact text the program prints in file mode. A program that fails to
// parse prints its diagnostic instead, so syntax errors can be pinned by
// golden files too.
package testrunner

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	"jolt/internal/eval"
)

const (
	SourceExt = ".jolt"
	GoldenExt = ".out"
)

// Case is one golden program. Golden is empty when the program has no
// .out file; such cases are reported as skipped.
type Case struct {
	Name   string
	Source string
	Golden string
}

// Result is the outcome of a single case.
type Result struct {
	Name     string
	File     string
	Passed   bool
	Failed   bool
	Skipped  bool
	Duration time.Duration
	Error    error
	Message  string
}

type Stats struct {
	TotalTests   int
	PassedTests  int
	FailedTests  int
	SkippedTests int
	TotalTime    time.Duration
}

// Config holds options for a run.
type Config struct {
	Verbose      bool
	Filter       string
	FailFast     bool
	OutputFormat string // "text" or "json"
	Color        bool
}

// Reporter receives results as they are produced.
type Reporter interface {
	TestPassed(result Result)
	TestFailed(result Result)
	TestSkipped(result Result)
	Summary(stats *Stats)
}

type Runner struct {
	config   *Config
	reporter Reporter
	stats    *Stats
	results  []Result
}

// NewRunner returns a Runner reporting to w in the configured format.
func NewRunner(config *Config, w io.Writer) *Runner {
	if config == nil {
		config = &Config{OutputFormat: "text"}
	}

	var reporter Reporter
	switch config.OutputFormat {
	case "json":
		reporter = NewJSONReporter(w)
	default:
		reporter = NewTextReporter(w, config.Verbose, config.Color)
	}

	return &Runner{
		config:   config,
		reporter: reporter,
		stats:    &Stats{},
	}
}

// Discover walks dir and returns every program under it, sorted by name.
func Discover(dir string) ([]Case, error) {
	var cases []Case
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != SourceExt {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = path
		}
		c := Case{
			Name:   filepath.ToSlash(strings.TrimSuffix(rel, SourceExt)),
			Source: path,
		}
		golden := strings.TrimSuffix(path, SourceExt) + GoldenExt
		if _, err := os.Stat(golden); err == nil {
			c.Golden = golden
		}
		cases = append(cases, c)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "discover %s", dir)
	}
	sort.Slice(cases, func(i, j int) bool { return cases[i].Name < cases[j].Name })
	return cases, nil
}

// Run executes cases in order and reports a summary.
func (r *Runner) Run(cases []Case) *Stats {
	start := time.Now()

	for _, c := range cases {
		if !r.shouldRun(c) {
			continue
		}
		result := r.runCase(c)
		r.record(result)
		if r.config.FailFast && result.Failed {
			break
		}
	}

	r.stats.TotalTime = time.Since(start)
	r.reporter.Summary(r.stats)
	return r.stats
}

// Results returns every result recorded so far.
func (r *Runner) Results() []Result {
	return r.results
}

func (r *Runner) runCase(c Case) (result Result) {
	result = Result{Name: c.Name, File: c.Source}
	if c.Golden == "" {
		result.Skipped = true
		result.Message = "no " + GoldenExt + " file"
		return result
	}

	start := time.Now()
	defer func() { result.Duration = time.Since(start) }()

	src, err := os.ReadFile(c.Source)
	if err != nil {
		result.Failed = true
		result.Error = errors.Wrap(err, "read program")
		return result
	}
	want, err := os.ReadFile(c.Golden)
	if err != nil {
		result.Failed = true
		result.Error = errors.Wrap(err, "read golden file")
		return result
	}

	got := Execute(string(src))
	if diff := cmp.Diff(lines(string(want)), lines(got)); diff != "" {
		result.Failed = true
		result.Message = "output mismatch (-want +got):\n" + strings.TrimRight(diff, "\n")
		return result
	}
	result.Passed = true
	return result
}

func (r *Runner) record(result Result) {
	r.results = append(r.results, result)
	r.stats.TotalTests++
	switch {
	case result.Skipped:
		r.stats.SkippedTests++
		r.reporter.TestSkipped(result)
	case result.Failed:
		r.stats.FailedTests++
		r.reporter.TestFailed(result)
	default:
		r.stats.PassedTests++
		r.reporter.TestPassed(result)
	}
}

func (r *Runner) shouldRun(c Case) bool {
	if r.config.Filter == "" {
		return true
	}
	return strings.Contains(c.Name, r.config.Filter)
}

// Execute runs src the way file mode does and returns what it prints:
// each out value on its own line, or the syntax error.
func Execute(src string) string {
	results, err := eval.New(nil).EmitSource(src)
	if err != nil {
		return err.Error() + "\n"
	}
	var b strings.Builder
	for _, res := range results {
		if res.IsOutput() {
			b.WriteString(res.Unwrap().String())
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// lines splits text for diffing. A trailing newline and CRLF endings do
// not count as differences.
func lines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
