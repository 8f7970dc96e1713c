package testrunner

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGoldenPrograms(t *testing.T) {
	cases, err := Discover("testdata")
	if err != nil {
		t.Fatal(err)
	}
	if len(cases) == 0 {
		t.Fatal("no programs found in testdata")
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			if c.Golden == "" {
				t.Skip("no golden file")
			}
			src, err := os.ReadFile(c.Source)
			if err != nil {
				t.Fatal(err)
			}
			want, err := os.ReadFile(c.Golden)
			if err != nil {
				t.Fatal(err)
			}
			if got := Execute(string(src)); got != string(want) {
				t.Errorf("expected:\n%s\ngot:\n%s", want, got)
			}
		})
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "b.jolt", "out 2;")
	write(t, dir, "b.out", "2\n")
	write(t, dir, "a.jolt", "out 1;")
	write(t, dir, "notes.txt", "ignored")
	write(t, dir, "nested/c.jolt", "out 3;")
	write(t, dir, "nested/c.out", "3\n")

	cases, err := Discover(dir)
	if err != nil {
		t.Fatal(err)
	}

	names := make([]string, len(cases))
	for i, c := range cases {
		names[i] = c.Name
	}
	if got, want := strings.Join(names, ","), "a,b,nested/c"; got != want {
		t.Fatalf("expected cases %s, got %s", want, got)
	}
	if cases[0].Golden != "" {
		t.Errorf("a has no golden file, got %q", cases[0].Golden)
	}
	if cases[1].Golden != filepath.Join(dir, "b.out") {
		t.Errorf("unexpected golden path %q", cases[1].Golden)
	}
}

func TestDiscoverMissingDir(t *testing.T) {
	if _, err := Discover(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected an error for a missing directory")
	}
}

func TestRunnerPassesTestdata(t *testing.T) {
	cases, err := Discover("testdata")
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	stats := NewRunner(nil, &out).Run(cases)

	if stats.FailedTests != 0 {
		t.Fatalf("expected no failures, got %d:\n%s", stats.FailedTests, out.String())
	}
	if stats.SkippedTests != 1 {
		t.Errorf("expected the program without a golden file to be skipped, got %d skipped", stats.SkippedTests)
	}
	if stats.TotalTests != len(cases) {
		t.Errorf("expected %d tests, got %d", len(cases), stats.TotalTests)
	}
	if !strings.Contains(out.String(), "All tests passed.") {
		t.Errorf("missing summary line in:\n%s", out.String())
	}
}

func TestRunnerReportsMismatch(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "wrong.jolt", "out 1; out 2;")
	write(t, dir, "wrong.out", "1\n3\n")
	write(t, dir, "right.jolt", "out 1;")
	write(t, dir, "right.out", "1")

	cases, err := Discover(dir)
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	r := NewRunner(&Config{}, &out)
	stats := r.Run(cases)

	if stats.PassedTests != 1 || stats.FailedTests != 1 {
		t.Fatalf("expected 1 passed and 1 failed, got %+v", stats)
	}
	var failed Result
	for _, res := range r.Results() {
		if res.Failed {
			failed = res
		}
	}
	if failed.Name != "wrong" {
		t.Fatalf("expected wrong to fail, got %q", failed.Name)
	}
	if !strings.Contains(failed.Message, "output mismatch") {
		t.Errorf("unexpected message %q", failed.Message)
	}
	if !strings.Contains(out.String(), "Some tests failed.") {
		t.Errorf("missing failure summary in:\n%s", out.String())
	}
	if strings.Contains(out.String(), "\033[") {
		t.Errorf("color escape in uncolored output:\n%s", out.String())
	}
}

func TestRunnerFilterAndFailFast(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "a_bad.jolt", "out 1;")
	write(t, dir, "a_bad.out", "2\n")
	write(t, dir, "b_bad.jolt", "out 1;")
	write(t, dir, "b_bad.out", "2\n")
	write(t, dir, "c_good.jolt", "out 1;")
	write(t, dir, "c_good.out", "1\n")

	cases, err := Discover(dir)
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	stats := NewRunner(&Config{FailFast: true}, &out).Run(cases)
	if stats.TotalTests != 1 || stats.FailedTests != 1 {
		t.Errorf("fail fast should stop after the first failure, got %+v", stats)
	}

	out.Reset()
	stats = NewRunner(&Config{Filter: "good"}, &out).Run(cases)
	if stats.TotalTests != 1 || stats.PassedTests != 1 {
		t.Errorf("filter should select only c_good, got %+v", stats)
	}
}

func TestJSONReporter(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "one.jolt", `out "one";`)
	write(t, dir, "one.out", "one\n")
	write(t, dir, "two.jolt", "out 2;")

	cases, err := Discover(dir)
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	NewRunner(&Config{OutputFormat: "json"}, &out).Run(cases)

	var summary JSONSummary
	if err := json.Unmarshal(out.Bytes(), &summary); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if summary.TotalTests != 2 || summary.PassedTests != 1 || summary.SkippedTests != 1 {
		t.Errorf("unexpected summary %+v", summary)
	}
	if len(summary.Results) != 2 || summary.Results[0].Test != "one" || !summary.Results[0].Passed {
		t.Errorf("unexpected results %+v", summary.Results)
	}
}

func TestExecute(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"only out is printed", "x = 1; x; out x + 1;", "2\n"},
		{"nothing printed", "x = 1;", ""},
		{"if buffer", `if 1 { out "a"; 5; out "b"; }`, "a\nb\n"},
		{"syntax error", "out @;", "SyntaxError: Unexpected token '@'\n  at line 1, column 5\n\n  1 | out @;\n          ^\n"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Execute(test.src); got != test.want {
				t.Errorf("expected %q, got %q", test.want, got)
			}
		})
	}
}

func TestLines(t *testing.T) {
	if got := lines("a\r\nb\n"); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("unexpected lines %q", got)
	}
	if got := lines("\n"); got != nil {
		t.Errorf("expected no lines, got %q", got)
	}
}

func write(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
