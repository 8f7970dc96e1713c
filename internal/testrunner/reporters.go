package testrunner

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// TextReporter prints human-readable results.
type TextReporter struct {
	w       io.Writer
	verbose bool
	color   bool
}

func NewTextReporter(w io.Writer, verbose, color bool) *TextReporter {
	return &TextReporter{w: w, verbose: verbose, color: color}
}

func (r *TextReporter) paint(code, text string) string {
	if !r.color {
		return text
	}
	return code + text + "\033[0m"
}

func (r *TextReporter) TestPassed(result Result) {
	fmt.Fprintf(r.w, "%s %s (%v)\n", r.paint("\033[32m", "✓"), result.Name, result.Duration.Round(time.Microsecond))
	if r.verbose && result.Message != "" {
		fmt.Fprintf(r.w, "    %s\n", result.Message)
	}
}

func (r *TextReporter) TestFailed(result Result) {
	fmt.Fprintf(r.w, "%s %s (%v)\n", r.paint("\033[31m", "✗"), result.Name, result.Duration.Round(time.Microsecond))
	if result.Error != nil {
		fmt.Fprintf(r.w, "    Error: %v\n", result.Error)
	}
	if result.Message != "" {
		for _, line := range strings.Split(result.Message, "\n") {
			fmt.Fprintf(r.w, "    %s\n", line)
		}
	}
}

func (r *TextReporter) TestSkipped(result Result) {
	fmt.Fprintf(r.w, "%s %s (skipped: %s)\n", r.paint("\033[33m", "⊘"), result.Name, result.Message)
}

func (r *TextReporter) Summary(stats *Stats) {
	rule := strings.Repeat("=", 40)
	fmt.Fprintf(r.w, "\n%s\n", rule)
	fmt.Fprintf(r.w, "Total:   %d\n", stats.TotalTests)
	fmt.Fprintf(r.w, "Passed:  %d\n", stats.PassedTests)
	if stats.FailedTests > 0 {
		fmt.Fprintf(r.w, "Failed:  %d\n", stats.FailedTests)
	}
	if stats.SkippedTests > 0 {
		fmt.Fprintf(r.w, "Skipped: %d\n", stats.SkippedTests)
	}
	fmt.Fprintf(r.w, "Time:    %v\n", stats.TotalTime.Round(time.Microsecond))
	fmt.Fprintf(r.w, "%s\n", rule)

	if stats.FailedTests == 0 {
		fmt.Fprintln(r.w, r.paint("\033[32m", "All tests passed."))
	} else {
		fmt.Fprintln(r.w, r.paint("\033[31m", "Some tests failed."))
	}
}

// JSONReporter collects results and writes them as one document in
// Summary.
type JSONReporter struct {
	w       io.Writer
	results []JSONResult
}

type JSONResult struct {
	Test     string        `json:"test"`
	File     string        `json:"file"`
	Passed   bool          `json:"passed"`
	Failed   bool          `json:"failed"`
	Skipped  bool          `json:"skipped"`
	Duration time.Duration `json:"duration"`
	Error    string        `json:"error,omitempty"`
	Message  string        `json:"message,omitempty"`
}

type JSONSummary struct {
	Results      []JSONResult  `json:"results"`
	TotalTests   int           `json:"total_tests"`
	PassedTests  int           `json:"passed_tests"`
	FailedTests  int           `json:"failed_tests"`
	SkippedTests int           `json:"skipped_tests"`
	TotalTime    time.Duration `json:"total_time"`
}

func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{w: w, results: make([]JSONResult, 0)}
}

func (r *JSONReporter) add(result Result) {
	jr := JSONResult{
		Test:     result.Name,
		File:     result.File,
		Passed:   result.Passed,
		Failed:   result.Failed,
		Skipped:  result.Skipped,
		Duration: result.Duration,
		Message:  result.Message,
	}
	if result.Error != nil {
		jr.Error = result.Error.Error()
	}
	r.results = append(r.results, jr)
}

func (r *JSONReporter) TestPassed(result Result)  { r.add(result) }
func (r *JSONReporter) TestFailed(result Result)  { r.add(result) }
func (r *JSONReporter) TestSkipped(result Result) { r.add(result) }

func (r *JSONReporter) Summary(stats *Stats) {
	summary := JSONSummary{
		Results:      r.results,
		TotalTests:   stats.TotalTests,
		PassedTests:  stats.PassedTests,
		FailedTests:  stats.FailedTests,
		SkippedTests: stats.SkippedTests,
		TotalTime:    stats.TotalTime,
	}

	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		fmt.Fprintf(r.w, "Error generating JSON output: %v\n", err)
	}
}
