package conformance

import (
	"bytes"
	"fmt"
	"strings"

	"cupl/config"
	"cupl/eval"
	"cupl/progfile"
)

// TestResult represents the outcome of running a single test
type TestResult struct {
	Test   LoadedTest
	Passed bool
	Error  error
}

// Runner executes conformance tests
type Runner struct {
	base config.Config
}

// NewRunner creates a runner using the default configuration
func NewRunner() *Runner {
	return &Runner{base: config.Default()}
}

// Run executes a single test case
func (r *Runner) Run(test LoadedTest) TestResult {
	fail := func(format string, args ...any) TestResult {
		return TestResult{Test: test, Error: fmt.Errorf(format, args...)}
	}

	cfg := r.base
	if test.Test.Config != "" {
		var err error
		if cfg, err = config.Parse([]byte(test.Test.Config)); err != nil {
			return fail("config fence: %w", err)
		}
	}

	prog, syms, err := progfile.Parse([]byte(test.Test.Tree))
	if err != nil {
		return fail("program tree: %w", err)
	}

	var out, diagw bytes.Buffer
	runErr := eval.Run(prog, syms, cfg, &out, &diagw)

	if err := checkExpectation(test.Test, out.String(), diagw.String(), runErr); err != nil {
		return TestResult{Test: test, Error: err}
	}
	return TestResult{Test: test, Passed: true}
}

// RunAll executes all loaded tests
func (r *Runner) RunAll(tests []LoadedTest) []TestResult {
	results := make([]TestResult, len(tests))
	for i, test := range tests {
		results[i] = r.Run(test)
	}
	return results
}

// SummaryStats computes statistics from test results
type SummaryStats struct {
	Total  int
	Passed int
	Failed int
}

// ComputeStats generates statistics from test results
func ComputeStats(results []TestResult) SummaryStats {
	stats := SummaryStats{Total: len(results)}
	for _, r := range results {
		if r.Passed {
			stats.Passed++
		} else {
			stats.Failed++
		}
	}
	return stats
}

// FormatStats returns a human-readable summary
func FormatStats(stats SummaryStats) string {
	return fmt.Sprintf("%d passed, %d failed (%d total)", stats.Passed, stats.Failed, stats.Total)
}

// checkExpectation compares a run against every assertion fence. A test
// without a fatal fence must finish without a fatal error.
func checkExpectation(tc TestCase, out, diagText string, runErr error) error {
	if want, ok := tc.Expects(FenceFatal); ok {
		want = strings.TrimSpace(want)
		if runErr == nil {
			return fmt.Errorf("expected fatal %q, program finished", want)
		}
		if !strings.Contains(runErr.Error(), want) {
			return fmt.Errorf("fatal mismatch:\n  want: %s\n  got:  %s", want, runErr)
		}
	} else if runErr != nil {
		return fmt.Errorf("unexpected fatal: %w", runErr)
	}

	if want, ok := tc.Expects(FenceOutput); ok {
		if got, want := normalize(out), normalize(want); got != want {
			return fmt.Errorf("output mismatch:\n--- want\n%s\n--- got\n%s", want, got)
		}
	}

	if want, ok := tc.Expects(FenceWarnings); ok {
		if got, want := normalize(warningLines(diagText)), normalize(want); got != want {
			return fmt.Errorf("warnings mismatch:\n--- want\n%s\n--- got\n%s", want, got)
		}
	}
	return nil
}

// warningLines drops trace lines from the diagnostic stream
func warningLines(diagText string) string {
	var kept []string
	for _, line := range strings.Split(diagText, "\n") {
		if strings.HasPrefix(line, "warning: ") {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// normalize trims trailing blanks from every line and trailing newlines
// from the text
func normalize(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}
