package conformance

import (
	"errors"
	"testing"

	"github.com/nalgeon/be"
)

func TestConformance(t *testing.T) {
	tests, err := LoadAllTests(TestPath)
	if err != nil {
		t.Fatalf("Failed to load tests: %v", err)
	}
	if len(tests) == 0 {
		t.Fatal("No tests loaded")
	}

	runner := NewRunner()
	results := runner.RunAll(tests)

	fileGroups := make(map[string][]TestResult)
	for _, result := range results {
		fileGroups[result.Test.File] = append(fileGroups[result.Test.File], result)
	}

	for file, fileResults := range fileGroups {
		t.Run(file, func(t *testing.T) {
			for _, result := range fileResults {
				t.Run(result.Test.Test.Name, func(t *testing.T) {
					if !result.Passed {
						t.Errorf("Test failed: %v", result.Error)
					}
				})
			}
		})
	}

	t.Logf("\n=== Summary ===\n%s", FormatStats(ComputeStats(results)))
}

func TestExtractTestCases(t *testing.T) {
	md := "# Heading\n\nIntro text.\n\n" +
		"## Test: first\n\n" +
		"```cupl-tree\nprogram:\n  - [STOP]\n```\n\n" +
		"```output\n```\n\n" +
		"### Test: second\n\n" +
		"```config\nfield_width: 10\n```\n\n" +
		"```cupl-tree\nprogram:\n  - [GO, L]\n```\n\n" +
		"```fatal\nlabel L is not defined\n```\n\n" +
		"```warnings\nwarning: one\n```\n"

	cases, err := ExtractTestCases(md)
	be.Err(t, err, nil)
	be.Equal(t, len(cases), 2)

	be.Equal(t, cases[0].Name, "first")
	be.Equal(t, cases[0].Tree, "program:\n  - [STOP]\n")
	out, ok := cases[0].Expects(FenceOutput)
	be.True(t, ok)
	be.Equal(t, out, "")

	be.Equal(t, cases[1].Name, "second")
	be.Equal(t, cases[1].Config, "field_width: 10\n")
	be.Equal(t, len(cases[1].Assertions), 2)
	fatal, ok := cases[1].Expects(FenceFatal)
	be.True(t, ok)
	be.Equal(t, fatal, "label L is not defined\n")
	_, ok = cases[1].Expects(FenceOutput)
	be.True(t, !ok)
}

func TestExtractTestCasesErrors(t *testing.T) {
	tests := []struct {
		name string
		md   string
		want string
	}{
		{"fence outside test", "```output\nx\n```\n", "line 2: output fence found outside of test case"},
		{"unknown fence", "## Test: a\n\n```cupl-tree\nprogram: []\n```\n\n```python\nx\n```\n", "unknown fence language 'python'"},
		{"no tree", "## Test: a\n\n```output\nx\n```\n", "test 'a' has no cupl-tree fence"},
		{"no assertions", "## Test: a\n\n```cupl-tree\nprogram: []\n```\n", "test 'a' has no assertion fences"},
		{"two trees", "## Test: a\n\n```cupl-tree\nx\n```\n\n```cupl-tree\ny\n```\n", "multiple cupl-tree fences"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractTestCases(tt.md)
			be.Err(t, err, tt.want)
		})
	}
}

func TestCheckExpectation(t *testing.T) {
	tc := TestCase{
		Name: "x",
		Assertions: []Assertion{
			{Type: FenceOutput, Content: "  A  \nB\n"},
			{Type: FenceWarnings, Content: "warning: w\n"},
		},
	}
	be.Err(t, checkExpectation(tc, "  A\nB", "[TRACE] EXEC #1 STOP\nwarning: w\n", nil), nil)
	be.Err(t, checkExpectation(tc, "A\nB", "warning: w\n", nil), "output mismatch")
	be.Err(t, checkExpectation(tc, "  A\nB", "", nil), "warnings mismatch")
	be.Err(t, checkExpectation(tc, "  A\nB", "warning: w\n", errors.New("boom")), "unexpected fatal: boom")

	fatal := TestCase{Assertions: []Assertion{{Type: FenceFatal, Content: "boom\n"}}}
	be.Err(t, checkExpectation(fatal, "", "", errors.New("line 2: boom")), nil)
	be.Err(t, checkExpectation(fatal, "", "", nil), "program finished")
	be.Err(t, checkExpectation(fatal, "", "", errors.New("bang")), "fatal mismatch")
}

func TestRunnerReportsBadTree(t *testing.T) {
	res := NewRunner().Run(LoadedTest{Test: TestCase{
		Name:       "bad",
		Tree:       "program:\n  - [FROB]\n",
		Assertions: []Assertion{{Type: FenceOutput}},
	}})
	be.True(t, !res.Passed)
	be.Err(t, res.Error, "program tree")

	stats := ComputeStats([]TestResult{res, {Passed: true}})
	be.Equal(t, FormatStats(stats), "1 passed, 1 failed (2 total)")
}
