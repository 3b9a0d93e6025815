package conformance

// Fence languages recognised inside a test case
const (
	FenceTree     = "cupl-tree" // program tree (progfile YAML), required
	FenceConfig   = "config"    // config overrides (config YAML)
	FenceOutput   = "output"    // expected program output
	FenceWarnings = "warnings"  // expected warning lines, in order
	FenceFatal    = "fatal"     // expected fatal message (substring)
)

// Assertion is one expectation fence
type Assertion struct {
	Type    string
	Content string
	Line    int
}

// TestCase is a single "Test: <name>" section of a markdown file
type TestCase struct {
	Name       string
	Tree       string
	Config     string
	Assertions []Assertion
}

// LoadedTest represents a test with its source file path
type LoadedTest struct {
	File string
	Test TestCase
}

// Expects returns the content of the first assertion of the given type
func (tc *TestCase) Expects(fence string) (string, bool) {
	for _, a := range tc.Assertions {
		if a.Type == fence {
			return a.Content, true
		}
	}
	return "", false
}

func isAssertionFence(language string) bool {
	return language == FenceOutput || language == FenceWarnings || language == FenceFatal
}
