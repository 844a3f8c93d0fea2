package dto

// ExecutionRequest is one code submission. Immutable once parsed.
type ExecutionRequest struct {
	Language  string     `json:"language"`
	Code      string     `json:"code"`
	TestCases []TestCase `json:"testCases,omitempty"`
}

// TestCase carries either an in-language boolean assertion, an expected
// output substring, or both. A case with neither is reported as a per-test
// error, not a request failure.
type TestCase struct {
	Description    string `json:"description"`
	Assertion      string `json:"assertion,omitempty"`
	ExpectedOutput string `json:"expectedOutput,omitempty"`
}

// ExecutionOutcome is the response body for one request. Output is the
// truncated combined stdout+stderr of the main run; Success reflects only the
// main run, never the test results.
type ExecutionOutcome struct {
	Output      string       `json:"output"`
	Success     bool         `json:"success"`
	Error       string       `json:"error,omitempty"`
	TestResults []TestResult `json:"testResults,omitempty"`
}

type TestResult struct {
	Description string `json:"description"`
	Passed      bool   `json:"passed"`
	// Output holds the actual value only on failure to aid debugging.
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}
