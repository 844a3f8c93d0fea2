package models

// TaskRequest is the queued form of an execution request, submitted by the
// grading pipeline. Code may be inlined or referenced by object name in the
// exercise bucket; CodeFile wins only when Code is empty.
type TaskRequest struct {
	Id        string         `json:"id"`
	Language  string         `json:"language"`
	Code      string         `json:"code"`
	CodeFile  string         `json:"code_file,omitempty"`
	TestCases []TaskTestCase `json:"test_cases,omitempty"`
}

type TaskTestCase struct {
	Description    string `json:"description"`
	Assertion      string `json:"assertion,omitempty"`
	ExpectedOutput string `json:"expected_output,omitempty"`
}

type TaskResponse struct {
	Id          string           `json:"id"`
	Output      string           `json:"output"`
	Success     bool             `json:"success"`
	Error       string           `json:"error,omitempty"`
	TestResults []TaskTestResult `json:"test_results,omitempty"`
}

type TaskTestResult struct {
	Description string `json:"description"`
	Passed      bool   `json:"passed"`
	Output      string `json:"output,omitempty"`
	Error       string `json:"error,omitempty"`
}
