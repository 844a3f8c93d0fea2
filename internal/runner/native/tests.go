package native

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lessonlab/code-runner/internal/repository/dto"
	"github.com/lessonlab/code-runner/internal/runner"
	"github.com/lessonlab/code-runner/pkg/files"
	"github.com/lessonlab/code-runner/pkg/shell"
)

// testStrategy evaluates the request's test cases after a successful main
// run. Two implementations exist: black-box substring matching against the
// captured output, and in-language assertion evaluation via source injection.
// Both produce the same result shape and isolate failures per test.
type testStrategy interface {
	Evaluate(cases []dto.TestCase) []dto.TestResult
}

// outputMatcher checks each expected substring against the already-captured
// program output. No re-execution happens.
type outputMatcher struct {
	output string
}

func (m *outputMatcher) Evaluate(cases []dto.TestCase) []dto.TestResult {
	results := make([]dto.TestResult, 0, len(cases))
	for _, tc := range cases {
		res := dto.TestResult{Description: tc.Description}
		if tc.ExpectedOutput == "" {
			res.Error = dto.ErrNoExpectedOutput
		} else if strings.Contains(m.output, tc.ExpectedOutput) {
			res.Passed = true
		} else {
			res.Output = m.output
		}
		results = append(results, res)
	}
	return results
}

// sourceInjector appends an assertion-print statement to the user's source
// and re-runs it through the interpreter, once per test case, each in its own
// workspace file with its own deadline. A test carrying only an expected
// output falls back to matching it against the main run's output.
type sourceInjector struct {
	lang       language
	ws         *workspace
	code       string
	mainOutput string
	limits     runner.Limits
}

func (s *sourceInjector) Evaluate(cases []dto.TestCase) []dto.TestResult {
	results := make([]dto.TestResult, 0, len(cases))
	for i, tc := range cases {
		results = append(results, s.evaluateOne(i, tc))
	}
	return results
}

func (s *sourceInjector) evaluateOne(idx int, tc dto.TestCase) dto.TestResult {
	res := dto.TestResult{Description: tc.Description}

	if tc.Assertion == "" {
		if tc.ExpectedOutput == "" {
			res.Error = dto.ErrNoAssertion
			return res
		}
		if strings.Contains(s.mainOutput, tc.ExpectedOutput) {
			res.Passed = true
		} else {
			res.Output = s.mainOutput
		}
		return res
	}

	name := fmt.Sprintf("test_%d%s", idx, filepath.Ext(s.lang.sourceFile))
	source := s.code + "\n" + s.lang.assertionStatement(tc.Assertion) + "\n"
	if err := files.WriteText(s.ws.Path(name), source); err != nil {
		res.Error = err.Error()
		return res
	}

	args := s.lang.runCmdFor(name)
	run, err := shell.NewCommand(s.ws.Dir, s.limits.TestTimeout, args[0], args[1:]...).Run()
	if err != nil {
		res.Error = err.Error()
		return res
	}
	if run.TimedOut {
		res.Error = dto.ErrTestTimedOut
		return res
	}
	if run.ExitCode != 0 {
		res.Error = dto.ErrRuntime
		res.Output = truncate(run.Output, s.limits.MaxOutput)
		return res
	}

	// The injected print is the last thing the program writes; everything
	// before it is the program's own output.
	verdict := lastLine(run.Output)
	want := s.lang.trueToken
	if tc.ExpectedOutput != "" {
		want = tc.ExpectedOutput
	}
	if verdict == want {
		res.Passed = true
	} else {
		res.Output = verdict
	}
	return res
}

// runCmdFor rewrites the run argv to target an alternate source file.
func (l language) runCmdFor(src string) []string {
	args := make([]string, len(l.runCmd))
	for i, a := range l.runCmd {
		if a == l.sourceFile {
			a = src
		}
		args[i] = a
	}
	return args
}

func lastLine(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
