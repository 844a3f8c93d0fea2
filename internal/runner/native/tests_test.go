package native

import (
	"testing"

	"github.com/lessonlab/code-runner/internal/repository/dto"
	"github.com/lessonlab/code-runner/internal/runner"
)

func TestOutputMatcher(t *testing.T) {
	m := &outputMatcher{output: "result: 42\ndone\n"}

	tests := []struct {
		name       string
		tc         dto.TestCase
		passed     bool
		wantErr    string
		wantOutput string
	}{
		{
			name:   "substring match",
			tc:     dto.TestCase{Description: "finds 42", ExpectedOutput: "42"},
			passed: true,
		},
		{
			name:       "no match",
			tc:         dto.TestCase{Description: "wants 43", ExpectedOutput: "43"},
			passed:     false,
			wantOutput: "result: 42\ndone\n",
		},
		{
			name:    "missing expectation",
			tc:      dto.TestCase{Description: "malformed"},
			passed:  false,
			wantErr: dto.ErrNoExpectedOutput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := m.Evaluate([]dto.TestCase{tt.tc})
			if len(results) != 1 {
				t.Fatalf("expected one result, got %d", len(results))
			}
			res := results[0]
			if res.Passed != tt.passed {
				t.Fatalf("passed = %v, want %v", res.Passed, tt.passed)
			}
			if res.Error != tt.wantErr {
				t.Fatalf("error = %q, want %q", res.Error, tt.wantErr)
			}
			if res.Output != tt.wantOutput {
				t.Fatalf("output = %q, want %q", res.Output, tt.wantOutput)
			}
			if res.Description != tt.tc.Description {
				t.Fatalf("description = %q, want %q", res.Description, tt.tc.Description)
			}
		})
	}
}

func TestOutputMatcher_SuccessOmitsOutput(t *testing.T) {
	m := &outputMatcher{output: "hello\n"}
	res := m.Evaluate([]dto.TestCase{{Description: "greets", ExpectedOutput: "hello"}})
	if !res[0].Passed {
		t.Fatal("expected pass")
	}
	if res[0].Output != "" {
		t.Fatalf("passing result must omit the actual output, got %q", res[0].Output)
	}
}

func TestSourceInjector_ExpectedOutputFallback(t *testing.T) {
	py, _ := lookupLanguage("python")
	inj := &sourceInjector{
		lang:       py,
		code:       "print('skipped')",
		mainOutput: "ready: 7\n",
		limits:     runner.DefaultLimits(),
	}

	// without an assertion the case is matched against the main output,
	// no re-execution
	results := inj.Evaluate([]dto.TestCase{
		{Description: "fallback pass", ExpectedOutput: "ready: 7"},
		{Description: "fallback fail", ExpectedOutput: "ready: 8"},
		{Description: "malformed"},
	})
	if len(results) != 3 {
		t.Fatalf("expected three results, got %d", len(results))
	}
	if !results[0].Passed {
		t.Fatalf("expected fallback pass, got %+v", results[0])
	}
	if results[1].Passed || results[1].Output != "ready: 7\n" {
		t.Fatalf("expected fallback failure with actual output, got %+v", results[1])
	}
	if results[2].Passed || results[2].Error != dto.ErrNoAssertion {
		t.Fatalf("expected malformed-case error, got %+v", results[2])
	}
}

func TestEvaluateTests_CapsTestCount(t *testing.T) {
	limits := runner.DefaultLimits()
	limits.MaxTestCases = 2
	r := NewNativeRunner(limits)

	swift, _ := lookupLanguage("swift")
	cases := make([]dto.TestCase, 6)
	for i := range cases {
		cases[i] = dto.TestCase{Description: "case", ExpectedOutput: "x"}
	}

	results := r.evaluateTests(swift, nil, &dto.ExecutionRequest{TestCases: cases}, "x")
	if len(results) != 2 {
		t.Fatalf("expected the cap to hold, got %d results", len(results))
	}
}

func TestLastLine(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{text: "True\n", want: "True"},
		{text: "noise\nmore noise\ntrue\n", want: "true"},
		{text: "", want: ""},
		{text: "  padded  \n", want: "padded"},
	}
	for _, tt := range tests {
		if got := lastLine(tt.text); got != tt.want {
			t.Fatalf("lastLine(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
