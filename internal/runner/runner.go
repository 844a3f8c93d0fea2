package runner

import (
	"time"

	"github.com/lessonlab/code-runner/internal/repository/dto"
)

// Runner compiles/interprets and executes one submitted program. A non-nil
// error means the service itself failed; user-code failures come back inside
// the outcome with Success=false.
type Runner interface {
	Run(*dto.ExecutionRequest) (*dto.ExecutionOutcome, error)
}

// Limits bounds every run. Injected at construction so tests can shrink the
// deadlines instead of waiting out the real ones.
type Limits struct {
	// ExecTimeout bounds the main program run.
	ExecTimeout time.Duration
	// CompileFactor scales ExecTimeout for compile steps, which are slower
	// than execution for heavyweight toolchains.
	CompileFactor int
	// TestTimeout bounds each individual test-case re-execution.
	TestTimeout time.Duration
	// MaxOutput caps the response output, in characters.
	MaxOutput int
	// MaxTestCases caps how many test cases run per request; the excess is
	// silently dropped.
	MaxTestCases int
}

func DefaultLimits() Limits {
	return Limits{
		ExecTimeout:   5 * time.Second,
		CompileFactor: 3,
		TestTimeout:   3 * time.Second,
		MaxOutput:     50000,
		MaxTestCases:  20,
	}
}

// CompileTimeout is the deadline for one compile step.
func (l Limits) CompileTimeout() time.Duration {
	return l.ExecTimeout * time.Duration(l.CompileFactor)
}
