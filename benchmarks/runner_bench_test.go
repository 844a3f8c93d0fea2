package benchmarks

import (
	"os/exec"
	"testing"

	"github.com/lessonlab/code-runner/internal/repository/dto"
	"github.com/lessonlab/code-runner/internal/runner"
	"github.com/lessonlab/code-runner/internal/runner/native"
)

func requirePython(b *testing.B) {
	b.Helper()
	if _, err := exec.LookPath("python3"); err != nil {
		b.Skip("python3 not available")
	}
}

func BenchmarkPythonHelloWorld(b *testing.B) {
	requirePython(b)
	r := native.NewNativeRunner(runner.DefaultLimits())
	req := &dto.ExecutionRequest{Language: "python", Code: `print("hello")`}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		outcome, err := r.Run(req)
		if err != nil {
			b.Fatalf("Run failed: %v", err)
		}
		if !outcome.Success {
			b.Fatalf("unexpected failure: %s", outcome.Error)
		}
	}
}

func BenchmarkPythonWithAssertions(b *testing.B) {
	requirePython(b)
	r := native.NewNativeRunner(runner.DefaultLimits())
	req := &dto.ExecutionRequest{
		Language: "python",
		Code:     "def add(a, b):\n    return a + b",
		TestCases: []dto.TestCase{
			{Description: "adds", Assertion: "add(2, 3) == 5"},
		},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := r.Run(req); err != nil {
			b.Fatalf("Run failed: %v", err)
		}
	}
}

func BenchmarkParallelRequests(b *testing.B) {
	requirePython(b)
	r := native.NewNativeRunner(runner.DefaultLimits())

	b.RunParallel(func(pb *testing.PB) {
		req := &dto.ExecutionRequest{Language: "python", Code: "print(7 * 6)"}
		for pb.Next() {
			outcome, err := r.Run(req)
			if err != nil {
				b.Fatalf("Run failed: %v", err)
			}
			if !outcome.Success {
				b.Fatalf("unexpected failure: %s", outcome.Error)
			}
		}
	})
}
