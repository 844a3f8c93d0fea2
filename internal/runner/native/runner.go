// Package native executes submitted code with the host's language toolchains,
// one isolated temp workspace per request.
package native

import (
	"log/slog"

	"github.com/pkg/errors"

	"github.com/lessonlab/code-runner/internal/repository/dto"
	"github.com/lessonlab/code-runner/internal/runner"
	"github.com/lessonlab/code-runner/pkg/files"
	"github.com/lessonlab/code-runner/pkg/shell"
)

const workspacePrefix = "code-runner-"

// NativeRunner runs code directly on the host. Requests are isolated from
// each other purely by unique workspace directories; within one request every
// phase is sequential.
type NativeRunner struct {
	limits runner.Limits
}

func NewNativeRunner(limits runner.Limits) *NativeRunner {
	return &NativeRunner{limits: limits}
}

func (r *NativeRunner) Run(req *dto.ExecutionRequest) (*dto.ExecutionOutcome, error) {
	if req.Language == "" || req.Code == "" {
		return &dto.ExecutionOutcome{Success: false, Error: dto.ErrMissingLanguageOrCode}, nil
	}
	lang, ok := lookupLanguage(req.Language)
	if !ok {
		return &dto.ExecutionOutcome{Success: false, Error: dto.ErrUnsupportedLanguage}, nil
	}

	ws, err := acquireWorkspace(workspacePrefix)
	if err != nil {
		return nil, err
	}
	defer ws.Release()

	if err := files.WriteText(ws.Path(lang.sourceFile), req.Code); err != nil {
		return nil, errors.Wrap(err, "failed to write source file")
	}

	if lang.compiled() {
		if outcome, err := r.compile(lang, ws); outcome != nil || err != nil {
			return outcome, err
		}
	}

	outcome, err := r.execute(lang, ws)
	if err != nil {
		return nil, err
	}

	if outcome.Success && len(req.TestCases) > 0 {
		outcome.TestResults = r.evaluateTests(lang, ws, req, outcome.Output)
	}

	slog.Debug("execution finished",
		"language", lang.id, "success", outcome.Success, "error", outcome.Error)
	return outcome, nil
}

// compile runs the language's compile step. A nil outcome means compilation
// succeeded and execution should proceed.
func (r *NativeRunner) compile(lang language, ws *workspace) (*dto.ExecutionOutcome, error) {
	cmd := shell.NewCommand(ws.Dir, r.limits.CompileTimeout(), lang.compileCmd[0], lang.compileCmd[1:]...)
	res, err := cmd.Run()
	if err != nil {
		return nil, errors.Wrap(err, "failed to run compiler")
	}
	if res.TimedOut {
		return &dto.ExecutionOutcome{Success: false, Error: dto.ErrCompileTimedOut}, nil
	}
	if res.ExitCode != 0 {
		return &dto.ExecutionOutcome{
			Output:  truncate(res.Output, r.limits.MaxOutput),
			Success: false,
			Error:   dto.ErrCompilation,
		}, nil
	}
	return nil, nil
}

func (r *NativeRunner) execute(lang language, ws *workspace) (*dto.ExecutionOutcome, error) {
	cmd := shell.NewCommand(ws.Dir, r.limits.ExecTimeout, lang.runCmd[0], lang.runCmd[1:]...)
	res, err := cmd.Run()
	if err != nil {
		return nil, errors.Wrap(err, "failed to run program")
	}
	if res.TimedOut {
		return &dto.ExecutionOutcome{Success: false, Error: dto.ErrExecTimedOut}, nil
	}
	outcome := &dto.ExecutionOutcome{
		Output:  truncate(res.Output, r.limits.MaxOutput),
		Success: res.ExitCode == 0,
	}
	if !outcome.Success {
		outcome.Error = dto.ErrRuntime
	}
	return outcome, nil
}

func (r *NativeRunner) evaluateTests(lang language, ws *workspace, req *dto.ExecutionRequest, output string) []dto.TestResult {
	cases := req.TestCases
	if len(cases) > r.limits.MaxTestCases {
		cases = cases[:r.limits.MaxTestCases]
	}

	var strategy testStrategy
	if lang.injectsAssertions() {
		strategy = &sourceInjector{
			lang:       lang,
			ws:         ws,
			code:       req.Code,
			mainOutput: output,
			limits:     r.limits,
		}
	} else {
		strategy = &outputMatcher{output: output}
	}
	return strategy.Evaluate(cases)
}
