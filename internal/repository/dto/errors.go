package dto

// Client-visible error classifications. These strings are part of the wire
// contract; frontends match on them.
const (
	ErrInvalidJSON           = "Invalid JSON body"
	ErrMissingLanguageOrCode = "Missing language or code"
	ErrUnsupportedLanguage   = "Unsupported language for server execution"

	ErrCompilation     = "Compilation error"
	ErrCompileTimedOut = "Compilation timed out"
	ErrRuntime         = "Runtime error"
	ErrExecTimedOut    = "Execution timed out"

	ErrTestTimedOut     = "Test timed out"
	ErrNoExpectedOutput = "No expected output defined"
	ErrNoAssertion      = "No assertion defined"
)
