package native

import "fmt"

type langKind int

const (
	kindInterpreted langKind = iota
	kindCompiledNative
	kindCompiledBytecode
)

// language is one closed variant of the supported set. Adding a language is
// one constructor plus a registry entry; nothing else branches on the id.
type language struct {
	id         string
	kind       langKind
	sourceFile string
	artifact   string
	compileCmd []string
	runCmd     []string
	// assertPrint wraps a boolean expression in the language's print
	// statement; empty for languages tested by output matching.
	assertPrint string
	trueToken   string
}

func (l language) compiled() bool {
	return l.kind != kindInterpreted
}

// injectsAssertions reports whether test cases are evaluated by re-running
// the source with an appended assertion print, rather than by substring
// matching the captured output.
func (l language) injectsAssertions() bool {
	return l.kind == kindInterpreted
}

func (l language) assertionStatement(expr string) string {
	return fmt.Sprintf(l.assertPrint, expr)
}

func pythonLang() language {
	return language{
		id:          "python",
		kind:        kindInterpreted,
		sourceFile:  "main.py",
		runCmd:      []string{"python3", "main.py"},
		assertPrint: "print(%s)",
		trueToken:   "True",
	}
}

func typescriptLang() language {
	return language{
		id:          "typescript",
		kind:        kindInterpreted,
		sourceFile:  "main.ts",
		runCmd:      []string{"ts-node", "main.ts"},
		assertPrint: "console.log(%s)",
		trueToken:   "true",
	}
}

func swiftLang() language {
	return language{
		id:         "swift",
		kind:       kindCompiledNative,
		sourceFile: "main.swift",
		artifact:   "main",
		compileCmd: []string{"swiftc", "main.swift", "-o", "main"},
		runCmd:     []string{"./main"},
	}
}

func kotlinLang() language {
	return language{
		id:         "kotlin",
		kind:       kindCompiledBytecode,
		sourceFile: "main.kt",
		artifact:   "main.jar",
		compileCmd: []string{"kotlinc", "main.kt", "-include-runtime", "-d", "main.jar"},
		runCmd:     []string{"java", "-jar", "main.jar"},
	}
}

var registry = func() map[string]language {
	langs := []language{pythonLang(), typescriptLang(), swiftLang(), kotlinLang()}
	m := make(map[string]language, len(langs))
	for _, l := range langs {
		m[l.id] = l
	}
	return m
}()

func lookupLanguage(id string) (language, bool) {
	l, ok := registry[id]
	return l, ok
}

// Supported reports whether the language id is on the execution whitelist.
func Supported(id string) bool {
	_, ok := registry[id]
	return ok
}

// Languages returns the whitelisted language ids.
func Languages() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	return ids
}
