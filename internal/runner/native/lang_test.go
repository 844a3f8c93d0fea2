package native

import (
	"reflect"
	"testing"
)

func TestRegistry_Whitelist(t *testing.T) {
	for _, id := range []string{"python", "typescript", "swift", "kotlin"} {
		if !Supported(id) {
			t.Fatalf("expected %s on the whitelist", id)
		}
	}
	for _, id := range []string{"ruby", "", "Python", "go"} {
		if Supported(id) {
			t.Fatalf("did not expect %s on the whitelist", id)
		}
	}
	if len(Languages()) != 4 {
		t.Fatalf("unexpected whitelist size: %d", len(Languages()))
	}
}

func TestLanguage_Shapes(t *testing.T) {
	tests := []struct {
		id       string
		compiled bool
		injects  bool
	}{
		{id: "python", compiled: false, injects: true},
		{id: "typescript", compiled: false, injects: true},
		{id: "swift", compiled: true, injects: false},
		{id: "kotlin", compiled: true, injects: false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			lang, ok := lookupLanguage(tt.id)
			if !ok {
				t.Fatalf("language %s not registered", tt.id)
			}
			if lang.compiled() != tt.compiled {
				t.Fatalf("compiled() = %v, want %v", lang.compiled(), tt.compiled)
			}
			if lang.injectsAssertions() != tt.injects {
				t.Fatalf("injectsAssertions() = %v, want %v", lang.injectsAssertions(), tt.injects)
			}
			if tt.compiled && len(lang.compileCmd) == 0 {
				t.Fatal("compiled language without compile command")
			}
			if len(lang.runCmd) == 0 {
				t.Fatal("language without run command")
			}
		})
	}
}

func TestLanguage_AssertionStatement(t *testing.T) {
	py, _ := lookupLanguage("python")
	if got := py.assertionStatement("1 + 1 == 2"); got != "print(1 + 1 == 2)" {
		t.Fatalf("unexpected python assertion statement: %q", got)
	}
	ts, _ := lookupLanguage("typescript")
	if got := ts.assertionStatement("add(2, 3) === 5"); got != "console.log(add(2, 3) === 5)" {
		t.Fatalf("unexpected typescript assertion statement: %q", got)
	}
}

func TestLanguage_RunCmdFor(t *testing.T) {
	py, _ := lookupLanguage("python")
	got := py.runCmdFor("test_0.py")
	want := []string{"python3", "test_0.py"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("runCmdFor = %v, want %v", got, want)
	}
	// the original argv must stay untouched
	if py.runCmd[1] != "main.py" {
		t.Fatalf("runCmdFor mutated the registry argv: %v", py.runCmd)
	}
}
