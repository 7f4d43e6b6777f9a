package repl

import (
	"strings"
	"testing"

	"github.com/ardnew/tmplgen/gen"
	"github.com/ardnew/tmplgen/lang"
)

func TestLookupCommand(t *testing.T) {
	for _, name := range []string{"help", "list", "funcs", "history", "clear", "quit", "q", "exit"} {
		if _, ok := lookupCommand(name); !ok {
			t.Errorf("expected command %q", name)
		}
	}

	if _, ok := lookupCommand("bogus"); ok {
		t.Error("expected bogus to be unknown")
	}
}

func TestModel_ExecuteCommand(t *testing.T) {
	m := newTestModel(t, testEnv())

	if next, cmd := m.executeCommand("quit"); !next.quitting || cmd == nil {
		t.Error("expected quit to stop the program")
	}

	if next, cmd := m.executeCommand("q"); !next.quitting || cmd == nil {
		t.Error("expected alias q to stop the program")
	}

	if next, cmd := m.executeCommand("bogus"); next.quitting || cmd == nil {
		t.Error("expected unknown command to report an error and continue")
	}

	if _, cmd := m.executeCommand("   "); cmd != nil {
		t.Error("expected blank command to do nothing")
	}
}

func TestModel_Help(t *testing.T) {
	out := newTestModel(t, testEnv()).help()

	for _, want := range []string{"quit, q, exit", "shift+tab", "ctrl+d", "${...}"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in help:\n%s", want, out)
		}
	}
}

func TestModel_ListScope(t *testing.T) {
	m := newTestModel(t, testEnv())

	out := m.listScope()
	for _, name := range []string{"items", "title", "user"} {
		if !strings.Contains(out, name) {
			t.Errorf("expected %q in scope listing:\n%s", name, out)
		}
	}

	if strings.Index(out, "items") > strings.Index(out, "user") {
		t.Errorf("expected sorted scope listing:\n%s", out)
	}

	if out := m.listScope("title", "nope"); !strings.Contains(out, "string Home") ||
		!strings.Contains(out, "unbound") || strings.Contains(out, "items") {
		t.Errorf("unexpected named listing:\n%s", out)
	}

	empty := newTestModel(t, env{gen: gen.New(""), scope: lang.ScopeOf(nil)})
	if out := empty.listScope(); !strings.Contains(out, "no values in scope") {
		t.Errorf("unexpected empty listing %q", out)
	}
}

func TestModel_ListFuncs(t *testing.T) {
	out := newTestModel(t, testEnv()).listFuncs()

	for _, want := range []string{
		"upperCase(value) string",
		"kebabCase(value) string",
		"isEmpty(value) bool",
		"template(path) string",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in function listing:\n%s", want, out)
		}
	}
}

func TestModel_ListHistory(t *testing.T) {
	m := newTestModel(t, testEnv())

	if out := m.listHistory(); !strings.Contains(out, "no history") {
		t.Errorf("unexpected empty history %q", out)
	}

	if err := m.history.Append("user.name", modeEval); err != nil {
		t.Fatal(err)
	}

	if out := m.listHistory(); !strings.Contains(out, "1") || !strings.Contains(out, "user.name") {
		t.Errorf("unexpected history listing %q", out)
	}
}
