package engine

import (
	"errors"
	"testing"

	"github.com/ardnew/freshmark/props"
)

func TestEvaluate_PropertyVariable(t *testing.T) {
	e := New(props.Table{"version": "1.2.3"})

	got, err := e.Evaluate("s", `"v" + version`, "")
	if err != nil {
		t.Fatalf("evaluate error: %v", err)
	}

	if got != "v1.2.3" {
		t.Errorf("expected v1.2.3, got %q", got)
	}
}

func TestEvaluate_DottedKeyViaProps(t *testing.T) {
	e := New(props.Table{"project.version": "4.5"})

	got, err := e.Evaluate("s", `props["project.version"]`, "")
	if err != nil {
		t.Fatalf("evaluate error: %v", err)
	}

	if got != "4.5" {
		t.Errorf("expected 4.5, got %q", got)
	}
}

func TestEvaluate_Input(t *testing.T) {
	e := New(nil)

	got, err := e.Evaluate("s", "input", "\nprior output\n")
	if err != nil {
		t.Fatalf("evaluate error: %v", err)
	}

	if got != "\nprior output\n" {
		t.Errorf("expected prior output, got %q", got)
	}
}

func TestEvaluate_Builtins(t *testing.T) {
	e := New(props.Table{"url": "http://example.com"})

	got, err := e.Evaluate("s", `link("home", url)`, "")
	if err != nil {
		t.Fatalf("evaluate error: %v", err)
	}

	if got != "[home](http://example.com)" {
		t.Errorf("unexpected result: %q", got)
	}
}

func TestEvaluate_CompileError(t *testing.T) {
	e := New(nil)

	_, err := e.Evaluate("s", "noSuchName + 1", "")
	if !errors.Is(err, ErrCompileProgram) {
		t.Errorf("expected ErrCompileProgram, got %v", err)
	}
}

func TestEvaluate_ResultType(t *testing.T) {
	e := New(nil)

	_, err := e.Evaluate("s", "1 + 2", "")
	if !errors.Is(err, ErrResultType) {
		t.Errorf("expected ErrResultType, got %v", err)
	}
}

func TestEvaluate_SetupHook(t *testing.T) {
	var sections []string

	e := New(nil, WithSetup(func(section string, env map[string]any) {
		sections = append(sections, section)
		env["extra"] = "hooked"
	}))

	got, err := e.Evaluate("alpha", "extra", "")
	if err != nil {
		t.Fatalf("evaluate error: %v", err)
	}

	if got != "hooked" {
		t.Errorf("expected hooked, got %q", got)
	}

	// The hook sees a fresh environment per evaluation.
	if _, err := e.Evaluate("beta", "extra", ""); err != nil {
		t.Fatalf("evaluate error: %v", err)
	}

	if len(sections) != 2 || sections[0] != "alpha" || sections[1] != "beta" {
		t.Errorf("unexpected hook sections: %v", sections)
	}
}

func TestEvaluate_NonIdentifierKeysHidden(t *testing.T) {
	e := New(props.Table{"project.version": "4.5", "9bad": "x"})

	env := e.environ("s", "")

	if _, exists := env["project.version"]; exists {
		t.Errorf("dotted key leaked into top-level environment")
	}

	if _, exists := env["9bad"]; exists {
		t.Errorf("digit-prefixed key leaked into top-level environment")
	}
}
