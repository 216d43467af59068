package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func resolveFlag(t *testing.T, r kong.Resolver, name string) any {
	t.Helper()

	flag := &kong.Flag{Value: &kong.Value{Name: name}}

	v, err := r.Resolve(nil, nil, flag)
	if err != nil {
		t.Fatalf("resolve %q: %v", name, err)
	}

	return v
}

func TestResolve(t *testing.T) {
	conf := `
log-level: debug
log:
  format: json
intron: "<!--#"
`

	r, err := resolve(strings.NewReader(conf))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if got := resolveFlag(t, r, "log-level"); got != "debug" {
		t.Errorf("expected log-level debug, got %v", got)
	}

	// Nested mappings flatten with hyphens to match flag names.
	if got := resolveFlag(t, r, "log-format"); got != "json" {
		t.Errorf("expected log-format json, got %v", got)
	}

	if got := resolveFlag(t, r, "intron"); got != "<!--#" {
		t.Errorf("expected intron marker, got %v", got)
	}

	if got := resolveFlag(t, r, "absent"); got != nil {
		t.Errorf("expected nil for absent flag, got %v", got)
	}
}

func TestResolveInvalidYAML(t *testing.T) {
	r, err := resolve(strings.NewReader("{not: [valid"))
	if err != nil {
		t.Fatalf("expected invalid config to be ignored, got %v", err)
	}

	if got := resolveFlag(t, r, "log-level"); got != nil {
		t.Errorf("expected empty resolver, got %v", got)
	}
}
