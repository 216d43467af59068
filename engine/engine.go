package engine

import (
	"log/slog"
	"unicode"

	"github.com/expr-lang/expr"

	"github.com/ardnew/freshmark/props"
)

// Engine evaluates comment-script programs as expr-lang expressions.
// It implements the script.Evaluator interface.
//
// Each call to Evaluate builds a fresh environment for its section, so
// programs cannot observe state mutated by other sections.
type Engine struct {
	table props.Table
	setup func(section string, env map[string]any)
}

// Option applies a configuration option to an Engine.
type Option func(Engine) Engine

// New creates an Engine whose programs can reference the given properties.
func New(table props.Table, opts ...Option) Engine {
	e := Engine{table: table}

	for _, opt := range opts {
		e = opt(e)
	}

	return e
}

// WithSetup returns an option that installs a per-section environment hook.
// The hook runs after the built-in environment is assembled and may add or
// replace entries; it receives a fresh map each time, never a shared one.
func WithSetup(setup func(section string, env map[string]any)) Option {
	return func(e Engine) Engine {
		e.setup = setup

		return e
	}
}

// Evaluate compiles and runs a section's templated program, returning its
// rendered output. The program must evaluate to a string.
func (e Engine) Evaluate(section, program, input string) (string, error) {
	env := e.environ(section, input)

	prg, err := expr.Compile(program, expr.Env(env))
	if err != nil {
		return "", ErrCompileProgram.Wrap(err).
			With(
				slog.String("section", section),
				slog.String("program", program),
			)
	}

	out, err := expr.Run(prg, env)
	if err != nil {
		return "", ErrRunProgram.Wrap(err).
			With(slog.String("section", section))
	}

	s, ok := out.(string)
	if !ok {
		return "", ErrResultType.
			With(
				slog.String("section", section),
				slog.Any("result", out),
			)
	}

	return s, nil
}

// environ assembles the evaluation environment for one section.
func (e Engine) environ(section, input string) map[string]any {
	env := map[string]any{
		"input":                  input,
		"section":                section,
		"props":                  e.propMap(),
		"link":                   link,
		"image":                  image,
		"shield":                 shield,
		"prefixDelimiterReplace": prefixDelimiterReplace,
		"prepend":                prepend,
	}

	// Properties with identifier-shaped keys are also visible as top-level
	// variables; builtins keep precedence over colliding property names.
	for key := range e.table {
		if !isIdentifier(key) {
			continue
		}

		if _, exists := env[key]; exists {
			continue
		}

		if v, ok := e.table.Value(key); ok {
			env[key] = v
		}
	}

	if e.setup != nil {
		e.setup(section, env)
	}

	return env
}

// propMap renders the full property table as a string map for programs
// addressing keys that are not valid identifiers.
func (e Engine) propMap() map[string]string {
	m := make(map[string]string, len(e.table))

	for key := range e.table {
		if v, ok := e.table.Value(key); ok {
			m[key] = v
		}
	}

	return m
}

// isIdentifier reports whether key can appear as a bare variable name in a
// program.
func isIdentifier(key string) bool {
	if key == "" {
		return false
	}

	for i, r := range key {
		switch {
		case r == '_', unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}

	return true
}
