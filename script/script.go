package script

import (
	"log/slog"
	"strings"
)

// Evaluator executes a section's templated program and returns its rendered
// output. The previously rendered output is passed as input so programs may
// incorporate or inspect it. Implementations must be deterministic for the
// compile transform to be a fixed point.
type Evaluator interface {
	Evaluate(section, program, input string) (string, error)
}

// EvaluatorFunc adapts a function to the [Evaluator] interface.
type EvaluatorFunc func(section, program, input string) (string, error)

// Evaluate implements [Evaluator].
func (f EvaluatorFunc) Evaluate(section, program, input string) (string, error) {
	return f(section, program, input)
}

// Resolver maps a {{key}} placeholder to its value for the named section.
// It is total: it must return some string for every key, reporting unknown
// keys through a side channel rather than failing.
type Resolver func(section, key string) string

// Compiler compiles one parsed section into its full replacement text,
// including the re-emitted tags.
type Compiler interface {
	CompileSection(sec Section) (string, error)
}

// Compile recompiles every section of doc found between the markers of
// pair, splicing each result back in place and reproducing all other text
// byte-for-byte. Sections appear in the output in document order.
//
// Parse errors and compiler errors abort the whole document: either the
// complete compiled document is returned, or an error and no output.
func Compile(doc string, pair Pair, c Compiler) (string, error) {
	spans, err := parse(doc, pair)
	if err != nil {
		return "", err
	}

	var b strings.Builder

	b.Grow(len(doc))

	for _, s := range spans {
		if !s.matched {
			b.WriteString(s.literal)

			continue
		}

		out, err := c.CompileSection(s.section)
		if err != nil {
			return "", ErrCompileSection.Wrap(err).
				With(slog.String("section", s.section.Name))
		}

		b.WriteString(out)
	}

	return b.String(), nil
}

// CommentScript compiles the comment sections of a document by templating
// each program, delegating execution to an [Evaluator], and re-serializing
// the section around the normalized result. It implements [Compiler].
//
// A zero CommentScript is not usable; construct one with [New].
type CommentScript struct {
	pair    Pair
	eval    Evaluator
	resolve Resolver
}

// Option applies a configuration option to a CommentScript.
type Option func(CommentScript) CommentScript

// New creates a CommentScript for the given marker pair and evaluator.
//
// Without [WithResolver], every placeholder resolves to its unknown-key
// sentinel.
func New(pair Pair, eval Evaluator, opts ...Option) CommentScript {
	cs := CommentScript{
		pair:    pair,
		eval:    eval,
		resolve: func(_, key string) string { return UnknownKey(key) },
	}

	for _, opt := range opts {
		cs = opt(cs)
	}

	return cs
}

// WithResolver returns an option that sets the placeholder resolver.
func WithResolver(resolve Resolver) Option {
	return func(cs CommentScript) CommentScript {
		if resolve != nil {
			cs.resolve = resolve
		}

		return cs
	}
}

// UnknownKey returns the deterministic sentinel substituted for a
// placeholder whose key has no known value.
func UnknownKey(key string) string { return key + "=UNKNOWN" }

// Compile recompiles every section of doc. The document must contain only
// line-feed newlines; the output is guaranteed to be the same.
func (cs CommentScript) Compile(doc string) (string, error) {
	return Compile(doc, cs.pair, cs)
}

// CompileSection compiles a single section: placeholders are substituted
// into the program, the templated program is evaluated with the section's
// stale output as input, and the result is normalized and re-serialized.
//
// The original, untemplated program is written back so the document stays
// human-editable and re-compilable; substitution affects only what is
// executed.
func (cs CommentScript) CompileSection(sec Section) (string, error) {
	templated := Template(sec.Program, func(key string) string {
		return cs.resolve(sec.Name, key)
	})

	out, err := cs.eval.Evaluate(sec.Name, templated, sec.Input)
	if err != nil {
		return "", err
	}

	var b strings.Builder

	b.WriteString(cs.pair.intron)
	b.WriteString(" ")
	b.WriteString(sec.Name)
	b.WriteString("\n")
	b.WriteString(sec.Program)
	b.WriteString(cs.pair.exon)
	b.WriteString(Normalize(out))
	b.WriteString(cs.pair.intron)
	b.WriteString("/")
	b.WriteString(sec.Name)
	b.WriteString(" ")
	b.WriteString(cs.pair.exon)

	return b.String(), nil
}

// Normalize trims rendered output to exactly one leading and one trailing
// newline so the tags around it stay on their own lines. Normalizing an
// already-normalized string is a no-op.
func Normalize(out string) string {
	return "\n" + strings.Trim(out, "\n") + "\n"
}
