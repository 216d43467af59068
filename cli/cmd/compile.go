package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ardnew/freshmark/engine"
	"github.com/ardnew/freshmark/log"
	"github.com/ardnew/freshmark/props"
	"github.com/ardnew/freshmark/script"
)

// Compile regenerates the script sections of each given document in place.
type Compile struct {
	Paths []string `arg:"" help:"Document file(s) or '-' for stdin" name:"path" optional:"" type:"path"`

	Check      bool     `help:"Report stale documents without rewriting them"      short:"n"`
	Properties []string `help:"Property file(s) (YAML or JSON)"                    short:"P"                               type:"existingfile"`
	Set        []string `help:"Set a property value"                               short:"D" placeholder:"key=value"`
	Intron     string   `help:"Opening comment marker"                                       default:"<!---freshmark"`
	Exon       string   `help:"Closing comment marker"                                       default:"-->"`
}

// Run executes the compile command.
func (c *Compile) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	pair, err := script.MakePair(c.Intron, c.Exon)
	if err != nil {
		return err
	}

	table, err := props.Load(c.Properties...)
	if err != nil {
		return ErrLoadProps.Wrap(err)
	}

	err = table.SetPairs(c.Set...)
	if err != nil {
		return ErrLoadProps.Wrap(err)
	}

	comp := script.New(pair, engine.New(table),
		script.WithResolver(table.Resolver(func(msg string) {
			log.WarnContext(ctx, msg)
		})),
	)

	paths := uniquePaths(c.Paths)
	if len(paths) == 0 {
		paths = []string{stdinSource}
	}

	var stale []string

	for _, path := range paths {
		changed, err := c.compileFile(ctx, comp, path)
		if err != nil {
			return err
		}

		if changed {
			stale = append(stale, path)
		}
	}

	if c.Check && len(stale) > 0 {
		return ErrStaleSource.
			With(slog.Any("path", stale))
	}

	return nil
}

// compileFile compiles a single document, rewriting it in place unless the
// check flag is set or the document is already current. A path of "-" reads
// stdin and writes the compiled document to stdout.
// Reports whether the compiled document differs from its input.
func (c *Compile) compileFile(
	ctx context.Context,
	comp script.CommentScript,
	path string,
) (changed bool, err error) {
	var data []byte
	if path == stdinSource {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}

	if err != nil {
		return false, ErrReadSource.
			With(slog.String("path", path)).
			Wrap(err)
	}

	doc, crlf := splitLineEndings(string(data))

	out, err := comp.Compile(doc)
	if err != nil {
		return false, script.WrapError(err).
			With(slog.String("path", path))
	}

	if crlf {
		out = strings.ReplaceAll(out, "\n", "\r\n")
	}

	changed = out != string(data)

	log.DebugContext(ctx, "compiled document",
		slog.String("path", path),
		slog.Bool("changed", changed),
	)

	if path == stdinSource {
		_, err = io.WriteString(os.Stdout, out)
	} else if changed && !c.Check {
		err = writeFilePreserveMode(path, out)
	}

	if err != nil {
		return false, ErrWriteSource.
			With(slog.String("path", path)).
			Wrap(err)
	}

	return changed, nil
}

// splitLineEndings normalizes a document to LF line endings.
// Reports whether the document used CRLF so the caller can restore it.
func splitLineEndings(doc string) (string, bool) {
	if !strings.Contains(doc, "\r\n") {
		return doc, false
	}

	return strings.ReplaceAll(doc, "\r\n", "\n"), true
}

// writeFilePreserveMode rewrites path with the same permissions it has now.
func writeFilePreserveMode(path, content string) error {
	mode := os.FileMode(0o644)

	info, err := os.Stat(path)
	if err == nil {
		mode = info.Mode().Perm()
	}

	return os.WriteFile(path, []byte(content), mode)
}
