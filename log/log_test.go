package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestMake_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf,
		WithLevel(LevelWarn),
		WithFormat(FormatText),
		WithPretty(false),
		WithTimeLayout(""),
	)

	l.Info("hidden")
	l.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message not filtered: %q", out)
	}

	if !strings.Contains(out, "visible") {
		t.Errorf("warn message missing: %q", out)
	}
}

func TestMake_JSONFormat(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithFormat(FormatJSON), WithTimeLayout(""))

	l.Info("hello", slog.String("key", "value"))

	out := buf.String()
	if !strings.Contains(out, `"msg":"hello"`) || !strings.Contains(out, `"key":"value"`) {
		t.Errorf("unexpected JSON output: %q", out)
	}
}

func TestWrap_Overrides(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithLevel(LevelError))

	if l.Level() != LevelError {
		t.Fatalf("unexpected level: %v", l.Level())
	}

	w := l.Wrap(WithLevel(LevelDebug))
	if w.Level() != LevelDebug {
		t.Errorf("wrap did not override level: %v", w.Level())
	}

	// Original logger is unchanged.
	if l.Level() != LevelError {
		t.Errorf("wrap mutated receiver: %v", l.Level())
	}
}

func TestZeroLogger_Discards(t *testing.T) {
	var l Logger

	// Must not panic.
	l.Info("nothing")
	l.Error("nothing")

	if l.Level() != DefaultLevel || l.Format() != DefaultFormat {
		t.Errorf("zero logger defaults: %v %v", l.Level(), l.Format())
	}
}

func TestParseLevel(t *testing.T) {
	for s, want := range map[string]Level{
		"debug":  LevelDebug,
		"INFO":   LevelInfo,
		"warn":   LevelWarn,
		"error":  LevelError,
		"bogus":  DefaultLevel,
		"WARN+2": LevelWarn + 2,
	} {
		if got := ParseLevel(s); got != want {
			t.Errorf("ParseLevel(%q): expected %v, got %v", s, want, got)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for s, want := range map[string]Format{
		"json":  FormatJSON,
		"JSON":  FormatJSON,
		"text":  FormatText,
		"other": FormatText,
	} {
		if got := ParseFormat(s); got != want {
			t.Errorf("ParseFormat(%q): expected %v, got %v", s, want, got)
		}
	}
}

func TestPrettyTextHandler_Attrs(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithPretty(true), WithTimeLayout(""))

	l.With(slog.String("scope", "test")).Info("styled", slog.Int("n", 7))

	out := buf.String()
	for _, want := range []string{"INFO", "styled", "scope=", "n=", "7"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output: %q", want, out)
		}
	}
}
