package repl

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"
)

func TestHistoryWriteLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)

	for _, entry := range []string{"version", "link('a', 'b')", "  ", "version"} {
		if _, err := h.Write(entry); err != nil {
			t.Fatalf("write %q: %v", entry, err)
		}
	}

	// Blank entries are dropped and duplicates keep only their most recent
	// position.
	want := []string{"link('a', 'b')", "version"}
	if got := h.Entries(); !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	// A fresh instance must load the same entries from disk.
	loaded := NewHistory(path)
	if err := loaded.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}

	if got := loaded.Entries(); !slices.Equal(got, want) {
		t.Errorf("expected %v after load, got %v", want, got)
	}
}

func TestHistoryGetLine(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), baseHistory))

	if _, err := h.Write("first"); err != nil {
		t.Fatalf("write: %v", err)
	}

	line, err := h.GetLine(0)
	if err != nil || line != "first" {
		t.Errorf("GetLine(0) = (%q, %v), want (%q, nil)", line, err, "first")
	}

	if _, err := h.GetLine(1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestHistoryLoadMissingFile(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "absent"))

	if err := h.Load(); err != nil {
		t.Errorf("expected missing history file to load empty, got %v", err)
	}

	if h.Len() != 0 {
		t.Errorf("expected empty history, got %d entries", h.Len())
	}
}
