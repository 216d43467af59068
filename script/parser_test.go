package script

import (
	"errors"
	"testing"
)

func testPair(t *testing.T) Pair {
	t.Helper()

	pair, err := MakePair("<!--#", "#-->")
	if err != nil {
		t.Fatalf("make pair: %v", err)
	}

	return pair
}

func TestMakePair_EmptyMarkers(t *testing.T) {
	if _, err := MakePair("", "#-->"); !errors.Is(err, ErrEmptyMarker) {
		t.Errorf("expected ErrEmptyMarker for empty intron, got %v", err)
	}

	if _, err := MakePair("<!--#", ""); !errors.Is(err, ErrEmptyMarker) {
		t.Errorf("expected ErrEmptyMarker for empty exon, got %v", err)
	}
}

func TestParse_NoSections(t *testing.T) {
	doc := "# Title\n\nplain text, no markers\n"

	spans, err := parse(doc, testPair(t))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if len(spans) != 1 || spans[0].matched || spans[0].literal != doc {
		t.Errorf("expected single literal span, got %+v", spans)
	}
}

func TestParse_SingleSection(t *testing.T) {
	doc := "head\n<!--# demo\nprog line\n#-->\nstale\n<!--#/demo #-->tail\n"

	spans, err := parse(doc, testPair(t))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if len(spans) != 3 {
		t.Fatalf("expected 3 spans, got %d: %+v", len(spans), spans)
	}

	if spans[0].literal != "head\n" {
		t.Errorf("unexpected leading literal: %q", spans[0].literal)
	}

	sec := spans[1].section
	if sec.Name != "demo" {
		t.Errorf("unexpected name: %q", sec.Name)
	}

	if sec.Program != "prog line\n" {
		t.Errorf("unexpected program: %q", sec.Program)
	}

	if sec.Input != "\nstale\n" {
		t.Errorf("unexpected input: %q", sec.Input)
	}

	if spans[2].literal != "tail\n" {
		t.Errorf("unexpected trailing literal: %q", spans[2].literal)
	}
}

func TestParse_SectionName(t *testing.T) {
	for _, tt := range []struct {
		test string
		doc  string
		name string
	}{
		{
			// Exactly one leading space is stripped from the name.
			test: "one leading space",
			doc:  "<!--# demo\np\n#-->\n<!--#/demo #-->",
			name: "demo",
		},
		{
			test: "no leading space",
			doc:  "<!--#demo\np\n#-->\n<!--#/demo #-->",
			name: "demo",
		},
		{
			// A second leading space belongs to the name.
			test: "two leading spaces",
			doc:  "<!--#  demo\np\n#-->\n<!--#/ demo #-->",
			name: " demo",
		},
		{
			test: "case sensitive",
			doc:  "<!--# Demo\np\n#-->\n<!--#/Demo #-->",
			name: "Demo",
		},
	} {
		t.Run(tt.test, func(t *testing.T) {
			spans, err := parse(tt.doc, testPair(t))
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			if len(spans) != 1 || !spans[0].matched {
				t.Fatalf("expected one section span, got %+v", spans)
			}

			if got := spans[0].section.Name; got != tt.name {
				t.Errorf("expected name %q, got %q", tt.name, got)
			}
		})
	}
}

func TestParse_EmptyName(t *testing.T) {
	doc := "<!--#\nprog\n#-->\nout\n<!--#/ #-->"

	_, err := parse(doc, testPair(t))
	if !errors.Is(err, ErrEmptySectionName) {
		t.Errorf("expected ErrEmptySectionName, got %v", err)
	}
}

func TestParse_MismatchedClosingTag(t *testing.T) {
	doc := "<!--# sectionA\nprog\n#-->\nout\n<!--#/sectionB #-->"

	spans, err := parse(doc, testPair(t))
	if !errors.Is(err, ErrMismatchedSection) {
		t.Errorf("expected ErrMismatchedSection, got %v", err)
	}

	if spans != nil {
		t.Errorf("expected no spans on parse error, got %+v", spans)
	}
}

func TestParse_CloseTagWithoutOpen(t *testing.T) {
	doc := "text\n<!--#/orphan #-->\n"

	_, err := parse(doc, testPair(t))
	if !errors.Is(err, ErrMismatchedSection) {
		t.Errorf("expected ErrMismatchedSection, got %v", err)
	}
}

func TestParse_Unterminated(t *testing.T) {
	for _, tt := range []struct {
		test string
		doc  string
	}{
		{"missing exon", "<!--# demo\nprog"},
		{"missing close tag", "<!--# demo\nprog\n#-->\nout\n"},
		{"close tag missing exon", "<!--# demo\nprog\n#-->\nout\n<!--#/demo "},
	} {
		t.Run(tt.test, func(t *testing.T) {
			_, err := parse(tt.doc, testPair(t))
			if !errors.Is(err, ErrUnterminatedSection) {
				t.Errorf("expected ErrUnterminatedSection, got %v", err)
			}
		})
	}
}

func TestParse_CloseTagTolerantSpacing(t *testing.T) {
	// Both "/name " and " /name " are accepted: at most one leading and one
	// trailing space around the tag content.
	for _, doc := range []string{
		"<!--# demo\np\n#-->\nout\n<!--#/demo #-->",
		"<!--# demo\np\n#-->\nout\n<!--# /demo #-->",
		"<!--# demo\np\n#-->\nout\n<!--#/demo#-->",
	} {
		if _, err := parse(doc, testPair(t)); err != nil {
			t.Errorf("parse %q: %v", doc, err)
		}
	}
}

func TestParse_MultipleSectionsNoBacktrack(t *testing.T) {
	doc := "<!--# a\np1\n#-->\no1\n<!--#/a #-->mid<!--# b\np2\n#-->\no2\n<!--#/b #-->"

	spans, err := parse(doc, testPair(t))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if len(spans) != 3 {
		t.Fatalf("expected 3 spans, got %d", len(spans))
	}

	if spans[0].section.Name != "a" || spans[2].section.Name != "b" {
		t.Errorf("unexpected section order: %+v", spans)
	}

	if spans[1].literal != "mid" {
		t.Errorf("unexpected middle literal: %q", spans[1].literal)
	}
}

func TestParse_EmptyProgram(t *testing.T) {
	// An open tag with no newline has an empty program.
	doc := "<!--# demo#-->\nout\n<!--#/demo #-->"

	spans, err := parse(doc, testPair(t))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if spans[0].section.Program != "" {
		t.Errorf("expected empty program, got %q", spans[0].section.Program)
	}
}
