package script

import (
	"log/slog"
	"strings"
)

// Pair holds the literal comment markers bounding a section: the intron
// opens a comment tag and the exon closes it. Both markers are matched as
// exact substrings; no characters are interpreted specially.
type Pair struct {
	intron string
	exon   string
}

// MakePair creates a marker pair from the given intron and exon strings.
// Both must be non-empty.
func MakePair(intron, exon string) (Pair, error) {
	if intron == "" {
		return Pair{}, ErrEmptyMarker.With(slog.String("marker", "intron"))
	}

	if exon == "" {
		return Pair{}, ErrEmptyMarker.With(slog.String("marker", "exon"))
	}

	return Pair{intron: intron, exon: exon}, nil
}

// Intron returns the open marker.
func (p Pair) Intron() string { return p.intron }

// Exon returns the close marker.
func (p Pair) Exon() string { return p.exon }

// IsZero reports whether the pair is unconfigured.
func (p Pair) IsZero() bool { return p.intron == "" && p.exon == "" }

// Section is one named, delimiter-bounded region of a document: its name,
// its program text, and the output rendered by the previous compile.
// Sections exist only for the duration of one [Compile] call.
type Section struct {
	// Name identifies the section. It is the text following the intron on
	// the open tag's first line, stripped of exactly one leading space.
	Name string
	// Program is the text between the open tag's first line and the exon.
	Program string
	// Input is the stale output between the exon and the closing tag.
	Input string
}

// span is one parsed region of a document: either an opaque literal copied
// through verbatim, or a section to be recompiled.
type span struct {
	literal string
	section Section
	matched bool // span is a section, not a literal
}

// parse splits the document into an ordered sequence of literal and section
// spans using a two-cursor scan: find the next intron, the exon that closes
// its tag, then the next whole tag, which must be the section's closing tag.
// The scan proceeds strictly left to right and never revisits consumed text,
// so overlapping-looking markers cannot produce double matches.
func parse(doc string, pair Pair) ([]span, error) {
	var spans []span

	cursor := 0

	for {
		rest := doc[cursor:]

		open := strings.Index(rest, pair.intron)
		if open < 0 {
			if rest != "" {
				spans = append(spans, span{literal: rest})
			}

			return spans, nil
		}

		open += cursor

		content, tagEnd, err := nextTag(doc, open, pair)
		if err != nil {
			return nil, err
		}

		name, program := splitOpenTag(content)
		if name == "" {
			return nil, ErrEmptySectionName.
				With(slog.Int("line", lineAt(doc, open)))
		}

		if strings.HasPrefix(name, "/") {
			return nil, ErrMismatchedSection.
				With(
					slog.String("found", name),
					slog.String("wanted", "an open tag"),
					slog.Int("line", lineAt(doc, open)),
				)
		}

		if open > cursor {
			spans = append(spans, span{literal: doc[cursor:open]})
		}

		sec, next, err := closeSection(doc, tagEnd, pair, name, program)
		if err != nil {
			return nil, err
		}

		spans = append(spans, span{section: sec, matched: true})
		cursor = next
	}
}

// closeSection scans from the end of a section's open tag for the closing
// tag, returning the completed section and the offset just past it.
func closeSection(
	doc string,
	bodyStart int,
	pair Pair,
	name, program string,
) (Section, int, error) {
	closeOpen := strings.Index(doc[bodyStart:], pair.intron)
	if closeOpen < 0 {
		return Section{}, 0, ErrUnterminatedSection.
			With(
				slog.String("section", name),
				slog.Int("line", lineAt(doc, bodyStart)),
			)
	}

	closeOpen += bodyStart

	content, tagEnd, err := nextTag(doc, closeOpen, pair)
	if err != nil {
		return Section{}, 0, WrapError(err).
			With(slog.String("section", name))
	}

	if trimTag(content) != "/"+name {
		return Section{}, 0, ErrMismatchedSection.
			With(
				slog.String("section", name),
				slog.String("found", trimTag(content)),
				slog.String("wanted", "/"+name),
				slog.Int("line", lineAt(doc, closeOpen)),
			)
	}

	sec := Section{
		Name:    name,
		Program: program,
		Input:   doc[bodyStart:closeOpen],
	}

	return sec, tagEnd, nil
}

// nextTag reads the tag starting at the intron at offset open, returning
// the text between the markers and the offset just past the exon.
func nextTag(doc string, open int, pair Pair) (string, int, error) {
	start := open + len(pair.intron)

	end := strings.Index(doc[start:], pair.exon)
	if end < 0 {
		return "", 0, ErrUnterminatedSection.
			With(
				slog.String("marker", pair.exon),
				slog.Int("line", lineAt(doc, open)),
			)
	}

	end += start

	return doc[start:end], end + len(pair.exon), nil
}

// splitOpenTag splits an open tag's content into the section name (the
// remainder of the tag's first line, stripped of exactly one leading space)
// and the program (everything after that line).
func splitOpenTag(content string) (name, program string) {
	name, program, _ = strings.Cut(content, "\n")

	return strings.TrimPrefix(name, " "), program
}

// trimTag strips at most one leading and one trailing space from a tag's
// content. Both the serialized form "/name " and the hand-written form
// " /name " reduce to "/name"; section names themselves are never trimmed.
func trimTag(content string) string {
	return strings.TrimSuffix(strings.TrimPrefix(content, " "), " ")
}

// lineAt returns the 1-based line number of byte offset off in doc.
func lineAt(doc string, off int) int {
	if off > len(doc) {
		off = len(doc)
	}

	return 1 + strings.Count(doc[:off], "\n")
}
