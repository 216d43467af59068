package engine

import (
	"net/url"
	"strings"

	"github.com/ardnew/mung"
)

// Builtins returns the names of the functions available to every program,
// in the order they are documented.
func Builtins() []string {
	return []string{
		"link",
		"image",
		"shield",
		"prefixDelimiterReplace",
		"prepend",
	}
}

// link generates a markdown link.
func link(text, target string) string {
	return "[" + text + "](" + target + ")"
}

// image generates a markdown image.
func image(altText, target string) string {
	return "!" + link(altText, target)
}

// shield generates a badge image using https://shields.io.
func shield(altText, subject, status, color string) string {
	return image(altText, "https://img.shields.io/badge/"+
		shieldEscape(subject)+"-"+
		shieldEscape(status)+"-"+
		shieldEscape(color)+".svg")
}

// shieldEscape applies the shields.io path escaping rules before URL
// encoding: underscore, dash, and space collide with the badge field
// separators and must be doubled or substituted first.
func shieldEscape(raw string) string {
	return url.QueryEscape(strings.NewReplacer(
		"_", "__",
		"-", "--",
		" ", "_",
	).Replace(raw))
}

// prefixDelimiterReplace replaces the text after each prefix and before the
// next delimiter with replacement. The scan is lazy and left to right; a
// prefix with no following delimiter is left untouched.
func prefixDelimiterReplace(input, prefix, delimiter, replacement string) string {
	var b strings.Builder

	b.Grow(len(input) + len(input)/2)

	for {
		i := strings.Index(input, prefix)
		if i < 0 {
			break
		}

		j := strings.Index(input[i+len(prefix):], delimiter)
		if j < 0 {
			break
		}

		b.WriteString(input[:i+len(prefix)])
		b.WriteString(replacement)
		b.WriteString(delimiter)

		input = input[i+len(prefix)+j+len(delimiter):]
	}

	b.WriteString(input)

	return b.String()
}

// prepend joins items ahead of the delimited list in subject, deduplicating
// against items already present.
func prepend(subject, delim string, items ...string) string {
	return mung.Make(
		mung.WithSubjectItems(subject),
		mung.WithDelim(delim),
		mung.WithPrefixItems(items...),
	).String()
}
