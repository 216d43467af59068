package script

import "strings"

// Template replaces every {{key}} placeholder in text with the value
// returned by resolve. The scan is lazy and left to right: each placeholder
// is the shortest span between "{{" and the next "}}", and may span
// multiple lines. Text outside placeholders is copied verbatim.
//
// resolve is total: it must return some string for every key. Unmatched
// braces are left in place.
func Template(text string, resolve func(key string) string) string {
	var b strings.Builder

	b.Grow(len(text) + len(text)/2)

	for {
		i := strings.Index(text, "{{")
		if i < 0 {
			break
		}

		j := strings.Index(text[i+2:], "}}")
		if j < 0 {
			break
		}

		b.WriteString(text[:i])
		b.WriteString(resolve(text[i+2 : i+2+j]))

		text = text[i+2+j+2:]
	}

	b.WriteString(text)

	return b.String()
}
