package engine

import "testing"

func TestLink(t *testing.T) {
	if got := link("text", "http://example.com"); got != "[text](http://example.com)" {
		t.Errorf("unexpected link: %q", got)
	}
}

func TestImage(t *testing.T) {
	if got := image("alt", "http://example.com/x.png"); got != "![alt](http://example.com/x.png)" {
		t.Errorf("unexpected image: %q", got)
	}
}

func TestShield(t *testing.T) {
	got := shield("alt text", "maven central", "1.2", "blue")

	want := "![alt text](https://img.shields.io/badge/maven_central-1.2-blue.svg)"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestShieldEscape(t *testing.T) {
	for raw, want := range map[string]string{
		"a_b": "a__b",
		"a-b": "a--b",
		"a b": "a_b",
		"a&b": "a%26b",
	} {
		if got := shieldEscape(raw); got != want {
			t.Errorf("escape %q: expected %q, got %q", raw, want, got)
		}
	}
}

func TestPrefixDelimiterReplace(t *testing.T) {
	for _, tt := range []struct {
		test        string
		input       string
		prefix      string
		delim       string
		replacement string
		want        string
	}{
		{
			test:        "single occurrence",
			input:       `version="1.0" tail`,
			prefix:      `version="`,
			delim:       `"`,
			replacement: "2.0",
			want:        `version="2.0" tail`,
		},
		{
			test:        "multiple occurrences",
			input:       "v:1,v:2,v:3",
			prefix:      "v:",
			delim:       ",",
			replacement: "9",
			want:        "v:9,v:9,v:3",
		},
		{
			test:        "no delimiter after prefix",
			input:       "v:1 open",
			prefix:      "v:1 op",
			delim:       ",",
			replacement: "x",
			want:        "v:1 open",
		},
		{
			test:        "no prefix",
			input:       "untouched",
			prefix:      "v:",
			delim:       ",",
			replacement: "x",
			want:        "untouched",
		},
	} {
		t.Run(tt.test, func(t *testing.T) {
			got := prefixDelimiterReplace(tt.input, tt.prefix, tt.delim, tt.replacement)
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestPrepend(t *testing.T) {
	got := prepend("b:c", ":", "a")

	if got != "a:b:c" {
		t.Errorf("expected a:b:c, got %q", got)
	}
}
