package bridge

import "testing"

func TestStripPlainTextUnchanged(t *testing.T) {
	cases := []string{
		"",
		"Result: 42",
		"line one\nline two\n",
		"unicode: 中文, émoji 🙂, ¥242.84",
		"brackets [31m without escape char",
	}
	for _, in := range cases {
		if got := Strip(in); got != in {
			t.Errorf("Strip(%q) = %q, want unchanged", in, got)
		}
	}
}

func TestStripColorSequences(t *testing.T) {
	in := "\x1b[31mHello\x1b[0m World"
	want := "Hello World"
	if got := Strip(in); got != want {
		t.Errorf("Strip(%q) = %q, want %q", in, got, want)
	}
}

func TestStripSequenceVariants(t *testing.T) {
	cases := map[string]string{
		"\x1b[1;32;44mstyled\x1b[m":  "styled",         // multi-parameter and empty-parameter
		"\x1b[2J\x1b[Hcleared":       "cleared",        // cursor and erase controls
		"\x1b[?25lhidden\x1b[?25h":   "hidden",         // private parameter bytes
		"\x1b[0 qblock":              "block",          // intermediate byte before final
		"a\x1b[31mb\x1b[0mc":         "abc",            // surrounding text preserved byte-for-byte
		"tab\tand\x1b[33m newline\n": "tab\tand newline\n",
	}
	for in, want := range cases {
		if got := Strip(in); got != want {
			t.Errorf("Strip(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStripLoneEscapePassesThrough(t *testing.T) {
	// A bare ESC or a non-CSI sequence is not part of the stripped grammar.
	in := "before \x1b after"
	if got := Strip(in); got != in {
		t.Errorf("Strip(%q) = %q, want unchanged", in, got)
	}
}
