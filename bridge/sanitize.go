package bridge

import "regexp"

// ansiEscapeRe matches ANSI CSI escape sequences: ESC '[', zero or more
// parameter bytes (0x30-0x3F), zero or more intermediate bytes (0x20-0x2F),
// one final byte (0x40-0x7E).
var ansiEscapeRe = regexp.MustCompile(`\x1b\[[0-?]*[ -/]*[@-~]`)

// Strip removes terminal control sequences from text. Everything else,
// newlines and multi-byte characters included, passes through unchanged.
func Strip(text string) string {
	return ansiEscapeRe.ReplaceAllString(text, "")
}
