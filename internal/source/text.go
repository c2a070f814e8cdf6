package source

import (
	"strings"
	"unicode/utf8"
)

// Lines splits text the way editors count lines: on '\n', with a trailing '\r'
// stripped from each line. A final newline does not open an extra line.
func Lines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// LineAt returns the 0-based line of text, or false when it does not exist.
func LineAt(text string, line int) (string, bool) {
	if line < 0 {
		return "", false
	}
	start := 0
	for i := 0; i < line; i++ {
		next := strings.IndexByte(text[start:], '\n')
		if next < 0 {
			return "", false
		}
		start += next + 1
	}
	if start >= len(text) && line > 0 {
		return "", false
	}
	end := strings.IndexByte(text[start:], '\n')
	if end < 0 {
		return strings.TrimSuffix(text[start:], "\r"), true
	}
	return strings.TrimSuffix(text[start:start+end], "\r"), true
}

// UTF16Offset converts a UTF-16 code unit column into a byte offset within line.
// Columns past the end of the line clamp to len(line).
func UTF16Offset(line string, character int) int {
	if character <= 0 {
		return 0
	}
	units := 0
	i := 0
	for i < len(line) {
		r, size := utf8.DecodeRuneInString(line[i:])
		need := 1
		if r > 0xFFFF {
			need = 2
		}
		if units+need > character {
			break
		}
		units += need
		i += size
		if units == character {
			break
		}
	}
	return i
}
