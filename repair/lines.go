package repair

import "strings"

// splitLines splits text into lines. A trailing newline does not produce a
// final empty line and a trailing carriage return is dropped from each line.
func splitLines(text string) []string {
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

func isBlank(trimmed string) bool {
	return trimmed == ""
}

func isComment(trimmed string) bool {
	return strings.HasPrefix(trimmed, "#")
}

func isSequenceItem(trimmed string) bool {
	return strings.HasPrefix(trimmed, "-")
}

// keyToken returns the portion of s before the first colon, trimmed. Lines
// without a colon yield the whole of s, trimmed.
func keyToken(s string) string {
	before, _, _ := strings.Cut(s, ":")
	return strings.TrimSpace(before)
}

// indentWidth is the number of leading space and tab characters in line.
func indentWidth(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}
