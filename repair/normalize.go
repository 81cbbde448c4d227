package repair

import "strings"

// indentSize is the number of spaces emitted per nesting level.
const indentSize = 2

// normalizer holds the state of a single Normalize call.
type normalizer struct {
	// rootKeys are the keys of every non-sequence line, at any indentation.
	// Fixed after the prescan.
	rootKeys map[string]struct{}
	// level is the target nesting depth for the next non-root line.
	level int
	out   []string
}

func newNormalizer(lines []string) *normalizer {
	n := &normalizer{
		rootKeys: make(map[string]struct{}),
		out:      make([]string, 0, len(lines)),
	}
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if isBlank(trimmed) || isComment(trimmed) || isSequenceItem(trimmed) {
			continue
		}
		if key := keyToken(trimmed); key != "" {
			n.rootKeys[key] = struct{}{}
		}
	}
	return n
}

// Normalize rewrites the leading whitespace of every line in text based on
// line shape alone:
//
//   - blank lines are emitted empty
//   - non-sequence lines whose key appears anywhere in the input as a
//     non-sequence key reset nesting to the root, whatever their indentation
//   - sequence items directly under a bare "key:" line nest one level deeper
//   - "key: value" lines sit one level below the current depth
//   - bare "key:" lines and anything else sit at the current depth
//
// Since the root key set ignores indentation, reindenting the input never
// changes the output. Normalize never fails. Lines are joined with "\n" without a trailing newline.
func Normalize(text string) string {
	lines := splitLines(text)
	n := newNormalizer(lines)
	for _, line := range lines {
		n.rewrite(line)
	}
	return strings.Join(n.out, "\n")
}

func (n *normalizer) rewrite(line string) {
	trimmed := strings.TrimSpace(line)

	if isBlank(trimmed) {
		n.out = append(n.out, "")
		return
	}

	if !isSequenceItem(trimmed) {
		if _, ok := n.rootKeys[keyToken(trimmed)]; ok {
			n.level = 0
			n.out = append(n.out, trimmed)
			return
		}
	}

	if isSequenceItem(trimmed) {
		if n.previousIsHeader() {
			n.level++
		}
		n.emit(n.level, trimmed)
		return
	}

	switch {
	case strings.Contains(trimmed, ":") && !strings.HasSuffix(trimmed, ":"):
		n.emit(n.level+1, trimmed)
	default:
		// Bare "key:" headers and freeform lines share the current depth.
		n.emit(n.level, trimmed)
	}
}

// previousIsHeader reports whether the last emitted line is a bare mapping
// key such as "items:".
func (n *normalizer) previousIsHeader() bool {
	if len(n.out) == 0 {
		return false
	}
	return strings.HasSuffix(strings.TrimSpace(n.out[len(n.out)-1]), ":")
}

func (n *normalizer) emit(level int, trimmed string) {
	n.out = append(n.out, strings.Repeat(" ", level*indentSize)+trimmed)
}
