package repair

import "strings"

// DroppedLine describes a line removed by Dedupe.
type DroppedLine struct {
	// Line is the 1-based line number in the input text.
	Line int
	// Key is the repeated mapping key.
	Key string
	// Text is the dropped line as it appeared in the input.
	Text string
}

// scopeFrame holds the keys seen at one indentation width.
type scopeFrame struct {
	width int
	keys  map[string]struct{}
}

// scopeStack always holds at least the root frame at width 0.
type scopeStack struct {
	frames []scopeFrame
}

func newScopeStack() *scopeStack {
	return &scopeStack{frames: []scopeFrame{{width: 0, keys: make(map[string]struct{})}}}
}

func (s *scopeStack) top() *scopeFrame {
	return &s.frames[len(s.frames)-1]
}

// enter pops every frame deeper than width, then opens a new frame if width
// is deeper than what remains on top.
func (s *scopeStack) enter(width int) {
	for len(s.frames) > 1 && s.top().width > width {
		s.frames = s.frames[:len(s.frames)-1]
	}
	if width > s.top().width {
		s.frames = append(s.frames, scopeFrame{width: width, keys: make(map[string]struct{})})
	}
}

// reset clears the keys of the top frame.
func (s *scopeStack) reset() {
	clear(s.top().keys)
}

// claim records key in the top frame. It returns false if key was already
// present.
func (s *scopeStack) claim(key string) bool {
	keys := s.top().keys
	if _, seen := keys[key]; seen {
		return false
	}
	keys[key] = struct{}{}
	return true
}

// Dedupe removes lines that repeat a mapping key within the same scope.
// Scopes are tracked by the literal leading-whitespace width of each line and
// every sequence item starts a fresh scope at its width. Blank and comment
// lines pass through untouched. Dedupe never fails.
func Dedupe(text string) string {
	out, _ := DedupeLines(text)
	return out
}

// DedupeLines is Dedupe that also reports which lines were dropped.
func DedupeLines(text string) (string, []DroppedLine) {
	lines := splitLines(text)
	out := make([]string, 0, len(lines))
	var dropped []DroppedLine

	scopes := newScopeStack()
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if isBlank(trimmed) || isComment(trimmed) {
			out = append(out, line)
			continue
		}

		scopes.enter(indentWidth(line))
		if isSequenceItem(trimmed) {
			scopes.reset()
		}

		key := keyToken(strings.TrimPrefix(trimmed, "- "))
		if !strings.Contains(trimmed, ":") || key == "" {
			out = append(out, line)
			continue
		}

		if !scopes.claim(key) {
			dropped = append(dropped, DroppedLine{Line: i + 1, Key: key, Text: line})
			continue
		}
		out = append(out, line)
	}

	return strings.Join(out, "\n"), dropped
}
