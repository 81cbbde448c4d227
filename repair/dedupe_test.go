package repair

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupe(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "repeated top-level key",
			input:    "name: foo\nname: bar",
			expected: "name: foo",
		},
		{
			name:     "same key at a different width is kept",
			input:    "a:\n  name: x\nname: y",
			expected: "a:\n  name: x\nname: y",
		},
		{
			name:     "repeated nested key",
			input:    "a:\n  k: 1\n  k: 2\n  j: 3",
			expected: "a:\n  k: 1\n  j: 3",
		},
		{
			name:     "sibling blocks do not share scope",
			input:    "a:\n  k: 1\nb:\n  k: 2",
			expected: "a:\n  k: 1\nb:\n  k: 2",
		},
		{
			name:     "each sequence item opens a fresh scope",
			input:    "- name: a\n  id: 1\n- name: b\n  id: 2",
			expected: "- name: a\n  id: 1\n- name: b\n  id: 2",
		},
		{
			name:     "duplicate inside one sequence item",
			input:    "items:\n  - name: a\n    id: 1\n    id: 2\n  - name: b\n    id: 3",
			expected: "items:\n  - name: a\n    id: 1\n  - name: b\n    id: 3",
		},
		{
			name:     "comments and blank lines pass through",
			input:    "a: 1\n# a: 2\n\na: 3",
			expected: "a: 1\n# a: 2\n",
		},
		{
			name:     "lines without a colon are not tracked",
			input:    "- x\n- x",
			expected: "- x\n- x",
		},
		{
			name:     "empty keys are not tracked",
			input:    ": value\n: value",
			expected: ": value\n: value",
		},
		{
			name:     "original whitespace is preserved",
			input:    "a:\n\tb: 1\n\tb: 2",
			expected: "a:\n\tb: 1",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Dedupe(tt.input))
		})
	}
}

func TestDedupeLines_ReportsDroppedLines(t *testing.T) {
	out, dropped := DedupeLines("name: foo\nage: 3\nname: bar\n  age: 4\nage: 5")

	assert.Equal(t, "name: foo\nage: 3\n  age: 4", out)
	require.Len(t, dropped, 2)
	assert.Equal(t, DroppedLine{Line: 3, Key: "name", Text: "name: bar"}, dropped[0])
	assert.Equal(t, DroppedLine{Line: 5, Key: "age", Text: "age: 5"}, dropped[1])
}

func TestDedupeLines_NothingDropped(t *testing.T) {
	out, dropped := DedupeLines("a: 1\nb: 2")
	assert.Equal(t, "a: 1\nb: 2", out)
	assert.Empty(t, dropped)
}

func TestScopeStack(t *testing.T) {
	s := newScopeStack()
	require.Len(t, s.frames, 1)

	assert.True(t, s.claim("a"))
	assert.False(t, s.claim("a"))

	s.enter(4)
	require.Len(t, s.frames, 2)
	assert.True(t, s.claim("a"), "new frame has its own keys")

	s.enter(2)
	require.Len(t, s.frames, 2, "popped width 4, pushed width 2")
	assert.Equal(t, 2, s.top().width)

	s.enter(0)
	require.Len(t, s.frames, 1)
	s.reset()
	assert.True(t, s.claim("a"), "reset clears the root frame")

	s.enter(0)
	require.Len(t, s.frames, 1, "root frame is never popped")
}
