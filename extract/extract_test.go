package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestYAML(t *testing.T) {
	tests := []struct {
		name     string
		response string
		expected string
	}{
		{
			name:     "yaml fence",
			response: "Here you go:\n```yaml\na: 1\nb: 2\n```\nAnything else?",
			expected: "a: 1\nb: 2",
		},
		{
			name:     "bare fence",
			response: "```\na: 1\n```",
			expected: "a: 1",
		},
		{
			name:     "yaml fence preferred over an earlier bare fence",
			response: "```\nnot this\n```\n```yaml\na: 1\n```",
			expected: "a: 1",
		},
		{
			name:     "unterminated fence runs to the end",
			response: "```yaml\na: 1\nb: 2\n",
			expected: "a: 1\nb: 2",
		},
		{
			name:     "no fence",
			response: "\n\n  a: 1\nb: 2  \n",
			expected: "a: 1\nb: 2",
		},
		{
			name:     "empty response",
			response: "",
			expected: "",
		},
		{
			name:     "indentation inside the block is kept",
			response: "```yaml\nitems:\n  - one\n```",
			expected: "items:\n  - one",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, YAML(tt.response))
		})
	}
}
