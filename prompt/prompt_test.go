package prompt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePromptTree(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "prompt"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "template.yaml"), []byte("api_groups:\n- name: <name>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(base, "prompt", "system_prompt.txt"), []byte("You write YAML."), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(base, "prompt", "user_prompt.txt"),
		[]byte("Input:\n{INPUT_CONTENT}\nTemplate:\n{TEMPLATE_CONTENT}"), 0644))
	return base
}

func TestResolveBase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "."},
		{"/etc/yamlmend/config.yaml", "/etc/yamlmend"},
		{"/etc/yamlmend", "/etc/yamlmend"},
		{"config.yaml", "."},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveBase(tt.in), "ResolveBase(%q)", tt.in)
	}
}

func TestPathsFromBase(t *testing.T) {
	p := PathsFromBase("/srv")
	assert.Equal(t, "/srv/template.yaml", p.Template)
	assert.Equal(t, "/srv/prompt/system_prompt.txt", p.System)
	assert.Equal(t, "/srv/prompt/user_prompt.txt", p.User)
}

func TestCheck(t *testing.T) {
	base := writePromptTree(t)
	require.NoError(t, PathsFromBase(base).Check())

	require.NoError(t, os.Remove(filepath.Join(base, "template.yaml")))
	err := PathsFromBase(base).Check()
	assert.ErrorIs(t, err, ErrPromptNotFound)
	assert.Contains(t, err.Error(), "template file")
}

func TestLoadFile_NotFound(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, ErrPromptNotFound)
	assert.Contains(t, err.Error(), "missing.txt")
}

func TestLoadAndRender(t *testing.T) {
	set, err := Load(PathsFromBase(writePromptTree(t)))
	require.NoError(t, err)

	assert.Equal(t, "You write YAML.", set.System)
	assert.Equal(t,
		"Input:\nusers service\nTemplate:\napi_groups:\n- name: <name>",
		set.Render("users service"))
}

func TestRender_DoesNotExpandPlaceholdersInInput(t *testing.T) {
	set := &Set{User: "{INPUT_CONTENT}|{TEMPLATE_CONTENT}", Template: "T"}
	assert.Equal(t, "{TEMPLATE_CONTENT}|T", set.Render("{TEMPLATE_CONTENT}"))
}
