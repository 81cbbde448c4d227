// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package prompt loads the prompt and template files used to ask a model to
// rewrite free text as YAML.
package prompt

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Placeholders substituted into the user prompt.
const (
	InputPlaceholder    = "{INPUT_CONTENT}"
	TemplatePlaceholder = "{TEMPLATE_CONTENT}"
)

var (
	// ErrPromptNotFound indicates a prompt or template file does not exist.
	ErrPromptNotFound = errors.New("prompt file not found")
)

// Paths locates the files that make up a prompt set.
type Paths struct {
	Template string
	System   string
	User     string
}

// PathsFromBase returns the conventional layout under base:
// template.yaml, prompt/system_prompt.txt and prompt/user_prompt.txt.
func PathsFromBase(base string) Paths {
	return Paths{
		Template: filepath.Join(base, "template.yaml"),
		System:   filepath.Join(base, "prompt", "system_prompt.txt"),
		User:     filepath.Join(base, "prompt", "user_prompt.txt"),
	}
}

// ResolveBase turns a configured path into a base directory. An empty path
// means the working directory and a path to a .yaml file means its parent.
func ResolveBase(configPath string) string {
	switch {
	case configPath == "":
		return "."
	case strings.HasSuffix(configPath, ".yaml"):
		return filepath.Dir(configPath)
	default:
		return configPath
	}
}

// Check verifies every file exists.
func (p Paths) Check() error {
	for _, f := range []struct{ path, name string }{
		{p.System, "system prompt"},
		{p.User, "user prompt"},
		{p.Template, "template file"},
	} {
		if _, err := os.Stat(f.path); err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("%s: %w: %s", f.name, ErrPromptNotFound, f.path)
			}
			return fmt.Errorf("%s: %w", f.name, err)
		}
	}
	return nil
}

// LoadFile reads a single prompt file.
func LoadFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrPromptNotFound, path)
		}
		return "", err
	}
	return string(content), nil
}

// Set is a loaded prompt set.
type Set struct {
	System   string
	User     string
	Template string
}

// Load reads all files named by paths.
func Load(paths Paths) (*Set, error) {
	system, err := LoadFile(paths.System)
	if err != nil {
		return nil, err
	}
	user, err := LoadFile(paths.User)
	if err != nil {
		return nil, err
	}
	template, err := LoadFile(paths.Template)
	if err != nil {
		return nil, err
	}
	return &Set{System: system, User: user, Template: template}, nil
}

// Render returns the user prompt with the input and template substituted.
func (s *Set) Render(input string) string {
	return strings.NewReplacer(
		InputPlaceholder, input,
		TemplatePlaceholder, s.Template,
	).Replace(s.User)
}
