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


package pipeline

import "errors"

var (
	// ErrGeneratorRequired is returned when a generator is not provided.
	ErrGeneratorRequired = errors.New("generator required")

	// ErrRepairerRequired is returned when a repairer is not provided.
	ErrRepairerRequired = errors.New("repairer required")

	// ErrPromptsRequired is returned when a prompt set is not provided.
	ErrPromptsRequired = errors.New("prompt set required")

	// ErrGenerationFailed wraps failures of the text generator.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrEmptyOutput is returned when the model reply holds no YAML.
	ErrEmptyOutput = errors.New("model returned no YAML")
)
