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


package ai

import "context"

// Generator produces text from a system prompt and a user prompt.
// Implementations must be thread-safe for concurrent use.
type Generator interface {
	// Generate sends both prompts to the model and returns the text of the
	// first choice. Returns ErrEmptyResponse if the model returns nothing.
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
