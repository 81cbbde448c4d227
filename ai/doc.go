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


// Package ai defines the text generation abstraction used to turn free text
// into YAML.
//
// Business logic depends on the Generator interface only. Concrete
// implementations live in sub-packages:
//
//   - ai/langchain: langchaingo clients for OpenAI-compatible servers, Ollama and Anthropic
//   - ai/mock: a test double with injectable behavior
//
// Configuration uses functional options:
//
//	cfg := ai.NewConfig(
//	    ai.WithAPIKey(os.Getenv("COHERE_API_KEY")),
//	    ai.WithTemperature(0.1),
//	)
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
// RetryWithBackoff retries a failing call with exponentially growing delays.
// Wrap an error with Permanent to stop retrying.
package ai
