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


// Package langchain implements ai.Generator on top of langchaingo.
//
// The provider named in ai.Config selects the client: "openai" talks to any
// OpenAI-compatible server (Cohere's compatibility endpoint by default),
// "ollama" to a local Ollama daemon and "anthropic" to the Anthropic API.
//
// # Usage
//
//	cfg := ai.NewConfig(ai.WithAPIKey(os.Getenv("COHERE_API_KEY")))
//	gen, err := langchain.NewGenerator(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	text, err := gen.Generate(ctx, systemPrompt, userPrompt)
package langchain
