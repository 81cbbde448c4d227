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


// Package pipeline turns free text into validated YAML.
//
// Format renders the prompt set around the input, asks the generator for a
// YAML document, extracts the code block from the response and passes it
// through the repair gate. Every outcome is saved as a core.FormatRecord when
// a repository is configured, and a previous successful result for the same
// input is served from the repository when caching is on.
//
// FormatBatch runs Format concurrently on an ants worker pool.
//
//	p, err := pipeline.New(gen, repair.NewRepairer(nil), prompts, repo,
//	    pipeline.WithPoolSize(4),
//	    pipeline.WithCache(true),
//	)
//	if err != nil {
//	    return err
//	}
//	defer p.Release()
//
//	record, err := p.Format(ctx, pipeline.Input{Source: "api.txt", Content: text})
package pipeline
