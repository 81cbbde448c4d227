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


// Package mock provides a test double for ai.Generator.
//
// MockGenerator returns a canned response by default. Inject behavior with
// GenerateFunc and inspect calls with CallCount and Prompts:
//
//	gen := mock.NewMockGenerator("```yaml\nname: foo\n```")
//	gen.GenerateFunc = func(ctx context.Context, system, user string) (string, error) {
//	    return "", errors.New("rate limited")
//	}
//	count := gen.CallCount()
//
// MockGenerator is safe for concurrent use.
package mock
