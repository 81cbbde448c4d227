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


package langchain

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/yamlmend/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// Generator implements ai.Generator with a langchaingo model.
type Generator struct {
	client      llms.Model
	model       string
	temperature float64
	maxTokens   int
	maxRetries  int
	retryDelay  time.Duration
	logger      *slog.Logger
}

// newGenerator is an internal constructor that returns the concrete type.
func newGenerator(config *ai.Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := newModel(config)
	if err != nil {
		return nil, fmt.Errorf("create %s client: %w", config.Provider, err)
	}

	return &Generator{
		client:      client,
		model:       config.Model,
		temperature: config.Temperature,
		maxTokens:   config.MaxTokens,
		maxRetries:  config.MaxRetries,
		retryDelay:  config.RetryDelay,
		logger:      slog.Default().With("component", "langchain-generator", "provider", config.Provider),
	}, nil
}

// NewGenerator creates a generator for the configured provider.
// The config is validated and normalized before use.
func NewGenerator(config *ai.Config) (ai.Generator, error) {
	return newGenerator(config)
}

func newModel(config *ai.Config) (llms.Model, error) {
	switch config.Provider {
	case ai.ProviderOpenAI:
		opts := []openai.Option{
			openai.WithModel(config.Model),
			openai.WithToken(config.APIKey),
		}
		if config.Host != "" {
			opts = append(opts, openai.WithBaseURL(config.Host))
		}
		return openai.New(opts...)
	case ai.ProviderOllama:
		opts := []ollama.Option{
			ollama.WithModel(config.Model),
		}
		if config.Host != "" {
			opts = append(opts, ollama.WithServerURL(config.Host))
		}
		return ollama.New(opts...)
	case ai.ProviderAnthropic:
		opts := []anthropic.Option{
			anthropic.WithModel(config.Model),
			anthropic.WithToken(config.APIKey),
		}
		if config.Host != "" {
			opts = append(opts, anthropic.WithBaseURL(config.Host))
		}
		return anthropic.New(opts...)
	default:
		return nil, fmt.Errorf("%w: %q", ai.ErrUnknownProvider, config.Provider)
	}
}

// Model returns the configured model identifier.
func (g *Generator) Model() string {
	return g.model
}

// Generate sends the system and user prompts and returns the first choice.
// Failed requests are retried with exponential backoff.
func (g *Generator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(systemPrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(userPrompt)},
		},
	}

	var text string
	err := ai.RetryWithBackoff(ctx, func(ctx context.Context) error {
		response, err := g.client.GenerateContent(ctx, content,
			llms.WithTemperature(g.temperature),
			llms.WithMaxTokens(g.maxTokens),
		)
		if err != nil {
			g.logger.Warn("failed to generate content", "err", err)
			return err
		}
		if len(response.Choices) < 1 {
			return ai.Permanent(ai.ErrEmptyResponse)
		}
		text = response.Choices[0].Content
		return nil
	}, g.maxRetries, g.retryDelay)
	if err != nil {
		return "", err
	}

	g.logger.Debug("generated content", "chars", len(text))
	return text, nil
}
