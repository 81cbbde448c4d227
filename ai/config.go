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

import (
	"fmt"
	"strings"
	"time"
)

// Supported providers.
const (
	ProviderOpenAI    = "openai"
	ProviderOllama    = "ollama"
	ProviderAnthropic = "anthropic"
)

// Defaults reach Cohere through its OpenAI-compatible endpoint.
const (
	DefaultHost  = "https://api.cohere.ai/compatibility/v1"
	DefaultModel = "command-r7b-12-2024"
)

// Config holds configuration for the text generation provider.
type Config struct {
	// Provider selects the client: "openai", "ollama" or "anthropic".
	// "openai" covers any OpenAI-compatible server.
	Provider string

	// Host is the base URL of the provider API. Empty means the client default.
	Host string

	// Model is the model identifier.
	// Example: "command-r7b-12-2024", "qwen2.5:3b"
	Model string

	// APIKey authenticates against hosted providers. Ollama ignores it.
	APIKey string

	// Temperature controls sampling. Default: 0.1
	Temperature float64

	// MaxTokens caps the response length. Default: 4000
	MaxTokens int

	// MaxRetries is the number of attempts made for a failing request. Default: 3
	MaxRetries int

	// RetryDelay is the base backoff delay, doubled on every retry. Default: 1s
	RetryDelay time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithProvider sets the provider name.
func WithProvider(provider string) ConfigOption {
	return func(c *Config) {
		c.Provider = provider
	}
}

// WithHost sets the provider base URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithModel sets the model identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithAPIKey sets the API key.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) ConfigOption {
	return func(c *Config) {
		c.Temperature = t
	}
}

// WithMaxTokens sets the response token limit.
func WithMaxTokens(n int) ConfigOption {
	return func(c *Config) {
		c.MaxTokens = n
	}
}

// WithRetries sets the attempt count and base delay for failing requests.
func WithRetries(attempts int, delay time.Duration) ConfigOption {
	return func(c *Config) {
		c.MaxRetries = attempts
		c.RetryDelay = delay
	}
}

// DefaultConfig returns a Config pointing at Cohere's OpenAI-compatible API.
// The API key is left empty and must be supplied.
func DefaultConfig() *Config {
	return &Config{
		Provider:    ProviderOpenAI,
		Host:        DefaultHost,
		Model:       DefaultModel,
		Temperature: 0.1,
		MaxTokens:   4000,
		MaxRetries:  3,
		RetryDelay:  time.Second,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithProvider("ollama"),
//	    WithHost("http://localhost:11434"),
//	    WithModel("qwen2.5:3b"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize puts the configuration in canonical form.
func (c *Config) Normalize() {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	c.Host = strings.TrimSuffix(strings.TrimSpace(c.Host), "/")
	c.Model = strings.TrimSpace(c.Model)
}

// RequiresAPIKey reports whether the provider is hosted and needs a key.
func (c *Config) RequiresAPIKey() bool {
	return c.Provider != ProviderOllama
}

// Validate checks that the configuration is valid and complete.
// It normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	switch c.Provider {
	case ProviderOpenAI, ProviderOllama, ProviderAnthropic:
	case "":
		return fmt.Errorf("%w: Provider is required", ErrInvalidConfig)
	default:
		return fmt.Errorf("%w: %w: %q", ErrInvalidConfig, ErrUnknownProvider, c.Provider)
	}
	if c.Model == "" {
		return fmt.Errorf("%w: Model is required", ErrInvalidConfig)
	}
	if c.RequiresAPIKey() && c.APIKey == "" {
		return fmt.Errorf("%w: APIKey is required for provider %s", ErrInvalidConfig, c.Provider)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("%w: Temperature must be between 0 and 2", ErrInvalidConfig)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("%w: MaxTokens must be positive", ErrInvalidConfig)
	}
	if c.MaxRetries <= 0 {
		return fmt.Errorf("%w: MaxRetries must be positive", ErrInvalidConfig)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("%w: RetryDelay must not be negative", ErrInvalidConfig)
	}
	return nil
}
