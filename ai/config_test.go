package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "https://api.cohere.ai/compatibility/v1", cfg.Host)
	assert.Equal(t, "command-r7b-12-2024", cfg.Model)
	assert.Equal(t, 0.1, cfg.Temperature)
	assert.Equal(t, 4000, cfg.MaxTokens)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, time.Second, cfg.RetryDelay)
	assert.Empty(t, cfg.APIKey)
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		assert.Equal(t, DefaultConfig(), NewConfig())
	})

	t.Run("with multiple options", func(t *testing.T) {
		cfg := NewConfig(
			WithProvider("ollama"),
			WithHost("http://localhost:11434"),
			WithModel("qwen2.5:3b"),
			WithAPIKey("secret"),
			WithTemperature(0.5),
			WithMaxTokens(512),
			WithRetries(5, 10*time.Millisecond),
		)

		assert.Equal(t, "ollama", cfg.Provider)
		assert.Equal(t, "http://localhost:11434", cfg.Host)
		assert.Equal(t, "qwen2.5:3b", cfg.Model)
		assert.Equal(t, "secret", cfg.APIKey)
		assert.Equal(t, 0.5, cfg.Temperature)
		assert.Equal(t, 512, cfg.MaxTokens)
		assert.Equal(t, 5, cfg.MaxRetries)
		assert.Equal(t, 10*time.Millisecond, cfg.RetryDelay)
	})
}

func TestConfigNormalize(t *testing.T) {
	cfg := &Config{
		Provider: " OpenAI ",
		Host:     "http://localhost:8080/v1/",
		Model:    " gpt-4o-mini ",
	}

	cfg.Normalize()

	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "http://localhost:8080/v1", cfg.Host)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return NewConfig(WithAPIKey("key"))
	}

	t.Run("valid config", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	t.Run("ollama needs no key", func(t *testing.T) {
		cfg := NewConfig(WithProvider("Ollama"), WithModel("qwen2.5:3b"))
		require.NoError(t, cfg.Validate())
		assert.Equal(t, ProviderOllama, cfg.Provider)
	})

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"missing provider", func(c *Config) { c.Provider = "" }, "Provider"},
		{"missing model", func(c *Config) { c.Model = "" }, "Model"},
		{"missing api key", func(c *Config) { c.APIKey = "" }, "APIKey"},
		{"temperature too high", func(c *Config) { c.Temperature = 2.5 }, "Temperature"},
		{"temperature negative", func(c *Config) { c.Temperature = -0.1 }, "Temperature"},
		{"zero max tokens", func(c *Config) { c.MaxTokens = 0 }, "MaxTokens"},
		{"zero retries", func(c *Config) { c.MaxRetries = 0 }, "MaxRetries"},
		{"negative delay", func(c *Config) { c.RetryDelay = -time.Second }, "RetryDelay"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.field)
		})
	}

	t.Run("unknown provider", func(t *testing.T) {
		cfg := valid()
		cfg.Provider = "cohere"

		err := cfg.Validate()
		assert.ErrorIs(t, err, ErrUnknownProvider)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}
