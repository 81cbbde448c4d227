package yamlmend

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/yamlmend/ai"
	"github.com/poiesic/yamlmend/ai/mock"
	"github.com/poiesic/yamlmend/pipeline"
	"github.com/poiesic/yamlmend/prompt"
	"github.com/poiesic/yamlmend/repair"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPrompts() *prompt.Set {
	return &prompt.Set{System: "system", User: "{INPUT_CONTENT}"}
}

func TestNewService(t *testing.T) {
	t.Run("repair only", func(t *testing.T) {
		svc, err := NewService()
		require.NoError(t, err)
		defer svc.Close()

		fixed, err := svc.Repairer().Repair("name: foo\nname: bar")
		require.NoError(t, err)
		assert.Equal(t, "name: foo", fixed)

		_, err = svc.Records()
		assert.ErrorIs(t, err, ErrStorageDisabled)

		_, err = svc.NewPipeline()
		assert.ErrorIs(t, err, pipeline.ErrGeneratorRequired)
	})

	t.Run("generator without prompts", func(t *testing.T) {
		svc, err := NewService(WithGenerator(mock.NewMockGenerator(""), "m"))
		require.NoError(t, err)
		defer svc.Close()

		_, err = svc.NewPipeline()
		assert.ErrorIs(t, err, pipeline.ErrPromptsRequired)
	})

	t.Run("database on disk", func(t *testing.T) {
		svc, err := NewService(WithDatabase(filepath.Join(t.TempDir(), "db")))
		require.NoError(t, err)

		records, err := svc.Records()
		require.NoError(t, err)
		assert.NotNil(t, records)
		assert.NoError(t, svc.Close())
	})

	t.Run("invalid database path", func(t *testing.T) {
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		require.NoError(t, os.WriteFile(tmpFile, []byte("test"), 0644))

		svc, err := NewService(WithDatabase(tmpFile))
		assert.Error(t, err)
		assert.Nil(t, svc)
	})

	t.Run("unknown oracle", func(t *testing.T) {
		_, err := NewService(WithOracle("strict"))
		assert.ErrorIs(t, err, repair.ErrUnknownOracle)
	})

	t.Run("invalid ai config", func(t *testing.T) {
		_, err := NewService(WithAIConfig(ai.NewConfig()))
		assert.ErrorIs(t, err, ai.ErrInvalidConfig)
	})

	t.Run("ai config builds generator", func(t *testing.T) {
		svc, err := NewService(
			WithAIConfig(ai.NewConfig(ai.WithAPIKey("key"))),
			WithPrompts(testPrompts()),
		)
		require.NoError(t, err)
		defer svc.Close()
		assert.Equal(t, ai.DefaultModel, svc.model)

		p, err := svc.NewPipeline()
		require.NoError(t, err)
		p.Release()
	})

	t.Run("missing prompt files", func(t *testing.T) {
		_, err := NewService(WithPromptBase(t.TempDir()))
		assert.ErrorIs(t, err, prompt.ErrPromptNotFound)
	})
}

func TestService_FormatAndServe(t *testing.T) {
	gen := mock.NewMockGenerator("```yaml\nitems:\n- one\n- two\n```")
	svc, err := NewService(
		WithGenerator(gen, "mock-model"),
		WithPrompts(testPrompts()),
		WithInMemoryDatabase(),
		WithOracle("goccy"),
	)
	require.NoError(t, err)
	defer svc.Close()

	p, err := svc.NewPipeline(pipeline.WithCache(true))
	require.NoError(t, err)
	defer p.Release()

	record, err := p.Format(context.Background(), pipeline.Input{Source: "list.txt", Content: "two items"})
	require.NoError(t, err)
	assert.Equal(t, "items:\n- one\n- two", record.Output)
	assert.Equal(t, "mock-model", record.Model)

	records, err := svc.Records()
	require.NoError(t, err)
	listed, err := records.ListRecords(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	srv, err := svc.NewServer(p)
	require.NoError(t, err)
	assert.NotNil(t, srv.Handler())
}
