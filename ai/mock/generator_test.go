package mock

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/poiesic/yamlmend/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ai.Generator = (*MockGenerator)(nil)

func TestMockGenerator(t *testing.T) {
	gen := NewMockGenerator("name: foo")

	text, err := gen.Generate(context.Background(), "system", "first")
	require.NoError(t, err)
	assert.Equal(t, "name: foo", text)

	gen.GenerateFunc = func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
		return "", errors.New("boom")
	}
	_, err = gen.Generate(context.Background(), "system", "second")
	assert.EqualError(t, err, "boom")

	assert.Equal(t, 2, gen.CallCount())
	assert.Equal(t, []string{"first", "second"}, gen.Prompts())

	gen.Reset()
	assert.Zero(t, gen.CallCount())
	assert.Empty(t, gen.Prompts())
	text, err = gen.Generate(context.Background(), "system", "third")
	require.NoError(t, err)
	assert.Equal(t, "name: foo", text)
}

func TestMockGenerator_Concurrent(t *testing.T) {
	gen := NewMockGenerator("ok")

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = gen.Generate(context.Background(), "s", "u")
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, gen.CallCount())
}
