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


package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/yamlmend/ai"
	"github.com/poiesic/yamlmend/core"
	"github.com/poiesic/yamlmend/extract"
	"github.com/poiesic/yamlmend/prompt"
	"github.com/poiesic/yamlmend/repair"
	"github.com/poiesic/yamlmend/storage"
)

// Input is one document to format.
type Input struct {
	Source  string // File name or path, informational only
	Content string
}

// Result pairs an input with its outcome in a batch.
type Result struct {
	Input  Input
	Record *core.FormatRecord
	Err    error
}

// Pipeline formats free text into YAML with a generator and a repair gate.
type Pipeline struct {
	generator ai.Generator
	repairer  *repair.Repairer
	prompts   *prompt.Set
	records   storage.RecordRepository
	pool      *ants.Pool
	cache     bool
	model     string
	progress  io.Writer
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for FormatBatch.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if p.pool != nil {
			p.pool.Release()
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithProgress reports FormatBatch progress to w.
func WithProgress(w io.Writer) Option {
	return func(p *Pipeline) error {
		p.progress = w
		return nil
	}
}

// WithCache serves earlier successful results for identical input from the
// repository instead of calling the generator again.
func WithCache(enabled bool) Option {
	return func(p *Pipeline) error {
		p.cache = enabled
		return nil
	}
}

// WithModel sets the model name stored on records.
func WithModel(model string) Option {
	return func(p *Pipeline) error {
		p.model = model
		return nil
	}
}

// New creates a pipeline. records may be nil, in which case nothing is
// persisted and caching is unavailable.
func New(
	generator ai.Generator,
	repairer *repair.Repairer,
	prompts *prompt.Set,
	records storage.RecordRepository,
	opts ...Option,
) (*Pipeline, error) {
	if generator == nil {
		return nil, ErrGeneratorRequired
	}
	if repairer == nil {
		return nil, ErrRepairerRequired
	}
	if prompts == nil {
		return nil, ErrPromptsRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		generator: generator,
		repairer:  repairer,
		prompts:   prompts,
		records:   records,
		pool:      pool,
		logger:    slog.Default().With("component", "format-pipeline"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Format turns one input into validated YAML. On failure the returned record
// carries the error message and the error is returned as well.
func (p *Pipeline) Format(ctx context.Context, in Input) (*core.FormatRecord, error) {
	if in.Content == "" {
		return nil, core.ErrEmptyInput
	}

	id := core.IDFromContent(in.Content)
	logger := p.logger.With("id", id, "source", in.Source)

	if cached := p.lookup(ctx, id); cached != nil {
		logger.Info("serving cached result")
		return cached, nil
	}

	record := &core.FormatRecord{
		Id:     id,
		Source: in.Source,
		Input:  in.Content,
		Model:  p.model,
	}

	output, repaired, err := p.format(ctx, in.Content)
	if err != nil {
		logger.Error("format failed", "err", err)
		record.Status = core.StatusFailed
		record.Error = err.Error()
	} else {
		logger.Info("format succeeded", "repaired", repaired)
		record.Status = core.StatusSucceeded
		record.Output = output
		record.Repaired = repaired
	}

	saved := p.save(ctx, record, logger)
	return saved, err
}

func (p *Pipeline) format(ctx context.Context, content string) (string, bool, error) {
	response, err := p.generator.Generate(ctx, p.prompts.System, p.prompts.Render(content))
	if err != nil {
		return "", false, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	candidate := extract.YAML(response)
	if candidate == "" {
		return "", false, ErrEmptyOutput
	}
	output, err := p.repairer.Repair(candidate)
	if err != nil {
		return "", false, err
	}
	return output, output != candidate, nil
}

func (p *Pipeline) lookup(ctx context.Context, id core.ID) *core.FormatRecord {
	if !p.cache || p.records == nil {
		return nil
	}
	record, err := p.records.GetRecord(ctx, id)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			p.logger.Warn("cache lookup failed", "id", id, "err", err)
		}
		return nil
	}
	if !record.Succeeded() {
		return nil
	}
	return record
}

func (p *Pipeline) save(ctx context.Context, record *core.FormatRecord, logger *slog.Logger) *core.FormatRecord {
	if p.records == nil {
		now := time.Now().UTC()
		record.CreatedAt = now
		record.UpdatedAt = now
		return record
	}
	saved, err := p.records.SaveRecord(ctx, record)
	if err != nil {
		logger.Error("failed to save record", "err", err)
		return record
	}
	return saved
}

// FormatBatch formats inputs concurrently on the worker pool. Results are
// returned in input order.
func (p *Pipeline) FormatBatch(ctx context.Context, inputs []Input) []Result {
	results := make([]Result, len(inputs))

	var tracker *ProgressTracker
	if p.progress != nil {
		tracker = NewProgressTracker(p.progress, len(inputs), 1)
		tracker.Start()
		defer tracker.Finish()
	}

	var wg sync.WaitGroup
	for i, in := range inputs {
		results[i].Input = in
		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			record, err := p.Format(ctx, in)
			results[i].Record = record
			results[i].Err = err
			if tracker != nil {
				tracker.Record(err == nil)
			}
		})
		if err != nil {
			wg.Done()
			results[i].Err = err
			if tracker != nil {
				tracker.Record(false)
			}
		}
	}
	wg.Wait()

	return results
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
