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


// Package yamlmend wires the YAML repair gate, the text generator, the prompt
// set and the record store into one service.
package yamlmend

import (
	"errors"
	"log/slog"

	"github.com/poiesic/yamlmend/ai"
	"github.com/poiesic/yamlmend/ai/langchain"
	"github.com/poiesic/yamlmend/pipeline"
	"github.com/poiesic/yamlmend/prompt"
	"github.com/poiesic/yamlmend/repair"
	"github.com/poiesic/yamlmend/server"
	"github.com/poiesic/yamlmend/storage"
	"github.com/poiesic/yamlmend/storage/badger"
)

// ErrStorageDisabled is returned when records are requested from a service
// opened without a database.
var ErrStorageDisabled = errors.New("record storage is disabled")

// Service wires the repair gate to its optional collaborators: the text
// generator, the prompt set and the badger record store. The repairer is
// always present. The others stay nil unless the matching option was given:
// NewPipeline then fails with the pipeline's Err*Required errors and Records
// with ErrStorageDisabled. Close releases the record store.
type Service struct {
	backend   *badger.Backend
	records   storage.RecordRepository
	generator ai.Generator
	repairer  *repair.Repairer
	prompts   *prompt.Set
	model     string
	logger    *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	aiConfig   *ai.Config
	generator  ai.Generator
	model      string
	dbPath     string
	inMemory   bool
	oracle     string
	promptBase string
	prompts    *prompt.Set
}

// WithAIConfig builds a langchaingo generator from cfg.
func WithAIConfig(cfg *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.aiConfig = cfg
	}
}

// WithGenerator uses gen instead of building one. model is recorded on
// format records.
func WithGenerator(gen ai.Generator, model string) ServiceOption {
	return func(o *serviceOptions) {
		o.generator = gen
		o.model = model
	}
}

// WithDatabase stores format records in a badger database at path.
func WithDatabase(path string) ServiceOption {
	return func(o *serviceOptions) {
		o.dbPath = path
	}
}

// WithInMemoryDatabase stores format records in memory.
func WithInMemoryDatabase() ServiceOption {
	return func(o *serviceOptions) {
		o.inMemory = true
	}
}

// WithOracle selects the validating parser by name, see repair.NewOracle.
func WithOracle(name string) ServiceOption {
	return func(o *serviceOptions) {
		o.oracle = name
	}
}

// WithPromptBase loads the prompt set from the conventional layout under base.
func WithPromptBase(base string) ServiceOption {
	return func(o *serviceOptions) {
		o.promptBase = base
	}
}

// WithPrompts uses an already loaded prompt set.
func WithPrompts(set *prompt.Set) ServiceOption {
	return func(o *serviceOptions) {
		o.prompts = set
	}
}

// NewService assembles a service. Only the repair gate is mandatory: the
// generator, prompts and database are set up when their options are given.
func NewService(opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{}
	for _, opt := range opts {
		opt(options)
	}

	logger := slog.Default().With("component", "yamlmend")

	oracle, err := repair.NewOracle(options.oracle)
	if err != nil {
		return nil, err
	}

	svc := &Service{
		repairer:  repair.NewRepairer(oracle),
		generator: options.generator,
		model:     options.model,
		prompts:   options.prompts,
		logger:    logger,
	}

	if svc.generator == nil && options.aiConfig != nil {
		gen, err := langchain.NewGenerator(options.aiConfig)
		if err != nil {
			return nil, err
		}
		svc.generator = gen
		svc.model = options.aiConfig.Model
	}

	if svc.prompts == nil && options.promptBase != "" {
		paths := prompt.PathsFromBase(options.promptBase)
		if err := paths.Check(); err != nil {
			return nil, err
		}
		set, err := prompt.Load(paths)
		if err != nil {
			return nil, err
		}
		svc.prompts = set
	}

	if options.dbPath != "" || options.inMemory {
		backend, err := badger.OpenBackend(options.dbPath, options.inMemory)
		if err != nil {
			return nil, err
		}
		svc.backend = backend
		svc.records = badger.NewRecordRepository(backend)
	}

	return svc, nil
}

// Close releases the record store.
func (s *Service) Close() error {
	if s.records != nil {
		if err := s.records.Close(); err != nil {
			s.logger.Error("error closing record repository", "err", err)
			return err
		}
	}
	if s.backend != nil {
		if err := s.backend.Close(); err != nil {
			s.logger.Error("error closing backend storage", "err", err)
			return err
		}
	}
	return nil
}

// Repairer returns the repair gate.
func (s *Service) Repairer() *repair.Repairer {
	return s.repairer
}

// Records returns the record repository, or ErrStorageDisabled.
func (s *Service) Records() (storage.RecordRepository, error) {
	if s.records == nil {
		return nil, ErrStorageDisabled
	}
	return s.records, nil
}

// NewPipeline creates a format pipeline. The caller must Release it.
func (s *Service) NewPipeline(opts ...pipeline.Option) (*pipeline.Pipeline, error) {
	opts = append([]pipeline.Option{pipeline.WithModel(s.model)}, opts...)
	return pipeline.New(s.generator, s.repairer, s.prompts, s.records, opts...)
}

// NewServer creates an HTTP server backed by p.
func (s *Service) NewServer(p *pipeline.Pipeline, opts ...server.Option) (*server.Server, error) {
	return server.New(p, s.repairer, s.records, opts...)
}
