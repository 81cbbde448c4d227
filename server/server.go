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


// Package server exposes the format pipeline and the repair gate over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/poiesic/yamlmend/core"
	"github.com/poiesic/yamlmend/pipeline"
	"github.com/poiesic/yamlmend/repair"
	"github.com/poiesic/yamlmend/storage"
)

// DefaultPort is the port the service listens on unless configured.
const DefaultPort = 6666

// DefaultMaxBodyBytes caps request bodies unless configured.
const DefaultMaxBodyBytes int64 = 10 << 20

// Formatter turns one input into a format record.
type Formatter interface {
	Format(ctx context.Context, in pipeline.Input) (*core.FormatRecord, error)
}

// Server is the HTTP front end.
type Server struct {
	formatter       Formatter
	repairer        *repair.Repairer
	records         storage.RecordRepository
	engine          *gin.Engine
	addr            string
	shutdownTimeout time.Duration
	maxBodyBytes    int64
	logger          *slog.Logger
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithAddr sets the listen address. Default is 0.0.0.0:6666.
func WithAddr(addr string) Option {
	return func(s *Server) error {
		s.addr = addr
		return nil
	}
}

// WithPort listens on all interfaces at port.
func WithPort(port int) Option {
	return func(s *Server) error {
		if port <= 0 || port > 65535 {
			return fmt.Errorf("invalid port %d", port)
		}
		s.addr = fmt.Sprintf("0.0.0.0:%d", port)
		return nil
	}
}

// WithShutdownTimeout bounds graceful shutdown. Default is 10s.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) error {
		s.shutdownTimeout = d
		return nil
	}
}

// WithMaxBodyBytes caps the size of request bodies, uploads included.
// Larger requests are rejected with 413. Default is 10 MiB.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) error {
		if n <= 0 {
			return fmt.Errorf("invalid body limit %d", n)
		}
		s.maxBodyBytes = n
		return nil
	}
}

// New creates a server. records may be nil, in which case the record
// endpoints respond with 503.
func New(formatter Formatter, repairer *repair.Repairer, records storage.RecordRepository, opts ...Option) (*Server, error) {
	if formatter == nil {
		return nil, ErrFormatterRequired
	}
	if repairer == nil {
		return nil, ErrRepairerRequired
	}

	s := &Server{
		formatter:       formatter,
		repairer:        repairer,
		records:         records,
		addr:            fmt.Sprintf("0.0.0.0:%d", DefaultPort),
		shutdownTimeout: 10 * time.Second,
		maxBodyBytes:    DefaultMaxBodyBytes,
		logger:          slog.Default().With("component", "http-server"),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	s.engine = gin.New()
	s.engine.MaxMultipartMemory = s.maxBodyBytes
	s.engine.Use(gin.Recovery(), requestID(), accessLog(s.logger), bodyLimit(s.maxBodyBytes))
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.engine.POST("/format-yaml", s.handleFormat)
	s.engine.POST("/repair", s.handleRepair)
	s.engine.GET("/records", s.handleListRecords)
	s.engine.GET("/records/:id", s.handleGetRecord)
	s.engine.GET("/health", s.handleHealth)
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.addr
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
