// FILE: vislog/src/internal/service/service.go
package service

import (
	"context"
	"fmt"
	"io"
	"os"

	"vislog/src/internal/config"
	"vislog/src/internal/source"

	"github.com/lixenwraith/log"
)

// Service runs one pipeline over the configured inputs in order
type Service struct {
	cfg      *config.Config
	stdin    io.Reader
	pipeline *Pipeline
	logger   *log.Logger
}

// NewService creates the pipeline writing to stdout. stdin is read only when
// no files are configured.
func NewService(cfg *config.Config, stdin io.Reader, stdout io.Writer, logger *log.Logger) (*Service, error) {
	pipeline, err := NewPipeline(cfg, stdout, logger)
	if err != nil {
		return nil, err
	}

	return &Service{
		cfg:      cfg,
		stdin:    stdin,
		pipeline: pipeline,
		logger:   logger,
	}, nil
}

// Pipeline returns the service pipeline
func (s *Service) Pipeline() *Pipeline {
	return s.pipeline
}

// Run processes every input. Files are drained one after another and the
// first error aborts the run. In follow mode the last file is streamed until
// ctx is cancelled.
func (s *Service) Run(ctx context.Context) error {
	files := s.cfg.Files
	if len(files) == 0 {
		return s.runStdin(ctx)
	}

	last := len(files) - 1
	for i, path := range files {
		if i == last && s.cfg.Input.Follow {
			return s.follow(ctx, path)
		}

		s.logger.Debug("msg", "Processing file",
			"component", "service",
			"path", path)
		if err := s.pipeline.ProcessFile(ctx, path); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) runStdin(ctx context.Context) error {
	if f, ok := s.stdin.(*os.File); ok && source.IsInteractive(f) {
		s.logger.Warn("msg", "Reading records from terminal, end input with Ctrl-D",
			"component", "service")
	}

	src, err := source.NewStdinSource(s.stdin, s.cfg.Input.ChunkSize, s.logger)
	if err != nil {
		return fmt.Errorf("failed to create stdin source: %w", err)
	}
	defer src.Close()

	return s.pipeline.ProcessStream(ctx, src)
}

func (s *Service) follow(ctx context.Context, path string) error {
	src, err := source.NewFollowSource(path, s.cfg.Input.ChunkSize, s.logger)
	if err != nil {
		return err
	}
	defer src.Close()

	return s.pipeline.ProcessStream(ctx, src)
}

// Shutdown flushes pending output and logs the run statistics
func (s *Service) Shutdown() error {
	err := s.pipeline.Sink.Flush()

	stats := s.pipeline.GetStats()
	s.logger.Info("msg", "Run complete",
		"component", "service",
		"inputs", stats["total_inputs"],
		"records", stats["total_entries_processed"],
		"filtered", stats["total_entries_filtered"])
	return err
}
