// FILE: vislog/src/internal/service/pipeline.go
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"vislog/src/internal/config"
	"vislog/src/internal/filter"
	"vislog/src/internal/format"
	"vislog/src/internal/parser"
	"vislog/src/internal/sink"
	"vislog/src/internal/source"
	"vislog/src/internal/splitter"

	"github.com/lixenwraith/log"
)

// Pipeline moves records from an input through the parser and the filter
// chain to the sink, one record at a time.
type Pipeline struct {
	Config      *config.Config
	Parser      *parser.Parser
	FilterChain *filter.Chain
	Sink        sink.Sink
	Stats       *PipelineStats
	logger      *log.Logger
}

// Contains statistics for a pipeline
type PipelineStats struct {
	StartTime             time.Time
	TotalInputs           uint64
	TotalBlobs            uint64
	TotalEntriesProcessed uint64
	TotalEntriesFiltered  uint64
	TotalDiscarded        uint64
	SourceStats           []source.SourceStats
}

// NewPipeline builds the parser, filter chain and formatter for cfg.
// Filter and formatter errors are returned before any input is read.
func NewPipeline(cfg *config.Config, out io.Writer, logger *log.Logger) (*Pipeline, error) {
	chain, err := filter.NewChain(cfg.Filter, cfg.TimeFormat, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create filter chain: %w", err)
	}

	formatter, err := format.New(cfg.Format, cfg.OutputTimeFormat(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create formatter: %w", err)
	}

	p := &Pipeline{
		Config:      cfg,
		Parser:      parser.New(cfg.TimeFormat),
		FilterChain: chain,
		Sink:        sink.NewConsoleSink(out, formatter, logger),
		Stats: &PipelineStats{
			StartTime: time.Now(),
		},
		logger: logger,
	}

	logger.Debug("msg", "Pipeline created",
		"component", "pipeline",
		"time_format", cfg.TimeFormat,
		"formatter", formatter.Name(),
		"criteria", chain.Len())
	return p, nil
}

// ProcessFile reads the whole file, splits it and handles every record
func (p *Pipeline) ProcessFile(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	src, err := source.OpenFile(path, p.logger)
	if err != nil {
		return err
	}
	defer src.Close()

	data, err := src.ReadAll()
	if err != nil {
		return err
	}

	sp := p.newSplitter(path)
	blobs, err := sp.SplitAll(data)
	if err != nil {
		return err
	}

	for _, blob := range blobs {
		if err := p.handleBlob(blob); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	p.Stats.TotalInputs++
	p.Stats.SourceStats = append(p.Stats.SourceStats, src.GetStats())
	return p.Sink.Flush()
}

// ProcessStream feeds chunks from src through the splitter as they arrive.
// Cancellation ends the stream like end of input: the carry-over is
// flushed as the last record.
func (p *Pipeline) ProcessStream(ctx context.Context, src source.Source) error {
	sp := p.newSplitter(src.Name())
	rotated := false

	for {
		chunk, err := src.Next(ctx)
		if errors.Is(err, source.ErrRotated) {
			if err := p.flushRotated(sp, src.Name()); err != nil {
				return fmt.Errorf("%s: %w", src.Name(), err)
			}
			sp = p.newSplitter(src.Name())
			rotated = true
			continue
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				break
			}
			return fmt.Errorf("%s: %w", src.Name(), err)
		}

		blobs, err := sp.Feed(chunk)
		if err != nil {
			return err
		}
		for _, blob := range blobs {
			if err := p.handleBlob(blob); err != nil {
				return fmt.Errorf("%s: %w", src.Name(), err)
			}
		}
		if len(blobs) > 0 {
			if err := p.Sink.Flush(); err != nil {
				return err
			}
		}
	}

	last, ok, err := sp.Flush()
	if err != nil {
		return err
	}
	// Nothing arrived after a rotation
	if rotated && strings.TrimSpace(last) == "" {
		ok = false
	}
	if ok {
		if err := p.handleBlob(last); err != nil {
			return fmt.Errorf("%s: %w", src.Name(), err)
		}
	}

	p.Stats.TotalInputs++
	p.Stats.SourceStats = append(p.Stats.SourceStats, src.GetStats())
	return p.Sink.Flush()
}

// flushRotated ends the carry-over of a rotated input. The last record before
// a rotation may have been cut short; a carry-over that does not parse is
// dropped with a warning instead of failing the run.
func (p *Pipeline) flushRotated(sp *splitter.Splitter, name string) error {
	last, ok, err := sp.Flush()
	if err != nil || !ok {
		return err
	}
	if strings.TrimSpace(last) == "" {
		return nil
	}

	if _, err := p.Parser.Parse(last); err != nil {
		p.Stats.TotalDiscarded++
		p.logger.Warn("msg", "Discarding partial record cut by rotation",
			"component", "pipeline",
			"source", name,
			"bytes", len(last),
			"error", err)
		return nil
	}
	return p.handleBlob(last)
}

func (p *Pipeline) handleBlob(blob string) error {
	p.Stats.TotalBlobs++

	rec, err := p.Parser.Parse(blob)
	if err != nil {
		return err
	}
	p.Stats.TotalEntriesProcessed++

	if !p.FilterChain.Apply(rec) {
		p.Stats.TotalEntriesFiltered++
		return nil
	}
	return p.Sink.Write(rec)
}

func (p *Pipeline) newSplitter(name string) *splitter.Splitter {
	sp := splitter.New(name)
	sp.OnLeading(func(lead string) {
		p.logger.Warn("msg", "Discarding text before first record",
			"component", "pipeline",
			"source", name,
			"bytes", len(lead),
			"text", truncate(strings.TrimSpace(lead), 80))
	})
	return sp
}

// GetStats returns pipeline statistics
func (p *Pipeline) GetStats() map[string]any {
	sourceStats := make([]map[string]any, 0, len(p.Stats.SourceStats))
	for _, s := range p.Stats.SourceStats {
		sourceStats = append(sourceStats, map[string]any{
			"type":         s.Type,
			"name":         s.Name,
			"total_bytes":  s.TotalBytes,
			"total_chunks": s.TotalChunks,
			"details":      s.Details,
		})
	}

	sinkStats := p.Sink.GetStats()
	return map[string]any{
		"uptime_seconds":          int(time.Since(p.Stats.StartTime).Seconds()),
		"total_inputs":            p.Stats.TotalInputs,
		"total_blobs":             p.Stats.TotalBlobs,
		"total_entries_processed": p.Stats.TotalEntriesProcessed,
		"total_entries_filtered":  p.Stats.TotalEntriesFiltered,
		"total_discarded":         p.Stats.TotalDiscarded,
		"sources":                 sourceStats,
		"filters":                 p.FilterChain.GetStats(),
		"sink": map[string]any{
			"type":            sinkStats.Type,
			"total_processed": sinkStats.TotalProcessed,
			"total_bytes":     sinkStats.TotalBytes,
		},
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := 0
	for i := range s {
		if i > n {
			break
		}
		cut = i
	}
	return s[:cut] + "..."
}
