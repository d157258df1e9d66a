// FILE: vislog/src/internal/sink/console.go
package sink

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"vislog/src/internal/core"
	"vislog/src/internal/format"

	"github.com/lixenwraith/log"
)

// ConsoleSink writes formatted records to a writer, normally stdout
type ConsoleSink struct {
	output    *bufio.Writer
	formatter format.Formatter
	logger    *log.Logger
	startTime time.Time

	// Statistics
	totalProcessed uint64
	totalBytes     uint64
	lastProcessed  time.Time
}

// NewConsoleSink creates a buffered sink rendering through formatter
func NewConsoleSink(w io.Writer, formatter format.Formatter, logger *log.Logger) *ConsoleSink {
	return &ConsoleSink{
		output:    bufio.NewWriter(w),
		formatter: formatter,
		logger:    logger,
		startTime: time.Now(),
	}
}

func (s *ConsoleSink) Write(rec core.Record) error {
	line, err := s.formatter.Format(rec)
	if err != nil {
		return err
	}

	n, err := s.output.Write(line)
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	s.totalProcessed++
	s.totalBytes += uint64(n)
	s.lastProcessed = time.Now()
	return nil
}

func (s *ConsoleSink) Flush() error {
	if err := s.output.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

func (s *ConsoleSink) GetStats() SinkStats {
	return SinkStats{
		Type:           "console",
		TotalProcessed: s.totalProcessed,
		TotalBytes:     s.totalBytes,
		StartTime:      s.startTime,
		LastProcessed:  s.lastProcessed,
		Details: map[string]any{
			"formatter": s.formatter.Name(),
		},
	}
}
