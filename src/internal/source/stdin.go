// FILE: vislog/src/internal/source/stdin.go
package source

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/lixenwraith/log"
	"golang.org/x/term"
)

// StdinSource reads standard input in fixed-size chunks
type StdinSource struct {
	reader    io.Reader
	buf       []byte
	logger    *log.Logger
	eof       bool
	startTime time.Time
	lastRead  time.Time
	bytes     uint64
	chunks    uint64
}

// NewStdinSource wraps r, normally os.Stdin, in a chunked source
func NewStdinSource(r io.Reader, chunkSize int64, logger *log.Logger) (*StdinSource, error) {
	if chunkSize <= 0 {
		return nil, errors.New("chunk size must be positive")
	}
	return &StdinSource{
		reader:    r,
		buf:       make([]byte, chunkSize),
		logger:    logger,
		startTime: time.Now(),
	}, nil
}

func (s *StdinSource) Name() string {
	return "<stdin>"
}

// Next blocks until a chunk is available. A short read is returned as is, the
// splitter carries partial records over to the next chunk.
func (s *StdinSource) Next(ctx context.Context) ([]byte, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if s.eof {
			return nil, io.EOF
		}

		n, err := s.reader.Read(s.buf)
		if errors.Is(err, io.EOF) {
			s.eof = true
		} else if err != nil {
			return nil, err
		}
		if n == 0 {
			continue
		}

		s.bytes += uint64(n)
		s.chunks++
		s.lastRead = time.Now()
		s.logger.Debug("msg", "Read stdin chunk",
			"component", "stdin_source",
			"bytes", n)
		return s.buf[:n], nil
	}
}

// Close is a no-op, stdin is owned by the process
func (s *StdinSource) Close() error {
	return nil
}

func (s *StdinSource) GetStats() SourceStats {
	return SourceStats{
		Type:         "stdin",
		Name:         s.Name(),
		TotalBytes:   s.bytes,
		TotalChunks:  s.chunks,
		StartTime:    s.startTime,
		LastReadTime: s.lastRead,
		Details: map[string]any{
			"chunk_size": len(s.buf),
		},
	}
}

// IsInteractive reports whether f is attached to a terminal
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
