// FILE: vislog/src/internal/source/source.go
package source

import (
	"context"
	"errors"
	"time"
)

// ErrRotated is returned by Next when the input was truncated or replaced.
// Data before it and after it belong to different files; reading continues
// with the next call.
var ErrRotated = errors.New("input rotated")

// Represents an input byte stream consumed chunk by chunk
type Source interface {
	// Returns the input name used in diagnostics and errors
	Name() string

	// Returns the next chunk, or io.EOF once the input is drained.
	// The returned slice is only valid until the next call.
	Next(ctx context.Context) ([]byte, error)

	// Releases the underlying handles
	Close() error

	// Returns source statistics
	GetStats() SourceStats
}

// Contains statistics about a source
type SourceStats struct {
	Type         string
	Name         string
	TotalBytes   uint64
	TotalChunks  uint64
	StartTime    time.Time
	LastReadTime time.Time
	Details      map[string]any
}
