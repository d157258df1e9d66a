// FILE: vislog/src/internal/sink/sink.go
package sink

import (
	"time"

	"vislog/src/internal/core"
)

// Sink represents an output destination for accepted records
type Sink interface {
	// Write renders and emits one record
	Write(rec core.Record) error

	// Flush pushes buffered output to the destination
	Flush() error

	// GetStats returns sink statistics
	GetStats() SinkStats
}

// SinkStats contains statistics about a sink
type SinkStats struct {
	Type           string
	TotalProcessed uint64
	TotalBytes     uint64
	StartTime      time.Time
	LastProcessed  time.Time
	Details        map[string]any
}
