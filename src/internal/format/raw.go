// FILE: vislog/src/internal/format/raw.go
package format

import (
	"vislog/src/internal/core"

	"github.com/lixenwraith/log"
)

// Outputs only the record message
type RawFormatter struct {
	logger *log.Logger
}

// Creates a new raw formatter
func NewRawFormatter(logger *log.Logger) (*RawFormatter, error) {
	return &RawFormatter{
		logger: logger,
	}, nil
}

// Returns the message with a newline appended
func (f *RawFormatter) Format(rec core.Record) ([]byte, error) {
	return withNewline([]byte(rec.Message)), nil
}

// Returns the formatter name
func (f *RawFormatter) Name() string {
	return "raw"
}
