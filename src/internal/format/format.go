// FILE: vislog/src/internal/format/format.go
package format

import (
	"fmt"
	"strconv"

	"vislog/src/internal/config"
	"vislog/src/internal/core"
	"vislog/src/internal/parser"

	"github.com/lixenwraith/log"
)

// Formatter defines the interface for rendering an accepted record.
type Formatter interface {
	// Format renders the record as one newline-terminated line.
	Format(rec core.Record) ([]byte, error)

	// Name returns the formatter type name
	Name() string
}

// New creates a new Formatter based on the provided configuration.
func New(cfg config.FormatConfig, timeFormat string, logger *log.Logger) (Formatter, error) {
	if timeFormat == "" {
		timeFormat = core.DefaultTimeFormat
	}

	switch cfg.Type {
	case "", "placeholder":
		return NewPlaceholderFormatter(cfg.Template, timeFormat, logger)
	case "template":
		return NewTextFormatter(cfg.Template, timeFormat, logger)
	case "json":
		return NewJSONFormatter(timeFormat, logger)
	case "raw":
		return NewRawFormatter(logger)
	default:
		return nil, fmt.Errorf("unknown formatter type: %s", cfg.Type)
	}
}

// Fields maps every placeholder name to the string form of the record field.
// The time is rendered with timeFormat and the level with its display name.
func Fields(rec core.Record, timeFormat string) map[string]string {
	return map[string]string{
		core.FieldPID:       strconv.FormatUint(rec.PID, 10),
		core.FieldTime:      parser.FormatTime(timeFormat, rec.Time),
		core.FieldTID:       strconv.FormatUint(rec.TID, 10),
		core.FieldLogger:    rec.Logger,
		core.FieldComponent: rec.Component,
		core.FieldFile:      rec.File,
		core.FieldLine:      strconv.FormatUint(rec.Line, 10),
		core.FieldLevel:     rec.Level.String(),
		core.FieldMessage:   rec.Message,
	}
}

func withNewline(b []byte) []byte {
	if len(b) == 0 || b[len(b)-1] != '\n' {
		b = append(b, '\n')
	}
	return b
}
