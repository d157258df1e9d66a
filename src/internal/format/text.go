// FILE: vislog/src/internal/format/text.go
package format

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"vislog/src/internal/core"
	"vislog/src/internal/parser"

	"github.com/lixenwraith/log"
)

// TextFormatter renders records with a Go text/template
type TextFormatter struct {
	template   *template.Template
	timeFormat string
	logger     *log.Logger
}

// NewTextFormatter parses tmpl with the helper functions available
func NewTextFormatter(tmpl, timeFormat string, logger *log.Logger) (*TextFormatter, error) {
	f := &TextFormatter{
		timeFormat: timeFormat,
		logger:     logger,
	}

	// Create template with helper functions
	funcMap := template.FuncMap{
		"FmtTime": func(t time.Time) string {
			return parser.FormatTime(f.timeFormat, t)
		},
		"ToUpper":   strings.ToUpper,
		"ToLower":   strings.ToLower,
		"TrimSpace": strings.TrimSpace,
	}

	t, err := template.New("record").Funcs(funcMap).Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return nil, &core.ConfigurationError{Option: "template", Value: tmpl, Err: fmt.Errorf("invalid template: %w", err)}
	}

	f.template = t
	return f, nil
}

// Format executes the template for the record
func (f *TextFormatter) Format(rec core.Record) ([]byte, error) {
	data := map[string]any{
		"PID":       rec.PID,
		"Time":      rec.Time,
		"TID":       rec.TID,
		"Logger":    rec.Logger,
		"Component": rec.Component,
		"File":      rec.File,
		"Line":      rec.Line,
		"Level":     rec.Level.String(),
		"Message":   rec.Message,
	}

	var buf bytes.Buffer
	if err := f.template.Execute(&buf, data); err != nil {
		f.logger.Debug("msg", "Template execution failed",
			"component", "text_formatter",
			"error", err)
		return nil, fmt.Errorf("failed to format output: %w", err)
	}

	return withNewline(buf.Bytes()), nil
}

// Name returns the formatter name
func (f *TextFormatter) Name() string {
	return "template"
}
