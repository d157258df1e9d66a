package format

import (
	"fmt"
	"io"

	"vislog/src/internal/core"

	"github.com/lixenwraith/log"
	"github.com/valyala/fasttemplate"
)

// PlaceholderFormatter substitutes "{field}" placeholders
type PlaceholderFormatter struct {
	template   *fasttemplate.Template
	timeFormat string
	logger     *log.Logger
}

// NewPlaceholderFormatter compiles tmpl. Unclosed braces and unknown
// placeholder names are rejected here rather than per record.
func NewPlaceholderFormatter(tmpl, timeFormat string, logger *log.Logger) (*PlaceholderFormatter, error) {
	t, err := fasttemplate.NewTemplate(tmpl, "{", "}")
	if err != nil {
		return nil, &core.ConfigurationError{Option: "template", Value: tmpl, Err: err}
	}

	f := &PlaceholderFormatter{
		template:   t,
		timeFormat: timeFormat,
		logger:     logger,
	}

	if _, err := f.render(core.Record{}); err != nil {
		return nil, &core.ConfigurationError{Option: "template", Value: tmpl, Err: err}
	}
	return f, nil
}

// Format renders the record through the template
func (f *PlaceholderFormatter) Format(rec core.Record) ([]byte, error) {
	s, err := f.render(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to format output: %w", err)
	}
	return withNewline([]byte(s)), nil
}

func (f *PlaceholderFormatter) render(rec core.Record) (string, error) {
	fields := Fields(rec, f.timeFormat)
	return f.template.ExecuteFuncStringWithErr(func(w io.Writer, tag string) (int, error) {
		v, ok := fields[tag]
		if !ok {
			return 0, fmt.Errorf("unknown placeholder {%s}", tag)
		}
		return io.WriteString(w, v)
	})
}

// Name returns the formatter name
func (f *PlaceholderFormatter) Name() string {
	return "placeholder"
}
