// FILE: vislog/src/internal/format/json.go
package format

import (
	"strconv"

	"vislog/src/internal/core"
	"vislog/src/internal/parser"

	"github.com/lixenwraith/log"
	"github.com/valyala/fastjson"
)

// JSONFormatter produces one JSON object per record
type JSONFormatter struct {
	arena      fastjson.Arena
	timeFormat string
	logger     *log.Logger
}

// NewJSONFormatter creates a JSON formatter rendering time with timeFormat
func NewJSONFormatter(timeFormat string, logger *log.Logger) (*JSONFormatter, error) {
	return &JSONFormatter{
		timeFormat: timeFormat,
		logger:     logger,
	}, nil
}

// Format transforms a record into a JSON line. Not safe for concurrent use;
// the arena is reused between calls.
func (f *JSONFormatter) Format(rec core.Record) ([]byte, error) {
	a := &f.arena
	a.Reset()

	o := a.NewObject()
	o.Set(core.FieldPID, a.NewNumberString(strconv.FormatUint(rec.PID, 10)))
	o.Set(core.FieldTime, a.NewString(parser.FormatTime(f.timeFormat, rec.Time)))
	o.Set(core.FieldTID, a.NewNumberString(strconv.FormatUint(rec.TID, 10)))
	o.Set(core.FieldLogger, a.NewString(rec.Logger))
	o.Set(core.FieldComponent, a.NewString(rec.Component))
	o.Set(core.FieldFile, a.NewString(rec.File))
	o.Set(core.FieldLine, a.NewNumberString(strconv.FormatUint(rec.Line, 10)))
	o.Set(core.FieldLevel, a.NewString(rec.Level.String()))
	o.Set(core.FieldMessage, a.NewString(rec.Message))

	return append(o.MarshalTo(nil), '\n'), nil
}

// Name returns the formatter's type name.
func (f *JSONFormatter) Name() string {
	return "json"
}
