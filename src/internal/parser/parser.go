// FILE: vislog/src/internal/parser/parser.go
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"vislog/src/internal/core"
)

// Parser converts record blobs into records. It holds no state besides the
// time layout and is safe to reuse.
type Parser struct {
	timeFormat string
}

// New creates a parser using the given strftime-style time layout. An empty
// layout selects core.DefaultTimeFormat.
func New(timeFormat string) *Parser {
	if timeFormat == "" {
		timeFormat = core.DefaultTimeFormat
	}
	return &Parser{timeFormat: timeFormat}
}

// TimeFormat returns the layout used for the time field
func (p *Parser) TimeFormat() string {
	return p.timeFormat
}

// Parse extracts and converts every field of a single record blob
func (p *Parser) Parse(blob string) (core.Record, error) {
	raw, err := Fields(blob)
	if err != nil {
		return core.Record{}, err
	}

	var rec core.Record

	if rec.PID, err = parseUint(core.FieldPID, raw[core.FieldPID]); err != nil {
		return core.Record{}, err
	}

	rec.Time, err = ParseTime(p.timeFormat, raw[core.FieldTime])
	if err != nil {
		return core.Record{}, &core.FieldConversionError{Field: core.FieldTime, Raw: raw[core.FieldTime], Err: err}
	}

	if rec.TID, err = parseUint(core.FieldTID, raw[core.FieldTID]); err != nil {
		return core.Record{}, err
	}

	rec.Logger = raw[core.FieldLogger]
	rec.Component = raw[core.FieldComponent]
	rec.File = raw[core.FieldFile]

	if rec.Line, err = parseUint(core.FieldLine, raw[core.FieldLine]); err != nil {
		return core.Record{}, err
	}

	level, ok := core.ParseLevel(raw[core.FieldLevel])
	if !ok {
		return core.Record{}, &core.FieldConversionError{
			Field: core.FieldLevel,
			Raw:   raw[core.FieldLevel],
			Err:   fmt.Errorf("unrecognized log level %q", raw[core.FieldLevel]),
		}
	}
	rec.Level = level

	rec.Message = raw[core.FieldMessage]
	return rec, nil
}

// Fields locates every grammar marker in order and returns the trimmed raw
// text of each field keyed by field name. Each marker is searched for after
// the end of the previous one; the message runs to the end of the blob.
// A marker absent from its place but present further on, for example inside
// the message text, is matched there; the error then names the first marker
// that cannot be found after it.
func Fields(blob string) (map[string]string, error) {
	var starts [len(core.Grammar)]int

	pos := 0
	for i, m := range core.Grammar {
		idx := strings.Index(blob[pos:], m.Tag)
		if idx < 0 {
			return nil, &core.MissingMarkerError{Marker: m.Tag, Field: m.Field, Blob: blob}
		}
		starts[i] = pos + idx
		pos = starts[i] + core.MarkerWidth
	}

	fields := make(map[string]string, len(core.Grammar))
	for i, m := range core.Grammar {
		end := len(blob)
		if i+1 < len(core.Grammar) {
			end = starts[i+1]
		}
		fields[m.Field] = strings.TrimSpace(blob[starts[i]+core.MarkerWidth : end])
	}
	return fields, nil
}

func parseUint(field, raw string) (uint64, error) {
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok {
			err = numErr.Err
		}
		return 0, &core.FieldConversionError{Field: field, Raw: raw, Err: err}
	}
	return v, nil
}
