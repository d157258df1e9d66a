// FILE: vislog/src/internal/core/const.go
package core

// MarkerWidth is the byte length of every field marker
const MarkerWidth = 4

// Field markers in the order they appear inside a record
const (
	MarkerPID       = "Pid#"
	MarkerTime      = "Tim#"
	MarkerTID       = "Tid#"
	MarkerLogger    = "Log#"
	MarkerComponent = "Src#"
	MarkerFile      = "Fil#"
	MarkerLine      = "Lin#"
	MarkerLevel     = "Lvl#"
	MarkerMessage   = "Msg#"
)

// RecordStart opens every record; its recurrence is the only record delimiter
const RecordStart = MarkerPID

// Field names as exposed to filters and output templates
const (
	FieldPID       = "pid"
	FieldTime      = "time"
	FieldTID       = "tid"
	FieldLogger    = "logger"
	FieldComponent = "component"
	FieldFile      = "file"
	FieldLine      = "line"
	FieldLevel     = "level"
	FieldMessage   = "message"
)

// Marker pairs a tag with the field whose raw value follows it
type Marker struct {
	Tag   string
	Field string
}

// Grammar is the fixed marker sequence of a record. Message is last and has no
// terminating marker.
var Grammar = [...]Marker{
	{Tag: MarkerPID, Field: FieldPID},
	{Tag: MarkerTime, Field: FieldTime},
	{Tag: MarkerTID, Field: FieldTID},
	{Tag: MarkerLogger, Field: FieldLogger},
	{Tag: MarkerComponent, Field: FieldComponent},
	{Tag: MarkerFile, Field: FieldFile},
	{Tag: MarkerLine, Field: FieldLine},
	{Tag: MarkerLevel, Field: FieldLevel},
	{Tag: MarkerMessage, Field: FieldMessage},
}

// DefaultTimeFormat matches the broker's native timestamp rendering,
// e.g. "Tue Jul 9 09:09:27 2024 612542us"
const DefaultTimeFormat = "%a %b %e %H:%M:%S %Y %fus"

// DefaultTemplate is the output template used when none is configured
const DefaultTemplate = "{level}: {message}"
