package core

import (
	"fmt"
)

// MissingMarkerError reports a record blob without one of the grammar markers
type MissingMarkerError struct {
	Marker string
	Field  string
	Blob   string
}

func (e *MissingMarkerError) Error() string {
	return fmt.Sprintf("malformed record: missing %s marker (%s): %q", e.Marker, e.Field, e.Blob)
}

// FieldConversionError reports a field that is present but cannot be converted
type FieldConversionError struct {
	Field string
	Raw   string
	Err   error
}

func (e *FieldConversionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to parse %s from value='%s': %v", e.Field, e.Raw, e.Err)
	}
	return fmt.Sprintf("failed to parse %s from value='%s'", e.Field, e.Raw)
}

func (e *FieldConversionError) Unwrap() error {
	return e.Err
}

// InputEncodingError reports input bytes that are not valid UTF-8
type InputEncodingError struct {
	Source string
	Offset int64
}

func (e *InputEncodingError) Error() string {
	return fmt.Sprintf("invalid UTF-8 in %s near byte offset %d", e.Source, e.Offset)
}

// ConfigurationError reports an unusable option value detected at startup
type ConfigurationError struct {
	Option string
	Value  string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s '%s': %v", e.Option, e.Value, e.Err)
	}
	return fmt.Sprintf("invalid %s '%s'", e.Option, e.Value)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
