package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/itchyny/timefmt-go"
)

// ParseTime parses value with a strftime-style layout. "UNIX" accepts epoch
// seconds. Layouts without a zone yield UTC. A layout ending in "%fus" takes
// exactly six fraction digits, so "5us" is rejected rather than read as
// 500000 microseconds.
func ParseTime(layout string, value string) (time.Time, error) {
	if layout == "UNIX" {
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse value='%s' as int64: %w", value, err)
		}
		return time.Unix(i, 0).UTC(), nil
	}

	if strings.HasSuffix(layout, microsSuffix) && !hasMicros(value) {
		return time.Time{}, fmt.Errorf("value='%s' does not match layout '%s': microseconds need six digits", value, layout)
	}

	t, err := timefmt.Parse(value, layout)
	if err != nil {
		return time.Time{}, fmt.Errorf("value='%s' does not match layout '%s': %w", value, layout, err)
	}
	return t, nil
}

const microsSuffix = "%fus"

// hasMicros reports whether value ends in exactly six digits followed by "us"
func hasMicros(value string) bool {
	digits, ok := strings.CutSuffix(value, "us")
	if !ok || len(digits) < 6 {
		return false
	}
	for _, c := range digits[len(digits)-6:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	if n := len(digits); n > 6 {
		if c := digits[n-7]; c >= '0' && c <= '9' {
			return false
		}
	}
	return true
}

// FormatTime renders t with a strftime-style layout
func FormatTime(layout string, t time.Time) string {
	if layout == "UNIX" {
		return strconv.FormatInt(t.Unix(), 10)
	}
	return timefmt.Format(t, layout)
}
