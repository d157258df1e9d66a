package core

import (
	"fmt"
	"strings"
)

// Level is the severity of a broker record, ordered from most to least severe
type Level uint8

const (
	LevelEmerg Level = iota
	LevelAlert
	LevelCrit
	LevelError
	LevelWarning
	LevelInfo
	LevelDebug
)

var levelNames = [...]string{"EMERG", "ALERT", "CRIT", "ERROR", "WARN", "INFO", "DEBUG"}

// Accepted spellings, matched case-insensitively
var levelAliases = map[string]Level{
	"emerg":     LevelEmerg,
	"emergency": LevelEmerg,
	"ermg":      LevelEmerg,
	"emg":       LevelEmerg,
	"alert":     LevelAlert,
	"alt":       LevelAlert,
	"crit":      LevelCrit,
	"critical":  LevelCrit,
	"ciritcal":  LevelCrit,
	"crt":       LevelCrit,
	"error":     LevelError,
	"err":       LevelError,
	"warning":   LevelWarning,
	"warn":      LevelWarning,
	"wrn":       LevelWarning,
	"info":      LevelInfo,
	"inf":       LevelInfo,
	"debug":     LevelDebug,
	"dbg":       LevelDebug,
}

// ParseLevel looks up an alias. The second result is false for unknown aliases.
func ParseLevel(alias string) (Level, bool) {
	l, ok := levelAliases[strings.ToLower(alias)]
	return l, ok
}

// Aliases returns every accepted spelling of l in lower case
func (l Level) Aliases() []string {
	var out []string
	for alias, lvl := range levelAliases {
		if lvl == l {
			out = append(out, alias)
		}
	}
	return out
}

// String returns the display name
func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return fmt.Sprintf("Level(%d)", uint8(l))
}

func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(text []byte) error {
	lvl, ok := ParseLevel(string(text))
	if !ok {
		return fmt.Errorf("unknown log level %q", string(text))
	}
	*l = lvl
	return nil
}

// Levels lists all levels in severity order
func Levels() []Level {
	return []Level{LevelEmerg, LevelAlert, LevelCrit, LevelError, LevelWarning, LevelInfo, LevelDebug}
}
