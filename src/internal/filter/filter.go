// FILE: vislog/src/internal/filter/filter.go
package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"vislog/src/internal/config"
	"vislog/src/internal/core"
	"vislog/src/internal/parser"

	"github.com/araddon/dateparse"
)

// Criterion is a record predicate closed over one supplied option value.
// The set of variants is fixed; see the types below.
type Criterion interface {
	// Accept reports whether the record satisfies the criterion
	Accept(rec core.Record) bool
	// Name is the option the criterion was built from
	Name() string

	criterion()
}

// PIDCriterion matches an exact process id
type PIDCriterion struct{ PID uint64 }

// TIDCriterion matches an exact thread id
type TIDCriterion struct{ TID uint64 }

// LoggerCriterion matches an exact logger name
type LoggerCriterion struct{ Logger string }

// ComponentCriterion matches an exact component name
type ComponentCriterion struct{ Component string }

// LevelCriterion matches an exact level
type LevelCriterion struct{ Level core.Level }

// MessageCriterion matches when the pattern occurs anywhere in the message
type MessageCriterion struct{ Pattern *regexp.Regexp }

// BeforeCriterion accepts records at or before the threshold, in whole seconds
type BeforeCriterion struct{ Unix int64 }

// AfterCriterion accepts records at or after the threshold, in whole seconds
type AfterCriterion struct{ Unix int64 }

// SourceCriterion matches the source file and, if HasLine, the line
type SourceCriterion struct {
	File    string
	Line    uint64
	HasLine bool
}

func (c PIDCriterion) Accept(rec core.Record) bool       { return rec.PID == c.PID }
func (c TIDCriterion) Accept(rec core.Record) bool       { return rec.TID == c.TID }
func (c LoggerCriterion) Accept(rec core.Record) bool    { return rec.Logger == c.Logger }
func (c ComponentCriterion) Accept(rec core.Record) bool { return rec.Component == c.Component }
func (c LevelCriterion) Accept(rec core.Record) bool     { return rec.Level == c.Level }
func (c MessageCriterion) Accept(rec core.Record) bool   { return c.Pattern.MatchString(rec.Message) }
func (c BeforeCriterion) Accept(rec core.Record) bool    { return rec.Time.Unix() <= c.Unix }
func (c AfterCriterion) Accept(rec core.Record) bool     { return rec.Time.Unix() >= c.Unix }

func (c SourceCriterion) Accept(rec core.Record) bool {
	if rec.File != c.File {
		return false
	}
	return !c.HasLine || rec.Line == c.Line
}

func (PIDCriterion) Name() string       { return "pid" }
func (TIDCriterion) Name() string       { return "tid" }
func (LoggerCriterion) Name() string    { return "logger" }
func (ComponentCriterion) Name() string { return "component" }
func (LevelCriterion) Name() string     { return "level" }
func (MessageCriterion) Name() string   { return "message" }
func (BeforeCriterion) Name() string    { return "before" }
func (AfterCriterion) Name() string     { return "after" }
func (SourceCriterion) Name() string    { return "source" }

func (PIDCriterion) criterion()       {}
func (TIDCriterion) criterion()       {}
func (LoggerCriterion) criterion()    {}
func (ComponentCriterion) criterion() {}
func (LevelCriterion) criterion()     {}
func (MessageCriterion) criterion()   {}
func (BeforeCriterion) criterion()    {}
func (AfterCriterion) criterion()     {}
func (SourceCriterion) criterion()    {}

// BuildCriteria converts the supplied options into criteria. Options left
// empty contribute nothing. Any malformed value fails with a
// *core.ConfigurationError.
func BuildCriteria(cfg config.FilterConfig, timeFormat string) ([]Criterion, error) {
	var criteria []Criterion

	if cfg.TID != "" {
		tid, err := parseID("tid", cfg.TID)
		if err != nil {
			return nil, err
		}
		criteria = append(criteria, TIDCriterion{TID: tid})
	}

	if cfg.Logger != "" {
		criteria = append(criteria, LoggerCriterion{Logger: cfg.Logger})
	}

	if cfg.Component != "" {
		criteria = append(criteria, ComponentCriterion{Component: cfg.Component})
	}

	if cfg.Level != "" {
		level, ok := core.ParseLevel(strings.TrimSpace(cfg.Level))
		if !ok {
			return nil, &core.ConfigurationError{Option: "level", Value: cfg.Level, Err: fmt.Errorf("unrecognized log level")}
		}
		criteria = append(criteria, LevelCriterion{Level: level})
	}

	if cfg.Message != "" {
		re, err := regexp.Compile(cfg.Message)
		if err != nil {
			return nil, &core.ConfigurationError{Option: "message", Value: cfg.Message, Err: err}
		}
		criteria = append(criteria, MessageCriterion{Pattern: re})
	}

	if cfg.Before != "" {
		t, err := parseThreshold("before", cfg.Before, timeFormat, cfg.LooseTime)
		if err != nil {
			return nil, err
		}
		criteria = append(criteria, BeforeCriterion{Unix: t.Unix()})
	}

	if cfg.After != "" {
		t, err := parseThreshold("after", cfg.After, timeFormat, cfg.LooseTime)
		if err != nil {
			return nil, err
		}
		criteria = append(criteria, AfterCriterion{Unix: t.Unix()})
	}

	if cfg.Source != "" {
		src, err := parseSource(cfg.Source)
		if err != nil {
			return nil, err
		}
		criteria = append(criteria, src)
	}

	if cfg.PID != "" {
		pid, err := parseID("pid", cfg.PID)
		if err != nil {
			return nil, err
		}
		criteria = append(criteria, PIDCriterion{PID: pid})
	}

	return criteria, nil
}

func parseID(option, value string) (uint64, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, &core.ConfigurationError{Option: option, Value: value, Err: fmt.Errorf("not an unsigned integer")}
	}
	return id, nil
}

func parseThreshold(option, value, timeFormat string, loose bool) (time.Time, error) {
	var (
		t   time.Time
		err error
	)
	if loose {
		t, err = dateparse.ParseIn(value, time.UTC)
	} else {
		t, err = parser.ParseTime(timeFormat, strings.TrimSpace(value))
	}
	if err != nil {
		return time.Time{}, &core.ConfigurationError{Option: option, Value: value, Err: err}
	}
	return t, nil
}

// parseSource accepts "file" or "file:line". A suffix that is not a number is
// part of the file name.
func parseSource(value string) (SourceCriterion, error) {
	i := strings.LastIndexByte(value, ':')
	if i < 0 {
		return SourceCriterion{File: value}, nil
	}

	file, suffix := value[:i], value[i+1:]
	if suffix == "" || file == "" {
		return SourceCriterion{}, &core.ConfigurationError{Option: "source", Value: value, Err: fmt.Errorf("expected file or file:line")}
	}
	line, err := strconv.ParseUint(suffix, 10, 64)
	if err != nil {
		return SourceCriterion{File: value}, nil
	}
	return SourceCriterion{File: file, Line: line, HasLine: true}, nil
}
