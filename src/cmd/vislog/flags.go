// FILE: vislog/src/cmd/vislog/flags.go
package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
)

// FlagConfig holds parsed command-line state
type FlagConfig struct {
	ConfigFile  string
	SaveConfig  string
	ShowVersion bool
	Quiet       bool

	// "--section.key=value" overrides for the config loader, one per set flag
	Overrides []string

	// Positional input files
	Files []string
}

// flagDef binds a long flag, its optional short alias and the config key it
// overrides
type flagDef struct {
	long   string
	short  string
	key    string
	usage  string
	isBool bool
}

var configFlags = []flagDef{
	{long: "pid", short: "p", key: "filter.pid", usage: "Only records from this process id"},
	{long: "tid", short: "t", key: "filter.tid", usage: "Only records from this thread id"},
	{long: "logger", key: "filter.logger", usage: "Only records from this logger"},
	{long: "component", short: "c", key: "filter.component", usage: "Only records from this component"},
	{long: "level", short: "l", key: "filter.level", usage: "Only records with this level"},
	{long: "message", short: "m", key: "filter.message", usage: "Only records whose message matches this regex"},
	{long: "before", short: "b", key: "filter.before", usage: "Only records at or before this time"},
	{long: "after", short: "a", key: "filter.after", usage: "Only records at or after this time"},
	{long: "source", short: "s", key: "filter.source", usage: "Only records from this source file, optionally file:line"},
	{long: "loose-time", key: "filter.loose_time", usage: "Guess the layout of --before and --after", isBool: true},
	{long: "fmt", short: "f", key: "format.template", usage: "Output template"},
	{long: "format", key: "format.type", usage: "Output formatter: placeholder, template, json, raw"},
	{long: "date-fmt", key: "time_format", usage: "Input time layout"},
	{long: "out-date-fmt", key: "format.time_format", usage: "Output time layout"},
	{long: "follow", key: "input.follow", usage: "Keep reading the last file as it grows", isBool: true},
	{long: "chunk-size", key: "input.chunk_size", usage: "Standard input read size in bytes"},
	{long: "log-level", key: "logging.level", usage: "Diagnostic log level: debug, info, warn, error"},
	{long: "log-output", key: "logging.output", usage: "Diagnostic log output: stderr, file, both, none"},
	{long: "quiet", short: "q", key: "quiet", usage: "Suppress all diagnostic output", isBool: true},
}

// ParseFlags parses args (without the program name). Flags and files may be
// interleaved; everything after "--" is a file.
func ParseFlags(args []string) (*FlagConfig, error) {
	fc := &FlagConfig{}

	fs := flag.NewFlagSet("vislog", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&fc.ConfigFile, "config", "", "Config file path")
	fs.StringVar(&fc.SaveConfig, "save-config", "", "Write the effective config to this path and exit")
	fs.BoolVar(&fc.ShowVersion, "version", false, "Show version information")
	fs.BoolVar(&fc.ShowVersion, "v", false, "Show version information")

	strValues := make(map[string]*string)
	boolValues := make(map[string]*bool)
	for _, def := range configFlags {
		if def.isBool {
			v := new(bool)
			boolValues[def.long] = v
			fs.BoolVar(v, def.long, false, def.usage)
			if def.short != "" {
				fs.BoolVar(v, def.short, false, def.usage)
			}
			continue
		}
		v := new(string)
		strValues[def.long] = v
		fs.StringVar(v, def.long, "", def.usage)
		if def.short != "" {
			fs.StringVar(v, def.short, "", def.usage)
		}
	}

	flagArgs, tail := splitTerminator(args)
	for {
		if err := fs.Parse(flagArgs); err != nil {
			return nil, err
		}
		flagArgs = fs.Args()
		if len(flagArgs) == 0 {
			break
		}
		fc.Files = append(fc.Files, flagArgs[0])
		flagArgs = flagArgs[1:]
	}
	fc.Files = append(fc.Files, tail...)

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	for _, def := range configFlags {
		if !set[def.long] && !(def.short != "" && set[def.short]) {
			continue
		}

		var value string
		if def.isBool {
			value = strconv.FormatBool(*boolValues[def.long])
		} else {
			value = *strValues[def.long]
		}
		if def.long == "chunk-size" {
			if _, err := strconv.ParseInt(value, 10, 64); err != nil {
				return nil, fmt.Errorf("invalid chunk-size: %s", value)
			}
		}
		if def.long == "quiet" {
			fc.Quiet = *boolValues[def.long]
		}
		fc.Overrides = append(fc.Overrides, fmt.Sprintf("--%s=%s", def.key, value))
	}

	return fc, nil
}

func splitTerminator(args []string) ([]string, []string) {
	for i, arg := range args {
		if arg == "--" {
			return args[:i], args[i+1:]
		}
	}
	return args, nil
}
