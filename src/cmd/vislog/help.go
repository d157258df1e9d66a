// FILE: vislog/src/cmd/vislog/help.go
package main

import (
	"fmt"
	"io"
	"strings"
)

const helpHeader = `vislog: filter and reformat VisiBroker log files.

Usage:
  vislog [options] [file...]

Reads the given files in order, or standard input when no file is given.
Files ending in .gz or .zst are decompressed transparently.

`

const helpFooter = `
Configuration Sources (Precedence: CLI > Env > File > Defaults):
  - CLI flags override all other settings
  - VISLOG_* environment variables override file settings (e.g. VISLOG_FILTER_LEVEL)
  - TOML file from --config, VISLOG_CONFIG_FILE or ~/.config/vislog.toml

Placeholders for --fmt: {pid} {time} {tid} {logger} {component} {file} {line} {level} {message}
Levels: emerg, alert, crit, error, warning, info, debug (and their short aliases)

Exit status: 0 on success, 1 when a record or input cannot be processed,
2 when the configuration or a filter option is invalid.

Examples:
  # Errors only
  vislog -l error broker.log

  # Records from one source line after a point in time
  vislog -s vorb.C:17 -a "Tue Jul 9 09:00:00 2024 000000us" broker.log.gz

  # JSON lines from a live log
  vislog --format json --follow broker.log
`

// printHelp writes the usage text generated from the flag table
func printHelp(w io.Writer) {
	var sb strings.Builder
	sb.WriteString(helpHeader)
	sb.WriteString("Options:\n")
	for _, def := range configFlags {
		name := "    --" + def.long
		if def.short != "" {
			name = fmt.Sprintf("-%s, --%s", def.short, def.long)
		}
		fmt.Fprintf(&sb, "  %-22s %s\n", name, def.usage)
	}
	fmt.Fprintf(&sb, "  %-22s %s\n", "    --config", "Config file path")
	fmt.Fprintf(&sb, "  %-22s %s\n", "    --save-config", "Write the effective config to a TOML file and exit")
	fmt.Fprintf(&sb, "  %-22s %s\n", "-v, --version", "Display version information and exit")
	fmt.Fprintf(&sb, "  %-22s %s\n", "-h, --help", "Display this help message and exit")
	sb.WriteString(helpFooter)
	fmt.Fprint(w, sb.String())
}
