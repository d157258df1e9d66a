// FILE: vislog/src/cmd/vislog/output.go
package main

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Console carries user-facing messages on stderr. Records never pass through
// it. Notices respect quiet mode, fatal errors are always printed.
type Console struct {
	mu     sync.Mutex
	quiet  bool
	stderr io.Writer
	exit   func(code int)
}

// Process-wide console
var console = NewConsole(os.Stderr, os.Exit)

// NewConsole writes to w and terminates through exit
func NewConsole(w io.Writer, exit func(code int)) *Console {
	return &Console{
		stderr: w,
		exit:   exit,
	}
}

// SetQuiet updates quiet mode once flags or the final configuration are known
func (c *Console) SetQuiet(quiet bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quiet = quiet
}

// Notice writes an informational line unless quiet
func (c *Console) Notice(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.quiet {
		fmt.Fprintf(c.stderr, format, args...)
	}
}

// FatalError reports the error that ended the run and exits with code
func (c *Console) FatalError(code int, err error) {
	c.mu.Lock()
	fmt.Fprintf(c.stderr, "Error: %v\n", err)
	c.mu.Unlock()
	c.exit(code)
}
