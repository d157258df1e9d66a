// FILE: vislog/src/cmd/vislog/signal.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/lixenwraith/log"
)

// Exit status after a second interrupt (128 + SIGINT)
const exitInterrupted = 130

// SignalHandler cancels the run on the first SIGINT or SIGTERM. A second
// signal exits immediately, e.g. while blocked reading a terminal.
type SignalHandler struct {
	logger  *log.Logger
	sigChan chan os.Signal
	cancel  context.CancelFunc
}

// NewSignalHandler registers for termination signals
func NewSignalHandler(cancel context.CancelFunc, logger *log.Logger) *SignalHandler {
	sh := &SignalHandler{
		logger:  logger,
		sigChan: make(chan os.Signal, 1),
		cancel:  cancel,
	}

	signal.Notify(sh.sigChan, syscall.SIGINT, syscall.SIGTERM)
	return sh
}

// Handle processes signals until ctx is done. After the first signal it
// only waits for a second one.
func (sh *SignalHandler) Handle(ctx context.Context) {
	done := ctx.Done()
	for {
		select {
		case sig := <-sh.sigChan:
			if done == nil {
				os.Exit(exitInterrupted)
			}
			sh.logger.Info("msg", "Shutdown signal received, flushing pending record",
				"signal", sig.String())
			sh.cancel()
			done = nil
		case <-done:
			return
		}
	}
}

// Stop cleans up signal handling
func (sh *SignalHandler) Stop() {
	signal.Stop(sh.sigChan)
}
