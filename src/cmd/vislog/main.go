// FILE: vislog/src/cmd/vislog/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"vislog/src/internal/version"

	"github.com/lixenwraith/log"
)

var logger *log.Logger

func main() {
	code, err := run()
	if err != nil {
		console.FatalError(code, err)
	}
	os.Exit(code)
}

// run returns the exit status and the error that ended the run, if any.
// Deferred cleanup completes before main reports the error.
func run() (int, error) {
	flagCfg, err := ParseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printHelp(os.Stdout)
			return 0, nil
		}
		return exitConfiguration, fmt.Errorf("%w (run 'vislog --help' for usage)", err)
	}

	console.SetQuiet(flagCfg.Quiet)

	if flagCfg.ShowVersion {
		fmt.Println(version.String())
		return 0, nil
	}

	cfg, err := loadConfig(flagCfg)
	if err != nil {
		return exitConfiguration, fmt.Errorf("failed to load config: %w", err)
	}
	console.SetQuiet(cfg.Quiet)

	if flagCfg.SaveConfig != "" {
		if err := cfg.SaveToFile(flagCfg.SaveConfig); err != nil {
			return exitProcessing, err
		}
		console.Notice("Configuration written to %s\n", flagCfg.SaveConfig)
		return 0, nil
	}

	if err := initializeLogger(cfg); err != nil {
		return exitConfiguration, fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer shutdownLogger()

	logger.Info("msg", "vislog starting",
		"version", version.String(),
		"config_file", flagCfg.ConfigFile,
		"files", len(cfg.Files),
		"log_output", cfg.Logging.Output)

	svc, err := bootstrapService(cfg)
	if err != nil {
		logFatal(cfg.Logging.Output, err)
		return exitConfiguration, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sh := NewSignalHandler(cancel, logger)
	defer sh.Stop()
	go sh.Handle(ctx)

	runErr := svc.Run(ctx)
	if err := svc.Shutdown(); err != nil && runErr == nil {
		runErr = err
	}

	if runErr != nil {
		logFatal(cfg.Logging.Output, runErr)
		return exitCodeFor(runErr), runErr
	}
	return 0, nil
}

// logFatal records the fatal error in the log file. Console output is left
// to main so the error appears once on stderr.
func logFatal(output string, err error) {
	if output == "file" {
		logger.Error("msg", "Run aborted", "error", err)
	}
}

func shutdownLogger() {
	if logger != nil {
		if err := logger.Shutdown(2 * time.Second); err != nil {
			// Best effort - can't log the shutdown error
			console.Notice("Logger shutdown error: %v\n", err)
		}
	}
}
