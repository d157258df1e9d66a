// FILE: vislog/src/cmd/vislog/bootstrap.go
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"vislog/src/internal/config"
	"vislog/src/internal/core"
	"vislog/src/internal/service"

	"github.com/lixenwraith/log"
)

// Exit codes
const (
	exitProcessing    = 1
	exitConfiguration = 2
)

// loadConfig resolves the layered configuration and attaches positional files
func loadConfig(flagCfg *FlagConfig) (*config.Config, error) {
	if flagCfg.ConfigFile != "" {
		os.Setenv("VISLOG_CONFIG_FILE", flagCfg.ConfigFile)
	}

	cfg, err := config.LoadWithCLI(flagCfg.Overrides)
	if err != nil {
		return nil, err
	}

	if len(flagCfg.Files) > 0 {
		cfg.Files = flagCfg.Files
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// bootstrapService builds the pipeline; every error here is a configuration error
func bootstrapService(cfg *config.Config) (*service.Service, error) {
	svc, err := service.NewService(cfg, os.Stdin, os.Stdout, logger)
	if err != nil {
		return nil, err
	}

	logger.Debug("msg", "Service created",
		"files", len(cfg.Files),
		"follow", cfg.Input.Follow,
		"criteria", cfg.Filter.Supplied(),
		"formatter", cfg.Format.Type)
	return svc, nil
}

// exitCodeFor maps a run error to the process exit status
func exitCodeFor(err error) int {
	var ce *core.ConfigurationError
	if errors.As(err, &ce) {
		return exitConfiguration
	}
	return exitProcessing
}

// initializeLogger sets up the logger based on configuration
func initializeLogger(cfg *config.Config) error {
	logger = log.NewLogger()

	var configArgs []string

	if cfg.Quiet {
		// In quiet mode, disable ALL logging output
		configArgs = append(configArgs,
			"disable_file=true",
			"enable_stdout=false",
			"level=255")

		return logger.InitWithDefaults(configArgs...)
	}

	levelValue, err := parseLogLevel(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	configArgs = append(configArgs, fmt.Sprintf("level=%d", levelValue))

	// Records own stdout, console diagnostics always go to stderr
	switch cfg.Logging.Output {
	case "none":
		configArgs = append(configArgs, "disable_file=true", "enable_stdout=false")

	case "stderr":
		configArgs = append(configArgs,
			"disable_file=true",
			"enable_stdout=true",
			"stdout_target=stderr")

	case "file":
		configArgs = append(configArgs, "enable_stdout=false")
		configureFileLogging(&configArgs, cfg)

	case "both":
		configArgs = append(configArgs, "enable_stdout=true", "stdout_target=stderr")
		configureFileLogging(&configArgs, cfg)

	default:
		return fmt.Errorf("invalid log output mode: %s", cfg.Logging.Output)
	}

	if cfg.Logging.Format != "" {
		configArgs = append(configArgs, fmt.Sprintf("format=%s", cfg.Logging.Format))
	}

	return logger.InitWithDefaults(configArgs...)
}

// configureFileLogging sets up file-based logging parameters
func configureFileLogging(configArgs *[]string, cfg *config.Config) {
	*configArgs = append(*configArgs,
		fmt.Sprintf("directory=%s", cfg.Logging.File.Directory),
		fmt.Sprintf("name=%s", cfg.Logging.File.Name),
		fmt.Sprintf("max_size_mb=%d", cfg.Logging.File.MaxSizeMB))
}

func parseLogLevel(level string) (int, error) {
	switch strings.ToLower(level) {
	case "debug":
		return int(log.LevelDebug), nil
	case "info":
		return int(log.LevelInfo), nil
	case "warn", "warning":
		return int(log.LevelWarn), nil
	case "error":
		return int(log.LevelError), nil
	default:
		return 0, fmt.Errorf("unknown log level: %s", level)
	}
}
