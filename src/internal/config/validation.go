package config

import (
	"fmt"
	"strings"

	lconfig "github.com/lixenwraith/config"
)

// validateConfig checks structural settings. Filter criteria are validated
// when the filter chain is built.
func validateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	if err := lconfig.NonEmpty(cfg.TimeFormat); err != nil {
		return fmt.Errorf("time_format: %w", err)
	}

	if err := validateLogConfig(&cfg.Logging); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	if err := validateFormatConfig(&cfg.Format); err != nil {
		return fmt.Errorf("format config: %w", err)
	}

	if cfg.Input.ChunkSize <= 0 {
		return fmt.Errorf("input chunk size must be positive: %d", cfg.Input.ChunkSize)
	}

	for i, file := range cfg.Files {
		if strings.TrimSpace(file) == "" {
			return fmt.Errorf("file %d: empty path", i)
		}
	}

	return nil
}

// Validate re-runs validation, e.g. after positional files were attached
func (c *Config) Validate() error {
	return validateConfig(c)
}

func validateLogConfig(cfg *LogConfig) error {
	validOutputs := map[string]bool{
		"file": true, "stderr": true, "both": true, "none": true,
	}
	if !validOutputs[cfg.Output] {
		return fmt.Errorf("invalid log output mode: %s", cfg.Output)
	}

	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[cfg.Level] {
		return fmt.Errorf("invalid log level: %s", cfg.Level)
	}

	validFormats := map[string]bool{
		"txt": true, "json": true, "": true,
	}
	if !validFormats[cfg.Format] {
		return fmt.Errorf("invalid log format: %s", cfg.Format)
	}

	if cfg.Output == "file" || cfg.Output == "both" {
		if err := lconfig.NonEmpty(cfg.File.Directory); err != nil {
			return fmt.Errorf("log file directory: %w", err)
		}
		if err := lconfig.NonEmpty(cfg.File.Name); err != nil {
			return fmt.Errorf("log file name: %w", err)
		}
	}

	return nil
}

func validateFormatConfig(cfg *FormatConfig) error {
	if cfg.Type == "" {
		cfg.Type = "placeholder"
	}

	switch cfg.Type {
	case "placeholder", "template":
		if err := lconfig.NonEmpty(cfg.Template); err != nil {
			return fmt.Errorf("%s formatter requires a template", cfg.Type)
		}
	case "json", "raw":
	default:
		return fmt.Errorf("unknown formatter type '%s' (valid: placeholder, template, json, raw)", cfg.Type)
	}

	return nil
}
