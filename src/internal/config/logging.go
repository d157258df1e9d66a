// FILE: vislog/src/internal/config/logging.go
package config

// LogConfig represents diagnostic logging configuration
type LogConfig struct {
	// Output mode: "stderr", "file", "both", "none"
	Output string `toml:"output"`

	// Log level: "debug", "info", "warn", "error"
	Level string `toml:"level"`

	// Console format: "txt" or "json"
	Format string `toml:"format"`

	// File output settings (when Output is "file" or "both")
	File LogFileConfig `toml:"file"`
}

type LogFileConfig struct {
	// Directory for log files
	Directory string `toml:"directory"`

	// Base name for log files
	Name string `toml:"name"`

	// Maximum size per log file in MB
	MaxSizeMB int64 `toml:"max_size_mb"`
}

// DefaultLogConfig returns the logging defaults; records own stdout so
// diagnostics go to stderr
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Output: "stderr",
		Level:  "warn",
		Format: "txt",
		File: LogFileConfig{
			Directory: "./log",
			Name:      "vislog",
			MaxSizeMB: 100,
		},
	}
}
