// FILE: vislog/src/internal/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"vislog/src/internal/core"

	lconfig "github.com/lixenwraith/config"
)

// DefaultChunkSize is the standard input read size
const DefaultChunkSize = 4096

func defaults() *Config {
	return &Config{
		TimeFormat: core.DefaultTimeFormat,
		Format: FormatConfig{
			Type:     "placeholder",
			Template: core.DefaultTemplate,
		},
		Input: InputConfig{
			ChunkSize: DefaultChunkSize,
		},
		Logging: DefaultLogConfig(),
	}
}

// LoadWithCLI builds the configuration from defaults, the config file,
// VISLOG_* environment variables and CLI overrides, in increasing precedence.
// cliArgs use the "--section.key=value" form.
func LoadWithCLI(cliArgs []string) (*Config, error) {
	configPath := GetConfigPath()

	cfg, err := lconfig.NewBuilder().
		WithDefaults(defaults()).
		WithEnvPrefix("VISLOG_").
		WithFile(configPath).
		WithArgs(cliArgs).
		WithEnvTransform(customEnvTransform).
		WithSources(
			lconfig.SourceCLI,
			lconfig.SourceEnv,
			lconfig.SourceFile,
			lconfig.SourceDefault,
		).
		Build()

	if err != nil {
		if !strings.Contains(err.Error(), "not found") {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	finalConfig := &Config{}
	if err := cfg.Scan(finalConfig); err != nil {
		return nil, fmt.Errorf("failed to scan config: %w", err)
	}

	return finalConfig, validateConfig(finalConfig)
}

func customEnvTransform(path string) string {
	env := strings.ReplaceAll(path, ".", "_")
	env = strings.ToUpper(env)
	env = "VISLOG_" + env
	return env
}

// GetConfigPath resolves the config file location from VISLOG_CONFIG_FILE,
// VISLOG_CONFIG_DIR or the user's config directory
func GetConfigPath() string {
	if configFile := os.Getenv("VISLOG_CONFIG_FILE"); configFile != "" {
		if filepath.IsAbs(configFile) {
			return configFile
		}
		if configDir := os.Getenv("VISLOG_CONFIG_DIR"); configDir != "" {
			return filepath.Join(configDir, configFile)
		}
		return configFile
	}

	if configDir := os.Getenv("VISLOG_CONFIG_DIR"); configDir != "" {
		return filepath.Join(configDir, "vislog.toml")
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config", "vislog.toml")
	}

	return "vislog.toml"
}
