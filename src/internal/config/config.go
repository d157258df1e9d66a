// FILE: vislog/src/internal/config/config.go
package config

// Config is the complete runtime configuration
type Config struct {
	// Input and output time layout (strftime style)
	TimeFormat string `toml:"time_format"`

	// Suppress all diagnostic output
	Quiet bool `toml:"quiet"`

	Filter  FilterConfig `toml:"filter"`
	Format  FormatConfig `toml:"format"`
	Input   InputConfig  `toml:"input"`
	Logging LogConfig    `toml:"logging"`

	// Files to read in order; empty means standard input
	Files []string `toml:"files"`
}

// FormatConfig selects how accepted records are rendered
type FormatConfig struct {
	// Formatter type: "placeholder", "template", "json", "raw"
	Type string `toml:"type"`

	// Template string; "{field}" placeholders or a Go text/template
	Template string `toml:"template"`

	// Layout of the rendered time field, defaults to Config.TimeFormat
	TimeFormat string `toml:"time_format"`
}

// InputConfig controls how input bytes are read
type InputConfig struct {
	// Standard input read size in bytes
	ChunkSize int64 `toml:"chunk_size"`

	// Keep reading the last file as it grows
	Follow bool `toml:"follow"`
}

// OutputTimeFormat returns the layout used to render the time field
func (c *Config) OutputTimeFormat() string {
	if c.Format.TimeFormat != "" {
		return c.Format.TimeFormat
	}
	return c.TimeFormat
}
