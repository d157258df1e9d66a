package config

// FilterConfig holds the optional record criteria. An empty value means the
// criterion was not supplied.
type FilterConfig struct {
	PID       string `toml:"pid"`
	TID       string `toml:"tid"`
	Logger    string `toml:"logger"`
	Component string `toml:"component"`
	Level     string `toml:"level"`
	Message   string `toml:"message"`
	Before    string `toml:"before"`
	After     string `toml:"after"`
	// Source file, optionally suffixed with ":line"
	Source string `toml:"source"`

	// Parse before/after with a format-guessing parser instead of the time layout
	LooseTime bool `toml:"loose_time"`
}

// Supplied returns the names of the criteria that were set
func (f FilterConfig) Supplied() []string {
	var names []string
	for _, opt := range []struct {
		name  string
		value string
	}{
		{"pid", f.PID},
		{"tid", f.TID},
		{"logger", f.Logger},
		{"component", f.Component},
		{"level", f.Level},
		{"message", f.Message},
		{"before", f.Before},
		{"after", f.After},
		{"source", f.Source},
	} {
		if opt.value != "" {
			names = append(names, opt.name)
		}
	}
	return names
}
