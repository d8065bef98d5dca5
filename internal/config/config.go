// Package config provides configuration management for pickline.
// It loads ~/.pickline/config.yaml and maps it onto the Config struct,
// falling back to defaults when the file is absent or partially filled.
package config

// Config holds all pickline configuration.
type Config struct {
	// LogLevel controls logging verbosity: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// MaxCandidates limits the candidate list handed to the minibuffer
	// selector; larger sets fall back to standard completion. Zero
	// selects the built-in default, a negative value removes the limit.
	MaxCandidates int `yaml:"max_candidates"`

	// UI configures the minibuffer selector.
	UI UIConfig `yaml:"ui"`

	// History configures the selection history store.
	History HistoryConfig `yaml:"history"`
}

// UIConfig configures the minibuffer selector.
type UIConfig struct {
	// MaxVisible is the number of candidate rows shown at once.
	MaxVisible int `yaml:"max_visible"`

	// HistoryLimit is how many previous selections are offered for
	// history navigation.
	HistoryLimit int `yaml:"history_limit"`
}

// HistoryConfig configures the selection history store.
type HistoryConfig struct {
	// Enabled controls whether selections are persisted at all.
	Enabled bool `yaml:"enabled"`

	// Path overrides the database location. Empty uses the default
	// under the data directory.
	Path string `yaml:"path"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:      "info",
		MaxCandidates: 0,
		UI: UIConfig{
			MaxVisible:   10,
			HistoryLimit: 50,
		},
		History: HistoryConfig{
			Enabled: true,
		},
	}
}
