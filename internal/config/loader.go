package config

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/pickline/pickline/internal/core"
)

// Loader handles loading and parsing of config.yaml files.
type Loader struct {
	logger *zap.Logger
}

// NewLoader creates a new configuration loader.
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger}
}

// LoadFromFile loads configuration from a YAML file. If the file does
// not exist, the default configuration is returned with no error.
func (l *Loader) LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	l.logger.Debug("loaded configuration", zap.String("path", path))
	return cfg, nil
}

// LoadDefault loads configuration from the default path
// (~/.pickline/config.yaml).
func (l *Loader) LoadDefault() (*Config, error) {
	return l.LoadFromFile(core.ConfigFile())
}
