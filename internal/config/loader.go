package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

const breakoutFile = "breakout.yaml"

// LoadOption configures LoadBreakout.
type LoadOption func(*loader)

type loader struct {
	logger *log.Logger
}

// WithLogger reports skipped config files on logger.
func WithLogger(logger *log.Logger) LoadOption {
	return func(l *loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// LoadBreakout loads Breakout configuration.
// Search order: customPath -> ~/.arcade/configs/breakout.yaml -> ./configs/breakout.yaml -> embedded default.
// Files may be partial; missing keys keep their default values.
func LoadBreakout(customPath string, opts ...LoadOption) (BreakoutConfig, error) {
	l := loader{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(&l)
	}

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BreakoutConfig{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := parseBreakout(data)
		if err != nil {
			return BreakoutConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory.
	// Broken files here are skipped with a warning rather than fatal.
	for _, path := range []string{userConfigPath(breakoutFile), filepath.Join("configs", breakoutFile)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			l.logger.Warn("skipping config file", "path", path, "err", err)
			continue
		}
		cfg, err := parseBreakout(data)
		if err != nil {
			l.logger.Warn("skipping config file", "path", path, "err", err)
			continue
		}
		l.logger.Debug("loaded config", "path", path)
		return cfg, nil
	}

	// Use embedded default YAML
	cfg, err := parseBreakout(defaultBreakoutYAML)
	if err != nil {
		return DefaultBreakoutConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseBreakout decodes data over the hardcoded defaults and validates the result.
func parseBreakout(data []byte) (BreakoutConfig, error) {
	cfg := DefaultBreakoutConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BreakoutConfig{}, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return BreakoutConfig{}, fmt.Errorf("invalid: %w", err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
