// Package userconfig provides user-level defaults for logview, stored in
// ~/.config/logview/config.yaml. Command-line flags override them.
package userconfig

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/natefinch/atomic"

	"github.com/docker/logview/pkg/parser"
	"github.com/docker/logview/pkg/paths"
)

// CurrentVersion is the current version of the config format.
const CurrentVersion = "v1"

// Config holds the defaults applied to every run.
type Config struct {
	Version string `yaml:"version,omitempty"`
	// Parser is the default line parser name.
	Parser string `yaml:"parser,omitempty"`
	// Theme is system, light or dark.
	Theme string `yaml:"theme,omitempty"`
	// FPS is the viewer refresh rate.
	FPS int `yaml:"fps,omitempty"`
	// MaxColumnWidth truncates wide columns. Zero means unlimited.
	MaxColumnWidth int `yaml:"max_column_width,omitempty"`
	// Follow keeps reading regular files as they grow.
	Follow bool `yaml:"follow,omitempty"`
}

// Default returns the configuration written by "logview config init".
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Parser:  parser.Spaces.String(),
		Theme:   "system",
		FPS:     30,
	}
}

// Path returns the path to the config file.
func Path() string {
	return filepath.Join(paths.ConfigDir(), "config.yaml")
}

// Load reads the user configuration. A missing file yields an empty config.
func Load() (*Config, error) {
	return LoadFile(Path())
}

// LoadFile reads the configuration stored at path.
func LoadFile(path string) (*Config, error) {
	config := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return config, nil
}

// Validate checks the values that cannot be checked by the YAML decoder.
func (c *Config) Validate() error {
	if c.Parser != "" {
		if _, err := parser.Lookup(c.Parser); err != nil {
			return err
		}
	}
	if c.FPS < 0 {
		return fmt.Errorf("fps must not be negative, got %d", c.FPS)
	}
	if c.MaxColumnWidth < 0 {
		return fmt.Errorf("max_column_width must not be negative, got %d", c.MaxColumnWidth)
	}
	return nil
}

// Marshal returns the YAML form of the configuration.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Save writes the configuration to the config file.
func (c *Config) Save() error {
	return c.SaveFile(Path())
}

// SaveFile atomically replaces the file at path with the configuration.
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	c.Version = CurrentVersion

	data, err := c.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return atomic.WriteFile(path, bytes.NewReader(data))
}
