// Package config loads the configuration of the tagframe command.
//
// Configuration is loaded from a single YAML file specified by:
//   - the --config flag, or
//   - the TAGFRAME_CONFIG environment variable
//
// There is no automatic discovery. Without either, Default is used.
// Command-line flags override file values.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/simonhull/tagframe/internal/id3v2"
	"github.com/simonhull/tagframe/internal/wire"
)

// EnvVar names the environment variable holding the config file path.
const EnvVar = "TAGFRAME_CONFIG"

// Config is the configuration of the tagframe command.
type Config struct {
	// Output configures how records are written to stdout.
	Output OutputConfig `yaml:"output"`

	// Write configures how updated tags are written to disk.
	Write WriteConfig `yaml:"write"`

	// Log configures diagnostic output on stderr.
	Log LogConfig `yaml:"log"`
}

// OutputConfig configures record output.
type OutputConfig struct {
	// Format is the wire format of records on stdin and stdout.
	// Values: "json", "cbor". Default: json
	Format string `yaml:"format"`
}

// WriteConfig configures tag writing.
type WriteConfig struct {
	// Backup is the suffix of a backup copy of the original file.
	// Empty disables backups.
	Backup string `yaml:"backup"`

	// Validate re-reads the file after writing and compares fingerprints.
	Validate bool `yaml:"validate"`

	// PreserveModTime restores the original modification time.
	PreserveModTime bool `yaml:"preserve_mod_time"`

	// Padding is the number of zero bytes after the last frame.
	// Default: 1024
	Padding int `yaml:"padding"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is the minimum level logged: debug, info, warn or error.
	// Default: warn
	Level string `yaml:"level"`

	// Format is "text" or "json". Default: text
	Format string `yaml:"format"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Format: string(wire.FormatJSON),
		},
		Write: WriteConfig{
			Padding: id3v2.DefaultPadding,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load loads the file named by path, or by TAGFRAME_CONFIG when path is
// empty. With neither set, it returns Default.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path. Values missing
// from the file keep their defaults; unknown keys are an error.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if _, err := wire.ParseFormat(c.Output.Format); err != nil {
		errs = append(errs, fmt.Errorf("output.format: %w", err))
	}
	if c.Write.Padding < 0 {
		errs = append(errs, fmt.Errorf("write.padding must not be negative, got %d", c.Write.Padding))
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, err
	}
	return level, nil
}
