// Package config loads and validates index build configuration.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-hamt/pkg/hamt"
	"github.com/dd0wney/cluso-hamt/pkg/logging"
)

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Config describes how an index is built and framed.
type Config struct {
	// BitmaskSize is the per-layer bitmask width in bytes (fan-out / 8).
	BitmaskSize int `yaml:"bitmask_size" validate:"required,oneof=1 2 4 8"`
	// ValueSize is the fixed value width in bytes.
	ValueSize int `yaml:"value_size" validate:"required,oneof=1 2 4 8"`
	// Compression enables snappy compression of the framed payload.
	Compression bool `yaml:"compression"`
	// LogLevel names a minimum log level, converted by Level. The index
	// package does not read it; its logger comes from the logging option.
	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		BitmaskSize: int(hamt.Bitmask4),
		ValueSize:   int(hamt.Value4),
		LogLevel:    "info",
	}
}

// Parse decodes and validates a YAML configuration document. Fields not
// present in the document keep their defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and validates a YAML configuration file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return Parse(data)
}

// Validate checks the configuration against its struct constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// BitmaskWidth returns the bitmask size as the codec's type.
func (c Config) BitmaskWidth() hamt.BitmaskSize {
	return hamt.BitmaskSize(c.BitmaskSize)
}

// ValueWidth returns the value size as the codec's type.
func (c Config) ValueWidth() hamt.ValueSize {
	return hamt.ValueSize(c.ValueSize)
}

// Level returns the configured log level.
func (c Config) Level() logging.Level {
	return logging.ParseLevel(c.LogLevel)
}
