// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lsfconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/larris-tools/lsfconv/lib/lsf"
)

// Config is the master configuration for the lsfconv CLI.
type Config struct {
	// Writer holds the defaults applied to every to-binary run unless
	// overridden by a CLI flag.
	Writer WriterDefaults `yaml:"writer"`

	// CacheDir enables the parse-result cache when non-empty.
	CacheDir string `yaml:"cache_dir"`

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level"`
}

// WriterDefaults mirrors lib/lsf.WriterConfig using config-friendly
// field types (a compression method name instead of an enum value),
// so a YAML file can name a method without importing lib/lsf's
// numbering.
type WriterDefaults struct {
	OutputVersion uint32 `yaml:"output_version"`

	// Method is one of "default", "none", "zlib", "lz4", "zstd".
	Method string `yaml:"compression_method"`

	Level byte `yaml:"compression_level"`

	SwapGUIDOnStringEmit bool `yaml:"swap_guid_on_string_emit"`
}

var methodNames = map[string]lsf.CompressionMethod{
	"default": lsf.CompressionDefault,
	"none":    lsf.CompressionNone,
	"zlib":    lsf.CompressionZlib,
	"lz4":     lsf.CompressionLZ4,
	"zstd":    lsf.CompressionZstd,
}

// ToWriterConfig resolves d into the lsf.WriterConfig its fields
// describe. An unrecognized Method name is an error rather than a
// silent fallback to the default.
func (d WriterDefaults) ToWriterConfig() (lsf.WriterConfig, error) {
	method, ok := methodNames[d.Method]
	if !ok {
		return lsf.WriterConfig{}, fmt.Errorf("lsfconfig: unknown compression method %q", d.Method)
	}

	return lsf.WriterConfig{
		OutputVersion:        d.OutputVersion,
		Method:               method,
		Level:                d.Level,
		SwapGUIDOnStringEmit: d.SwapGUIDOnStringEmit,
	}, nil
}

// Default returns the default configuration: the writer's own
// documented defaults (output version 7, lz4 compression), caching
// disabled, and info-level logging.
func Default() *Config {
	return &Config{
		Writer: WriterDefaults{
			OutputVersion: lsf.DefaultWriteVersion,
			Method:        "default",
			Level:         0,
		},
		CacheDir: "",
		LogLevel: "info",
	}
}

// Load loads configuration from the LSFCONV_CONFIG environment
// variable. There is no fallback: if the variable is unset, this
// returns [Default] alone — the CLI runs fine without any config
// file, it just has no writer-default overrides.
func Load() (*Config, error) {
	path := os.Getenv("LSFCONV_CONFIG")
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path, merging its
// fields over [Default].
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lsfconfig: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("lsfconfig: parsing %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if _, ok := methodNames[c.Writer.Method]; !ok {
		return fmt.Errorf("lsfconfig: writer.compression_method must be one of default/none/zlib/lz4/zstd, got %q", c.Writer.Method)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("lsfconfig: log_level must be one of debug/info/warn/error, got %q", c.LogLevel)
	}

	return nil
}
