// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/larris-tools/lsfconv/lib/lsfconfig"
)

// commonFlags are accepted by both subcommands: which config file to
// load, and the two fields a flag may override after loading it.
type commonFlags struct {
	configPath string
	cacheDir   string
	logLevel   string
}

func (f *commonFlags) register(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&f.configPath, "config", "", "path to an lsfconv config file (default: $LSFCONV_CONFIG, or built-in defaults)")
	flagSet.StringVar(&f.cacheDir, "cache-dir", "", "directory for the decoded-resource cache (overrides config; caching disabled if empty)")
	flagSet.StringVar(&f.logLevel, "log-level", "", "debug, info, warn, or error (overrides config)")
}

// resolve loads the configuration named by --config (or $LSFCONV_CONFIG
// if --config was not given) and applies the --cache-dir/--log-level
// overrides on top of it.
func (f *commonFlags) resolve() (*lsfconfig.Config, error) {
	var cfg *lsfconfig.Config
	var err error
	if f.configPath != "" {
		cfg, err = lsfconfig.LoadFile(f.configPath)
	} else {
		cfg, err = lsfconfig.Load()
	}
	if err != nil {
		return nil, err
	}

	if f.cacheDir != "" {
		cfg.CacheDir = f.cacheDir
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	return cfg, nil
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}
