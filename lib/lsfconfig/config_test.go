// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lsfconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/larris-tools/lsfconv/lib/lsf"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v, want nil", err)
	}
}

func TestDefaultResolvesToLZ4WriterConfig(t *testing.T) {
	cfg, err := Default().Writer.ToWriterConfig()
	if err != nil {
		t.Fatalf("ToWriterConfig: %v", err)
	}
	if cfg.Method != lsf.CompressionDefault {
		t.Fatalf("Method = %v, want CompressionDefault", cfg.Method)
	}
	if cfg.OutputVersion != lsf.DefaultWriteVersion {
		t.Fatalf("OutputVersion = %d, want %d", cfg.OutputVersion, lsf.DefaultWriteVersion)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lsfconv.yaml")
	contents := `
writer:
  output_version: 6
  compression_method: zstd
  compression_level: 5
  swap_guid_on_string_emit: true
cache_dir: /tmp/lsfconv-cache
log_level: debug
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if cfg.Writer.OutputVersion != 6 {
		t.Errorf("OutputVersion = %d, want 6", cfg.Writer.OutputVersion)
	}
	if cfg.Writer.Method != "zstd" {
		t.Errorf("Method = %q, want zstd", cfg.Writer.Method)
	}
	if cfg.Writer.Level != 5 {
		t.Errorf("Level = %d, want 5", cfg.Writer.Level)
	}
	if !cfg.Writer.SwapGUIDOnStringEmit {
		t.Error("SwapGUIDOnStringEmit = false, want true")
	}
	if cfg.CacheDir != "/tmp/lsfconv-cache" {
		t.Errorf("CacheDir = %q, want /tmp/lsfconv-cache", cfg.CacheDir)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}

	writerCfg, err := cfg.Writer.ToWriterConfig()
	if err != nil {
		t.Fatalf("ToWriterConfig: %v", err)
	}
	if writerCfg.OutputVersion != 6 {
		t.Errorf("resolved OutputVersion = %d, want 6", writerCfg.OutputVersion)
	}
}

func TestLoadWithoutEnvReturnsDefault(t *testing.T) {
	t.Setenv("LSFCONV_CONFIG", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Writer.Method != "default" {
		t.Errorf("Method = %q, want default", cfg.Writer.Method)
	}
}

func TestLoadFileRejectsUnknownCompressionMethod(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lsfconv.yaml")
	if err := os.WriteFile(path, []byte("writer:\n  compression_method: made-up\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := LoadFile(path); err == nil {
		t.Fatal("LoadFile with an unknown compression method succeeded, want error")
	}
}

func TestLoadFileRejectsUnknownLogLevel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lsfconv.yaml")
	if err := os.WriteFile(path, []byte("log_level: verbose\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := LoadFile(path); err == nil {
		t.Fatal("LoadFile with an unknown log level succeeded, want error")
	}
}

func TestWriterDefaultsRejectsUnknownMethod(t *testing.T) {
	d := WriterDefaults{Method: "nonsense"}
	if _, err := d.ToWriterConfig(); err == nil {
		t.Fatal("ToWriterConfig with an unknown method succeeded, want error")
	}
}
