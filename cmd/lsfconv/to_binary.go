// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"github.com/spf13/pflag"

	"github.com/larris-tools/lsfconv/lib/lsf"
	"github.com/larris-tools/lsfconv/lib/lsx"
)

func runToBinary(args []string) error {
	var common commonFlags
	var outputVersion uint32
	var compressionMethod string
	var compressionLevel uint8
	var swapGUID bool

	flagSet := pflag.NewFlagSet("to-binary", pflag.ContinueOnError)
	common.register(flagSet)
	flagSet.Uint32Var(&outputVersion, "output-version", 0, "LSF version to write, 6 or 7 (overrides config; 0 means use config)")
	flagSet.StringVar(&compressionMethod, "compression", "", "default, none, zlib, lz4, or zstd (overrides config)")
	flagSet.Uint8Var(&compressionLevel, "compression-level", 0, "compression level (overrides config)")
	flagSet.BoolVar(&swapGUID, "swap-guid", false, "set the writer config's LSX-interop GUID swap toggle; LSF UUID bytes are unaffected (overrides config)")
	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return inputError("%v", err)
	}

	positional := flagSet.Args()
	if len(positional) != 2 {
		return inputError("usage: lsfconv to-binary <input.lsx> <output.lsf>")
	}
	inputPath, outputPath := positional[0], positional[1]

	cfg, err := common.resolve()
	if err != nil {
		return inputError("loading configuration: %v", err)
	}

	if flagSet.Changed("output-version") {
		cfg.Writer.OutputVersion = outputVersion
	}
	if flagSet.Changed("compression") {
		cfg.Writer.Method = compressionMethod
	}
	if flagSet.Changed("compression-level") {
		cfg.Writer.Level = compressionLevel
	}
	if flagSet.Changed("swap-guid") {
		cfg.Writer.SwapGUIDOnStringEmit = swapGUID
	}

	writerCfg, err := cfg.Writer.ToWriterConfig()
	if err != nil {
		return inputError("resolving writer configuration: %v", err)
	}

	in, err := os.Open(inputPath)
	if err != nil {
		return inputError("reading %s: %v", inputPath, err)
	}
	defer in.Close()

	res, err := lsx.Read(in)
	if err != nil {
		return classifyLSXError(err)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return outputError("creating %s: %v", outputPath, err)
	}
	defer out.Close()

	if err := lsf.Write(out, res, writerCfg); err != nil {
		return outputError("writing %s: %v", outputPath, err)
	}
	return nil
}
