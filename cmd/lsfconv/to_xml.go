// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/larris-tools/lsfconv/lib/lsf"
	"github.com/larris-tools/lsfconv/lib/lsfcache"
	"github.com/larris-tools/lsfconv/lib/lsresource"
	"github.com/larris-tools/lsfconv/lib/lsx"
)

func runToXML(args []string) error {
	var common commonFlags

	flagSet := pflag.NewFlagSet("to-xml", pflag.ContinueOnError)
	common.register(flagSet)
	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return inputError("%v", err)
	}

	positional := flagSet.Args()
	if len(positional) != 2 {
		return inputError("usage: lsfconv to-xml <input.lsf> <output.lsx>")
	}
	inputPath, outputPath := positional[0], positional[1]

	cfg, err := common.resolve()
	if err != nil {
		return inputError("loading configuration: %v", err)
	}
	logger := newLogger(cfg.LogLevel)

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return inputError("reading %s: %v", inputPath, err)
	}

	res, err := decodeWithCache(data, cfg.CacheDir, logger)
	if err != nil {
		return err
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return outputError("creating %s: %v", outputPath, err)
	}
	defer out.Close()

	if err := lsx.Write(out, res); err != nil {
		return outputError("writing %s: %v", outputPath, err)
	}
	return nil
}

// decodeWithCache returns the Resource decoded from source, either by
// loading a cache hit or by running lib/lsf's decoder and storing the
// result in the cache for next time. Caching is disabled when
// cacheDir is empty.
func decodeWithCache(source []byte, cacheDir string, logger *slog.Logger) (*lsresource.Resource, error) {
	var cache *lsfcache.Cache
	var key string

	if cacheDir != "" {
		c, err := lsfcache.Open(cacheDir)
		if err != nil {
			return nil, inputError("opening cache directory %s: %v", cacheDir, err)
		}
		cache = c
		key = lsfcache.Key(source)

		if res, ok := cache.Lookup(key); ok {
			logger.Debug("cache hit", "key", key)
			return res, nil
		}
	}

	policy := lsf.PolicyTolerant(func(nodeName, attrKey string, typeID byte, err error) {
		logger.Warn("tolerated decode failure", "node", nodeName, "attribute", attrKey, "type_id", typeID, "error", err)
	})

	res, err := lsf.Read(bytes.NewReader(source), policy)
	if err != nil {
		return nil, classifyDecodeError(err)
	}

	if cache != nil {
		if err := cache.Store(key, res); err != nil {
			logger.Warn("caching decoded resource failed", "key", key, "error", err)
		}
	}

	return res, nil
}
