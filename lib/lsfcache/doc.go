// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package lsfcache provides a content-addressed cache of decoded LSF
// resource trees.
//
// A cache entry is keyed by the BLAKE3 digest of the source file's raw
// bytes (lib/lsf never sees the cache; this package hashes the bytes
// that would otherwise be handed to lib/lsf.Read) and stores the
// decoded *lsresource.Resource CBOR-encoded under Core Deterministic
// Encoding, one file per entry, under a caller-chosen directory.
//
// A cache hit lets a caller skip lib/lsf's chunk-decode and
// tree-delinearize path entirely for an input it has already parsed.
// This package knows nothing about the LSF wire format or LSX XML; it
// only ever serializes and deserializes the in-memory Resource model.
package lsfcache
