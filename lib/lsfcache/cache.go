// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lsfcache

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zeebo/blake3"

	"github.com/larris-tools/lsfconv/lib/lsresource"
)

// Cache is a directory of CBOR-encoded Resource trees keyed by the
// BLAKE3 digest of the source bytes they were decoded from. A Cache
// value is stateless beyond its directory path; concurrent use from
// multiple processes is safe because entries are written to a
// temporary file and renamed into place.
type Cache struct {
	dir string
}

// Open returns a Cache rooted at dir, creating dir if it does not
// exist.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("lsfcache: creating cache directory: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Key returns the cache key for the given source bytes: the hex
// encoding of their BLAKE3 digest.
func Key(source []byte) string {
	digest := blake3.Sum256(source)
	return hex.EncodeToString(digest[:])
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, key+".cbor")
}

// Lookup returns the cached Resource for key, and whether it was
// found. A malformed cache entry is treated as a miss, not an error —
// the caller falls back to decoding the source itself and can
// overwrite the entry via [Cache.Store].
func (c *Cache) Lookup(key string) (*lsresource.Resource, bool) {
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, false
	}

	res, err := Unmarshal(data)
	if err != nil {
		return nil, false
	}
	return res, true
}

// Store saves res under key, replacing any existing entry. The write
// goes to a sibling temporary file first and is renamed into place, so
// a concurrent Lookup never observes a partially written entry.
func (c *Cache) Store(key string, res *lsresource.Resource) error {
	data, err := Marshal(res)
	if err != nil {
		return fmt.Errorf("lsfcache: encoding entry %s: %w", key, err)
	}

	dest := c.path(key)
	tmp, err := os.CreateTemp(c.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("lsfcache: creating temporary entry: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("lsfcache: writing entry %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("lsfcache: writing entry %s: %w", key, err)
	}

	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("lsfcache: installing entry %s: %w", key, err)
	}
	return nil
}

// Evict removes the cache entry for key, if present. It is not an
// error for key to be absent.
func (c *Cache) Evict(key string) error {
	err := os.Remove(c.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("lsfcache: evicting entry %s: %w", key, err)
	}
	return nil
}
