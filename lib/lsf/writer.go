// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lsf

import (
	"fmt"
	"io"

	"github.com/larris-tools/lsfconv/lib/lsresource"
)

// CompressionMethod selects the backend WriterConfig compresses each
// chunk with. The zero value, CompressionDefault, means lz4 — the
// documented default — rather than "no compression", so a caller who
// never sets Method still gets the expected behavior.
type CompressionMethod int

const (
	CompressionDefault CompressionMethod = iota
	CompressionNone
	CompressionZlib
	CompressionLZ4
	CompressionZstd
)

func (m CompressionMethod) wireMethod() compressionMethod {
	switch m {
	case CompressionNone:
		return methodNone
	case CompressionZlib:
		return methodZlib
	case CompressionLZ4:
		return methodLZ4
	case CompressionZstd:
		return methodZstd
	default:
		return methodLZ4
	}
}

// WriterConfig holds the exhaustive set of tunables the LSF writer
// accepts, per the specification's config field list. Every field's
// zero value selects the documented default.
type WriterConfig struct {
	// OutputVersion is the file format version written; 0 means
	// DefaultWriteVersion (7). Only 6 and 7 are accepted.
	OutputVersion uint32

	// Method selects the compression backend; the zero value means lz4.
	Method CompressionMethod

	// Level is stored in the flags byte's high nibble. Only the zlib
	// backend reads it (0 means zlib's default level, values above 9
	// are clamped to 9); lz4 and zstd ignore it.
	Level byte

	// SwapGUIDOnStringEmit reorders UUID bytes the way LSX's textual
	// GUIDs expect when interop with that format requires it. It never
	// affects LSF's own GUID attribute bytes (type 29), which always
	// use the wire form the UUID attribute codec fixes; this package's
	// own write path has no use for it, but it is preserved on the
	// config so an LSX-facing caller can set it without this type
	// needing to grow a new field later.
	SwapGUIDOnStringEmit bool
}

func (c WriterConfig) resolveVersion() (uint32, error) {
	version := c.OutputVersion
	if version == 0 {
		version = DefaultWriteVersion
	}
	if version < minVersion || version > maxVersion {
		return 0, fmt.Errorf("%w: output version %d (supported: %d-%d)", ErrUnsupportedVersion, version, minVersion, maxVersion)
	}
	return version, nil
}

// Write encodes res as an LSF file under cfg, writing to w only after
// every chunk has linearized and compressed successfully — a failure
// partway through never leaves a partial file on a buffering w.
func Write(w io.Writer, res *lsresource.Resource, cfg WriterConfig) error {
	version, err := cfg.resolveVersion()
	if err != nil {
		return err
	}

	table, nodeEntries, attrEntries, values, err := linearize(res)
	if err != nil {
		return err
	}

	header := fileHeader{
		version:       version,
		engineVersion: 0,
		timestamp:     res.Metadata.Timestamp,
	}
	flags := packFlags(cfg.Method.wireMethod(), cfg.Level&0x0F)

	chunks := rawChunks{
		strings:    table.encode(),
		nodes:      encodeNodeEntries(nodeEntries),
		attributes: encodeAttributeEntries(attrEntries),
		values:     values,
	}

	// The writer always emits the 16-byte node entry form.
	return writeChunks(w, header, true, flags, chunks)
}
