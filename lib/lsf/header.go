// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lsf

import (
	"encoding/binary"
	"fmt"
	"io"
)

const magic = "LSOF"

// minVersion and maxVersion bound the file versions this codec
// reads. Versions below 6 used a different header shape (no 64-bit
// timestamp) and, for attributes, an implicit sequential layout
// instead of next_attribute_index chaining; supporting them is out of
// scope, so their header and entry layouts are never implemented.
const (
	minVersion = 6
	maxVersion = 7

	// DefaultWriteVersion is the version this codec's writer always
	// emits.
	DefaultWriteVersion = 7
)

// fixedHeaderSize is magic(4) + version(4) + engine_version(4) +
// timestamp(8), present unchanged across versions 6 and 7.
const fixedHeaderSize = 20

// metadataSize is the size of LSFMetadataV6, the only metadata shape
// this codec reads or writes (LSFMetadataV5 belongs to the
// unsupported version range below 6).
const metadataSize = 48

// fileHeader is the fixed portion of an LSF file preceding the
// metadata block: the magic, the version that gates every decision
// after it, the engine version, and the container timestamp.
type fileHeader struct {
	version       uint32
	engineVersion int32
	timestamp     uint64
}

// metadata is LSFMetadataV6: declared sizes for all five chunks, the
// compression flags applied uniformly to each, and two structural
// toggles.
type metadata struct {
	stringsUncompressed, stringsOnDisk         uint32
	keysUncompressed, keysOnDisk               uint32
	nodesUncompressed, nodesOnDisk             uint32
	attributesUncompressed, attributesOnDisk   uint32
	valuesUncompressed, valuesOnDisk           uint32
	compressionFlags                           byte
	hasSiblingData                             byte
	metadataFormat                             uint32
}

// readFileHeader reads and validates the magic and version, then the
// rest of the fixed header. The version is read before anything else
// is interpreted, since every later decision (metadata shape, node
// entry width) depends on it.
func readFileHeader(r io.Reader) (fileHeader, error) {
	var buf [fixedHeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return fileHeader{}, fmt.Errorf("%w: reading file header: %v", ErrTruncated, err)
	}

	if string(buf[0:4]) != magic {
		return fileHeader{}, fmt.Errorf("%w: got %q", ErrInvalidSignature, buf[0:4])
	}

	version := binary.LittleEndian.Uint32(buf[4:8])
	if version < minVersion || version > maxVersion {
		return fileHeader{}, fmt.Errorf("%w: version %d (supported: %d-%d)", ErrUnsupportedVersion, version, minVersion, maxVersion)
	}

	return fileHeader{
		version:       version,
		engineVersion: int32(binary.LittleEndian.Uint32(buf[8:12])),
		timestamp:     binary.LittleEndian.Uint64(buf[12:20]),
	}, nil
}

func writeFileHeader(w io.Writer, h fileHeader) error {
	var buf [fixedHeaderSize]byte
	copy(buf[0:4], magic)
	binary.LittleEndian.PutUint32(buf[4:8], h.version)
	binary.LittleEndian.PutUint32(buf[8:12], uint32(h.engineVersion))
	binary.LittleEndian.PutUint64(buf[12:20], h.timestamp)

	_, err := w.Write(buf[:])
	return err
}

func readMetadata(r io.Reader) (metadata, error) {
	var buf [metadataSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return metadata{}, fmt.Errorf("%w: reading metadata: %v", ErrTruncated, err)
	}

	u32 := func(off int) uint32 { return binary.LittleEndian.Uint32(buf[off : off+4]) }

	return metadata{
		stringsUncompressed:    u32(0),
		stringsOnDisk:          u32(4),
		keysUncompressed:       u32(8),
		keysOnDisk:             u32(12),
		nodesUncompressed:      u32(16),
		nodesOnDisk:            u32(20),
		attributesUncompressed: u32(24),
		attributesOnDisk:       u32(28),
		valuesUncompressed:     u32(32),
		valuesOnDisk:           u32(36),
		compressionFlags:       buf[40],
		hasSiblingData:         buf[41],
		metadataFormat:         u32(44),
	}, nil
}

func writeMetadata(w io.Writer, m metadata) error {
	var buf [metadataSize]byte

	put := func(off int, v uint32) { binary.LittleEndian.PutUint32(buf[off:off+4], v) }

	put(0, m.stringsUncompressed)
	put(4, m.stringsOnDisk)
	put(8, m.keysUncompressed)
	put(12, m.keysOnDisk)
	put(16, m.nodesUncompressed)
	put(20, m.nodesOnDisk)
	put(24, m.attributesUncompressed)
	put(28, m.attributesOnDisk)
	put(32, m.valuesUncompressed)
	put(36, m.valuesOnDisk)
	buf[40] = m.compressionFlags
	buf[41] = m.hasSiblingData
	// buf[42:44] is the reserved "unknown" u16, left zero.
	put(44, m.metadataFormat)

	_, err := w.Write(buf[:])
	return err
}
