// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lsf

import (
	"fmt"
	"io"
)

// rawChunks holds the five chunks of an LSF file after decompression,
// still in their packed on-disk shapes (flat byte arrays of string
// table, node entries, attribute entries, and the value blob). The
// Keys chunk is decompressed only to stay positioned correctly for
// the Nodes chunk that follows it; its contents are never
// interpreted (see DESIGN.md).
type rawChunks struct {
	strings, nodes, attributes, values []byte
}

// readChunks reads the file header, metadata, and all five chunks
// from r, decompressing each to its declared size. It returns the
// decompressed Strings/Nodes/Attributes/Values chunks plus the file
// header and the has_sibling_data toggle the tree delinearizer needs
// to pick the node entry width.
func readChunks(r io.Reader) (rawChunks, fileHeader, bool, error) {
	header, err := readFileHeader(r)
	if err != nil {
		return rawChunks{}, fileHeader{}, false, err
	}

	meta, err := readMetadata(r)
	if err != nil {
		return rawChunks{}, fileHeader{}, false, err
	}

	strings, err := readChunk(r, "strings", meta.stringsOnDisk, meta.stringsUncompressed, meta.compressionFlags, header.version)
	if err != nil {
		return rawChunks{}, fileHeader{}, false, err
	}

	// The Keys chunk is read and decompressed to stay positioned, then
	// discarded; this codec does not model its contents.
	if _, err := readChunk(r, "keys", meta.keysOnDisk, meta.keysUncompressed, meta.compressionFlags, header.version); err != nil {
		return rawChunks{}, fileHeader{}, false, err
	}

	nodes, err := readChunk(r, "nodes", meta.nodesOnDisk, meta.nodesUncompressed, meta.compressionFlags, header.version)
	if err != nil {
		return rawChunks{}, fileHeader{}, false, err
	}

	attributes, err := readChunk(r, "attributes", meta.attributesOnDisk, meta.attributesUncompressed, meta.compressionFlags, header.version)
	if err != nil {
		return rawChunks{}, fileHeader{}, false, err
	}

	values, err := readChunk(r, "values", meta.valuesOnDisk, meta.valuesUncompressed, meta.compressionFlags, header.version)
	if err != nil {
		return rawChunks{}, fileHeader{}, false, err
	}

	return rawChunks{strings: strings, nodes: nodes, attributes: attributes, values: values}, header, meta.hasSiblingData != 0, nil
}

func readChunk(r io.Reader, name string, onDisk, uncompressed uint32, flags byte, version uint32) ([]byte, error) {
	compressed := make([]byte, onDisk)
	if _, err := io.ReadFull(r, compressed); err != nil {
		return nil, fmt.Errorf("%w: %s chunk: %v", ErrTruncated, name, err)
	}

	out, err := Decompress(compressed, int(uncompressed), flags, version)
	if err != nil {
		return nil, fmt.Errorf("%s chunk: %w", name, err)
	}
	return out, nil
}

// writeChunks compresses and writes the header, metadata, and all
// five chunks (an empty Keys chunk) to w, in the fixed order the
// format requires. Nothing is written to w until every chunk has
// compressed successfully, so a failure never leaves a partial file
// on disk when w buffers in memory (as the writer facade's output
// buffer does).
func writeChunks(w io.Writer, header fileHeader, hasSiblingData bool, compressionFlags byte, chunks rawChunks) error {
	stringsOnDisk, err := compressChunk(chunks.strings, compressionFlags, header.version)
	if err != nil {
		return fmt.Errorf("strings chunk: %w", err)
	}
	keysOnDisk, err := compressChunk(nil, compressionFlags, header.version)
	if err != nil {
		return fmt.Errorf("keys chunk: %w", err)
	}
	nodesOnDisk, err := compressChunk(chunks.nodes, compressionFlags, header.version)
	if err != nil {
		return fmt.Errorf("nodes chunk: %w", err)
	}
	attributesOnDisk, err := compressChunk(chunks.attributes, compressionFlags, header.version)
	if err != nil {
		return fmt.Errorf("attributes chunk: %w", err)
	}
	valuesOnDisk, err := compressChunk(chunks.values, compressionFlags, header.version)
	if err != nil {
		return fmt.Errorf("values chunk: %w", err)
	}

	siblingByte := byte(0)
	if hasSiblingData {
		siblingByte = 1
	}

	meta := metadata{
		stringsUncompressed:    uint32(len(chunks.strings)),
		stringsOnDisk:          uint32(len(stringsOnDisk)),
		keysUncompressed:       0,
		keysOnDisk:             uint32(len(keysOnDisk)),
		nodesUncompressed:      uint32(len(chunks.nodes)),
		nodesOnDisk:            uint32(len(nodesOnDisk)),
		attributesUncompressed: uint32(len(chunks.attributes)),
		attributesOnDisk:       uint32(len(attributesOnDisk)),
		valuesUncompressed:     uint32(len(chunks.values)),
		valuesOnDisk:           uint32(len(valuesOnDisk)),
		compressionFlags:       compressionFlags,
		hasSiblingData:         siblingByte,
	}

	if err := writeFileHeader(w, header); err != nil {
		return fmt.Errorf("writing file header: %w", err)
	}
	if err := writeMetadata(w, meta); err != nil {
		return fmt.Errorf("writing metadata: %w", err)
	}
	for _, chunk := range [][]byte{stringsOnDisk, keysOnDisk, nodesOnDisk, attributesOnDisk, valuesOnDisk} {
		if _, err := w.Write(chunk); err != nil {
			return fmt.Errorf("writing chunk: %w", err)
		}
	}
	return nil
}

func compressChunk(data []byte, flags byte, version uint32) ([]byte, error) {
	out, _, err := Compress(data, flags, version)
	return out, err
}
