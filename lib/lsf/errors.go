// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lsf

import (
	"errors"
	"fmt"
)

// Sentinel errors for the structural error taxonomy. Use errors.Is
// against these; wrapped errors carry the offending detail via
// fmt.Errorf("...: %w", ...).
var (
	// ErrInvalidSignature means the file did not start with "LSOF".
	ErrInvalidSignature = errors.New("lsf: invalid signature")

	// ErrUnsupportedVersion means the file's version is not 6 or 7.
	ErrUnsupportedVersion = errors.New("lsf: unsupported version")

	// ErrTruncated means a declared size exceeds the bytes actually
	// available, for a structural chunk (Strings, Keys, Nodes,
	// Attributes) or the Values chunk itself.
	ErrTruncated = errors.New("lsf: truncated input")

	// ErrDecompression means a compression backend reported failure,
	// or the decompressed size did not match the declared size.
	ErrDecompression = errors.New("lsf: decompression failed")

	// ErrCorruptStringTable means a handle's bucket or chain index is
	// out of range, or a chain's declared length exceeds the
	// remaining chunk bytes.
	ErrCorruptStringTable = errors.New("lsf: corrupt string table")

	// ErrCorruptTree means a node's parent_index is not in {-1} ∪
	// [0, own index), or a node's attribute chain forms a cycle or
	// links out of range. next_sibling_index is not inspected on read.
	ErrCorruptTree = errors.New("lsf: corrupt tree")

	// ErrEncode covers write-side failures: a string longer than
	// 0xFFFF bytes, or a model containing duplicate attribute keys.
	ErrEncode = errors.New("lsf: encode error")
)

// unknownAttributeType is the error decodeAttributeValue and
// decodeAttributeSlice return when a type id falls outside 0..33; the
// caller's ErrorPolicy decides whether that is fatal or tolerated.
type unknownAttributeType struct {
	typeID byte
}

func (e *unknownAttributeType) Error() string {
	return fmt.Sprintf("lsf: unknown attribute type id %d", e.typeID)
}

// attributeOutOfBounds is recorded when a v3+ attribute's (offset,
// length) slice exceeds the Values chunk.
type attributeOutOfBounds struct {
	offset, length, chunkLen uint32
}

func (e *attributeOutOfBounds) Error() string {
	return fmt.Sprintf("lsf: attribute range [%d, %d) exceeds values chunk of length %d",
		e.offset, e.offset+e.length, e.chunkLen)
}
