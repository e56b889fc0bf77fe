// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lsf

import (
	"encoding/binary"
	"fmt"

	"github.com/larris-tools/lsfconv/lib/lsresource"
)

// nodeEntrySize is 16 bytes when has_sibling_data is set (the value
// this codec always writes) and 12 bytes — omitting
// next_sibling_index — when it is not. Both widths are accepted on
// read; only the 16-byte form is ever written.
const (
	nodeEntrySizeWithSibling    = 16
	nodeEntrySizeWithoutSibling = 12
	attributeEntrySize          = 16
)

// nodeEntry is the flat, parent-indexed record the delinearizer walks
// to rebuild the tree: a name handle, a parent back-reference, an
// optional next-sibling link, and the head of this node's attribute
// chain.
type nodeEntry struct {
	nameHandle          handle
	parentIndex         int32
	nextSiblingIndex    int32
	firstAttributeIndex int32
}

// attributeEntry is one link of a node's attribute chain: a name
// handle, the packed (type, length) word, the next link in the
// chain, and the byte offset of this attribute's value in the Values
// chunk.
type attributeEntry struct {
	nameHandle         handle
	typ                lsresource.AttributeType
	length             uint32
	nextAttributeIndex int32
	valueOffset        uint32
}

func decodeNodeEntries(data []byte, hasSiblingData bool) ([]nodeEntry, error) {
	size := nodeEntrySizeWithSibling
	if !hasSiblingData {
		size = nodeEntrySizeWithoutSibling
	}
	if len(data)%size != 0 {
		return nil, fmt.Errorf("%w: nodes chunk has %d bytes, not a multiple of the %d-byte entry size", ErrTruncated, len(data), size)
	}

	count := len(data) / size
	entries := make([]nodeEntry, count)
	for i := range entries {
		e := data[i*size : i*size+size]
		entries[i].nameHandle = handle(binary.LittleEndian.Uint32(e[0:4]))
		entries[i].parentIndex = int32(binary.LittleEndian.Uint32(e[4:8]))
		if hasSiblingData {
			entries[i].nextSiblingIndex = int32(binary.LittleEndian.Uint32(e[8:12]))
			entries[i].firstAttributeIndex = int32(binary.LittleEndian.Uint32(e[12:16]))
		} else {
			entries[i].nextSiblingIndex = -1
			entries[i].firstAttributeIndex = int32(binary.LittleEndian.Uint32(e[8:12]))
		}
	}
	return entries, nil
}

func encodeNodeEntries(entries []nodeEntry) []byte {
	buf := make([]byte, len(entries)*nodeEntrySizeWithSibling)
	for i, e := range entries {
		out := buf[i*nodeEntrySizeWithSibling : i*nodeEntrySizeWithSibling+nodeEntrySizeWithSibling]
		binary.LittleEndian.PutUint32(out[0:4], uint32(e.nameHandle))
		binary.LittleEndian.PutUint32(out[4:8], uint32(e.parentIndex))
		binary.LittleEndian.PutUint32(out[8:12], uint32(e.nextSiblingIndex))
		binary.LittleEndian.PutUint32(out[12:16], uint32(e.firstAttributeIndex))
	}
	return buf
}

func decodeAttributeEntries(data []byte) ([]attributeEntry, error) {
	if len(data)%attributeEntrySize != 0 {
		return nil, fmt.Errorf("%w: attributes chunk has %d bytes, not a multiple of the %d-byte entry size", ErrTruncated, len(data), attributeEntrySize)
	}

	count := len(data) / attributeEntrySize
	entries := make([]attributeEntry, count)
	for i := range entries {
		e := data[i*attributeEntrySize : i*attributeEntrySize+attributeEntrySize]
		typeAndLength := binary.LittleEndian.Uint32(e[4:8])
		entries[i].nameHandle = handle(binary.LittleEndian.Uint32(e[0:4]))
		entries[i].typ = lsresource.AttributeType(typeAndLength & 0x3F)
		entries[i].length = typeAndLength >> 6
		entries[i].nextAttributeIndex = int32(binary.LittleEndian.Uint32(e[8:12]))
		entries[i].valueOffset = binary.LittleEndian.Uint32(e[12:16])
	}
	return entries, nil
}

func encodeAttributeEntries(entries []attributeEntry) []byte {
	buf := make([]byte, len(entries)*attributeEntrySize)
	for i, e := range entries {
		out := buf[i*attributeEntrySize : i*attributeEntrySize+attributeEntrySize]
		binary.LittleEndian.PutUint32(out[0:4], uint32(e.nameHandle))
		binary.LittleEndian.PutUint32(out[4:8], uint32(e.typ)&0x3F|e.length<<6)
		binary.LittleEndian.PutUint32(out[8:12], uint32(e.nextAttributeIndex))
		binary.LittleEndian.PutUint32(out[12:16], e.valueOffset)
	}
	return buf
}
