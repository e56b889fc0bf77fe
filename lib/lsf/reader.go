// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lsf

import (
	"io"

	"github.com/larris-tools/lsfconv/lib/lsresource"
)

// Read decodes r as an LSF file (version 6 or 7) into a Resource.
// policy governs how individual malformed attributes are handled;
// structural failures — bad signature, unsupported version, a
// corrupt string table, a cyclic or non-topological tree — are always
// fatal regardless of policy.
//
// The wire format has no room for a Resource's Minor/Revision/Build
// version components (see DESIGN.md); only Major, set from the
// file's own version field, and Timestamp survive an LSF read.
func Read(r io.Reader, policy ErrorPolicy) (*lsresource.Resource, error) {
	chunks, header, hasSiblingData, err := readChunks(r)
	if err != nil {
		return nil, err
	}

	table, err := decodeStringTable(chunks.strings)
	if err != nil {
		return nil, err
	}

	nodeEntries, err := decodeNodeEntries(chunks.nodes, hasSiblingData)
	if err != nil {
		return nil, err
	}

	attrEntries, err := decodeAttributeEntries(chunks.attributes)
	if err != nil {
		return nil, err
	}

	meta := lsresource.Metadata{
		Timestamp: header.timestamp,
		Major:     header.version,
	}

	return delinearize(meta, table, nodeEntries, attrEntries, chunks.values, policy)
}
