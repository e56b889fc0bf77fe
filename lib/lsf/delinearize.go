// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lsf

import (
	"fmt"

	"github.com/larris-tools/lsfconv/lib/lsresource"
)

// delinearize rebuilds a Resource from the decoded flat arrays. Nodes
// are processed in array order; a node's parent, if any, is always
// already built by the time the node itself is reached, since
// topological order ("parent precedes child") is a read-side
// invariant the structural error policy enforces.
func delinearize(meta lsresource.Metadata, table *stringTable, nodeEntries []nodeEntry, attrEntries []attributeEntry, values []byte, policy ErrorPolicy) (*lsresource.Resource, error) {
	resource := &lsresource.Resource{Metadata: meta}
	nodes := make([]*lsresource.Node, len(nodeEntries))

	for i, entry := range nodeEntries {
		name, err := table.resolve(entry.nameHandle)
		if err != nil {
			return nil, fmt.Errorf("node %d name: %w", i, err)
		}

		node := lsresource.NewNode(name)
		if err := attachAttributes(node, entry.firstAttributeIndex, table, attrEntries, values, policy); err != nil {
			return nil, fmt.Errorf("node %d (%q): %w", i, name, err)
		}
		nodes[i] = node

		switch {
		case entry.parentIndex == -1:
			if err := resource.AddRegion(&lsresource.Region{Name: name, Root: node}); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrCorruptTree, err)
			}
		case entry.parentIndex >= 0 && int(entry.parentIndex) < i:
			nodes[entry.parentIndex].AddChild(node)
		default:
			return nil, fmt.Errorf("%w: node %d has parent_index %d, want -1 or in [0, %d)", ErrCorruptTree, i, entry.parentIndex, i)
		}
	}

	return resource, nil
}

// attachAttributes walks the singly-linked attribute chain starting
// at firstIndex, decoding each attribute's value from its (offset,
// length) slice of values and appending it to node. The chain itself
// — cycles, out-of-range links — is a structural concern and always
// fatal; an individual attribute's value decode failure is routed
// through policy instead.
func attachAttributes(node *lsresource.Node, firstIndex int32, table *stringTable, attrEntries []attributeEntry, values []byte, policy ErrorPolicy) error {
	visited := make(map[int32]bool)

	for idx := firstIndex; idx != -1; {
		if visited[idx] {
			return fmt.Errorf("%w: attribute chain cycle at index %d", ErrCorruptTree, idx)
		}
		visited[idx] = true

		if idx < 0 || int(idx) >= len(attrEntries) {
			return fmt.Errorf("%w: attribute index %d out of range (have %d entries)", ErrCorruptTree, idx, len(attrEntries))
		}
		entry := attrEntries[idx]

		name, err := table.resolve(entry.nameHandle)
		if err != nil {
			return fmt.Errorf("attribute %d name: %w", idx, err)
		}

		value, decodeErr := decodeAttributeSlice(entry, values)
		if decodeErr != nil {
			resolved, err := policy.resolveAttribute(node.Name, name, byte(entry.typ), decodeErr)
			if err != nil {
				return fmt.Errorf("attribute %q: %w", name, err)
			}
			value = resolved
		}

		node.SetAttribute(name, value)
		idx = entry.nextAttributeIndex
	}

	return nil
}

// decodeAttributeSlice isolates entry's (offset, length) span of
// values and decodes it under entry's type, reporting an unknown type
// id or an out-of-bounds span as a plain error for the caller's
// ErrorPolicy to classify.
func decodeAttributeSlice(entry attributeEntry, values []byte) (lsresource.NodeAttribute, error) {
	if !entry.typ.IsValid() {
		return nil, &unknownAttributeType{typeID: byte(entry.typ)}
	}

	start := uint64(entry.valueOffset)
	end := start + uint64(entry.length)
	if end > uint64(len(values)) || start > end {
		return nil, &attributeOutOfBounds{offset: entry.valueOffset, length: entry.length, chunkLen: uint32(len(values))}
	}

	return decodeAttributeValue(entry.typ, values[start:end])
}
