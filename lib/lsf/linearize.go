// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lsf

import (
	"fmt"

	"github.com/larris-tools/lsfconv/lib/lsresource"
)

// linearize flattens a Resource into the four arrays the chunk layout
// stores: the string table, the node array (topologically ordered —
// every node's entry is appended before its children's), the
// attribute array (one intrusive singly-linked chain per node), and
// the Values blob each attribute's (offset, length) slices into.
//
// Insertion order into the string table, and emission order into the
// node array, both follow a single depth-first pre-order walk of
// every region's root node, in region order.
func linearize(res *lsresource.Resource) (*stringTable, []nodeEntry, []attributeEntry, []byte, error) {
	l := &linearizer{table: newStringTable()}

	for _, region := range res.Regions {
		if region.Root == nil {
			return nil, nil, nil, nil, fmt.Errorf("%w: region %q has no root node", ErrEncode, region.Name)
		}
		if region.Root.Name != region.Name {
			return nil, nil, nil, nil, fmt.Errorf("%w: region %q root node is named %q", ErrEncode, region.Name, region.Root.Name)
		}
		if _, err := l.emitNode(region.Root, -1); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("region %q: %w", region.Name, err)
		}
	}

	return l.table, l.nodes, l.attributes, l.values, nil
}

type linearizer struct {
	table      *stringTable
	nodes      []nodeEntry
	attributes []attributeEntry
	values     []byte
}

// emitNode appends node's own entry, then its attribute chain, then
// recurses into its children, backpatching each child's
// next_sibling_index once the following sibling's index is known. It
// returns the index node was assigned in l.nodes.
func (l *linearizer) emitNode(node *lsresource.Node, parentIndex int32) (int32, error) {
	nameHandle, err := l.table.intern(node.Name)
	if err != nil {
		return 0, fmt.Errorf("node %q: %w", node.Name, err)
	}

	index := int32(len(l.nodes))
	l.nodes = append(l.nodes, nodeEntry{
		nameHandle:       nameHandle,
		parentIndex:      parentIndex,
		nextSiblingIndex: -1,
	})

	firstAttr, err := l.emitAttributes(node)
	if err != nil {
		return 0, err
	}
	l.nodes[index].firstAttributeIndex = firstAttr

	prevChild := int32(-1)
	for _, child := range node.Children {
		childIndex, err := l.emitNode(child, index)
		if err != nil {
			return 0, err
		}
		if prevChild != -1 {
			l.nodes[prevChild].nextSiblingIndex = childIndex
		}
		prevChild = childIndex
	}

	return index, nil
}

// emitAttributes encodes node's attributes in order, appending each
// value to l.values and recording its (offset, length) slice, and
// links the resulting attribute entries into one chain. It returns
// the index of the chain's first entry, or -1 if node has none.
func (l *linearizer) emitAttributes(node *lsresource.Node) (int32, error) {
	if err := node.ValidateAttributes(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrEncode, err)
	}

	first := int32(-1)
	prev := int32(-1)

	for _, attr := range node.Attributes {
		nameHandle, err := l.table.intern(attr.Key)
		if err != nil {
			return 0, fmt.Errorf("attribute %q: %w", attr.Key, err)
		}

		encoded, err := encodeAttributeValue(attr.Value)
		if err != nil {
			return 0, fmt.Errorf("attribute %q: %w", attr.Key, err)
		}

		offset := len(l.values)
		l.values = append(l.values, encoded...)

		index := int32(len(l.attributes))
		l.attributes = append(l.attributes, attributeEntry{
			nameHandle:         nameHandle,
			typ:                attr.Value.AttributeType(),
			length:             uint32(len(encoded)),
			nextAttributeIndex: -1,
			valueOffset:        uint32(offset),
		})

		if prev != -1 {
			l.attributes[prev].nextAttributeIndex = index
		}
		if first == -1 {
			first = index
		}
		prev = index
	}

	return first, nil
}
