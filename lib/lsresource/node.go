// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lsresource

import "fmt"

// Node is a named element of the resource tree. Name is never empty.
// Attributes preserve insertion order (required for byte-identical
// round trips on the same LSF version); Children preserve the full
// flat sibling order even when several children share a name.
type Node struct {
	Name       string
	Attributes []Attribute
	Children   []*Node
}

// Attribute pairs an attribute key with its decoded value. Keys are
// unique within a Node: SetAttribute keeps them unique by overwriting
// in place, and ValidateAttributes reports a hand-built Node that
// breaks the rule. The LSF decoder lets a later duplicate key win;
// the LSX reader rejects a duplicate key instead.
type Attribute struct {
	Key   string
	Value NodeAttribute
}

// NewNode returns an empty Node with the given name.
func NewNode(name string) *Node {
	return &Node{Name: name}
}

// Attribute returns the value stored under key and true, or nil and
// false if the node carries no such attribute.
func (n *Node) Attribute(key string) (NodeAttribute, bool) {
	for _, attr := range n.Attributes {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return nil, false
}

// SetAttribute sets the value for key, appending a new entry if the
// key is not already present or overwriting in place (preserving its
// original position) if it is. Both decoders ingest through it; for
// LSF this makes "last wins" the rule for duplicate keys on read,
// while the LSX reader checks for a duplicate key and fails before
// calling it.
func (n *Node) SetAttribute(key string, value NodeAttribute) {
	for i := range n.Attributes {
		if n.Attributes[i].Key == key {
			n.Attributes[i].Value = value
			return
		}
	}
	n.Attributes = append(n.Attributes, Attribute{Key: key, Value: value})
}

// ValidateAttributes reports an error if any attribute key appears
// more than once. Readers never produce such a Node (SetAttribute
// de-duplicates), but a caller building a Resource by hand might; the
// LSF writer calls this before linearizing and treats a violation as
// an EncodeError.
func (n *Node) ValidateAttributes() error {
	seen := make(map[string]bool, len(n.Attributes))
	for _, attr := range n.Attributes {
		if seen[attr.Key] {
			return fmt.Errorf("lsresource: node %q has duplicate attribute key %q", n.Name, attr.Key)
		}
		seen[attr.Key] = true
	}
	return nil
}

// AddChild appends child to the node's children, preserving flat
// sibling order regardless of name collisions with existing children.
func (n *Node) AddChild(child *Node) {
	n.Children = append(n.Children, child)
}

// ChildrenNamed returns every direct child sharing name, in the order
// they appear among all of the node's children.
func (n *Node) ChildrenNamed(name string) []*Node {
	var matches []*Node
	for _, child := range n.Children {
		if child.Name == name {
			matches = append(matches, child)
		}
	}
	return matches
}
