// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lsx

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/larris-tools/lsfconv/lib/lsresource"
)

// Read decodes r as an LSX document into a Resource. Any malformed
// structure or attribute value is fatal — LSX has no analog of lib/lsf's
// tolerant error policy, since a human-editable document is expected
// to either parse cleanly or be fixed by hand.
func Read(r io.Reader) (*lsresource.Resource, error) {
	var doc xmlDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	res := &lsresource.Resource{
		Metadata: lsresource.Metadata{
			Major:    doc.Version.Major,
			Minor:    doc.Version.Minor,
			Revision: doc.Version.Revision,
			Build:    doc.Version.Build,
		},
	}

	for _, region := range doc.Regions {
		root, err := fromXMLNode(region.Node)
		if err != nil {
			return nil, fmt.Errorf("region %q: %w", region.ID, err)
		}
		if root.Name != region.ID {
			return nil, fmt.Errorf("%w: region %q root node is named %q", ErrMalformedDocument, region.ID, root.Name)
		}
		if err := res.AddRegion(&lsresource.Region{Name: region.ID, Root: root}); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
		}
	}

	return res, nil
}

func fromXMLNode(n xmlNode) (*lsresource.Node, error) {
	node := lsresource.NewNode(n.ID)

	for _, attr := range n.Attributes {
		typ, ok := typeByName(attr.Type)
		if !ok {
			return nil, fmt.Errorf("%w: %q on attribute %q of node %q", ErrUnknownType, attr.Type, attr.ID, n.ID)
		}
		value, err := parseValue(typ, attr.Value)
		if err != nil {
			return nil, fmt.Errorf("attribute %q of node %q: %w", attr.ID, n.ID, err)
		}
		if _, exists := node.Attribute(attr.ID); exists {
			return nil, fmt.Errorf("%w: node %q has duplicate attribute key %q", ErrMalformedDocument, n.ID, attr.ID)
		}
		node.SetAttribute(attr.ID, value)
	}

	if n.Children != nil {
		for _, child := range n.Children.Nodes {
			childNode, err := fromXMLNode(child)
			if err != nil {
				return nil, err
			}
			node.AddChild(childNode)
		}
	}

	return node, nil
}
