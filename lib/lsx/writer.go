// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lsx

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/larris-tools/lsfconv/lib/lsresource"
)

// Write encodes res as an indented LSX document to w.
func Write(w io.Writer, res *lsresource.Resource) error {
	doc := xmlDocument{
		Version: xmlVersion{
			Major:    res.Metadata.Major,
			Minor:    res.Metadata.Minor,
			Revision: res.Metadata.Revision,
			Build:    res.Metadata.Build,
		},
	}

	for _, region := range res.Regions {
		node, err := toXMLNode(region.Root)
		if err != nil {
			return fmt.Errorf("region %q: %w", region.Name, err)
		}
		doc.Regions = append(doc.Regions, xmlRegion{ID: region.Name, Node: node})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(doc)
}

func toXMLNode(n *lsresource.Node) (xmlNode, error) {
	if err := n.ValidateAttributes(); err != nil {
		return xmlNode{}, fmt.Errorf("%w: %v", ErrEncode, err)
	}

	out := xmlNode{ID: n.Name}
	for _, attr := range n.Attributes {
		name, ok := typeName(attr.Value.AttributeType())
		if !ok {
			return xmlNode{}, fmt.Errorf("%w: type id %d on attribute %q", ErrEncode, attr.Value.AttributeType(), attr.Key)
		}
		value, err := formatValue(attr.Value)
		if err != nil {
			return xmlNode{}, fmt.Errorf("attribute %q: %w", attr.Key, err)
		}
		out.Attributes = append(out.Attributes, xmlAttribute{ID: attr.Key, Type: name, Value: value})
	}

	if len(n.Children) > 0 {
		children := &xmlChildren{Nodes: make([]xmlNode, len(n.Children))}
		for i, child := range n.Children {
			childNode, err := toXMLNode(child)
			if err != nil {
				return xmlNode{}, err
			}
			children.Nodes[i] = childNode
		}
		out.Children = children
	}

	return out, nil
}
