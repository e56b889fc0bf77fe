// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lsx

import "encoding/xml"

type xmlDocument struct {
	XMLName xml.Name    `xml:"save"`
	Version xmlVersion  `xml:"version"`
	Regions []xmlRegion `xml:"region"`
}

type xmlVersion struct {
	Major    uint32 `xml:"major,attr"`
	Minor    uint32 `xml:"minor,attr"`
	Revision uint32 `xml:"revision,attr"`
	Build    uint32 `xml:"build,attr"`
}

type xmlRegion struct {
	ID   string  `xml:"id,attr"`
	Node xmlNode `xml:"node"`
}

type xmlNode struct {
	ID         string         `xml:"id,attr"`
	Attributes []xmlAttribute `xml:"attribute"`
	Children   *xmlChildren   `xml:"children"`
}

type xmlChildren struct {
	Nodes []xmlNode `xml:"node"`
}

type xmlAttribute struct {
	ID    string `xml:"id,attr"`
	Type  string `xml:"type,attr"`
	Value string `xml:"value,attr"`
}
