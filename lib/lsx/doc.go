// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package lsx reads and writes the XML sibling of the LSF binary
// format: the same lib/lsresource model, serialized as a verbose,
// human-editable document meant for version control.
//
// The schema is a straightforward structural walk:
//
//	<save>
//	  <version major="4" minor="0" revision="9" build="0"/>
//	  <region id="RegionName">
//	    <node id="NodeName">
//	      <attribute id="AttrKey" type="int32" value="42"/>
//	      <children>
//	        <node id="Child">...</node>
//	      </children>
//	    </node>
//	  </region>
//	</save>
//
// A node's id attribute is the node's name; LSX carries no separate
// opaque identifier. This package never touches lib/lsf.
package lsx
