// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lsx

import "errors"

var (
	// ErrUnknownType means an <attribute> element's type name does not
	// match any of the 34 canonical names in typenames.go.
	ErrUnknownType = errors.New("lsx: unknown attribute type name")

	// ErrMalformedValue means an attribute's value text did not parse
	// under its declared type (wrong field count, non-numeric text).
	ErrMalformedValue = errors.New("lsx: malformed attribute value")

	// ErrMalformedDocument means the XML structure itself violates the
	// schema (a region with no root node, a duplicate region name).
	ErrMalformedDocument = errors.New("lsx: malformed document")

	// ErrEncode covers write-side failures, mirroring lib/lsf's
	// ErrEncode: a model containing duplicate attribute keys.
	ErrEncode = errors.New("lsx: encode error")
)
