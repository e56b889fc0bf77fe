// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lsf

import "github.com/larris-tools/lsfconv/lib/lsresource"

// ErrorPolicy governs how the reader handles decode failures confined
// to a single attribute (unknown type id, truncated value, an
// out-of-range (offset, length) slice). It is a value passed into
// Read, never a package global, so tests and callers can assert
// strict or tolerant behavior side by side.
//
// Structural failures — bad signature, unsupported version, a
// corrupt string table, a cyclic or non-topological tree — are always
// fatal regardless of policy.
type ErrorPolicy struct {
	tolerant    bool
	onTolerated func(nodeName, attrKey string, typeID byte, err error)
}

// PolicyStrict fails the entire read on the first malformed
// attribute. Use it when a corrupt input should surface immediately
// rather than degrade silently.
func PolicyStrict() ErrorPolicy {
	return ErrorPolicy{tolerant: false}
}

// PolicyTolerant degrades a malformed attribute to
// lsresource.Unreadable and continues reading the rest of the file.
// If onTolerated is non-nil, it is called once per tolerated failure
// so the caller can log it rather than discard it silently — see
// cmd/lsfconv, which wires this to slog.
func PolicyTolerant(onTolerated func(nodeName, attrKey string, typeID byte, err error)) ErrorPolicy {
	return ErrorPolicy{tolerant: true, onTolerated: onTolerated}
}

func (p ErrorPolicy) report(nodeName, attrKey string, typeID byte, err error) {
	if p.onTolerated != nil {
		p.onTolerated(nodeName, attrKey, typeID, err)
	}
}

// resolveAttribute applies the policy to a single attribute decode
// failure. Under PolicyStrict it returns the error as fatal; under
// PolicyTolerant it reports the failure and returns an
// lsresource.Unreadable value in its place.
func (p ErrorPolicy) resolveAttribute(nodeName, attrKey string, typeID byte, err error) (lsresource.NodeAttribute, error) {
	if !p.tolerant {
		return nil, err
	}
	p.report(nodeName, attrKey, typeID, err)
	return lsresource.NewUnreadable(lsresource.AttributeType(typeID)), nil
}
