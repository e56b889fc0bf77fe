// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package lsresource defines the in-memory model shared by the LSF
// binary codec and the LSX XML codec: a Resource of named Regions
// containing a tree of Nodes, each carrying a typed attribute map.
//
// This package knows nothing about bytes, XML, or compression. It is
// the contract between lib/lsf and lib/lsx — the only thing either
// codec exchanges with a caller. A Resource, once returned by a
// reader, is never mutated again by that reader; only the caller (or
// a writer consuming it) touches it further.
package lsresource
