// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package lsf implements the LSF binary codec: the compact,
// compressed-chunk container format used at game runtime.
//
// A file is magic + version, a version-dispatched metadata block
// describing five (or four, pre-v6) chunk sizes, and the chunks
// themselves — Strings, Keys, Nodes, Attributes, Values — each
// independently compressed under one of {none, zlib, lz4, zstd}. The
// reader turns those chunks into an lsresource.Resource; the writer
// does the reverse. Both are single-threaded and synchronous: a call
// owns its byte source or sink for its entire duration, and a writer
// never emits a partial file.
//
// Reading tolerates malformed individual attributes (they decode to
// lsresource.Unreadable) but aborts on any structural corruption —
// see ErrorPolicy and the error taxonomy in errors.go.
package lsf
