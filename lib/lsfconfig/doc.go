// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package lsfconfig provides YAML configuration loading for the
// lsfconv CLI.
//
// Configuration is loaded from a single file specified by either the
// LSFCONV_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no fallback file search: a --config flag
// always names a file that must exist and parse cleanly, but an unset
// LSFCONV_CONFIG is not an error — [Load] silently returns [Default],
// since a batch conversion CLI should run with no config file at all.
//
// CLI flags (--cache-dir, --log-level, and the writer-tuning flags)
// always take precedence over the loaded file; lsfconfig itself never
// reads os.Args or consults any source beyond the config file and the
// two Default fields.
package lsfconfig
