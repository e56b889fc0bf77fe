// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// lsfconv converts between LSF (compact binary) and LSX (verbose XML)
// resource-tree files.
//
// Usage:
//
//	lsfconv to-xml <input.lsf> <output.lsx>
//	lsfconv to-binary <input.lsx> <output.lsf>
//
// Exit codes: 0 success, 1 input error (missing file, unreadable,
// bad signature, unsupported version), 2 corrupt data, 3 output
// error.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "lsfconv: %v\n", err)
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		os.Exit(exitInputError)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		printUsage()
		return &exitError{code: exitInputError, err: fmt.Errorf("no subcommand given")}
	}

	switch args[0] {
	case "to-xml":
		return runToXML(args[1:])
	case "to-binary":
		return runToBinary(args[1:])
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		printUsage()
		return &exitError{code: exitInputError, err: fmt.Errorf("unknown subcommand %q", args[0])}
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `lsfconv converts between LSF (binary) and LSX (XML) resource files.

Usage:
  lsfconv to-xml <input.lsf> <output.lsx> [flags]
  lsfconv to-binary <input.lsx> <output.lsf> [flags]

Run "lsfconv to-xml -h" or "lsfconv to-binary -h" for flag details.
`)
}
