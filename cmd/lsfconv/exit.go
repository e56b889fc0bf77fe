// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"

	"github.com/larris-tools/lsfconv/lib/lsf"
)

// Exit codes, exactly as documented in the package comment.
const (
	exitInputError  = 1
	exitCorruptData = 2
	exitOutputError = 3
)

// exitError pairs an error with the exit code main should use for it.
// main checks returned errors for this ExitCode() method instead of
// always exiting 1, so each failure stage reports its own documented
// code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }
func (e *exitError) ExitCode() int { return e.code }

// inputError wraps err for a failure reading or opening the source
// file: missing, unreadable, bad signature, or unsupported version.
func inputError(format string, args ...any) error {
	return &exitError{code: exitInputError, err: fmt.Errorf(format, args...)}
}

// outputError wraps err for a failure writing the destination file.
func outputError(format string, args ...any) error {
	return &exitError{code: exitOutputError, err: fmt.Errorf(format, args...)}
}

// classifyDecodeError maps an error returned by lsf.Read or lsx.Read
// to the exit code spec.md §6 assigns it: signature and version
// problems are input errors; everything else about a malformed source
// is corrupt data.
func classifyDecodeError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, lsf.ErrInvalidSignature), errors.Is(err, lsf.ErrUnsupportedVersion):
		return &exitError{code: exitInputError, err: err}
	default:
		return &exitError{code: exitCorruptData, err: err}
	}
}

// classifyLSXError maps an error returned by lsx.Read to the corrupt-
// data exit code: LSX carries no signature or version field, so
// nothing from it qualifies as an input error.
func classifyLSXError(err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: exitCorruptData, err: err}
}
