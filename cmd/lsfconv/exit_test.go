// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"testing"

	"github.com/larris-tools/lsfconv/lib/lsf"
	"github.com/larris-tools/lsfconv/lib/lsx"
)

func TestClassifyDecodeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid signature", lsf.ErrInvalidSignature, exitInputError},
		{"unsupported version", fmt.Errorf("wrap: %w", lsf.ErrUnsupportedVersion), exitInputError},
		{"truncated", lsf.ErrTruncated, exitCorruptData},
		{"corrupt tree", lsf.ErrCorruptTree, exitCorruptData},
		{"corrupt string table", lsf.ErrCorruptStringTable, exitCorruptData},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := classifyDecodeError(test.err)
			coder, ok := got.(interface{ ExitCode() int })
			if !ok {
				t.Fatalf("classifyDecodeError(%v) did not implement ExitCode()", test.err)
			}
			if coder.ExitCode() != test.want {
				t.Errorf("ExitCode() = %d, want %d", coder.ExitCode(), test.want)
			}
		})
	}
}

func TestClassifyDecodeErrorNilIsNil(t *testing.T) {
	if err := classifyDecodeError(nil); err != nil {
		t.Fatalf("classifyDecodeError(nil) = %v, want nil", err)
	}
}

func TestClassifyLSXErrorIsAlwaysCorruptData(t *testing.T) {
	got := classifyLSXError(lsx.ErrMalformedDocument)
	coder, ok := got.(interface{ ExitCode() int })
	if !ok {
		t.Fatal("classifyLSXError did not implement ExitCode()")
	}
	if coder.ExitCode() != exitCorruptData {
		t.Errorf("ExitCode() = %d, want %d", coder.ExitCode(), exitCorruptData)
	}
}

func TestInputAndOutputErrorExitCodes(t *testing.T) {
	if code := mustExitCode(t, inputError("bad input")); code != exitInputError {
		t.Errorf("inputError exit code = %d, want %d", code, exitInputError)
	}
	if code := mustExitCode(t, outputError("bad output")); code != exitOutputError {
		t.Errorf("outputError exit code = %d, want %d", code, exitOutputError)
	}
}

func mustExitCode(t *testing.T, err error) int {
	t.Helper()
	coder, ok := err.(interface{ ExitCode() int })
	if !ok {
		t.Fatalf("%v does not implement ExitCode()", err)
	}
	return coder.ExitCode()
}
