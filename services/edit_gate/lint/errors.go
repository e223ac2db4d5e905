// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package lint

import (
	"errors"
	"fmt"
)

// Sentinel errors for the lint package. The dispatcher absorbs all of them on
// the gate path; they surface only in logs and tests.
var (
	// ErrToolchainNotInstalled indicates the toolchain binary was not found in PATH.
	ErrToolchainNotInstalled = errors.New("toolchain not installed")

	// ErrToolchainTimeout indicates the toolchain exceeded its configured timeout.
	ErrToolchainTimeout = errors.New("toolchain timeout")

	// ErrToolchainFailed indicates the toolchain process failed to execute.
	ErrToolchainFailed = errors.New("toolchain execution failed")

	// ErrUnsupportedExtension indicates no toolchain is registered for the extension.
	ErrUnsupportedExtension = errors.New("unsupported extension")

	// ErrInvalidInput indicates invalid input to a lint function.
	ErrInvalidInput = errors.New("invalid input")
)

// ToolchainError wraps errors from a specific toolchain with context.
//
// Thread Safety: Immutable after creation.
type ToolchainError struct {
	// Toolchain is the name of the toolchain that failed (e.g., "rust").
	Toolchain string

	// Err is the underlying error.
	Err error

	// Output contains any captured stderr from the toolchain.
	Output string
}

// Error implements the error interface.
func (e *ToolchainError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("%s: %v: %s", e.Toolchain, e.Err, e.Output)
	}
	return fmt.Sprintf("%s: %v", e.Toolchain, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ToolchainError) Unwrap() error {
	return e.Err
}

// NewToolchainError creates a new ToolchainError.
func NewToolchainError(toolchain string, err error) *ToolchainError {
	return &ToolchainError{
		Toolchain: toolchain,
		Err:       err,
	}
}

// WithOutput returns a copy of the error with captured output attached.
func (e *ToolchainError) WithOutput(output string) *ToolchainError {
	return &ToolchainError{
		Toolchain: e.Toolchain,
		Err:       e.Err,
		Output:    output,
	}
}
