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

import "strings"

// =============================================================================
// TOOLCHAIN SPECIFICATIONS
// =============================================================================

// OutputStream selects which process stream carries diagnostics.
type OutputStream string

const (
	// StreamStdout reads diagnostics from standard output.
	StreamStdout OutputStream = "stdout"

	// StreamStderr reads diagnostics from standard error.
	StreamStderr OutputStream = "stderr"
)

// LineFilter decides whether a trimmed, non-blank output line is kept as a
// diagnostic. The dispatcher drops blank lines before calling the filter.
type LineFilter func(line string) bool

// FallbackSpec describes a secondary check used when the primary tool is not
// installed. The fallback reports compile/syntax errors only: its entire
// trimmed stderr becomes one diagnostic entry.
type FallbackSpec struct {
	// Command is the fallback argument vector.
	Command []string

	// AppendsFile adds the target file as the final argument.
	AppendsFile bool

	// TimeoutSeconds bounds the fallback run.
	TimeoutSeconds int

	// TruncateAt is the character budget for the single fallback entry.
	TruncateAt int
}

// ToolchainSpec describes one language family's diagnostic command.
//
// Specs are statically defined; configuration can disable a toolchain or
// override its timeout but never changes commands, filters, or budgets.
type ToolchainSpec struct {
	// Name identifies the toolchain ("rust", "python", "javascript", "go").
	Name string

	// FileExtensions are the extensions handled by this toolchain, with dot,
	// lowercase.
	FileExtensions []string

	// RootMarkers are filenames identifying the project root, in priority
	// order. Empty means the toolchain runs without root resolution.
	RootMarkers []string

	// Command is the argument vector, invoked from the resolved root when
	// RootMarkers is non-empty.
	Command []string

	// AppendsFile adds the target file as the final argument.
	AppendsFile bool

	// TimeoutSeconds bounds the run: 30 for compiled/static analysis, 10 for
	// lighter interpreted-language checks.
	TimeoutSeconds int

	// OutputStream is where this toolchain writes diagnostics.
	OutputStream OutputStream

	// LineFilter keeps diagnostic-looking lines; nil keeps every non-blank
	// line.
	LineFilter LineFilter

	// TruncateAt is the per-line character budget.
	TruncateAt int

	// Fallback, when set, runs if the primary tool is not installed.
	Fallback *FallbackSpec
}

// RequiresRoot reports whether dispatch must resolve a project root first.
func (s ToolchainSpec) RequiresRoot() bool {
	return len(s.RootMarkers) > 0
}

// =============================================================================
// LINE FILTERS
// =============================================================================

// FilterErrorOrWarning keeps lines mentioning "error" or "warning",
// case-insensitively. Used for cargo clippy's short-format stderr.
func FilterErrorOrWarning(line string) bool {
	lower := strings.ToLower(line)
	return strings.Contains(lower, "error") || strings.Contains(lower, "warning")
}

// FilterHasColon keeps lines containing a colon, the shape of compact
// file:line:col diagnostics. Used for eslint.
func FilterHasColon(line string) bool {
	return strings.Contains(line, ":")
}

// =============================================================================
// REGISTRY
// =============================================================================

// Toolchains returns the supported toolchain table.
//
// # Description
//
//	The set is closed: adding a language means adding one entry here, and
//	dispatch behavior follows entirely from the spec fields. Callers must not
//	mutate the returned specs.
func Toolchains() []ToolchainSpec {
	return []ToolchainSpec{
		{
			Name:           "rust",
			FileExtensions: []string{".rs"},
			RootMarkers:    []string{"Cargo.toml"},
			Command:        []string{"cargo", "clippy", "--message-format=short", "--quiet"},
			TimeoutSeconds: 30,
			OutputStream:   StreamStderr,
			LineFilter:     FilterErrorOrWarning,
			TruncateAt:     100,
		},
		{
			Name:           "python",
			FileExtensions: []string{".py"},
			Command:        []string{"flake8", "--max-line-length=120"},
			AppendsFile:    true,
			TimeoutSeconds: 10,
			OutputStream:   StreamStdout,
			TruncateAt:     100,
			Fallback: &FallbackSpec{
				Command:        []string{"python", "-m", "py_compile"},
				AppendsFile:    true,
				TimeoutSeconds: 10,
				TruncateAt:     200,
			},
		},
		{
			Name:           "javascript",
			FileExtensions: []string{".js", ".ts", ".tsx", ".jsx"},
			RootMarkers:    []string{"package.json", ".eslintrc", ".eslintrc.js", ".eslintrc.json"},
			Command:        []string{"npx", "eslint", "--format=compact"},
			AppendsFile:    true,
			TimeoutSeconds: 30,
			OutputStream:   StreamStdout,
			LineFilter:     FilterHasColon,
			TruncateAt:     100,
		},
		{
			Name:           "go",
			FileExtensions: []string{".go"},
			RootMarkers:    []string{"go.mod"},
			Command:        []string{"go", "vet", "./..."},
			TimeoutSeconds: 30,
			OutputStream:   StreamStderr,
			TruncateAt:     100,
		},
	}
}

// toolchainsByExtension maps lowercase extensions to their specs. Built once;
// read-only afterward, so safe for concurrent lookups.
var toolchainsByExtension = buildExtensionIndex()

func buildExtensionIndex() map[string]ToolchainSpec {
	index := make(map[string]ToolchainSpec)
	for _, tc := range Toolchains() {
		for _, ext := range tc.FileExtensions {
			index[ext] = tc
		}
	}
	return index
}

// ForExtension returns the toolchain handling the given extension.
//
// # Inputs
//
//   - ext: File extension including the dot, any case.
//
// # Outputs
//
//   - ToolchainSpec: The matching spec.
//   - bool: False when no toolchain handles the extension.
func ForExtension(ext string) (ToolchainSpec, bool) {
	tc, ok := toolchainsByExtension[strings.ToLower(ext)]
	return tc, ok
}
