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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForExtension(t *testing.T) {
	tests := []struct {
		ext      string
		wantName string
		wantOK   bool
	}{
		{ext: ".rs", wantName: "rust", wantOK: true},
		{ext: ".py", wantName: "python", wantOK: true},
		{ext: ".js", wantName: "javascript", wantOK: true},
		{ext: ".ts", wantName: "javascript", wantOK: true},
		{ext: ".tsx", wantName: "javascript", wantOK: true},
		{ext: ".jsx", wantName: "javascript", wantOK: true},
		{ext: ".go", wantName: "go", wantOK: true},
		{ext: ".GO", wantName: "go", wantOK: true},
		{ext: ".Py", wantName: "python", wantOK: true},
		{ext: ".java", wantOK: false},
		{ext: ".md", wantOK: false},
		{ext: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run("ext "+tt.ext, func(t *testing.T) {
			tc, ok := ForExtension(tt.ext)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantName, tc.Name)
			}
		})
	}
}

func TestToolchains_Shape(t *testing.T) {
	byName := make(map[string]ToolchainSpec)
	for _, tc := range Toolchains() {
		byName[tc.Name] = tc
	}
	require.Len(t, byName, 4)

	rust := byName["rust"]
	assert.Equal(t, []string{"Cargo.toml"}, rust.RootMarkers)
	assert.Equal(t, StreamStderr, rust.OutputStream)
	assert.Equal(t, 30, rust.TimeoutSeconds)
	assert.True(t, rust.RequiresRoot())
	assert.Nil(t, rust.Fallback)

	python := byName["python"]
	assert.False(t, python.RequiresRoot())
	assert.Equal(t, 10, python.TimeoutSeconds)
	assert.True(t, python.AppendsFile)
	require.NotNil(t, python.Fallback)
	assert.Equal(t, 200, python.Fallback.TruncateAt)

	js := byName["javascript"]
	assert.Equal(t, []string{"package.json", ".eslintrc", ".eslintrc.js", ".eslintrc.json"}, js.RootMarkers)
	assert.Equal(t, StreamStdout, js.OutputStream)

	goTC := byName["go"]
	assert.Equal(t, []string{"go", "vet", "./..."}, goTC.Command)
	assert.Equal(t, StreamStderr, goTC.OutputStream)
	assert.False(t, goTC.AppendsFile)
}

func TestLineFilters(t *testing.T) {
	tests := []struct {
		name   string
		filter LineFilter
		line   string
		want   bool
	}{
		{name: "error kept", filter: FilterErrorOrWarning, line: "src/main.rs:3:5: error[E0308]: mismatched types", want: true},
		{name: "warning kept", filter: FilterErrorOrWarning, line: "src/lib.rs:9:1: WARNING: unused import", want: true},
		{name: "note dropped", filter: FilterErrorOrWarning, line: "note: required by a bound", want: false},
		{name: "progress dropped", filter: FilterErrorOrWarning, line: "Checking demo v0.1.0", want: false},
		{name: "colon kept", filter: FilterHasColon, line: "/app/x.ts: line 5, col 1, Error - unused", want: true},
		{name: "summary dropped", filter: FilterHasColon, line: "1 problem", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter(tt.line))
		})
	}
}
