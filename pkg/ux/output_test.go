// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ux

import (
	"io"
	"os"
	"strings"
	"testing"
)

// captureStreams runs fn with stdout and stderr swapped for pipes and
// returns what fn wrote to each.
func captureStreams(t *testing.T, fn func()) (stdout, stderr string) {
	t.Helper()

	origOut, origErr := os.Stdout, os.Stderr
	outR, outW, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	errR, errW, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout, os.Stderr = outW, errW

	fn()

	outW.Close()
	errW.Close()
	os.Stdout, os.Stderr = origOut, origErr

	outBytes, _ := io.ReadAll(outR)
	errBytes, _ := io.ReadAll(errR)
	return string(outBytes), string(errBytes)
}

func TestErrorAndWarning_GoToStderrInBothModes(t *testing.T) {
	original := GetMode()
	defer SetMode(original)

	for _, mode := range []Mode{ModePlain, ModeStyled} {
		SetMode(mode)

		stdout, stderr := captureStreams(t, func() {
			Error("broken")
			Warning("shaky")
		})

		if stdout != "" {
			t.Errorf("mode %s: diagnostics leaked to stdout: %q", mode, stdout)
		}
		if !strings.Contains(stderr, "broken") {
			t.Errorf("mode %s: error text missing from stderr: %q", mode, stderr)
		}
		if !strings.Contains(stderr, "shaky") {
			t.Errorf("mode %s: warning text missing from stderr: %q", mode, stderr)
		}
	}
}

func TestInfoAndFileStatus_GoToStdout(t *testing.T) {
	original := GetMode()
	defer SetMode(original)
	SetMode(ModePlain)

	stdout, stderr := captureStreams(t, func() {
		Info("detail")
		FileStatus("a.py", IconSuccess, "")
	})

	if stderr != "" {
		t.Errorf("regular output leaked to stderr: %q", stderr)
	}
	if !strings.Contains(stdout, "detail") || !strings.Contains(stdout, "a.py") {
		t.Errorf("regular output missing from stdout: %q", stdout)
	}
}
