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
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
)

// CommandRunner abstracts external process execution.
//
// # Description
//
// All toolchain invocations go through this interface so the dispatcher can
// be tested without real processes. Direct exec.Command calls are not
// testable; the mock implementation in tests captures and verifies command
// invocations instead.
//
// # Thread Safety
//
// Implementations must be safe for concurrent use from multiple goroutines.
type CommandRunner interface {
	// RunInDir executes a command in the given working directory and returns
	// both output streams and the exit code.
	//
	// # Inputs
	//
	//   - ctx: Context for cancellation/timeout. The process is killed when
	//     the context expires.
	//   - dir: Working directory; empty uses the current directory.
	//   - env: Extra environment entries appended to the inherited
	//     environment; nil inherits unchanged.
	//   - name: The executable name or path.
	//   - args: Command arguments (variadic).
	//
	// # Outputs
	//
	//   - string: Captured stdout.
	//   - string: Captured stderr.
	//   - int: Process exit code; -1 when the process did not run or was killed.
	//   - error: Non-nil only when the process could not be executed or the
	//     context expired. A nonzero exit with output is NOT an error here.
	RunInDir(ctx context.Context, dir string, env []string, name string, args ...string) (string, string, int, error)
}

// DefaultCommandRunner implements CommandRunner using os/exec.
type DefaultCommandRunner struct{}

// NewDefaultCommandRunner creates the production CommandRunner.
func NewDefaultCommandRunner() *DefaultCommandRunner {
	return &DefaultCommandRunner{}
}

// RunInDir executes a command and captures its output streams.
func (r *DefaultCommandRunner) RunInDir(ctx context.Context, dir string, env []string, name string, args ...string) (string, string, int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if dir != "" {
		cmd.Dir = dir
	}
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	// A context hit takes precedence: the kill shows up as a generic exit
	// error, so report the context cause instead.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return stdout.String(), stderr.String(), -1, ctxErr
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// The toolchain ran and exited nonzero. Its output is still
			// meaningful; exit codes are not inspected as error signals.
			return stdout.String(), stderr.String(), exitErr.ExitCode(), nil
		}
		return stdout.String(), stderr.String(), -1, err
	}

	return stdout.String(), stderr.String(), 0, nil
}

// Compile-time interface check.
var _ CommandRunner = (*DefaultCommandRunner)(nil)
