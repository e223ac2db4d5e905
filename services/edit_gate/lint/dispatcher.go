// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package lint maps files to external diagnostic toolchains and extracts a
// bounded set of diagnostic lines from their output.
package lint

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/AleutianAI/EditGate/services/edit_gate/project"
)

// DefaultMaxErrors is the diagnostic line cap per lint run.
const DefaultMaxErrors = 10

// TimeoutDiagnostic is the synthetic line reported when a toolchain run
// exceeds its timeout. Partial output from the killed process is discarded.
const TimeoutDiagnostic = "(linter timed out)"

// DiagnosticLine is one bounded line of toolchain output.
type DiagnosticLine struct {
	// Text is the trimmed line, truncated to the toolchain's budget.
	Text string `json:"text"`
}

// Dispatcher routes files to toolchains and runs them.
//
// # Description
//
// The dispatcher owns the failure policy of the lint side of the gate: it
// never raises. Unsupported extensions, missing roots, missing binaries, and
// process failures all yield empty (or partial) results; a timeout yields the
// single synthetic TimeoutDiagnostic line. Errors surface only in logs.
//
// # Thread Safety
//
// Safe for concurrent use after construction.
type Dispatcher struct {
	runner           CommandRunner
	logger           *slog.Logger
	lookPath         func(file string) (string, error)
	maxErrors        int
	timeoutOverrides map[string]int
	disabled         map[string]bool
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithRunner replaces the CommandRunner, used by tests to avoid real
// processes.
func WithRunner(r CommandRunner) Option {
	return func(d *Dispatcher) {
		if r != nil {
			d.runner = r
		}
	}
}

// WithLogger attaches a logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithMaxErrors overrides the diagnostic line cap.
func WithMaxErrors(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.maxErrors = n
		}
	}
}

// WithTimeoutOverride overrides one toolchain's primary timeout in seconds.
// Fallback timeouts are fixed.
func WithTimeoutOverride(toolchain string, seconds int) Option {
	return func(d *Dispatcher) {
		if seconds > 0 {
			d.timeoutOverrides[toolchain] = seconds
		}
	}
}

// WithToolchainDisabled turns one toolchain off; its files lint to empty.
func WithToolchainDisabled(toolchain string) Option {
	return func(d *Dispatcher) {
		d.disabled[toolchain] = true
	}
}

// NewDispatcher creates a dispatcher with the built-in toolchain table.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		runner:           NewDefaultCommandRunner(),
		logger:           slog.New(slog.DiscardHandler),
		lookPath:         exec.LookPath,
		maxErrors:        DefaultMaxErrors,
		timeoutOverrides: make(map[string]int),
		disabled:         make(map[string]bool),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Lint runs the appropriate toolchain for filePath and returns its bounded
// diagnostics.
//
// # Description
//
//	Resolves the toolchain from the file extension (case-insensitive),
//	resolves the project root when the toolchain needs one, runs the command
//	under its timeout, and extracts filtered, truncated lines from the
//	designated output stream. Every failure mode is absorbed: the worst
//	outcome for the caller is an empty slice, or the single synthetic
//	timeout line.
//
// # Inputs
//
//   - ctx: Context bounding the whole dispatch; the per-run timeout nests
//     inside it.
//   - filePath: The file that was written.
//
// # Outputs
//
//   - []DiagnosticLine: At most the configured maximum of diagnostic lines,
//     each within its toolchain's character budget. Nil on no findings, on
//     unsupported extensions, and on absorbed failures.
func (d *Dispatcher) Lint(ctx context.Context, filePath string) []DiagnosticLine {
	if ctx == nil || filePath == "" {
		return nil
	}

	ext := strings.ToLower(filepath.Ext(filePath))
	tc, ok := ForExtension(ext)
	if !ok {
		return nil
	}
	if d.disabled[tc.Name] {
		d.logger.Debug("toolchain disabled", slog.String("toolchain", tc.Name))
		return nil
	}

	diags, err := d.run(ctx, tc, filePath)
	if err != nil {
		if errors.Is(err, ErrToolchainTimeout) {
			d.logger.Warn("toolchain timed out",
				slog.String("toolchain", tc.Name),
				slog.String("file", filePath))
			return []DiagnosticLine{{Text: TimeoutDiagnostic}}
		}
		d.logger.Debug("toolchain failure absorbed",
			slog.String("toolchain", tc.Name),
			slog.String("file", filePath),
			slog.Any("error", err))
		return diags
	}
	return diags
}

// DetectAvailable reports which toolchain binaries are on PATH, keyed by
// toolchain name. Used by the doctor surface.
func (d *Dispatcher) DetectAvailable() map[string]bool {
	available := make(map[string]bool)
	for _, tc := range Toolchains() {
		_, err := d.lookPath(tc.Command[0])
		available[tc.Name] = err == nil
	}
	return available
}

// run executes one toolchain for one file.
func (d *Dispatcher) run(ctx context.Context, tc ToolchainSpec, filePath string) ([]DiagnosticLine, error) {
	dir := ""
	if tc.RequiresRoot() {
		root, found := project.FindRoot(filePath, tc.RootMarkers)
		if !found {
			d.logger.Debug("no project root",
				slog.String("toolchain", tc.Name),
				slog.String("file", filePath))
			return nil, nil
		}
		dir = root
	}

	output, err := d.execute(ctx, tc.Name, dir, tc.Command, tc.AppendsFile, d.timeoutFor(tc), tc.OutputStream, filePath)
	if err != nil {
		if errors.Is(err, ErrToolchainNotInstalled) && tc.Fallback != nil {
			return d.runFallback(ctx, tc, filePath)
		}
		return nil, err
	}

	return d.collect(output, tc.LineFilter, tc.TruncateAt), nil
}

// runFallback runs the secondary syntax check after a missing primary tool.
// Non-empty trimmed stderr becomes exactly one diagnostic entry.
func (d *Dispatcher) runFallback(ctx context.Context, tc ToolchainSpec, filePath string) ([]DiagnosticLine, error) {
	fb := tc.Fallback

	output, err := d.execute(ctx, tc.Name, "", fb.Command, fb.AppendsFile, fb.TimeoutSeconds, StreamStderr, filePath)
	if err != nil {
		return nil, err
	}

	if output != "" {
		d.logger.Debug("fallback check produced diagnostics", slog.String("toolchain", tc.Name))
		return []DiagnosticLine{{Text: truncateLine(strings.TrimSpace(output), fb.TruncateAt)}}, nil
	}
	return nil, nil
}

// execute runs one command and returns the designated output stream.
func (d *Dispatcher) execute(ctx context.Context, name, dir string, command []string, appendsFile bool, timeoutSeconds int, stream OutputStream, filePath string) (string, error) {
	args := make([]string, len(command)-1)
	copy(args, command[1:])
	if appendsFile {
		args = append(args, filePath)
	}

	execCtx, cancel := context.WithTimeout(ctx, time.Duration(timeoutSeconds)*time.Second)
	defer cancel()

	stdout, stderr, _, err := d.runner.RunInDir(execCtx, dir, nil, command[0], args...)
	if err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			return "", NewToolchainError(name, ErrToolchainTimeout)
		case errors.Is(err, exec.ErrNotFound):
			return "", NewToolchainError(name, ErrToolchainNotInstalled)
		default:
			return "", NewToolchainError(name, fmt.Errorf("%w: %v", ErrToolchainFailed, err))
		}
	}

	// Exit codes are never inspected: a nonzero exit with output is the
	// normal shape of a lint run that found problems.
	if stream == StreamStderr {
		return stderr, nil
	}
	return stdout, nil
}

// collect extracts trimmed, filtered, truncated lines up to the cap.
func (d *Dispatcher) collect(output string, filter LineFilter, truncateAt int) []DiagnosticLine {
	var diags []DiagnosticLine
	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if filter != nil && !filter(trimmed) {
			continue
		}
		diags = append(diags, DiagnosticLine{Text: truncateLine(trimmed, truncateAt)})
		if len(diags) >= d.maxErrors {
			break
		}
	}
	return diags
}

// timeoutFor applies any configured override to the toolchain's timeout.
func (d *Dispatcher) timeoutFor(tc ToolchainSpec) int {
	if s, ok := d.timeoutOverrides[tc.Name]; ok && s > 0 {
		return s
	}
	return tc.TimeoutSeconds
}

// truncateLine cuts s to at most limit characters without splitting a rune.
func truncateLine(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
