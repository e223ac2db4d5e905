// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package gate orchestrates one stateless scan+lint+compose evaluation.
package gate

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/EditGate/pkg/logging"
	"github.com/AleutianAI/EditGate/services/edit_gate/advisory"
	"github.com/AleutianAI/EditGate/services/edit_gate/lint"
	"github.com/AleutianAI/EditGate/services/edit_gate/scan"
)

// Runner evaluates the quality gate for one file at a time.
//
// # Description
//
// A Runner joins the two independent checks: the in-process stub scan and the
// external linter dispatch. Neither check mutates shared state and the file
// is only read, so the two run as parallel tasks joined before composition.
// Every evaluation is stateless: the Runner holds configuration, never
// results.
//
// # Thread Safety
//
// Safe for concurrent use. Multiple goroutines may call Evaluate
// simultaneously.
type Runner struct {
	scanner    *scan.Scanner
	dispatcher *lint.Dispatcher
	composer   *advisory.Composer
	logger     *logging.Logger
	concurrent bool
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithDispatcher replaces the linter dispatcher, used by tests and by
// surfaces that apply toolchain configuration.
func WithDispatcher(d *lint.Dispatcher) RunnerOption {
	return func(r *Runner) {
		if d != nil {
			r.dispatcher = d
		}
	}
}

// WithComposer replaces the advisory composer.
func WithComposer(c *advisory.Composer) RunnerOption {
	return func(r *Runner) {
		if c != nil {
			r.composer = c
		}
	}
}

// WithLogger attaches a logger. The default discards everything.
func WithLogger(l *logging.Logger) RunnerOption {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithSequential disables the concurrent scan+lint join. The sequential path
// exists for debugging; results are identical either way.
func WithSequential() RunnerOption {
	return func(r *Runner) {
		r.concurrent = false
	}
}

// NewRunner creates a Runner with a freshly compiled scanner and the default
// dispatcher and composer.
//
// # Outputs
//
//   - *Runner: Ready-to-use runner.
//   - error: Non-nil if the stub pattern table fails to compile.
func NewRunner(opts ...RunnerOption) (*Runner, error) {
	scanner, err := scan.NewScanner()
	if err != nil {
		return nil, err
	}

	r := &Runner{
		scanner:    scanner,
		dispatcher: lint.NewDispatcher(),
		composer:   advisory.NewComposer(),
		logger:     logging.Discard(),
		concurrent: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Evaluate runs the full gate for one file and composes the advisory.
//
// # Description
//
//	Runs the stub scan and the linter dispatch (concurrently unless
//	configured sequential), then merges their results. Both checks absorb
//	their own failures, so Evaluate always produces an advisory: the worst
//	case is the clean-bill message for a file nothing could check. Each
//	evaluation is tagged with a correlation ID in the logs.
//
// # Inputs
//
//   - ctx: Context bounding the external toolchain run.
//   - filePath: The file that was written.
//
// # Outputs
//
//   - advisory.Advisory: The composed result, never empty.
func (r *Runner) Evaluate(ctx context.Context, filePath string) advisory.Advisory {
	runID := uuid.NewString()
	logger := r.logger.With("run_id", runID, "file", filePath)
	start := time.Now()
	logger.Debug("gate evaluation started", "concurrent", r.concurrent)

	var findings []scan.Finding
	var diagnostics []lint.DiagnosticLine

	if r.concurrent {
		g, gCtx := errgroup.WithContext(ctx)
		g.Go(func() error {
			findings = r.scanner.ScanFile(filePath)
			return nil
		})
		g.Go(func() error {
			diagnostics = r.dispatcher.Lint(gCtx, filePath)
			return nil
		})
		// Both tasks absorb their own failures and return nil.
		_ = g.Wait()
	} else {
		findings = r.scanner.ScanFile(filePath)
		diagnostics = r.dispatcher.Lint(ctx, filePath)
	}

	adv := r.composer.Compose(filePath, findings, diagnostics)
	logger.Info("gate evaluation finished",
		"findings", len(findings),
		"diagnostics", len(diagnostics),
		"clean", adv.Clean(),
		"duration_ms", time.Since(start).Milliseconds())
	return adv
}
