// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package hook

import (
	"context"
	"encoding/json"
	"io"

	"github.com/AleutianAI/EditGate/pkg/logging"
	"github.com/AleutianAI/EditGate/services/edit_gate/gate"
)

// Executor runs the hook surface: decode, gate, evaluate, encode.
//
// # Description
//
// The Executor is the absorption boundary of the whole tool. Whatever goes
// wrong inside one invocation (malformed input, unreadable files, missing
// linters, even encoding failures), Execute completes without error and the
// process exits 0. The gate is advisory: it must never block or crash the
// editing workflow it observes. A gated-out or malformed request produces no
// output at all; a processed request produces exactly one JSON record.
//
// # Thread Safety
//
// Not safe for concurrent use: an Executor owns its reader and writer. The
// hook process runs exactly one invocation.
type Executor struct {
	runner        *gate.Runner
	logger        *logging.Logger
	in            io.Reader
	out           io.Writer
	extraExcluded []string
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithExecutorLogger attaches a logger. The default discards everything.
func WithExecutorLogger(l *logging.Logger) ExecutorOption {
	return func(e *Executor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithExtraExcludedPaths adds configured path substrings to the built-in
// self-exclusion.
func WithExtraExcludedPaths(substrings []string) ExecutorOption {
	return func(e *Executor) {
		e.extraExcluded = substrings
	}
}

// NewExecutor creates an Executor bound to the given runner and streams.
//
// # Inputs
//
//   - runner: The gate runner performing evaluations.
//   - in: The invocation record source, normally os.Stdin.
//   - out: The response sink, normally os.Stdout. Nothing else may write
//     to this stream during an invocation.
func NewExecutor(runner *gate.Runner, in io.Reader, out io.Writer, opts ...ExecutorOption) *Executor {
	e := &Executor{
		runner: runner,
		logger: logging.Discard(),
		in:     in,
		out:    out,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs one hook invocation end to end.
//
// # Description
//
//	Decodes one JSON record from the input stream, applies the gate
//	conditions, evaluates the gate for the touched file, and writes the
//	advisory response. Every failure mode is absorbed: malformed input and
//	gated-out requests terminate silently with no output, and an output
//	write failure is only logged. Execute never panics and never reports an
//	error to the caller.
//
// # Inputs
//
//   - ctx: Context bounding the external toolchain run inside evaluation.
func (e *Executor) Execute(ctx context.Context) {
	var req Request
	if err := json.NewDecoder(e.in).Decode(&req); err != nil {
		e.logger.Debug("malformed hook input absorbed", "error", err)
		return
	}

	if reason := ShouldProcess(req, e.extraExcluded); reason != SkipNone {
		e.logger.Debug("hook request skipped",
			"reason", string(reason),
			"tool", req.ToolName,
			"file", req.ToolInput.FilePath)
		return
	}

	adv := e.runner.Evaluate(ctx, req.ToolInput.FilePath)

	if err := json.NewEncoder(e.out).Encode(NewResponse(adv.Text())); err != nil {
		e.logger.Warn("hook response write failed", "error", err)
	}
}
