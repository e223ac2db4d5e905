// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/EditGate/cmd/editgate/config"
	"github.com/AleutianAI/EditGate/services/edit_gate/hook"
)

// runHook executes one PostToolUse invocation.
//
// The hook is advisory-only: whatever happens inside, the process exits 0 so
// the editing workflow is never blocked. Even a failed runner construction
// degrades to a silent no-op.
func runHook(cmd *cobra.Command, args []string) {
	runner, err := newGateRunner()
	if err != nil {
		appLogger.Error("gate runner construction failed", "error", err)
		return
	}

	executor := hook.NewExecutor(runner, os.Stdin, os.Stdout,
		hook.WithExecutorLogger(appLogger),
		hook.WithExtraExcludedPaths(config.Global.Gate.ExcludedPaths),
	)
	executor.Execute(context.Background())
}
