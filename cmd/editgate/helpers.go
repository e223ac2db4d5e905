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
	"github.com/AleutianAI/EditGate/cmd/editgate/config"
	"github.com/AleutianAI/EditGate/services/edit_gate/advisory"
	"github.com/AleutianAI/EditGate/services/edit_gate/gate"
	"github.com/AleutianAI/EditGate/services/edit_gate/lint"
)

// newDispatcher builds the linter dispatcher from the loaded configuration.
func newDispatcher() *lint.Dispatcher {
	opts := []lint.Option{
		lint.WithLogger(appLogger.Slog()),
		lint.WithMaxErrors(config.Global.Gate.MaxLintErrors),
	}
	for name, tc := range config.Global.Toolchains {
		if !tc.Enabled {
			opts = append(opts, lint.WithToolchainDisabled(name))
			continue
		}
		opts = append(opts, lint.WithTimeoutOverride(name, tc.TimeoutSeconds))
	}
	return lint.NewDispatcher(opts...)
}

// maxDiagnosticsShown caps the lint lines displayed per advisory. The
// dispatcher may collect more when max_lint_errors is raised; the display
// stays fixed and the advisory notes the overflow instead.
const maxDiagnosticsShown = 10

// newComposer builds the advisory composer from the loaded configuration.
func newComposer() *advisory.Composer {
	return advisory.NewComposer(
		advisory.WithMaxFindingsShown(config.Global.Gate.MaxFindingsShown),
		advisory.WithMaxDiagnosticsShown(maxDiagnosticsShown),
	)
}

// newGateRunner builds a fully configured gate runner. Shared by the hook,
// check, and watch surfaces.
func newGateRunner() (*gate.Runner, error) {
	opts := []gate.RunnerOption{
		gate.WithDispatcher(newDispatcher()),
		gate.WithComposer(newComposer()),
		gate.WithLogger(appLogger),
	}
	if !config.Global.Gate.Concurrent {
		opts = append(opts, gate.WithSequential())
	}
	return gate.NewRunner(opts...)
}
