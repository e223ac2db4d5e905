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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/EditGate/cmd/editgate/config"
	"github.com/AleutianAI/EditGate/pkg/ux"
	"github.com/AleutianAI/EditGate/services/edit_gate/lint"
	"github.com/AleutianAI/EditGate/services/edit_gate/project"
)

// toolchainReport is one row of the doctor output.
type toolchainReport struct {
	Toolchain  string `json:"toolchain"`
	Binary     string `json:"binary"`
	Installed  bool   `json:"installed"`
	Enabled    bool   `json:"enabled"`
	Root       string `json:"root,omitempty"`
	ModulePath string `json:"module_path,omitempty"`
}

// runDoctor reports the environment as the gate would see it from the
// current directory: which linter binaries are installed, which project
// roots resolve, and for Go projects which module they declare.
func runDoctor(cmd *cobra.Command, args []string) {
	cwd, err := os.Getwd()
	if err != nil {
		ux.Error(fmt.Sprintf("could not determine the working directory: %v", err))
		os.Exit(1)
	}

	available := newDispatcher().DetectAvailable()

	var reports []toolchainReport
	for _, tc := range lint.Toolchains() {
		report := toolchainReport{
			Toolchain: tc.Name,
			Binary:    tc.Command[0],
			Installed: available[tc.Name],
			Enabled:   config.Global.Toolchains[tc.Name].Enabled,
		}

		if tc.RequiresRoot() {
			// Probe from a file position inside cwd, the way dispatch does.
			if root, found := project.FindRoot(filepath.Join(cwd, "probe"), tc.RootMarkers); found {
				report.Root = root
				if tc.Name == "go" {
					if modulePath, err := project.GoModulePath(root); err == nil {
						report.ModulePath = modulePath
					} else {
						report.ModulePath = "unknown"
					}
				}
			}
		}
		reports = append(reports, report)
	}

	if jsonOutput {
		json.NewEncoder(os.Stdout).Encode(reports)
		return
	}

	ux.Title("EditGate environment")
	for _, r := range reports {
		icon := ux.IconSuccess
		reason := ""
		switch {
		case !r.Enabled:
			icon = ux.IconPending
			reason = "disabled in config"
		case !r.Installed:
			icon = ux.IconError
			reason = r.Binary + " not found in PATH"
		case r.Root == "" && requiresRoot(r.Toolchain):
			icon = ux.IconWarning
			reason = "no project root from here"
		}

		ux.FileStatus(r.Toolchain, icon, reason)
		if r.Root != "" {
			ux.Muted("    root: " + r.Root)
		}
		if r.ModulePath != "" {
			ux.Muted("    module: " + r.ModulePath)
		}
	}
}

func requiresRoot(toolchain string) bool {
	for _, tc := range lint.Toolchains() {
		if tc.Name == toolchain {
			return tc.RequiresRoot()
		}
	}
	return false
}
