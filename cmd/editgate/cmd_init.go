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
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/EditGate/cmd/editgate/config"
	"github.com/AleutianAI/EditGate/pkg/ux"
)

// runInit writes the default configuration file. An existing file is only
// replaced after confirmation (or with --force); non-interactive runs never
// overwrite without --force.
func runInit(cmd *cobra.Command, args []string) {
	path, err := config.Path()
	if err != nil {
		ux.Error(fmt.Sprintf("could not resolve the config path: %v", err))
		os.Exit(1)
	}

	if _, err := os.Stat(path); err == nil && !forceInit {
		if !ux.IsInteractive() {
			ux.Error(fmt.Sprintf("%s already exists; use --force to overwrite", path))
			os.Exit(1)
		}

		var overwrite bool
		confirm := huh.NewConfirm().
			Title(fmt.Sprintf("%s already exists. Overwrite it with defaults?", path)).
			Affirmative("Overwrite").
			Negative("Keep").
			Value(&overwrite)
		if err := confirm.Run(); err != nil || !overwrite {
			ux.Muted("keeping the existing configuration")
			return
		}
	}

	if err := config.WriteDefault(path); err != nil {
		ux.Error(fmt.Sprintf("could not write the configuration: %v", err))
		os.Exit(1)
	}
	ux.Success("wrote default configuration to " + path)
}
