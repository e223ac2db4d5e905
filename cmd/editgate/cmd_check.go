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
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/EditGate/pkg/ux"
	"github.com/AleutianAI/EditGate/services/edit_gate/hook"
)

// checkResult is the JSON shape emitted per file under --json.
type checkResult struct {
	File     string `json:"file"`
	Skipped  bool   `json:"skipped,omitempty"`
	Clean    bool   `json:"clean"`
	Advisory string `json:"advisory,omitempty"`
}

// runCheck evaluates the gate for each named file and renders the advisories
// for humans (or as JSON lines). Unlike the hook surface this one reports
// errors; --strict additionally fails the process when any file is flagged.
func runCheck(cmd *cobra.Command, args []string) {
	runner, err := newGateRunner()
	if err != nil {
		ux.Error(fmt.Sprintf("could not start the gate: %v", err))
		os.Exit(1)
	}

	encoder := json.NewEncoder(os.Stdout)
	clean, flagged, skipped := 0, 0, 0

	for _, file := range args {
		if !hook.RecognizedExtension(file) {
			skipped++
			if jsonOutput {
				encoder.Encode(checkResult{File: file, Skipped: true, Clean: true})
			} else {
				ux.FileStatus(file, ux.IconPending, "unrecognized extension, skipped")
			}
			continue
		}

		adv := runner.Evaluate(context.Background(), file)
		if adv.Clean() {
			clean++
		} else {
			flagged++
		}

		if jsonOutput {
			encoder.Encode(checkResult{File: file, Clean: adv.Clean(), Advisory: adv.Text()})
			continue
		}
		renderAdvisory(file, adv)
	}

	if !jsonOutput && len(args) > 1 {
		ux.Summary(clean, flagged, skipped)
	}

	if strictMode && flagged > 0 {
		os.Exit(1)
	}
}
